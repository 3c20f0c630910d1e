package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TemplateManager holds the parsed mail templates. The built-in set is
// registered up front; LoadTemplates can override any of them from disk.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, fmt.Errorf("failed to register builtin template %s: %w", name, err)
		}
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		name := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(name, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", name, err)
		}
		return nil
	})
}

func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}
	return names
}

var builtinTemplates = map[string]string{
	"activation": `
<p>Dear <strong>{{.UserName}}</strong>,</p>
<p>Thank you for registering with our website! We're excited to have you as a new member of our community.</p>
<p>To activate your account, please click the following link:</p>
<p><a href="{{.ActionURL}}">{{.ActionURL}}</a></p>
<p>If the link above does not work, please copy and paste the URL into your browser.</p>
<p>Once your account is activated, you'll be able to log in and enjoy all the benefits of our services.</p>
<p>If you have any questions, please reach out to our support team at <strong>{{.SupportEmail}}</strong> or <strong>{{.SupportPhone}}</strong>.</p>
<p>Best regards,</p>
<p><strong>{{.CompanyName}}</strong></p>`,

	"password_reset": `
<p>Dear <strong>{{.UserName}}</strong>,</p>
<p>We have received a request to reset the password for your account. If you did not initiate this request, please disregard this email.</p>
<p>To reset your password, please click on the following link <a href="{{.ActionURL}}">{{.ActionURL}}</a> and follow the instructions provided. This link is valid for the next {{.ExpireHours}} hours.</p>
<p>If you are unable to click on the link above, please copy and paste the URL into your web browser.</p>
<p>If you have any questions, please contact our support team at <strong>{{.SupportEmail}}</strong> or <strong>{{.SupportPhone}}</strong>.</p>
<p>Thank you,</p>
<p><strong>{{.CompanyName}}</strong></p>`,

	"password_changed": `
<p>Dear <strong>{{.UserName}}</strong>,</p>
<p>This is to inform you that your password has been changed as per your request or as a security measure for your account.</p>
<p>If you did not request this change, please contact our support team immediately at <strong>{{.SupportEmail}}</strong> or <strong>{{.SupportPhone}}</strong>.</p>
<p>If you initiated the password change, you can now use your new password to log in. Please keep your password secure and do not share it with anyone.</p>
<p>Best regards,</p>
<p><strong>{{.CompanyName}}</strong></p>`,

	"order_created": `
<p>Dear <strong>{{.UserName}}</strong>,</p>
<p>Your order <strong>{{.OrderTitle}}</strong> has been received and is pending payment.</p>
<p>The total price for your order is <strong>${{printf "%.2f" .OrderPrice}}</strong>. Once payment is confirmed, a writer will be assigned to your order.</p>
<p>If you have any questions, please contact our support team at <strong>{{.SupportEmail}}</strong> or <strong>{{.SupportPhone}}</strong>.</p>
<p>Thank you,</p>
<p><strong>{{.CompanyName}}</strong></p>`,

	"order_completed": `
<p>Dear <strong>{{.UserName}}</strong>,</p>
<p>Good news! Your order <strong>{{.OrderTitle}}</strong> has been completed.</p>
<p>You can now log in to your account and download the finished documents.</p>
<p>If you have any questions, please contact our support team at <strong>{{.SupportEmail}}</strong> or <strong>{{.SupportPhone}}</strong>.</p>
<p>Thank you,</p>
<p><strong>{{.CompanyName}}</strong></p>`,
}
