package email

import (
	"fmt"

	"paperdesk_backend/internal/config"
)

const accountsAlias = "accounts"

// Notifier renders and sends the transactional mail the platform emits.
// Account mail (activation, password flows) goes out through the
// accounts alias when one is configured.
type Notifier struct {
	provider  Provider
	templates *TemplateManager
	cfg       *config.Config
}

func NewNotifier(provider Provider, templates *TemplateManager, cfg *config.Config) *Notifier {
	return &Notifier{
		provider:  provider,
		templates: templates,
		cfg:       cfg,
	}
}

func (n *Notifier) baseData(userName string) TemplateData {
	return TemplateData{
		UserName:     userName,
		CompanyName:  n.cfg.Company.Name,
		SupportEmail: n.cfg.Company.SupportEmail,
		SupportPhone: n.cfg.Company.SupportPhone,
	}
}

func (n *Notifier) accountAlias() string {
	if _, ok := n.cfg.Mail.Accounts[accountsAlias]; ok {
		return accountsAlias
	}
	return ""
}

func (n *Notifier) send(to, subject, templateName, alias string, data TemplateData) error {
	htmlBody, err := n.templates.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s email: %w", templateName, err)
	}

	return n.provider.Send(&Message{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: htmlBody,
		Alias:    alias,
	})
}

// SendActivation mails the account activation link. plainToken is the
// unhashed activation token.
func (n *Notifier) SendActivation(to, userName, plainToken string, userID uint) error {
	data := n.baseData(userName)
	data.ActionURL = fmt.Sprintf("%s/activate-account/%s/%d", n.cfg.Company.FrontendURL, plainToken, userID)

	return n.send(to, "Account Activation", "activation", n.accountAlias(), data)
}

// SendPasswordReset mails the password reset link.
func (n *Notifier) SendPasswordReset(to, userName, plainToken string, userID uint) error {
	data := n.baseData(userName)
	data.ActionURL = fmt.Sprintf("%s/reset-password/%s/%d", n.cfg.Company.FrontendURL, plainToken, userID)
	data.ExpireHours = n.cfg.Tokens.ResetExpireHours

	return n.send(to, "Password Reset Request", "password_reset", n.accountAlias(), data)
}

// SendPasswordChanged confirms a completed password reset.
func (n *Notifier) SendPasswordChanged(to, userName string) error {
	return n.send(to, "Your Password Has Been Changed", "password_changed", n.accountAlias(), n.baseData(userName))
}

// SendOrderCreated confirms a new order and its computed price.
func (n *Notifier) SendOrderCreated(to, userName, orderTitle string, price float64) error {
	data := n.baseData(userName)
	data.OrderTitle = orderTitle
	data.OrderPrice = price

	return n.send(to, "Order Received", "order_created", "", data)
}

// SendOrderCompleted tells the customer the deliverables are ready.
func (n *Notifier) SendOrderCompleted(to, userName, orderTitle string) error {
	data := n.baseData(userName)
	data.OrderTitle = orderTitle

	return n.send(to, "Order Completed", "order_completed", "", data)
}
