package email

import (
	"fmt"

	"paperdesk_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider sends mail over SMTP. Each configured alias maps to its
// own account, so transactional mail and support mail can leave from
// different addresses.
type SMTPProvider struct {
	accounts     map[string]config.MailAccount
	defaultAlias string
}

func NewSMTPProvider(cfg *config.Config) (*SMTPProvider, error) {
	if len(cfg.Mail.Accounts) == 0 {
		return nil, fmt.Errorf("no mail accounts configured")
	}
	if _, ok := cfg.Mail.Accounts[cfg.Mail.DefaultAlias]; !ok {
		return nil, fmt.Errorf("default mail alias %q is not configured", cfg.Mail.DefaultAlias)
	}

	return &SMTPProvider{
		accounts:     cfg.Mail.Accounts,
		defaultAlias: cfg.Mail.DefaultAlias,
	}, nil
}

func (p *SMTPProvider) Send(msg *Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	account, err := p.account(msg.Alias)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	from := account.FromEmail
	if account.FromName != "" {
		from = m.FormatAddress(account.FromEmail, account.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTMLBody != "" {
		m.SetBody("text/html", msg.HTMLBody)
		if msg.Body != "" {
			m.AddAlternative("text/plain", msg.Body)
		}
	} else {
		m.SetBody("text/plain", msg.Body)
	}

	dialer := gomail.NewDialer(account.Host, account.Port, account.Username, account.Password)
	dialer.SSL = account.UseTLS

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) Close() error {
	return nil
}

func (p *SMTPProvider) account(alias string) (config.MailAccount, error) {
	if alias == "" {
		alias = p.defaultAlias
	}

	account, ok := p.accounts[alias]
	if !ok {
		return config.MailAccount{}, fmt.Errorf("mail alias %q is not configured", alias)
	}
	return account, nil
}
