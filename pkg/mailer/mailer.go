package mailer

import (
	"fmt"

	"bootcamp-platform/pkg/utils"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP
type Mailer struct {
	config utils.EmailConfig
	dialer *gomail.Dialer
}

// Email is a single outbound message
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

func NewMailer(config utils.EmailConfig) *Mailer {
	dialer := gomail.NewDialer(
		config.Host,
		config.Port,
		config.User,
		config.Password,
	)

	return &Mailer{
		config: config,
		dialer: dialer,
	}
}

// Send delivers a single email
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}

	return m.dialer.DialAndSend(msg)
}

// SendHTML delivers an HTML email
func (m *Mailer) SendHTML(to []string, subject, htmlBody string) error {
	return m.Send(Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}
