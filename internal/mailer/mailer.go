package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP connection settings read from configuration.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends account emails through an explicitly constructed SMTP
// client; there is no package-level API key or singleton.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) SendWelcome(email, name string) error {
	return m.send(email,
		"Welcome to the task manager app",
		fmt.Sprintf("Hello, %s. Welcome to the task manager app!", name),
	)
}

func (m *SMTPMailer) SendFarewell(email, name string) error {
	return m.send(email,
		"Sad to see you go",
		fmt.Sprintf("Goodbye, %s. We hope to see you back soon.", name),
	)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send %q to %s: %w", subject, to, err)
	}
	return nil
}

// Noop satisfies the service mailer when SMTP is not configured.
type Noop struct{}

func (Noop) SendWelcome(string, string) error  { return nil }
func (Noop) SendFarewell(string, string) error { return nil }
