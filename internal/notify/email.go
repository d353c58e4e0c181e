package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Email sends alerts to a fixed recipient list over SMTP.
type Email struct {
	dialer     mailDialer
	from       string
	recipients []string
}

func NewEmail(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, recipients []string) *Email {
	return &Email{
		dialer:     gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:       fromEmail,
		recipients: recipients,
	}
}

func (e *Email) Notify(ctx context.Context, msg Message) error {
	if len(e.recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.dialer.DialAndSend(e.message(msg)); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}

func (e *Email) message(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", e.recipients...)
	m.SetHeader("Subject", msg.Subject)

	lines := strings.Split(msg.Body, "\n")
	for i, l := range lines {
		lines[i] = html.EscapeString(l)
	}
	body := fmt.Sprintf(`
		<h3>%s</h3>
		<p>%s</p>
	`, html.EscapeString(msg.Subject), strings.Join(lines, "<br>"))

	m.SetBody("text/plain", msg.Body)
	m.AddAlternative("text/html", body)
	return m
}
