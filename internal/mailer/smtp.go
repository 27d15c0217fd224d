package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/gearlog/gearlog-backend/maintenance"
)

// SMTPMailer implements Mailer over a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendSummary(ctx context.Context, recipient string, alerts []maintenance.Alert) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", summarySubject(alerts))
	msg.SetBody("text/plain", renderSummary(alerts))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}
