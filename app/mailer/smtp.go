package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPSender delivers digest emails through an SMTP relay.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

var _ Sender = (*SMTPSender)(nil)

func NewSMTPSender(host string, port int, username string, password string, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, recipient string, subject string, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("failed to set sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("failed to set recipient address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{
		mail.WithPort(s.port),
	}
	if s.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.username),
			mail.WithPassword(s.password),
		)
	}

	client, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
