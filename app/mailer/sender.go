package mailer

import (
	"context"
	"log/slog"
)

// Sender delivers a rendered digest email to a single recipient.
type Sender interface {
	Send(ctx context.Context, recipient string, subject string, htmlBody string) error
}

// LogSender logs deliveries instead of sending them. Used when no SMTP
// host is configured, e.g. in local development.
type LogSender struct{}

var _ Sender = (*LogSender)(nil)

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, recipient string, subject string, htmlBody string) error {
	slog.Info("Skipping email delivery, no SMTP host configured", "recipient", recipient, "subject", subject, "body_bytes", len(htmlBody))
	return nil
}
