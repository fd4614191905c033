// Package mailer sends reminder e-mails.
package mailer

import (
	"context"
	"log/slog"
)

// Message is a single HTML e-mail to one recipient.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

// Mailer delivers messages. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer only logs messages. It is used when no SMTP server is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) Send(ctx context.Context, msg Message) error {
	l := m.Logger
	if l == nil {
		l = slog.Default()
	}
	l.InfoContext(ctx, "mail not sent: no smtp server configured",
		"to", msg.To, "subject", msg.Subject)
	return nil
}
