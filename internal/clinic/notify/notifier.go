// Package notify delivers outbound email. Workflows depend on the Notifier
// interface only; whether a message goes out inline or through the Queue is
// decided at composition time.
package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/neurohealth/pkg/slogx"
)

var (
	ErrQueueFull   = errors.New("notify: queue full")
	ErrQueueClosed = errors.New("notify: queue closed")
)

// Message is a single HTML email.
type Message struct {
	ID       string
	To       string
	Subject  string
	HTMLBody string
}

// NewMessage stamps a fresh id used to correlate log lines for the message.
func NewMessage(to, subject, htmlBody string) Message {
	return Message{
		ID:       uuid.NewString(),
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	}
}

// Notifier sends a message. Implementations make at most one delivery
// attempt per call.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LogNotifier writes messages to the log instead of sending them. It is used
// when no SMTP server is configured.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, msg Message) error {
	slogx.FromContext(ctx).Info("email (not sent, no smtp configured)",
		"message_id", msg.ID,
		"to", msg.To,
		"subject", msg.Subject,
		"body_bytes", len(msg.HTMLBody),
	)
	return nil
}
