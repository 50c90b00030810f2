// Package notify delivers user-facing notifications. Delivery is fire and
// forget: a failed send is logged by the caller and never retried.
package notify

import (
	"context"
	"log/slog"
)

type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogNotifier writes the notification to the log and claims success. This
// is the default backend.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(ctx context.Context, to, subject, body string) error {
	slog.InfoContext(ctx, "Notification sent",
		"to", to,
		"subject", subject,
		"body", body)
	return nil
}
