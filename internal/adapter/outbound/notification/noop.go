package notification

import (
	"context"
	"log/slog"

	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
)

// NoopNotifier logs alerts instead of sending them. Used in local development
// when no email or Slack channel is configured.
type NoopNotifier struct {
	logger *slog.Logger
}

var _ outbound.AlertNotifier = (*NoopNotifier)(nil)

// NewNoopNotifier creates a new NoopNotifier.
func NewNoopNotifier(logger *slog.Logger) *NoopNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) Channel() string { return "noop" }

func (n *NoopNotifier) Recipient() string { return "log" }

func (n *NoopNotifier) SendSecurityAlert(_ context.Context, notification outbound.AlertNotification) error {
	n.logger.Info("noop: security alert",
		"event_id", notification.Event.ID,
		"event_type", notification.Event.Type,
		"severity", notification.Event.Severity,
		"client_ip", notification.Event.ClientIP,
		"total_events", notification.Summary.TotalEvents,
	)
	return nil
}
