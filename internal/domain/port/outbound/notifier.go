package outbound

import (
	"context"

	"github.com/nexdevs/sentinel/internal/domain/model"
)

// AlertSummary aggregates the recent-event cohort that crossed a threshold.
type AlertSummary struct {
	TotalEvents int    `json:"total_events"`
	TimeWindow  string `json:"time_window"`
	Threshold   int    `json:"threshold"`
}

// AlertNotification is the payload handed to every alert channel: the event
// that triggered the alert, its same-IP same-type cohort within the window,
// and the computed summary.
type AlertNotification struct {
	Event        model.SecurityEvent
	RecentEvents []model.SecurityEvent
	Summary      AlertSummary
}

// AlertNotifier delivers a security alert over one channel. Implementations
// must not panic; delivery failure is reported as an error and the monitor
// decides whether to dead-letter it.
type AlertNotifier interface {
	// Channel identifies the transport for dead-letter records ("email", "slack").
	Channel() string
	// Recipient describes the delivery target for dead-letter records.
	Recipient() string
	SendSecurityAlert(ctx context.Context, n AlertNotification) error
}
