package inbound

import (
	"context"

	"github.com/nexdevs/sentinel/internal/domain/model"
)

// IPCount pairs a client IP with its event count for the stats view.
type IPCount struct {
	IP    string `json:"ip"`
	Count int    `json:"count"`
}

// SecurityStats is the read model over the event buffer.
type SecurityStats struct {
	TotalEvents  int                     `json:"total_events"`
	EventsByType map[model.EventType]int `json:"events_by_type"`
	RecentEvents []model.SecurityEvent   `json:"recent_events"`
	TopIPs       []IPCount               `json:"top_ips"`
}

// EventRecorderPort is the inbound boundary request handlers use to report
// suspicious activity and read aggregate stats.
type EventRecorderPort interface {
	RecordEvent(ctx context.Context, ev model.NewEvent) model.SecurityEvent
	Stats() SecurityStats
}
