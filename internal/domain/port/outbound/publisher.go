package outbound

import (
	"context"

	"github.com/nexdevs/sentinel/internal/domain/model"
)

// EventPublisher emits every recorded security event to an external bus for
// downstream consumers (SIEM pipelines, dashboards). Publishing is best
// effort; failures never block recording.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event model.SecurityEvent) error
}
