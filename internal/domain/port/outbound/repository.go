package outbound

import (
	"context"
	"time"

	"github.com/nexdevs/sentinel/internal/domain/model"
)

// DeliveryRepository persists dead-letter records for failed alert deliveries.
type DeliveryRepository interface {
	Create(ctx context.Context, d model.AlertDelivery) (model.AlertDelivery, error)
	Update(ctx context.Context, d model.AlertDelivery) (model.AlertDelivery, error)
	// ListUndelivered returns undelivered records with fewer than maxAttempts
	// attempts, oldest first, capped at limit.
	ListUndelivered(ctx context.Context, maxAttempts, limit int) ([]model.AlertDelivery, error)
	// Prune removes delivered records older than cutoff and returns the count.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}
