package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nexdevs/sentinel/internal/domain/model"
	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
)

// DeliveryRepo implements outbound.DeliveryRepository using SQLite.
type DeliveryRepo struct {
	db *sql.DB
}

var _ outbound.DeliveryRepository = (*DeliveryRepo)(nil)

// NewDeliveryRepo creates a new DeliveryRepo backed by the given store.
func NewDeliveryRepo(store *Store) *DeliveryRepo {
	return &DeliveryRepo{db: store.DB}
}

// Create inserts a new dead-letter row and returns the stored record.
func (r *DeliveryRepo) Create(ctx context.Context, d model.AlertDelivery) (model.AlertDelivery, error) {
	const q = `INSERT INTO alert_deliveries
		(id, event_id, channel, recipient, subject, payload, last_error,
		 attempts, delivered, created_at, last_attempt_at, delivered_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`

	_, err := r.db.ExecContext(ctx, q,
		d.ID, d.EventID, d.Channel, d.Recipient, d.Subject, d.Payload, d.LastError,
		d.Attempts, d.Delivered, d.CreatedAt.UTC(), d.LastAttemptAt.UTC(),
		nullableTime(d.DeliveredAt),
	)
	if err != nil {
		return model.AlertDelivery{}, fmt.Errorf("inserting delivery: %w", err)
	}
	return d, nil
}

// Update replaces the mutable fields of the delivery row.
func (r *DeliveryRepo) Update(ctx context.Context, d model.AlertDelivery) (model.AlertDelivery, error) {
	const q = `UPDATE alert_deliveries SET
		last_error=?, attempts=?, delivered=?, last_attempt_at=?, delivered_at=?
		WHERE id=?`

	res, err := r.db.ExecContext(ctx, q,
		d.LastError, d.Attempts, d.Delivered, d.LastAttemptAt.UTC(),
		nullableTime(d.DeliveredAt), d.ID,
	)
	if err != nil {
		return model.AlertDelivery{}, fmt.Errorf("updating delivery: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return model.AlertDelivery{}, fmt.Errorf("delivery %s not found", d.ID)
	}
	return d, nil
}

// ListUndelivered returns undelivered records with fewer than maxAttempts
// attempts, oldest first.
func (r *DeliveryRepo) ListUndelivered(ctx context.Context, maxAttempts, limit int) ([]model.AlertDelivery, error) {
	const q = `SELECT id, event_id, channel, recipient, subject, payload, last_error,
		attempts, delivered, created_at, last_attempt_at, delivered_at
		FROM alert_deliveries
		WHERE delivered = 0 AND attempts < ?
		ORDER BY created_at ASC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, q, maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("listing undelivered: %w", err)
	}
	defer rows.Close()

	var items []model.AlertDelivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning delivery: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deliveries: %w", err)
	}
	return items, nil
}

// Prune removes delivered records older than cutoff and returns the count.
func (r *DeliveryRepo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM alert_deliveries WHERE delivered = 1 AND created_at < ?`
	res, err := r.db.ExecContext(ctx, q, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning deliveries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning deliveries: %w", err)
	}
	return n, nil
}

// --- helpers ---

type deliveryScanner interface {
	Scan(dest ...any) error
}

func scanDelivery(s deliveryScanner) (model.AlertDelivery, error) {
	var d model.AlertDelivery
	var deliveredAt sql.NullTime

	err := s.Scan(
		&d.ID, &d.EventID, &d.Channel, &d.Recipient, &d.Subject, &d.Payload,
		&d.LastError, &d.Attempts, &d.Delivered,
		&d.CreatedAt, &d.LastAttemptAt, &deliveredAt,
	)
	if err != nil {
		return model.AlertDelivery{}, err
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		d.DeliveredAt = &t
	}
	return d, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
