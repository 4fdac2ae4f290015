package model

import (
	"time"

	"github.com/google/uuid"
)

// AlertDelivery is a dead-letter record for an alert that could not be
// delivered. The monitor records one per failed dispatch so a background
// redeliverer can retry after transient mail or Slack outages.
type AlertDelivery struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	Channel       string     `json:"channel"`
	Recipient     string     `json:"recipient"`
	Subject       string     `json:"subject"`
	Payload       string     `json:"payload"`
	LastError     string     `json:"last_error"`
	Attempts      int        `json:"attempts"`
	Delivered     bool       `json:"delivered"`
	CreatedAt     time.Time  `json:"created_at"`
	LastAttemptAt time.Time  `json:"last_attempt_at"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

// NewAlertDelivery creates a dead-letter record for a dispatch that just failed.
func NewAlertDelivery(eventID, channel, recipient, subject, payload, lastError string) AlertDelivery {
	now := time.Now().UTC()
	return AlertDelivery{
		ID:            uuid.NewString(),
		EventID:       eventID,
		Channel:       channel,
		Recipient:     recipient,
		Subject:       subject,
		Payload:       payload,
		LastError:     lastError,
		Attempts:      1,
		CreatedAt:     now,
		LastAttemptAt: now,
	}
}

// WithAttempt returns a copy with one more attempt recorded and the error updated.
func (d AlertDelivery) WithAttempt(lastError string) AlertDelivery {
	d.Attempts++
	d.LastError = lastError
	d.LastAttemptAt = time.Now().UTC()
	return d
}

// MarkDelivered returns a copy flagged as successfully delivered.
func (d AlertDelivery) MarkDelivered() AlertDelivery {
	now := time.Now().UTC()
	d.Delivered = true
	d.LastError = ""
	d.LastAttemptAt = now
	d.DeliveredAt = &now
	return d
}
