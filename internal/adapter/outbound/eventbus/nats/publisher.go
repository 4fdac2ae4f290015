package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/nexdevs/sentinel/internal/domain/model"
	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
)

const (
	// subjectPrefix is completed with the event type, e.g.
	// sentinel.events.failed_login.
	subjectPrefix = "sentinel.events."

	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// connection is the part of *nats.Conn the publisher uses.
type connection interface {
	PublishMsg(msg *nats.Msg) error
	Close()
}

// Publisher forwards recorded security events onto NATS so downstream
// consumers (SIEM ingestion, analytics) can subscribe without polling the
// stats endpoint. It implements outbound.EventPublisher.
type Publisher struct {
	conn   connection
	logger *slog.Logger
}

var _ outbound.EventPublisher = (*Publisher)(nil)

// NewPublisher connects to NATS. Reconnects are handled by the client's
// built-in retry; -1 means retry forever.
func NewPublisher(natsURL string, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := nats.Connect(natsURL,
		nats.Timeout(connectTimeout),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", natsURL, err)
	}
	logger.Info("nats publisher connected", "url", natsURL)
	return &Publisher{conn: conn, logger: logger}, nil
}

// PublishEvent publishes one recorded event as JSON on a per-type subject.
func (p *Publisher) PublishEvent(ctx context.Context, e model.SecurityEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", e.ID, err)
	}

	msg := nats.NewMsg(subjectPrefix + string(e.Type))
	msg.Data = data
	msg.Header.Set("x-event-id", e.ID)
	msg.Header.Set("x-client-ip", e.ClientIP)
	msg.Header.Set("x-severity", string(e.Severity))

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		return fmt.Errorf("publish timeout: %w", ctx.Err())
	default:
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish event %s: %w", e.ID, err)
	}
	p.logger.Debug("event published", "event_id", e.ID, "subject", msg.Subject)
	return nil
}

// Close closes the underlying NATS connection.
func (p *Publisher) Close() {
	p.conn.Close()
	p.logger.Info("nats publisher closed")
}
