package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
	"github.com/nexdevs/sentinel/internal/metrics"
)

const (
	defaultRedeliveryInterval = 5 * time.Minute
	defaultMaxAttempts        = 5
	defaultRedeliveryBatch    = 20
	prunedRetention           = 7 * 24 * time.Hour
)

// RedelivererConfig holds the retry loop tunables.
type RedelivererConfig struct {
	Interval    time.Duration
	MaxAttempts int
	BatchSize   int
	SendTimeout time.Duration
}

func (c RedelivererConfig) withDefaults() RedelivererConfig {
	if c.Interval <= 0 {
		c.Interval = defaultRedeliveryInterval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultRedeliveryBatch
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = defaultAlertTimeout
	}
	return c
}

// Redeliverer retries dead-lettered alerts on a fixed interval so a sustained
// mail outage does not silently drop alerts. Attempts are capped; records that
// exhaust their attempts stay in the store for operator inspection.
type Redeliverer struct {
	cfg        RedelivererConfig
	deliveries outbound.DeliveryRepository
	notifier   outbound.AlertNotifier
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewRedeliverer creates a Redeliverer over the given dead-letter store and channel.
func NewRedeliverer(cfg RedelivererConfig, deliveries outbound.DeliveryRepository, notifier outbound.AlertNotifier, m *metrics.Metrics, logger *slog.Logger) *Redeliverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redeliverer{
		cfg:        cfg.withDefaults(),
		deliveries: deliveries,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
	}
}

// Run blocks until ctx is cancelled, draining the dead-letter store every interval.
func (r *Redeliverer) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.drainOnce(ctx)
		}
	}
}

// drainOnce retries one batch of undelivered alerts and prunes old delivered rows.
func (r *Redeliverer) drainOnce(ctx context.Context) {
	pending, err := r.deliveries.ListUndelivered(ctx, r.cfg.MaxAttempts, r.cfg.BatchSize)
	if err != nil {
		r.logger.Error("dead-letter list failed", "error", err)
		return
	}

	for _, record := range pending {
		var n outbound.AlertNotification
		if err := json.Unmarshal([]byte(record.Payload), &n); err != nil {
			r.logger.Error("dead-letter payload unreadable, dropping",
				"delivery_id", record.ID, "error", err)
			if _, uerr := r.deliveries.Update(ctx, record.WithAttempt("payload unreadable: "+err.Error())); uerr != nil {
				r.logger.Error("dead-letter update failed", "delivery_id", record.ID, "error", uerr)
			}
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, r.cfg.SendTimeout)
		sendErr := r.notifier.SendSecurityAlert(sendCtx, n)
		cancel()

		if sendErr != nil {
			r.logger.Warn("alert redelivery failed",
				"delivery_id", record.ID, "attempts", record.Attempts+1, "error", sendErr)
			if _, uerr := r.deliveries.Update(ctx, record.WithAttempt(sendErr.Error())); uerr != nil {
				r.logger.Error("dead-letter update failed", "delivery_id", record.ID, "error", uerr)
			}
			continue
		}

		if r.metrics != nil {
			r.metrics.AlertsRedelivered.Inc()
		}
		r.logger.Info("dead-lettered alert delivered", "delivery_id", record.ID, "event_id", record.EventID)
		if _, uerr := r.deliveries.Update(ctx, record.MarkDelivered()); uerr != nil {
			r.logger.Error("dead-letter update failed", "delivery_id", record.ID, "error", uerr)
		}
	}

	if _, err := r.deliveries.Prune(ctx, time.Now().UTC().Add(-prunedRetention)); err != nil {
		r.logger.Warn("dead-letter prune failed", "error", err)
	}
}
