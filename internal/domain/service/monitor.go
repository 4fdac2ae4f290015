package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/nexdevs/sentinel/internal/domain/model"
	"github.com/nexdevs/sentinel/internal/domain/port/inbound"
	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
	"github.com/nexdevs/sentinel/internal/metrics"
)

const (
	defaultMaxEvents    = 1000
	defaultWindow       = 30 * time.Minute
	defaultAlertTimeout = 10 * time.Second
	maxRecentEvents     = 20
	maxTopIPs           = 10
)

// DefaultThresholds returns the per-type alert thresholds: the minimum count
// of same-type same-IP events within the window required to trigger an alert.
func DefaultThresholds() map[model.EventType]int {
	return map[model.EventType]int{
		model.EventFailedLogin:          3,
		model.EventUnauthorizedAccess:   1,
		model.EventSuspiciousActivity:   2,
		model.EventRateLimitExceeded:    5,
		model.EventIPBlocked:            1,
		model.EventSessionHijackAttempt: 1,
	}
}

// MonitorConfig holds the tunables of the event monitor.
type MonitorConfig struct {
	// MaxEvents bounds the in-memory buffer; oldest events are evicted first.
	MaxEvents int
	// Window is the rolling interval for threshold evaluation.
	Window time.Duration
	// Thresholds maps event types to alert counts. Types without an entry
	// never alert below critical severity.
	Thresholds map[model.EventType]int
	// AlertTimeout bounds each detached alert dispatch.
	AlertTimeout time.Duration
}

func (c MonitorConfig) withDefaults() MonitorConfig {
	if c.MaxEvents <= 0 {
		c.MaxEvents = defaultMaxEvents
	}
	if c.Window <= 0 {
		c.Window = defaultWindow
	}
	if c.Thresholds == nil {
		c.Thresholds = DefaultThresholds()
	}
	if c.AlertTimeout <= 0 {
		c.AlertTimeout = defaultAlertTimeout
	}
	return c
}

// Monitor records security events in a bounded in-memory buffer and triggers
// alert dispatch when a per-type threshold is crossed within the rolling
// window. The buffer is never persisted; process restart discards it.
//
// Alert dispatch is detached from the recording path: a slow or failing
// notifier never stalls the request handler that reported the event.
type Monitor struct {
	cfg        MonitorConfig
	notifier   outbound.AlertNotifier
	publisher  outbound.EventPublisher
	deliveries outbound.DeliveryRepository
	metrics    *metrics.Metrics
	logger     *slog.Logger

	mu     sync.Mutex
	events []model.SecurityEvent // newest first

	wg sync.WaitGroup
}

// NewMonitor creates a Monitor. notifier, publisher, deliveries and m may each
// be nil, disabling the corresponding side effect.
func NewMonitor(cfg MonitorConfig, notifier outbound.AlertNotifier, publisher outbound.EventPublisher, deliveries outbound.DeliveryRepository, m *metrics.Metrics, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		cfg:        cfg.withDefaults(),
		notifier:   notifier,
		publisher:  publisher,
		deliveries: deliveries,
		metrics:    m,
		logger:     logger,
	}
}

var _ inbound.EventRecorderPort = (*Monitor)(nil)

// RecordEvent stamps, buffers and logs the event, then evaluates alert
// thresholds. Recording always succeeds; alerting and publishing failures are
// logged and dead-lettered, never surfaced to the caller.
func (mon *Monitor) RecordEvent(ctx context.Context, ev model.NewEvent) model.SecurityEvent {
	event := ev.Record()

	mon.mu.Lock()
	mon.events = append([]model.SecurityEvent{event}, mon.events...)
	if len(mon.events) > mon.cfg.MaxEvents {
		mon.events = mon.events[:mon.cfg.MaxEvents]
	}
	cohort := mon.recentByIPAndTypeLocked(event.ClientIP, event.Type)
	bufferLen := len(mon.events)
	mon.mu.Unlock()

	mon.logger.Info("security event recorded",
		"event_id", event.ID,
		"type", event.Type,
		"severity", event.Severity,
		"client_ip", event.ClientIP,
		"username", event.Username,
	)

	if mon.metrics != nil {
		mon.metrics.EventsRecorded.WithLabelValues(string(event.Type), string(event.Severity)).Inc()
		mon.metrics.BufferSize.Set(float64(bufferLen))
	}

	if mon.publisher != nil {
		mon.wg.Add(1)
		go func() {
			defer mon.wg.Done()
			pubCtx, cancel := context.WithTimeout(context.Background(), mon.cfg.AlertTimeout)
			defer cancel()
			if err := mon.publisher.PublishEvent(pubCtx, event); err != nil {
				if mon.metrics != nil {
					mon.metrics.PublishErrors.Inc()
				}
				mon.logger.Warn("event publish failed", "event_id", event.ID, "error", err)
			}
		}()
	}

	mon.evaluateThresholds(event, cohort)
	return event
}

// recentByIPAndTypeLocked returns events matching the given IP and type within
// the rolling window, newest first. Caller must hold mu.
func (mon *Monitor) recentByIPAndTypeLocked(clientIP string, eventType model.EventType) []model.SecurityEvent {
	cutoff := time.Now().UTC().Add(-mon.cfg.Window)
	var cohort []model.SecurityEvent
	for _, e := range mon.events {
		if e.Timestamp.Before(cutoff) {
			// Buffer is newest-first; everything past here is older still.
			break
		}
		if e.ClientIP == clientIP && e.Type == eventType {
			cohort = append(cohort, e)
		}
	}
	return cohort
}

// evaluateThresholds fires an alert when the cohort count reaches the
// type-specific threshold, or unconditionally for critical severity. There is
// deliberately no cooldown: every subsequent qualifying event re-triggers.
func (mon *Monitor) evaluateThresholds(event model.SecurityEvent, cohort []model.SecurityEvent) {
	threshold, configured := mon.cfg.Thresholds[event.Type]
	critical := event.Severity == model.SeverityCritical

	if !critical {
		if !configured || len(cohort) < threshold {
			return
		}
	}

	notification := outbound.AlertNotification{
		Event:        event,
		RecentEvents: cohort,
		Summary: outbound.AlertSummary{
			TotalEvents: len(cohort),
			TimeWindow:  formatWindow(mon.cfg.Window),
			Threshold:   threshold,
		},
	}

	if mon.metrics != nil {
		mon.metrics.AlertsTriggered.WithLabelValues(string(event.Type)).Inc()
	}

	if mon.notifier == nil {
		mon.logger.Warn("alert threshold crossed but no notifier configured",
			"event_id", event.ID, "type", event.Type, "count", len(cohort))
		return
	}

	mon.wg.Add(1)
	go func() {
		defer mon.wg.Done()
		mon.dispatchAlert(notification)
	}()
}

// dispatchAlert delivers one alert with its own bounded timeout, dead-lettering
// the notification on failure.
func (mon *Monitor) dispatchAlert(n outbound.AlertNotification) {
	ctx, cancel := context.WithTimeout(context.Background(), mon.cfg.AlertTimeout)
	defer cancel()

	err := mon.notifier.SendSecurityAlert(ctx, n)
	if err == nil {
		mon.logger.Info("security alert dispatched",
			"event_id", n.Event.ID, "type", n.Event.Type, "total_events", n.Summary.TotalEvents)
		return
	}

	if mon.metrics != nil {
		mon.metrics.AlertFailures.WithLabelValues(mon.notifier.Channel()).Inc()
	}
	mon.logger.Error("security alert delivery failed",
		"event_id", n.Event.ID, "channel", mon.notifier.Channel(), "error", err)

	if mon.deliveries == nil {
		return
	}
	payload, marshalErr := json.Marshal(n)
	if marshalErr != nil {
		mon.logger.Error("dead-letter payload marshal failed", "event_id", n.Event.ID, "error", marshalErr)
		return
	}
	record := model.NewAlertDelivery(
		n.Event.ID,
		mon.notifier.Channel(),
		mon.notifier.Recipient(),
		fmt.Sprintf("security alert: %s from %s", n.Event.Type, n.Event.ClientIP),
		string(payload),
		err.Error(),
	)
	// The send context may already be past its deadline; the dead-letter
	// write gets its own.
	storeCtx, storeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer storeCancel()
	if _, dlErr := mon.deliveries.Create(storeCtx, record); dlErr != nil {
		mon.logger.Error("dead-letter record create failed", "event_id", n.Event.ID, "error", dlErr)
	}
}

// Stats returns the aggregate read model over the buffer.
func (mon *Monitor) Stats() inbound.SecurityStats {
	mon.mu.Lock()
	defer mon.mu.Unlock()

	stats := inbound.SecurityStats{
		TotalEvents:  len(mon.events),
		EventsByType: make(map[model.EventType]int),
	}

	ipCounts := make(map[string]int)
	for _, e := range mon.events {
		stats.EventsByType[e.Type]++
		ipCounts[e.ClientIP]++
	}

	recent := mon.events
	if len(recent) > maxRecentEvents {
		recent = recent[:maxRecentEvents]
	}
	stats.RecentEvents = append([]model.SecurityEvent(nil), recent...)

	for ip, count := range ipCounts {
		stats.TopIPs = append(stats.TopIPs, inbound.IPCount{IP: ip, Count: count})
	}
	sort.Slice(stats.TopIPs, func(i, j int) bool {
		if stats.TopIPs[i].Count != stats.TopIPs[j].Count {
			return stats.TopIPs[i].Count > stats.TopIPs[j].Count
		}
		return stats.TopIPs[i].IP < stats.TopIPs[j].IP
	})
	if len(stats.TopIPs) > maxTopIPs {
		stats.TopIPs = stats.TopIPs[:maxTopIPs]
	}

	return stats
}

// Close waits for in-flight alert dispatches and publishes to finish. Called
// from the server shutdown path.
func (mon *Monitor) Close() {
	mon.wg.Wait()
}

// formatWindow renders a duration the way operators read it in alert mail
// ("30 minutes", "1 hour 30 minutes").
func formatWindow(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	var parts []string
	if hours == 1 {
		parts = append(parts, "1 hour")
	} else if hours > 1 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
	}
	if minutes == 1 {
		parts = append(parts, "1 minute")
	} else if minutes > 1 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", minutes))
	}
	if len(parts) == 2 {
		return parts[0] + " " + parts[1]
	}
	return parts[0]
}
