package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexdevs/sentinel/internal/domain/model"
	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
	"github.com/nexdevs/sentinel/internal/domain/service"
)

func deadLetteredAlert(t *testing.T) model.AlertDelivery {
	t.Helper()
	event := model.NewFailedLoginEvent("admin", "203.0.113.5", "curl/8.0", nil).Record()
	payload, err := json.Marshal(outbound.AlertNotification{
		Event:        event,
		RecentEvents: []model.SecurityEvent{event},
		Summary:      outbound.AlertSummary{TotalEvents: 3, TimeWindow: "30 minutes", Threshold: 3},
	})
	require.NoError(t, err)
	return model.NewAlertDelivery(event.ID, "email", "security@nexdevs.example", "security alert", string(payload), "smtp timeout")
}

func runBriefly(t *testing.T, r *service.Redeliverer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	require.NoError(t, r.Run(ctx))
}

func TestRedeliverer_MarksDeliveredOnSuccess(t *testing.T) {
	notifier := &mockNotifier{}
	repo := &mockDeliveryRepo{}
	_, err := repo.Create(context.Background(), deadLetteredAlert(t))
	require.NoError(t, err)

	r := service.NewRedeliverer(service.RedelivererConfig{Interval: 10 * time.Millisecond}, repo, notifier, nil, nil)
	runBriefly(t, r)

	require.NotEmpty(t, notifier.sent())
	assert.Equal(t, 3, notifier.sent()[0].Summary.TotalEvents)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.NotEmpty(t, repo.updated)
	assert.True(t, repo.updated[0].Delivered)
	assert.Empty(t, repo.updated[0].LastError)
}

func TestRedeliverer_RecordsFailedAttempt(t *testing.T) {
	notifier := &mockNotifier{err: errors.New("still down")}
	repo := &mockDeliveryRepo{}
	_, err := repo.Create(context.Background(), deadLetteredAlert(t))
	require.NoError(t, err)

	r := service.NewRedeliverer(service.RedelivererConfig{Interval: 10 * time.Millisecond}, repo, notifier, nil, nil)
	runBriefly(t, r)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.NotEmpty(t, repo.updated)
	assert.False(t, repo.updated[0].Delivered)
	assert.Equal(t, "still down", repo.updated[0].LastError)
	assert.GreaterOrEqual(t, repo.updated[0].Attempts, 2)
}

func TestRedeliverer_StopsOnContextCancel(t *testing.T) {
	r := service.NewRedeliverer(service.RedelivererConfig{Interval: time.Hour}, &mockDeliveryRepo{}, &mockNotifier{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("redeliverer did not stop on cancel")
	}
}
