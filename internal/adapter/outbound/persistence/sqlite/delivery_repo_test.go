package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/nexdevs/sentinel/internal/adapter/outbound/persistence/sqlite"
	"github.com/nexdevs/sentinel/internal/domain/model"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStore(sqlite.Config{
		Path:              ":memory:",
		MaxOpenConns:      1,
		PragmaJournalMode: "memory",
		PragmaBusyTimeout: 5000,
	})
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func makeDelivery(eventID string) model.AlertDelivery {
	return model.NewAlertDelivery(
		eventID, "email", "security@nexdevs.example",
		"🚨 Security Alert: Failed Login Attempt [HIGH]",
		`{"event":{"id":"`+eventID+`"}}`,
		"dial tcp: connection refused",
	)
}

func TestDeliveryRepo_CreateAndList(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewDeliveryRepo(store)
	ctx := context.Background()

	d := makeDelivery("evt-1")
	created, err := repo.Create(ctx, d)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != d.ID {
		t.Errorf("ID mismatch: got %s want %s", created.ID, d.ID)
	}

	pending, err := repo.ListUndelivered(ctx, 5, 10)
	if err != nil {
		t.Fatalf("ListUndelivered: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending delivery, got %d", len(pending))
	}
	got := pending[0]
	if got.EventID != "evt-1" {
		t.Errorf("EventID: got %q want %q", got.EventID, "evt-1")
	}
	if got.Channel != "email" {
		t.Errorf("Channel: got %q want %q", got.Channel, "email")
	}
	if got.Attempts != 1 {
		t.Errorf("Attempts: got %d want 1", got.Attempts)
	}
	if got.Payload != d.Payload {
		t.Errorf("Payload: got %q want %q", got.Payload, d.Payload)
	}
}

func TestDeliveryRepo_ListOrdersOldestFirst(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewDeliveryRepo(store)
	ctx := context.Background()

	older := makeDelivery("evt-old")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := makeDelivery("evt-new")

	if _, err := repo.Create(ctx, newer); err != nil {
		t.Fatalf("Create newer: %v", err)
	}
	if _, err := repo.Create(ctx, older); err != nil {
		t.Fatalf("Create older: %v", err)
	}

	pending, err := repo.ListUndelivered(ctx, 5, 10)
	if err != nil {
		t.Fatalf("ListUndelivered: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending deliveries, got %d", len(pending))
	}
	if pending[0].EventID != "evt-old" {
		t.Errorf("expected oldest first, got %q", pending[0].EventID)
	}
}

func TestDeliveryRepo_ListSkipsExhaustedAttempts(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewDeliveryRepo(store)
	ctx := context.Background()

	d := makeDelivery("evt-exhausted")
	d.Attempts = 5
	if _, err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	pending, err := repo.ListUndelivered(ctx, 5, 10)
	if err != nil {
		t.Fatalf("ListUndelivered: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending deliveries, got %d", len(pending))
	}
}

func TestDeliveryRepo_UpdateMarksDelivered(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewDeliveryRepo(store)
	ctx := context.Background()

	d := makeDelivery("evt-2")
	if _, err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.Update(ctx, d.MarkDelivered()); err != nil {
		t.Fatalf("Update: %v", err)
	}

	pending, err := repo.ListUndelivered(ctx, 5, 10)
	if err != nil {
		t.Fatalf("ListUndelivered: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("delivered record still pending, got %d", len(pending))
	}
}

func TestDeliveryRepo_UpdateMissingRow(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewDeliveryRepo(store)

	_, err := repo.Update(context.Background(), makeDelivery("evt-ghost"))
	if err == nil {
		t.Fatal("expected error updating missing row")
	}
}

func TestDeliveryRepo_PruneRemovesOldDelivered(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewDeliveryRepo(store)
	ctx := context.Background()

	old := makeDelivery("evt-old").MarkDelivered()
	old.CreatedAt = time.Now().UTC().Add(-8 * 24 * time.Hour)
	if _, err := repo.Create(ctx, old); err != nil {
		t.Fatalf("Create old: %v", err)
	}

	fresh := makeDelivery("evt-fresh").MarkDelivered()
	if _, err := repo.Create(ctx, fresh); err != nil {
		t.Fatalf("Create fresh: %v", err)
	}

	stillPending := makeDelivery("evt-pending")
	stillPending.CreatedAt = time.Now().UTC().Add(-8 * 24 * time.Hour)
	if _, err := repo.Create(ctx, stillPending); err != nil {
		t.Fatalf("Create pending: %v", err)
	}

	n, err := repo.Prune(ctx, time.Now().UTC().Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned row, got %d", n)
	}

	// Undelivered rows survive pruning regardless of age.
	pending, err := repo.ListUndelivered(ctx, 5, 10)
	if err != nil {
		t.Fatalf("ListUndelivered: %v", err)
	}
	if len(pending) != 1 || pending[0].EventID != "evt-pending" {
		t.Fatalf("expected evt-pending to survive, got %+v", pending)
	}
}
