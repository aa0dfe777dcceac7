package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/learning/securedapp/internal/core/domain"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *recordingAuditRepo) Append(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *recordingAuditRepo) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}

func TestAuditDispatcher_DeliversEvents(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewAuditDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuditEvent{Username: "alice", Action: domain.AuditUserCreated})
	d.Record(domain.AuditEvent{Username: "bob", Action: domain.AuditLoginSuccess})

	deadline := time.After(2 * time.Second)
	for {
		if len(repo.snapshot()) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("expected 2 events, got %d", len(repo.snapshot()))
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestAuditDispatcher_SameUserOrdering(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 20
	for i := 0; i < n; i++ {
		d.Record(domain.AuditEvent{Username: "alice", Action: domain.AuditUserUpdated, Detail: string(rune('a' + i))})
	}

	deadline := time.After(2 * time.Second)
	for len(repo.snapshot()) < n {
		select {
		case <-deadline:
			t.Fatalf("expected %d events, got %d", n, len(repo.snapshot()))
		case <-time.After(10 * time.Millisecond):
		}
	}

	events := repo.snapshot()
	for i := 1; i < n; i++ {
		if events[i].Detail < events[i-1].Detail {
			t.Fatalf("events for one user arrived out of order: %q before %q", events[i-1].Detail, events[i].Detail)
		}
	}
}

func TestAuditDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewAuditDispatcher(0, &recordingAuditRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
