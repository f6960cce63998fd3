package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
)

type failingEventRepo struct {
	err error
}

func (r *failingEventRepo) Append(context.Context, events.GameEvent) error {
	return r.err
}

func (r *failingEventRepo) GetSince(context.Context, int) ([]events.GameEvent, error) {
	return nil, nil
}

func (r *failingEventRepo) Count(context.Context) (int, error) {
	return 0, nil
}

func TestEventLogPersisterSurfacesRepositoryFailure(t *testing.T) {
	wantErr := errors.New("database is locked")
	p := NewEventLogPersister(&failingEventRepo{err: wantErr}, logger.New("test"))

	err := p.Append(events.GameEvent{ID: "ev-1", Type: events.TypeGameStart})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestEventLogPersisterWritesThrough(t *testing.T) {
	_, _, _, _, eventRepo := testDB(t)
	p := NewEventLogPersister(eventRepo, logger.New("test"))

	if err := p.Append(events.GameEvent{ID: "ev-1", Type: events.TypeGameStart}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	count, err := eventRepo.Count(context.Background())
	if err != nil || count != 1 {
		t.Fatalf("count = %d, %v, want 1", count, err)
	}
}
