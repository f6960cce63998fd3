package storage

import (
	"context"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

// CollectionRepository persists the owned-cards snapshot. First run and
// schema upgrades return empty results, never errors.
type CollectionRepository interface {
	SaveAll(ctx context.Context, cards []CollectionCard) error
	GetAll(ctx context.Context) ([]CollectionCard, error)
	OwnedCount(ctx context.Context) (int, error)
}

// PackRepository persists pack-opening history.
type PackRepository interface {
	Save(ctx context.Context, pack Pack) error
	GetAll(ctx context.Context) ([]Pack, error)
	Count(ctx context.Context) (int, error)
}

// PityTimerRepository persists per-set pity counters.
type PityTimerRepository interface {
	Get(ctx context.Context, setID string) (PityTimer, bool, error)
	Save(ctx context.Context, timer PityTimer) error
	GetAll(ctx context.Context) ([]PityTimer, error)
}

// EventRepository durably stores the game event stream for postmortem
// inspection and replay.
type EventRepository interface {
	Append(ctx context.Context, event events.GameEvent) error
	GetSince(ctx context.Context, since int) ([]events.GameEvent, error)
	Count(ctx context.Context) (int, error)
}
