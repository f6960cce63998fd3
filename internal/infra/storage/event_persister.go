package storage

import (
	"context"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
)

// EventLogPersister adapts an EventRepository to the in-memory event log's
// fire-and-forget Persister interface. The log never waits on persistence,
// so a failed write is logged here and the stream keeps flowing.
type EventLogPersister struct {
	repo EventRepository
	log  *logger.Logger
}

func NewEventLogPersister(repo EventRepository, log *logger.Logger) *EventLogPersister {
	return &EventLogPersister{repo: repo, log: log.With("event-persister")}
}

func (p *EventLogPersister) Append(event events.GameEvent) error {
	if err := p.repo.Append(context.Background(), event); err != nil {
		p.log.Error("persisting event %s (%s) failed: %v", event.ID, event.Type, err)
		return err
	}
	return nil
}
