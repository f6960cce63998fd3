package logreader

import (
	"context"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/infra/storage"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
)

// CollectionSink receives collection snapshots read from game memory.
type CollectionSink interface {
	OnCollectionUpdate(ctx context.Context, snapshot []storage.CollectionCard) error
	OnPackOpened(ctx context.Context, setID string, cardIDs, rarities []string) error
}

// MemoryReader is the entry point for structured snapshots that arrive
// outside the log stream: scene changes and collection reads.
type MemoryReader struct {
	eventLog   *events.Log
	collection CollectionSink
	log        *logger.Logger
}

func NewMemoryReader(eventLog *events.Log, collection CollectionSink, log *logger.Logger) *MemoryReader {
	return &MemoryReader{
		eventLog:   eventLog,
		collection: collection,
		log:        log.With("memory"),
	}
}

// OnSceneChanged publishes the new scene to the event stream.
func (m *MemoryReader) OnSceneChanged(scene string) {
	m.eventLog.Append(events.GameEvent{
		Type:       events.TypeSceneChanged,
		Additional: &events.AdditionalData{Scene: scene},
	})
}

// OnCollectionUpdate forwards a collection snapshot to the manager.
func (m *MemoryReader) OnCollectionUpdate(ctx context.Context, snapshot []storage.CollectionCard) {
	if err := m.collection.OnCollectionUpdate(ctx, snapshot); err != nil {
		m.log.Error("collection update failed: %v", err)
	}
}

// OnPackOpened forwards an opened pack to the manager.
func (m *MemoryReader) OnPackOpened(ctx context.Context, setID string, cardIDs, rarities []string) {
	if err := m.collection.OnPackOpened(ctx, setID, cardIDs, rarities); err != nil {
		m.log.Error("pack processing failed: %v", err)
	}
}
