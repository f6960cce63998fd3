// Package collection tracks the owned-cards snapshot, pack history and
// per-set pity timers, detecting newly acquired cards on every memory
// snapshot.
package collection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/infra/storage"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/store"
)

// StorePublisher is the slice of the main-window store the manager needs.
type StorePublisher interface {
	Queue(ev *store.Event)
}

// Manager owns collection persistence and derives notifications from
// successive snapshots.
type Manager struct {
	collectionRepo storage.CollectionRepository
	packRepo       storage.PackRepository
	pityRepo       storage.PityTimerRepository
	publisher      StorePublisher
	log            *logger.Logger
}

func NewManager(
	collectionRepo storage.CollectionRepository,
	packRepo storage.PackRepository,
	pityRepo storage.PityTimerRepository,
	publisher StorePublisher,
	log *logger.Logger,
) *Manager {
	return &Manager{
		collectionRepo: collectionRepo,
		packRepo:       packRepo,
		pityRepo:       pityRepo,
		publisher:      publisher,
		log:            log.With("collection"),
	}
}

// OwnedCount implements store.CollectionReader.
func (m *Manager) OwnedCount(ctx context.Context) (int, error) {
	return m.collectionRepo.OwnedCount(ctx)
}

// PackCount implements store.CollectionReader.
func (m *Manager) PackCount(ctx context.Context) (int, error) {
	return m.packRepo.Count(ctx)
}

// OnCollectionUpdate persists a fresh snapshot and publishes a refresh
// carrying the card ids whose owned count increased since the previous
// snapshot.
func (m *Manager) OnCollectionUpdate(ctx context.Context, snapshot []storage.CollectionCard) error {
	previous, err := m.collectionRepo.GetAll(ctx)
	if err != nil {
		m.log.Warn("could not load previous collection, treating all cards as known: %v", err)
		previous = nil
	}

	newCards := diffNewCards(previous, snapshot)
	if err := m.collectionRepo.SaveAll(ctx, snapshot); err != nil {
		return fmt.Errorf("save collection snapshot: %w", err)
	}
	if len(newCards) > 0 {
		m.log.Info("detected %d new cards", len(newCards))
	}
	m.publisher.Queue(&store.Event{
		Type:    store.EventCollectionRefresh,
		CardIDs: newCards,
	})
	return nil
}

// diffNewCards returns the ids present (or owned in greater quantity) in
// next but not in prev. A nil prev means first run; nothing is "new".
func diffNewCards(prev, next []storage.CollectionCard) []string {
	if prev == nil {
		return nil
	}
	owned := make(map[string]int, len(prev))
	for _, c := range prev {
		owned[c.CardID] = c.OwnedStandard + c.OwnedGolden
	}
	var out []string
	for _, c := range next {
		if owned[c.CardID] == 0 && c.OwnedStandard+c.OwnedGolden > 0 {
			out = append(out, c.CardID)
		}
	}
	return out
}

// OnPackOpened persists the pack and advances the set's pity timers,
// resetting the epic or legendary counter when the pack delivered one.
func (m *Manager) OnPackOpened(ctx context.Context, setID string, cardIDs, rarities []string) error {
	pack := storage.Pack{
		ID:       uuid.NewString(),
		SetID:    setID,
		OpenedAt: time.Now(),
		CardIDs:  append([]string(nil), cardIDs...),
		Rarities: append([]string(nil), rarities...),
	}
	if err := m.packRepo.Save(ctx, pack); err != nil {
		return fmt.Errorf("save pack: %w", err)
	}

	timer, _, err := m.pityRepo.Get(ctx, setID)
	if err != nil {
		return fmt.Errorf("load pity timer: %w", err)
	}
	timer = advanceTimer(timer, rarities)
	if err := m.pityRepo.Save(ctx, timer); err != nil {
		return fmt.Errorf("save pity timer: %w", err)
	}

	m.publisher.Queue(&store.Event{Type: store.EventNewPack, SetID: setID, CardIDs: cardIDs})
	return nil
}

func advanceTimer(timer storage.PityTimer, rarities []string) storage.PityTimer {
	timer.PacksSinceEpic++
	timer.PacksSinceLegendary++
	for _, r := range rarities {
		switch strings.ToLower(r) {
		case "epic":
			timer.PacksSinceEpic = 0
		case "legendary":
			timer.PacksSinceLegendary = 0
		}
	}
	return timer
}

// PityTimers returns the per-set counters.
func (m *Manager) PityTimers(ctx context.Context) ([]storage.PityTimer, error) {
	return m.pityRepo.GetAll(ctx)
}

// RebuildPityTimers recomputes every set's counters from the full pack
// history, used as an integrity check when timers look off.
func (m *Manager) RebuildPityTimers(ctx context.Context) error {
	packs, err := m.packRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load pack history: %w", err)
	}

	timers := map[string]storage.PityTimer{}
	for _, pack := range packs {
		timer, ok := timers[pack.SetID]
		if !ok {
			timer = storage.PityTimer{SetID: pack.SetID}
		}
		timers[pack.SetID] = advanceTimer(timer, pack.Rarities)
	}

	for _, timer := range timers {
		if err := m.pityRepo.Save(ctx, timer); err != nil {
			return fmt.Errorf("save rebuilt timer for %s: %w", timer.SetID, err)
		}
	}
	m.log.Info("rebuilt pity timers for %d sets from %d packs", len(timers), len(packs))
	return nil
}
