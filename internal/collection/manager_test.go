package collection

import (
	"context"
	"testing"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/infra/storage"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/store"
)

type fakeCollectionRepo struct {
	cards []storage.CollectionCard
}

func (f *fakeCollectionRepo) SaveAll(_ context.Context, cards []storage.CollectionCard) error {
	f.cards = append([]storage.CollectionCard(nil), cards...)
	return nil
}

func (f *fakeCollectionRepo) GetAll(context.Context) ([]storage.CollectionCard, error) {
	return f.cards, nil
}

func (f *fakeCollectionRepo) OwnedCount(context.Context) (int, error) {
	total := 0
	for _, c := range f.cards {
		total += c.OwnedStandard + c.OwnedGolden
	}
	return total, nil
}

type fakePackRepo struct {
	packs []storage.Pack
}

func (f *fakePackRepo) Save(_ context.Context, pack storage.Pack) error {
	f.packs = append(f.packs, pack)
	return nil
}

func (f *fakePackRepo) GetAll(context.Context) ([]storage.Pack, error) {
	return f.packs, nil
}

func (f *fakePackRepo) Count(context.Context) (int, error) {
	return len(f.packs), nil
}

type fakePityRepo struct {
	timers map[string]storage.PityTimer
}

func (f *fakePityRepo) Get(_ context.Context, setID string) (storage.PityTimer, bool, error) {
	t, ok := f.timers[setID]
	if !ok {
		return storage.PityTimer{SetID: setID}, false, nil
	}
	return t, true, nil
}

func (f *fakePityRepo) Save(_ context.Context, timer storage.PityTimer) error {
	if f.timers == nil {
		f.timers = map[string]storage.PityTimer{}
	}
	f.timers[timer.SetID] = timer
	return nil
}

func (f *fakePityRepo) GetAll(context.Context) ([]storage.PityTimer, error) {
	out := make([]storage.PityTimer, 0, len(f.timers))
	for _, t := range f.timers {
		out = append(out, t)
	}
	return out, nil
}

type fakeStore struct {
	events []*store.Event
}

func (f *fakeStore) Queue(ev *store.Event) {
	f.events = append(f.events, ev)
}

func testManager() (*Manager, *fakeCollectionRepo, *fakePackRepo, *fakePityRepo, *fakeStore) {
	collectionRepo := &fakeCollectionRepo{}
	packRepo := &fakePackRepo{}
	pityRepo := &fakePityRepo{}
	publisher := &fakeStore{}
	m := NewManager(collectionRepo, packRepo, pityRepo, publisher, logger.New("test"))
	return m, collectionRepo, packRepo, pityRepo, publisher
}

func TestFirstSnapshotReportsNothingNew(t *testing.T) {
	m, repo, _, _, publisher := testManager()

	snapshot := []storage.CollectionCard{
		{CardID: "BT_025", OwnedStandard: 2},
		{CardID: "DRG_315", OwnedGolden: 1},
	}
	if err := m.OnCollectionUpdate(context.Background(), snapshot); err != nil {
		t.Fatalf("OnCollectionUpdate: %v", err)
	}

	if len(repo.cards) != 2 {
		t.Errorf("persisted %d cards, want 2", len(repo.cards))
	}
	if len(publisher.events) != 1 {
		t.Fatalf("queued %d events, want 1", len(publisher.events))
	}
	if ev := publisher.events[0]; ev.Type != store.EventCollectionRefresh || len(ev.CardIDs) != 0 {
		t.Errorf("event = %+v, want refresh with no new cards", ev)
	}
}

func TestSecondSnapshotSurfacesNewCards(t *testing.T) {
	m, _, _, _, publisher := testManager()
	ctx := context.Background()

	first := []storage.CollectionCard{{CardID: "BT_025", OwnedStandard: 1}}
	if err := m.OnCollectionUpdate(ctx, first); err != nil {
		t.Fatalf("first update: %v", err)
	}

	second := []storage.CollectionCard{
		{CardID: "BT_025", OwnedStandard: 2},
		{CardID: "SCH_351", OwnedStandard: 1},
		{CardID: "AV_226", OwnedStandard: 0},
	}
	if err := m.OnCollectionUpdate(ctx, second); err != nil {
		t.Fatalf("second update: %v", err)
	}

	ev := publisher.events[len(publisher.events)-1]
	if len(ev.CardIDs) != 1 || ev.CardIDs[0] != "SCH_351" {
		t.Errorf("new cards = %v, want [SCH_351]", ev.CardIDs)
	}
}

func TestPackOpeningAdvancesPityTimers(t *testing.T) {
	m, _, packRepo, pityRepo, publisher := testManager()
	ctx := context.Background()

	commons := []string{"common", "common", "rare", "common", "common"}
	if err := m.OnPackOpened(ctx, "darkmoon_faire", []string{"DMF_107"}, commons); err != nil {
		t.Fatalf("OnPackOpened: %v", err)
	}
	if err := m.OnPackOpened(ctx, "darkmoon_faire", []string{"DMF_114"}, commons); err != nil {
		t.Fatalf("OnPackOpened: %v", err)
	}

	timer := pityRepo.timers["darkmoon_faire"]
	if timer.PacksSinceEpic != 2 || timer.PacksSinceLegendary != 2 {
		t.Errorf("timer = %+v, want 2/2", timer)
	}
	if len(packRepo.packs) != 2 {
		t.Errorf("persisted %d packs, want 2", len(packRepo.packs))
	}
	if packRepo.packs[0].ID == "" || packRepo.packs[0].ID == packRepo.packs[1].ID {
		t.Errorf("pack ids not unique: %q, %q", packRepo.packs[0].ID, packRepo.packs[1].ID)
	}
	if len(publisher.events) != 2 || publisher.events[0].Type != store.EventNewPack {
		t.Errorf("events = %+v", publisher.events)
	}
}

func TestLegendaryResetsOnlyItsCounter(t *testing.T) {
	timer := storage.PityTimer{SetID: "scholomance", PacksSinceEpic: 5, PacksSinceLegendary: 30}
	timer = advanceTimer(timer, []string{"common", "Legendary", "rare"})
	if timer.PacksSinceLegendary != 0 {
		t.Errorf("PacksSinceLegendary = %d, want 0", timer.PacksSinceLegendary)
	}
	if timer.PacksSinceEpic != 6 {
		t.Errorf("PacksSinceEpic = %d, want 6", timer.PacksSinceEpic)
	}

	timer = advanceTimer(timer, []string{"epic", "common"})
	if timer.PacksSinceEpic != 0 || timer.PacksSinceLegendary != 1 {
		t.Errorf("timer = %+v, want epic 0, legendary 1", timer)
	}
}

func TestRebuildPityTimersReplaysHistory(t *testing.T) {
	m, _, _, pityRepo, _ := testManager()
	ctx := context.Background()

	if err := m.OnPackOpened(ctx, "scholomance", nil, []string{"common"}); err != nil {
		t.Fatal(err)
	}
	if err := m.OnPackOpened(ctx, "scholomance", nil, []string{"epic"}); err != nil {
		t.Fatal(err)
	}
	if err := m.OnPackOpened(ctx, "scholomance", nil, []string{"common"}); err != nil {
		t.Fatal(err)
	}
	if err := m.OnPackOpened(ctx, "darkmoon_faire", nil, []string{"legendary"}); err != nil {
		t.Fatal(err)
	}

	// Corrupt the live counters, then rebuild from pack history.
	pityRepo.timers["scholomance"] = storage.PityTimer{SetID: "scholomance", PacksSinceEpic: 99, PacksSinceLegendary: 99}

	if err := m.RebuildPityTimers(ctx); err != nil {
		t.Fatalf("RebuildPityTimers: %v", err)
	}

	scholomance := pityRepo.timers["scholomance"]
	if scholomance.PacksSinceEpic != 1 || scholomance.PacksSinceLegendary != 3 {
		t.Errorf("scholomance = %+v, want epic 1, legendary 3", scholomance)
	}
	darkmoon := pityRepo.timers["darkmoon_faire"]
	if darkmoon.PacksSinceLegendary != 0 || darkmoon.PacksSinceEpic != 1 {
		t.Errorf("darkmoon = %+v, want legendary 0, epic 1", darkmoon)
	}
}
