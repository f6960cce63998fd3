package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/metrics"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/preferences"
)

type fakeCollection struct {
	owned    int
	packs    int
	ownedErr error
}

func (f *fakeCollection) OwnedCount(context.Context) (int, error) {
	return f.owned, f.ownedErr
}

func (f *fakeCollection) PackCount(context.Context) (int, error) {
	return f.packs, nil
}

type fakePrefs struct {
	prefs preferences.Preferences
}

func (f *fakePrefs) Get(context.Context) preferences.Preferences {
	return f.prefs
}

func testStore(collection CollectionReader) *Store {
	return NewStore(collection, &fakePrefs{prefs: preferences.Default()}, logger.New("test"), metrics.NewCollector(), 16)
}

func TestInitSeedsBothHalves(t *testing.T) {
	s := testStore(&fakeCollection{owned: 412, packs: 37})
	s.ProcessEvent(context.Background(), &Event{Type: EventStoreInit})

	main := s.MainState()
	if !main.Initialized {
		t.Error("main state not marked initialized")
	}
	if main.CollectionSize != 412 {
		t.Errorf("CollectionSize = %d, want 412", main.CollectionSize)
	}
	if main.PacksOpened != 37 {
		t.Errorf("PacksOpened = %d, want 37", main.PacksOpened)
	}
	if s.NavigationState().CurrentTab != "decktracker" {
		t.Errorf("CurrentTab = %q, want decktracker", s.NavigationState().CurrentTab)
	}
}

func TestInitFailureLeavesStateUntouched(t *testing.T) {
	s := testStore(&fakeCollection{ownedErr: errors.New("db closed")})
	before := s.MainState()
	s.ProcessEvent(context.Background(), &Event{Type: EventStoreInit})
	if s.MainState() != before {
		t.Error("failed init replaced the main state")
	}
	if s.MainState().Initialized {
		t.Error("failed init marked the state initialized")
	}
}

func TestChangeTabTouchesOnlyNavigation(t *testing.T) {
	s := testStore(&fakeCollection{})
	mainBefore := s.MainState()

	s.ProcessEvent(context.Background(), &Event{Type: EventChangeTab, Tab: "collection"})
	if s.NavigationState().CurrentTab != "collection" {
		t.Errorf("CurrentTab = %q, want collection", s.NavigationState().CurrentTab)
	}
	if s.MainState() != mainBefore {
		t.Error("tab switch replaced the main state")
	}
}

func TestChangeTabToSameTabIsNoOp(t *testing.T) {
	s := testStore(&fakeCollection{})
	navBefore := s.NavigationState()
	s.ProcessEvent(context.Background(), &Event{Type: EventChangeTab, Tab: navBefore.CurrentTab})
	if s.NavigationState() != navBefore {
		t.Error("switching to the current tab replaced the navigation state")
	}
}

func TestSelectDeckJumpsToDecktracker(t *testing.T) {
	s := testStore(&fakeCollection{})
	s.ProcessEvent(context.Background(), &Event{Type: EventChangeTab, Tab: "collection"})
	s.ProcessEvent(context.Background(), &Event{Type: EventSelectDeck, Deckstring: "AAECAf0E"})

	nav := s.NavigationState()
	if nav.SelectedDeckstring != "AAECAf0E" {
		t.Errorf("SelectedDeckstring = %q", nav.SelectedDeckstring)
	}
	if nav.CurrentTab != "decktracker" {
		t.Errorf("CurrentTab = %q, want decktracker", nav.CurrentTab)
	}
}

func TestDeckFilterUpdates(t *testing.T) {
	s := testStore(&fakeCollection{})
	s.ProcessEvent(context.Background(), &Event{Type: EventDeckFilter, TextFilter: "dragon", ClassFilter: "paladin"})

	nav := s.NavigationState()
	if nav.TextFilter != "dragon" || nav.ClassFilter != "paladin" {
		t.Errorf("filters = %q/%q, want dragon/paladin", nav.TextFilter, nav.ClassFilter)
	}
}

func TestCollectionRefreshSurfacesNewCards(t *testing.T) {
	collection := &fakeCollection{owned: 10}
	s := testStore(collection)
	s.ProcessEvent(context.Background(), &Event{Type: EventStoreInit})

	collection.owned = 12
	s.ProcessEvent(context.Background(), &Event{
		Type:    EventCollectionRefresh,
		CardIDs: []string{"BT_025", "BT_026"},
	})

	main := s.MainState()
	if main.CollectionSize != 12 {
		t.Errorf("CollectionSize = %d, want 12", main.CollectionSize)
	}
	if len(main.NewCardIDs) != 2 || main.NewCardIDs[0] != "BT_025" {
		t.Errorf("NewCardIDs = %v", main.NewCardIDs)
	}
}

func TestPackAndGameCounters(t *testing.T) {
	s := testStore(&fakeCollection{})
	s.ProcessEvent(context.Background(), &Event{Type: EventNewPack, SetID: "darkmoon_faire"})
	s.ProcessEvent(context.Background(), &Event{Type: EventNewPack, SetID: "darkmoon_faire"})
	s.ProcessEvent(context.Background(), &Event{Type: EventGameEnd, GameResult: "won"})

	main := s.MainState()
	if main.PacksOpened != 2 {
		t.Errorf("PacksOpened = %d, want 2", main.PacksOpened)
	}
	if main.GamesPlayed != 1 || main.LastGameResult != "won" {
		t.Errorf("GamesPlayed = %d, LastGameResult = %q", main.GamesPlayed, main.LastGameResult)
	}
}

func TestListenersFireOnlyOnChange(t *testing.T) {
	s := testStore(&fakeCollection{})
	fired := 0
	s.AddListener(func(*Event, *MainWindowState, *NavigationState) {
		fired++
	})

	s.ProcessEvent(context.Background(), &Event{Type: EventChangeTab, Tab: "collection"})
	s.ProcessEvent(context.Background(), &Event{Type: EventChangeTab, Tab: "collection"})
	s.ProcessEvent(context.Background(), &Event{Type: EventType("BOGUS")})

	if fired != 1 {
		t.Errorf("listener fired %d times, want 1", fired)
	}
}
