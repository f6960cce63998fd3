package overlays

import (
	"context"
	"testing"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/battlegrounds"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/preferences"
)

func TestShouldShow(t *testing.T) {
	inGame := Flags{GameStarted: true, OnGameScreen: true}
	tests := []struct {
		name      string
		fromPrefs bool
		fromState bool
		flags     Flags
		want      bool
	}{
		{"both gates open", true, true, inGame, true},
		{"preference gate closed", false, true, inGame, false},
		{"state gate closed", true, false, inGame, false},
		{"closed by user vetoes everything", true, true, Flags{ClosedByUser: true, GameStarted: true, OnGameScreen: true}, false},
		{"no game running", true, true, Flags{OnGameScreen: true}, false},
		{"not on the game screen", true, true, Flags{GameStarted: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldShow(tt.fromPrefs, tt.fromState, tt.flags); got != tt.want {
				t.Errorf("ShouldShow(%v, %v, %+v) = %v, want %v", tt.fromPrefs, tt.fromState, tt.flags, got, tt.want)
			}
		})
	}
}

func TestSecretsHelperNeedsAnActiveSecret(t *testing.T) {
	h := &SecretsHelperHandler{}
	game := deck.NewGameState()
	if h.ShowFromState(preferences.Default(), game, nil) {
		t.Error("shown with no opponent secrets")
	}

	withSecret := game.WithDeckFor(false, game.OpponentDeck.WithSecretAdded(deck.BoardSecret{EntityID: 9}))
	if !h.ShowFromState(preferences.Default(), withSecret, nil) {
		t.Error("hidden while the opponent has a secret up")
	}
}

func TestDeckTrackersHideInBattlegrounds(t *testing.T) {
	game := deck.NewGameState().WithMetadata(deck.Metadata{GameType: deck.GameTypeBattlegrounds})
	if (&PlayerDeckHandler{}).ShowFromState(preferences.Default(), game, nil) {
		t.Error("player tracker shown in battlegrounds")
	}
	if (&OpponentDeckHandler{}).ShowFromState(preferences.Default(), game, nil) {
		t.Error("opponent tracker shown in battlegrounds")
	}
}

func TestBattlegroundsOverlayHiddenDuringReconnect(t *testing.T) {
	h := &BattlegroundsHandler{}
	state := battlegrounds.NewState().WithInGame(true)
	if !h.ShowFromState(preferences.Default(), nil, state) {
		t.Error("hidden during a normal battlegrounds match")
	}
	if h.ShowFromState(preferences.Default(), nil, state.WithReconnect(true)) {
		t.Error("shown while a reconnect is ongoing")
	}
	if h.ShowFromState(preferences.Default(), nil, battlegrounds.NewState()) {
		t.Error("shown outside a match")
	}
}

func TestRecruitOnlyPreferenceGatesByPhase(t *testing.T) {
	h := &BattlegroundsHandler{}
	prefs := preferences.Default()
	prefs.BgsShowSimResultsOnlyOnRecruit = true

	state := battlegrounds.NewState().WithInGame(true)
	state = state.WithGame(bgs.NewGame("review-1"))
	if !h.ShowFromState(prefs, nil, state) {
		t.Error("hidden during the recruit phase")
	}

	combat := state.WithGame(state.Game().WithPhase(bgs.PhaseCombat))
	if h.ShowFromState(prefs, nil, combat) {
		t.Error("shown during combat despite the recruit-only preference")
	}
	if !h.ShowFromState(preferences.Default(), nil, combat) {
		t.Error("hidden during combat with the preference off")
	}
}

type fakePublisher struct {
	published []map[string]bool
}

func (f *fakePublisher) PublishOverlayState(visibility map[string]bool) {
	copied := make(map[string]bool, len(visibility))
	for k, v := range visibility {
		copied[k] = v
	}
	f.published = append(f.published, copied)
}

type staticPrefs struct {
	prefs preferences.Preferences
}

func (s *staticPrefs) Get(context.Context) preferences.Preferences {
	return s.prefs
}

func testManager() (*Manager, *fakePublisher) {
	pub := &fakePublisher{}
	m := NewManager(&staticPrefs{prefs: preferences.Default()}, pub, logger.New("test"))
	return m, pub
}

func TestManagerPublishesOnlyOnChange(t *testing.T) {
	m, pub := testManager()
	ctx := context.Background()
	game := deck.NewGameState()

	m.ProcessEvent(ctx, &events.GameEvent{Type: events.TypeGameStart}, game, nil)
	m.ProcessEvent(ctx, &events.GameEvent{
		Type:       events.TypeSceneChanged,
		Additional: &events.AdditionalData{Scene: "gameplay"},
	}, game, nil)

	if len(pub.published) != 2 {
		t.Fatalf("published %d maps, want 2", len(pub.published))
	}
	last := pub.published[len(pub.published)-1]
	if !last["player-deck"] {
		t.Error("player deck hidden on the gameplay screen")
	}
	if last["secrets-helper"] {
		t.Error("secrets helper shown with no secrets")
	}

	// Identical inputs must not publish again.
	m.Reevaluate(ctx, game, nil)
	if len(pub.published) != 2 {
		t.Errorf("published %d maps after a no-op reevaluation, want 2", len(pub.published))
	}
}

func TestManualCloseSticksUntilNextGame(t *testing.T) {
	m, pub := testManager()
	ctx := context.Background()
	game := deck.NewGameState()

	m.ProcessEvent(ctx, &events.GameEvent{Type: events.TypeGameStart}, game, nil)
	m.ProcessEvent(ctx, &events.GameEvent{
		Type:       events.TypeSceneChanged,
		Additional: &events.AdditionalData{Scene: "gameplay"},
	}, game, nil)
	m.ProcessEvent(ctx, &events.GameEvent{Type: events.TypeCloseTracker, CardID: "player-deck"}, game, nil)

	last := pub.published[len(pub.published)-1]
	if last["player-deck"] {
		t.Error("tracker still visible after the user closed it")
	}
	if !last["opponent-deck"] {
		t.Error("closing one overlay hid another")
	}

	// The next match reopens it.
	m.ProcessEvent(ctx, &events.GameEvent{Type: events.TypeGameStart}, game, nil)
	last = pub.published[len(pub.published)-1]
	if !last["player-deck"] {
		t.Error("tracker still closed after a new game started")
	}
}
