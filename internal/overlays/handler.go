// Package overlays decides which in-game overlay windows should be
// visible. Each overlay has a handler combining three inputs: what the
// preferences allow, what the current game state warrants, and transient
// session flags. The transient flags are hard vetoes.
package overlays

import (
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/battlegrounds"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/preferences"
)

// Flags are the session-scoped inputs that override everything else.
type Flags struct {
	ClosedByUser bool
	GameStarted  bool
	OnGameScreen bool
}

// ShouldShow is the single visibility rule: vetoes first, then both the
// preference gate and the state gate must agree.
func ShouldShow(fromPrefs, fromState bool, flags Flags) bool {
	if flags.ClosedByUser || !flags.GameStarted || !flags.OnGameScreen {
		return false
	}
	return fromPrefs && fromState
}

// Handler is the per-overlay policy. ShowFromState also receives the
// preferences snapshot for policies whose state rule depends on a setting.
type Handler interface {
	Name() string
	ShowFromPreferences(prefs preferences.Preferences) bool
	ShowFromState(prefs preferences.Preferences, game *deck.GameState, bgsState *battlegrounds.State) bool
}

// PlayerDeckHandler shows the player's own decktracker.
type PlayerDeckHandler struct{}

func (h *PlayerDeckHandler) Name() string { return "player-deck" }

func (h *PlayerDeckHandler) ShowFromPreferences(prefs preferences.Preferences) bool {
	return prefs.DecktrackerShowPlayer
}

func (h *PlayerDeckHandler) ShowFromState(_ preferences.Preferences, game *deck.GameState, _ *battlegrounds.State) bool {
	return game != nil && !game.IsBattlegrounds()
}

// OpponentDeckHandler shows the opponent's played-cards tracker.
type OpponentDeckHandler struct{}

func (h *OpponentDeckHandler) Name() string { return "opponent-deck" }

func (h *OpponentDeckHandler) ShowFromPreferences(prefs preferences.Preferences) bool {
	return prefs.DecktrackerShowOpponent
}

func (h *OpponentDeckHandler) ShowFromState(_ preferences.Preferences, game *deck.GameState, _ *battlegrounds.State) bool {
	return game != nil && !game.IsBattlegrounds()
}

// SecretsHelperHandler shows the opponent-secret candidate list, only
// while the opponent has at least one secret up.
type SecretsHelperHandler struct{}

func (h *SecretsHelperHandler) Name() string { return "secrets-helper" }

func (h *SecretsHelperHandler) ShowFromPreferences(prefs preferences.Preferences) bool {
	return prefs.OverlayShowSecretsHelper
}

func (h *SecretsHelperHandler) ShowFromState(_ preferences.Preferences, game *deck.GameState, _ *battlegrounds.State) bool {
	return game != nil && !game.IsBattlegrounds() && len(game.OpponentDeck.Secrets) > 0
}

// BattlegroundsHandler shows the battle odds window. Hidden during a
// reconnect since the aggregate may be mid-rebuild.
type BattlegroundsHandler struct{}

func (h *BattlegroundsHandler) Name() string { return "battlegrounds" }

func (h *BattlegroundsHandler) ShowFromPreferences(prefs preferences.Preferences) bool {
	return prefs.BgsEnableSimulation
}

func (h *BattlegroundsHandler) ShowFromState(prefs preferences.Preferences, game *deck.GameState, bgsState *battlegrounds.State) bool {
	if bgsState == nil || !bgsState.InGame || bgsState.ReconnectOngoing {
		return false
	}
	if game != nil && !game.IsBattlegrounds() {
		return false
	}
	if prefs.BgsShowSimResultsOnlyOnRecruit && bgsState.Game().Phase != bgs.PhaseRecruit {
		return false
	}
	return true
}
