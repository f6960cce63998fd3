package bgs

import (
	"fmt"
	"strings"
)

// BattleInfoStatus gates what the battle widget may display.
type BattleInfoStatus string

const (
	// BattleStatusEmpty means no usable board data for the current matchup.
	BattleStatusEmpty BattleInfoStatus = "empty"
	// BattleStatusWaiting means a snapshot was captured and a simulation is
	// in flight.
	BattleStatusWaiting BattleInfoStatus = "waiting-for-result"
	// BattleStatusDone means a result (or an unsupported-scenario message)
	// is available.
	BattleStatusDone BattleInfoStatus = "done"
)

// Phase is the current sub-phase of a battlegrounds turn.
type Phase string

const (
	PhaseRecruit Phase = "recruit"
	PhaseCombat  Phase = "combat"
)

// HeroGhost is the stand-in hero the game uses when fighting a dead
// player's leftover board.
const HeroGhost = "TB_BaconShop_HERO_KelThuzad"

// boardHistoryLimit bounds each player's retained board snapshots.
const boardHistoryLimit = 50

// Player is one of the eight heroes in a battlegrounds match.
type Player struct {
	CardID              string          `json:"cardId"`
	Name                string          `json:"name"`
	IsMainPlayer        bool            `json:"isMainPlayer"`
	TavernTier          int             `json:"tavernTier"`
	HpLeft              int             `json:"hpLeft"`
	LeaderboardPosition int             `json:"leaderboardPosition"`
	BoardHistory        []BoardSnapshot `json:"boardHistory,omitempty"`
}

// WithBoardSnapshot appends an observed board to the player's history,
// dropping the oldest entry past the retention limit.
func (p Player) WithBoardSnapshot(snapshot BoardSnapshot) Player {
	history := make([]BoardSnapshot, 0, len(p.BoardHistory)+1)
	history = append(history, p.BoardHistory...)
	history = append(history, snapshot)
	if len(history) > boardHistoryLimit {
		history = history[len(history)-boardHistoryLimit:]
	}
	p.BoardHistory = history
	return p
}

// LastKnownBoard returns the most recent observed board, or nil.
func (p Player) LastKnownBoard() []BoardEntity {
	if len(p.BoardHistory) == 0 {
		return nil
	}
	return p.BoardHistory[len(p.BoardHistory)-1].Board
}

// Game is the battlegrounds aggregate for one match. All update methods
// return a new value; a Game held by a consumer is never mutated.
type Game struct {
	ReviewID           string           `json:"reviewId"`
	Players            []Player         `json:"players"`
	CurrentTurn        int              `json:"currentTurn"`
	Phase              Phase            `json:"phase"`
	FaceOffs           []FaceOff        `json:"faceOffs"`
	BattleInfoStatus   BattleInfoStatus `json:"battleInfoStatus"`
	BattleInfoMessage  string           `json:"battleInfoMessage,omitempty"`
	LastOpponentCardID string           `json:"lastOpponentCardId,omitempty"`
	GameEnded          bool             `json:"gameEnded"`
}

// NewGame returns an empty game positioned before the first recruit phase.
func NewGame(reviewID string) Game {
	return Game{
		ReviewID:         reviewID,
		CurrentTurn:      1,
		Phase:            PhaseRecruit,
		BattleInfoStatus: BattleStatusEmpty,
	}
}

// NormalizeHeroCardID strips skin suffixes so the same hero compares equal
// across cosmetic variants.
func NormalizeHeroCardID(cardID string) string {
	if idx := strings.Index(cardID, "_SKIN"); idx != -1 {
		return cardID[:idx]
	}
	return cardID
}

// MainPlayer returns the local player, or a zero Player when not yet known.
func (g Game) MainPlayer() Player {
	for _, p := range g.Players {
		if p.IsMainPlayer {
			return p
		}
	}
	return Player{}
}

// PlayerByHero returns the player with the given (normalized) hero card id.
func (g Game) PlayerByHero(cardID string) (Player, bool) {
	want := NormalizeHeroCardID(cardID)
	for _, p := range g.Players {
		if NormalizeHeroCardID(p.CardID) == want {
			return p, true
		}
	}
	return Player{}, false
}

// UpdatePlayer replaces the player with the same normalized hero card id.
func (g Game) UpdatePlayer(updated Player) Game {
	want := NormalizeHeroCardID(updated.CardID)
	players := make([]Player, len(g.Players))
	for i, p := range g.Players {
		if NormalizeHeroCardID(p.CardID) == want {
			players[i] = updated
		} else {
			players[i] = p
		}
	}
	g.Players = players
	return g
}

// WithPlayer appends a newly revealed player.
func (g Game) WithPlayer(p Player) Game {
	players := make([]Player, 0, len(g.Players)+1)
	players = append(players, g.Players...)
	players = append(players, p)
	g.Players = players
	return g
}

// WithFaceOff appends a new face-off. Face-offs are append-only; existing
// entries are updated in place by identity, never reordered.
func (g Game) WithFaceOff(f FaceOff) Game {
	faceOffs := make([]FaceOff, 0, len(g.FaceOffs)+1)
	faceOffs = append(faceOffs, g.FaceOffs...)
	faceOffs = append(faceOffs, f)
	g.FaceOffs = faceOffs
	return g
}

// UpdateLastFaceOff merges update into the most recent pending face-off
// against the given opponent hero. Matching is by content, not position:
// asynchronous simulation results can arrive interleaved with newer log
// events, so the target is re-identified on every merge. An update that
// matches no pending entry is rejected with an error and the game is
// returned unchanged.
func (g Game) UpdateLastFaceOff(opponentHeroCardID string, update FaceOff) (Game, error) {
	if len(g.FaceOffs) == 0 {
		return g, fmt.Errorf("no face-off to update for opponent %s", opponentHeroCardID)
	}

	want := NormalizeHeroCardID(opponentHeroCardID)
	for i := len(g.FaceOffs) - 1; i >= 0; i-- {
		candidate := g.FaceOffs[i]
		if !candidate.Pending() {
			continue
		}
		// The ghost fights with a dead player's board, so its id never
		// matches the recorded opponent.
		if NormalizeHeroCardID(candidate.OpponentCardID) != want && want != HeroGhost {
			continue
		}
		faceOffs := make([]FaceOff, len(g.FaceOffs))
		copy(faceOffs, g.FaceOffs)
		faceOffs[i] = candidate.Merge(update)
		g.FaceOffs = faceOffs
		return g, nil
	}

	return g, fmt.Errorf("no pending face-off matches opponent %s (have %d face-offs)", opponentHeroCardID, len(g.FaceOffs))
}

// RecordBattleResult sets the actual combat outcome on the most recent
// face-off against the opponent that has no outcome yet. A simulation
// result may already be attached; the two are independent.
func (g Game) RecordBattleResult(opponentHeroCardID, result string) (Game, error) {
	want := NormalizeHeroCardID(opponentHeroCardID)
	for i := len(g.FaceOffs) - 1; i >= 0; i-- {
		candidate := g.FaceOffs[i]
		if candidate.Result != "" {
			continue
		}
		if NormalizeHeroCardID(candidate.OpponentCardID) != want && want != HeroGhost {
			continue
		}
		faceOffs := make([]FaceOff, len(g.FaceOffs))
		copy(faceOffs, g.FaceOffs)
		faceOffs[i] = candidate.Merge(FaceOff{Result: result})
		g.FaceOffs = faceOffs
		return g, nil
	}
	return g, fmt.Errorf("no open face-off for battle result against %s", opponentHeroCardID)
}

// LastFaceOff returns the most recent face-off, or a zero value.
func (g Game) LastFaceOff() (FaceOff, bool) {
	if len(g.FaceOffs) == 0 {
		return FaceOff{}, false
	}
	return g.FaceOffs[len(g.FaceOffs)-1], true
}

// CurrentTurnAdjustedForAsyncPlay compensates for players resolving their
// battles at different speeds: while the local combat still runs, other
// players may already be shopping in the next recruit phase.
func (g Game) CurrentTurnAdjustedForAsyncPlay() int {
	if g.Phase == PhaseCombat {
		return g.CurrentTurn + 1
	}
	return g.CurrentTurn
}

// WithTurn sets the normalized turn counter.
func (g Game) WithTurn(turn int) Game {
	g.CurrentTurn = turn
	return g
}

// WithPhase sets the current sub-phase.
func (g Game) WithPhase(phase Phase) Game {
	g.Phase = phase
	return g
}

// WithBattleInfoStatus sets the battle widget status and its message.
func (g Game) WithBattleInfoStatus(status BattleInfoStatus, message string) Game {
	g.BattleInfoStatus = status
	g.BattleInfoMessage = message
	return g
}

// WithLastOpponent records the hero currently being fought.
func (g Game) WithLastOpponent(cardID string) Game {
	g.LastOpponentCardID = cardID
	return g
}

// WithGameEnded marks the match as over.
func (g Game) WithGameEnded() Game {
	g.GameEnded = true
	return g
}
