// Package battlegrounds maintains the battlegrounds match aggregate from
// game events: player roster and boards, face-off history, and the battle
// simulation round trip.
package battlegrounds

import "github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"

// State is the battlegrounds aggregate. CurrentGame is nil outside a match.
type State struct {
	InGame           bool      `json:"inGame"`
	CurrentGame      *bgs.Game `json:"currentGame,omitempty"`
	ReconnectOngoing bool      `json:"reconnectOngoing"`
}

func NewState() *State {
	return &State{}
}

func (s *State) WithGame(g bgs.Game) *State {
	next := *s
	next.CurrentGame = &g
	return &next
}

func (s *State) WithInGame(inGame bool) *State {
	next := *s
	next.InGame = inGame
	return &next
}

func (s *State) WithReconnect(ongoing bool) *State {
	next := *s
	next.ReconnectOngoing = ongoing
	return &next
}

// Game returns the current game, or a zero game when none is running.
func (s *State) Game() bgs.Game {
	if s.CurrentGame == nil {
		return bgs.Game{}
	}
	return *s.CurrentGame
}
