package tracker

import (
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

// GameStartParser resets the aggregate to a fresh match.
type GameStartParser struct{}

func (p *GameStartParser) Applies(ev *events.GameEvent, _ *deck.GameState) bool {
	return ev.Type == events.TypeGameStart
}

func (p *GameStartParser) Parse(_ *deck.GameState, _ *events.GameEvent) (*deck.GameState, error) {
	return deck.NewGameState().WithGameStarted(), nil
}

// GameEndParser marks the match over but keeps zone contents so end-of-game
// consumers (stats, collection) can still read the final state.
type GameEndParser struct{}

func (p *GameEndParser) Applies(ev *events.GameEvent, _ *deck.GameState) bool {
	return ev.Type == events.TypeGameEnd
}

func (p *GameEndParser) Parse(state *deck.GameState, _ *events.GameEvent) (*deck.GameState, error) {
	return state.WithGameEnded(), nil
}

// MatchMetadataParser records game type, format and scenario.
type MatchMetadataParser struct{}

func (p *MatchMetadataParser) Applies(ev *events.GameEvent, _ *deck.GameState) bool {
	return ev.Type == events.TypeMatchMetadata
}

func (p *MatchMetadataParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	data := ev.Data()
	return state.WithMetadata(deck.Metadata{
		GameType:   data.GameType,
		FormatType: data.FormatType,
		ScenarioID: data.ScenarioID,
	}), nil
}

// LocalPlayerParser seeds the player deck from the decklist announced at
// match start. The deck list is kept as the pristine reference list; the
// live deck zone starts as a copy of it.
type LocalPlayerParser struct {
	cards *cards.Service
}

func (p *LocalPlayerParser) Applies(ev *events.GameEvent, _ *deck.GameState) bool {
	return ev.Type == events.TypeLocalPlayer
}

func (p *LocalPlayerParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	data := ev.Data()
	list := make([]deck.DeckCard, 0, len(data.DeckList))
	for _, cardID := range data.DeckList {
		list = append(list, deck.NewDeckCard(p.cards.GetCard(cardID), 0))
	}
	d := state.PlayerDeck
	d.HeroClass = data.PlayerClass
	d.Deckstring = data.Deckstring
	d.DeckList = list
	d = d.WithDeck(append([]deck.DeckCard(nil), list...))
	return state.WithDeckFor(true, d), nil
}

// TurnStartParser bumps the turn counter and resets the per-turn played
// cards list on both decks.
type TurnStartParser struct{}

func (p *TurnStartParser) Applies(ev *events.GameEvent, _ *deck.GameState) bool {
	return ev.Type == events.TypeTurnStart
}

func (p *TurnStartParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	next := state.WithTurn(ev.Data().TurnNumber)
	next = next.WithDecks(next.PlayerDeck.WithTurnReset(), next.OpponentDeck.WithTurnReset())
	return next, nil
}

// ReconnectParser tracks the reconnect window. While reconnecting the zone
// parsers still run (the game replays the full event stream), but consumers
// can suppress notifications until the window closes.
type ReconnectParser struct{}

func (p *ReconnectParser) Applies(ev *events.GameEvent, _ *deck.GameState) bool {
	return ev.Type == events.TypeReconnectStart || ev.Type == events.TypeReconnectOver
}

func (p *ReconnectParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	return state.WithReconnecting(ev.Type == events.TypeReconnectStart), nil
}

// LogTruncatedParser resets the aggregate when the game log restarts from
// the top; the replayed lines rebuild state from scratch.
type LogTruncatedParser struct{}

func (p *LogTruncatedParser) Applies(ev *events.GameEvent, _ *deck.GameState) bool {
	return ev.Type == events.TypeLogFileTruncated
}

func (p *LogTruncatedParser) Parse(_ *deck.GameState, _ *events.GameEvent) (*deck.GameState, error) {
	return deck.NewGameState(), nil
}
