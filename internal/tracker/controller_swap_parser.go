package tracker

import (
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

// ControllerSwapParser handles effects that temporarily hand a player the
// opponent's deck and hand (Mindrender Illucia). The swap exchanges the
// library-related collections wholesale; board and graveyard stay put. The
// end event applies the same exchange, restoring the original owners.
type ControllerSwapParser struct{}

func (p *ControllerSwapParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return (ev.Type == events.TypeControllerSwapStart || ev.Type == events.TypeControllerSwapEnd) &&
		state.GameStarted
}

func (p *ControllerSwapParser) Parse(state *deck.GameState, _ *events.GameEvent) (*deck.GameState, error) {
	player, opponent := state.PlayerDeck, state.OpponentDeck

	newPlayer := swapLibrary(player, opponent)
	newOpponent := swapLibrary(opponent, player)
	return state.WithDecks(newPlayer, newOpponent), nil
}

// swapLibrary returns dst carrying src's library collections.
func swapLibrary(dst, src deck.DeckState) deck.DeckState {
	dst.DeckList = src.DeckList
	dst.Deckstring = src.Deckstring
	dst = dst.WithDeck(src.Deck)
	dst = dst.WithHand(src.Hand)
	return dst
}
