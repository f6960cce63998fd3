package tracker

import (
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

// CardBackToDeckParser returns a card to the deck from whatever zone the
// event says it left. The shuffled-back card forgets any temporary cost
// changes it picked up in hand.
type CardBackToDeckParser struct {
	cards *cards.Service
}

func (p *CardBackToDeckParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeCardBackToDeck && state.GameStarted
}

func (p *CardBackToDeckParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	var card deck.DeckCard
	var found bool
	switch ev.Data().InitialZone {
	case "HAND":
		var hand []deck.DeckCard
		hand, card, found = deck.RemoveSingleCardFromZone(d.Hand, cardID, entityID)
		if found {
			d = d.WithHand(hand)
		}
	case "PLAY":
		var board []deck.DeckCard
		board, card, found = deck.RemoveSingleCardFromZone(d.Board, cardID, entityID)
		if found {
			d = d.WithBoard(board)
		}
	default:
		var other []deck.DeckCard
		other, card, found = deck.RemoveSingleCardFromZone(d.OtherZone, cardID, entityID)
		if found {
			d = d.WithOtherZone(other)
		}
	}
	if !found {
		card = deck.EmptyCardFor(p.cards, cardID, entityID)
	}

	card = card.WithZone(deck.ZoneDeck).WithActualManaCost(card.ManaCost)
	d = d.WithDeck(deck.AddSingleCardToZone(d.Deck, card))
	return state.WithDeckFor(isPlayer, d), nil
}

// CardBackToHandParser bounces a board card back to its owner's hand.
type CardBackToHandParser struct {
	cards *cards.Service
}

func (p *CardBackToHandParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeCardBackToHand && state.GameStarted
}

func (p *CardBackToHandParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	board, card, found := deck.RemoveSingleCardFromZone(d.Board, cardID, entityID)
	if !found {
		card = deck.EmptyCardFor(p.cards, cardID, entityID)
	} else {
		d = d.WithBoard(board)
	}
	card = card.WithZone(deck.ZoneHand)
	d = d.WithHand(deck.AddSingleCardToZone(d.Hand, card))
	return state.WithDeckFor(isPlayer, d), nil
}

// CardBurnedParser handles overdraw: the card leaves the deck and is
// revealed in the other zone without ever reaching hand.
type CardBurnedParser struct {
	cards *cards.Service
}

func (p *CardBurnedParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeCardBurned && state.GameStarted
}

func (p *CardBurnedParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	newDeck, card, found := deck.RemoveSingleCardFromZone(d.Deck, cardID, entityID)
	if !found {
		card = deck.EmptyCardFor(p.cards, cardID, entityID)
	} else {
		d = d.WithDeck(newDeck)
	}
	if card.CardID == "" && cardID != "" {
		card = deck.EmptyCardFor(p.cards, cardID, entityID)
	}
	card = card.WithZone(deck.ZoneOther)
	d = d.WithOtherZone(deck.AddSingleCardToZone(d.OtherZone, card))
	return state.WithDeckFor(isPlayer, d), nil
}

// CardRemovedFromDeckParser handles direct removal (mill effects,
// transforms): the card leaves the deck and is not tracked anywhere else.
type CardRemovedFromDeckParser struct {
	cards *cards.Service
}

func (p *CardRemovedFromDeckParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeCardRemovedFromDeck && state.GameStarted
}

func (p *CardRemovedFromDeckParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	newDeck, _, found := deck.RemoveSingleCardFromZone(d.Deck, cardID, entityID)
	if !found {
		return state, nil
	}
	d = d.WithDeck(newDeck)
	return state.WithDeckFor(isPlayer, d), nil
}

// MinionSummonedParser puts a summoned token on the board. Unlike a played
// minion it never transits through hand and never counts as played.
type MinionSummonedParser struct {
	cards *cards.Service
}

func (p *MinionSummonedParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeMinionSummoned && state.GameStarted
}

func (p *MinionSummonedParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	card := deck.EmptyCardFor(p.cards, cardID, entityID).WithZone(deck.ZonePlay)
	if creator := ev.Data().CreatorCardID; creator != "" {
		card = card.WithCreator(creator)
	}
	d = d.WithBoard(deck.AddSingleCardToZone(d.Board, card))
	return state.WithDeckFor(isPlayer, d), nil
}

// MinionDiedParser moves a dead minion from the board to the other zone.
type MinionDiedParser struct{}

func (p *MinionDiedParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeMinionDied && state.GameStarted
}

func (p *MinionDiedParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	board, card, found := deck.RemoveSingleCardFromZone(d.Board, cardID, entityID)
	if !found {
		return state, nil
	}
	d = d.WithBoard(board)
	card = card.WithZone(deck.ZoneOther)
	d = d.WithOtherZone(deck.AddSingleCardToZone(d.OtherZone, card))
	return state.WithDeckFor(isPlayer, d), nil
}
