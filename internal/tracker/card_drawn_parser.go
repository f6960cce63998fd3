package tracker

import (
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

// CardDrawnParser moves one card from deck to hand. The opponent's drawn
// cards stay face down: identity is stripped, only the entity id survives
// so later reveals can resolve the instance.
type CardDrawnParser struct {
	cards *cards.Service
}

func (p *CardDrawnParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeCardDrawn && state.GameStarted
}

func (p *CardDrawnParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	newDeck, card, found := deck.RemoveSingleCardFromZone(d.Deck, cardID, entityID)
	if !found {
		card = deck.EmptyCardFor(p.cards, cardID, entityID)
	}
	if card.CardID == "" && cardID != "" {
		card = deck.EmptyCardFor(p.cards, cardID, entityID)
	}
	card = card.WithEntityID(entityID).WithZone(deck.ZoneHand)
	if creator := ev.Data().CreatorCardID; creator != "" {
		card = card.WithCreator(creator)
	}
	if !isPlayer {
		card = card.Obfuscated()
	}

	d = d.WithDeck(newDeck)
	d = d.WithHand(deck.AddSingleCardToZone(d.Hand, card))
	return state.WithDeckFor(isPlayer, d), nil
}

// ReceivedCardInHandParser adds a created card straight to hand, leaving
// the deck untouched.
type ReceivedCardInHandParser struct {
	cards *cards.Service
}

func (p *ReceivedCardInHandParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeReceiveCardInHand && state.GameStarted
}

func (p *ReceivedCardInHandParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	card := deck.EmptyCardFor(p.cards, cardID, entityID).WithZone(deck.ZoneHand)
	if creator := ev.Data().CreatorCardID; creator != "" {
		card = card.WithCreator(creator)
	}
	if !isPlayer {
		card = card.Obfuscated().WithCreator(ev.Data().CreatorCardID)
	}

	d = d.WithHand(deck.AddSingleCardToZone(d.Hand, card))
	return state.WithDeckFor(isPlayer, d), nil
}
