package tracker

import (
	"strings"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

// CardPlayedParser moves a card from hand to its destination zone: board
// for minions and locations, the other zone for everything else. A play
// countered by a queued secret never reaches its destination and does not
// count as played this turn.
type CardPlayedParser struct {
	cards *cards.Service
}

func (p *CardPlayedParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeCardPlayed && state.GameStarted
}

func (p *CardPlayedParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	newHand, card, found := deck.RemoveSingleCardFromZone(d.Hand, cardID, entityID)
	if !found {
		card = deck.EmptyCardFor(p.cards, cardID, entityID)
	}
	if card.CardID == "" && cardID != "" {
		// The instance was face down in our tracking; the play reveals it.
		card = deck.EmptyCardFor(p.cards, cardID, entityID)
	}
	card = card.WithEntityID(entityID)
	d = d.WithHand(newHand)

	if countered(ev.Data().SecretWillTrigger, cardID, entityID) {
		// The counter absorbed the play; the card ends up tagged with the
		// secret zone it was eaten by.
		card = card.WithZone(deck.ZoneSecret)
		d = d.WithOtherZone(deck.AddSingleCardToZone(d.OtherZone, card))
		return state.WithDeckFor(isPlayer, d), nil
	}

	ref := p.cards.GetCard(cardID)
	if onBoardWhenPlayed(ref.Type) {
		card = card.WithZone(deck.ZonePlay)
		d = d.WithBoard(deck.AddSingleCardToZone(d.Board, card))
	} else {
		card = card.WithZone(deck.ZoneOther)
		d = d.WithOtherZone(deck.AddSingleCardToZone(d.OtherZone, card))
	}

	d = d.WithCardPlayedThisTurn(card)
	if strings.EqualFold(ref.Type, "SPELL") {
		d = d.WithSpellPlayed()
	}
	if isGlobalEffect(cardID) {
		d = d.WithGlobalEffect(card)
	}
	d = ModifyDeckForSpecialCard(cardID, d)
	return state.WithDeckFor(isPlayer, d), nil
}

// countered reports whether the pending secret trigger negates this play.
// Only counter-style secrets remove the card from play entirely.
func countered(trigger *events.SecretTrigger, cardID string, entityID int) bool {
	if trigger == nil {
		return false
	}
	if trigger.ReactingToEntityID != 0 && trigger.ReactingToEntityID != entityID {
		return false
	}
	if trigger.ReactingToEntityID == 0 && trigger.ReactingToCardID != cardID {
		return false
	}
	return trigger.CardID == cardCounterspell || trigger.CardID == cardOhMyYogg
}

func onBoardWhenPlayed(cardType string) bool {
	switch strings.ToUpper(cardType) {
	case "MINION", "LOCATION", "BATTLEGROUND_SPELL":
		return true
	default:
		return false
	}
}
