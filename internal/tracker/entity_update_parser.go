package tracker

import (
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

// EntityUpdateParser folds late-arriving entity information into tracked
// instances: a face-down card revealed, or an unknown transformed card
// confirmed against its match condition.
type EntityUpdateParser struct {
	cards *cards.Service
}

func (p *EntityUpdateParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeEntityUpdate && state.GameStarted &&
		ev.EntityID != 0 && ev.CardID != ""
}

func (p *EntityUpdateParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)
	ref := p.cards.GetCard(cardID)

	updated := false
	resolve := func(zone []deck.DeckCard) []deck.DeckCard {
		idx := deck.FindResolutionIndex(zone, ref, entityID)
		if idx < 0 {
			return zone
		}
		existing := zone[idx]
		if existing.CardID == cardID {
			return zone
		}
		if existing.MatchCondition != nil && !existing.MatchCondition(ref) {
			return zone
		}
		resolved := deck.EmptyCardFor(p.cards, cardID, entityID).
			WithZone(existing.Zone).
			WithCreator(existing.CreatorCardID)
		if existing.ActualManaCost != existing.ManaCost && existing.HasKnownCost() {
			resolved = resolved.WithActualManaCost(existing.ActualManaCost)
		}
		updated = true
		return deck.ReplaceCardAt(zone, idx, resolved)
	}

	d = d.WithZones(resolve(d.Deck), resolve(d.Hand), resolve(d.Board), resolve(d.OtherZone))
	if !updated {
		return state, nil
	}
	return state.WithDeckFor(isPlayer, d), nil
}

// PassiveTriggeredParser records passive effects that change the rest of
// the match, surfacing them in the global effects list.
type PassiveTriggeredParser struct {
	cards *cards.Service
}

func (p *PassiveTriggeredParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypePassiveTriggered && state.GameStarted
}

func (p *PassiveTriggeredParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	if !isGlobalEffect(cardID) {
		return state, nil
	}
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)
	d = d.WithGlobalEffect(deck.EmptyCardFor(p.cards, cardID, entityID))
	d = ModifyDeckForSpecialCard(cardID, d)
	return state.WithDeckFor(isPlayer, d), nil
}
