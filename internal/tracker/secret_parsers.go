package tracker

import (
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

// SecretPlayedParser handles a secret cast from hand. The card moves to
// the other zone flagged as an active secret, and a BoardSecret with the
// full class candidate list joins the secrets collection. A secret
// countered on the way down never becomes active.
type SecretPlayedParser struct {
	cards *cards.Service
}

func (p *SecretPlayedParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeSecretPlayed && state.GameStarted
}

func (p *SecretPlayedParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	newHand, card, found := deck.RemoveSingleCardFromZone(d.Hand, cardID, entityID)
	if !found {
		card = deck.EmptyCardFor(p.cards, cardID, entityID)
	} else {
		d = d.WithHand(newHand)
	}
	card = card.WithEntityID(entityID).WithZone(deck.ZoneSecret)
	d = d.WithOtherZone(deck.AddSingleCardToZone(d.OtherZone, card))

	if countered(ev.Data().SecretWillTrigger, cardID, entityID) {
		return state.WithDeckFor(isPlayer, d), nil
	}

	d = d.WithCardPlayedThisTurn(card)
	d = d.WithSpellPlayed()
	d = d.WithSecretAdded(newSecret(p.cards, cardID, entityID, ev.Data().PlayerClass))
	return state.WithDeckFor(isPlayer, d), nil
}

// SecretPutInPlayParser handles a secret entering play without being cast
// from hand (tutored, created, copied). The card instance is tracked in the
// other zone but no candidate record is created: only a deliberate cast
// carries enough context to seed the helper.
type SecretPutInPlayParser struct {
	cards *cards.Service
}

func (p *SecretPutInPlayParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeSecretPutInPlay && state.GameStarted
}

func (p *SecretPutInPlayParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer)

	newDeck, card, found := deck.RemoveSingleCardFromZone(d.Deck, cardID, entityID)
	if found {
		d = d.WithDeck(newDeck)
	} else {
		card = deck.EmptyCardFor(p.cards, cardID, entityID)
	}
	card = card.WithEntityID(entityID).WithZone(deck.ZoneSecret)
	d = d.WithOtherZone(deck.AddSingleCardToZone(d.OtherZone, card))
	return state.WithDeckFor(isPlayer, d), nil
}

// SecretTriggeredParser retires a secret once it fires. The revealed
// identity is ruled out for the side's remaining secrets, since a class
// cannot have two copies of the same secret in play.
type SecretTriggeredParser struct{}

func (p *SecretTriggeredParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeSecretTriggered && state.GameStarted
}

func (p *SecretTriggeredParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	cardID, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer).WithSecretRemoved(entityID)
	if cardID != "" && len(d.Secrets) > 0 {
		secrets := make([]deck.BoardSecret, len(d.Secrets))
		for i, s := range d.Secrets {
			secrets[i] = s.WithRuledOut(cardID)
		}
		d = d.WithSecrets(secrets)
	}
	return state.WithDeckFor(isPlayer, d), nil
}

// SecretDestroyedParser retires a secret removed without firing.
type SecretDestroyedParser struct{}

func (p *SecretDestroyedParser) Applies(ev *events.GameEvent, state *deck.GameState) bool {
	return ev.Type == events.TypeSecretDestroyed && state.GameStarted
}

func (p *SecretDestroyedParser) Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error) {
	_, _, _, entityID := ev.Parse()
	isPlayer := ev.IsLocalPlayer()
	d := state.DeckFor(isPlayer).WithSecretRemoved(entityID)
	return state.WithDeckFor(isPlayer, d), nil
}

func newSecret(svc *cards.Service, cardID string, entityID int, playerClass string) deck.BoardSecret {
	heroClass := playerClass
	if heroClass == "" {
		heroClass = svc.GetCard(cardID).PlayerClass
	}
	return deck.NewBoardSecret(entityID, cardID, CandidateSecretsFor(heroClass))
}
