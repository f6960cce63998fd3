// Package deck holds the decktracker aggregates: the per-card lifecycle
// model, each player's zone collections, and the match-level game state.
// Everything follows copy-on-write semantics: update methods return new
// values and never mutate the receiver's slices in place.
package deck

import (
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
)

// Zone is a named logical location for a card instance.
type Zone string

const (
	ZoneDeck   Zone = "DECK"
	ZoneHand   Zone = "HAND"
	ZonePlay   Zone = "PLAY"
	ZoneSecret Zone = "SECRET"
	ZoneOther  Zone = "OTHER"
)

// costUnknown marks a cost field with no known value (distinct from a real
// cost of zero).
const costUnknown = -1

// MatchCondition is used to later resolve an unknown card's true identity:
// when a candidate reference card becomes visible, the condition decides
// whether it can be this card.
type MatchCondition func(ref cards.Card) bool

// DeckCard is one conceptual copy of a card at a point in its lifecycle.
// CardID may be empty ("identity unknown", face-down or opponent cards);
// EntityID is zero until the engine assigns a concrete instance. Once the
// entity id is known, (CardID, EntityID) uniquely identifies the card
// within a zone collection.
type DeckCard struct {
	CardID         string         `json:"cardId,omitempty"`
	EntityID       int            `json:"entityId,omitempty"`
	CardName       string         `json:"cardName,omitempty"`
	ManaCost       int            `json:"manaCost"`
	ActualManaCost int            `json:"actualManaCost"`
	Rarity         string         `json:"rarity,omitempty"`
	CardType       string         `json:"cardType,omitempty"`
	Race           string         `json:"race,omitempty"`
	Zone           Zone           `json:"zone,omitempty"`
	CreatorCardID  string         `json:"creatorCardId,omitempty"`
	MatchCondition MatchCondition `json:"-"`
}

// NewDeckCard builds a card from a reference entry. The effective cost
// starts equal to the printed cost.
func NewDeckCard(ref cards.Card, entityID int) DeckCard {
	return DeckCard{
		CardID:         ref.ID,
		EntityID:       entityID,
		CardName:       ref.Name,
		ManaCost:       ref.Cost,
		ActualManaCost: ref.Cost,
		Rarity:         ref.Rarity,
		CardType:       ref.Type,
		Race:           ref.Race,
	}
}

// UnknownCard builds a placeholder for a card whose identity is not known.
func UnknownCard(entityID int) DeckCard {
	return DeckCard{
		EntityID:       entityID,
		ManaCost:       costUnknown,
		ActualManaCost: costUnknown,
	}
}

// EffectiveManaCost returns the cost after buffs and effects, falling back
// to the printed cost when no effect applied.
func (c DeckCard) EffectiveManaCost() int {
	if c.ActualManaCost != costUnknown {
		return c.ActualManaCost
	}
	return c.ManaCost
}

// HasKnownCost reports whether any cost information exists for the card.
func (c DeckCard) HasKnownCost() bool {
	return c.ManaCost != costUnknown || c.ActualManaCost != costUnknown
}

// WithZone returns the card placed in a new zone.
func (c DeckCard) WithZone(zone Zone) DeckCard {
	c.Zone = zone
	return c
}

// WithEntityID returns the card bound to a concrete engine instance.
func (c DeckCard) WithEntityID(entityID int) DeckCard {
	c.EntityID = entityID
	return c
}

// WithActualManaCost returns the card with its effective cost rewritten.
func (c DeckCard) WithActualManaCost(cost int) DeckCard {
	c.ActualManaCost = cost
	return c
}

// WithCreator returns the card with provenance recorded.
func (c DeckCard) WithCreator(creatorCardID string) DeckCard {
	c.CreatorCardID = creatorCardID
	return c
}

// Obfuscated strips the card's identity fields, used when a card enters a
// zone visible only to its owner. The entity id is kept so later zone
// transfers can still locate the instance.
func (c DeckCard) Obfuscated() DeckCard {
	c.CardID = ""
	c.CardName = ""
	c.Rarity = ""
	c.CreatorCardID = ""
	c.MatchCondition = nil
	return c
}

// SameCard reports whether other refers to the same conceptual instance.
// With both entity ids assigned the comparison is exact; otherwise it falls
// back to card-id identity.
func (c DeckCard) SameCard(other DeckCard) bool {
	if c.EntityID != 0 && other.EntityID != 0 {
		return c.EntityID == other.EntityID
	}
	return c.CardID != "" && c.CardID == other.CardID
}
