package deck

import (
	"strings"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
)

// FindResolutionIndex locates the instance an identity reveal should land
// on: the exact entity when one is registered, otherwise the first
// identity-less placeholder whose match condition accepts the revealed
// card (placeholders without a condition accept anything). Returns -1 when
// nothing in the zone can take the reveal.
func FindResolutionIndex(zone []DeckCard, ref cards.Card, entityID int) int {
	if entityID != 0 {
		for i, c := range zone {
			if c.EntityID == entityID {
				return i
			}
		}
	}
	for i, c := range zone {
		if c.EntityID != 0 || c.CardID != "" {
			continue
		}
		if c.MatchCondition != nil && !c.MatchCondition(ref) {
			continue
		}
		return i
	}
	return -1
}

// RemoveSingleCardFromZone removes exactly one matching instance from the
// zone and returns the new collection, the removed card, and whether a
// match was found. Preference order: entity id, then card id, then an
// identity-less placeholder.
func RemoveSingleCardFromZone(zone []DeckCard, cardID string, entityID int) ([]DeckCard, DeckCard, bool) {
	if entityID != 0 {
		for i, c := range zone {
			if c.EntityID == entityID {
				return removeAt(zone, i), c, true
			}
		}
	}
	for i, c := range zone {
		if c.EntityID == 0 && c.CardID == cardID {
			return removeAt(zone, i), c, true
		}
	}
	if cardID != "" {
		for i, c := range zone {
			if c.CardID == cardID {
				return removeAt(zone, i), c, true
			}
		}
	}
	// Last resort: consume one identity-less placeholder.
	for i, c := range zone {
		if c.CardID == "" && c.EntityID == 0 {
			return removeAt(zone, i), c, true
		}
	}
	return zone, DeckCard{}, false
}

func removeAt(zone []DeckCard, idx int) []DeckCard {
	out := make([]DeckCard, 0, len(zone)-1)
	out = append(out, zone[:idx]...)
	out = append(out, zone[idx+1:]...)
	return out
}

// AddSingleCardToZone appends one card to a zone collection.
func AddSingleCardToZone(zone []DeckCard, card DeckCard) []DeckCard {
	out := make([]DeckCard, 0, len(zone)+1)
	out = append(out, zone...)
	out = append(out, card)
	return out
}

// ReplaceCardAt swaps the instance at idx for the given card, returning a
// new collection.
func ReplaceCardAt(zone []DeckCard, idx int, card DeckCard) []DeckCard {
	out := make([]DeckCard, len(zone))
	copy(out, zone)
	out[idx] = card
	return out
}

// EmptyCardFor synthesizes a best-effort card from reference data, used
// when a zone lookup fails while catching up from partial logs.
func EmptyCardFor(svc *cards.Service, cardID string, entityID int) DeckCard {
	ref := svc.GetCard(cardID)
	if ref.ID == "" {
		card := UnknownCard(entityID)
		card.CardID = cardID
		return card
	}
	return DeckCard{
		CardID:         cardID,
		EntityID:       entityID,
		CardName:       ref.Name,
		ManaCost:       ref.Cost,
		ActualManaCost: ref.Cost,
		Rarity:         strings.ToLower(ref.Rarity),
		CardType:       ref.Type,
		Race:           ref.Race,
	}
}
