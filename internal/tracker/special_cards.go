package tracker

import (
	"strings"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
)

// Cards whose play permanently reshapes the rest of the match and is worth
// pinning in the global effects list.
var globalEffectCards = map[string]bool{
	cardEmbiggen:          true,
	cardIncantersFlow:     true,
	cardDeckOfLunacy:      true,
	cardWyrmrestPurifier:  true,
	cardPrinceLiam:        true,
	cardFrizzKindleroost:  true,
	cardLunasPocketGalaxy: true,
}

func isGlobalEffect(cardID string) bool {
	return globalEffectCards[cardID]
}

// ModifyDeckForSpecialCard applies the deck-wide consequences of playing a
// card that rewrites or re-costs the remaining library. Cards without such
// an effect return the deck unchanged.
func ModifyDeckForSpecialCard(playedCardID string, d deck.DeckState) deck.DeckState {
	switch playedCardID {
	case cardEmbiggen:
		return updateDeckCost(d, isMinion, +1)
	case cardIncantersFlow:
		return updateDeckCost(d, isSpell, -1)
	case cardFrizzKindleroost:
		return updateDeckCost(d, isDragon, -2)
	case cardLunasPocketGalaxy:
		return setDeckCost(d, isMinion, 1)
	case cardAldorAttendant:
		return updateEverywhereCost(d, isLibram, -1)
	case cardAldorTruthseeker:
		return updateEverywhereCost(d, isLibram, -2)
	case cardWyrmrestPurifier:
		return transformDeck(d, isClassicNeutral, nil)
	case cardDeckOfLunacy:
		return transformDeck(d, isSpell, func(old deck.DeckCard) deck.MatchCondition {
			want := old.EffectiveManaCost() + 3
			return func(ref cards.Card) bool {
				return strings.EqualFold(ref.Type, "SPELL") && ref.Cost == want
			}
		})
	case cardPrinceLiam:
		return transformDeck(d, costsOne, func(deck.DeckCard) deck.MatchCondition {
			return func(ref cards.Card) bool {
				return strings.EqualFold(ref.Type, "MINION") &&
					strings.EqualFold(ref.Rarity, "LEGENDARY")
			}
		})
	default:
		return d
	}
}

type cardPredicate func(deck.DeckCard) bool

func isMinion(c deck.DeckCard) bool { return strings.EqualFold(c.CardType, "MINION") }
func isSpell(c deck.DeckCard) bool  { return strings.EqualFold(c.CardType, "SPELL") }
func isDragon(c deck.DeckCard) bool { return strings.EqualFold(c.Race, "DRAGON") }
func costsOne(c deck.DeckCard) bool { return c.HasKnownCost() && c.EffectiveManaCost() == 1 }

func isLibram(c deck.DeckCard) bool {
	switch c.CardID {
	case cardLibramOfWisdom, cardLibramOfJustice, cardLibramOfHope:
		return true
	}
	return false
}

func isClassicNeutral(c deck.DeckCard) bool {
	return c.CardID != "" && strings.HasPrefix(c.CardID, "EX1_")
}

// updateDeckCost shifts the actual cost of matching deck cards by delta,
// clamped at zero. Cards with no known cost are left alone.
func updateDeckCost(d deck.DeckState, match cardPredicate, delta int) deck.DeckState {
	return d.WithDeck(updateCost(d.Deck, match, delta))
}

// updateEverywhereCost shifts cost in both deck and hand, for effects that
// discount a card family wherever it sits.
func updateEverywhereCost(d deck.DeckState, match cardPredicate, delta int) deck.DeckState {
	return d.WithDeck(updateCost(d.Deck, match, delta)).
		WithHand(updateCost(d.Hand, match, delta))
}

func updateCost(zone []deck.DeckCard, match cardPredicate, delta int) []deck.DeckCard {
	out := make([]deck.DeckCard, len(zone))
	for i, c := range zone {
		if match(c) && c.HasKnownCost() {
			cost := c.EffectiveManaCost() + delta
			if cost < 0 {
				cost = 0
			}
			c = c.WithActualManaCost(cost)
		}
		out[i] = c
	}
	return out
}

func setDeckCost(d deck.DeckState, match cardPredicate, cost int) deck.DeckState {
	zone := make([]deck.DeckCard, len(d.Deck))
	for i, c := range d.Deck {
		if match(c) {
			c = c.WithActualManaCost(cost)
		}
		zone[i] = c
	}
	return d.WithDeck(zone)
}

// transformDeck replaces matching deck cards with unknown instances. When
// conditionFor is non-nil the replacement carries a match condition so a
// later reveal can confirm which card the transform produced.
func transformDeck(d deck.DeckState, match cardPredicate, conditionFor func(deck.DeckCard) deck.MatchCondition) deck.DeckState {
	zone := make([]deck.DeckCard, len(d.Deck))
	for i, c := range d.Deck {
		if match(c) {
			replaced := deck.UnknownCard(c.EntityID)
			if conditionFor != nil {
				replaced.MatchCondition = conditionFor(c)
			}
			c = replaced
		}
		zone[i] = c
	}
	return d.WithDeck(zone)
}
