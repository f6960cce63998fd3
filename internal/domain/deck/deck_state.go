package deck

// DeckState is one player's full deck-side state: the zone collections,
// secret tracking, global effects, and per-match counters. The original
// deck list is kept separate from the live zones so played-from-deck
// statistics survive zone churn.
type DeckState struct {
	DeckList      []DeckCard    `json:"deckList,omitempty"`
	Deck          []DeckCard    `json:"deck"`
	Hand          []DeckCard    `json:"hand"`
	Board         []DeckCard    `json:"board"`
	OtherZone     []DeckCard    `json:"otherZone"`
	Secrets       []BoardSecret `json:"secrets,omitempty"`
	GlobalEffects []DeckCard    `json:"globalEffects,omitempty"`

	CardsPlayedThisTurn   []DeckCard `json:"cardsPlayedThisTurn,omitempty"`
	SpellsPlayedThisMatch int        `json:"spellsPlayedThisMatch"`
	CardsLeftInDeck       int        `json:"cardsLeftInDeck"`

	Deckstring string `json:"deckstring,omitempty"`
	HeroClass  string `json:"heroClass,omitempty"`
	IsPlayer   bool   `json:"isPlayer"`
}

// WithDeck returns the state with a new library collection, keeping the
// cards-left counter in sync.
func (d DeckState) WithDeck(deck []DeckCard) DeckState {
	d.Deck = deck
	d.CardsLeftInDeck = len(deck)
	return d
}

// WithHand returns the state with a new hand collection.
func (d DeckState) WithHand(hand []DeckCard) DeckState {
	d.Hand = hand
	return d
}

// WithBoard returns the state with a new board collection.
func (d DeckState) WithBoard(board []DeckCard) DeckState {
	d.Board = board
	return d
}

// WithOtherZone returns the state with a new other-zone collection.
func (d DeckState) WithOtherZone(other []DeckCard) DeckState {
	d.OtherZone = other
	return d
}

// WithZones replaces all four zone collections at once.
func (d DeckState) WithZones(deck, hand, board, other []DeckCard) DeckState {
	d.Deck = deck
	d.Hand = hand
	d.Board = board
	d.OtherZone = other
	d.CardsLeftInDeck = len(deck)
	return d
}

// WithSecrets returns the state with a new secrets collection.
func (d DeckState) WithSecrets(secrets []BoardSecret) DeckState {
	d.Secrets = secrets
	return d
}

// WithSecretAdded appends an active secret.
func (d DeckState) WithSecretAdded(secret BoardSecret) DeckState {
	secrets := make([]BoardSecret, 0, len(d.Secrets)+1)
	secrets = append(secrets, d.Secrets...)
	secrets = append(secrets, secret)
	d.Secrets = secrets
	return d
}

// WithSecretRemoved drops the secret held by the given entity.
func (d DeckState) WithSecretRemoved(entityID int) DeckState {
	secrets := make([]BoardSecret, 0, len(d.Secrets))
	for _, s := range d.Secrets {
		if s.EntityID != entityID {
			secrets = append(secrets, s)
		}
	}
	d.Secrets = secrets
	return d
}

// WithGlobalEffect appends a passive effect, ignoring duplicate triggers
// of the same entity.
func (d DeckState) WithGlobalEffect(card DeckCard) DeckState {
	for _, c := range d.GlobalEffects {
		if c.EntityID != 0 && c.EntityID == card.EntityID {
			return d
		}
	}
	effects := make([]DeckCard, 0, len(d.GlobalEffects)+1)
	effects = append(effects, d.GlobalEffects...)
	effects = append(effects, card)
	d.GlobalEffects = effects
	return d
}

// WithCardPlayedThisTurn records a played card for the turn counter.
func (d DeckState) WithCardPlayedThisTurn(card DeckCard) DeckState {
	played := make([]DeckCard, 0, len(d.CardsPlayedThisTurn)+1)
	played = append(played, d.CardsPlayedThisTurn...)
	played = append(played, card)
	d.CardsPlayedThisTurn = played
	return d
}

// WithTurnReset clears the per-turn counters at turn start.
func (d DeckState) WithTurnReset() DeckState {
	d.CardsPlayedThisTurn = nil
	return d
}

// WithSpellPlayed increments the per-match spell counter.
func (d DeckState) WithSpellPlayed() DeckState {
	d.SpellsPlayedThisMatch++
	return d
}

// TotalCardCount sums the cards across every zone collection. Zone
// transfers keep this invariant; only explicitly-modeled destruction
// events change it.
func (d DeckState) TotalCardCount() int {
	return len(d.Deck) + len(d.Hand) + len(d.Board) + len(d.OtherZone)
}
