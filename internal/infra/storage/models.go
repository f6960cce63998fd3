package storage

import "time"

// CollectionCard is one owned card line in the collection snapshot.
type CollectionCard struct {
	CardID        string `json:"cardId"`
	OwnedStandard int    `json:"ownedStandard"`
	OwnedGolden   int    `json:"ownedGolden"`
}

// Pack is one opened pack with its revealed contents.
type Pack struct {
	ID       string    `json:"id"`
	SetID    string    `json:"setId"`
	OpenedAt time.Time `json:"openedAt"`
	CardIDs  []string  `json:"cardIds"`
	Rarities []string  `json:"rarities"`
}

// PityTimer tracks packs opened since the last epic and legendary drop for
// one set.
type PityTimer struct {
	SetID               string `json:"setId"`
	PacksSinceEpic      int    `json:"packsSinceEpic"`
	PacksSinceLegendary int    `json:"packsSinceLegendary"`
}
