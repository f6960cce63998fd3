// Package store folds application-level events (navigation, preference
// changes, collection updates) into the main window state. It mirrors the
// decktracker chain structurally but splits the aggregate in two: domain
// state and navigation state update independently so a tab switch never
// forces a collection recomputation.
package store

import "time"

type EventType string

const (
	EventStoreInit         EventType = "STORE_INIT"
	EventChangeTab         EventType = "CHANGE_TAB"
	EventSelectDeck        EventType = "SELECT_DECK"
	EventDeckFilter        EventType = "DECK_FILTER"
	EventPreferenceUpdate  EventType = "PREFERENCE_UPDATE"
	EventCollectionRefresh EventType = "COLLECTION_REFRESH"
	EventNewPack           EventType = "NEW_PACK"
	EventGameEnd           EventType = "GAME_END"
)

// Event is one store-level happening. Payload fields are optional and
// interpreted per type.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	Tab         string   `json:"tab,omitempty"`
	Deckstring  string   `json:"deckstring,omitempty"`
	TextFilter  string   `json:"textFilter,omitempty"`
	ClassFilter string   `json:"classFilter,omitempty"`
	CardIDs     []string `json:"cardIds,omitempty"`
	SetID       string   `json:"setId,omitempty"`
	GameResult  string   `json:"gameResult,omitempty"`
}
