package store

import "github.com/Zero-to-Heroes/overwolf-collection-companion/internal/preferences"

// MainWindowState is the domain half of the main window aggregate.
type MainWindowState struct {
	Initialized    bool                    `json:"initialized"`
	CollectionSize int                     `json:"collectionSize"`
	PacksOpened    int                     `json:"packsOpened"`
	NewCardIDs     []string                `json:"newCardIds,omitempty"`
	GamesPlayed    int                     `json:"gamesPlayed"`
	LastGameResult string                  `json:"lastGameResult,omitempty"`
	Preferences    preferences.Preferences `json:"preferences"`
}

// NavigationState is the UI half: which tab and filters are active.
type NavigationState struct {
	CurrentTab         string `json:"currentTab"`
	SelectedDeckstring string `json:"selectedDeckstring,omitempty"`
	TextFilter         string `json:"textFilter,omitempty"`
	ClassFilter        string `json:"classFilter,omitempty"`
}

func NewMainWindowState() *MainWindowState {
	return &MainWindowState{Preferences: preferences.Default()}
}

func NewNavigationState() *NavigationState {
	return &NavigationState{CurrentTab: "decktracker"}
}
