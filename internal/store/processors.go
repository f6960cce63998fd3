package store

import (
	"context"
	"fmt"
)

// InitProcessor seeds both halves of the aggregate at startup: collection
// counters from persistence, preferences from the preferences service.
type InitProcessor struct {
	collection CollectionReader
	prefs      PreferencesGetter
}

func (p *InitProcessor) Process(ctx context.Context, _ *Event, main *MainWindowState, _ *NavigationState) (*MainWindowState, *NavigationState, error) {
	next := *main
	next.Initialized = true
	next.Preferences = p.prefs.Get(ctx)

	owned, err := p.collection.OwnedCount(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load collection size: %w", err)
	}
	packs, err := p.collection.PackCount(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load pack count: %w", err)
	}
	next.CollectionSize = owned
	next.PacksOpened = packs
	return &next, NewNavigationState(), nil
}

// ChangeTabProcessor switches the active tab. Navigation only.
type ChangeTabProcessor struct{}

func (p *ChangeTabProcessor) Process(_ context.Context, ev *Event, _ *MainWindowState, nav *NavigationState) (*MainWindowState, *NavigationState, error) {
	if ev.Tab == "" || ev.Tab == nav.CurrentTab {
		return nil, nil, nil
	}
	next := *nav
	next.CurrentTab = ev.Tab
	return nil, &next, nil
}

// SelectDeckProcessor focuses one deck and jumps to the decktracker tab.
// Navigation only.
type SelectDeckProcessor struct{}

func (p *SelectDeckProcessor) Process(_ context.Context, ev *Event, _ *MainWindowState, nav *NavigationState) (*MainWindowState, *NavigationState, error) {
	next := *nav
	next.SelectedDeckstring = ev.Deckstring
	next.CurrentTab = "decktracker"
	return nil, &next, nil
}

// DeckFilterProcessor updates the text and class filters. Navigation only.
type DeckFilterProcessor struct{}

func (p *DeckFilterProcessor) Process(_ context.Context, ev *Event, _ *MainWindowState, nav *NavigationState) (*MainWindowState, *NavigationState, error) {
	next := *nav
	next.TextFilter = ev.TextFilter
	next.ClassFilter = ev.ClassFilter
	return nil, &next, nil
}

// PreferenceUpdateProcessor re-reads the preferences document into the
// domain half after a change.
type PreferenceUpdateProcessor struct {
	prefs PreferencesGetter
}

func (p *PreferenceUpdateProcessor) Process(ctx context.Context, _ *Event, main *MainWindowState, _ *NavigationState) (*MainWindowState, *NavigationState, error) {
	next := *main
	next.Preferences = p.prefs.Get(ctx)
	return &next, nil, nil
}

// CollectionRefreshProcessor re-reads the collection counters and surfaces
// newly acquired cards.
type CollectionRefreshProcessor struct {
	collection CollectionReader
}

func (p *CollectionRefreshProcessor) Process(ctx context.Context, ev *Event, main *MainWindowState, _ *NavigationState) (*MainWindowState, *NavigationState, error) {
	owned, err := p.collection.OwnedCount(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("refresh collection size: %w", err)
	}
	next := *main
	next.CollectionSize = owned
	next.NewCardIDs = append([]string(nil), ev.CardIDs...)
	return &next, nil, nil
}

// NewPackProcessor counts an opened pack.
type NewPackProcessor struct{}

func (p *NewPackProcessor) Process(_ context.Context, _ *Event, main *MainWindowState, _ *NavigationState) (*MainWindowState, *NavigationState, error) {
	next := *main
	next.PacksOpened++
	return &next, nil, nil
}

// GameEndProcessor records the finished game's outcome.
type GameEndProcessor struct{}

func (p *GameEndProcessor) Process(_ context.Context, ev *Event, main *MainWindowState, _ *NavigationState) (*MainWindowState, *NavigationState, error) {
	next := *main
	next.GamesPlayed++
	next.LastGameResult = ev.GameResult
	return &next, nil, nil
}
