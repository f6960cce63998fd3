package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/metrics"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/preferences"
)

// Processor handles one store event type. Either returned state may be nil,
// meaning that half of the aggregate is unchanged.
type Processor interface {
	Process(ctx context.Context, ev *Event, main *MainWindowState, nav *NavigationState) (*MainWindowState, *NavigationState, error)
}

// StateListener receives both halves after every applied event.
type StateListener func(ev *Event, main *MainWindowState, nav *NavigationState)

// Store dispatches queued store events to their processor, in arrival
// order. Unknown event types are dropped with a log line.
type Store struct {
	processors map[EventType]Processor
	main       *MainWindowState
	nav        *NavigationState
	queue      chan *Event
	listeners  []StateListener
	log        *logger.Logger
	metrics    *metrics.Collector
}

// CollectionReader is the slice of the collection manager the store needs.
type CollectionReader interface {
	OwnedCount(ctx context.Context) (int, error)
	PackCount(ctx context.Context) (int, error)
}

// PreferencesGetter reads the current preferences document.
type PreferencesGetter interface {
	Get(ctx context.Context) preferences.Preferences
}

func NewStore(collection CollectionReader, prefs PreferencesGetter, log *logger.Logger, collector *metrics.Collector, queueSize int) *Store {
	if queueSize < 1 {
		queueSize = 64
	}
	s := &Store{
		main:    NewMainWindowState(),
		nav:     NewNavigationState(),
		queue:   make(chan *Event, queueSize),
		log:     log.With("store"),
		metrics: collector,
	}
	s.processors = map[EventType]Processor{
		EventStoreInit:         &InitProcessor{collection: collection, prefs: prefs},
		EventChangeTab:         &ChangeTabProcessor{},
		EventSelectDeck:        &SelectDeckProcessor{},
		EventDeckFilter:        &DeckFilterProcessor{},
		EventPreferenceUpdate:  &PreferenceUpdateProcessor{prefs: prefs},
		EventCollectionRefresh: &CollectionRefreshProcessor{collection: collection},
		EventNewPack:           &NewPackProcessor{},
		EventGameEnd:           &GameEndProcessor{},
	}
	return s
}

// Queue enqueues an event for processing. Drops the event when the queue
// is full rather than blocking a producer.
func (s *Store) Queue(ev *Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	select {
	case s.queue <- ev:
	default:
		s.log.Warn("store queue full, dropping %s", ev.Type)
	}
}

func (s *Store) MainState() *MainWindowState {
	return s.main
}

func (s *Store) NavigationState() *NavigationState {
	return s.nav
}

func (s *Store) AddListener(l StateListener) {
	s.listeners = append(s.listeners, l)
}

// ProcessEvent applies one event synchronously.
func (s *Store) ProcessEvent(ctx context.Context, ev *Event) {
	processor, ok := s.processors[ev.Type]
	if !ok {
		s.log.Warn("no processor for store event %s", ev.Type)
		return
	}
	main, nav, err := s.safeProcess(ctx, processor, ev)
	if err != nil {
		s.log.Error("processor failed on %s: %v", ev.Type, err)
		return
	}
	changed := false
	if main != nil {
		s.main = main
		changed = true
	}
	if nav != nil {
		s.nav = nav
		changed = true
	}
	s.metrics.RecordStoreEvent()
	if changed {
		for _, l := range s.listeners {
			l(ev, s.main, s.nav)
		}
	}
}

func (s *Store) safeProcess(ctx context.Context, processor Processor, ev *Event) (main *MainWindowState, nav *NavigationState, err error) {
	defer func() {
		if r := recover(); r != nil {
			main, nav, err = nil, nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return processor.Process(ctx, ev, s.main, s.nav)
}

// Run drains the queue until the context is cancelled.
func (s *Store) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.queue:
			s.ProcessEvent(ctx, ev)
		}
	}
}
