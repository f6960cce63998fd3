package battlegrounds

import (
	"context"
	"fmt"
	"time"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/metrics"
)

// BattleSimulator dispatches a combat simulation without waiting for the
// result, which comes back through the event log.
type BattleSimulator interface {
	RequestSimulation(ctx context.Context, info bgs.BattleInfo, opponentCardID string)
}

// EventParser is one reducer over the battlegrounds aggregate.
type EventParser interface {
	Applies(ev *events.GameEvent, state *State) bool
	Parse(ctx context.Context, state *State, ev *events.GameEvent) (*State, error)
}

// StateListener is notified with each new aggregate.
type StateListener func(ev *events.GameEvent, state *State)

// Store folds battlegrounds events into successive State instances, in the
// same contained-failure fashion as the decktracker chain.
type Store struct {
	parsers   []EventParser
	state     *State
	listeners []StateListener
	log       *logger.Logger
	metrics   *metrics.Collector
	cursor    int
}

func NewStore(simulator BattleSimulator, simulationEnabled func() bool, log *logger.Logger, collector *metrics.Collector) *Store {
	l := log.With("battlegrounds")
	return &Store{
		parsers: []EventParser{
			&MatchStartParser{},
			&HeroSelectedParser{},
			&OpponentRevealedParser{},
			&NextOpponentParser{},
			&TurnStartParser{},
			&RecruitStartParser{},
			&CombatStartParser{},
			&PlayerBoardParser{simulator: simulator, simulationEnabled: simulationEnabled, log: l},
			&BattleSimulationParser{log: l, metrics: collector},
			&BattleResultParser{log: l},
			&ReconnectParser{},
			&GameEndParser{},
		},
		state:   NewState(),
		log:     l,
		metrics: collector,
	}
}

func (s *Store) State() *State {
	return s.state
}

func (s *Store) AddListener(l StateListener) {
	s.listeners = append(s.listeners, l)
}

func (s *Store) ProcessEvent(ctx context.Context, ev *events.GameEvent) {
	state := s.state
	for _, parser := range s.parsers {
		if !parser.Applies(ev, state) {
			continue
		}
		next, err := s.safeParse(ctx, parser, state, ev)
		if err != nil {
			s.log.Error("parser failed on %s: %v", ev.Type, err)
			s.metrics.RecordParserError()
			continue
		}
		if next != nil {
			state = next
		}
	}
	if state != s.state {
		s.state = state
		for _, l := range s.listeners {
			l(ev, state)
		}
	}
}

func (s *Store) safeParse(ctx context.Context, parser EventParser, state *State, ev *events.GameEvent) (next *State, err error) {
	defer func() {
		if r := recover(); r != nil {
			next, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return parser.Parse(ctx, state, ev)
}

// Run polls the event log until the context is cancelled.
func (s *Store) Run(ctx context.Context, eventLog *events.Log, pollInterval time.Duration) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		for _, ev := range eventLog.Since(s.cursor) {
			s.ProcessEvent(ctx, &ev)
			s.cursor++
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
