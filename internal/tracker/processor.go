package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/metrics"
)

// StateListener is notified after every event that produced a state change,
// with the event that caused it and the new state.
type StateListener func(ev *events.GameEvent, state *deck.GameState)

// Processor owns the parser chain and the current GameState. Events are
// consumed from the shared event log in append order; every applicable
// parser runs, in declared order, each receiving the state produced by the
// previous one.
type Processor struct {
	parsers   []EventParser
	state     *deck.GameState
	listeners []StateListener
	log       *logger.Logger
	metrics   *metrics.Collector
	cursor    int
}

func NewProcessor(allCards *cards.Service, log *logger.Logger, collector *metrics.Collector) *Processor {
	return &Processor{
		parsers: buildParserChain(allCards),
		state:   deck.NewGameState(),
		log:     log.With("tracker"),
		metrics: collector,
	}
}

// buildParserChain returns the full chain in priority order. Lifecycle
// parsers run before zone parsers so that a GAME_START arriving with other
// events in the same batch resets state first.
func buildParserChain(allCards *cards.Service) []EventParser {
	return []EventParser{
		&GameStartParser{},
		&MatchMetadataParser{},
		&LocalPlayerParser{cards: allCards},
		&ReconnectParser{},
		&TurnStartParser{},
		&CardDrawnParser{cards: allCards},
		&ReceivedCardInHandParser{cards: allCards},
		&CardPlayedParser{cards: allCards},
		&CardBackToDeckParser{cards: allCards},
		&CardBackToHandParser{cards: allCards},
		&CardBurnedParser{cards: allCards},
		&CardRemovedFromDeckParser{cards: allCards},
		&MinionSummonedParser{cards: allCards},
		&MinionDiedParser{},
		&SecretPlayedParser{cards: allCards},
		&SecretPutInPlayParser{cards: allCards},
		&SecretTriggeredParser{},
		&SecretDestroyedParser{},
		&EntityUpdateParser{cards: allCards},
		&PassiveTriggeredParser{cards: allCards},
		&ControllerSwapParser{},
		&GameEndParser{},
		&LogTruncatedParser{},
	}
}

// State returns the current aggregate. Safe to share: all mutation is
// copy-on-write.
func (p *Processor) State() *deck.GameState {
	return p.state
}

func (p *Processor) AddListener(l StateListener) {
	p.listeners = append(p.listeners, l)
}

// ProcessEvent runs every applicable parser against the event. A parser
// error or panic is contained: the event's remaining parsers still run,
// each from the last good state.
func (p *Processor) ProcessEvent(ev *events.GameEvent) {
	state := p.state
	for _, parser := range p.parsers {
		if !parser.Applies(ev, state) {
			continue
		}
		next, err := p.safeParse(parser, state, ev)
		if err != nil {
			p.log.Error("parser failed on %s: %v", ev.Type, err)
			p.metrics.RecordParserError()
			continue
		}
		if next != nil {
			state = next
		}
	}
	if state != p.state {
		p.state = state
		for _, l := range p.listeners {
			l(ev, state)
		}
	}
	p.metrics.RecordEventProcessed()
}

func (p *Processor) safeParse(parser EventParser, state *deck.GameState, ev *events.GameEvent) (next *deck.GameState, err error) {
	defer func() {
		if r := recover(); r != nil {
			next, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return parser.Parse(state, ev)
}

// Run polls the event log from the processor's cursor until the context is
// cancelled. Events already in the log are replayed first, so a processor
// attached late catches up before handling live events.
func (p *Processor) Run(ctx context.Context, eventLog *events.Log, pollInterval time.Duration) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		for _, ev := range eventLog.Since(p.cursor) {
			p.ProcessEvent(&ev)
			p.cursor++
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
