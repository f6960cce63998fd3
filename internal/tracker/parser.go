// Package tracker implements the decktracker reducer chain: a fixed,
// priority-ordered set of single-responsibility parsers folding game events
// into successive immutable GameState instances.
package tracker

import (
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

// EventParser is one reducer in the chain. Applies must be side-effect
// free; Parse must treat the input state as immutable and return a new
// instance (or the input unchanged). Parsers may read the reference card
// service but hold no other dependencies.
type EventParser interface {
	// Applies reports whether this parser handles the event given the
	// current state.
	Applies(ev *events.GameEvent, state *deck.GameState) bool

	// Parse folds the event into the state. On error the chain keeps the
	// previous state and continues with the next parser.
	Parse(state *deck.GameState, ev *events.GameEvent) (*deck.GameState, error)
}
