package events

import (
	"sync"
	"time"
)

// Persister durably stores appended events. Appends are fire-and-forget;
// a persister failure never blocks the in-memory log.
type Persister interface {
	Append(event GameEvent) error
}

// Log is the in-memory append-only event log. Producers (log reader,
// simulator, companion windows) append; each consumer reads forward with
// its own cursor, so events within one source are always observed in
// arrival order.
type Log struct {
	mu        sync.RWMutex
	events    []GameEvent
	persister Persister
}

// NewLog creates an event log with an optional persister.
func NewLog(persister Persister) *Log {
	return &Log{
		events:    make([]GameEvent, 0, 256),
		persister: persister,
	}
}

// Append adds an event to the log, assigning an id and timestamp when the
// producer left them empty.
func (l *Log) Append(event GameEvent) {
	if event.ID == "" {
		event.ID = NewID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	if l.persister != nil {
		go func(e GameEvent) {
			_ = l.persister.Append(e)
		}(event)
	}
}

// Len returns the number of appended events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Since returns a copy of the events appended at or after cursor.
func (l *Log) Since(cursor int) []GameEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if cursor >= len(l.events) {
		return nil
	}
	out := make([]GameEvent, len(l.events)-cursor)
	copy(out, l.events[cursor:])
	return out
}

// Replay returns a copy of the full history.
func (l *Log) Replay() []GameEvent {
	return l.Since(0)
}
