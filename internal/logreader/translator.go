// Package logreader tails the game's log file, translates its lines into
// game events, and feeds memory snapshots (scene, collection) into the
// pipeline.
package logreader

import (
	"encoding/json"
	"strings"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

// eventMarker tags log lines that carry a structured event payload. The
// rest of the line up to the marker (timestamps, plugin prefixes) is
// ignored.
const eventMarker = "GameEvent:"

// Translator turns raw log lines into events. Lines without the event
// marker, and marked lines whose payload does not decode, translate to
// nothing.
type Translator struct{}

func NewTranslator() *Translator {
	return &Translator{}
}

// Translate parses one raw line. The boolean reports whether the line
// carried a usable event.
func (t *Translator) Translate(line string) (events.GameEvent, bool) {
	idx := strings.Index(line, eventMarker)
	if idx < 0 {
		return events.GameEvent{}, false
	}
	payload := strings.TrimSpace(line[idx+len(eventMarker):])
	if payload == "" || payload[0] != '{' {
		return events.GameEvent{}, false
	}
	var ev events.GameEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return events.GameEvent{}, false
	}
	if ev.Type == "" {
		return events.GameEvent{}, false
	}
	return ev, true
}
