package logreader

import (
	"testing"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
)

func TestTranslate(t *testing.T) {
	tr := NewTranslator()
	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantType events.Type
	}{
		{
			name:     "marked line with payload",
			line:     `D 21:10:45.1234567 GameEvent: {"type":"CARD_PLAYED","cardId":"BT_025","controllerId":1}`,
			wantOK:   true,
			wantType: events.TypeCardPlayed,
		},
		{
			name:   "no marker",
			line:   "D 21:10:45.1234567 PowerTaskList.DebugPrintPower() - TAG_CHANGE",
			wantOK: false,
		},
		{
			name:   "marker with no payload",
			line:   "D 21:10:45.1234567 GameEvent:",
			wantOK: false,
		},
		{
			name:   "payload is not json",
			line:   "GameEvent: pending",
			wantOK: false,
		},
		{
			name:   "malformed json",
			line:   `GameEvent: {"type":"CARD_PLAYED",`,
			wantOK: false,
		},
		{
			name:   "missing event type",
			line:   `GameEvent: {"cardId":"BT_025"}`,
			wantOK: false,
		},
		{
			name:     "marker mid-line",
			line:     `[Plugin] info GameEvent:   {"type":"TURN_START"}`,
			wantOK:   true,
			wantType: events.TypeTurnStart,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := tr.Translate(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("Translate(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if ok && ev.Type != tt.wantType {
				t.Errorf("Translate(%q) type = %q, want %q", tt.line, ev.Type, tt.wantType)
			}
		})
	}
}

func TestTranslateKeepsPayloadFields(t *testing.T) {
	tr := NewTranslator()
	ev, ok := tr.Translate(`GameEvent: {"type":"CARD_DRAWN_FROM_DECK","cardId":"DRG_315","entityId":42,"controllerId":2,"additionalData":{"creatorCardId":"BOT_531"}}`)
	if !ok {
		t.Fatal("line did not translate")
	}
	if ev.CardID != "DRG_315" || ev.EntityID != 42 || ev.ControllerID != 2 {
		t.Errorf("payload = %+v", ev)
	}
	if ev.Data().CreatorCardID != "BOT_531" {
		t.Errorf("CreatorCardID = %q, want BOT_531", ev.Data().CreatorCardID)
	}
}
