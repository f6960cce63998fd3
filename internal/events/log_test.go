package events

import (
	"testing"
	"time"
)

func TestAppendAssignsIdentityWhenMissing(t *testing.T) {
	log := NewLog(nil)
	log.Append(GameEvent{Type: TypeGameStart})

	ev := log.Replay()[0]
	if ev.ID == "" {
		t.Error("appended event has no id")
	}
	if ev.Timestamp.IsZero() {
		t.Error("appended event has no timestamp")
	}
}

func TestAppendKeepsProducerIdentity(t *testing.T) {
	log := NewLog(nil)
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	log.Append(GameEvent{ID: "fixed", Type: TypeTurnStart, Timestamp: ts})

	ev := log.Replay()[0]
	if ev.ID != "fixed" || !ev.Timestamp.Equal(ts) {
		t.Errorf("event = %+v, want producer-supplied identity kept", ev)
	}
}

func TestSinceCursorSemantics(t *testing.T) {
	log := NewLog(nil)
	log.Append(GameEvent{Type: TypeGameStart})
	log.Append(GameEvent{Type: TypeTurnStart})
	log.Append(GameEvent{Type: TypeGameEnd})

	if got := log.Since(0); len(got) != 3 {
		t.Errorf("Since(0) returned %d events, want 3", len(got))
	}
	got := log.Since(1)
	if len(got) != 2 || got[0].Type != TypeTurnStart {
		t.Errorf("Since(1) = %v", got)
	}
	if got := log.Since(3); got != nil {
		t.Errorf("Since(len) = %v, want nil", got)
	}
	if got := log.Since(99); got != nil {
		t.Errorf("Since past the end = %v, want nil", got)
	}
}

func TestSinceReturnsACopy(t *testing.T) {
	log := NewLog(nil)
	log.Append(GameEvent{Type: TypeGameStart})

	first := log.Since(0)
	first[0].Type = TypeGameEnd

	if log.Replay()[0].Type != TypeGameStart {
		t.Error("mutating a Since slice changed the log")
	}
}

type channelPersister struct {
	appended chan GameEvent
}

func (p *channelPersister) Append(event GameEvent) error {
	p.appended <- event
	return nil
}

func TestAppendForwardsToPersister(t *testing.T) {
	persister := &channelPersister{appended: make(chan GameEvent, 1)}
	log := NewLog(persister)
	log.Append(GameEvent{Type: TypeCardPlayed, CardID: "BT_025"})

	select {
	case ev := <-persister.appended:
		if ev.CardID != "BT_025" {
			t.Errorf("persisted card = %q, want BT_025", ev.CardID)
		}
		if ev.ID == "" {
			t.Error("persisted event missing the assigned id")
		}
	case <-time.After(time.Second):
		t.Fatal("persister never received the event")
	}
}
