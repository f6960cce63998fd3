package logreader

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/metrics"
)

// Listener tails the game log. It waits indefinitely for the file to
// appear, replays the lines already present (catch-up), then follows
// appended lines. A file that shrank below the read offset was truncated
// by the game: reading restarts from the top and the parser chains are
// told to reset.
type Listener struct {
	path       string
	translator *Translator
	eventLog   *events.Log
	log        *logger.Logger
	metrics    *metrics.Collector
	interval   time.Duration

	offset     int64
	catchingUp atomic.Bool
}

func NewListener(path string, translator *Translator, eventLog *events.Log, log *logger.Logger, collector *metrics.Collector, interval time.Duration) *Listener {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Listener{
		path:       path,
		translator: translator,
		eventLog:   eventLog,
		log:        log.With("logreader"),
		metrics:    collector,
		interval:   interval,
	}
}

// IsCatchingUp reports whether the listener is still replaying lines that
// existed before it attached. Consumers can suppress notifications until
// the replay finishes.
func (l *Listener) IsCatchingUp() bool {
	return l.catchingUp.Load()
}

// Run tails the file until the context is cancelled.
func (l *Listener) Run(ctx context.Context) {
	if !l.waitForFile(ctx) {
		return
	}
	l.catchingUp.Store(true)
	l.log.Info("log file found, replaying existing lines from %s", l.path)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		l.poll()
		if l.catchingUp.Load() {
			// Everything present at attach time has now been read.
			l.catchingUp.Store(false)
			l.eventLog.Append(events.GameEvent{Type: events.TypeCatchUpComplete})
			l.log.Info("catch-up complete at offset %d", l.offset)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (l *Listener) waitForFile(ctx context.Context) bool {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		if _, err := os.Stat(l.path); err == nil {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}

// poll reads every complete line appended since the last offset.
func (l *Listener) poll() {
	info, err := os.Stat(l.path)
	if err != nil {
		return
	}
	if info.Size() < l.offset {
		l.restartAfterTruncation()
	}
	if info.Size() == l.offset {
		return
	}

	file, err := os.Open(l.path)
	if err != nil {
		l.log.Warn("could not open log file: %v", err)
		return
	}
	defer file.Close()

	if _, err := file.Seek(l.offset, io.SeekStart); err != nil {
		l.log.Warn("could not seek to offset %d: %v", l.offset, err)
		return
	}

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			// A partial trailing line stays unread until it completes.
			break
		}
		l.offset += int64(len(line))
		l.receiveLine(line)
	}
}

func (l *Listener) restartAfterTruncation() {
	l.log.Warn("log file truncated, restarting from the top")
	l.metrics.RecordLogTruncation()
	l.offset = 0
	l.eventLog.Append(events.GameEvent{Type: events.TypeLogFileTruncated})
}

func (l *Listener) receiveLine(line string) {
	ev, ok := l.translator.Translate(line)
	l.metrics.RecordLogLine(ok)
	if !ok {
		return
	}
	l.eventLog.Append(ev)
}
