// Package metrics provides observability counters for the companion process.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers runtime counters across subsystems.
type Collector struct {
	// Log reader
	LogLinesRead       int64
	LogLinesTranslated int64
	LogTruncations     int64

	// Parser chains
	EventsProcessed int64
	ParserErrors    int64
	StoreEvents     int64

	// Battle simulations
	SimulationsRequested int64
	SimulationsCompleted int64
	SimulationsRejected  int64
	SimLatencySum        int64 // nanoseconds
	SimLatencyMax        int64

	// Persistence
	DBWrites      int64
	DBWriteErrors int64

	// WebSocket
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64

	StartTime time.Time
	mu        sync.RWMutex
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{StartTime: time.Now()}
}

// RecordLogLine records a line read from the game log.
func (c *Collector) RecordLogLine(translated bool) {
	atomic.AddInt64(&c.LogLinesRead, 1)
	if translated {
		atomic.AddInt64(&c.LogLinesTranslated, 1)
	}
}

// RecordLogTruncation records a restart caused by a truncated log file.
func (c *Collector) RecordLogTruncation() {
	atomic.AddInt64(&c.LogTruncations, 1)
}

// RecordEventProcessed records one event folded through a parser chain.
func (c *Collector) RecordEventProcessed() {
	atomic.AddInt64(&c.EventsProcessed, 1)
}

// RecordParserError records a contained parser failure.
func (c *Collector) RecordParserError() {
	atomic.AddInt64(&c.ParserErrors, 1)
}

// RecordStoreEvent records one main-window store event.
func (c *Collector) RecordStoreEvent() {
	atomic.AddInt64(&c.StoreEvents, 1)
}

// RecordSimulationRequested records a dispatched battle simulation.
func (c *Collector) RecordSimulationRequested() {
	atomic.AddInt64(&c.SimulationsRequested, 1)
}

// RecordSimulationCompleted records a finished simulation and its latency.
func (c *Collector) RecordSimulationCompleted(latency time.Duration) {
	atomic.AddInt64(&c.SimulationsCompleted, 1)
	atomic.AddInt64(&c.SimLatencySum, int64(latency))
	if int64(latency) > atomic.LoadInt64(&c.SimLatencyMax) {
		atomic.StoreInt64(&c.SimLatencyMax, int64(latency))
	}
}

// RecordSimulationRejected records a simulation result that could not be
// matched to a pending face-off.
func (c *Collector) RecordSimulationRejected() {
	atomic.AddInt64(&c.SimulationsRejected, 1)
}

// RecordDBWrite records a persistence write.
func (c *Collector) RecordDBWrite(err error) {
	atomic.AddInt64(&c.DBWrites, 1)
	if err != nil {
		atomic.AddInt64(&c.DBWriteErrors, 1)
	}
}

// RecordWSConnection records a window connecting (+1) or leaving (-1).
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records websocket traffic.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// Snapshot returns the current counters as a map.
func (c *Collector) Snapshot() map[string]any {
	completed := atomic.LoadInt64(&c.SimulationsCompleted)
	var simAvgMs float64
	if completed > 0 {
		simAvgMs = float64(atomic.LoadInt64(&c.SimLatencySum)) / float64(completed) / 1e6
	}

	return map[string]any{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),
		"log": map[string]any{
			"lines_read":       atomic.LoadInt64(&c.LogLinesRead),
			"lines_translated": atomic.LoadInt64(&c.LogLinesTranslated),
			"truncations":      atomic.LoadInt64(&c.LogTruncations),
		},
		"parsers": map[string]any{
			"events_processed": atomic.LoadInt64(&c.EventsProcessed),
			"errors":           atomic.LoadInt64(&c.ParserErrors),
			"store_events":     atomic.LoadInt64(&c.StoreEvents),
		},
		"simulations": map[string]any{
			"requested":      atomic.LoadInt64(&c.SimulationsRequested),
			"completed":      completed,
			"rejected":       atomic.LoadInt64(&c.SimulationsRejected),
			"avg_latency_ms": simAvgMs,
			"max_latency_ms": float64(atomic.LoadInt64(&c.SimLatencyMax)) / 1e6,
		},
		"db": map[string]any{
			"writes": atomic.LoadInt64(&c.DBWrites),
			"errors": atomic.LoadInt64(&c.DBWriteErrors),
		},
		"websocket": map[string]any{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
		},
	}
}

// Handler returns an HTTP handler serving the counters as JSON.
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		json.NewEncoder(w).Encode(c.Snapshot())
	}
}

// PrometheusHandler returns the counters in Prometheus text format.
func (c *Collector) PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		fmt.Fprintf(w, "# HELP companion_log_lines_read Total log lines read\n")
		fmt.Fprintf(w, "# TYPE companion_log_lines_read counter\n")
		fmt.Fprintf(w, "companion_log_lines_read %d\n\n", atomic.LoadInt64(&c.LogLinesRead))

		fmt.Fprintf(w, "# HELP companion_events_processed Total game events folded through the parser chains\n")
		fmt.Fprintf(w, "# TYPE companion_events_processed counter\n")
		fmt.Fprintf(w, "companion_events_processed %d\n\n", atomic.LoadInt64(&c.EventsProcessed))

		fmt.Fprintf(w, "# HELP companion_parser_errors Total contained parser failures\n")
		fmt.Fprintf(w, "# TYPE companion_parser_errors counter\n")
		fmt.Fprintf(w, "companion_parser_errors %d\n\n", atomic.LoadInt64(&c.ParserErrors))

		fmt.Fprintf(w, "# HELP companion_simulations_total Battle simulations by outcome\n")
		fmt.Fprintf(w, "# TYPE companion_simulations_total counter\n")
		fmt.Fprintf(w, "companion_simulations_total{state=\"requested\"} %d\n", atomic.LoadInt64(&c.SimulationsRequested))
		fmt.Fprintf(w, "companion_simulations_total{state=\"completed\"} %d\n", atomic.LoadInt64(&c.SimulationsCompleted))
		fmt.Fprintf(w, "companion_simulations_total{state=\"rejected\"} %d\n\n", atomic.LoadInt64(&c.SimulationsRejected))

		fmt.Fprintf(w, "# HELP companion_db_writes Total persistence writes\n")
		fmt.Fprintf(w, "# TYPE companion_db_writes counter\n")
		fmt.Fprintf(w, "companion_db_writes %d\n\n", atomic.LoadInt64(&c.DBWrites))

		fmt.Fprintf(w, "# HELP companion_ws_connections Active companion windows\n")
		fmt.Fprintf(w, "# TYPE companion_ws_connections gauge\n")
		fmt.Fprintf(w, "companion_ws_connections %d\n", atomic.LoadInt64(&c.WSConnectionsActive))
	}
}
