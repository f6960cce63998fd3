// Package config holds process configuration, populated from environment
// variables. Wiring happens only in the cmd packages.
package config

import (
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable for the companion process.
type Config struct {
	// ListenAddr is the local HTTP/WebSocket bind address for companion
	// windows.
	ListenAddr string `env:"COMPANION_LISTEN_ADDR" envDefault:"127.0.0.1:9230"`

	// GameLogFile is the log file written by the game client.
	GameLogFile string `env:"COMPANION_GAME_LOG_FILE" envDefault:"Logs/Power.log"`

	// DBPath is the local sqlite database location.
	DBPath string `env:"COMPANION_DB_PATH" envDefault:"companion.db"`

	// CardsFile is the reference card database (JSON).
	CardsFile string `env:"COMPANION_CARDS_FILE" envDefault:"cards.json"`

	// LogPollIntervalMs is how often the log listener checks for new lines.
	LogPollIntervalMs int `env:"COMPANION_LOG_POLL_INTERVAL_MS" envDefault:"100"`

	// SimulationBatchSize is the number of combat trials per simulation
	// request.
	SimulationBatchSize int `env:"COMPANION_SIM_BATCH_SIZE" envDefault:"10000"`

	// SimulationWorkers is the worker count for one simulation batch.
	// Zero means one worker per CPU.
	SimulationWorkers int `env:"COMPANION_SIM_WORKERS" envDefault:"0"`

	// EventChannelBuffer sizes the store event queues.
	EventChannelBuffer int `env:"COMPANION_EVENT_BUFFER" envDefault:"1024"`

	// ClientSendBuffer sizes the per-window websocket send queue.
	ClientSendBuffer int `env:"COMPANION_CLIENT_SEND_BUFFER" envDefault:"64"`
}

// Load reads configuration from the environment on top of the defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SimulationWorkers <= 0 {
		cfg.SimulationWorkers = runtime.NumCPU()
	}
	return cfg, nil
}
