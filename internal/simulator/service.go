// Package simulator runs asynchronous battlegrounds combat simulations and
// publishes results back onto the event log. Simulation is fire and forget:
// callers never wait, and a result that arrives after the game moved on is
// simply rejected by the consumer.
package simulator

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/metrics"
)

type job struct {
	info           bgs.BattleInfo
	opponentCardID string
	requestedAt    time.Time
}

// Service owns the worker pool. Each request fans the batch out across the
// workers and aggregates their tallies before publishing.
type Service struct {
	eventLog  *events.Log
	log       *logger.Logger
	metrics   *metrics.Collector
	workers   int
	batchSize int
	jobs      chan job
}

func New(eventLog *events.Log, log *logger.Logger, collector *metrics.Collector, workers, batchSize int) *Service {
	if workers < 1 {
		workers = 1
	}
	if batchSize < 1 {
		batchSize = 1
	}
	return &Service{
		eventLog:  eventLog,
		log:       log.With("simulator"),
		metrics:   collector,
		workers:   workers,
		batchSize: batchSize,
		jobs:      make(chan job, 16),
	}
}

// Run services simulation requests until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.jobs:
			s.runJob(ctx, j)
		}
	}
}

// RequestSimulation queues a battle for simulation and returns immediately.
// When the queue is full the request is dropped; a stale result would be
// rejected downstream anyway.
func (s *Service) RequestSimulation(ctx context.Context, info bgs.BattleInfo, opponentCardID string) {
	s.metrics.RecordSimulationRequested()
	j := job{info: info, opponentCardID: opponentCardID, requestedAt: time.Now()}
	select {
	case s.jobs <- j:
	case <-ctx.Done():
	default:
		s.log.Warn("simulation queue full, dropping request against %s", opponentCardID)
	}
}

func (s *Service) runJob(ctx context.Context, j job) {
	result := s.simulate(ctx, j.info)
	s.metrics.RecordSimulationCompleted(time.Since(j.requestedAt))

	s.eventLog.Append(events.GameEvent{
		Type:   events.TypeBgsBattleSimulation,
		CardID: j.opponentCardID,
		Additional: &events.AdditionalData{
			OpponentHeroCardID: j.opponentCardID,
			SimulationResult:   &result,
		},
	})
}

// simulate runs the full batch across the worker pool and merges tallies.
func (s *Service) simulate(ctx context.Context, info bgs.BattleInfo) bgs.SimulationResult {
	perWorker := s.batchSize / s.workers
	if perWorker < 1 {
		perWorker = 1
	}

	type tally struct {
		won, lost, tied      int
		damageWon, damageLost int
	}
	results := make(chan tally, s.workers)

	for w := 0; w < s.workers; w++ {
		go func(seed int64) {
			rng := rand.New(rand.NewSource(seed))
			var t tally
			for i := 0; i < perWorker; i++ {
				if ctx.Err() != nil {
					break
				}
				switch o := simulateOne(rng, info); o.result {
				case "won":
					t.won++
					t.damageWon += o.damage
				case "lost":
					t.lost++
					t.damageLost += o.damage
				default:
					t.tied++
				}
			}
			results <- t
		}(time.Now().UnixNano() + int64(w))
	}

	var total tally
	for w := 0; w < s.workers; w++ {
		t := <-results
		total.won += t.won
		total.lost += t.lost
		total.tied += t.tied
		total.damageWon += t.damageWon
		total.damageLost += t.damageLost
	}

	samples := total.won + total.lost + total.tied
	if samples == 0 {
		return bgs.SimulationResult{}
	}
	result := bgs.SimulationResult{
		WonPercent:     pct(total.won, samples),
		TiedPercent:    pct(total.tied, samples),
		LostPercent:    pct(total.lost, samples),
		OutcomeSamples: samples,
	}
	if total.won > 0 {
		result.AverageDamageWon = float64(total.damageWon) / float64(total.won)
	}
	if total.lost > 0 {
		result.AverageDamageLost = float64(total.damageLost) / float64(total.lost)
	}
	return result
}

func pct(n, total int) float64 {
	return math.Round(float64(n)/float64(total)*10000) / 100
}
