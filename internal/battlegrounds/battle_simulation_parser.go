package battlegrounds

import (
	"context"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/metrics"
)

// BattleSimulationParser attaches an async simulation result to the
// face-off that requested it, matched by opponent identity. A result whose
// opponent no longer has a pending face-off is stale and gets dropped.
type BattleSimulationParser struct {
	log     *logger.Logger
	metrics *metrics.Collector
}

func (p *BattleSimulationParser) Applies(ev *events.GameEvent, state *State) bool {
	return ev.Type == events.TypeBgsBattleSimulation && state.CurrentGame != nil &&
		ev.Data().SimulationResult != nil
}

func (p *BattleSimulationParser) Parse(_ context.Context, state *State, ev *events.GameEvent) (*State, error) {
	data := ev.Data()
	opponent := bgs.NormalizeHeroCardID(data.OpponentHeroCardID)
	game := state.Game()

	result := *data.SimulationResult
	update := bgs.FaceOff{OpponentCardID: opponent, BattleResult: &result}
	if err := update.Validate(); err != nil {
		p.log.Warn("simulation result failed validation: %v", err)
	}

	updated, err := game.UpdateLastFaceOff(opponent, bgs.FaceOff{BattleResult: &result})
	if err != nil {
		p.log.Warn("dropping stale simulation result against %s: %v", opponent, err)
		p.metrics.RecordSimulationRejected()
		return state, nil
	}
	updated = updated.WithBattleInfoStatus(bgs.BattleStatusDone, "")
	return state.WithGame(updated), nil
}
