package bgs

import (
	"fmt"
	"math"
)

// FaceOff is one recruit/combat pairing between the main player and an
// opponent. It is created when the next opponent is revealed, enriched as
// board snapshots and simulation results arrive (in arbitrary order), and
// becomes final once the battle resolves.
type FaceOff struct {
	PlayerCardID   string            `json:"playerCardId"`
	OpponentCardID string            `json:"opponentCardId"`
	Turn           int               `json:"turn"`
	BattleInfo     *BattleInfo       `json:"battleInfo,omitempty"`
	BattleResult   *SimulationResult `json:"battleResult,omitempty"`
	Result         string            `json:"result,omitempty"`
}

// Pending reports whether the face-off still awaits its battle outcome.
func (f FaceOff) Pending() bool {
	return f.BattleResult == nil && f.Result == ""
}

// Merge overlays the non-zero fields of update onto the receiver and returns
// the merged record. Both inputs are left untouched.
func (f FaceOff) Merge(update FaceOff) FaceOff {
	merged := f
	if update.PlayerCardID != "" {
		merged.PlayerCardID = update.PlayerCardID
	}
	if update.OpponentCardID != "" {
		merged.OpponentCardID = update.OpponentCardID
	}
	if update.Turn != 0 {
		merged.Turn = update.Turn
	}
	if update.BattleInfo != nil {
		merged.BattleInfo = update.BattleInfo
	}
	if update.BattleResult != nil {
		merged.BattleResult = update.BattleResult
	}
	if update.Result != "" {
		merged.Result = update.Result
	}
	return merged
}

// Validate sanity-checks a merged simulation result. A failure is
// diagnostic only; callers log it and keep the merge.
func (f FaceOff) Validate() error {
	if f.BattleResult == nil {
		return nil
	}
	total := f.BattleResult.WonPercent + f.BattleResult.TiedPercent + f.BattleResult.LostPercent
	if math.Abs(total-100) > 1 {
		return fmt.Errorf("battle result percentages sum to %.2f for opponent %s", total, f.OpponentCardID)
	}
	if f.BattleResult.OutcomeSamples <= 0 {
		return fmt.Errorf("battle result carries no samples for opponent %s", f.OpponentCardID)
	}
	return nil
}
