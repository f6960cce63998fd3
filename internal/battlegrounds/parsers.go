package battlegrounds

import (
	"context"
	"math"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
)

// MatchStartParser opens a fresh game aggregate.
type MatchStartParser struct{}

func (p *MatchStartParser) Applies(ev *events.GameEvent, _ *State) bool {
	return ev.Type == events.TypeBgsMatchStart
}

func (p *MatchStartParser) Parse(_ context.Context, state *State, ev *events.GameEvent) (*State, error) {
	return state.WithGame(bgs.NewGame(ev.ID)).WithInGame(true), nil
}

// HeroSelectedParser records the main player's hero pick.
type HeroSelectedParser struct{}

func (p *HeroSelectedParser) Applies(ev *events.GameEvent, state *State) bool {
	return ev.Type == events.TypeBgsHeroSelected && state.CurrentGame != nil
}

func (p *HeroSelectedParser) Parse(_ context.Context, state *State, ev *events.GameEvent) (*State, error) {
	player := bgs.Player{
		CardID:       bgs.NormalizeHeroCardID(ev.CardID),
		IsMainPlayer: true,
	}
	if ev.LocalPlayer != nil {
		player.Name = ev.LocalPlayer.Name
	}
	return state.WithGame(state.Game().WithPlayer(player)), nil
}

// OpponentRevealedParser adds an opponent to the roster the first time
// their hero is seen.
type OpponentRevealedParser struct{}

func (p *OpponentRevealedParser) Applies(ev *events.GameEvent, state *State) bool {
	return ev.Type == events.TypeBgsOpponentRevealed && state.CurrentGame != nil
}

func (p *OpponentRevealedParser) Parse(_ context.Context, state *State, ev *events.GameEvent) (*State, error) {
	game := state.Game()
	cardID := bgs.NormalizeHeroCardID(ev.CardID)
	if _, ok := game.PlayerByHero(cardID); ok {
		return state, nil
	}
	player := bgs.Player{CardID: cardID}
	if place := ev.Data().LeaderboardPlace; place != 0 {
		player.LeaderboardPosition = place
	}
	return state.WithGame(game.WithPlayer(player)), nil
}

// NextOpponentParser opens a pending face-off against the announced next
// opponent. The face-off fills in as the board capture and the simulation
// result arrive.
type NextOpponentParser struct{}

func (p *NextOpponentParser) Applies(ev *events.GameEvent, state *State) bool {
	return ev.Type == events.TypeBgsNextOpponent && state.CurrentGame != nil
}

func (p *NextOpponentParser) Parse(_ context.Context, state *State, ev *events.GameEvent) (*State, error) {
	game := state.Game()
	opponent := bgs.NormalizeHeroCardID(ev.Data().NextOpponentCardID)
	if opponent == "" {
		opponent = bgs.NormalizeHeroCardID(ev.CardID)
	}
	faceOff := bgs.FaceOff{
		PlayerCardID:   game.MainPlayer().CardID,
		OpponentCardID: opponent,
		Turn:           game.CurrentTurnAdjustedForAsyncPlay(),
	}
	game = game.WithFaceOff(faceOff).WithLastOpponent(opponent)
	return state.WithGame(game), nil
}

// TurnStartParser normalizes the engine's half-turn counter: the game log
// counts each player phase separately, the aggregate counts full rounds.
type TurnStartParser struct{}

func (p *TurnStartParser) Applies(ev *events.GameEvent, state *State) bool {
	return ev.Type == events.TypeBgsTurnStart && state.CurrentGame != nil
}

func (p *TurnStartParser) Parse(_ context.Context, state *State, ev *events.GameEvent) (*State, error) {
	raw := ev.Data().TurnNumber
	normalized := int(math.Ceil(float64(raw) / 2))
	if normalized < 1 {
		normalized = 1
	}
	return state.WithGame(state.Game().WithTurn(normalized)), nil
}

// RecruitStartParser flips the phase back to recruit. Simulation results
// for the previous combat may still be in flight at this point.
type RecruitStartParser struct{}

func (p *RecruitStartParser) Applies(ev *events.GameEvent, state *State) bool {
	return ev.Type == events.TypeBgsRecruitStart && state.CurrentGame != nil
}

func (p *RecruitStartParser) Parse(_ context.Context, state *State, _ *events.GameEvent) (*State, error) {
	return state.WithGame(state.Game().WithPhase(bgs.PhaseRecruit)), nil
}

// CombatStartParser flips the phase to combat.
type CombatStartParser struct{}

func (p *CombatStartParser) Applies(ev *events.GameEvent, state *State) bool {
	return ev.Type == events.TypeBgsCombatStart && state.CurrentGame != nil
}

func (p *CombatStartParser) Parse(_ context.Context, state *State, _ *events.GameEvent) (*State, error) {
	return state.WithGame(state.Game().WithPhase(bgs.PhaseCombat)), nil
}

// BattleResultParser records the real combat outcome once the game
// resolves the battle. It lands next to whatever the simulation predicted,
// so the two can be compared per face-off.
type BattleResultParser struct {
	log *logger.Logger
}

func (p *BattleResultParser) Applies(ev *events.GameEvent, state *State) bool {
	return ev.Type == events.TypeBgsBattleResult && state.CurrentGame != nil &&
		ev.Data().BattleResult != ""
}

func (p *BattleResultParser) Parse(_ context.Context, state *State, ev *events.GameEvent) (*State, error) {
	data := ev.Data()
	opponent := data.OpponentHeroCardID
	if opponent == "" {
		opponent = state.Game().LastOpponentCardID
	}
	game, err := state.Game().RecordBattleResult(opponent, data.BattleResult)
	if err != nil {
		p.log.Warn("battle result %q has no face-off to land on: %v", data.BattleResult, err)
		return state, nil
	}
	return state.WithGame(game), nil
}

// ReconnectParser tracks the reconnect window; consumers suppress battle
// overlays while it is open.
type ReconnectParser struct{}

func (p *ReconnectParser) Applies(ev *events.GameEvent, _ *State) bool {
	return ev.Type == events.TypeReconnectStart || ev.Type == events.TypeReconnectOver
}

func (p *ReconnectParser) Parse(_ context.Context, state *State, ev *events.GameEvent) (*State, error) {
	return state.WithReconnect(ev.Type == events.TypeReconnectStart), nil
}

// GameEndParser closes the aggregate, keeping the final game readable for
// the post-match screen.
type GameEndParser struct{}

func (p *GameEndParser) Applies(ev *events.GameEvent, state *State) bool {
	return ev.Type == events.TypeGameEnd && state.CurrentGame != nil
}

func (p *GameEndParser) Parse(_ context.Context, state *State, ev *events.GameEvent) (*State, error) {
	game := state.Game().WithGameEnded()
	if place := ev.Data().LeaderboardPlace; place != 0 {
		main := game.MainPlayer()
		main.LeaderboardPosition = place
		game = game.UpdatePlayer(main)
	}
	return state.WithGame(game).WithInGame(false), nil
}
