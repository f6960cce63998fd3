package battlegrounds

import (
	"context"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
)

// PlayerBoardParser consumes the board capture taken when combat starts:
// both sides' boards are attached to the pending face-off, the opponent's
// board history is updated, and a simulation is dispatched when the
// scenario supports one.
type PlayerBoardParser struct {
	simulator         BattleSimulator
	simulationEnabled func() bool
	log               *logger.Logger
}

func (p *PlayerBoardParser) Applies(ev *events.GameEvent, state *State) bool {
	return ev.Type == events.TypeBgsPlayerBoard && state.CurrentGame != nil &&
		ev.Data().PlayerBoard != nil && ev.Data().OpponentBoard != nil
}

func (p *PlayerBoardParser) Parse(ctx context.Context, state *State, ev *events.GameEvent) (*State, error) {
	data := ev.Data()
	game := state.Game()
	info := bgs.BattleInfo{
		PlayerBoard:   toBoardInfo(data.PlayerBoard),
		OpponentBoard: toBoardInfo(data.OpponentBoard),
	}
	opponent := bgs.NormalizeHeroCardID(data.OpponentBoard.HeroCardID)

	game = recordOpponentBoard(game, opponent, info.OpponentBoard, game.CurrentTurnAdjustedForAsyncPlay())

	if len(info.PlayerBoard.Board) > maxBoardSize || len(info.OpponentBoard.Board) > maxBoardSize {
		p.log.Warn("board capture exceeds %d entities, skipping simulation", maxBoardSize)
		game = game.WithBattleInfoStatus(bgs.BattleStatusEmpty, "")
		return state.WithGame(game), nil
	}

	withBoards, err := game.UpdateLastFaceOff(opponent, bgs.FaceOff{BattleInfo: &info})
	if err != nil {
		if state.ReconnectOngoing {
			// The opponent-revealed event was missed while disconnected, so
			// the pairing is reconstructed from the board capture itself.
			game = game.WithFaceOff(bgs.FaceOff{
				PlayerCardID:   game.MainPlayer().CardID,
				OpponentCardID: opponent,
				Turn:           game.CurrentTurnAdjustedForAsyncPlay(),
				BattleInfo:     &info,
			})
		} else {
			p.log.Warn("no pending face-off for board capture against %s: %v", opponent, err)
		}
	} else {
		game = withBoards
	}

	if ok, msg := supportedScenario(info); !ok {
		game = game.WithBattleInfoStatus(bgs.BattleStatusDone, msg)
		return state.WithGame(game), nil
	}

	if p.simulationEnabled != nil && !p.simulationEnabled() {
		game = game.WithBattleInfoStatus(bgs.BattleStatusEmpty, "")
		return state.WithGame(game), nil
	}

	game = game.WithBattleInfoStatus(bgs.BattleStatusWaiting, "")
	p.simulator.RequestSimulation(ctx, info, opponent)
	return state.WithGame(game), nil
}

func toBoardInfo(board *events.PlayerBoard) bgs.BoardInfo {
	return bgs.BoardInfo{
		Hero: bgs.BoardHero{
			CardID:          bgs.NormalizeHeroCardID(board.HeroCardID),
			HeroPowerCardID: board.HeroPowerCardID,
			HeroPowerUsed:   board.HeroPowerUsed,
			HpLeft:          board.Health - board.Damage,
			TavernTier:      board.TavernTier,
		},
		Board: append([]bgs.BoardEntity(nil), board.Board...),
	}
}

func recordOpponentBoard(game bgs.Game, opponentCardID string, board bgs.BoardInfo, turn int) bgs.Game {
	player, ok := game.PlayerByHero(opponentCardID)
	if !ok {
		player = bgs.Player{CardID: opponentCardID}
	}
	player.TavernTier = board.Hero.TavernTier
	player.HpLeft = board.Hero.HpLeft
	player = player.WithBoardSnapshot(bgs.BoardSnapshot{
		Turn:  turn,
		Board: append([]bgs.BoardEntity(nil), board.Board...),
	})
	if !ok {
		return game.WithPlayer(player)
	}
	return game.UpdatePlayer(player)
}
