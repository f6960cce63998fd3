package simulator

import (
	"math/rand"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"
)

// outcome of a single simulated battle, from the player's perspective.
type outcome struct {
	result string // "won", "lost", "tied"
	damage int
}

type combatant struct {
	attack       int
	health       int
	taunt        bool
	divineShield bool
	poisonous    bool
	windfury     bool
	reborn       bool
}

func toCombatants(entities []bgs.BoardEntity) []combatant {
	out := make([]combatant, 0, len(entities))
	for _, e := range entities {
		out = append(out, combatant{
			attack:       e.Attack,
			health:       e.Health,
			taunt:        e.Taunt,
			divineShield: e.DivineShield,
			poisonous:    e.Poisonous,
			windfury:     e.Windfury,
			reborn:       e.Reborn,
		})
	}
	return out
}

// simulateOne plays out a single randomized battle. Minions alternate
// attacks starting from a random side; targets are random among taunts
// when any are alive, otherwise among all survivors.
func simulateOne(rng *rand.Rand, info bgs.BattleInfo) outcome {
	player := toCombatants(info.PlayerBoard.Board)
	opponent := toCombatants(info.OpponentBoard.Board)

	attackerIsPlayer := pickFirstAttacker(rng, len(player), len(opponent))
	playerIdx, opponentIdx := 0, 0

	for len(player) > 0 && len(opponent) > 0 {
		if attackerIsPlayer {
			player, opponent, playerIdx = attackOnce(rng, player, opponent, playerIdx)
		} else {
			opponent, player, opponentIdx = attackOnce(rng, opponent, player, opponentIdx)
		}
		attackerIsPlayer = !attackerIsPlayer
	}

	switch {
	case len(player) == 0 && len(opponent) == 0:
		return outcome{result: "tied"}
	case len(opponent) == 0:
		return outcome{result: "won", damage: damageDealt(info.PlayerBoard, len(player))}
	default:
		return outcome{result: "lost", damage: damageDealt(info.OpponentBoard, len(opponent))}
	}
}

func pickFirstAttacker(rng *rand.Rand, playerCount, opponentCount int) bool {
	if playerCount != opponentCount {
		return playerCount > opponentCount
	}
	return rng.Intn(2) == 0
}

// attackOnce performs one attack from attackers[idx % len] and returns the
// updated boards plus the next attacker index. Windfury attackers swing
// twice before the turn passes.
func attackOnce(rng *rand.Rand, attackers, defenders []combatant, idx int) ([]combatant, []combatant, int) {
	if len(attackers) == 0 || len(defenders) == 0 {
		return attackers, defenders, idx
	}
	idx = idx % len(attackers)
	swings := 1
	if attackers[idx].windfury {
		swings = 2
	}
	for s := 0; s < swings && len(defenders) > 0 && idx < len(attackers); s++ {
		target := pickTarget(rng, defenders)
		attackers, defenders = resolveAttack(attackers, defenders, idx, target)
		if idx >= len(attackers) {
			idx = 0
		}
	}
	return attackers, defenders, idx + 1
}

func pickTarget(rng *rand.Rand, defenders []combatant) int {
	taunts := make([]int, 0, len(defenders))
	for i, d := range defenders {
		if d.taunt {
			taunts = append(taunts, i)
		}
	}
	if len(taunts) > 0 {
		return taunts[rng.Intn(len(taunts))]
	}
	return rng.Intn(len(defenders))
}

func resolveAttack(attackers, defenders []combatant, aIdx, dIdx int) ([]combatant, []combatant) {
	a := &attackers[aIdx]
	d := &defenders[dIdx]

	dealToDefender := a.attack
	dealToAttacker := d.attack

	if d.divineShield && dealToDefender > 0 {
		d.divineShield = false
	} else {
		d.health -= dealToDefender
		if a.poisonous && dealToDefender > 0 {
			d.health = 0
		}
	}
	if a.divineShield && dealToAttacker > 0 {
		a.divineShield = false
	} else {
		a.health -= dealToAttacker
		if d.poisonous && dealToAttacker > 0 {
			a.health = 0
		}
	}

	defenders = reap(defenders, dIdx)
	attackers = reap(attackers, aIdx)
	return attackers, defenders
}

// reap removes the minion at idx when dead, respawning it at 1 health
// first when it has reborn.
func reap(board []combatant, idx int) []combatant {
	if idx >= len(board) || board[idx].health > 0 {
		return board
	}
	if board[idx].reborn {
		board[idx].health = 1
		board[idx].reborn = false
		board[idx].divineShield = false
		return board
	}
	out := make([]combatant, 0, len(board)-1)
	out = append(out, board[:idx]...)
	out = append(out, board[idx+1:]...)
	return out
}

// damageDealt approximates the damage a winning board deals: hero tavern
// tier plus one per surviving minion.
func damageDealt(board bgs.BoardInfo, survivors int) int {
	return board.Hero.TavernTier + survivors
}
