package simulator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"
)

func battle(player, opponent []bgs.BoardEntity) bgs.BattleInfo {
	return bgs.BattleInfo{
		PlayerBoard:   bgs.BoardInfo{Hero: bgs.BoardHero{TavernTier: 3}, Board: player},
		OpponentBoard: bgs.BoardInfo{Hero: bgs.BoardHero{TavernTier: 4}, Board: opponent},
	}
}

func TestEmptyOpponentBoardAlwaysWins(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	info := battle(
		[]bgs.BoardEntity{{CardID: "BGS_039", Attack: 3, Health: 3}},
		nil,
	)
	for i := 0; i < 50; i++ {
		o := simulateOne(rng, info)
		if o.result != "won" {
			t.Fatalf("iteration %d: result = %q, want won", i, o.result)
		}
		if o.damage != 3+1 {
			t.Fatalf("damage = %d, want tavern tier 3 + 1 survivor", o.damage)
		}
	}
}

func TestBothBoardsEmptyTies(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if o := simulateOne(rng, battle(nil, nil)); o.result != "tied" {
		t.Errorf("result = %q, want tied", o.result)
	}
}

func TestMirrorSingleMinionTrades(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	info := battle(
		[]bgs.BoardEntity{{CardID: "A", Attack: 2, Health: 2}},
		[]bgs.BoardEntity{{CardID: "B", Attack: 2, Health: 2}},
	)
	for i := 0; i < 50; i++ {
		if o := simulateOne(rng, info); o.result != "tied" {
			t.Fatalf("mirror 2/2 battle must trade, got %q", o.result)
		}
	}
}

func TestPoisonousKillsThroughHealth(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	info := battle(
		[]bgs.BoardEntity{{CardID: "A", Attack: 1, Health: 10, Poisonous: true}},
		[]bgs.BoardEntity{{CardID: "B", Attack: 1, Health: 40}},
	)
	for i := 0; i < 50; i++ {
		if o := simulateOne(rng, info); o.result != "won" {
			t.Fatalf("poisonous attacker should always win, got %q", o.result)
		}
	}
}

func TestDivineShieldAbsorbsOneHit(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	info := battle(
		[]bgs.BoardEntity{{CardID: "A", Attack: 5, Health: 1, DivineShield: true}},
		[]bgs.BoardEntity{{CardID: "B", Attack: 5, Health: 5}},
	)
	for i := 0; i < 50; i++ {
		if o := simulateOne(rng, info); o.result != "won" {
			t.Fatalf("shielded 5/1 should beat a 5/5, got %q", o.result)
		}
	}
}

func TestTauntIsTargetedFirst(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	// The taunt soaks every opponent attack while the second minion chips
	// the opponent down.
	info := battle(
		[]bgs.BoardEntity{
			{CardID: "TAUNT", Attack: 0, Health: 50, Taunt: true},
			{CardID: "HITTER", Attack: 2, Health: 5},
		},
		[]bgs.BoardEntity{{CardID: "B", Attack: 2, Health: 4}},
	)
	for i := 0; i < 50; i++ {
		if o := simulateOne(rng, info); o.result != "won" {
			t.Fatalf("the hitter should chip the opponent down behind the taunt, got %q", o.result)
		}
	}
}

func TestAggregateResultPercentagesSum(t *testing.T) {
	svc := &Service{workers: 4, batchSize: 2000}
	info := battle(
		[]bgs.BoardEntity{{CardID: "A", Attack: 3, Health: 3}, {CardID: "A2", Attack: 2, Health: 2}},
		[]bgs.BoardEntity{{CardID: "B", Attack: 3, Health: 3}},
	)
	result := svc.simulate(context.Background(), info)

	total := result.WonPercent + result.TiedPercent + result.LostPercent
	if total < 99 || total > 101 {
		t.Errorf("percentages sum to %v, want ~100", total)
	}
	if result.OutcomeSamples < svc.batchSize/2 {
		t.Errorf("samples = %d, want at least %d", result.OutcomeSamples, svc.batchSize/2)
	}
}
