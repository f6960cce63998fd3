// Package bgs holds the battlegrounds aggregates: the per-match game state,
// the face-off records, and the board snapshots exchanged with the combat
// simulator.
package bgs

// BoardEntity is one minion in a captured board snapshot, reduced to the
// attributes the combat simulator understands.
type BoardEntity struct {
	CardID       string `json:"cardId"`
	EntityID     int    `json:"entityId"`
	Attack       int    `json:"attack"`
	Health       int    `json:"health"`
	Taunt        bool   `json:"taunt,omitempty"`
	DivineShield bool   `json:"divineShield,omitempty"`
	Poisonous    bool   `json:"poisonous,omitempty"`
	Windfury     bool   `json:"windfury,omitempty"`
	Reborn       bool   `json:"reborn,omitempty"`
}

// BoardHero describes the hero side of a board snapshot.
type BoardHero struct {
	CardID          string `json:"cardId"`
	HeroPowerCardID string `json:"heroPowerCardId"`
	HeroPowerUsed   bool   `json:"heroPowerUsed"`
	HpLeft          int    `json:"hpLeft"`
	TavernTier      int    `json:"tavernTier"`
}

// BoardInfo is one player's full side of a battle: hero plus minions.
type BoardInfo struct {
	Hero  BoardHero     `json:"hero"`
	Board []BoardEntity `json:"board"`
}

// BattleInfo is the full snapshot sent to the combat simulator.
type BattleInfo struct {
	PlayerBoard   BoardInfo `json:"playerBoard"`
	OpponentBoard BoardInfo `json:"opponentBoard"`
}

// BoardSnapshot is one observed board kept in a player's history.
type BoardSnapshot struct {
	Turn  int           `json:"turn"`
	Board []BoardEntity `json:"board"`
}

// SimulationResult is the aggregated outcome of one simulation batch.
type SimulationResult struct {
	WonPercent        float64 `json:"wonPercent"`
	TiedPercent       float64 `json:"tiedPercent"`
	LostPercent       float64 `json:"lostPercent"`
	AverageDamageWon  float64 `json:"averageDamageWon"`
	AverageDamageLost float64 `json:"averageDamageLost"`
	OutcomeSamples    int     `json:"outcomeSamples"`
}
