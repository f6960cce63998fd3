// Package events defines the typed game event model and the append-only
// event log the reducer chains consume. Events are immutable once
// constructed: readers receive them by value and must not retain pointers
// into shared state.
package events

import (
	"time"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/bgs"
	"github.com/google/uuid"
)

// Type tags a game event. The set is closed: every parser chain switches on
// these constants, and new types are added here first.
type Type string

const (
	// Match lifecycle
	TypeGameStart      Type = "GAME_START"
	TypeGameEnd        Type = "GAME_END"
	TypeMatchMetadata  Type = "MATCH_METADATA"
	TypeLocalPlayer    Type = "LOCAL_PLAYER"
	TypeTurnStart      Type = "TURN_START"
	TypeReconnectStart Type = "RECONNECT_START"
	TypeReconnectOver  Type = "RECONNECT_OVER"

	// Zone transfers
	TypeCardDrawn           Type = "CARD_DRAWN_FROM_DECK"
	TypeCardPlayed          Type = "CARD_PLAYED"
	TypeCardBackToDeck      Type = "CARD_BACK_TO_DECK"
	TypeCardBackToHand      Type = "CARD_BACK_TO_HAND"
	TypeCardBurned          Type = "CARD_BURNED"
	TypeCardRemovedFromDeck Type = "CARD_REMOVED_FROM_DECK"
	TypeMinionSummoned      Type = "MINION_SUMMONED"
	TypeMinionDied          Type = "MINION_DIED"
	TypeReceiveCardInHand   Type = "RECEIVE_CARD_IN_HAND"

	// Secrets
	TypeSecretPlayed    Type = "SECRET_PLAYED"
	TypeSecretPutInPlay Type = "SECRET_PUT_IN_PLAY"
	TypeSecretTriggered Type = "SECRET_TRIGGERED"
	TypeSecretDestroyed Type = "SECRET_DESTROYED"

	// Identity and effects
	TypeEntityUpdate        Type = "ENTITY_UPDATE"
	TypePassiveTriggered    Type = "PASSIVE_TRIGGERED"
	TypeControllerSwapStart Type = "CONTROLLER_SWAP_START"
	TypeControllerSwapEnd   Type = "CONTROLLER_SWAP_END"

	// Host signals
	TypeSceneChanged     Type = "SCENE_CHANGED"
	TypeCloseTracker     Type = "CLOSE_TRACKER"
	TypeLogFileTruncated Type = "LOG_FILE_TRUNCATED"
	TypeCatchUpComplete  Type = "CATCH_UP_COMPLETE"

	// Battlegrounds
	TypeBgsMatchStart       Type = "BATTLEGROUNDS_MATCH_START"
	TypeBgsHeroSelected     Type = "BATTLEGROUNDS_HERO_SELECTED"
	TypeBgsOpponentRevealed Type = "BATTLEGROUNDS_OPPONENT_REVEALED"
	TypeBgsNextOpponent     Type = "BATTLEGROUNDS_NEXT_OPPONENT"
	TypeBgsTurnStart        Type = "BATTLEGROUNDS_TURN_START"
	TypeBgsRecruitStart     Type = "BATTLEGROUNDS_RECRUIT_PHASE"
	TypeBgsCombatStart      Type = "BATTLEGROUNDS_COMBAT_PHASE"
	TypeBgsPlayerBoard      Type = "BATTLEGROUNDS_PLAYER_BOARD"
	TypeBgsBattleSimulation Type = "BATTLEGROUNDS_BATTLE_SIMULATION"
	TypeBgsBattleResult     Type = "BATTLEGROUNDS_BATTLE_RESULT"
)

// PlayerInfo identifies one seat in the match.
type PlayerInfo struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	CardID   string `json:"cardId"`
}

// SecretTrigger describes a secret about to react to the current play,
// known one event ahead from the log stream.
type SecretTrigger struct {
	CardID             string `json:"cardId"`
	ReactingToCardID   string `json:"reactingToCardId"`
	ReactingToEntityID int    `json:"reactingToEntityId"`
}

// PlayerBoard is a captured battlegrounds board for one side, attached to a
// player-board event.
type PlayerBoard struct {
	HeroCardID      string            `json:"heroCardId"`
	HeroPowerCardID string            `json:"heroPowerCardId"`
	HeroPowerUsed   bool              `json:"heroPowerUsed"`
	Health          int               `json:"health"`
	Damage          int               `json:"damage"`
	TavernTier      int               `json:"tavernTier"`
	Board           []bgs.BoardEntity `json:"board"`
}

// AdditionalData carries the named optional fields of an event. Which
// fields are populated depends on the event type; absent fields stay at
// their zero value.
type AdditionalData struct {
	InitialZone       string         `json:"initialZone,omitempty"`
	CreatorCardID     string         `json:"creatorCardId,omitempty"`
	TargetCardID      string         `json:"targetCardId,omitempty"`
	TargetEntityID    int            `json:"targetEntityId,omitempty"`
	PlayerClass       string         `json:"playerClass,omitempty"`
	Scene             string         `json:"scene,omitempty"`
	TurnNumber        int            `json:"turnNumber,omitempty"`
	GameType          int            `json:"gameType,omitempty"`
	FormatType        int            `json:"formatType,omitempty"`
	ScenarioID        int            `json:"scenarioId,omitempty"`
	Deckstring        string         `json:"deckstring,omitempty"`
	DeckList          []string       `json:"deckList,omitempty"`
	IsPremium         bool           `json:"isPremium,omitempty"`
	SecretWillTrigger *SecretTrigger `json:"secretWillTrigger,omitempty"`

	// Battlegrounds fields
	PlayerBoard        *PlayerBoard          `json:"playerBoard,omitempty"`
	OpponentBoard      *PlayerBoard          `json:"opponentBoard,omitempty"`
	OpponentHeroCardID string                `json:"opponentHeroCardId,omitempty"`
	NextOpponentCardID string                `json:"nextOpponentCardId,omitempty"`
	SimulationResult   *bgs.SimulationResult `json:"simulationResult,omitempty"`
	BattleResult       string                `json:"battleResult,omitempty"`
	LeaderboardPlace   int                   `json:"leaderboardPlace,omitempty"`
}

// GameEvent is one immutable record of something that happened in the game.
// The positional payload (card, controller, entity) follows the game log's
// conventions; everything else lives in Additional.
type GameEvent struct {
	ID             string          `json:"id"`
	Type           Type            `json:"type"`
	Timestamp      time.Time       `json:"timestamp"`
	CardID         string          `json:"cardId,omitempty"`
	ControllerID   int             `json:"controllerId,omitempty"`
	EntityID       int             `json:"entityId,omitempty"`
	LocalPlayer    *PlayerInfo     `json:"localPlayer,omitempty"`
	OpponentPlayer *PlayerInfo     `json:"opponentPlayer,omitempty"`
	Additional     *AdditionalData `json:"additionalData,omitempty"`
}

// Parse returns the positional payload in log order.
func (e *GameEvent) Parse() (cardID string, controllerID int, localPlayer *PlayerInfo, entityID int) {
	return e.CardID, e.ControllerID, e.LocalPlayer, e.EntityID
}

// IsLocalPlayer reports whether the event's controller is the local player.
func (e *GameEvent) IsLocalPlayer() bool {
	return e.LocalPlayer != nil && e.ControllerID == e.LocalPlayer.PlayerID
}

// Data returns the event's additional data, never nil.
func (e *GameEvent) Data() *AdditionalData {
	if e.Additional == nil {
		return &AdditionalData{}
	}
	return e.Additional
}

// NewID generates an event identifier.
func NewID() string {
	return uuid.NewString()
}
