package deck

// Game type constants from the game's enum, limited to the values the
// companion distinguishes.
const (
	GameTypeRanked        = 7
	GameTypeCasual        = 4
	GameTypeArena         = 5
	GameTypeBattlegrounds = 23
)

// Metadata is the read-only match classification snapshot.
type Metadata struct {
	GameType   int `json:"gameType"`
	FormatType int `json:"formatType"`
	ScenarioID int `json:"scenarioId"`
}

// GameState is the aggregate root for one match: both players' deck states
// plus match metadata. It is created at game start, replaced (never
// mutated) by the parser chain on every applied event, and discarded for a
// fresh instance at the next game start.
type GameState struct {
	PlayerDeck   DeckState `json:"playerDeck"`
	OpponentDeck DeckState `json:"opponentDeck"`
	Metadata     Metadata  `json:"metadata"`
	CurrentTurn  int       `json:"currentTurn"`
	GameStarted  bool      `json:"gameStarted"`
	GameEnded    bool      `json:"gameEnded"`
	Reconnecting bool      `json:"reconnecting"`
}

// NewGameState returns an empty pre-game state.
func NewGameState() *GameState {
	return &GameState{
		PlayerDeck:   DeckState{IsPlayer: true},
		OpponentDeck: DeckState{},
	}
}

// DeckFor returns the deck state for one side.
func (g *GameState) DeckFor(isPlayer bool) DeckState {
	if isPlayer {
		return g.PlayerDeck
	}
	return g.OpponentDeck
}

// WithDeckFor returns a new game state with one side's deck replaced.
func (g *GameState) WithDeckFor(isPlayer bool, d DeckState) *GameState {
	next := *g
	if isPlayer {
		next.PlayerDeck = d
	} else {
		next.OpponentDeck = d
	}
	return &next
}

// WithDecks returns a new game state with both deck states replaced.
func (g *GameState) WithDecks(player, opponent DeckState) *GameState {
	next := *g
	next.PlayerDeck = player
	next.OpponentDeck = opponent
	return &next
}

// WithMetadata returns a new game state with the match classification set.
func (g *GameState) WithMetadata(m Metadata) *GameState {
	next := *g
	next.Metadata = m
	return &next
}

// WithTurn returns a new game state positioned at the given turn.
func (g *GameState) WithTurn(turn int) *GameState {
	next := *g
	next.CurrentTurn = turn
	return &next
}

// WithGameStarted returns a new game state flagged as in progress.
func (g *GameState) WithGameStarted() *GameState {
	next := *g
	next.GameStarted = true
	next.GameEnded = false
	return &next
}

// WithGameEnded returns a new game state flagged as over.
func (g *GameState) WithGameEnded() *GameState {
	next := *g
	next.GameEnded = true
	return &next
}

// WithReconnecting returns a new game state with the reconnect flag set.
func (g *GameState) WithReconnecting(reconnecting bool) *GameState {
	next := *g
	next.Reconnecting = reconnecting
	return &next
}

// IsBattlegrounds reports whether the current match is a battlegrounds
// game.
func (g *GameState) IsBattlegrounds() bool {
	return g.Metadata.GameType == GameTypeBattlegrounds
}
