package overlays

import (
	"context"
	"sync"
	"time"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/battlegrounds"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/preferences"
)

// Publisher pushes visibility decisions to the companion windows.
type Publisher interface {
	PublishOverlayState(visibility map[string]bool)
}

// PreferencesSource reads the current preferences document.
type PreferencesSource interface {
	Get(ctx context.Context) preferences.Preferences
}

// Manager re-evaluates every handler whenever a relevant event arrives and
// publishes the combined visibility map when it changes. No polling.
type Manager struct {
	handlers  []Handler
	prefs     PreferencesSource
	publisher Publisher
	log       *logger.Logger

	mu           sync.Mutex
	closedByUser map[string]bool
	gameStarted  bool
	onGameScreen bool
	lastDecision map[string]bool
}

func NewManager(prefs PreferencesSource, publisher Publisher, log *logger.Logger) *Manager {
	return &Manager{
		handlers: []Handler{
			&PlayerDeckHandler{},
			&OpponentDeckHandler{},
			&SecretsHelperHandler{},
			&BattlegroundsHandler{},
		},
		prefs:        prefs,
		publisher:    publisher,
		log:          log.With("overlays"),
		closedByUser: map[string]bool{},
	}
}

// ProcessEvent updates the transient flags from lifecycle events, then
// re-evaluates with the current aggregates.
func (m *Manager) ProcessEvent(ctx context.Context, ev *events.GameEvent, game *deck.GameState, bgsState *battlegrounds.State) {
	m.mu.Lock()
	switch ev.Type {
	case events.TypeGameStart:
		m.gameStarted = true
		// A new match reopens overlays the user closed last game.
		m.closedByUser = map[string]bool{}
	case events.TypeGameEnd:
		if m.prefs.Get(ctx).DecktrackerCloseOnGameEnd {
			m.gameStarted = false
		}
	case events.TypeSceneChanged:
		m.onGameScreen = ev.Data().Scene == "gameplay"
	case events.TypeCloseTracker:
		name := ev.CardID
		if name == "" {
			name = "player-deck"
		}
		m.closedByUser[name] = true
	}
	m.mu.Unlock()

	m.Reevaluate(ctx, game, bgsState)
}

// Reevaluate recomputes every handler's decision and publishes when the
// visibility map changed.
func (m *Manager) Reevaluate(ctx context.Context, game *deck.GameState, bgsState *battlegrounds.State) {
	prefs := m.prefs.Get(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	decision := make(map[string]bool, len(m.handlers))
	for _, h := range m.handlers {
		flags := Flags{
			ClosedByUser: m.closedByUser[h.Name()],
			GameStarted:  m.gameStarted,
			OnGameScreen: m.onGameScreen,
		}
		decision[h.Name()] = ShouldShow(h.ShowFromPreferences(prefs), h.ShowFromState(prefs, game, bgsState), flags)
	}

	if equalDecisions(m.lastDecision, decision) {
		return
	}
	m.lastDecision = decision
	m.log.Info("overlay visibility changed: %v", decision)
	m.publisher.PublishOverlayState(decision)
}

// Run consumes the event log and re-evaluates on the events that can flip
// a decision. State providers are read at evaluation time so the freshest
// aggregates are used.
func (m *Manager) Run(ctx context.Context, eventLog *events.Log, pollInterval time.Duration, gameState func() *deck.GameState, bgsState func() *battlegrounds.State) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	cursor := 0
	for {
		for _, ev := range eventLog.Since(cursor) {
			cursor++
			switch ev.Type {
			case events.TypeGameStart, events.TypeGameEnd, events.TypeSceneChanged,
				events.TypeCloseTracker, events.TypeSecretPlayed, events.TypeSecretTriggered,
				events.TypeSecretDestroyed, events.TypeBgsMatchStart,
				events.TypeBgsRecruitStart, events.TypeBgsCombatStart,
				events.TypeReconnectStart, events.TypeReconnectOver:
				m.ProcessEvent(ctx, &ev, gameState(), bgsState())
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func equalDecisions(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
