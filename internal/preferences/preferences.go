// Package preferences stores the user's settings as a single document,
// read before most feature decisions and written back whole. Concurrent
// writers race; last write wins.
package preferences

import (
	"context"
	"sync"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
)

// Preferences is the full settings document.
type Preferences struct {
	DecktrackerShowPlayer          bool `json:"decktrackerShowPlayer"`
	DecktrackerShowOpponent        bool `json:"decktrackerShowOpponent"`
	DecktrackerCloseOnGameEnd      bool `json:"decktrackerCloseOnGameEnd"`
	OverlayShowSecretsHelper       bool `json:"overlayShowSecretsHelper"`
	BgsEnableSimulation            bool `json:"bgsEnableSimulation"`
	BgsShowSimResultsOnlyOnRecruit bool `json:"bgsShowSimResultsOnlyOnRecruit"`
	CollectionEnableNotifications  bool `json:"collectionEnableNotifications"`
}

func Default() Preferences {
	return Preferences{
		DecktrackerShowPlayer:         true,
		DecktrackerShowOpponent:       true,
		DecktrackerCloseOnGameEnd:     true,
		OverlayShowSecretsHelper:      true,
		BgsEnableSimulation:           true,
		CollectionEnableNotifications: true,
	}
}

// Repository persists the document.
type Repository interface {
	Load(ctx context.Context) (Preferences, bool, error)
	Save(ctx context.Context, prefs Preferences) error
}

// ChangeListener is notified after every successful update.
type ChangeListener func(prefs Preferences)

// Service caches the document in memory and writes through to the
// repository. Reads never fail: a load error falls back to defaults.
type Service struct {
	repo      Repository
	log       *logger.Logger
	mu        sync.Mutex
	cached    *Preferences
	listeners []ChangeListener
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log.With("preferences")}
}

func (s *Service) Get(ctx context.Context) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(ctx)
}

func (s *Service) getLocked(ctx context.Context) Preferences {
	if s.cached != nil {
		return *s.cached
	}
	prefs, found, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn("loading preferences failed, using defaults: %v", err)
		return Default()
	}
	if !found {
		prefs = Default()
	}
	s.cached = &prefs
	return prefs
}

// Update applies mutate to the current document and persists the result.
func (s *Service) Update(ctx context.Context, mutate func(prefs Preferences) Preferences) (Preferences, error) {
	s.mu.Lock()
	current := s.getLocked(ctx)
	updated := mutate(current)
	s.cached = &updated
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	if err := s.repo.Save(ctx, updated); err != nil {
		return updated, err
	}
	for _, l := range listeners {
		l(updated)
	}
	return updated, nil
}

func (s *Service) OnChange(l ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}
