// Package main is the entry point for the collection companion process.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/battlegrounds"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/cards"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/collection"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/domain/deck"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/infra/storage"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/logreader"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/network"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/overlays"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/config"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/metrics"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/preferences"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/simulator"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/store"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/tracker"
)

// storeQueue defers the store reference so the collection manager and the
// store can be constructed in either order.
type storeQueue struct {
	store *store.Store
}

func (q *storeQueue) Queue(ev *store.Event) {
	if q.store != nil {
		q.store.Queue(ev)
	}
}

func main() {
	appLogger := logger.New("companion")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector := metrics.NewCollector()
	pollInterval := time.Duration(cfg.LogPollIntervalMs) * time.Millisecond

	// Persistence
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer db.Close()

	collectionRepo := storage.NewSQLiteCollectionRepository(db, collector)
	packRepo := storage.NewSQLitePackRepository(db, collector)
	pityRepo := storage.NewSQLitePityTimerRepository(db, collector)
	prefsRepo := storage.NewSQLitePreferencesRepository(db, collector)
	eventRepo := storage.NewSQLiteEventRepository(db, collector)

	prefsService := preferences.NewService(prefsRepo, appLogger)

	// Reference card database
	cardService, err := cards.LoadFromFile(cfg.CardsFile)
	if err != nil {
		appLogger.Warn("card database unavailable, running with empty reference data: %v", err)
		cardService = cards.NewService(nil)
	}
	appLogger.Info("card database loaded with %d cards", cardService.Size())

	// Event pipeline
	eventLog := events.NewLog(storage.NewEventLogPersister(eventRepo, appLogger))
	trackerProcessor := tracker.NewProcessor(cardService, appLogger, collector)

	simService := simulator.New(eventLog, appLogger, collector, cfg.SimulationWorkers, cfg.SimulationBatchSize)
	bgsStore := battlegrounds.NewStore(simService, func() bool {
		return prefsService.Get(context.Background()).BgsEnableSimulation
	}, appLogger, collector)

	// Cross-window bus
	hub := network.NewHub(eventLog, appLogger, collector, cfg.ClientSendBuffer)

	// Main window store and collection manager
	queue := &storeQueue{}
	collectionManager := collection.NewManager(collectionRepo, packRepo, pityRepo, queue, appLogger)
	mainStore := store.NewStore(collectionManager, prefsService, appLogger, collector, cfg.EventChannelBuffer)
	queue.store = mainStore

	// State broadcasts to companion windows
	trackerProcessor.AddListener(func(_ *events.GameEvent, state *deck.GameState) {
		hub.Publish(network.TopicGameState, state)
	})
	bgsStore.AddListener(func(_ *events.GameEvent, state *battlegrounds.State) {
		hub.Publish(network.TopicBattlegrounds, state)
	})
	mainStore.AddListener(func(_ *store.Event, main *store.MainWindowState, nav *store.NavigationState) {
		hub.Publish(network.TopicMainWindow, struct {
			Main *store.MainWindowState `json:"main"`
			Nav  *store.NavigationState `json:"navigation"`
		}{main, nav})
	})
	mainStore.AddListener(func(ev *store.Event, _ *store.MainWindowState, _ *store.NavigationState) {
		if ev.Type != store.EventCollectionRefresh || len(ev.CardIDs) == 0 {
			return
		}
		if !prefsService.Get(ctx).CollectionEnableNotifications {
			return
		}
		hub.Publish(network.TopicNotification, struct {
			Kind    string   `json:"kind"`
			CardIDs []string `json:"cardIds"`
		}{"new-cards", ev.CardIDs})
	})
	prefsService.OnChange(func(preferences.Preferences) {
		mainStore.Queue(&store.Event{Type: store.EventPreferenceUpdate})
	})

	// Overlay policy
	overlayManager := overlays.NewManager(prefsService, hub, appLogger)

	// Log and memory readers
	translator := logreader.NewTranslator()
	listener := logreader.NewListener(cfg.GameLogFile, translator, eventLog, appLogger, collector, pollInterval)
	memoryReader := logreader.NewMemoryReader(eventLog, collectionManager, appLogger)

	// Run everything
	go hub.Run(ctx)
	go simService.Run(ctx)
	go trackerProcessor.Run(ctx, eventLog, pollInterval)
	go bgsStore.Run(ctx, eventLog, pollInterval)
	go mainStore.Run(ctx)
	go listener.Run(ctx)
	go overlayManager.Run(ctx, eventLog, pollInterval, trackerProcessor.State, bgsStore.State)

	mainStore.Queue(&store.Event{Type: store.EventStoreInit})

	// HTTP surface
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/metrics", collector.PrometheusHandler())
	mux.HandleFunc("/api/metrics", collector.Handler())
	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Game          *deck.GameState      `json:"game"`
			Battlegrounds *battlegrounds.State `json:"battlegrounds"`
			CatchingUp    bool                 `json:"catchingUp"`
		}{trackerProcessor.State(), bgsStore.State(), listener.IsCatchingUp()})
	})
	mux.HandleFunc("/api/scene", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Scene string `json:"scene"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		memoryReader.OnSceneChanged(body.Scene)
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/api/collection", func(w http.ResponseWriter, r *http.Request) {
		var snapshot []storage.CollectionCard
		if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		memoryReader.OnCollectionUpdate(r.Context(), snapshot)
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/api/pack", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SetID    string   `json:"setId"`
			CardIDs  []string `json:"cardIds"`
			Rarities []string `json:"rarities"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		memoryReader.OnPackOpened(r.Context(), body.SetID, body.CardIDs, body.Rarities)
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/api/pity-timers", func(w http.ResponseWriter, r *http.Request) {
		timers, err := collectionManager.PityTimers(r.Context())
		if err != nil {
			http.Error(w, "could not load pity timers", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(timers)
	})
	mux.HandleFunc("/api/pity-timers/rebuild", func(w http.ResponseWriter, r *http.Request) {
		if err := collectionManager.RebuildPityTimers(r.Context()); err != nil {
			http.Error(w, "rebuild failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	go func() {
		appLogger.Info("listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed: %v", err)
	}
}
