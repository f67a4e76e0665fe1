// Package server exposes the generation pipeline over HTTP and WebSocket:
// a thin dev harness wrapping worldgen and orchestrator behind the six
// external operations, instrumented with the same middleware stack,
// rate limiting, and health-check patterns the original game server used.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"ironfrontier/pkg/config"
	"ironfrontier/pkg/integration"
	"ironfrontier/pkg/pcg/content"
	"ironfrontier/pkg/pcg/entities"
	"ironfrontier/pkg/pcg/metrics"
	"ironfrontier/pkg/pcg/orchestrator"
	"ironfrontier/pkg/pcg/worldgen"
	"ironfrontier/pkg/persistence"
	"ironfrontier/pkg/validation"

	"github.com/sirupsen/logrus"
)

// worldSnapshotFile is the FileStore entry the server saves the current
// generated world to when cfg.WorldSnapshotDir is configured.
const worldSnapshotFile = "world_snapshot.yaml"

// Server wires the generation pipeline to an HTTP+WebSocket front end.
type Server struct {
	cfg    *config.Config
	logger *logrus.Logger

	registry     *content.Registry
	orchestrator *orchestrator.Orchestrator
	worldGen     *worldgen.Generator
	metrics      *metrics.Metrics

	mu        sync.RWMutex
	world     *entities.GeneratedWorld
	locations map[string]entities.ResolvedLocation

	rateLimiter   *RateLimiter
	healthChecker *HealthChecker
	hub           *wsHub
	snapshots     *persistence.FileStore
	validator     *validation.InputValidator

	httpServer *http.Server
}

// NewServer constructs a Server from cfg, loading the built-in content
// registry (plus any configured YAML overlay) and initializing the
// orchestrator with the configured world seed.
func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	if logger == nil {
		logger = logrus.New()
	}

	registry := content.NewRegistry(logger)
	if result := registry.LoadDefaults(); result != nil && !result.IsValid() {
		return nil, fmt.Errorf("default content registry failed validation: %v", result.Errors)
	}
	if err := config.LoadContentOverlay(cfg.ContentOverlayPath, registry); err != nil {
		return nil, fmt.Errorf("loading content overlay: %w", err)
	}

	m := metrics.New()

	orch := orchestrator.New(logger, m)

	s := &Server{
		cfg:          cfg,
		logger:       logger,
		registry:     registry,
		orchestrator: orch,
		worldGen:     worldgen.New(logger),
		metrics:      m,
		hub:          newWSHub(),
		validator:    validation.NewInputValidator(cfg.MaxRequestSize),
	}

	if cfg.RateLimitEnabled {
		s.rateLimiter = NewRateLimiter(cfg)
	}
	s.healthChecker = NewHealthChecker(s)

	if cfg.WorldSnapshotDir != "" {
		store, err := persistence.NewFileStore(cfg.WorldSnapshotDir)
		if err != nil {
			return nil, fmt.Errorf("opening world snapshot store: %w", err)
		}
		s.snapshots = store
	}

	var world entities.GeneratedWorld
	if s.snapshots != nil && s.snapshots.Exists(worldSnapshotFile) {
		loadErr := integration.ExecuteFileSystemOperation(context.Background(), func(context.Context) error {
			return s.snapshots.Load(worldSnapshotFile, &world)
		})
		if loadErr != nil {
			logger.WithError(loadErr).Warn("failed to load world snapshot, regenerating")
			world = s.generateInitialWorld(cfg)
		} else {
			logger.WithField("seed", world.Seed).Info("restored world from snapshot")
		}
	} else {
		world = s.generateInitialWorld(cfg)
	}
	orch.Initialize(world.Seed, registry)
	s.setWorld(world)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      s.routes(),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	return s, nil
}

// generateInitialWorld builds the startup world from cfg's seed and region
// settings.
func (s *Server) generateInitialWorld(cfg *config.Config) entities.GeneratedWorld {
	opts := worldgen.DefaultOptions()
	if cfg.RegionCount > 0 {
		opts.RegionCount = cfg.RegionCount
	}
	if cfg.LocationsPerRegionMin > 0 && cfg.LocationsPerRegionMax >= cfg.LocationsPerRegionMin {
		opts.LocationsPerRegion = [2]int{cfg.LocationsPerRegionMin, cfg.LocationsPerRegionMax}
	}
	return s.worldGen.Generate(cfg.WorldSeed, cfg.WorldName, opts)
}

// setWorld replaces the server's current world snapshot, rebuilds the
// location-ID lookup table used by the per-location handlers, and persists
// the world to the snapshot store when one is configured.
func (s *Server) setWorld(world entities.GeneratedWorld) {
	locations := make(map[string]entities.ResolvedLocation, world.Manifest.LocationCount)
	for _, region := range world.Regions {
		for _, loc := range region.Locations {
			locations[loc.ID] = entities.ResolvedLocation{
				ID:       loc.ID,
				Name:     loc.ID,
				RegionID: region.ID,
				Type:     loc.Type,
			}
		}
	}

	s.mu.Lock()
	s.world = &world
	s.locations = locations
	s.mu.Unlock()

	if s.snapshots != nil {
		err := integration.ExecuteFileSystemOperation(context.Background(), func(context.Context) error {
			return s.snapshots.Save(worldSnapshotFile, world)
		})
		if err != nil {
			s.logger.WithError(err).Warn("failed to persist world snapshot")
		}
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.healthChecker.HealthHandler)
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.HandleFunc("POST /api/world/generate", s.handleGenerateWorld)
	mux.HandleFunc("POST /api/location/content", s.handleGenerateLocationContent)
	mux.HandleFunc("GET /api/location/npcs", s.handleGetOrGenerateNPCs)
	mux.HandleFunc("GET /api/location/items", s.handleGetOrGenerateItems)
	mux.HandleFunc("GET /api/dialogue", s.handleGetOrGenerateDialogue)
	mux.HandleFunc("GET /api/shop", s.handleGetOrGenerateShop)
	mux.HandleFunc("GET /api/structure", s.handleGetOrGenerateStructureState)
	mux.HandleFunc("POST /api/cache/clear", s.handleClearCache)
	mux.HandleFunc("GET /api/ws", s.handleWebSocket)

	return s.wrapMiddleware(mux)
}

// wrapMiddleware applies the shared middleware chain around handler, with
// RecoveryMiddleware outermost so a panic anywhere else in the chain (or in
// handler itself) still yields a logged 500 instead of crashing the process.
// Execution order: Recovery -> Logging -> RateLimiting -> CORS -> RequestID.
func (s *Server) wrapMiddleware(handler http.Handler) http.Handler {
	handler = RequestIDMiddleware(handler)
	handler = CORSMiddleware(s.cfg.AllowedOrigins)(handler)
	handler = RateLimitingMiddleware(s.rateLimiter)(handler)
	handler = LoggingMiddleware(handler)
	handler = RecoveryMiddleware(handler)
	return handler
}

// Start begins serving HTTP and blocks until the server stops.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("starting generation server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and the WebSocket hub within
// cfg.ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.closeAll()
	if s.rateLimiter != nil {
		s.rateLimiter.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// InitializeWorld re-seeds the orchestrator, clearing any cached location
// content from a prior seed.
func (s *Server) InitializeWorld(seed uint32) {
	s.orchestrator.Initialize(seed, s.registry)
}
