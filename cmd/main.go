package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"molten_balance/internal/config"
	"molten_balance/internal/engine"
	"molten_balance/internal/handlers"
	"molten_balance/internal/logger"
	"molten_balance/internal/publisher"
	"molten_balance/internal/repository"
	"molten_balance/internal/repository/db"
	"molten_balance/internal/server"
	"molten_balance/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title           Molten Balance API
// @version         1.0
// @description     Blast-furnace molten mass balance and tap scheduling.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	settings, err := cfg.EngineSettings()
	if err != nil {
		log.Fatalw("invalid engine settings", "err", err)
	}
	eng, err := engine.New(settings)
	if err != nil {
		log.Fatalw("invalid engine settings", "err", err)
	}

	seed, err := config.LoadSeedParams(cfg.Seed.ParamsFile)
	if err != nil {
		log.Fatalw("failed to load seed parameters", "err", err)
	}
	if err := engine.Validate(engine.Normalize(seed)); err != nil {
		log.Warnw("seed parameters rejected; recompute fails until parameters are saved", "err", err)
	}

	conn, err := openDB(cfg.DB.Path, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	pub, err := publisher.New(cfg.Publisher)
	if err != nil {
		log.Fatalw("failed to init publisher", "kind", cfg.Publisher.Kind, "err", err)
	}
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			log.Warnw("failed to close publisher", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Deps{
		Engine:    eng,
		Seed:      seed,
		Publisher: pub,
		Log:       log,
		Auth: service.AuthConfig{
			SigningKey: cfg.Auth.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
		},
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Ticker.Run(ctx, cfg.Recompute.Tick)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("server started", "port", cfg.Port, "tick", cfg.Recompute.Tick, "publisher", cfg.Publisher.Kind)

	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database, falling back to a local file.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "balance.db")
		path = "balance.db"
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the recompute ticker
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
