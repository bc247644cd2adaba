/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the quota engine HTTP server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, flags)
  2. Initialize logger
  3. Initialize SQLite store
  4. Seed default teams and holidays
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides DB_PATH)
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/quota.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run on different port
  PORT=3000 ./server

ENVIRONMENT:
  PORT, DB_PATH, LOG_LEVEL, LOG_PRETTY, CORS_ORIGINS, DEFAULT_HOLIDAYS,
  TEAMS_FILE. See config/config.go.

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/atlas/quota-engine/api"
	"github.com/atlas/quota-engine/config"
	"github.com/atlas/quota-engine/factory"
	"github.com/atlas/quota-engine/generic"
	"github.com/atlas/quota-engine/pkg/logger"
	"github.com/atlas/quota-engine/store/sqlite"
)

func main() {
	bootLog := logger.New(logger.Config{Level: "error"})

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Flags override the environment
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DatabasePath, "SQLite database path")
	flag.Parse()
	cfg.Port = *port
	cfg.DatabasePath = *dbPath
	if err := cfg.Validate(); err != nil {
		bootLog.Fatal().Err(err).Msg("Invalid configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	// Initialize store
	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DatabasePath).Msg("Failed to initialize database")
	}
	defer store.Close()

	if err := seed(context.Background(), store, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed configuration")
	}

	handler := api.NewHandler(store, log)
	router := api.NewRouter(handler, log, cfg.CORSOrigins)

	// Create server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Port).Str("db", cfg.DatabasePath).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server stopped")
}

// seed loads teams (TEAMS_FILE or the built-in defaults) and DEFAULT_HOLIDAYS
// into the store. Existing rows with the same IDs are overwritten.
func seed(ctx context.Context, store generic.ConfigStore, cfg *config.Config, log zerolog.Logger) error {
	f := factory.NewConfigFactory()
	defaults, err := f.LoadDefaults(cfg.TeamsFile, cfg.DefaultHolidays)
	if err != nil {
		return err
	}

	if err := f.Seed(ctx, store, defaults); err != nil {
		return err
	}

	log.Debug().
		Int("teams", len(defaults.Teams)).
		Int("holidays", len(defaults.Holidays)).
		Msg("Seeded configuration")
	return nil
}
