package main

import (
	"context"
	"net/http"
	"os"

	"gocausal/adapters/postgres"
	"gocausal/adapters/rng"
	"gocausal/app"
	"gocausal/internal"
	"gocausal/internal/config"
	"gocausal/internal/ledger"
	"gocausal/ports"
	"gocausal/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()
	log := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed: %v", err)
		os.Exit(1)
	}

	store, err := buildLedger(context.Background(), cfg, log)
	if err != nil {
		log.Error("ledger setup failed: %v", err)
		os.Exit(1)
	}

	service := app.NewScenarioService(rng.NewAdapter(), store)
	server := ui.NewServer(service, store, cfg.Sampling)

	addr := ":" + cfg.Server.Port
	log.Info("listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		log.Error("server stopped: %v", err)
		os.Exit(1)
	}
}

// buildLedger connects the Postgres ledger when DATABASE_URL is set and falls
// back to the in-memory ledger otherwise.
func buildLedger(ctx context.Context, cfg *config.Config, log *internal.Logger) (ports.LedgerPort, error) {
	if cfg.Database.URL == "" {
		log.Info("no DATABASE_URL configured, using in-memory ledger")
		return ledger.NewInMemoryLedger(), nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	repo := postgres.NewRunRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	log.Info("using postgres ledger")
	return repo, nil
}
