package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/arisatria5/pilketos-smpn4/cliparse"
	"github.com/arisatria5/pilketos-smpn4/ledger"
	"github.com/arisatria5/pilketos-smpn4/roster"
	"github.com/arisatria5/pilketos-smpn4/router"
	"github.com/arisatria5/pilketos-smpn4/vote"
)

func main() {
	// .env is a dev convenience; absence is fine
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env")
	}

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	store, cleanup, err := openStore(cfg)
	if err != nil {
		slog.Error("ledger store setup failed", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("Ledger store ready", "backend", cfg.StoreBackend)

	rosterCache := roster.NewCache(cfg.RosterURL, cfg.RosterTTL)
	engine := vote.NewEngine(store, rosterCache, cfg.CommitAttempts)

	mux := router.NewRouter(engine, rosterCache, cfg)

	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore builds the configured ledger backend. The returned cleanup
// releases whatever the backend holds open.
func openStore(cfg cliparse.Config) (ledger.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case cliparse.StoreMemory:
		return ledger.NewMemoryStore(), noop, nil

	case cliparse.StoreBolt:
		store, err := ledger.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { store.Close() }, nil

	case cliparse.StoreSQL:
		driver := "sqlite"
		if cfg.DatabaseType == "postgres" {
			driver = "postgres"
		}
		db, err := sql.Open(driver, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, noop, err
		}
		store := ledger.NewSQLStore(db)
		if err := store.Init(context.Background()); err != nil {
			db.Close()
			return nil, noop, err
		}
		return store, func() { db.Close() }, nil

	case cliparse.StoreGitHub:
		store, err := ledger.NewGitHubStore(context.Background(), cfg.GitHubToken, cfg.GitHubRepo, cfg.GitHubPath)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	}

	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
