package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/healstats/internal/core/config"
	"github.com/aevon-lab/healstats/internal/core/storage"
	"github.com/aevon-lab/healstats/internal/core/storage/memory"
	"github.com/aevon-lab/healstats/internal/core/storage/postgres"
	"github.com/aevon-lab/healstats/internal/ingestion"
	"github.com/aevon-lab/healstats/internal/migrations"
	"github.com/aevon-lab/healstats/internal/report"
	"github.com/aevon-lab/healstats/internal/server"
)

// encounterStore is what the binary needs from a storage backend.
type encounterStore interface {
	storage.EncounterStore
	server.HealthChecker
}

func main() {
	configPath := flag.String("config", "healstats.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration (includes the skill table)
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"database_type", cfg.Database.Type,
		"view", cfg.View,
		"indirect_healing_skills", cfg.SkillTable.Len(),
		"skill_table_fingerprint", cfg.SkillTable.Fingerprint())

	if cfg.View.DebugMode {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	viewDefaults, err := cfg.View.Options()
	if err != nil {
		slog.Error("Invalid view defaults", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage
	store, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize encounter store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// 3. Initialize Ingestion
	ingestionSvc := ingestion.NewService(store, cfg.Server.MaxBodySizeMB, cfg.Report.MaxListLimit)

	// 4. Initialize Reports
	reportSvc := report.NewService(store, cfg.SkillTable, viewDefaults, cfg.View.DebugMode, cfg.Report.CacheCapacity)

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store, cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	reportSvc.RegisterRoutes(srv.Engine)

	// 6. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// openStore builds the configured encounter store. Postgres runs migrations before
// preparing statements so a fresh database comes up in one start.
func openStore(cfg *corecfg.Config) (encounterStore, func(), error) {
	if cfg.Database.Type == "memory" {
		slog.Warn("Using in-memory encounter store; encounters are lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	adapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		return nil, nil, err
	}

	closeAdapter := func() {
		if err := adapter.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}

	if err := migrations.RunMigrations(adapter.DB(), cfg.Database.AutoMigrate); err != nil {
		closeAdapter()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := adapter.Prepare(); err != nil {
		closeAdapter()
		return nil, nil, err
	}

	return adapter, closeAdapter, nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
