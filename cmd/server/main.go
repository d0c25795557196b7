package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/me/studyplan/internal/config"
	"github.com/me/studyplan/internal/logging"
	"github.com/me/studyplan/internal/server"
	"github.com/me/studyplan/internal/store"
	"github.com/me/studyplan/internal/sweeper"
)

func main() {
	cfg := config.DefaultServerConfig()

	configFile := flag.String("config", "", "Path to server config file (YAML)")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Database path (default ~/.studyplan/studyplan.db)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	seed := flag.Bool("seed", false, "Seed the database with sample data when empty")

	flag.Parse()

	if *configFile != "" {
		if err := config.LoadFile(*configFile, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Resolve database path.
	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".studyplan")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		dbPath = filepath.Join(dir, "studyplan.db")
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", dbPath)

	if *seed {
		if err := store.Seed(context.Background(), st, time.Now().UTC()); err != nil {
			fmt.Fprintf(os.Stderr, "seed database: %v\n", err)
			os.Exit(1)
		}
		logger.Info("seed data loaded")
	}

	// Create the overdue sweeper.
	sweepCfg := sweeper.DefaultConfig()
	if cfg.SweepInterval > 0 {
		sweepCfg.Interval = cfg.SweepInterval.Std()
	}
	sweep := sweeper.NewLoop(st, sweepCfg, logger)

	srv := server.New(cfg, st, logger, server.WithSweeper(sweep))

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start sweeper in background.
	srv.StartSweeper(ctx)

	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Stop sweeper before HTTP server.
	if err := sweep.Stop(); err != nil {
		logger.Error("sweeper stop error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
