// Couchpilot - Offline-First Media Catalog Client
//
// A TV-oriented client for personal media servers that mirrors the
// server's movie and show catalog into a local SQLite cache, then
// browses, searches, and resolves details from it even while offline.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/couchpilot/internal/cli"
	"github.com/asteroid-belt/couchpilot/internal/config"
	"github.com/asteroid-belt/couchpilot/internal/db"
	"github.com/asteroid-belt/couchpilot/internal/log"
	"github.com/asteroid-belt/couchpilot/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Load config and open database for persistent tracking ID
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)
	// Logging falls back to plain stdout/stderr if the file cannot open.
	_ = log.Init(paths.Logs)
	defer func() { _ = log.Close() }()

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		log.Errorf("open cache database: %v", err)
		os.Exit(1)
	}
	defer func() {
		_ = database.Close()
	}()

	// Use persistent tracking ID from database
	telemetryClient := telemetry.New(database)
	defer telemetryClient.Close()
	telemetryClient.TrackAppStarted(cfg.Server.URL != "")

	if err := cli.Execute(ctx, telemetryClient); err != nil {
		os.Exit(1)
	}
}
