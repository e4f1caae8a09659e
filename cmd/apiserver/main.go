// Package main runs the draft companion backend: SQLite storage, the
// sync pipeline, and the REST/WebSocket API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hotsdraft/hots-companion/internal/api"
	"github.com/hotsdraft/hots-companion/internal/config"
	"github.com/hotsdraft/hots-companion/internal/draftdata"
	"github.com/hotsdraft/hots-companion/internal/heroesprofile"
	"github.com/hotsdraft/hots-companion/internal/hots/engine"
	"github.com/hotsdraft/hots-companion/internal/storage"
	"github.com/hotsdraft/hots-companion/internal/storage/repository"
	"github.com/hotsdraft/hots-companion/internal/sync"
	"github.com/hotsdraft/hots-companion/internal/version"
)

var (
	port      = flag.Int("port", 0, "API server port (overrides config)")
	dbPath    = flag.String("db-path", "", "Database path (default: ~/.hots-companion/companion.db)")
	replayDir = flag.String("replay-dir", "", "Replay directory to watch (overrides config)")
)

func main() {
	flag.Parse()

	fmt.Printf("HotS Companion - API Server (%s)\n", version.GetVersion())
	fmt.Println("===========================")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *replayDir != "" {
		cfg.Sync.ReplayDir = *replayDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	finalDBPath, err := cfg.DatabasePath()
	if err != nil {
		log.Fatalf("Failed to resolve database path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(finalDBPath), 0o755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	fmt.Printf("Database: %s\n", finalDBPath)

	dbConfig := storage.DefaultConfig(finalDBPath)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repos := sync.Repos{
		Players:     repository.NewPlayerRepository(db.Conn()),
		Matches:     repository.NewMatchRepository(db.Conn()),
		HeroStats:   repository.NewHeroStatsRepository(db.Conn()),
		Matchups:    repository.NewMatchupRepository(db.Conn()),
		PlayerStats: repository.NewPlayerStatsRepository(db.Conn()),
	}

	client := heroesprofile.NewClient(heroesprofile.ClientOptions{
		BaseURL: cfg.StatsAPI.BaseURL,
	})
	syncer := sync.NewSyncer(client, repos, sync.WithDebug(cfg.App.DebugMode))

	builder := draftdata.NewBuilder(repos.HeroStats, repos.Matchups, repos.PlayerStats)

	server := api.NewServer(&api.Config{Port: cfg.Server.Port}, api.Deps{
		Builder:     builder,
		Engine:      engine.NewDefault(),
		Players:     repos.Players,
		PlayerStats: repos.PlayerStats,
		Matches:     repos.Matches,
		HeroStats:   repos.HeroStats,
		PlayerSync:  syncer,
	})

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional replay watcher: a new replay means a game just finished,
	// so refresh every tracked player.
	if cfg.Sync.ReplayDir != "" {
		watcher := sync.NewWatcher(cfg.Sync.ReplayDir, func(ctx context.Context) {
			if err := syncer.SyncAllPlayers(ctx); err != nil {
				log.Printf("[Sync] replay-triggered sync: %v", err)
			}
		})
		go func() {
			if err := watcher.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("[Sync] replay watcher stopped: %v", err)
			}
		}()
		fmt.Printf("Watching replays in %s\n", cfg.Sync.ReplayDir)
	}

	fmt.Println()
	fmt.Printf("API server running at http://localhost:%d\n", server.Port())
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	fmt.Println("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("API server stopped.")
}
