// Package main is a command-line tool for the sync pipeline: pull
// community statistics, refresh tracked players, seed mock data for
// offline development, and render player charts.
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

	"github.com/hotsdraft/hots-companion/internal/charts"
	"github.com/hotsdraft/hots-companion/internal/config"
	"github.com/hotsdraft/hots-companion/internal/export"
	"github.com/hotsdraft/hots-companion/internal/heroesprofile"
	"github.com/hotsdraft/hots-companion/internal/mockdata"
	"github.com/hotsdraft/hots-companion/internal/storage"
	"github.com/hotsdraft/hots-companion/internal/storage/models"
	"github.com/hotsdraft/hots-companion/internal/storage/repository"
	"github.com/hotsdraft/hots-companion/internal/sync"
)

var (
	dbPath    = flag.String("db-path", "", "Database path (default: ~/.hots-companion/companion.db)")
	tier      = flag.String("tier", "", "Skill tier for community stats (overrides config)")
	battletag = flag.String("battletag", "", "Sync a single tracked player")
	all       = flag.Bool("all", false, "Sync every tracked player")
	community = flag.Bool("community", false, "Sync community hero stats and matchups")
	mock      = flag.Bool("mock", false, "Seed deterministic mock data instead of calling the API")
	seed      = flag.Int64("seed", 1, "Mock data seed")
	chart     = flag.String("chart", "", "Render a chart for -battletag: mawp or heroes")
	chartOut  = flag.String("chart-out", "", "Chart output path (default: <battletag>-<chart>.html)")
	exportArg = flag.String("export", "", "Export data for -battletag: matches or heroes")
	format    = flag.String("format", "csv", "Export format: csv or json")
	out       = flag.String("out", "", "Export output path (default: generated from type and format)")
	watch     = flag.Bool("watch", false, "Watch the replay directory and sync tracked players on new replays")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *tier != "" {
		cfg.StatsAPI.Tier = *tier
	}

	finalDBPath, err := cfg.DatabasePath()
	if err != nil {
		log.Fatalf("Failed to resolve database path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(finalDBPath), 0o755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

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

	ctx := context.Background()

	switch {
	case *mock:
		if err := seedMockData(ctx, repos, cfg.StatsAPI.Tier); err != nil {
			log.Fatalf("Mock seeding failed: %v", err)
		}
	case *chart != "":
		if err := renderChart(ctx, repos); err != nil {
			log.Fatalf("Chart rendering failed: %v", err)
		}
	case *exportArg != "":
		if err := runExport(ctx, repos); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
	case *watch:
		if err := runWatch(ctx, cfg, repos); err != nil {
			log.Fatalf("Watch failed: %v", err)
		}
	default:
		if err := runSync(ctx, cfg, repos); err != nil {
			log.Fatalf("Sync failed: %v", err)
		}
	}
}

func runSync(ctx context.Context, cfg *config.Config, repos sync.Repos) error {
	client := heroesprofile.NewClient(heroesprofile.ClientOptions{
		BaseURL: cfg.StatsAPI.BaseURL,
	})
	syncer := sync.NewSyncer(client, repos, sync.WithDebug(cfg.App.DebugMode))

	ran := false
	if *community {
		ran = true
		if err := syncer.SyncCommunityStats(ctx, cfg.StatsAPI.Tier); err != nil {
			return err
		}
		fmt.Println("Community stats synced.")
	}
	if *battletag != "" {
		ran = true
		if err := syncer.SyncPlayer(ctx, *battletag); err != nil {
			return err
		}
		fmt.Printf("Player %s synced.\n", *battletag)
	}
	if *all {
		ran = true
		if err := syncer.SyncAllPlayers(ctx); err != nil {
			return err
		}
		fmt.Println("All tracked players synced.")
	}
	if !ran {
		return fmt.Errorf("nothing to do: pass -community, -battletag, -all, -mock or -chart")
	}
	return nil
}

// runWatch blocks on the replay directory, refreshing every tracked
// player whenever a new replay lands. Ctrl+C stops it.
func runWatch(ctx context.Context, cfg *config.Config, repos sync.Repos) error {
	if cfg.Sync.ReplayDir == "" {
		return fmt.Errorf("-watch requires sync.replay_dir in the config")
	}

	client := heroesprofile.NewClient(heroesprofile.ClientOptions{
		BaseURL: cfg.StatsAPI.BaseURL,
	})
	syncer := sync.NewSyncer(client, repos, sync.WithDebug(cfg.App.DebugMode))

	watchCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher := sync.NewWatcher(cfg.Sync.ReplayDir, func(ctx context.Context) {
		if err := syncer.SyncAllPlayers(ctx); err != nil {
			log.Printf("[Sync] replay-triggered sync: %v", err)
		}
	})

	fmt.Printf("Watching replays in %s (Ctrl+C to stop)\n", cfg.Sync.ReplayDir)
	if err := watcher.Run(watchCtx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// seedMockData fills the database with deterministic sample data: the
// community tables plus three tracked players with histories and
// rebuilt stats.
func seedMockData(ctx context.Context, repos sync.Repos, tier string) error {
	gen := mockdata.New(*seed, time.Now())

	if err := repos.HeroStats.UpsertBatch(ctx, gen.HeroStats(tier)); err != nil {
		return fmt.Errorf("seed hero stats: %w", err)
	}
	if err := repos.Matchups.UpsertBatch(ctx, gen.Matchups(tier)); err != nil {
		return fmt.Errorf("seed matchups: %w", err)
	}

	// Syncer with a nil API: only RebuildPlayerStats is used.
	syncer := sync.NewSyncer(nil, repos)
	for i, battletag := range []string{"Alice#1111", "Bob#2222", "Carol#3333"} {
		if err := repos.Players.Upsert(ctx, &models.Player{Battletag: battletag, Region: "us"}); err != nil {
			return fmt.Errorf("seed player %s: %w", battletag, err)
		}
		matches := gen.Matches(battletag, 120+40*i)
		if err := repos.Matches.InsertBatch(ctx, matches); err != nil {
			return fmt.Errorf("seed matches for %s: %w", battletag, err)
		}
		if err := syncer.RebuildPlayerStats(ctx, battletag); err != nil {
			return fmt.Errorf("rebuild stats for %s: %w", battletag, err)
		}
	}

	fmt.Println("Mock data seeded.")
	return nil
}

func renderChart(ctx context.Context, repos sync.Repos) error {
	if *battletag == "" {
		return fmt.Errorf("-chart requires -battletag")
	}
	out := *chartOut
	if out == "" {
		out = fmt.Sprintf("%s-%s.html", sanitize(*battletag), *chart)
	}

	switch *chart {
	case "mawp":
		matches, err := repos.Matches.GetRecent(ctx, *battletag, 1000)
		if err != nil {
			return err
		}
		if err := charts.RenderMAWPTrend(*battletag, matches, charts.DefaultChartConfig(), out); err != nil {
			return err
		}
	case "heroes":
		stats, err := repos.PlayerStats.GetHeroStats(ctx, *battletag)
		if err != nil {
			return err
		}
		if err := charts.RenderHeroWinRates(*battletag, stats, 5, charts.DefaultChartConfig(), out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown chart type %q (want mawp or heroes)", *chart)
	}

	fmt.Printf("Chart written to %s\n", out)
	return nil
}

func runExport(ctx context.Context, repos sync.Repos) error {
	if *battletag == "" {
		return fmt.Errorf("-export requires -battletag")
	}

	exportFormat := export.Format(*format)
	outPath := *out
	if outPath == "" {
		outPath = export.GenerateFilename(sanitize(*battletag)+"-"+*exportArg, exportFormat)
	}

	exporter := export.NewExporter(export.Options{
		Format:     exportFormat,
		FilePath:   outPath,
		PrettyJSON: true,
		Overwrite:  true,
	})

	switch *exportArg {
	case "matches":
		matches, err := repos.Matches.GetRecent(ctx, *battletag, 10000)
		if err != nil {
			return err
		}
		if err := exporter.Export(export.BuildMatchRows(matches)); err != nil {
			return err
		}
	case "heroes":
		stats, err := repos.PlayerStats.GetHeroStats(ctx, *battletag)
		if err != nil {
			return err
		}
		if err := exporter.Export(export.BuildHeroStatRows(stats)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export type %q (want matches or heroes)", *exportArg)
	}

	fmt.Printf("Export written to %s\n", outPath)
	return nil
}

func sanitize(battletag string) string {
	out := make([]rune, 0, len(battletag))
	for _, r := range battletag {
		if r == '#' || r == '/' || r == '\\' {
			r = '-'
		}
		out = append(out, r)
	}
	return string(out)
}
