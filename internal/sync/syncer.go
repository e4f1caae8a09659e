// Package sync pulls community and player statistics from the stats API
// into local storage and keeps derived per-player numbers (including
// stored MAWP) up to date.
package sync

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hotsdraft/hots-companion/internal/heroesprofile"
	"github.com/hotsdraft/hots-companion/internal/hots/mawp"
	"github.com/hotsdraft/hots-companion/internal/storage/models"
	"github.com/hotsdraft/hots-companion/internal/storage/repository"
)

// historyLimit caps how many stored games feed the per-hero rebuild.
// MAWP weights decay to noise long before this.
const historyLimit = 1000

// StatsAPI is the slice of the stats client the syncer needs.
type StatsAPI interface {
	GetHeroWinRates(ctx context.Context, params heroesprofile.QueryParams) ([]heroesprofile.HeroWinRate, error)
	GetMatchups(ctx context.Context, params heroesprofile.QueryParams) ([]heroesprofile.HeroMatchup, error)
	GetPlayerProfile(ctx context.Context, params heroesprofile.QueryParams) (*heroesprofile.PlayerProfile, error)
}

// Repos bundles the repositories the syncer writes through.
type Repos struct {
	Players     repository.PlayerRepository
	Matches     repository.MatchRepository
	HeroStats   repository.HeroStatsRepository
	Matchups    repository.MatchupRepository
	PlayerStats repository.PlayerStatsRepository
}

// Syncer moves data from the stats API into storage.
type Syncer struct {
	api   StatsAPI
	repos Repos
	now   func() time.Time
	debug bool
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithClock overrides the time source (used by tests).
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) { s.now = now }
}

// WithDebug enables verbose logging.
func WithDebug(debug bool) Option {
	return func(s *Syncer) { s.debug = debug }
}

// NewSyncer creates a syncer over the given API client and repositories.
func NewSyncer(api StatsAPI, repos Repos, opts ...Option) *Syncer {
	s := &Syncer{
		api:   api,
		repos: repos,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncCommunityStats pulls aggregate hero win rates and the pairwise
// matchup table for one tier and upserts them.
func (s *Syncer) SyncCommunityStats(ctx context.Context, tier string) error {
	rates, err := s.api.GetHeroWinRates(ctx, heroesprofile.QueryParams{Tier: tier})
	if err != nil {
		return fmt.Errorf("fetch hero win rates: %w", err)
	}

	stats := make([]*models.HeroStat, 0, len(rates))
	for _, r := range rates {
		stats = append(stats, &models.HeroStat{
			Hero:     r.Hero,
			Map:      r.Map,
			Tier:     tier,
			WinRate:  r.WinRate,
			PickRate: r.PickRate,
			BanRate:  r.BanRate,
			Games:    r.Games,
		})
	}
	if err := s.repos.HeroStats.UpsertBatch(ctx, stats); err != nil {
		return fmt.Errorf("store hero stats: %w", err)
	}

	pairs, err := s.api.GetMatchups(ctx, heroesprofile.QueryParams{Tier: tier})
	if err != nil {
		return fmt.Errorf("fetch matchups: %w", err)
	}

	matchups := make([]*models.Matchup, 0, len(pairs))
	for _, p := range pairs {
		matchups = append(matchups, &models.Matchup{
			Hero:    p.Hero,
			Other:   p.Other,
			Tier:    tier,
			Kind:    p.Kind,
			WinRate: p.WinRate,
			Games:   p.Games,
		})
	}
	if err := s.repos.Matchups.UpsertBatch(ctx, matchups); err != nil {
		return fmt.Errorf("store matchups: %w", err)
	}

	log.Printf("[Sync] community stats for tier %s: %d hero rows, %d matchup rows", tier, len(stats), len(matchups))
	return nil
}

// SyncPlayer pulls a player's match history since the last sync,
// stores the new games, and rebuilds the player's derived statistics.
func (s *Syncer) SyncPlayer(ctx context.Context, battletag string) error {
	player, err := s.repos.Players.GetByBattletag(ctx, battletag)
	if err != nil {
		return fmt.Errorf("load player %s: %w", battletag, err)
	}

	params := heroesprofile.QueryParams{
		Battletag: battletag,
		Region:    player.Region,
	}
	if player.LastSyncedAt != nil {
		params.Since = *player.LastSyncedAt
	}

	profile, err := s.api.GetPlayerProfile(ctx, params)
	if err != nil {
		return fmt.Errorf("fetch profile for %s: %w", battletag, err)
	}

	matches := make([]*models.Match, 0, len(profile.Matches))
	for _, m := range profile.Matches {
		matches = append(matches, &models.Match{
			Battletag:     battletag,
			Hero:          m.Hero,
			Map:           m.Map,
			Win:           m.Winner,
			GameDate:      m.GameDate,
			LengthSeconds: m.LengthSeconds,
		})
	}
	if err := s.repos.Matches.InsertBatch(ctx, matches); err != nil {
		return fmt.Errorf("store matches for %s: %w", battletag, err)
	}
	if s.debug {
		log.Printf("[Sync] %s: %d new games", battletag, len(matches))
	}

	if err := s.RebuildPlayerStats(ctx, battletag); err != nil {
		return err
	}

	if err := s.repos.Players.TouchSynced(ctx, battletag, s.now()); err != nil {
		return fmt.Errorf("record sync time for %s: %w", battletag, err)
	}
	return nil
}

// SyncAllPlayers syncs every tracked player, continuing past individual
// failures.
func (s *Syncer) SyncAllPlayers(ctx context.Context) error {
	players, err := s.repos.Players.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}

	var firstErr error
	for _, p := range players {
		if err := s.SyncPlayer(ctx, p.Battletag); err != nil {
			log.Printf("[Sync] player %s failed: %v", p.Battletag, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// RebuildPlayerStats recomputes a player's per-hero lines (games, wins,
// win rate, MAWP) and per-map lines from the stored match history.
func (s *Syncer) RebuildPlayerStats(ctx context.Context, battletag string) error {
	history, err := s.repos.Matches.GetRecent(ctx, battletag, historyLimit)
	if err != nil {
		return fmt.Errorf("load history for %s: %w", battletag, err)
	}

	byHero := make(map[string][]*models.Match)
	for _, m := range history {
		byHero[m.Hero] = append(byHero[m.Hero], m)
	}

	type mapKey struct {
		hero string // empty for the all-heroes line
		m    string
	}

	now := s.now()
	heroLines := make([]*models.PlayerHeroStat, 0, len(byHero))
	mapAgg := make(map[mapKey]*models.PlayerMapStat)
	for hero, games := range byHero {
		wins := 0
		records := make([]mawp.MatchRecord, 0, len(games))
		for _, g := range games {
			if g.Win {
				wins++
			}
			records = append(records, mawp.MatchRecord{Win: g.Win, GameDate: g.GameDate})

			for _, key := range []mapKey{{"", g.Map}, {hero, g.Map}} {
				line, ok := mapAgg[key]
				if !ok {
					line = &models.PlayerMapStat{Battletag: battletag, Hero: key.hero, Map: key.m}
					mapAgg[key] = line
				}
				line.Games++
				if g.Win {
					line.Wins++
				}
			}
		}

		heroLines = append(heroLines, &models.PlayerHeroStat{
			Battletag: battletag,
			Hero:      hero,
			Games:     len(games),
			Wins:      wins,
			WinRate:   float64(wins) / float64(len(games)) * 100,
			MAWP:      mawp.Compute(records, now),
		})
	}

	mapLines := make([]*models.PlayerMapStat, 0, len(mapAgg))
	for _, line := range mapAgg {
		line.WinRate = float64(line.Wins) / float64(line.Games) * 100
		mapLines = append(mapLines, line)
	}

	if err := s.repos.PlayerStats.UpsertHeroStats(ctx, heroLines); err != nil {
		return fmt.Errorf("store hero lines for %s: %w", battletag, err)
	}
	if err := s.repos.PlayerStats.UpsertMapStats(ctx, mapLines); err != nil {
		return fmt.Errorf("store map lines for %s: %w", battletag, err)
	}
	return nil
}
