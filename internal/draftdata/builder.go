package draftdata

import (
	"context"
	"fmt"

	"github.com/hotsdraft/hots-companion/internal/heroes"
	"github.com/hotsdraft/hots-companion/internal/storage/models"
	"github.com/hotsdraft/hots-companion/internal/storage/repository"
)

// Builder assembles bundles from storage. Stored rows key heroes by
// name; the builder resolves them to roster IDs and silently drops rows
// naming heroes outside the roster (stale data after a patch).
type Builder struct {
	heroStats   repository.HeroStatsRepository
	matchups    repository.MatchupRepository
	playerStats repository.PlayerStatsRepository
}

// NewBuilder creates a builder over the given repositories.
func NewBuilder(heroStats repository.HeroStatsRepository, matchups repository.MatchupRepository, playerStats repository.PlayerStatsRepository) *Builder {
	return &Builder{
		heroStats:   heroStats,
		matchups:    matchups,
		playerStats: playerStats,
	}
}

// Build assembles the bundle for one map/tier and the given roster
// battletags. Map-specific hero rows override the all-maps aggregate;
// heroes with only aggregate data still get a row.
func (b *Builder) Build(ctx context.Context, mapName, tier string, battletags []string) (*Bundle, error) {
	bundle := NewBundle(mapName, tier)

	aggregate, err := b.heroStats.GetByMapTier(ctx, "", tier)
	if err != nil {
		return nil, fmt.Errorf("load aggregate hero stats: %w", err)
	}
	for _, row := range aggregate {
		b.setHeroStat(bundle, row)
	}
	if mapName != "" {
		perMap, err := b.heroStats.GetByMapTier(ctx, mapName, tier)
		if err != nil {
			return nil, fmt.Errorf("load map hero stats: %w", err)
		}
		for _, row := range perMap {
			b.setHeroStat(bundle, row)
		}
	}

	synergies, err := b.matchups.GetByTierKind(ctx, tier, models.MatchupSynergy)
	if err != nil {
		return nil, fmt.Errorf("load synergies: %w", err)
	}
	for _, row := range synergies {
		a, okA := heroes.ByName(row.Hero)
		c, okC := heroes.ByName(row.Other)
		if !okA || !okC {
			continue
		}
		bundle.SetSynergy(a, c, PairStat{WinRate: row.WinRate, Games: row.Games})
	}

	counters, err := b.matchups.GetByTierKind(ctx, tier, models.MatchupCounter)
	if err != nil {
		return nil, fmt.Errorf("load counters: %w", err)
	}
	for _, row := range counters {
		attacker, okA := heroes.ByName(row.Hero)
		target, okT := heroes.ByName(row.Other)
		if !okA || !okT {
			continue
		}
		bundle.SetCounter(attacker, target, PairStat{WinRate: row.WinRate, Games: row.Games})
	}

	for _, battletag := range battletags {
		if battletag == "" {
			continue
		}
		stats, err := b.buildPlayer(ctx, battletag)
		if err != nil {
			return nil, err
		}
		bundle.Players[battletag] = stats
	}

	return bundle, nil
}

func (b *Builder) setHeroStat(bundle *Bundle, row *models.HeroStat) {
	id, ok := heroes.ByName(row.Hero)
	if !ok {
		return
	}
	bundle.HeroStats[id] = HeroStat{
		WinRate:  row.WinRate,
		PickRate: row.PickRate,
		BanRate:  row.BanRate,
		Games:    row.Games,
	}
}

func (b *Builder) buildPlayer(ctx context.Context, battletag string) (*PlayerStats, error) {
	heroRows, err := b.playerStats.GetHeroStats(ctx, battletag)
	if err != nil {
		return nil, fmt.Errorf("load hero lines for %s: %w", battletag, err)
	}
	mapRows, err := b.playerStats.GetMapStats(ctx, battletag)
	if err != nil {
		return nil, fmt.Errorf("load map lines for %s: %w", battletag, err)
	}

	stats := &PlayerStats{
		Battletag: battletag,
		Heroes:    make(map[heroes.HeroID]HeroLine, len(heroRows)),
		Maps:      make(map[string]MapLine),
	}

	totalWins := 0
	for _, row := range heroRows {
		id, ok := heroes.ByName(row.Hero)
		if !ok {
			continue
		}
		stats.Heroes[id] = HeroLine{
			Games:   row.Games,
			Wins:    row.Wins,
			WinRate: row.WinRate,
			MAWP:    row.MAWP,
			Maps:    make(map[string]MapLine),
		}
		stats.TotalGames += row.Games
		totalWins += row.Wins
	}
	if stats.TotalGames > 0 {
		stats.OverallWinRate = float64(totalWins) / float64(stats.TotalGames) * 100
	}

	for _, row := range mapRows {
		line := MapLine{Games: row.Games, Wins: row.Wins, WinRate: row.WinRate}
		if row.Hero == "" {
			stats.Maps[row.Map] = line
			continue
		}
		id, ok := heroes.ByName(row.Hero)
		if !ok {
			continue
		}
		if heroLine, ok := stats.Heroes[id]; ok {
			heroLine.Maps[row.Map] = line
			stats.Heroes[id] = heroLine
		}
	}

	return stats, nil
}
