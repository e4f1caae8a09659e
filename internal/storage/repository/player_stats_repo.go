package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

// PlayerStatsRepository handles database operations for per-player
// derived statistics (hero lines, map lines, stored MAWP).
type PlayerStatsRepository interface {
	// UpsertHeroStats writes hero lines inside a single transaction.
	UpsertHeroStats(ctx context.Context, stats []*models.PlayerHeroStat) error

	// UpsertMapStats writes map lines inside a single transaction.
	UpsertMapStats(ctx context.Context, stats []*models.PlayerMapStat) error

	// GetHeroStats retrieves all hero lines for a player.
	GetHeroStats(ctx context.Context, battletag string) ([]*models.PlayerHeroStat, error)

	// GetMapStats retrieves all map lines for a player (all heroes and
	// per-hero rows together).
	GetMapStats(ctx context.Context, battletag string) ([]*models.PlayerMapStat, error)

	// UpdateMAWP stores a freshly computed MAWP value for one
	// player/hero line.
	UpdateMAWP(ctx context.Context, battletag, hero string, mawp float64) error
}

type playerStatsRepository struct {
	db *sql.DB
}

// NewPlayerStatsRepository creates a new player stats repository.
func NewPlayerStatsRepository(db *sql.DB) PlayerStatsRepository {
	return &playerStatsRepository{db: db}
}

func (r *playerStatsRepository) UpsertHeroStats(ctx context.Context, stats []*models.PlayerHeroStat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO player_hero_stats (battletag, hero, games, wins, win_rate, mawp, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(battletag, hero) DO UPDATE SET
			games = excluded.games,
			wins = excluded.wins,
			win_rate = excluded.win_rate,
			mawp = excluded.mawp,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stats {
		if _, err := stmt.ExecContext(ctx,
			s.Battletag, s.Hero, s.Games, s.Wins, s.WinRate, s.MAWP,
		); err != nil {
			return fmt.Errorf("failed to upsert player hero stat: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player hero stats: %w", err)
	}
	return nil
}

func (r *playerStatsRepository) UpsertMapStats(ctx context.Context, stats []*models.PlayerMapStat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO player_map_stats (battletag, hero, map, games, wins, win_rate, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(battletag, hero, map) DO UPDATE SET
			games = excluded.games,
			wins = excluded.wins,
			win_rate = excluded.win_rate,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stats {
		if _, err := stmt.ExecContext(ctx,
			s.Battletag, s.Hero, s.Map, s.Games, s.Wins, s.WinRate,
		); err != nil {
			return fmt.Errorf("failed to upsert player map stat: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player map stats: %w", err)
	}
	return nil
}

func (r *playerStatsRepository) GetHeroStats(ctx context.Context, battletag string) ([]*models.PlayerHeroStat, error) {
	query := `
		SELECT battletag, hero, games, wins, win_rate, mawp, updated_at
		FROM player_hero_stats
		WHERE battletag = ?
		ORDER BY hero
	`
	rows, err := r.db.QueryContext(ctx, query, battletag)
	if err != nil {
		return nil, fmt.Errorf("failed to query player hero stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.PlayerHeroStat
	for rows.Next() {
		s := &models.PlayerHeroStat{}
		if err := rows.Scan(
			&s.Battletag, &s.Hero, &s.Games, &s.Wins, &s.WinRate, &s.MAWP, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan player hero stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate player hero stats: %w", err)
	}
	return stats, nil
}

func (r *playerStatsRepository) GetMapStats(ctx context.Context, battletag string) ([]*models.PlayerMapStat, error) {
	query := `
		SELECT battletag, hero, map, games, wins, win_rate, updated_at
		FROM player_map_stats
		WHERE battletag = ?
		ORDER BY map, hero
	`
	rows, err := r.db.QueryContext(ctx, query, battletag)
	if err != nil {
		return nil, fmt.Errorf("failed to query player map stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.PlayerMapStat
	for rows.Next() {
		s := &models.PlayerMapStat{}
		if err := rows.Scan(
			&s.Battletag, &s.Hero, &s.Map, &s.Games, &s.Wins, &s.WinRate, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan player map stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate player map stats: %w", err)
	}
	return stats, nil
}

func (r *playerStatsRepository) UpdateMAWP(ctx context.Context, battletag, hero string, mawp float64) error {
	query := `
		UPDATE player_hero_stats
		SET mawp = ?, updated_at = CURRENT_TIMESTAMP
		WHERE battletag = ? AND hero = ?
	`
	if _, err := r.db.ExecContext(ctx, query, mawp, battletag, hero); err != nil {
		return fmt.Errorf("failed to update mawp: %w", err)
	}
	return nil
}
