package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

// HeroStatsRepository handles database operations for aggregate
// community hero statistics.
type HeroStatsRepository interface {
	// UpsertBatch writes stats rows inside a single transaction,
	// replacing existing (hero, map, tier) rows.
	UpsertBatch(ctx context.Context, stats []*models.HeroStat) error

	// GetByMapTier retrieves all hero rows for a map and tier. An empty
	// map selects the all-maps aggregate rows.
	GetByMapTier(ctx context.Context, mapName, tier string) ([]*models.HeroStat, error)

	// Get retrieves one hero's row. Returns ErrNotFound when absent.
	Get(ctx context.Context, hero, mapName, tier string) (*models.HeroStat, error)
}

type heroStatsRepository struct {
	db *sql.DB
}

// NewHeroStatsRepository creates a new hero stats repository.
func NewHeroStatsRepository(db *sql.DB) HeroStatsRepository {
	return &heroStatsRepository{db: db}
}

func (r *heroStatsRepository) UpsertBatch(ctx context.Context, stats []*models.HeroStat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO hero_stats (hero, map, tier, win_rate, pick_rate, ban_rate, games, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(hero, map, tier) DO UPDATE SET
			win_rate = excluded.win_rate,
			pick_rate = excluded.pick_rate,
			ban_rate = excluded.ban_rate,
			games = excluded.games,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stats {
		if _, err := stmt.ExecContext(ctx,
			s.Hero, s.Map, s.Tier, s.WinRate, s.PickRate, s.BanRate, s.Games,
		); err != nil {
			return fmt.Errorf("failed to upsert hero stat: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit hero stats: %w", err)
	}
	return nil
}

func (r *heroStatsRepository) GetByMapTier(ctx context.Context, mapName, tier string) ([]*models.HeroStat, error) {
	query := `
		SELECT hero, map, tier, win_rate, pick_rate, ban_rate, games, updated_at
		FROM hero_stats
		WHERE map = ? AND tier = ?
		ORDER BY hero
	`
	rows, err := r.db.QueryContext(ctx, query, mapName, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to query hero stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.HeroStat
	for rows.Next() {
		s := &models.HeroStat{}
		if err := rows.Scan(
			&s.Hero, &s.Map, &s.Tier, &s.WinRate, &s.PickRate, &s.BanRate,
			&s.Games, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan hero stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hero stats: %w", err)
	}
	return stats, nil
}

func (r *heroStatsRepository) Get(ctx context.Context, hero, mapName, tier string) (*models.HeroStat, error) {
	query := `
		SELECT hero, map, tier, win_rate, pick_rate, ban_rate, games, updated_at
		FROM hero_stats
		WHERE hero = ? AND map = ? AND tier = ?
	`
	s := &models.HeroStat{}
	err := r.db.QueryRowContext(ctx, query, hero, mapName, tier).Scan(
		&s.Hero, &s.Map, &s.Tier, &s.WinRate, &s.PickRate, &s.BanRate,
		&s.Games, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hero stat: %w", err)
	}
	return s, nil
}
