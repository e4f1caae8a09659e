package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

// MatchupRepository handles database operations for pairwise
// synergy/counter statistics.
type MatchupRepository interface {
	// UpsertBatch writes matchup rows inside a single transaction.
	UpsertBatch(ctx context.Context, matchups []*models.Matchup) error

	// GetByTierKind retrieves every row of one kind for a tier.
	GetByTierKind(ctx context.Context, tier, kind string) ([]*models.Matchup, error)

	// Get retrieves one matchup row. Returns ErrNotFound when absent.
	Get(ctx context.Context, hero, other, tier, kind string) (*models.Matchup, error)
}

type matchupRepository struct {
	db *sql.DB
}

// NewMatchupRepository creates a new matchup repository.
func NewMatchupRepository(db *sql.DB) MatchupRepository {
	return &matchupRepository{db: db}
}

func (r *matchupRepository) UpsertBatch(ctx context.Context, matchups []*models.Matchup) error {
	if len(matchups) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matchup_stats (hero, other, tier, kind, win_rate, games, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(hero, other, tier, kind) DO UPDATE SET
			win_rate = excluded.win_rate,
			games = excluded.games,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, m := range matchups {
		if _, err := stmt.ExecContext(ctx,
			m.Hero, m.Other, m.Tier, m.Kind, m.WinRate, m.Games,
		); err != nil {
			return fmt.Errorf("failed to upsert matchup: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit matchups: %w", err)
	}
	return nil
}

func (r *matchupRepository) GetByTierKind(ctx context.Context, tier, kind string) ([]*models.Matchup, error) {
	query := `
		SELECT hero, other, tier, kind, win_rate, games, updated_at
		FROM matchup_stats
		WHERE tier = ? AND kind = ?
		ORDER BY hero, other
	`
	rows, err := r.db.QueryContext(ctx, query, tier, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchups: %w", err)
	}
	defer rows.Close()

	var matchups []*models.Matchup
	for rows.Next() {
		m := &models.Matchup{}
		if err := rows.Scan(
			&m.Hero, &m.Other, &m.Tier, &m.Kind, &m.WinRate, &m.Games, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan matchup: %w", err)
		}
		matchups = append(matchups, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matchups: %w", err)
	}
	return matchups, nil
}

func (r *matchupRepository) Get(ctx context.Context, hero, other, tier, kind string) (*models.Matchup, error) {
	query := `
		SELECT hero, other, tier, kind, win_rate, games, updated_at
		FROM matchup_stats
		WHERE hero = ? AND other = ? AND tier = ? AND kind = ?
	`
	m := &models.Matchup{}
	err := r.db.QueryRowContext(ctx, query, hero, other, tier, kind).Scan(
		&m.Hero, &m.Other, &m.Tier, &m.Kind, &m.WinRate, &m.Games, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get matchup: %w", err)
	}
	return m, nil
}
