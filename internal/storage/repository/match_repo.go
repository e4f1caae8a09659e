package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

// MatchRepository handles database operations for recorded games.
type MatchRepository interface {
	// InsertBatch inserts matches inside a single transaction.
	InsertBatch(ctx context.Context, matches []*models.Match) error

	// GetByPlayerHero retrieves all of a player's games on one hero,
	// newest first.
	GetByPlayerHero(ctx context.Context, battletag, hero string) ([]*models.Match, error)

	// GetRecent retrieves a player's most recent games across all
	// heroes.
	GetRecent(ctx context.Context, battletag string, limit int) ([]*models.Match, error)

	// CountForPlayer returns the number of stored games for a player.
	CountForPlayer(ctx context.Context, battletag string) (int, error)

	// DeleteOlderThan removes games played before the cutoff and
	// returns the number deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type matchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new match repository.
func NewMatchRepository(db *sql.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) InsertBatch(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (battletag, hero, map, win, game_date, length_seconds)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		res, err := stmt.ExecContext(ctx,
			m.Battletag, m.Hero, m.Map, m.Win, m.GameDate, m.LengthSeconds,
		)
		if err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		m.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit matches: %w", err)
	}
	return nil
}

func (r *matchRepository) GetByPlayerHero(ctx context.Context, battletag, hero string) ([]*models.Match, error) {
	query := `
		SELECT id, battletag, hero, map, win, game_date, length_seconds, created_at
		FROM matches
		WHERE battletag = ? AND hero = ?
		ORDER BY game_date DESC
	`
	return r.queryMatches(ctx, query, battletag, hero)
}

func (r *matchRepository) GetRecent(ctx context.Context, battletag string, limit int) ([]*models.Match, error) {
	query := `
		SELECT id, battletag, hero, map, win, game_date, length_seconds, created_at
		FROM matches
		WHERE battletag = ?
		ORDER BY game_date DESC
		LIMIT ?
	`
	return r.queryMatches(ctx, query, battletag, limit)
}

func (r *matchRepository) CountForPlayer(ctx context.Context, battletag string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE battletag = ?`, battletag,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return n, nil
}

func (r *matchRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM matches WHERE game_date < ?`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old matches: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted matches: %w", err)
	}
	return n, nil
}

func (r *matchRepository) queryMatches(ctx context.Context, query string, args ...any) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		m := &models.Match{}
		if err := rows.Scan(
			&m.ID, &m.Battletag, &m.Hero, &m.Map, &m.Win,
			&m.GameDate, &m.LengthSeconds, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}
