// Package repository provides data access layers for draft companion
// data.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// PlayerRepository handles database operations for tracked players.
type PlayerRepository interface {
	// Upsert inserts a player or updates its region.
	Upsert(ctx context.Context, player *models.Player) error

	// GetByBattletag retrieves a player. Returns ErrNotFound when the
	// battletag is not tracked.
	GetByBattletag(ctx context.Context, battletag string) (*models.Player, error)

	// List retrieves all tracked players ordered by battletag.
	List(ctx context.Context) ([]*models.Player, error)

	// TouchSynced records a completed sync for the player.
	TouchSynced(ctx context.Context, battletag string, at time.Time) error

	// Delete removes a player and, via cascading foreign keys, all of
	// its matches and derived statistics.
	Delete(ctx context.Context, battletag string) error
}

type playerRepository struct {
	db *sql.DB
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *sql.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (battletag, region)
		VALUES (?, ?)
		ON CONFLICT(battletag) DO UPDATE SET region = excluded.region
	`
	if _, err := r.db.ExecContext(ctx, query, player.Battletag, player.Region); err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}
	return nil
}

func (r *playerRepository) GetByBattletag(ctx context.Context, battletag string) (*models.Player, error) {
	query := `
		SELECT battletag, region, last_synced_at, created_at
		FROM players
		WHERE battletag = ?
	`
	p := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, battletag).Scan(
		&p.Battletag, &p.Region, &p.LastSyncedAt, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

func (r *playerRepository) List(ctx context.Context) ([]*models.Player, error) {
	query := `
		SELECT battletag, region, last_synced_at, created_at
		FROM players
		ORDER BY battletag
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		p := &models.Player{}
		if err := rows.Scan(&p.Battletag, &p.Region, &p.LastSyncedAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}

func (r *playerRepository) TouchSynced(ctx context.Context, battletag string, at time.Time) error {
	query := `UPDATE players SET last_synced_at = ? WHERE battletag = ?`
	if _, err := r.db.ExecContext(ctx, query, at, battletag); err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}
	return nil
}

func (r *playerRepository) Delete(ctx context.Context, battletag string) error {
	query := `DELETE FROM players WHERE battletag = ?`
	if _, err := r.db.ExecContext(ctx, query, battletag); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}
