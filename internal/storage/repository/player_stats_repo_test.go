package repository

import (
	"context"
	"testing"

	"github.com/hotsdraft/hots-companion/internal/storage"
	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

func TestPlayerStatsRepository_HeroLines(t *testing.T) {
	db := storage.OpenTest(t)
	seedPlayer(t, db, "Alice#1")
	repo := NewPlayerStatsRepository(db.Conn())
	ctx := context.Background()

	lines := []*models.PlayerHeroStat{
		{Battletag: "Alice#1", Hero: "Jaina", Games: 42, Wins: 25, WinRate: 59.5, MAWP: 0.58},
		{Battletag: "Alice#1", Hero: "Muradin", Games: 10, Wins: 4, WinRate: 40.0, MAWP: 0.47},
	}
	if err := repo.UpsertHeroStats(ctx, lines); err != nil {
		t.Fatalf("failed to upsert hero lines: %v", err)
	}

	got, err := repo.GetHeroStats(ctx, "Alice#1")
	if err != nil {
		t.Fatalf("failed to get hero lines: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d hero lines, want 2", len(got))
	}
	if got[0].Hero != "Jaina" || got[0].MAWP != 0.58 {
		t.Errorf("unexpected first line %+v", got[0])
	}
}

func TestPlayerStatsRepository_UpdateMAWP(t *testing.T) {
	db := storage.OpenTest(t)
	seedPlayer(t, db, "Alice#1")
	repo := NewPlayerStatsRepository(db.Conn())
	ctx := context.Background()

	if err := repo.UpsertHeroStats(ctx, []*models.PlayerHeroStat{
		{Battletag: "Alice#1", Hero: "Jaina", Games: 42, Wins: 25, WinRate: 59.5, MAWP: 0.5},
	}); err != nil {
		t.Fatalf("failed to upsert hero line: %v", err)
	}

	if err := repo.UpdateMAWP(ctx, "Alice#1", "Jaina", 0.612); err != nil {
		t.Fatalf("failed to update mawp: %v", err)
	}

	got, err := repo.GetHeroStats(ctx, "Alice#1")
	if err != nil {
		t.Fatalf("failed to get hero lines: %v", err)
	}
	if len(got) != 1 || got[0].MAWP != 0.612 {
		t.Errorf("MAWP not updated: %+v", got)
	}
}

func TestPlayerStatsRepository_MapLines(t *testing.T) {
	db := storage.OpenTest(t)
	seedPlayer(t, db, "Alice#1")
	repo := NewPlayerStatsRepository(db.Conn())
	ctx := context.Background()

	lines := []*models.PlayerMapStat{
		{Battletag: "Alice#1", Hero: "", Map: "Cursed Hollow", Games: 30, Wins: 18, WinRate: 60.0},
		{Battletag: "Alice#1", Hero: "Jaina", Map: "Cursed Hollow", Games: 8, Wins: 6, WinRate: 75.0},
	}
	if err := repo.UpsertMapStats(ctx, lines); err != nil {
		t.Fatalf("failed to upsert map lines: %v", err)
	}

	got, err := repo.GetMapStats(ctx, "Alice#1")
	if err != nil {
		t.Fatalf("failed to get map lines: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d map lines, want 2", len(got))
	}
	// All-heroes line sorts before the per-hero line on the same map.
	if got[0].Hero != "" || got[1].Hero != "Jaina" {
		t.Errorf("unexpected ordering: %+v", got)
	}
}

func TestPlayerStatsRepository_CascadeOnPlayerDelete(t *testing.T) {
	db := storage.OpenTest(t)
	seedPlayer(t, db, "Alice#1")
	players := NewPlayerRepository(db.Conn())
	repo := NewPlayerStatsRepository(db.Conn())
	ctx := context.Background()

	if err := repo.UpsertHeroStats(ctx, []*models.PlayerHeroStat{
		{Battletag: "Alice#1", Hero: "Jaina", Games: 42, Wins: 25, WinRate: 59.5, MAWP: 0.58},
	}); err != nil {
		t.Fatalf("failed to upsert hero line: %v", err)
	}

	if err := players.Delete(ctx, "Alice#1"); err != nil {
		t.Fatalf("failed to delete player: %v", err)
	}

	got, err := repo.GetHeroStats(ctx, "Alice#1")
	if err != nil {
		t.Fatalf("failed to get hero lines: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("hero lines survived player delete: %+v", got)
	}
}
