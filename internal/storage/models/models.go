// Package models defines the persistence-layer records for player and
// community statistics. Heroes are stored by canonical name; callers
// resolve names to roster IDs when assembling in-memory data sets.
package models

import "time"

// Player is a tracked battletag.
type Player struct {
	Battletag    string     `json:"battletag"`
	Region       string     `json:"region"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Match is one recorded game for a tracked player.
type Match struct {
	ID            int64     `json:"id"`
	Battletag     string    `json:"battletag"`
	Hero          string    `json:"hero"`
	Map           string    `json:"map"`
	Win           bool      `json:"win"`
	GameDate      time.Time `json:"game_date"`
	LengthSeconds int       `json:"length_seconds"`
	CreatedAt     time.Time `json:"created_at"`
}

// HeroStat is one aggregate community statistic row. Map is empty for
// the all-maps aggregate. Rates are percentages in [0,100].
type HeroStat struct {
	Hero      string    `json:"hero"`
	Map       string    `json:"map,omitempty"`
	Tier      string    `json:"tier"`
	WinRate   float64   `json:"win_rate"`
	PickRate  float64   `json:"pick_rate"`
	BanRate   float64   `json:"ban_rate"`
	Games     int       `json:"games"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Matchup kinds.
const (
	MatchupSynergy = "synergy"
	MatchupCounter = "counter"
)

// Matchup is one pairwise statistic row. Synergy rows are unordered
// pairs; counter rows read as Hero (attacker) against Other (target).
type Matchup struct {
	Hero      string    `json:"hero"`
	Other     string    `json:"other"`
	Tier      string    `json:"tier"`
	Kind      string    `json:"kind"`
	WinRate   float64   `json:"win_rate"`
	Games     int       `json:"games"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerHeroStat is a player's aggregate record on one hero. MAWP is a
// [0,1] fraction recomputed by the sync pipeline after every ingest.
type PlayerHeroStat struct {
	Battletag string    `json:"battletag"`
	Hero      string    `json:"hero"`
	Games     int       `json:"games"`
	Wins      int       `json:"wins"`
	WinRate   float64   `json:"win_rate"`
	MAWP      float64   `json:"mawp"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerMapStat is a player's record on one map, optionally narrowed to
// a single hero (empty Hero means all heroes on that map).
type PlayerMapStat struct {
	Battletag string    `json:"battletag"`
	Hero      string    `json:"hero,omitempty"`
	Map       string    `json:"map"`
	Games     int       `json:"games"`
	Wins      int       `json:"wins"`
	WinRate   float64   `json:"win_rate"`
	UpdatedAt time.Time `json:"updated_at"`
}
