// Package draftdata defines the immutable data bundle the draft engine
// reads from: aggregate hero statistics, pairwise synergy/counter
// matrices, and per-battletag player statistics for one map/tier
// combination. A bundle is assembled once (see Builder) and treated as
// read-only for the duration of a draft session; if the underlying
// stats refresh mid-draft, callers rebuild and resupply the bundle
// rather than mutate it in place.
package draftdata

import (
	"github.com/hotsdraft/hots-companion/internal/heroes"
)

// Skill tiers used to select which aggregate statistics apply.
const (
	TierLow  = "low"
	TierMid  = "mid"
	TierHigh = "high"
)

// HeroStat holds aggregate community statistics for one hero.
// Rates are percentages in [0,100].
type HeroStat struct {
	WinRate  float64
	PickRate float64
	BanRate  float64
	Games    int
}

// PairStat is a pairwise win-rate statistic. Games == 0 is the
// explicit "no data" sentinel; a missing pair is never an error.
type PairStat struct {
	WinRate float64
	Games   int
}

// MapLine is a player's record on a single map.
type MapLine struct {
	Games   int
	Wins    int
	WinRate float64
}

// HeroLine is a player's record on a single hero. MAWP is a [0,1]
// fraction (precomputed by the sync pipeline); WinRate is a percentage.
type HeroLine struct {
	Games   int
	Wins    int
	WinRate float64
	MAWP    float64
	Maps    map[string]MapLine
}

// PlayerStats is everything known about one battletag.
type PlayerStats struct {
	Battletag      string
	TotalGames     int
	OverallWinRate float64
	Heroes         map[heroes.HeroID]HeroLine
	Maps           map[string]MapLine
}

// Bundle is the read-only data set for one map/tier combination.
// Pairwise matrices are dense HeroID×HeroID grids: synergy is stored
// symmetric, counters asymmetric ([attacker][target]).
type Bundle struct {
	Map  string
	Tier string

	HeroStats map[heroes.HeroID]HeroStat
	Players   map[string]*PlayerStats

	synergy  [][]PairStat
	counters [][]PairStat
}

// NewBundle allocates an empty bundle sized to the hero roster.
func NewBundle(mapName, tier string) *Bundle {
	n := heroes.Count()
	synergy := make([][]PairStat, n)
	counters := make([][]PairStat, n)
	for i := 0; i < n; i++ {
		synergy[i] = make([]PairStat, n)
		counters[i] = make([]PairStat, n)
	}
	return &Bundle{
		Map:       mapName,
		Tier:      tier,
		HeroStats: make(map[heroes.HeroID]HeroStat),
		Players:   make(map[string]*PlayerStats),
		synergy:   synergy,
		counters:  counters,
	}
}

func (b *Bundle) inRange(id heroes.HeroID) bool {
	return id >= 0 && int(id) < len(b.synergy)
}

// SetSynergy records the same-team win rate for a hero pair. Synergy is
// symmetric, so both orientations are written.
func (b *Bundle) SetSynergy(a, c heroes.HeroID, stat PairStat) {
	if !b.inRange(a) || !b.inRange(c) {
		return
	}
	b.synergy[a][c] = stat
	b.synergy[c][a] = stat
}

// SetCounter records the win rate of attacker against target. Counters
// are asymmetric: SetCounter(a, t) says nothing about t against a.
func (b *Bundle) SetCounter(attacker, target heroes.HeroID, stat PairStat) {
	if !b.inRange(attacker) || !b.inRange(target) {
		return
	}
	b.counters[attacker][target] = stat
}

// Synergy returns the same-team stat for a pair. ok is false when no
// data exists for the pair.
func (b *Bundle) Synergy(a, c heroes.HeroID) (PairStat, bool) {
	if !b.inRange(a) || !b.inRange(c) {
		return PairStat{}, false
	}
	s := b.synergy[a][c]
	return s, s.Games > 0
}

// Counter returns the stat for attacker playing against target.
func (b *Bundle) Counter(attacker, target heroes.HeroID) (PairStat, bool) {
	if !b.inRange(attacker) || !b.inRange(target) {
		return PairStat{}, false
	}
	s := b.counters[attacker][target]
	return s, s.Games > 0
}

// HeroStatFor returns the aggregate stat for a hero, if known.
func (b *Bundle) HeroStatFor(id heroes.HeroID) (HeroStat, bool) {
	s, ok := b.HeroStats[id]
	return s, ok
}

// Player returns the stats for a battletag, if known.
func (b *Bundle) Player(battletag string) (*PlayerStats, bool) {
	p, ok := b.Players[battletag]
	return p, ok && p != nil
}
