// Package mockdata generates deterministic sample data for local
// development when no upstream statistics API is reachable. The same
// seed always produces the same rows.
package mockdata

import (
	"math/rand"
	"time"

	"github.com/hotsdraft/hots-companion/internal/heroes"
	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

// Maps is the battleground pool mock matches are spread across.
var Maps = []string{
	"Cursed Hollow",
	"Dragon Shire",
	"Towers of Doom",
	"Infernal Shrines",
	"Sky Temple",
	"Tomb of the Spider Queen",
	"Braxis Holdout",
}

// Generator produces reproducible sample data.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// New creates a generator. The same seed yields identical output.
func New(seed int64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// HeroStats generates community rows for every hero: one all-maps
// aggregate plus one row per map, with plausible win and ban rates.
func (g *Generator) HeroStats(tier string) []*models.HeroStat {
	var out []*models.HeroStat
	for _, h := range heroes.All() {
		base := 46.0 + g.rng.Float64()*8 // 46-54%
		ban := g.rng.Float64() * 30
		games := 20000 + g.rng.Intn(60000)

		out = append(out, &models.HeroStat{
			Hero:    h.Name,
			Tier:    tier,
			WinRate: round1(base),
			BanRate: round1(ban),
			Games:   games,
		})
		for _, m := range Maps {
			out = append(out, &models.HeroStat{
				Hero:    h.Name,
				Map:     m,
				Tier:    tier,
				WinRate: round1(base + (g.rng.Float64()-0.5)*6),
				BanRate: round1(ban),
				Games:   games / len(Maps),
			})
		}
	}
	return out
}

// Matchups generates a sparse pairwise grid: for each hero, synergy
// rows with a handful of partners and counter rows against a handful of
// targets.
func (g *Generator) Matchups(tier string) []*models.Matchup {
	roster := heroes.All()
	var out []*models.Matchup
	for _, h := range roster {
		for i := 0; i < 4; i++ {
			other := roster[g.rng.Intn(len(roster))]
			if other.ID == h.ID {
				continue
			}
			out = append(out, &models.Matchup{
				Hero:    h.Name,
				Other:   other.Name,
				Tier:    tier,
				Kind:    models.MatchupSynergy,
				WinRate: round1(48 + g.rng.Float64()*8),
				Games:   500 + g.rng.Intn(3000),
			})
		}
		for i := 0; i < 4; i++ {
			target := roster[g.rng.Intn(len(roster))]
			if target.ID == h.ID {
				continue
			}
			out = append(out, &models.Matchup{
				Hero:    h.Name,
				Other:   target.Name,
				Tier:    tier,
				Kind:    models.MatchupCounter,
				WinRate: round1(48 + g.rng.Float64()*10),
				Games:   500 + g.rng.Intn(3000),
			})
		}
	}
	return out
}

// Matches generates a battletag's match history: count games over the
// past 120 days concentrated on a small personal hero pool.
func (g *Generator) Matches(battletag string, count int) []*models.Match {
	roster := heroes.All()

	// A pool of 6-10 mains, with skewed play time toward the first few.
	poolSize := 6 + g.rng.Intn(5)
	pool := make([]heroes.Hero, 0, poolSize)
	seen := make(map[heroes.HeroID]bool)
	for len(pool) < poolSize {
		h := roster[g.rng.Intn(len(roster))]
		if !seen[h.ID] {
			seen[h.ID] = true
			pool = append(pool, h)
		}
	}

	out := make([]*models.Match, 0, count)
	for i := 0; i < count; i++ {
		h := pool[g.rng.Intn(len(pool))]
		if g.rng.Float64() < 0.5 {
			h = pool[g.rng.Intn(3)] // extra weight on the top mains
		}
		daysAgo := g.rng.Intn(120)
		out = append(out, &models.Match{
			Battletag:     battletag,
			Hero:          h.Name,
			Map:           Maps[g.rng.Intn(len(Maps))],
			Win:           g.rng.Float64() < 0.52,
			GameDate:      g.now.AddDate(0, 0, -daysAgo).Add(-time.Duration(g.rng.Intn(86400)) * time.Second),
			LengthSeconds: 900 + g.rng.Intn(900),
		})
	}
	return out
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
