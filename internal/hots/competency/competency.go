// Package competency scores how well-suited a player is to each hero in
// their pool, combining win rate with log-scaled experience and an
// optional per-map bonus.
package competency

import (
	"math"
	"sort"

	"github.com/hotsdraft/hots-companion/internal/draftdata"
	"github.com/hotsdraft/hots-companion/internal/heroes"
)

// Policy thresholds. These are hand-tuned constants, not derived values.
const (
	// CompetentMinGames and CompetentMinWinRate define the floor for a
	// player to count as competent with a hero.
	CompetentMinGames   = 5
	CompetentMinWinRate = 45.0

	// GoodMinWinRate marks a genuinely good hero for the player
	// (same game floor as competent).
	GoodMinWinRate = 50.0

	// Map bonus: a hero qualifies when the player has played it at
	// least MapBonusMinGames times on the selected map with at least
	// MapBonusMinWinRate, multiplying the score by MapBonusMultiplier.
	MapBonusMinGames   = 3
	MapBonusMinWinRate = 60.0
	MapBonusMultiplier = 1.2
)

// HeroCompetency is one hero's competency entry for a player.
type HeroCompetency struct {
	HeroID   heroes.HeroID `json:"hero_id"`
	Hero     string        `json:"hero"`
	WinRate  float64       `json:"win_rate"` // percentage, 0-100
	Games    int           `json:"games"`
	Score    float64       `json:"score"`
	MapBonus bool          `json:"map_bonus"`
}

// PlayerCompetency is a player's full scored hero pool, rebuilt whenever
// the roster or the selected map changes.
type PlayerCompetency struct {
	Battletag      string           `json:"battletag"`
	Slot           int              `json:"slot"`
	TopHeroes      []HeroCompetency `json:"top_heroes"` // sorted by Score desc
	TotalGames     int              `json:"total_games"`
	OverallWinRate float64          `json:"overall_win_rate"`
}

// ScoreHero computes a single hero's competency for a player.
// Zero games yields the all-zero competency with no map bonus.
// selectedMap may be empty and mapStats nil when no map is chosen.
func ScoreHero(id heroes.HeroID, winRate float64, games int, selectedMap string, mapStats map[string]draftdata.MapLine) HeroCompetency {
	hc := HeroCompetency{
		HeroID: id,
		Hero:   heroes.Name(id),
	}
	if games <= 0 {
		return hc
	}

	hc.WinRate = winRate
	hc.Games = games

	mult := 1.0
	if selectedMap != "" && mapStats != nil {
		if line, ok := mapStats[selectedMap]; ok {
			if line.Games >= MapBonusMinGames && line.WinRate >= MapBonusMinWinRate {
				mult = MapBonusMultiplier
				hc.MapBonus = true
			}
		}
	}

	// ln(games+1) deliberately damps raw experience: a 70%-over-15-games
	// hero stays competitive with a 60%-over-40-games one.
	hc.Score = (winRate / 100) * math.Log(float64(games)+1) * mult
	return hc
}

// ScorePlayer builds the full competency profile for a roster slot.
// A nil playerData (unregistered player) yields an empty profile.
func ScorePlayer(battletag string, slot int, playerData *draftdata.PlayerStats, selectedMap string) PlayerCompetency {
	pc := PlayerCompetency{
		Battletag: battletag,
		Slot:      slot,
	}
	if playerData == nil {
		return pc
	}

	pc.TotalGames = playerData.TotalGames
	pc.OverallWinRate = playerData.OverallWinRate

	pc.TopHeroes = make([]HeroCompetency, 0, len(playerData.Heroes))
	for id, line := range playerData.Heroes {
		pc.TopHeroes = append(pc.TopHeroes, ScoreHero(id, line.WinRate, line.Games, selectedMap, line.Maps))
	}
	sort.SliceStable(pc.TopHeroes, func(i, j int) bool {
		if pc.TopHeroes[i].Score != pc.TopHeroes[j].Score {
			return pc.TopHeroes[i].Score > pc.TopHeroes[j].Score
		}
		return pc.TopHeroes[i].Hero < pc.TopHeroes[j].Hero
	})
	return pc
}

// Find returns the player's competency entry for a hero, if present.
func (pc *PlayerCompetency) Find(id heroes.HeroID) (HeroCompetency, bool) {
	for _, hc := range pc.TopHeroes {
		if hc.HeroID == id {
			return hc, true
		}
	}
	return HeroCompetency{}, false
}

// IsCompetent reports whether the entry clears the competency floor.
func (hc HeroCompetency) IsCompetent() bool {
	return hc.Games >= CompetentMinGames && hc.WinRate >= CompetentMinWinRate
}

// IsGood reports whether the entry clears the "good hero" floor.
func (hc HeroCompetency) IsGood() bool {
	return hc.Games >= CompetentMinGames && hc.WinRate >= GoodMinWinRate
}
