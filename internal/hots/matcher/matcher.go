// Package matcher pairs shortlisted draft candidates with the roster
// player best suited to play them and surfaces team-composition gaps.
package matcher

import (
	"fmt"
	"sort"

	"github.com/hotsdraft/hots-companion/internal/heroes"
	"github.com/hotsdraft/hots-companion/internal/hots/competency"
)

// MaxRecommendations caps the matcher output.
const MaxRecommendations = 10

// Priority orders role needs. Lower values sort first.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityImportant
	PriorityNiceToHave
)

// String returns the display name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityImportant:
		return "important"
	default:
		return "nice-to-have"
	}
}

// RoleNeed names a compositional need and the heroes that fulfill it.
type RoleNeed struct {
	Label    string
	Priority Priority
	Heroes   []heroes.HeroID
}

// Recommendation pairs one candidate hero with its best-suited player.
type Recommendation struct {
	HeroID         heroes.HeroID `json:"hero_id"`
	Hero           string        `json:"hero"`
	Battletag      string        `json:"battletag"`
	Score          float64       `json:"score"`
	Games          int           `json:"games"`
	WinRate        float64       `json:"win_rate"`
	Priority       Priority      `json:"priority"`
	NoOneCompetent bool          `json:"no_one_competent"`
	Reason         string        `json:"reason"`
}

// Result is the matcher output: ranked recommendations plus
// composition-gap warnings.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Warnings        []string         `json:"warnings"`
}

// Match pairs each candidate hero with the roster player holding the
// highest competency score for it (ties broken by roster order), tags
// each with the priority of whichever role need lists the hero, and
// warns about critical needs no one on the roster can competently fill.
// Heroes nobody has real games on are flagged, not dropped.
func Match(candidates []heroes.HeroID, players []competency.PlayerCompetency, needs []RoleNeed) Result {
	priorityFor := make(map[heroes.HeroID]Priority)
	for _, need := range needs {
		for _, id := range need.Heroes {
			if existing, ok := priorityFor[id]; !ok || need.Priority < existing {
				priorityFor[id] = need.Priority
			}
		}
	}

	recs := make([]Recommendation, 0, len(candidates))
	for _, id := range candidates {
		rec := Recommendation{
			HeroID:   id,
			Hero:     heroes.Name(id),
			Priority: PriorityNiceToHave,
		}
		if p, ok := priorityFor[id]; ok {
			rec.Priority = p
		}

		// Strictly-greater comparison keeps the first player on ties.
		// The competency flag scans every player, not just the best one:
		// a hot small-sample score can outrank a steady player who does
		// have real games on the hero.
		var best *competency.HeroCompetency
		anyCompetent := false
		for i := range players {
			if hc, ok := players[i].Find(id); ok {
				if hc.Games >= competency.CompetentMinGames {
					anyCompetent = true
				}
				if best == nil || hc.Score > best.Score {
					copyHC := hc
					best = &copyHC
					rec.Battletag = players[i].Battletag
				}
			}
		}

		if best != nil {
			rec.Score = best.Score
			rec.Games = best.Games
			rec.WinRate = best.WinRate
		}
		if !anyCompetent {
			rec.NoOneCompetent = true
			rec.Reason = fmt.Sprintf("No roster player has meaningful experience on %s", rec.Hero)
		} else {
			rec.Reason = fmt.Sprintf("%s is %.0f%% over %d games on %s",
				rec.Battletag, best.WinRate, best.Games, rec.Hero)
			if best.MapBonus {
				rec.Reason += " (strong on this map)"
			}
		}

		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority < recs[j].Priority
		}
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}

	return Result{
		Recommendations: recs,
		Warnings:        compositionWarnings(players, needs),
	}
}

// compositionWarnings flags every critical role need that no roster
// player can competently fill with any qualifying hero. The warning is
// about the roster, independent of which hero ends up picked.
func compositionWarnings(players []competency.PlayerCompetency, needs []RoleNeed) []string {
	var warnings []string
	for _, need := range needs {
		if need.Priority != PriorityCritical {
			continue
		}
		covered := false
		for _, id := range need.Heroes {
			for i := range players {
				if hc, ok := players[i].Find(id); ok && hc.Games >= competency.CompetentMinGames {
					covered = true
					break
				}
			}
			if covered {
				break
			}
		}
		if !covered {
			warnings = append(warnings,
				fmt.Sprintf("No one on the roster has real games on a %s", need.Label))
		}
	}
	return warnings
}
