// Package engine produces ranked ban and pick suggestions for a live
// draft. For the current step it scores every still-available hero as
// an estimated win-probability delta (percentage points against a 50%
// baseline) built from hero base strength, pairwise matchups, roster
// player strength, and team-composition role pressure.
//
// The engine is pure computation: it reads the caller-owned draft state
// and an immutable data bundle, performs no I/O, and is safe to call
// redundantly after every state change.
package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/hotsdraft/hots-companion/internal/draftdata"
	"github.com/hotsdraft/hots-companion/internal/heroes"
	"github.com/hotsdraft/hots-companion/internal/hots/draft"
	"github.com/hotsdraft/hots-companion/internal/hots/mawp"
)

// ReasonType tags one scoring factor.
type ReasonType string

const (
	ReasonBaseWinRate    ReasonType = "base_win_rate"
	ReasonCounter        ReasonType = "counter"
	ReasonSynergy        ReasonType = "synergy"
	ReasonPlayerStrength ReasonType = "player_strength"
	ReasonRoleNeed       ReasonType = "role_need"
	ReasonRolePenalty    ReasonType = "role_penalty"
	ReasonDenyStrong     ReasonType = "deny_strong"
	ReasonDenyContested  ReasonType = "deny_contested"
	ReasonDenyThreat     ReasonType = "deny_threat"
	ReasonWastedBan      ReasonType = "wasted_ban"
	ReasonThreat         ReasonType = "threat"
)

// Reason is one justification line with its percentage-point
// contribution to the net delta.
type Reason struct {
	Type  ReasonType `json:"type"`
	Label string     `json:"label"`
	Delta float64    `json:"delta"`
}

// Recommendation is one scored candidate action.
type Recommendation struct {
	HeroID          heroes.HeroID `json:"hero_id"`
	Hero            string        `json:"hero"`
	NetDelta        float64       `json:"net_delta"`
	Reasons         []Reason      `json:"reasons"`
	SuggestedPlayer string        `json:"suggested_player,omitempty"`
}

// Engine scores draft candidates under a policy.
type Engine struct {
	policy Policy
}

// New creates an engine with the given policy.
func New(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// NewDefault creates an engine with the reference policy.
func NewDefault() *Engine {
	return New(DefaultPolicy())
}

// Generate returns ranked recommendations for the current draft step,
// or nil when the draft is not in progress. Branching:
//
//   - any ban step, either team: heroes worth denying
//   - our pick step: heroes worth taking
//   - an enemy pick step: threat heroes they might take
//
// Heroes already selected anywhere are excluded before scoring.
func (e *Engine) Generate(state *draft.State, bundle *draftdata.Bundle) []Recommendation {
	if state == nil || bundle == nil {
		return nil
	}
	step, ok := state.CurrentStepInfo()
	if !ok {
		return nil
	}

	candidates := availableHeroes(state)

	var recs []Recommendation
	switch {
	case step.Type == draft.ActionBan:
		recs = e.scoreBans(state, bundle, candidates)
	case step.Team == state.OurTeam:
		recs = e.scorePicks(state, bundle, candidates)
	default:
		recs = e.scoreThreats(state, bundle, candidates)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].NetDelta != recs[j].NetDelta {
			return recs[i].NetDelta > recs[j].NetDelta
		}
		return recs[i].Hero < recs[j].Hero
	})
	if len(recs) > e.policy.MaxResults {
		recs = recs[:e.policy.MaxResults]
	}
	return recs
}

func availableHeroes(state *draft.State) []heroes.HeroID {
	all := heroes.All()
	out := make([]heroes.HeroID, 0, len(all))
	for _, h := range all {
		if state.IsAvailable(h.ID) {
			out = append(out, h.ID)
		}
	}
	return out
}

// scoreBans values each available hero as a ban target: deny strong
// heroes, deny contested heroes, deny counters to our existing picks,
// and avoid wasting a ban on a role the enemy has already filled.
func (e *Engine) scoreBans(state *draft.State, bundle *draftdata.Bundle, candidates []heroes.HeroID) []Recommendation {
	ourPicks := state.TeamPicks(state.OurTeam)
	enemyRoles := roleCounts(enemyTeamPicks(state))

	recs := make([]Recommendation, 0, len(candidates))
	for _, id := range candidates {
		rec := Recommendation{HeroID: id, Hero: heroes.Name(id)}

		if hs, ok := bundle.HeroStatFor(id); ok {
			if d := hs.WinRate - 50; d > 0 {
				rec.add(ReasonDenyStrong, fmt.Sprintf("%.1f%% win rate", hs.WinRate), round1(d))
			}
			if hs.BanRate >= e.policy.BanContestedMinRate {
				rec.add(ReasonDenyContested,
					fmt.Sprintf("banned in %.0f%% of drafts", hs.BanRate),
					round1(hs.BanRate*e.policy.BanContestedWeight))
			}
		}

		for _, pick := range ourPicks {
			c, ok := bundle.Counter(id, pick)
			if !ok || c.Games < e.policy.BanCounterMinGames || c.WinRate < e.policy.BanCounterMinWinRate {
				continue
			}
			rec.add(ReasonDenyThreat,
				fmt.Sprintf("counters our %s", heroes.Name(pick)),
				round1(c.WinRate-50))
		}

		if role := heroes.RoleOf(id); role == heroes.RoleHealer || role == heroes.RoleTank {
			if enemyRoles[role] > 0 {
				rec.add(ReasonWastedBan,
					fmt.Sprintf("enemy already has a %s", role),
					e.policy.BanEnemyRolePenalty)
			}
		}

		recs = append(recs, rec)
	}
	return recs
}

// scorePicks values each available hero for our own pick turn by
// summing six independently gated factors.
func (e *Engine) scorePicks(state *draft.State, bundle *draftdata.Bundle, candidates []heroes.HeroID) []Recommendation {
	ourPicks := state.TeamPicks(state.OurTeam)
	enemyPicks := enemyTeamPicks(state)
	ourRoles := roleCounts(ourPicks)
	unassigned := unassignedRoster(state)

	recs := make([]Recommendation, 0, len(candidates))
	for _, id := range candidates {
		rec := Recommendation{HeroID: id, Hero: heroes.Name(id)}

		// 1. Hero base strength.
		if hs, ok := bundle.HeroStatFor(id); ok && hs.Games >= e.policy.BaseWinRateMinGames {
			if d := round1(hs.WinRate - 50); math.Abs(d) >= e.policy.BaseWinRateNoiseFloor {
				rec.add(ReasonBaseWinRate, fmt.Sprintf("%.1f%% overall win rate", hs.WinRate), d)
			}
		}

		// 2. Counters against every enemy pick.
		for _, enemy := range enemyPicks {
			c, ok := bundle.Counter(id, enemy)
			if !ok || c.Games < e.policy.PairMinGames {
				continue
			}
			if d := round1(c.WinRate - 50); math.Abs(d) >= e.policy.PairNoiseFloor {
				rec.add(ReasonCounter, fmt.Sprintf("vs %s", heroes.Name(enemy)), d)
			}
		}

		// 3. Synergy with every existing pick of ours.
		for _, ally := range ourPicks {
			s, ok := bundle.Synergy(id, ally)
			if !ok || s.Games < e.policy.PairMinGames {
				continue
			}
			if d := round1(s.WinRate - 50); math.Abs(d) >= e.policy.PairNoiseFloor {
				rec.add(ReasonSynergy, fmt.Sprintf("with %s", heroes.Name(ally)), d)
			}
		}

		// 4. Strongest unassigned roster player on this hero. Only the
		// single best player is credited.
		if battletag, d, ok := e.bestPlayerDelta(bundle, unassigned, id); ok {
			rec.add(ReasonPlayerStrength, fmt.Sprintf("%s plays this well", battletag), d)
			rec.SuggestedPlayer = battletag
		}

		// 5 & 6. Composition pressure.
		e.addRoleFactors(&rec, heroes.RoleOf(id), ourRoles)

		recs = append(recs, rec)
	}
	return recs
}

// scoreThreats handles an enemy pick turn: we cannot know their intent,
// so surface the heroes that would hurt our composition the most.
// No synergy, role, or player factors: we know neither their comp
// plans nor their roster.
func (e *Engine) scoreThreats(state *draft.State, bundle *draftdata.Bundle, candidates []heroes.HeroID) []Recommendation {
	ourPicks := state.TeamPicks(state.OurTeam)

	recs := make([]Recommendation, 0, len(candidates))
	for _, id := range candidates {
		rec := Recommendation{HeroID: id, Hero: heroes.Name(id)}

		if hs, ok := bundle.HeroStatFor(id); ok && hs.Games >= e.policy.BaseWinRateMinGames {
			if d := round1(hs.WinRate - 50); math.Abs(d) >= e.policy.BaseWinRateNoiseFloor {
				rec.add(ReasonBaseWinRate, fmt.Sprintf("%.1f%% overall win rate", hs.WinRate), d)
			}
		}

		for _, pick := range ourPicks {
			c, ok := bundle.Counter(id, pick)
			if !ok || c.Games < e.policy.PairMinGames {
				continue
			}
			if d := round1(c.WinRate - 50); math.Abs(d) >= e.policy.PairNoiseFloor {
				rec.add(ReasonThreat, fmt.Sprintf("threatens our %s", heroes.Name(pick)), d)
			}
		}

		recs = append(recs, rec)
	}
	return recs
}

// bestPlayerDelta finds the unassigned roster player with the highest
// confidence-adjusted MAWP on the hero. Reported only when the best
// delta clears PlayerMinDelta.
func (e *Engine) bestPlayerDelta(bundle *draftdata.Bundle, roster []string, id heroes.HeroID) (string, float64, bool) {
	bestTag := ""
	bestDelta := 0.0
	for _, battletag := range roster {
		ps, ok := bundle.Player(battletag)
		if !ok {
			continue
		}
		line, ok := ps.Heroes[id]
		if !ok || line.Games < e.policy.PlayerMinGames {
			continue
		}
		adjusted := mawp.ConfidenceAdjusted(line.MAWP*100, line.WinRate, line.Games, mawp.ConfidenceThreshold)
		d := round1(adjusted - 50)
		if bestTag == "" || d > bestDelta {
			bestTag = battletag
			bestDelta = d
		}
	}
	if bestTag == "" || bestDelta < e.policy.PlayerMinDelta {
		return "", 0, false
	}
	return bestTag, bestDelta, true
}

// addRoleFactors applies the composition bonus and penalty factors for
// picking a hero of the given role into a team with the given counts.
func (e *Engine) addRoleFactors(rec *Recommendation, role heroes.Role, counts map[heroes.Role]int) {
	tanks := counts[heroes.RoleTank]
	healers := counts[heroes.RoleHealer]
	supports := counts[heroes.RoleSupport]
	damage := counts[heroes.RoleRangedAssassin] + counts[heroes.RoleMeleeAssassin]
	frontline2nd := counts[heroes.RoleBruiser] + counts[heroes.RoleMeleeAssassin]

	switch {
	case role == heroes.RoleTank && tanks == 0:
		rec.add(ReasonRoleNeed, "first tank", e.policy.RoleBonusFirst)
	case role == heroes.RoleHealer && healers == 0:
		rec.add(ReasonRoleNeed, "first healer", e.policy.RoleBonusFirst)
	case heroes.IsDamage(role) && damage == 0:
		rec.add(ReasonRoleNeed, "first damage hero", e.policy.RoleBonusFirst)
	case (role == heroes.RoleBruiser || role == heroes.RoleMeleeAssassin) && tanks > 0 && frontline2nd == 0:
		rec.add(ReasonRoleNeed, "secondary frontline", e.policy.RoleBonusFrontline)
	}

	switch {
	case role == heroes.RoleHealer && healers >= 1:
		rec.add(ReasonRolePenalty, "second healer", e.policy.RolePenaltyDuplicate)
	case role == heroes.RoleTank && tanks >= 1:
		rec.add(ReasonRolePenalty, "second tank", e.policy.RolePenaltyDuplicate)
	case role == heroes.RoleSupport && supports >= 2:
		rec.add(ReasonRolePenalty, "third support", e.policy.RolePenaltySupport)
	}
}

func (r *Recommendation) add(t ReasonType, label string, delta float64) {
	r.Reasons = append(r.Reasons, Reason{Type: t, Label: label, Delta: delta})
	r.NetDelta = round1(r.NetDelta + delta)
}

// unassignedRoster returns the battletags of roster slots not yet
// committed to a picked hero.
func unassignedRoster(state *draft.State) []string {
	assigned := make(map[string]bool, len(state.PlayerAssignments))
	for _, battletag := range state.PlayerAssignments {
		assigned[battletag] = true
	}
	var out []string
	for _, slot := range state.PlayerSlots {
		if slot.Battletag != "" && !assigned[slot.Battletag] {
			out = append(out, slot.Battletag)
		}
	}
	return out
}

// enemyTeamPicks returns the picks of whichever side is not ours.
func enemyTeamPicks(state *draft.State) []heroes.HeroID {
	if state.OurTeam == draft.TeamA {
		return state.TeamPicks(draft.TeamB)
	}
	return state.TeamPicks(draft.TeamA)
}

func roleCounts(picks []heroes.HeroID) map[heroes.Role]int {
	counts := make(map[heroes.Role]int)
	for _, id := range picks {
		counts[heroes.RoleOf(id)]++
	}
	return counts
}

// round1 rounds to one decimal place. Factor deltas and running sums
// stay on this grid so reasons always add up to the displayed net.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
