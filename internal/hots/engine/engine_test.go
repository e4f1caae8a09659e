package engine

import (
	"math"
	"testing"

	"github.com/hotsdraft/hots-companion/internal/draftdata"
	"github.com/hotsdraft/hots-companion/internal/heroes"
	"github.com/hotsdraft/hots-companion/internal/hots/draft"
)

func mustID(t *testing.T, name string) heroes.HeroID {
	t.Helper()
	id, ok := heroes.ByName(name)
	if !ok {
		t.Fatalf("unknown hero %q", name)
	}
	return id
}

func emptyBundle() *draftdata.Bundle {
	return draftdata.NewBundle("Cursed Hollow", draftdata.TierMid)
}

// draftTo starts a draft for team `ours` and plays the given heroes
// through the opening steps.
func draftTo(t *testing.T, ours draft.Team, names ...string) *draft.State {
	t.Helper()
	s := draft.NewState()
	s.SetMap("Cursed Hollow")
	s.SetTier(draftdata.TierMid)
	s.SetTeam(ours)
	s.StartDraft()
	for _, n := range names {
		before := s.CurrentStep
		s.SelectHero(mustID(t, n))
		if s.CurrentStep != before+1 {
			t.Fatalf("selection of %q did not advance the draft", n)
		}
	}
	return s
}

func findRec(recs []Recommendation, id heroes.HeroID) (Recommendation, bool) {
	for _, r := range recs {
		if r.HeroID == id {
			return r, true
		}
	}
	return Recommendation{}, false
}

func TestGenerateNilAndComplete(t *testing.T) {
	e := NewDefault()

	if got := e.Generate(nil, emptyBundle()); got != nil {
		t.Error("nil state should yield nil")
	}
	if got := e.Generate(draft.NewState(), nil); got != nil {
		t.Error("nil bundle should yield nil")
	}

	// Setup phase: no current step yet.
	if got := e.Generate(draft.NewState(), emptyBundle()); got != nil {
		t.Error("setup-phase state should yield nil")
	}

	// Completed draft.
	s := draftTo(t, draft.TeamA)
	for i, h := range heroes.All() {
		if i >= draft.NumSteps {
			break
		}
		s.SelectHero(h.ID)
	}
	if got := e.Generate(s, emptyBundle()); got != nil {
		t.Errorf("complete draft should yield nil, got %d recs", len(got))
	}
}

func TestStepZeroIsBanPhaseRegardlessOfOurTeam(t *testing.T) {
	jaina := mustID(t, "Jaina")
	bundle := emptyBundle()
	bundle.HeroStats[jaina] = draftdata.HeroStat{WinRate: 55.0, BanRate: 5, Games: 5000}

	for _, ours := range []draft.Team{draft.TeamA, draft.TeamB} {
		s := draftTo(t, ours)
		recs := NewDefault().Generate(s, bundle)
		rec, ok := findRec(recs, jaina)
		if !ok {
			t.Fatalf("ourTeam=%v: Jaina missing from ban recommendations", ours)
		}
		if len(rec.Reasons) != 1 || rec.Reasons[0].Type != ReasonDenyStrong {
			t.Errorf("ourTeam=%v: want ban-phase deny_strong scoring, got %+v", ours, rec.Reasons)
		}
		if math.Abs(rec.NetDelta-5.0) > 1e-9 {
			t.Errorf("ourTeam=%v: NetDelta = %v, want 5.0", ours, rec.NetDelta)
		}
	}
}

// midBanState plays to step 9 (a team B ban) with picks on both sides:
// our (A) picks Jaina, Johanna, Rehgar; enemy picks Malfurion, Valla.
func midBanState(t *testing.T) *draft.State {
	t.Helper()
	s := draftTo(t, draft.TeamA,
		"Muradin", "Diablo", "Garrosh", "Arthas",
		"Jaina",
		"Malfurion", "Valla",
		"Johanna", "Rehgar")
	step, ok := s.CurrentStepInfo()
	if !ok || step.Type != draft.ActionBan {
		t.Fatalf("expected a ban step, got %+v", step)
	}
	return s
}

func TestBanScoringFactors(t *testing.T) {
	s := midBanState(t)

	kael := mustID(t, "Kael'thas")
	jaina := mustID(t, "Jaina")
	bundle := emptyBundle()
	bundle.HeroStats[kael] = draftdata.HeroStat{WinRate: 53.0, BanRate: 22.0, Games: 8000}
	bundle.SetCounter(kael, jaina, draftdata.PairStat{WinRate: 56.0, Games: 80})

	recs := NewDefault().Generate(s, bundle)
	rec, ok := findRec(recs, kael)
	if !ok {
		t.Fatal("Kael'thas missing from ban recommendations")
	}

	// 3.0 strong + 2.2 contested + 6.0 counters-our-pick = 11.2
	if math.Abs(rec.NetDelta-11.2) > 1e-9 {
		t.Errorf("NetDelta = %v, want 11.2 (reasons %+v)", rec.NetDelta, rec.Reasons)
	}
	types := map[ReasonType]bool{}
	for _, r := range rec.Reasons {
		types[r.Type] = true
	}
	for _, want := range []ReasonType{ReasonDenyStrong, ReasonDenyContested, ReasonDenyThreat} {
		if !types[want] {
			t.Errorf("missing reason %s in %+v", want, rec.Reasons)
		}
	}
}

func TestBanCounterGates(t *testing.T) {
	s := midBanState(t)
	jaina := mustID(t, "Jaina")
	thin := mustID(t, "Tracer")
	weak := mustID(t, "Genji")
	bundle := emptyBundle()
	// Below the 30-game sample gate.
	bundle.SetCounter(thin, jaina, draftdata.PairStat{WinRate: 60.0, Games: 29})
	// Below the 53% win-rate gate.
	bundle.SetCounter(weak, jaina, draftdata.PairStat{WinRate: 52.0, Games: 500})

	recs := NewDefault().scoreBans(s, bundle, []heroes.HeroID{thin, weak})
	for _, rec := range recs {
		if len(rec.Reasons) != 0 {
			t.Errorf("%s: gated counter produced reasons %+v", rec.Hero, rec.Reasons)
		}
	}
}

func TestBanAvoidsRoleEnemyAlreadyFilled(t *testing.T) {
	// The enemy already picked Malfurion, a healer; banning another
	// healer is mostly wasted. They have no tank, so tank bans are not
	// penalized.
	s := midBanState(t)

	uther := mustID(t, "Uther")
	etc := mustID(t, "E.T.C.")
	recs := NewDefault().scoreBans(s, emptyBundle(), []heroes.HeroID{uther, etc})

	utherRec, _ := findRec(recs, uther)
	if math.Abs(utherRec.NetDelta-(-8.0)) > 1e-9 {
		t.Errorf("healer ban NetDelta = %v, want -8.0", utherRec.NetDelta)
	}
	if len(utherRec.Reasons) != 1 || utherRec.Reasons[0].Type != ReasonWastedBan {
		t.Errorf("want a single wasted_ban reason, got %+v", utherRec.Reasons)
	}

	etcRec, _ := findRec(recs, etc)
	if etcRec.NetDelta != 0 || len(etcRec.Reasons) != 0 {
		t.Errorf("tank ban should carry no penalty, got %+v", etcRec)
	}
}

func TestFirstTankGetsExactlyRoleBonus(t *testing.T) {
	// Steps 0-3 are bans; step 4 is team A's first pick with no picks
	// on either side yet.
	s := draftTo(t, draft.TeamA, "Jaina", "Valla", "Kael'thas", "Greymane")
	step, ok := s.CurrentStepInfo()
	if !ok || step.Type != draft.ActionPick || step.Team != draft.TeamA {
		t.Fatalf("expected team A pick step, got %+v", step)
	}

	diablo := mustID(t, "Diablo")
	recs := NewDefault().Generate(s, emptyBundle())
	rec, ok := findRec(recs, diablo)
	if !ok {
		t.Fatal("Diablo missing from pick recommendations")
	}
	if math.Abs(rec.NetDelta-3.0) > 1e-9 {
		t.Errorf("NetDelta = %v, want exactly +3.0 from the role bonus", rec.NetDelta)
	}
	if len(rec.Reasons) != 1 || rec.Reasons[0].Type != ReasonRoleNeed {
		t.Errorf("want a single role_need reason, got %+v", rec.Reasons)
	}
}

func TestSecondFrontlineBonus(t *testing.T) {
	// Team A picked Diablo (tank). A bruiser now earns the smaller
	// frontline bonus, not the full first-role bonus.
	s := draftTo(t, draft.TeamA,
		"Muradin", "Jaina", "Garrosh", "Valla",
		"Diablo",
		"Malfurion", "Raynor")

	sonya := mustID(t, "Sonya")
	recs := NewDefault().scorePicks(s, emptyBundle(), []heroes.HeroID{sonya})
	rec, _ := findRec(recs, sonya)
	if math.Abs(rec.NetDelta-1.5) > 1e-9 {
		t.Errorf("NetDelta = %v, want +1.5 frontline bonus (reasons %+v)", rec.NetDelta, rec.Reasons)
	}
}

func TestSecondHealerPenaltyComposesWithCounters(t *testing.T) {
	// Team A picked Malfurion (healer); enemy picked Valla. At A's next
	// pick, a healer that strongly counters Valla nets counterDelta - 15.
	s := draftTo(t, draft.TeamA,
		"Muradin", "Diablo", "Garrosh", "Arthas",
		"Malfurion",
		"Valla", "Jaina")
	step, _ := s.CurrentStepInfo()
	if step.Team != draft.TeamA || step.Type != draft.ActionPick {
		t.Fatalf("expected team A pick step, got %+v", step)
	}

	uther := mustID(t, "Uther")
	valla := mustID(t, "Valla")
	bundle := emptyBundle()
	bundle.SetCounter(uther, valla, draftdata.PairStat{WinRate: 57.0, Games: 90})

	recs := NewDefault().scorePicks(s, bundle, []heroes.HeroID{uther})
	rec, _ := findRec(recs, uther)
	// +7.0 counter - 15.0 duplicate healer = -8.0
	if math.Abs(rec.NetDelta-(-8.0)) > 1e-9 {
		t.Errorf("NetDelta = %v, want -8.0 (reasons %+v)", rec.NetDelta, rec.Reasons)
	}
	var penalty *Reason
	for i := range rec.Reasons {
		if rec.Reasons[i].Type == ReasonRolePenalty {
			penalty = &rec.Reasons[i]
		}
	}
	if penalty == nil || penalty.Delta != -15.0 {
		t.Errorf("want a -15.0 role_penalty reason, got %+v", rec.Reasons)
	}
}

func TestThirdSupportPenalty(t *testing.T) {
	// Two supports already picked; a third support eats the -8.
	s := draftTo(t, draft.TeamA,
		"Muradin", "Diablo", "Garrosh", "Arthas",
		"Abathur",
		"Valla", "Jaina",
		"Medivh")
	step, _ := s.CurrentStepInfo()
	if step.Team != draft.TeamA || step.Type != draft.ActionPick {
		t.Fatalf("expected team A pick step, got %+v", step)
	}

	zarya := mustID(t, "Zarya")
	recs := NewDefault().scorePicks(s, emptyBundle(), []heroes.HeroID{zarya})
	rec, _ := findRec(recs, zarya)
	if math.Abs(rec.NetDelta-(-8.0)) > 1e-9 {
		t.Errorf("NetDelta = %v, want -8.0 (reasons %+v)", rec.NetDelta, rec.Reasons)
	}
}

func TestPickFactorGates(t *testing.T) {
	s := draftTo(t, draft.TeamA, "Muradin", "Diablo", "Garrosh", "Arthas")

	lowSample := mustID(t, "Chromie")
	nearBaseline := mustID(t, "Raynor")
	bundle := emptyBundle()
	// Strong win rate but under the 100-game gate.
	bundle.HeroStats[lowSample] = draftdata.HeroStat{WinRate: 58.0, Games: 99}
	// Plenty of games but inside the ±0.5 noise floor.
	bundle.HeroStats[nearBaseline] = draftdata.HeroStat{WinRate: 50.4, Games: 9000}

	recs := NewDefault().scorePicks(s, bundle, []heroes.HeroID{lowSample, nearBaseline})
	for _, rec := range recs {
		for _, r := range rec.Reasons {
			if r.Type == ReasonBaseWinRate {
				t.Errorf("%s: gated base win rate still scored: %+v", rec.Hero, r)
			}
		}
	}
}

func TestPickSuggestsBestPlayer(t *testing.T) {
	s := draft.NewState()
	s.SetMap("Cursed Hollow")
	s.SetTier(draftdata.TierMid)
	s.SetTeam(draft.TeamA)
	s.SetPlayer(0, "Carry#1111")
	s.SetPlayer(1, "Flex#2222")
	s.StartDraft()
	for _, n := range []string{"Muradin", "Diablo", "Garrosh", "Arthas"} {
		s.SelectHero(mustID(t, n))
	}

	genji := mustID(t, "Genji")
	bundle := emptyBundle()
	bundle.Players["Carry#1111"] = &draftdata.PlayerStats{
		Battletag: "Carry#1111",
		Heroes: map[heroes.HeroID]draftdata.HeroLine{
			genji: {Games: 60, WinRate: 61.0, MAWP: 0.63},
		},
	}
	bundle.Players["Flex#2222"] = &draftdata.PlayerStats{
		Battletag: "Flex#2222",
		Heroes: map[heroes.HeroID]draftdata.HeroLine{
			genji: {Games: 40, WinRate: 52.0, MAWP: 0.54},
		},
	}

	recs := NewDefault().scorePicks(s, bundle, []heroes.HeroID{genji})
	rec, _ := findRec(recs, genji)
	if rec.SuggestedPlayer != "Carry#1111" {
		t.Errorf("SuggestedPlayer = %q, want Carry#1111", rec.SuggestedPlayer)
	}
	// Genji is a damage hero with no damage picked yet: +3 role bonus
	// plus the player factor (63 - 50 = 13.0). Only the best player is
	// credited, never a sum.
	want := 13.0 + 3.0
	if math.Abs(rec.NetDelta-want) > 1e-9 {
		t.Errorf("NetDelta = %v, want %v (reasons %+v)", rec.NetDelta, want, rec.Reasons)
	}
}

func TestPlayerFactorGates(t *testing.T) {
	s := draft.NewState()
	s.SetTeam(draft.TeamA)
	s.SetPlayer(0, "Rookie#1")
	s.SetPlayer(1, "Steady#2")
	s.StartDraft()
	for _, n := range []string{"Muradin", "Diablo", "Garrosh", "Arthas"} {
		s.SelectHero(mustID(t, n))
	}

	genji := mustID(t, "Genji")
	tracer := mustID(t, "Tracer")
	bundle := emptyBundle()
	// Under the 10-game player gate despite a perfect record.
	bundle.Players["Rookie#1"] = &draftdata.PlayerStats{
		Battletag: "Rookie#1",
		Heroes: map[heroes.HeroID]draftdata.HeroLine{
			genji: {Games: 9, WinRate: 100.0, MAWP: 0.9},
		},
	}
	// Above the game gate but below the +2 reporting floor.
	bundle.Players["Steady#2"] = &draftdata.PlayerStats{
		Battletag: "Steady#2",
		Heroes: map[heroes.HeroID]draftdata.HeroLine{
			tracer: {Games: 50, WinRate: 51.0, MAWP: 0.51},
		},
	}

	recs := NewDefault().scorePicks(s, bundle, []heroes.HeroID{genji, tracer})
	for _, rec := range recs {
		if rec.SuggestedPlayer != "" {
			t.Errorf("%s: gated player factor still suggested %q", rec.Hero, rec.SuggestedPlayer)
		}
		for _, r := range rec.Reasons {
			if r.Type == ReasonPlayerStrength {
				t.Errorf("%s: gated player factor still scored: %+v", rec.Hero, r)
			}
		}
	}
}

func TestEnemyPickTurnScoresThreatsOnly(t *testing.T) {
	// Team A (us) picked Jaina at step 4; step 5 is B's pick.
	s := draftTo(t, draft.TeamA,
		"Muradin", "Diablo", "Garrosh", "Arthas", "Jaina")
	step, _ := s.CurrentStepInfo()
	if step.Team != draft.TeamB || step.Type != draft.ActionPick {
		t.Fatalf("expected team B pick step, got %+v", step)
	}

	tracer := mustID(t, "Tracer")
	jaina := mustID(t, "Jaina")
	bundle := emptyBundle()
	bundle.HeroStats[tracer] = draftdata.HeroStat{WinRate: 52.0, Games: 4000}
	bundle.SetCounter(tracer, jaina, draftdata.PairStat{WinRate: 58.0, Games: 120})
	// Synergy data must be ignored on enemy turns.
	bundle.SetSynergy(tracer, mustID(t, "Genji"), draftdata.PairStat{WinRate: 60.0, Games: 500})

	recs := NewDefault().Generate(s, bundle)
	rec, ok := findRec(recs, tracer)
	if !ok {
		t.Fatal("Tracer missing from threat recommendations")
	}
	// 2.0 base + 8.0 threat = 10.0; no synergy, role, or player terms.
	if math.Abs(rec.NetDelta-10.0) > 1e-9 {
		t.Errorf("NetDelta = %v, want 10.0 (reasons %+v)", rec.NetDelta, rec.Reasons)
	}
	for _, r := range rec.Reasons {
		if r.Type == ReasonSynergy || r.Type == ReasonRoleNeed || r.Type == ReasonPlayerStrength {
			t.Errorf("enemy-turn scoring leaked factor %s", r.Type)
		}
	}
}

func TestSynergyFactor(t *testing.T) {
	// Team A picked Jaina; at A's next pick a hero with recorded
	// synergy gets the pairwise factor.
	s := draftTo(t, draft.TeamA,
		"Muradin", "Diablo", "Garrosh", "Arthas",
		"Jaina",
		"Valla", "Raynor")

	etc := mustID(t, "E.T.C.")
	jaina := mustID(t, "Jaina")
	bundle := emptyBundle()
	bundle.SetSynergy(etc, jaina, draftdata.PairStat{WinRate: 54.5, Games: 200})

	recs := NewDefault().scorePicks(s, bundle, []heroes.HeroID{etc})
	rec, _ := findRec(recs, etc)
	// +4.5 synergy +3.0 first tank = 7.5
	if math.Abs(rec.NetDelta-7.5) > 1e-9 {
		t.Errorf("NetDelta = %v, want 7.5 (reasons %+v)", rec.NetDelta, rec.Reasons)
	}
}

func TestSelectedHeroesNeverRecommended(t *testing.T) {
	s := draftTo(t, draft.TeamA, "Jaina", "Valla")
	bundle := emptyBundle()
	for _, h := range heroes.All() {
		bundle.HeroStats[h.ID] = draftdata.HeroStat{WinRate: 55.0, Games: 1000}
	}

	e := NewDefault()
	for s.Phase == draft.PhaseDrafting {
		recs := e.Generate(s, bundle)
		for _, rec := range recs {
			if !s.IsAvailable(rec.HeroID) {
				t.Fatalf("step %d recommended already-selected hero %s", s.CurrentStep, rec.Hero)
			}
		}
		// Advance with the first available hero.
		for _, h := range heroes.All() {
			if s.IsAvailable(h.ID) {
				s.SelectHero(h.ID)
				break
			}
		}
	}
}

func TestGenerateTruncatesAndSorts(t *testing.T) {
	s := draftTo(t, draft.TeamA)
	bundle := emptyBundle()
	for _, h := range heroes.All() {
		bundle.HeroStats[h.ID] = draftdata.HeroStat{WinRate: 56.0, Games: 2000}
	}

	recs := NewDefault().Generate(s, bundle)
	if len(recs) != DefaultPolicy().MaxResults {
		t.Errorf("got %d recommendations, want %d", len(recs), DefaultPolicy().MaxResults)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].NetDelta > recs[i-1].NetDelta {
			t.Errorf("recommendations not sorted at index %d", i)
		}
	}
}

func TestMissingDataIsSkippedNotZero(t *testing.T) {
	// A hero entirely absent from the bundle carries no data-driven
	// reasons: missing matchup entries are omitted from the sum, which
	// is numerically equivalent to, but semantically distinct from,
	// a recorded 0 delta. Sonya (bruiser, no tank on board) also earns
	// no role factor here.
	s := draftTo(t, draft.TeamA, "Muradin", "Diablo", "Garrosh", "Arthas")

	sonya := mustID(t, "Sonya")
	recs := NewDefault().scorePicks(s, emptyBundle(), []heroes.HeroID{sonya})
	rec, _ := findRec(recs, sonya)
	if len(rec.Reasons) != 0 || rec.NetDelta != 0 {
		t.Errorf("hero with no data should have no reasons, got %+v", rec)
	}
}
