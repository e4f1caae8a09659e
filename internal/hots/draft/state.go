package draft

import (
	"github.com/hotsdraft/hots-companion/internal/heroes"
)

// Phase is the lifecycle stage of a draft session.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseDrafting
	PhaseComplete
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDrafting:
		return "drafting"
	case PhaseComplete:
		return "complete"
	default:
		return "setup"
	}
}

// RosterSize is the number of player slots per team.
const RosterSize = 5

// PlayerSlot is one roster position; an empty battletag means the slot
// is unassigned.
type PlayerSlot struct {
	Battletag string `json:"battletag"`
}

// State is the mutable session state of one draft. All mutations go
// through the reducer methods below; illegal actions are no-ops rather
// than errors, so callers can wire UI events through without guarding.
//
// Invariants: Selections only holds entries for steps below CurrentStep;
// CurrentStep strictly increases except on Undo; Phase moves
// setup→drafting→complete monotonically except Reset.
type State struct {
	Phase             Phase                    `json:"phase"`
	Map               string                   `json:"map"`
	Tier              string                   `json:"tier"`
	OurTeam           Team                     `json:"our_team"`
	CurrentStep       int                      `json:"current_step"`
	Selections        map[int]heroes.HeroID    `json:"selections"`
	PlayerSlots       [RosterSize]PlayerSlot   `json:"player_slots"`
	PlayerAssignments map[int]string           `json:"player_assignments"`
}

// NewState returns a fresh setup-phase draft state.
func NewState() *State {
	return &State{
		Phase:             PhaseSetup,
		OurTeam:           TeamA,
		Selections:        make(map[int]heroes.HeroID),
		PlayerAssignments: make(map[int]string),
	}
}

// SetMap selects the battleground. Only legal during setup.
func (s *State) SetMap(mapName string) {
	if s.Phase != PhaseSetup {
		return
	}
	s.Map = mapName
}

// SetTier selects the skill tier whose statistics apply.
func (s *State) SetTier(tier string) {
	if s.Phase != PhaseSetup {
		return
	}
	s.Tier = tier
}

// SetTeam declares which side of the sequence is ours.
func (s *State) SetTeam(team Team) {
	if s.Phase != PhaseSetup {
		return
	}
	s.OurTeam = team
}

// SetPlayer assigns a battletag to a roster slot. An empty battletag
// clears the slot.
func (s *State) SetPlayer(slot int, battletag string) {
	if s.Phase != PhaseSetup || slot < 0 || slot >= RosterSize {
		return
	}
	s.PlayerSlots[slot].Battletag = battletag
}

// StartDraft moves from setup to drafting.
func (s *State) StartDraft() {
	if s.Phase != PhaseSetup {
		return
	}
	s.Phase = PhaseDrafting
	s.CurrentStep = 0
}

// SelectHero records the hero for the current step and advances by
// exactly one step. No-op when the draft is not in progress, the
// sequence is exhausted, or the hero was already selected (a hero
// anywhere in Selections is permanently unavailable, ban or pick,
// either side).
func (s *State) SelectHero(id heroes.HeroID) {
	if s.Phase != PhaseDrafting || s.CurrentStep >= NumSteps {
		return
	}
	if _, ok := heroes.Get(id); !ok {
		return
	}
	if !s.IsAvailable(id) {
		return
	}
	s.Selections[s.CurrentStep] = id
	s.CurrentStep++
	if s.CurrentStep >= NumSteps {
		s.Phase = PhaseComplete
	}
}

// AssignPlayer tags a completed pick step with the battletag intended
// to play it.
func (s *State) AssignPlayer(stepIndex int, battletag string) {
	if _, ok := s.Selections[stepIndex]; !ok {
		return
	}
	step, ok := StepAt(stepIndex)
	if !ok || step.Type != ActionPick {
		return
	}
	if battletag == "" {
		delete(s.PlayerAssignments, stepIndex)
		return
	}
	s.PlayerAssignments[stepIndex] = battletag
}

// Undo removes the most recent selection (and its player assignment)
// and steps back by one. No-op at step 0. Undo never leaves the
// complete phase implicitly; only Reset does that.
func (s *State) Undo() {
	if s.CurrentStep <= 0 {
		return
	}
	if s.Phase != PhaseDrafting && s.Phase != PhaseComplete {
		return
	}
	s.CurrentStep--
	delete(s.Selections, s.CurrentStep)
	delete(s.PlayerAssignments, s.CurrentStep)
}

// Reset discards the session and returns to a fresh setup state.
func (s *State) Reset() {
	*s = *NewState()
}

// IsAvailable reports whether a hero has not yet been banned or picked
// by either side.
func (s *State) IsAvailable(id heroes.HeroID) bool {
	for _, sel := range s.Selections {
		if sel == id {
			return false
		}
	}
	return true
}

// CurrentStepInfo returns the step the draft is waiting on. ok is false
// once the draft is complete or before it starts.
func (s *State) CurrentStepInfo() (Step, bool) {
	if s.Phase != PhaseDrafting {
		return Step{}, false
	}
	return StepAt(s.CurrentStep)
}

// TeamPicks returns the heroes picked (not banned) by a team so far,
// in step order.
func (s *State) TeamPicks(team Team) []heroes.HeroID {
	var picks []heroes.HeroID
	for i := 0; i < s.CurrentStep && i < NumSteps; i++ {
		id, ok := s.Selections[i]
		if !ok {
			continue
		}
		if sequence[i].Type == ActionPick && sequence[i].Team == team {
			picks = append(picks, id)
		}
	}
	return picks
}

// TeamBans returns the heroes banned by a team so far, in step order.
func (s *State) TeamBans(team Team) []heroes.HeroID {
	var bans []heroes.HeroID
	for i := 0; i < s.CurrentStep && i < NumSteps; i++ {
		id, ok := s.Selections[i]
		if !ok {
			continue
		}
		if sequence[i].Type == ActionBan && sequence[i].Team == team {
			bans = append(bans, id)
		}
	}
	return bans
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.Selections = make(map[int]heroes.HeroID, len(s.Selections))
	for k, v := range s.Selections {
		c.Selections[k] = v
	}
	c.PlayerAssignments = make(map[int]string, len(s.PlayerAssignments))
	for k, v := range s.PlayerAssignments {
		c.PlayerAssignments[k] = v
	}
	return &c
}

// Equal reports whether two states are identical, selection for
// selection and assignment for assignment.
func (s *State) Equal(o *State) bool {
	if s.Phase != o.Phase || s.Map != o.Map || s.Tier != o.Tier ||
		s.OurTeam != o.OurTeam || s.CurrentStep != o.CurrentStep ||
		s.PlayerSlots != o.PlayerSlots {
		return false
	}
	if len(s.Selections) != len(o.Selections) {
		return false
	}
	for k, v := range s.Selections {
		if ov, ok := o.Selections[k]; !ok || ov != v {
			return false
		}
	}
	if len(s.PlayerAssignments) != len(o.PlayerAssignments) {
		return false
	}
	for k, v := range s.PlayerAssignments {
		if ov, ok := o.PlayerAssignments[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
