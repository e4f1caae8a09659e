// Package draft models the fixed ban/pick protocol and the mutable
// state of one draft session.
package draft

// Team identifies a draft side.
type Team int

const (
	TeamA Team = iota
	TeamB
)

// String returns "A" or "B".
func (t Team) String() string {
	if t == TeamB {
		return "B"
	}
	return "A"
}

// ActionType is the kind of action a step permits.
type ActionType int

const (
	ActionBan ActionType = iota
	ActionPick
)

// String returns "ban" or "pick".
func (a ActionType) String() string {
	if a == ActionPick {
		return "pick"
	}
	return "ban"
}

// Step is one entry in the draft protocol.
type Step struct {
	Team  Team
	Type  ActionType
	Label string
}

// NumSteps is the length of the draft protocol.
const NumSteps = 16

// The fixed 16-step tournament draft order. Labels group steps for
// display ("Pick 2" spans two consecutive steps) but every step selects
// exactly one hero; no step batches multiple selections.
var sequence = [NumSteps]Step{
	{TeamA, ActionBan, "Ban 1"},
	{TeamB, ActionBan, "Ban 1"},
	{TeamA, ActionBan, "Ban 2"},
	{TeamB, ActionBan, "Ban 2"},
	{TeamA, ActionPick, "Pick 1"},
	{TeamB, ActionPick, "Pick 1"},
	{TeamB, ActionPick, "Pick 2"},
	{TeamA, ActionPick, "Pick 2"},
	{TeamA, ActionPick, "Pick 3"},
	{TeamB, ActionBan, "Ban 3"},
	{TeamA, ActionBan, "Ban 3"},
	{TeamB, ActionPick, "Pick 3"},
	{TeamB, ActionPick, "Pick 4"},
	{TeamA, ActionPick, "Pick 4"},
	{TeamA, ActionPick, "Pick 5"},
	{TeamB, ActionPick, "Pick 5"},
}

// Sequence returns a copy of the full draft order.
func Sequence() []Step {
	out := make([]Step, NumSteps)
	copy(out, sequence[:])
	return out
}

// StepAt returns the step at the given index.
func StepAt(i int) (Step, bool) {
	if i < 0 || i >= NumSteps {
		return Step{}, false
	}
	return sequence[i], true
}
