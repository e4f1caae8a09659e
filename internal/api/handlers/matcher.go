package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hotsdraft/hots-companion/internal/api/response"
	"github.com/hotsdraft/hots-companion/internal/heroes"
	"github.com/hotsdraft/hots-companion/internal/hots/competency"
	"github.com/hotsdraft/hots-companion/internal/hots/matcher"
)

// MatcherHandler pairs candidate heroes with roster players.
type MatcherHandler struct {
	builder BundleBuilder
}

// NewMatcherHandler creates a new matcher handler.
func NewMatcherHandler(builder BundleBuilder) *MatcherHandler {
	return &MatcherHandler{builder: builder}
}

// RoleNeedRequest names a compositional need and the heroes that
// fulfill it. Priority is "critical", "important" or "nice-to-have".
type RoleNeedRequest struct {
	Label    string   `json:"label"`
	Priority string   `json:"priority"`
	Heroes   []string `json:"heroes"`
}

// MatchRequest asks who on the roster should play which candidate.
type MatchRequest struct {
	Map        string            `json:"map"`
	Tier       string            `json:"tier"`
	Battletags []string          `json:"battletags"`
	Candidates []string          `json:"candidates"`
	RoleNeeds  []RoleNeedRequest `json:"role_needs"`
}

// Match scores every roster player against the candidate heroes and
// returns ranked hero-to-player pairings plus composition warnings.
func (h *MatcherHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(req.Candidates) == 0 {
		response.BadRequest(w, errors.New("at least one candidate hero is required"))
		return
	}

	candidates := make([]heroes.HeroID, 0, len(req.Candidates))
	for _, name := range req.Candidates {
		id, ok := heroes.ByName(name)
		if !ok {
			response.BadRequest(w, fmt.Errorf("unknown hero %q", name))
			return
		}
		candidates = append(candidates, id)
	}

	needs := make([]matcher.RoleNeed, 0, len(req.RoleNeeds))
	for _, rn := range req.RoleNeeds {
		priority, err := parsePriority(rn.Priority)
		if err != nil {
			response.BadRequest(w, err)
			return
		}
		need := matcher.RoleNeed{Label: rn.Label, Priority: priority}
		for _, name := range rn.Heroes {
			id, ok := heroes.ByName(name)
			if !ok {
				response.BadRequest(w, fmt.Errorf("unknown hero %q", name))
				return
			}
			need.Heroes = append(need.Heroes, id)
		}
		needs = append(needs, need)
	}

	bundle, err := h.builder.Build(r.Context(), req.Map, req.Tier, req.Battletags)
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to load player data: %w", err))
		return
	}

	players := make([]competency.PlayerCompetency, 0, len(req.Battletags))
	for slot, battletag := range req.Battletags {
		if battletag == "" {
			continue
		}
		data, _ := bundle.Player(battletag)
		players = append(players, competency.ScorePlayer(battletag, slot, data, req.Map))
	}

	response.Success(w, matcher.Match(candidates, players, needs))
}

func parsePriority(s string) (matcher.Priority, error) {
	switch s {
	case "critical":
		return matcher.PriorityCritical, nil
	case "important":
		return matcher.PriorityImportant, nil
	case "", "nice-to-have":
		return matcher.PriorityNiceToHave, nil
	default:
		return matcher.PriorityNiceToHave, fmt.Errorf("invalid priority %q", s)
	}
}
