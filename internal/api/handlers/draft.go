package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hotsdraft/hots-companion/internal/api/response"
	"github.com/hotsdraft/hots-companion/internal/api/websocket"
	"github.com/hotsdraft/hots-companion/internal/draftdata"
	"github.com/hotsdraft/hots-companion/internal/heroes"
	"github.com/hotsdraft/hots-companion/internal/hots/draft"
	"github.com/hotsdraft/hots-companion/internal/hots/engine"
)

// BundleBuilder assembles the statistics bundle backing a draft
// session.
type BundleBuilder interface {
	Build(ctx context.Context, mapName, tier string, battletags []string) (*draftdata.Bundle, error)
}

// Broadcaster pushes session events to observers.
type Broadcaster interface {
	BroadcastEvent(event websocket.Event) bool
}

// DraftHandler handles draft session lifecycle requests.
type DraftHandler struct {
	sessions *SessionManager
	builder  BundleBuilder
	engine   *engine.Engine
	hub      Broadcaster
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(sessions *SessionManager, builder BundleBuilder, eng *engine.Engine, hub Broadcaster) *DraftHandler {
	return &DraftHandler{
		sessions: sessions,
		builder:  builder,
		engine:   eng,
		hub:      hub,
	}
}

// SessionView is the JSON shape of one draft session.
type SessionView struct {
	ID          string       `json:"id"`
	State       *draft.State `json:"state"`
	CurrentStep *draft.Step  `json:"current_step,omitempty"`
}

func sessionView(s *Session) SessionView {
	view := SessionView{ID: s.ID, State: s.Snapshot()}
	if step, ok := view.State.CurrentStepInfo(); ok {
		view.CurrentStep = &step
	}
	return view
}

// CreateSessionRequest configures a new draft session.
type CreateSessionRequest struct {
	Map     string   `json:"map"`
	Tier    string   `json:"tier"`
	OurTeam string   `json:"our_team"` // "A" or "B"
	Players []string `json:"players"`  // up to 5 battletags
}

// CreateSession creates a draft session in the setup phase.
func (h *DraftHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	team, err := parseTeam(req.OurTeam)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	if len(req.Players) > draft.RosterSize {
		response.BadRequest(w, fmt.Errorf("at most %d players", draft.RosterSize))
		return
	}

	session := h.sessions.Create()
	session.WithLock(func(state *draft.State, _ *draftdata.Bundle) *draftdata.Bundle {
		state.SetMap(req.Map)
		state.SetTier(req.Tier)
		state.SetTeam(team)
		for i, battletag := range req.Players {
			state.SetPlayer(i, battletag)
		}
		return nil
	})

	h.hub.BroadcastEvent(websocket.Event{
		Type:      websocket.EventDraftCreated,
		SessionID: session.ID,
		Data:      sessionView(session),
	})
	response.Created(w, sessionView(session))
}

// ListSessions returns all live sessions.
func (h *DraftHandler) ListSessions(w http.ResponseWriter, _ *http.Request) {
	sessions := h.sessions.List()
	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, sessionView(s))
	}
	response.Success(w, views)
}

// GetSession returns one session.
func (h *DraftHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.NotFound(w, err)
		return
	}
	response.Success(w, sessionView(session))
}

// DeleteSession removes a session.
func (h *DraftHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := h.sessions.Delete(id); err != nil {
		response.NotFound(w, err)
		return
	}
	h.hub.BroadcastEvent(websocket.Event{
		Type:      websocket.EventDraftDeleted,
		SessionID: id,
	})
	response.NoContent(w)
}

// StartDraft moves a session from setup to drafting and loads its
// statistics bundle.
func (h *DraftHandler) StartDraft(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.NotFound(w, err)
		return
	}

	var buildErr error
	session.WithLock(func(state *draft.State, bundle *draftdata.Bundle) *draftdata.Bundle {
		if state.Phase != draft.PhaseSetup {
			return nil
		}
		battletags := make([]string, 0, draft.RosterSize)
		for _, slot := range state.PlayerSlots {
			if slot.Battletag != "" {
				battletags = append(battletags, slot.Battletag)
			}
		}
		fresh, err := h.builder.Build(r.Context(), state.Map, state.Tier, battletags)
		if err != nil {
			buildErr = err
			return nil
		}
		state.StartDraft()
		return fresh
	})
	if buildErr != nil {
		response.InternalError(w, fmt.Errorf("failed to load draft data: %w", buildErr))
		return
	}

	h.broadcastUpdate(session)
	response.Success(w, sessionView(session))
}

// SelectHeroRequest names the hero for the current step.
type SelectHeroRequest struct {
	Hero string `json:"hero"`
}

// SelectHero records a ban or pick for the current step.
func (h *DraftHandler) SelectHero(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.NotFound(w, err)
		return
	}
	var req SelectHeroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	id, ok := heroes.ByName(req.Hero)
	if !ok {
		response.BadRequest(w, fmt.Errorf("unknown hero %q", req.Hero))
		return
	}

	session.WithLock(func(state *draft.State, _ *draftdata.Bundle) *draftdata.Bundle {
		state.SelectHero(id)
		return nil
	})

	h.broadcastUpdate(session)
	response.Success(w, sessionView(session))
}

// AssignPlayerRequest tags a completed pick with a battletag. An empty
// battletag clears the assignment.
type AssignPlayerRequest struct {
	Step      int    `json:"step"`
	Battletag string `json:"battletag"`
}

// AssignPlayer tags a completed pick step with the battletag intended
// to play it.
func (h *DraftHandler) AssignPlayer(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.NotFound(w, err)
		return
	}
	var req AssignPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	session.WithLock(func(state *draft.State, _ *draftdata.Bundle) *draftdata.Bundle {
		state.AssignPlayer(req.Step, req.Battletag)
		return nil
	})

	h.broadcastUpdate(session)
	response.Success(w, sessionView(session))
}

// Undo steps the draft back by one selection.
func (h *DraftHandler) Undo(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.NotFound(w, err)
		return
	}

	session.WithLock(func(state *draft.State, _ *draftdata.Bundle) *draftdata.Bundle {
		state.Undo()
		return nil
	})

	h.broadcastUpdate(session)
	response.Success(w, sessionView(session))
}

// Reset returns a session to a fresh setup state.
func (h *DraftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.NotFound(w, err)
		return
	}

	session.WithLock(func(state *draft.State, _ *draftdata.Bundle) *draftdata.Bundle {
		state.Reset()
		return nil
	})

	h.broadcastUpdate(session)
	response.Success(w, sessionView(session))
}

// GetRecommendations scores the current step. Outside the drafting
// phase the list is empty.
func (h *DraftHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		response.NotFound(w, err)
		return
	}

	recs := []engine.Recommendation{}
	session.WithLock(func(state *draft.State, bundle *draftdata.Bundle) *draftdata.Bundle {
		if got := h.engine.Generate(state, bundle); got != nil {
			recs = got
		}
		return nil
	})
	response.Success(w, recs)
}

func (h *DraftHandler) broadcastUpdate(session *Session) {
	h.hub.BroadcastEvent(websocket.Event{
		Type:      websocket.EventDraftUpdated,
		SessionID: session.ID,
		Data:      sessionView(session),
	})
}

func parseTeam(s string) (draft.Team, error) {
	switch s {
	case "", "A", "a":
		return draft.TeamA, nil
	case "B", "b":
		return draft.TeamB, nil
	default:
		return draft.TeamA, fmt.Errorf("invalid team %q (want A or B)", s)
	}
}
