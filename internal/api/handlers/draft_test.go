package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hotsdraft/hots-companion/internal/api/websocket"
	"github.com/hotsdraft/hots-companion/internal/draftdata"
	"github.com/hotsdraft/hots-companion/internal/hots/draft"
	"github.com/hotsdraft/hots-companion/internal/hots/engine"
)

type stubBuilder struct {
	battletags []string
	err        error
}

func (b *stubBuilder) Build(_ context.Context, mapName, tier string, battletags []string) (*draftdata.Bundle, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.battletags = battletags
	return draftdata.NewBundle(mapName, tier), nil
}

type stubHub struct {
	events []websocket.Event
}

func (h *stubHub) BroadcastEvent(event websocket.Event) bool {
	h.events = append(h.events, event)
	return true
}

func newDraftRouter(builder BundleBuilder, hub Broadcaster) (*chi.Mux, *SessionManager) {
	sessions := NewSessionManager()
	handler := NewDraftHandler(sessions, builder, engine.NewDefault(), hub)

	r := chi.NewRouter()
	r.Route("/drafts", func(r chi.Router) {
		r.Post("/", handler.CreateSession)
		r.Get("/", handler.ListSessions)
		r.Get("/{sessionID}", handler.GetSession)
		r.Delete("/{sessionID}", handler.DeleteSession)
		r.Post("/{sessionID}/start", handler.StartDraft)
		r.Post("/{sessionID}/select", handler.SelectHero)
		r.Post("/{sessionID}/assign", handler.AssignPlayer)
		r.Post("/{sessionID}/undo", handler.Undo)
		r.Post("/{sessionID}/reset", handler.Reset)
		r.Get("/{sessionID}/recommendations", handler.GetRecommendations)
	})
	return r, sessions
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) SessionView {
	t.Helper()
	var envelope struct {
		Data SessionView `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode session response: %v", err)
	}
	return envelope.Data
}

func createSession(t *testing.T, router http.Handler, req CreateSessionRequest) SessionView {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/drafts", req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
	return decodeSession(t, rec)
}

func TestCreateSession(t *testing.T) {
	hub := &stubHub{}
	router, _ := newDraftRouter(&stubBuilder{}, hub)

	view := createSession(t, router, CreateSessionRequest{
		Map:     "Cursed Hollow",
		Tier:    "mid",
		OurTeam: "B",
		Players: []string{"Alice#1", "Bob#2"},
	})

	if view.ID == "" {
		t.Error("session ID is empty")
	}
	if view.State.Phase != draft.PhaseSetup {
		t.Errorf("Phase = %v, want setup", view.State.Phase)
	}
	if view.State.Map != "Cursed Hollow" || view.State.Tier != "mid" {
		t.Errorf("map/tier not applied: %+v", view.State)
	}
	if view.State.OurTeam != draft.TeamB {
		t.Errorf("OurTeam = %v, want TeamB", view.State.OurTeam)
	}
	if view.State.PlayerSlots[0].Battletag != "Alice#1" || view.State.PlayerSlots[1].Battletag != "Bob#2" {
		t.Errorf("player slots not applied: %+v", view.State.PlayerSlots)
	}

	if len(hub.events) != 1 || hub.events[0].Type != websocket.EventDraftCreated {
		t.Errorf("expected one draft_created event, got %+v", hub.events)
	}
}

func TestCreateSessionRejectsBadInput(t *testing.T) {
	router, _ := newDraftRouter(&stubBuilder{}, &stubHub{})

	rec := doJSON(t, router, http.MethodPost, "/drafts", CreateSessionRequest{OurTeam: "C"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid team returned %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/drafts", CreateSessionRequest{
		Players: []string{"a", "b", "c", "d", "e", "f"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("six players returned %d, want 400", rec.Code)
	}
}

func TestStartDraftBuildsBundleFromSlots(t *testing.T) {
	builder := &stubBuilder{}
	router, _ := newDraftRouter(builder, &stubHub{})

	view := createSession(t, router, CreateSessionRequest{
		Map:     "Towers of Doom",
		Tier:    "high",
		Players: []string{"Alice#1", "", "Bob#2"},
	})

	rec := doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/start", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("start returned %d: %s", rec.Code, rec.Body.String())
	}
	started := decodeSession(t, rec)
	if started.State.Phase != draft.PhaseDrafting {
		t.Errorf("Phase = %v, want drafting", started.State.Phase)
	}
	if started.CurrentStep == nil {
		t.Fatal("current step missing after start")
	}

	// Empty slots are not passed to the builder.
	want := []string{"Alice#1", "Bob#2"}
	if len(builder.battletags) != len(want) {
		t.Fatalf("builder battletags = %v, want %v", builder.battletags, want)
	}
	for i := range want {
		if builder.battletags[i] != want[i] {
			t.Errorf("builder battletags = %v, want %v", builder.battletags, want)
			break
		}
	}
}

func TestStartDraftBuildFailure(t *testing.T) {
	router, sessions := newDraftRouter(&stubBuilder{err: fmt.Errorf("api down")}, &stubHub{})

	view := createSession(t, router, CreateSessionRequest{Map: "Cursed Hollow"})

	rec := doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/start", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("start with failing builder returned %d, want 500", rec.Code)
	}

	// The session stays in setup so a retry is possible.
	session, err := sessions.Get(view.ID)
	if err != nil {
		t.Fatalf("session disappeared: %v", err)
	}
	if session.Snapshot().Phase != draft.PhaseSetup {
		t.Error("failed start should leave the session in setup")
	}
}

func TestSelectHeroLifecycle(t *testing.T) {
	hub := &stubHub{}
	router, _ := newDraftRouter(&stubBuilder{}, hub)

	view := createSession(t, router, CreateSessionRequest{Map: "Cursed Hollow", Tier: "mid"})
	doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/start", nil)

	rec := doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/select", SelectHeroRequest{Hero: "Jaina"})
	if rec.Code != http.StatusOK {
		t.Fatalf("select returned %d: %s", rec.Code, rec.Body.String())
	}
	selected := decodeSession(t, rec)
	if selected.State.CurrentStep != 1 {
		t.Errorf("CurrentStep = %d, want 1", selected.State.CurrentStep)
	}

	// Unknown hero names are rejected before touching the state.
	rec = doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/select", SelectHeroRequest{Hero: "Gandalf"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown hero returned %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/undo", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("undo returned %d", rec.Code)
	}
	if undone := decodeSession(t, rec); undone.State.CurrentStep != 0 {
		t.Errorf("CurrentStep after undo = %d, want 0", undone.State.CurrentStep)
	}

	rec = doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset returned %d", rec.Code)
	}
	if reset := decodeSession(t, rec); reset.State.Phase != draft.PhaseSetup {
		t.Errorf("Phase after reset = %v, want setup", reset.State.Phase)
	}
}

func TestAssignPlayer(t *testing.T) {
	router, _ := newDraftRouter(&stubBuilder{}, &stubHub{})

	view := createSession(t, router, CreateSessionRequest{Players: []string{"Alice#1"}})
	doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/start", nil)

	// Walk to the first pick step (steps 0-3 are bans) and complete it.
	for _, hero := range []string{"Jaina", "Muradin", "Diablo", "Valla", "Uther"} {
		rec := doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/select", SelectHeroRequest{Hero: hero})
		if rec.Code != http.StatusOK {
			t.Fatalf("select %s returned %d", hero, rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/assign", AssignPlayerRequest{Step: 4, Battletag: "Alice#1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("assign returned %d", rec.Code)
	}
	assigned := decodeSession(t, rec)
	if assigned.State.PlayerAssignments[4] != "Alice#1" {
		t.Errorf("assignment missing: %+v", assigned.State.PlayerAssignments)
	}
}

func TestRecommendationsEmptyOutsideDrafting(t *testing.T) {
	router, _ := newDraftRouter(&stubBuilder{}, &stubHub{})

	view := createSession(t, router, CreateSessionRequest{Map: "Cursed Hollow"})

	rec := doJSON(t, router, http.MethodGet, "/drafts/"+view.ID+"/recommendations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("recommendations returned %d", rec.Code)
	}
	var envelope struct {
		Data []engine.Recommendation `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode recommendations: %v", err)
	}
	if len(envelope.Data) != 0 {
		t.Errorf("setup-phase recommendations = %d entries, want 0", len(envelope.Data))
	}
}

func TestRecommendationsDuringDraft(t *testing.T) {
	router, _ := newDraftRouter(&stubBuilder{}, &stubHub{})

	view := createSession(t, router, CreateSessionRequest{Map: "Cursed Hollow", Tier: "mid"})
	doJSON(t, router, http.MethodPost, "/drafts/"+view.ID+"/start", nil)

	rec := doJSON(t, router, http.MethodGet, "/drafts/"+view.ID+"/recommendations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("recommendations returned %d", rec.Code)
	}
	var envelope struct {
		Data []engine.Recommendation `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode recommendations: %v", err)
	}
	// An empty bundle still yields ranked candidates for the ban step.
	if len(envelope.Data) == 0 {
		t.Error("expected ban-step recommendations, got none")
	}
}

func TestSessionNotFound(t *testing.T) {
	router, _ := newDraftRouter(&stubBuilder{}, &stubHub{})

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/drafts/missing"},
		{http.MethodDelete, "/drafts/missing"},
		{http.MethodPost, "/drafts/missing/start"},
		{http.MethodPost, "/drafts/missing/undo"},
		{http.MethodGet, "/drafts/missing/recommendations"},
	} {
		rec := doJSON(t, router, tc.method, tc.path, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s returned %d, want 404", tc.method, tc.path, rec.Code)
		}
	}
}

func TestDeleteSessionBroadcasts(t *testing.T) {
	hub := &stubHub{}
	router, sessions := newDraftRouter(&stubBuilder{}, hub)

	view := createSession(t, router, CreateSessionRequest{})

	rec := doJSON(t, router, http.MethodDelete, "/drafts/"+view.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete returned %d, want 204", rec.Code)
	}
	if _, err := sessions.Get(view.ID); err == nil {
		t.Error("session still present after delete")
	}

	last := hub.events[len(hub.events)-1]
	if last.Type != websocket.EventDraftDeleted || last.SessionID != view.ID {
		t.Errorf("last event = %+v, want draft_deleted for %s", last, view.ID)
	}
}

func TestListSessions(t *testing.T) {
	router, _ := newDraftRouter(&stubBuilder{}, &stubHub{})

	createSession(t, router, CreateSessionRequest{})
	createSession(t, router, CreateSessionRequest{})

	rec := doJSON(t, router, http.MethodGet, "/drafts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list returned %d", rec.Code)
	}
	var envelope struct {
		Data []SessionView `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Errorf("list returned %d sessions, want 2", len(envelope.Data))
	}
}
