package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hotsdraft/hots-companion/internal/draftdata"
	"github.com/hotsdraft/hots-companion/internal/heroes"
	"github.com/hotsdraft/hots-companion/internal/hots/matcher"
)

// fixtureBuilder returns a pre-assembled bundle regardless of inputs.
type fixtureBuilder struct {
	bundle *draftdata.Bundle
}

func (b *fixtureBuilder) Build(_ context.Context, _, _ string, _ []string) (*draftdata.Bundle, error) {
	return b.bundle, nil
}

func mustID(t *testing.T, name string) heroes.HeroID {
	t.Helper()
	id, ok := heroes.ByName(name)
	if !ok {
		t.Fatalf("unknown hero %q", name)
	}
	return id
}

func newMatcherRouter(bundle *draftdata.Bundle) *chi.Mux {
	handler := NewMatcherHandler(&fixtureBuilder{bundle: bundle})
	r := chi.NewRouter()
	r.Post("/matcher", handler.Match)
	return r
}

func TestMatchPairsHeroesWithPlayers(t *testing.T) {
	bundle := draftdata.NewBundle("Cursed Hollow", "mid")
	jaina := mustID(t, "Jaina")
	bundle.Players["Alice#1"] = &draftdata.PlayerStats{
		Battletag:  "Alice#1",
		TotalGames: 60,
		Heroes: map[heroes.HeroID]draftdata.HeroLine{
			jaina: {Games: 40, Wins: 26, WinRate: 65.0},
		},
	}
	bundle.Players["Bob#2"] = &draftdata.PlayerStats{
		Battletag:  "Bob#2",
		TotalGames: 20,
		Heroes: map[heroes.HeroID]draftdata.HeroLine{
			jaina: {Games: 10, Wins: 5, WinRate: 50.0},
		},
	}
	router := newMatcherRouter(bundle)

	rec := doJSON(t, router, http.MethodPost, "/matcher", MatchRequest{
		Map:        "Cursed Hollow",
		Tier:       "mid",
		Battletags: []string{"Alice#1", "Bob#2"},
		Candidates: []string{"Jaina", "Muradin"},
		RoleNeeds: []RoleNeedRequest{
			{Label: "main tank", Priority: "critical", Heroes: []string{"Muradin"}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("match returned %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data matcher.Result `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	result := envelope.Data
	if len(result.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(result.Recommendations))
	}

	// Muradin carries the critical role need, so it sorts first even
	// though nobody plays it.
	if result.Recommendations[0].Hero != "Muradin" {
		t.Errorf("first recommendation = %s, want Muradin", result.Recommendations[0].Hero)
	}
	if !result.Recommendations[0].NoOneCompetent {
		t.Error("Muradin with no games should be flagged no_one_competent")
	}

	if result.Recommendations[1].Hero != "Jaina" || result.Recommendations[1].Battletag != "Alice#1" {
		t.Errorf("Jaina should pair with Alice#1: %+v", result.Recommendations[1])
	}

	// Nobody has games on a main tank: the critical need is warned.
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v, want one main-tank warning", result.Warnings)
	}
}

func TestMatchValidatesInput(t *testing.T) {
	router := newMatcherRouter(draftdata.NewBundle("", ""))

	rec := doJSON(t, router, http.MethodPost, "/matcher", MatchRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("no candidates returned %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/matcher", MatchRequest{
		Candidates: []string{"Gandalf"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown candidate returned %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/matcher", MatchRequest{
		Candidates: []string{"Jaina"},
		RoleNeeds:  []RoleNeedRequest{{Label: "tank", Priority: "urgent"}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid priority returned %d, want 400", rec.Code)
	}
}
