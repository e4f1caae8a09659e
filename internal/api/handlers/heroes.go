package handlers

import (
	"net/http"

	"github.com/hotsdraft/hots-companion/internal/api/response"
	"github.com/hotsdraft/hots-companion/internal/heroes"
	"github.com/hotsdraft/hots-companion/internal/storage/repository"
)

// HeroHandler serves the hero roster and community statistics.
type HeroHandler struct {
	heroStats repository.HeroStatsRepository
}

// NewHeroHandler creates a new hero handler.
func NewHeroHandler(heroStats repository.HeroStatsRepository) *HeroHandler {
	return &HeroHandler{heroStats: heroStats}
}

// HeroView is the JSON shape of one roster entry.
type HeroView struct {
	ID   heroes.HeroID `json:"id"`
	Name string        `json:"name"`
	Role string        `json:"role"`
}

// ListHeroes returns the full hero roster.
func (h *HeroHandler) ListHeroes(w http.ResponseWriter, _ *http.Request) {
	roster := heroes.All()
	views := make([]HeroView, 0, len(roster))
	for _, hero := range roster {
		views = append(views, HeroView{
			ID:   hero.ID,
			Name: hero.Name,
			Role: hero.Role.String(),
		})
	}
	response.Success(w, views)
}

// GetHeroStats returns community win/ban rates filtered by the "map"
// and "tier" query parameters. An empty map selects the all-maps
// aggregate rows.
func (h *HeroHandler) GetHeroStats(w http.ResponseWriter, r *http.Request) {
	mapName := r.URL.Query().Get("map")
	tier := r.URL.Query().Get("tier")

	stats, err := h.heroStats.GetByMapTier(r.Context(), mapName, tier)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, stats)
}
