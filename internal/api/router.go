package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hotsdraft/hots-companion/internal/api/handlers"
	"github.com/hotsdraft/hots-companion/internal/api/response"
	"github.com/hotsdraft/hots-companion/internal/version"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// WebSocket endpoint (no JSON content-type requirement)
	s.router.Get("/ws", s.wsHub.ServeWs)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Draft session routes
		draftHandler := handlers.NewDraftHandler(s.sessions, s.deps.Builder, s.deps.Engine, s.wsHub)
		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", draftHandler.CreateSession)
			r.Get("/", draftHandler.ListSessions)
			r.Get("/{sessionID}", draftHandler.GetSession)
			r.Delete("/{sessionID}", draftHandler.DeleteSession)
			r.Post("/{sessionID}/start", draftHandler.StartDraft)
			r.Post("/{sessionID}/select", draftHandler.SelectHero)
			r.Post("/{sessionID}/assign", draftHandler.AssignPlayer)
			r.Post("/{sessionID}/undo", draftHandler.Undo)
			r.Post("/{sessionID}/reset", draftHandler.Reset)
			r.Get("/{sessionID}/recommendations", draftHandler.GetRecommendations)
		})

		// Hero routes
		heroHandler := handlers.NewHeroHandler(s.deps.HeroStats)
		r.Route("/heroes", func(r chi.Router) {
			r.Get("/", heroHandler.ListHeroes)
			r.Get("/stats", heroHandler.GetHeroStats)
		})

		// Player routes
		playerHandler := handlers.NewPlayerHandler(s.deps.Players, s.deps.PlayerStats, s.deps.Matches, s.deps.PlayerSync)
		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.ListPlayers)
			r.Post("/", playerHandler.TrackPlayer)
			r.Get("/{battletag}", playerHandler.GetPlayer)
			r.Delete("/{battletag}", playerHandler.UntrackPlayer)
			r.Get("/{battletag}/heroes", playerHandler.GetPlayerHeroStats)
			r.Get("/{battletag}/summary", playerHandler.GetPlayerSummary)
			r.Post("/{battletag}/sync", playerHandler.SyncPlayer)
		})

		// Matcher route
		matcherHandler := handlers.NewMatcherHandler(s.deps.Builder)
		r.Post("/matcher", matcherHandler.Match)

		// MAWP utility route
		mawpHandler := handlers.NewMAWPHandler()
		r.Post("/mawp", mawpHandler.Compute)
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "hots-companion-api",
		"version": version.GetVersion(),
	})
}
