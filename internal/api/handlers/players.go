package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hotsdraft/hots-companion/internal/api/response"
	"github.com/hotsdraft/hots-companion/internal/hots/mawp"
	"github.com/hotsdraft/hots-companion/internal/stats"
	"github.com/hotsdraft/hots-companion/internal/storage/models"
	"github.com/hotsdraft/hots-companion/internal/storage/repository"
)

// PlayerSyncer refreshes one player's match history from the community
// statistics API.
type PlayerSyncer interface {
	SyncPlayer(ctx context.Context, battletag string) error
}

// PlayerHandler manages the tracked player roster.
type PlayerHandler struct {
	players     repository.PlayerRepository
	playerStats repository.PlayerStatsRepository
	matches     repository.MatchRepository
	syncer      PlayerSyncer // nil when running without an upstream API
	now         func() time.Time
}

// NewPlayerHandler creates a new player handler.
func NewPlayerHandler(players repository.PlayerRepository, playerStats repository.PlayerStatsRepository, matches repository.MatchRepository, syncer PlayerSyncer) *PlayerHandler {
	return &PlayerHandler{
		players:     players,
		playerStats: playerStats,
		matches:     matches,
		syncer:      syncer,
		now:         time.Now,
	}
}

// TrackPlayerRequest registers a battletag for tracking.
type TrackPlayerRequest struct {
	Battletag string `json:"battletag"`
	Region    string `json:"region"`
}

// TrackPlayer adds a player to the tracked roster. Re-tracking an
// existing battletag updates its region.
func (h *PlayerHandler) TrackPlayer(w http.ResponseWriter, r *http.Request) {
	var req TrackPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Battletag == "" {
		response.BadRequest(w, errors.New("battletag is required"))
		return
	}

	player := &models.Player{Battletag: req.Battletag, Region: req.Region}
	if err := h.players.Upsert(r.Context(), player); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Created(w, player)
}

// ListPlayers returns all tracked players.
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, players)
}

// GetPlayer returns one tracked player.
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	battletag := chi.URLParam(r, "battletag")
	player, err := h.players.GetByBattletag(r.Context(), battletag)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.Success(w, player)
}

// UntrackPlayer removes a player and its cascade of stored matches and
// stats.
func (h *PlayerHandler) UntrackPlayer(w http.ResponseWriter, r *http.Request) {
	battletag := chi.URLParam(r, "battletag")
	if err := h.players.Delete(r.Context(), battletag); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}

// GetPlayerHeroStats returns a player's per-hero performance lines,
// MAWP included.
func (h *PlayerHandler) GetPlayerHeroStats(w http.ResponseWriter, r *http.Request) {
	battletag := chi.URLParam(r, "battletag")
	if _, err := h.players.GetByBattletag(r.Context(), battletag); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	stats, err := h.playerStats.GetHeroStats(r.Context(), battletag)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, stats)
}

// summaryMatchLimit bounds how much history feeds the summary. MAWP
// weights decay to nothing long before this.
const summaryMatchLimit = 500

// PlayerSummary is an overview of a player's recent form.
type PlayerSummary struct {
	Battletag   string              `json:"battletag"`
	Games       int                 `json:"games"`
	MAWPPercent float64             `json:"mawp_percent"`
	Confidence  string              `json:"confidence"`
	Streaks     *stats.StreakStats  `json:"streaks"`
	StreakLabel string              `json:"streak_label"`
	ThisWeek    stats.PeriodSummary `json:"this_week"`
	ThisMonth   stats.PeriodSummary `json:"this_month"`
}

// GetPlayerSummary returns recent-form numbers for one player: MAWP,
// streaks, and this week's and this month's records.
func (h *PlayerHandler) GetPlayerSummary(w http.ResponseWriter, r *http.Request) {
	battletag := chi.URLParam(r, "battletag")
	if _, err := h.players.GetByBattletag(r.Context(), battletag); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	matches, err := h.matches.GetRecent(r.Context(), battletag, summaryMatchLimit)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	// GetRecent returns newest first; streak calculation wants
	// oldest first.
	oldestFirst := make([]*models.Match, len(matches))
	records := make([]mawp.MatchRecord, len(matches))
	for i, m := range matches {
		oldestFirst[len(matches)-1-i] = m
		records[i] = mawp.MatchRecord{Win: m.Win, GameDate: m.GameDate}
	}

	now := h.now()
	streaks := stats.CalculateStreaks(oldestFirst)
	summary := PlayerSummary{
		Battletag:   battletag,
		Games:       len(matches),
		MAWPPercent: mawp.ComputePercent(records, now),
		Confidence:  mawp.ConfidenceLabel(len(matches)),
		Streaks:     streaks,
		StreakLabel: stats.FormatCurrentStreak(streaks.CurrentStreak),
		ThisWeek:    stats.SummarizePeriod(oldestFirst, stats.WeekRangeFrom(now, 0)),
		ThisMonth:   stats.SummarizePeriod(oldestFirst, stats.MonthRangeFrom(now, 0)),
	}
	response.Success(w, summary)
}

// SyncPlayer refreshes one player's match history from the upstream
// statistics API and rebuilds the derived stats.
func (h *PlayerHandler) SyncPlayer(w http.ResponseWriter, r *http.Request) {
	if h.syncer == nil {
		response.Error(w, http.StatusServiceUnavailable, errors.New("player sync is not configured"))
		return
	}
	battletag := chi.URLParam(r, "battletag")
	if err := h.syncer.SyncPlayer(r.Context(), battletag); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	player, err := h.players.GetByBattletag(r.Context(), battletag)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, player)
}
