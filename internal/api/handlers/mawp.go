package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hotsdraft/hots-companion/internal/api/response"
	"github.com/hotsdraft/hots-companion/internal/hots/mawp"
)

// MAWPHandler exposes the momentum-adjusted win probability estimator
// directly, for tooling and spreadsheet users.
type MAWPHandler struct {
	now func() time.Time
}

// NewMAWPHandler creates a new MAWP handler.
func NewMAWPHandler() *MAWPHandler {
	return &MAWPHandler{now: time.Now}
}

// MAWPMatch is one game outcome.
type MAWPMatch struct {
	Win      bool      `json:"win"`
	GameDate time.Time `json:"game_date"`
}

// MAWPRequest carries the match history to estimate from.
type MAWPRequest struct {
	Matches []MAWPMatch `json:"matches"`
}

// MAWPResponse is the estimator output.
type MAWPResponse struct {
	MAWP        float64 `json:"mawp"`
	MAWPPercent float64 `json:"mawp_percent"`
	Games       int     `json:"games"`
	Confidence  string  `json:"confidence"`
}

// Compute runs the estimator over the supplied match history.
func (h *MAWPHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req MAWPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	records := make([]mawp.MatchRecord, 0, len(req.Matches))
	for _, m := range req.Matches {
		records = append(records, mawp.MatchRecord{Win: m.Win, GameDate: m.GameDate})
	}

	now := h.now()
	value := mawp.Compute(records, now)
	response.Success(w, MAWPResponse{
		MAWP:        value,
		MAWPPercent: value * 100,
		Games:       len(records),
		Confidence:  mawp.ConfidenceLabel(len(records)),
	})
}
