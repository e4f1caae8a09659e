package heroesprofile

import "time"

// HeroWinRate represents aggregate hero statistics from the stats API.
type HeroWinRate struct {
	Hero     string  `json:"hero"`
	Map      string  `json:"map,omitempty"`
	WinRate  float64 `json:"win_rate"`
	PickRate float64 `json:"pick_rate"`
	BanRate  float64 `json:"ban_rate"`
	Games    int     `json:"games_played"`
}

// HeroMatchup represents one pairwise statistic row. Kind is either
// "synergy" (same team) or "counter" (hero against other).
type HeroMatchup struct {
	Hero    string  `json:"hero"`
	Other   string  `json:"other"`
	Kind    string  `json:"kind"`
	WinRate float64 `json:"win_rate"`
	Games   int     `json:"games_played"`
}

// PlayerMatch is one game from a player's match history.
type PlayerMatch struct {
	Hero          string    `json:"hero"`
	Map           string    `json:"game_map"`
	Winner        bool      `json:"winner"`
	GameDate      time.Time `json:"game_date"`
	LengthSeconds int       `json:"game_length,omitempty"`
}

// PlayerProfile is a player's aggregate profile.
type PlayerProfile struct {
	Battletag string        `json:"battletag"`
	Region    string        `json:"region"`
	Games     int           `json:"games_played"`
	WinRate   float64       `json:"win_rate"`
	Matches   []PlayerMatch `json:"matches,omitempty"`
}

// QueryParams holds parameters for stats API queries.
type QueryParams struct {
	// Tier selects the skill bracket ("low", "mid", "high").
	Tier string

	// Map narrows hero statistics to one battleground; empty selects
	// the all-maps aggregate.
	Map string

	// Battletag and Region identify a player for profile queries.
	Battletag string
	Region    string

	// Since bounds match-history queries. Zero means no bound.
	Since time.Time
}

// ClientStats tracks stats API client usage.
type ClientStats struct {
	TotalRequests     int
	FailedRequests    int
	AverageLatency    time.Duration
	LastRequestTime   time.Time
	LastSuccessTime   time.Time
	LastFailureTime   time.Time
	ConsecutiveErrors int
}

// Error types for the stats API.
const (
	ErrRateLimited   = "rate_limited"
	ErrUnavailable   = "unavailable"
	ErrInvalidParams = "invalid_params"
	ErrParseError    = "parse_error"
)

// APIError represents an error from the stats API.
type APIError struct {
	Type       string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}
