// Package mawp implements the momentum-adjusted win percentage
// estimator: a decay-weighted, Bayesian-padded estimate of a player's
// current win probability with a hero.
//
// All probabilities in this package are [0,1] fractions; conversion to
// the [0,100] percentage scale happens only at presentation boundaries
// (ComputePercent, ConfidenceAdjusted).
package mawp

import (
	"math"
	"sort"
	"time"
)

// MatchRecord is one historical game. Records are never mutated.
type MatchRecord struct {
	Win      bool
	GameDate time.Time
}

// Config tunes the estimator. The defaults reproduce the reference
// behavior exactly; alternate values are for experimentation only.
type Config struct {
	// FullWeightGames is the number of most-recent games that carry
	// full weight before the game-count decay cliff (default: 30).
	FullWeightGames int

	// GameHalfLife is the half-life, in games past the cliff, of the
	// game-count weight (default: 30).
	GameHalfLife float64

	// FullWeightDays is the age in days within which a game carries
	// full time weight (default: 180).
	FullWeightDays float64

	// TimeHalfLife is the half-life, in days past the cliff, of the
	// time weight (default: 90).
	TimeHalfLife float64

	// PriorGames is the number of phantom 50% observations padded in
	// when fewer real games exist (default: 30).
	PriorGames int

	// PriorMean is the uninformative prior returned for empty input
	// and blended in as padding (default: 0.5).
	PriorMean float64
}

// DefaultConfig returns the reference estimator configuration.
func DefaultConfig() Config {
	return Config{
		FullWeightGames: 30,
		GameHalfLife:    30,
		FullWeightDays:  180,
		TimeHalfLife:    90,
		PriorGames:      30,
		PriorMean:       0.5,
	}
}

// Compute estimates the momentum-adjusted win probability from a match
// history using the default configuration. The result is in [0,1].
// Empty input yields exactly 0.5. The input slice is not mutated and
// its ordering does not matter.
func Compute(matches []MatchRecord, now time.Time) float64 {
	return DefaultConfig().Compute(matches, now)
}

// ComputePercent is Compute scaled to [0,100].
func ComputePercent(matches []MatchRecord, now time.Time) float64 {
	return Compute(matches, now) * 100
}

// Compute estimates the momentum-adjusted win probability under this
// configuration. Deterministic given (matches, now).
func (c Config) Compute(matches []MatchRecord, now time.Time) float64 {
	if len(matches) == 0 {
		return c.PriorMean
	}

	sorted := make([]MatchRecord, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GameDate.After(sorted[j].GameDate)
	})

	var num, den float64
	for i, m := range sorted {
		rank := i + 1
		wg := c.gameCountWeight(rank)
		days := now.Sub(m.GameDate).Hours() / 24
		wt := c.timeWeight(days)

		outcome := 0.0
		if m.Win {
			outcome = 1.0
		}
		// Old outcomes blend toward 50% instead of merely losing
		// weight, so an old loss cannot vanish and inflate a hot
		// streak's apparent certainty.
		effective := outcome*wt + c.PriorMean*(1-wt)

		num += wg * effective
		den += wg
	}

	if n := len(sorted); n < c.PriorGames {
		pad := float64(c.PriorGames - n)
		num += pad * c.PriorMean
		den += pad
	}

	result := num / den
	return math.Min(1, math.Max(0, result))
}

// GameCountWeight returns the weight of the match at the given 1-based
// recency rank under the default configuration: 1.0 through rank 30,
// then exponential decay with a 30-game half-life.
func GameCountWeight(rank int) float64 {
	return DefaultConfig().gameCountWeight(rank)
}

// TimeWeight returns the weight of a match played the given number of
// days ago under the default configuration: 1.0 through day 180, then
// exponential decay with a 90-day half-life. Negative ages (future
// dates) carry full weight.
func TimeWeight(days float64) float64 {
	return DefaultConfig().timeWeight(days)
}

func (c Config) gameCountWeight(rank int) float64 {
	if rank <= c.FullWeightGames {
		return 1.0
	}
	lambda := math.Ln2 / c.GameHalfLife
	return math.Exp(-lambda * float64(rank-c.FullWeightGames))
}

func (c Config) timeWeight(days float64) float64 {
	if days <= c.FullWeightDays {
		return 1.0
	}
	lambda := math.Ln2 / c.TimeHalfLife
	return math.Exp(-lambda * (days - c.FullWeightDays))
}

// ConfidenceThreshold is the game count at which MAWP is trusted fully
// over the raw win rate.
const ConfidenceThreshold = 30

// ConfidenceAdjusted blends a MAWP value with the raw win rate in
// proportion to how far games falls below the threshold: MAWP is
// weighted by min(games/threshold, 1) and the raw win rate by the
// complement. Both inputs and the result are on the same scale; the
// engine calls it with percentages.
func ConfidenceAdjusted(mawpValue, winRate float64, games, threshold int) float64 {
	if threshold <= 0 {
		return mawpValue
	}
	w := float64(games) / float64(threshold)
	if w > 1 {
		w = 1
	}
	return mawpValue*w + winRate*(1-w)
}

// Confidence labels for displaying MAWP alongside sample size.
const (
	ConfidenceLow     = "low"
	ConfidenceLimited = "limited"
	ConfidenceHigh    = "high"
)

// ConfidenceLabel classifies a sample size for display.
func ConfidenceLabel(games int) string {
	switch {
	case games < 10:
		return ConfidenceLow
	case games < ConfidenceThreshold:
		return ConfidenceLimited
	default:
		return ConfidenceHigh
	}
}
