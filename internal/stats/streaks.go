// Package stats derives summary statistics from stored match history.
package stats

import (
	"fmt"

	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

// StreakStats summarizes a player's win/loss streaks. CurrentStreak is
// positive for an active win streak, negative for losses.
type StreakStats struct {
	CurrentStreak     int `json:"current_streak"`
	LongestWinStreak  int `json:"longest_win_streak"`
	LongestLossStreak int `json:"longest_loss_streak"`
}

// CalculateStreaks calculates win/loss streak statistics from a list of matches.
// Matches must be ordered by game date (oldest to newest) for accurate
// current streak calculation.
func CalculateStreaks(matches []*models.Match) *StreakStats {
	stats := &StreakStats{}
	if len(matches) == 0 {
		return stats
	}

	currentWinStreak := 0
	currentLossStreak := 0

	for _, match := range matches {
		if match.Win {
			currentWinStreak++
			currentLossStreak = 0

			if currentWinStreak > stats.LongestWinStreak {
				stats.LongestWinStreak = currentWinStreak
			}
		} else {
			currentLossStreak++
			currentWinStreak = 0

			if currentLossStreak > stats.LongestLossStreak {
				stats.LongestLossStreak = currentLossStreak
			}
		}
	}

	// Positive for wins, negative for losses.
	if currentWinStreak > 0 {
		stats.CurrentStreak = currentWinStreak
	} else {
		stats.CurrentStreak = -currentLossStreak
	}

	return stats
}

// FormatCurrentStreak returns a human-readable string for the current streak.
func FormatCurrentStreak(streak int) string {
	if streak == 0 {
		return "No active streak"
	}
	if streak > 0 {
		if streak == 1 {
			return "1 win streak"
		}
		return fmt.Sprintf("%d win streak", streak)
	}
	absStreak := -streak
	if absStreak == 1 {
		return "1 loss streak"
	}
	return fmt.Sprintf("%d loss streak", absStreak)
}
