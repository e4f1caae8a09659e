package stats

import (
	"fmt"
	"time"

	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

// TimeRange represents a start and end time period. End is exclusive.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.Start) && t.Before(tr.End)
}

// WeekRangeFrom calculates the start and end of a week with an offset from a reference time.
// offset = 0 means the week containing referenceTime, -1 means previous week, etc.
// The week starts on Monday and ends on Sunday.
func WeekRangeFrom(referenceTime time.Time, offset int) TimeRange {
	weekday := int(referenceTime.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7 (ISO 8601)
	}
	currentWeekStart := referenceTime.AddDate(0, 0, -weekday+1).Truncate(24 * time.Hour)

	weekStart := currentWeekStart.AddDate(0, 0, offset*7)
	weekEnd := weekStart.AddDate(0, 0, 7)

	return TimeRange{Start: weekStart, End: weekEnd}
}

// MonthRangeFrom calculates the start and end of a month with an offset from a reference time.
// offset = 0 means the month containing referenceTime, -1 means previous month, etc.
func MonthRangeFrom(referenceTime time.Time, offset int) TimeRange {
	currentMonthStart := time.Date(referenceTime.Year(), referenceTime.Month(), 1, 0, 0, 0, 0, referenceTime.Location())

	monthStart := currentMonthStart.AddDate(0, offset, 0)
	monthEnd := monthStart.AddDate(0, 1, 0)

	return TimeRange{Start: monthStart, End: monthEnd}
}

// FormatPeriod returns a human-readable description of the time period.
func (tr TimeRange) FormatPeriod() string {
	start := tr.Start.Format("2006-01-02")
	end := tr.End.AddDate(0, 0, -1).Format("2006-01-02") // End is exclusive, so subtract 1 day for display
	return fmt.Sprintf("%s to %s", start, end)
}

// PeriodSummary is a player's record inside one time range.
type PeriodSummary struct {
	Period  string  `json:"period"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// SummarizePeriod tallies the matches falling inside the range.
func SummarizePeriod(matches []*models.Match, tr TimeRange) PeriodSummary {
	summary := PeriodSummary{Period: tr.FormatPeriod()}
	for _, m := range matches {
		if !tr.Contains(m.GameDate) {
			continue
		}
		summary.Games++
		if m.Win {
			summary.Wins++
		}
	}
	if summary.Games > 0 {
		summary.WinRate = float64(summary.Wins) / float64(summary.Games) * 100
	}
	return summary
}
