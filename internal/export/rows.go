package export

import (
	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

// MatchRow is one game formatted for export.
type MatchRow struct {
	Battletag     string  `csv:"battletag" json:"battletag"`
	Hero          string  `csv:"hero" json:"hero"`
	Map           string  `csv:"map" json:"map"`
	Result        string  `csv:"result" json:"result"`
	GameDate      string  `csv:"game_date" json:"game_date"`
	LengthMinutes float64 `csv:"length_minutes" json:"length_minutes"`
}

// BuildMatchRows converts stored matches into export rows.
func BuildMatchRows(matches []*models.Match) []MatchRow {
	rows := make([]MatchRow, len(matches))
	for i, m := range matches {
		result := "loss"
		if m.Win {
			result = "win"
		}
		rows[i] = MatchRow{
			Battletag:     m.Battletag,
			Hero:          m.Hero,
			Map:           m.Map,
			Result:        result,
			GameDate:      m.GameDate.Format("2006-01-02 15:04"),
			LengthMinutes: float64(m.LengthSeconds) / 60,
		}
	}
	return rows
}

// HeroStatRow is one per-hero performance line formatted for export.
// MAWP is exported as a percentage to match the win rate column.
type HeroStatRow struct {
	Battletag   string  `csv:"battletag" json:"battletag"`
	Hero        string  `csv:"hero" json:"hero"`
	Games       int     `csv:"games" json:"games"`
	Wins        int     `csv:"wins" json:"wins"`
	WinRate     float64 `csv:"win_rate" json:"win_rate"`
	MAWPPercent float64 `csv:"mawp_percent" json:"mawp_percent"`
}

// BuildHeroStatRows converts per-hero stats into export rows.
func BuildHeroStatRows(stats []*models.PlayerHeroStat) []HeroStatRow {
	rows := make([]HeroStatRow, len(stats))
	for i, s := range stats {
		rows[i] = HeroStatRow{
			Battletag:   s.Battletag,
			Hero:        s.Hero,
			Games:       s.Games,
			Wins:        s.Wins,
			WinRate:     s.WinRate,
			MAWPPercent: s.MAWP * 100,
		}
	}
	return rows
}
