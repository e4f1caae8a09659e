// Package charts renders player statistics as interactive HTML charts.
package charts

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hotsdraft/hots-companion/internal/hots/mawp"
	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	Smooth     bool     // Smooth line (for line charts)
	Colors     []string // Custom colors
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Smooth:     true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

// DataPoint represents a single data point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// SeriesData represents a data series for multi-series charts.
type SeriesData struct {
	Name   string
	Points []DataPoint
}

// RenderMAWPTrend charts a player's momentum-adjusted win probability
// over time: the estimator is re-run after every recorded game, so the
// line shows how each result moved the estimate.
func RenderMAWPTrend(battletag string, matches []*models.Match, config ChartConfig, outputPath string) error {
	if len(matches) == 0 {
		return fmt.Errorf("no matches to chart for %s", battletag)
	}

	sorted := make([]*models.Match, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].GameDate.Before(sorted[j].GameDate)
	})

	records := make([]mawp.MatchRecord, 0, len(sorted))
	points := make([]DataPoint, 0, len(sorted))
	for _, m := range sorted {
		records = append(records, mawp.MatchRecord{Win: m.Win, GameDate: m.GameDate})
		points = append(points, DataPoint{
			Label: m.GameDate.Format("2006-01-02"),
			Value: mawp.ComputePercent(records, m.GameDate),
		})
	}

	if config.Title == "" {
		config.Title = fmt.Sprintf("MAWP Trend - %s", battletag)
		config.Subtitle = fmt.Sprintf("%d games through %s",
			len(sorted), sorted[len(sorted)-1].GameDate.Format("2006-01-02"))
	}
	return RenderLineChart("MAWP %", points, config, outputPath)
}

// RenderHeroWinRates charts a player's per-hero win rates as bars,
// strongest heroes first. Heroes below minGames are dropped.
func RenderHeroWinRates(battletag string, stats []*models.PlayerHeroStat, minGames int, config ChartConfig, outputPath string) error {
	filtered := make([]*models.PlayerHeroStat, 0, len(stats))
	for _, s := range stats {
		if s.Games >= minGames {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		return fmt.Errorf("no heroes with at least %d games for %s", minGames, battletag)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].WinRate > filtered[j].WinRate
	})

	points := make([]DataPoint, len(filtered))
	for i, s := range filtered {
		points[i] = DataPoint{Label: s.Hero, Value: s.WinRate}
	}

	if config.Title == "" {
		config.Title = fmt.Sprintf("Hero Win Rates - %s", battletag)
	}
	return RenderBarChart("Win Rate %", points, config, outputPath)
}

// RenderRosterMAWPComparison charts several players' per-hero MAWP
// lines side by side on a shared hero axis.
func RenderRosterMAWPComparison(statsByPlayer map[string][]*models.PlayerHeroStat, heroOrder []string, config ChartConfig, outputPath string) error {
	battletags := make([]string, 0, len(statsByPlayer))
	for battletag := range statsByPlayer {
		battletags = append(battletags, battletag)
	}
	sort.Strings(battletags)

	series := make([]SeriesData, 0, len(battletags))
	for _, battletag := range battletags {
		byHero := make(map[string]float64, len(statsByPlayer[battletag]))
		for _, s := range statsByPlayer[battletag] {
			byHero[s.Hero] = s.MAWP * 100
		}
		points := make([]DataPoint, len(heroOrder))
		for i, hero := range heroOrder {
			points[i] = DataPoint{Label: hero, Value: byHero[hero]}
		}
		series = append(series, SeriesData{Name: battletag, Points: points})
	}

	if config.Title == "" {
		config.Title = "Roster MAWP Comparison"
	}
	return RenderMultiLineChart(series, config, outputPath)
}

// RenderLineChart creates an interactive line chart HTML file.
func RenderLineChart(seriesName string, data []DataPoint, config ChartConfig, outputPath string) error {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors{
			config.Colors[0],
		}),
	)

	xLabels := make([]string, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
	}

	yData := make([]opts.LineData, len(data))
	for i, point := range data {
		yData[i] = opts.LineData{Value: point.Value}
	}

	line.SetXAxis(xLabels).
		AddSeries(seriesName, yData).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				Smooth: opts.Bool(config.Smooth),
			}),
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// RenderBarChart creates an interactive bar chart HTML file.
func RenderBarChart(seriesName string, data []DataPoint, config ChartConfig, outputPath string) error {
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors{
			config.Colors[0],
		}),
	)

	xLabels := make([]string, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
	}

	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(seriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// RenderMultiLineChart creates a multi-series line chart HTML file.
func RenderMultiLineChart(series []SeriesData, config ChartConfig, outputPath string) error {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
	)

	if len(series) == 0 {
		return fmt.Errorf("no data series provided")
	}

	xLabels := make([]string, len(series[0].Points))
	for i, point := range series[0].Points {
		xLabels[i] = point.Label
	}

	line.SetXAxis(xLabels)

	for i, s := range series {
		yData := make([]opts.LineData, len(s.Points))
		for j, point := range s.Points {
			yData[j] = opts.LineData{Value: point.Value}
		}

		color := config.Colors[i%len(config.Colors)]
		line.AddSeries(s.Name, yData).
			SetSeriesOptions(
				charts.WithLineChartOpts(opts.LineChart{
					Smooth: opts.Bool(config.Smooth),
				}),
				charts.WithLabelOpts(opts.Label{
					Show: opts.Bool(false),
				}),
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color: color,
				}),
			)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}
