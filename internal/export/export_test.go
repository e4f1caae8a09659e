package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hotsdraft/hots-companion/internal/storage/models"
)

func sampleMatches() []*models.Match {
	return []*models.Match{
		{
			Battletag:     "Alice#1",
			Hero:          "Jaina",
			Map:           "Cursed Hollow",
			Win:           true,
			GameDate:      time.Date(2024, 1, 8, 18, 30, 0, 0, time.UTC),
			LengthSeconds: 1200,
		},
		{
			Battletag:     "Alice#1",
			Hero:          "Muradin",
			Map:           "Dragon Shire",
			Win:           false,
			GameDate:      time.Date(2024, 1, 9, 20, 0, 0, 0, time.UTC),
			LengthSeconds: 900,
		},
	}
}

func TestExportMatchesJSON(t *testing.T) {
	rows := BuildMatchRows(sampleMatches())

	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "matches.json")

	exporter := NewExporter(Options{
		Format:     FormatJSON,
		FilePath:   filePath,
		PrettyJSON: true,
		Overwrite:  true,
	})

	if err := exporter.Export(rows); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("Failed to read export file: %v", err)
	}

	var result []MatchRow
	if err := json.Unmarshal(content, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(result))
	}
	if result[0].Hero != "Jaina" || result[0].Result != "win" {
		t.Errorf("first row = %+v", result[0])
	}
	if result[1].Result != "loss" || result[1].LengthMinutes != 15.0 {
		t.Errorf("second row = %+v", result[1])
	}
}

func TestExportMatchesCSV(t *testing.T) {
	rows := BuildMatchRows(sampleMatches())

	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "matches.csv")

	exporter := NewExporter(Options{
		Format:    FormatCSV,
		FilePath:  filePath,
		Overwrite: true,
	})

	if err := exporter.Export(rows); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("Failed to read export file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 3 { // header + 2 data rows
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}

	if !strings.Contains(lines[0], "battletag") || !strings.Contains(lines[0], "game_date") {
		t.Errorf("CSV header missing expected fields: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Jaina") || !strings.Contains(lines[1], "win") {
		t.Errorf("CSV first row doesn't contain expected data: %s", lines[1])
	}
}

func TestExportRefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "matches.csv")
	if err := os.WriteFile(filePath, []byte("existing"), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	exporter := NewExporter(Options{
		Format:   FormatCSV,
		FilePath: filePath,
	})

	if err := exporter.Export(BuildMatchRows(sampleMatches())); err == nil {
		t.Error("expected error exporting over existing file without overwrite")
	}
}

func TestExportToWriterJSON(t *testing.T) {
	rows := BuildHeroStatRows([]*models.PlayerHeroStat{
		{Battletag: "Alice#1", Hero: "Jaina", Games: 30, Wins: 18, WinRate: 60.0, MAWP: 0.58},
	})

	var buf bytes.Buffer
	if err := ExportToWriter(&buf, FormatJSON, rows, false); err != nil {
		t.Fatalf("ExportToWriter failed: %v", err)
	}

	var result []HeroStatRow
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(result))
	}
	if result[0].MAWPPercent != 58.0 {
		t.Errorf("MAWPPercent = %f, want 58", result[0].MAWPPercent)
	}
}

func TestExportToWriterCSV(t *testing.T) {
	rows := BuildHeroStatRows([]*models.PlayerHeroStat{
		{Battletag: "Alice#1", Hero: "Jaina", Games: 30, Wins: 18, WinRate: 60.0, MAWP: 0.58},
		{Battletag: "Alice#1", Hero: "Muradin", Games: 10, Wins: 4, WinRate: 40.0, MAWP: 0.45},
	})

	var buf bytes.Buffer
	if err := ExportToWriter(&buf, FormatCSV, rows, false); err != nil {
		t.Fatalf("ExportToWriter failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "mawp_percent") {
		t.Errorf("CSV header missing 'mawp_percent': %s", lines[0])
	}
}

func TestExportToWriterEmptySlice(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportToWriter(&buf, FormatCSV, []MatchRow{}, false); err == nil {
		t.Error("expected error exporting empty slice to CSV")
	}
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename("matches", FormatCSV)
	if !strings.HasPrefix(name, "matches_") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("GenerateFilename = %q", name)
	}
}
