package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/history"
	"github.com/ademuri/listening-stats/internal/present"
)

func TestPrintStats(t *testing.T) {
	s := openFixtureSession(t, history.Criteria{})

	var out bytes.Buffer
	if err := printStats(&out, s.Snapshot()); err != nil {
		t.Fatalf("printStats: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"92 plays, 278 minutes over 30 active days",
		"The Math", "Habits", "Discovery",
		"Gini Coefficient", "0.427",
		"H-Index", "6 artists with ≥ 6 plays",
		"Active Streak", "20 days",
		"Avg Track", "181s",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("stats output missing %q:\n%s", want, got)
		}
	}
}

func TestOpenSessionMissingFile(t *testing.T) {
	cfg := sessionConfig{Location: time.UTC}
	_, err := openSession(filepath.Join(t.TempDir(), "missing.json"), cfg, nil)
	if err == nil {
		t.Fatal("openSession should have errored with no export")
	}
}

func TestOpenSessionInvalidExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[1, 2, 3]`), 0o644); err != nil {
		t.Fatalf("writing export: %v", err)
	}
	_, err := openSession(path, sessionConfig{Location: time.UTC}, nil)
	if err == nil {
		t.Fatal("openSession should have errored with an invalid export")
	}
	if !strings.Contains(err.Error(), "invalid listening history") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestTopTracksAnalyzer(t *testing.T) {
	s := openFixtureSession(t, history.Criteria{})

	out, err := TopTracksAnalyzer{Links: true}.SetConfig(AnalyserConfig{NumToReturn: 2}).GetResults(s)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	want := [][]string{
		{"Track", "Artist", "Plays", "Link"},
		{"Radiohead Song 3", "Radiohead", "12", present.SearchURL("Radiohead Song 3 Radiohead")},
		{"Björk Song 2", "Björk", "9", present.SearchURL("Björk Song 2 Björk")},
	}
	if len(out.results) != len(want) {
		t.Fatalf("Expected %v, got %v", want, out.results)
	}
	for i := range want {
		for j := range want[i] {
			if out.results[i][j] != want[i][j] {
				t.Errorf("row %d col %d: got %q, want %q", i, j, out.results[i][j], want[i][j])
			}
		}
	}
}

func TestHistoryAnalyzer(t *testing.T) {
	s := openFixtureSession(t, history.Criteria{})

	out, err := HistoryAnalyzer{Page: 1, Size: 50}.GetResults(s)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(out.results) != 51 {
		t.Fatalf("Expected header and 50 rows, got %d rows", len(out.results))
	}
	if out.results[1][0] != "2024-03-30 05:07" {
		t.Errorf("Expected newest play first, got %v", out.results[1])
	}
	if out.summary != "Page 1 of 2 (92 plays)" {
		t.Errorf("Unexpected summary %q", out.summary)
	}

	last, err := HistoryAnalyzer{Page: 2, Size: 50}.GetResults(s)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(last.results) != 43 {
		t.Errorf("Expected header and 42 rows on the last page, got %d", len(last.results))
	}
	if last.results[42][0] != "2024-01-01 00:14" {
		t.Errorf("Expected oldest play last, got %v", last.results[42])
	}

	if _, err := (HistoryAnalyzer{Page: 0, Size: 50}).GetResults(s); err == nil {
		t.Error("Expected error for page 0")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{1999, "0:01"},
		{61000, "1:01"},
		{3600000, "60:00"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.ms); got != tc.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}

func TestWriteYAMLReport(t *testing.T) {
	s := openFixtureSession(t, history.Criteria{})

	var out bytes.Buffer
	if err := writeYAML(&out, s.Snapshot()); err != nil {
		t.Fatalf("writeYAML: %v", err)
	}

	var decoded analysis.Report
	if err := yaml.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding report: %v\n%s", err, out.String())
	}
	if decoded.Distribution.Gini != 0.427 || decoded.Distribution.HIndex != 6 {
		t.Errorf("Unexpected distribution %+v", decoded.Distribution)
	}
	if decoded.Habits.Obsession.Track != "Words" {
		t.Errorf("Unexpected obsession %+v", decoded.Habits.Obsession)
	}
	if !strings.Contains(out.String(), "  gini: 0.427") {
		t.Errorf("Expected two-space indented gini, got:\n%s", out.String())
	}
}

func TestWriteYAMLStories(t *testing.T) {
	s := openFixtureSession(t, history.Criteria{})

	var out bytes.Buffer
	if err := writeYAML(&out, present.StoryCards(s.Snapshot())); err != nil {
		t.Fatalf("writeYAML: %v", err)
	}
	var cards []present.StoryCard
	if err := yaml.Unmarshal(out.Bytes(), &cards); err != nil {
		t.Fatalf("decoding stories: %v", err)
	}
	if len(cards) != 8 || cards[1].Value != "Radiohead" || cards[0].Value != "278" {
		t.Errorf("Unexpected story cards %+v", cards)
	}
}

func TestWriteCharts(t *testing.T) {
	s := openFixtureSession(t, history.Criteria{})

	var out bytes.Buffer
	if err := writeCharts(&out, s.Snapshot().Charts); err != nil {
		t.Fatalf("writeCharts: %v", err)
	}

	var configs []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Labels   []string `json:"labels"`
			Datasets []struct {
				Data []float64 `json:"data"`
			} `json:"datasets"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &configs); err != nil {
		t.Fatalf("decoding charts: %v", err)
	}
	if len(configs) != 4 {
		t.Fatalf("Expected 4 charts, got %d", len(configs))
	}
	wantTypes := []string{"bar", "doughnut", "polarArea", "radar"}
	for i, c := range configs {
		if c.Type != wantTypes[i] {
			t.Errorf("chart %d: type %q, want %q", i, c.Type, wantTypes[i])
		}
		if len(c.Data.Datasets) != 1 || len(c.Data.Datasets[0].Data) != len(c.Data.Labels) {
			t.Errorf("chart %s: labels and data differ in length", c.ID)
		}
	}
	if configs[1].Data.Labels[0] != "Radiohead" {
		t.Errorf("Expected Radiohead to lead the artist chart, got %v", configs[1].Data.Labels)
	}
}

func TestExportChartsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.json")
	if err := exportCharts(path, analysis.Charts(nil)); err != nil {
		t.Fatalf("exportCharts: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading charts: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("Expected valid JSON, got %s", data)
	}
}

func TestRenderHeatmap(t *testing.T) {
	s := openFixtureSession(t, history.Criteria{})
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	grid := analysis.Calendar(s.Working(), now)

	var out bytes.Buffer
	renderHeatmap(&out, grid, false)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("Expected title, 7 day rows, legend and scale, got %d lines:\n%s", len(lines), out.String())
	}
	if lines[0] != "2023-03-28 to 2024-04-01" {
		t.Errorf("Unexpected title %q", lines[0])
	}
	// 2023-03-28 is a Tuesday.
	if !strings.HasPrefix(lines[1], "Tue ") {
		t.Errorf("Expected first row to start on Tuesday, got %q", lines[1])
	}
	for _, row := range lines[1:8] {
		if n := len([]rune(row)) - 4; n != analysis.CalendarWeeks {
			t.Errorf("Expected %d cells per row, got %d in %q", analysis.CalendarWeeks, n, row)
		}
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Error("Expected no escape codes without colour")
	}
	if lines[9] != "Scale: 6 plays per day over 53 weeks" {
		t.Errorf("Unexpected scale line %q", lines[9])
	}

	var colored bytes.Buffer
	renderHeatmap(&colored, grid, true)
	if !strings.Contains(colored.String(), heatColors[4]) {
		t.Error("Expected the busiest cells in the brightest colour")
	}
}

func TestColorMode(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()

	tests := []struct {
		mode string
		want bool
	}{
		{"always", true},
		{"never", false},
		{"auto", false},
	}
	for _, tc := range tests {
		got, err := colorMode(tc.mode, f)
		if err != nil {
			t.Errorf("colorMode(%q): %v", tc.mode, err)
		}
		if got != tc.want {
			t.Errorf("colorMode(%q) = %v, want %v", tc.mode, got, tc.want)
		}
	}
	if _, err := colorMode("sometimes", f); err == nil {
		t.Error("Expected error for unknown colour mode")
	}
}
