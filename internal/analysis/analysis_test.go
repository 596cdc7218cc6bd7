package analysis

import (
	"os"
	"testing"
	"time"

	"github.com/ademuri/listening-stats/internal/history"
)

var fixtureNow = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func loadFixture(t *testing.T) []history.Event {
	t.Helper()
	data, err := os.ReadFile("testdata/history_fixture.json")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	events, err := history.Read(data,
		history.WithLocation(time.UTC),
		history.WithClock(func() time.Time { return fixtureNow }))
	if err != nil {
		t.Fatalf("history.Read: %v", err)
	}
	return history.Filter(events, history.Criteria{})
}

// The fixture holds 100 records across both export schemas, 8 of which are
// plays of a second or less.
func TestGenerateReportFixture(t *testing.T) {
	events := loadFixture(t)
	if len(events) != 92 {
		t.Fatalf("expected 92 events after normalization, got %d", len(events))
	}

	report := GenerateReport(events, fixtureNow)

	if report.Metadata.GeneratedDate != "2024-04-01" {
		t.Errorf("expected generated date 2024-04-01, got %s", report.Metadata.GeneratedDate)
	}
	if report.Metadata.FirstPlay != "2024-01-01T00:14:00Z" || report.Metadata.LastPlay != "2024-03-30T05:07:00Z" {
		t.Errorf("unexpected play bounds %s .. %s", report.Metadata.FirstPlay, report.Metadata.LastPlay)
	}
	if report.Metadata.ActiveDays != 30 {
		t.Errorf("expected 30 active days, got %d", report.Metadata.ActiveDays)
	}

	wantDist := DistributionStats{
		Artists:         11,
		Gini:            0.427,
		Entropy:         3.02,
		HIndex:          6,
		ParetoPercent:   54.5,
		SkipRatePercent: 18.5,
	}
	if report.Distribution != wantDist {
		t.Errorf("Distribution = %+v, want %+v", report.Distribution, wantDist)
	}

	wantHabits := HabitStats{
		Obsession:         Obsession{Plays: 4, Track: "Words", Artist: "Low", Day: "2024-01-15"},
		WeekendPercent:    28.3,
		NightOwlPercent:   25,
		LongestStreakDays: 20,
	}
	if report.Habits != wantHabits {
		t.Errorf("Habits = %+v, want %+v", report.Habits, wantHabits)
	}

	wantDisco := DiscoveryStats{UniqueArtists: 11, UniqueTracks: 25, OneHitArtists: 2, AverageTrackSeconds: 181}
	if report.Discovery != wantDisco {
		t.Errorf("Discovery = %+v, want %+v", report.Discovery, wantDisco)
	}

	o := report.Overview
	if o.TotalPlays != 92 || o.TotalHours != 4.6 || o.TotalMinutes != 278 {
		t.Errorf("unexpected totals %+v", o)
	}
	if o.TopArtist != "Radiohead" || o.TopArtistMs != 4304784 {
		t.Errorf("unexpected top artist %q (%d ms)", o.TopArtist, o.TopArtistMs)
	}
	if o.MostPlayed != (KeyCount{Key: "Radiohead", Count: 22}) {
		t.Errorf("unexpected most played %+v", o.MostPlayed)
	}

	wantTop := []TrackCount{
		{Track: "Radiohead Song 3", Artist: "Radiohead", Plays: 12},
		{Track: "Björk Song 2", Artist: "Björk", Plays: 9},
		{Track: "Björk Song 3", Artist: "Björk", Plays: 8},
	}
	for i, want := range wantTop {
		if report.TopTracks[i] != want {
			t.Errorf("top track %d = %+v, want %+v", i, report.TopTracks[i], want)
		}
	}

	grid := report.Calendar
	if grid.Max != 6 {
		t.Errorf("expected calendar max 6, got %d", grid.Max)
	}
	levels := make(map[int]int)
	for _, week := range grid.Weeks {
		for _, day := range week {
			levels[day.Level]++
		}
	}
	wantLevels := map[int]int{0: 341, 1: 4, 2: 13, 3: 11, 4: 2}
	for level, n := range wantLevels {
		if levels[level] != n {
			t.Errorf("calendar level %d: got %d cells, want %d", level, levels[level], n)
		}
	}
}

func TestGenerateReportEmpty(t *testing.T) {
	report := GenerateReport(nil, fixtureNow)

	if report.Distribution != (DistributionStats{}) {
		t.Errorf("expected zero distribution, got %+v", report.Distribution)
	}
	if report.Habits != (HabitStats{}) {
		t.Errorf("expected zero habits, got %+v", report.Habits)
	}
	if report.Discovery != (DiscoveryStats{}) {
		t.Errorf("expected zero discovery, got %+v", report.Discovery)
	}
	if report.Overview != (OverviewStats{}) {
		t.Errorf("expected zero overview, got %+v", report.Overview)
	}
	if len(report.TopTracks) != 0 {
		t.Errorf("expected no top tracks, got %v", report.TopTracks)
	}
	if report.Metadata.FirstPlay != "" || report.Metadata.Plays != 0 {
		t.Errorf("unexpected metadata %+v", report.Metadata)
	}
}
