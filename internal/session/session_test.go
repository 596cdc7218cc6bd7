package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ademuri/listening-stats/internal/history"
	"github.com/ademuri/listening-stats/internal/logging"
)

var testNow = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

const testExport = `[
  {"artistName": "Low", "trackName": "Words", "msPlayed": 200000, "endTime": "2024-03-01 10:00"},
  {"artistName": "Low", "trackName": "Sunflower", "msPlayed": 180000, "endTime": "2024-03-02 11:00"},
  {"master_metadata_album_artist_name": "Beach House", "master_metadata_track_name": "Myth", "ms_played": 240000, "ts": "2024-03-03T22:00:00Z"},
  {"artistName": "Low", "trackName": "Words", "msPlayed": 500, "endTime": "2024-03-04 09:00"}
]`

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger, err := logging.New(&logs, logging.Options{Level: "debug"})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	s, err := New(
		WithLocation(time.UTC),
		WithClock(func() time.Time { return testNow }),
		WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, &logs
}

func TestLoad(t *testing.T) {
	s, _ := newTestSession(t)
	if s.ID() != "" {
		t.Errorf("expected no dataset id before load, got %q", s.ID())
	}

	if err := s.Load(strings.NewReader(testExport)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Dataset()) != 3 || len(s.Working()) != 3 {
		t.Errorf("expected 3 events, got dataset=%d working=%d", len(s.Dataset()), len(s.Working()))
	}
	if s.ID() == "" {
		t.Error("expected dataset id after load")
	}
	if n, err := s.Store().Count(); err != nil || n != 3 {
		t.Errorf("expected store mirror of 3 plays, got %d (%v)", n, err)
	}

	first := s.ID()
	if err := s.Load(strings.NewReader(testExport)); err != nil {
		t.Fatalf("Load (second): %v", err)
	}
	if s.ID() == first {
		t.Error("expected a fresh dataset id on reload")
	}
}

func TestLoadFailureKeepsPreviousDataset(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.Load(strings.NewReader(testExport)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	id := s.ID()

	err := s.Load(strings.NewReader(`{"artistName": `))
	if !errors.Is(err, history.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if s.ID() != id || len(s.Working()) != 3 {
		t.Errorf("expected previous dataset to stay active, got id=%q working=%d", s.ID(), len(s.Working()))
	}
	if n, _ := s.Store().Count(); n != 3 {
		t.Errorf("expected store mirror untouched, got %d plays", n)
	}
}

func TestApply(t *testing.T) {
	s, logs := newTestSession(t)
	if err := s.Load(strings.NewReader(testExport)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := s.Apply(history.Criteria{ArtistQuery: "LOW"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(s.Working()) != 2 {
		t.Errorf("expected 2 Low plays, got %d", len(s.Working()))
	}
	if n, _ := s.Store().Count(); n != 2 {
		t.Errorf("expected store mirror of 2 plays, got %d", n)
	}

	// Criteria survive a reload.
	if err := s.Load(strings.NewReader(testExport)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Working()) != 2 {
		t.Errorf("expected criteria re-applied after load, got %d events", len(s.Working()))
	}

	if err := s.Apply(history.Criteria{ArtistQuery: "nobody"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(s.Working()) != 0 {
		t.Errorf("expected empty working set, got %d", len(s.Working()))
	}
	if !strings.Contains(logs.String(), "no events match filter") {
		t.Errorf("expected empty-result warning in logs, got %q", logs.String())
	}

	report := s.Snapshot()
	if report.Distribution.Artists != 0 || report.Habits.LongestStreakDays != 0 {
		t.Errorf("expected zero metrics for empty working set, got %+v", report)
	}

	if err := s.Apply(history.Criteria{}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(s.Working()) != 3 {
		t.Errorf("expected full dataset with empty criteria, got %d", len(s.Working()))
	}
}

func TestSnapshot(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.Load(strings.NewReader(testExport)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	report := s.Snapshot()
	if report.Metadata.GeneratedDate != "2024-04-01" {
		t.Errorf("expected snapshot dated by the session clock, got %s", report.Metadata.GeneratedDate)
	}
	if report.Habits.LongestStreakDays != 3 {
		t.Errorf("expected streak 3, got %d", report.Habits.LongestStreakDays)
	}
	if report.Distribution.Artists != 2 {
		t.Errorf("expected 2 artists, got %d", report.Distribution.Artists)
	}
}
