package cmd

import (
	"testing"
	"time"

	"github.com/ademuri/listening-stats/internal/history"
	"github.com/ademuri/listening-stats/internal/logging"
	"github.com/ademuri/listening-stats/internal/session"
)

const fixturePath = "../internal/analysis/testdata/history_fixture.json"

func openFixtureSession(t *testing.T, criteria history.Criteria) *session.Session {
	t.Helper()
	cfg := sessionConfig{Location: time.UTC, Criteria: criteria}
	s, err := openSession(fixturePath, cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("openSession(%s) error: %v", fixturePath, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
