package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ademuri/listening-stats/internal/logging"
)

func TestNewTextLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, logging.Options{Level: "warn"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", logging.Int("plays", 3))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "plays=3") {
		t.Errorf("expected warn record with attrs, got %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, logging.Options{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "session").Debug("loaded")

	if !strings.Contains(buf.String(), `"component":"session"`) {
		t.Errorf("expected component attribute, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(&bytes.Buffer{}, logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "store")
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Error("discarded", logging.Error(nil))
}
