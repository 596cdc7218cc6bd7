// Package session holds the loaded dataset, the active filter and the
// working subset derived from them.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/history"
	"github.com/ademuri/listening-stats/internal/logging"
	"github.com/ademuri/listening-stats/internal/store"
)

type Session struct {
	loc    *time.Location
	now    func() time.Time
	dbPath string
	logger *slog.Logger

	store    *store.Store
	id       string
	dataset  []history.Event
	criteria history.Criteria
	working  []history.Event
}

// Option configures New.
type Option func(*Session)

// WithLocation sets the zone events are normalized into.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock sets the time source for missing timestamps and snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithDBPath places the working-set mirror in a file instead of memory.
func WithDBPath(path string) Option {
	return func(s *Session) {
		s.dbPath = path
	}
}

func New(opts ...Option) (*Session, error) {
	s := &Session{
		loc:    time.Local,
		now:    time.Now,
		dbPath: store.InMemory,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "session")

	st, err := store.New(s.dbPath, s.loc)
	if err != nil {
		return nil, fmt.Errorf("opening working set: %w", err)
	}
	s.store = st
	return s, nil
}

// Load replaces the dataset with the export read from r. On error the
// previous dataset and working subset stay active.
func (s *Session) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading export: %w", err)
	}

	events, err := history.Read(data, history.WithLocation(s.loc), history.WithClock(s.now))
	if err != nil {
		s.logger.Warn("keeping previous dataset", logging.Error(err))
		return err
	}

	working := history.Filter(events, s.criteria)
	if err := s.store.Replace(working); err != nil {
		return fmt.Errorf("mirroring working set: %w", err)
	}

	s.id = uuid.NewString()
	s.dataset = events
	s.working = working
	s.logger.Info("dataset loaded",
		logging.String("dataset", s.id),
		logging.Int("events", len(events)),
		logging.Int("working", len(working)))
	s.warnIfEmpty()
	return nil
}

// Apply sets the active criteria and rebuilds the working subset.
func (s *Session) Apply(c history.Criteria) error {
	working := history.Filter(s.dataset, c)
	if err := s.store.Replace(working); err != nil {
		return fmt.Errorf("mirroring working set: %w", err)
	}

	s.criteria = c
	s.working = working
	s.logger.Debug("criteria applied",
		logging.String("artist", c.ArtistQuery),
		logging.Int("working", len(working)))
	s.warnIfEmpty()
	return nil
}

func (s *Session) warnIfEmpty() {
	if len(s.working) == 0 && !s.criteria.IsZero() && len(s.dataset) > 0 {
		s.logger.Warn("no events match filter", logging.String("artist", s.criteria.ArtistQuery))
	}
}

// Working returns the current working subset. Callers must not modify it.
func (s *Session) Working() []history.Event {
	return s.working
}

func (s *Session) Dataset() []history.Event {
	return s.dataset
}

func (s *Session) Criteria() history.Criteria {
	return s.criteria
}

// Snapshot computes every metric group over the working subset.
func (s *Session) Snapshot() *analysis.Report {
	return analysis.GenerateReport(s.working, s.now().In(s.loc))
}

func (s *Session) Store() *store.Store {
	return s.store
}

// ID identifies the loaded dataset; it changes on every successful Load and
// is empty before the first.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) Location() *time.Location {
	return s.loc
}

func (s *Session) Close() error {
	return s.store.Close()
}
