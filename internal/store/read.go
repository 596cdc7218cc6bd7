package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/listening-stats/internal/history"
)

// DefaultPageSize is the number of plays on one history page.
const DefaultPageSize = 50

func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Play").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting plays: %w", err)
	}
	return n, nil
}

// PageCount returns how many pages of the given size the stored plays fill.
func (s *Store) PageCount(size int) (int, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	n, err := s.Count()
	if err != nil {
		return 0, err
	}
	return (n + size - 1) / size, nil
}

// GetHistoryPage returns one page of plays, newest first. Pages are numbered
// from 1; a page past the end is empty.
func (s *Store) GetHistoryPage(page, size int) ([]history.Event, error) {
	if page < 1 {
		return nil, fmt.Errorf("page %d: pages are numbered from 1", page)
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	query := `
	SELECT Track.artist, Track.name, Play.ms_played, Play.ts, Track.uri
	FROM Play
	INNER JOIN Track ON Track.id = Play.track
	ORDER BY Play.ts DESC, Play.id DESC
	LIMIT ? OFFSET ?
	`
	rows, err := s.db.Query(query, size, (page-1)*size)
	if err != nil {
		return nil, fmt.Errorf("querying history page %d: %w", page, err)
	}
	defer rows.Close()

	var events []history.Event
	for rows.Next() {
		var e history.Event
		var ts int64
		var uri sql.NullString
		if err := rows.Scan(&e.Artist, &e.Track, &e.MsPlayed, &ts, &uri); err != nil {
			return nil, err
		}
		e.Timestamp = time.UnixMilli(ts).In(s.loc)
		e.URI = uri.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetLatestPlay returns the timestamp of the newest stored play, or the zero
// time when the store is empty.
func (s *Store) GetLatestPlay() (time.Time, error) {
	var ts int64
	err := s.db.QueryRow("SELECT ts FROM Play ORDER BY ts DESC LIMIT 1").Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("scanning latest play: %w", err)
	}
	return time.UnixMilli(ts).In(s.loc), nil
}
