package store

import (
	"database/sql"
	"fmt"

	"github.com/ademuri/listening-stats/internal/history"
)

// Replace swaps the stored plays for events in a single transaction. On
// error the previous contents are left untouched.
func (s *Store) Replace(events []history.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"Play", "Track", "Artist"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, e := range events {
		if err := createArtist(tx, e.Artist); err != nil {
			return err
		}
		trackID, err := createTrack(tx, e.Artist, e.Track, e.URI)
		if err != nil {
			return err
		}
		if err := createPlay(tx, trackID, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func createArtist(tx *sql.Tx, name string) error {
	if _, err := tx.Exec("INSERT OR IGNORE INTO Artist (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("inserting artist %q: %w", name, err)
	}
	return nil
}

func createTrack(tx *sql.Tx, artist, name, uri string) (int64, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM Track WHERE artist = ? AND name = ?", artist, name).Scan(&id)
	if err == nil {
		if uri != "" {
			if _, err := tx.Exec("UPDATE Track SET uri = ? WHERE id = ? AND (uri IS NULL OR uri = '')", uri, id); err != nil {
				return 0, fmt.Errorf("updating uri of track %q: %w", name, err)
			}
		}
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("checking track %q: %w", name, err)
	}

	res, err := tx.Exec("INSERT INTO Track (artist, name, uri) VALUES (?, ?, ?)", artist, name, uri)
	if err != nil {
		return 0, fmt.Errorf("inserting track %q: %w", name, err)
	}
	return res.LastInsertId()
}

func createPlay(tx *sql.Tx, trackID int64, e history.Event) error {
	_, err := tx.Exec("INSERT INTO Play (track, ms_played, ts) VALUES (?, ?, ?)", trackID, e.MsPlayed, e.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("inserting play: %w", err)
	}
	return nil
}
