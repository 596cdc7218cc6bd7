package store

import (
	"fmt"
)

type ArtistPlayCount struct {
	Artist string
	Count  int64
}

type TrackPlayCount struct {
	Artist string
	Track  string
	Count  int64
}

// limitArg maps a non-positive limit to SQLite's "no limit".
func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func (s *Store) GetTopArtistsWithCount(limit int) ([]ArtistPlayCount, error) {
	query := `
	SELECT Track.artist, COUNT(Play.id)
	FROM Play
	INNER JOIN Track ON Track.id = Play.track
	GROUP BY Track.artist
	ORDER BY COUNT(*) DESC, Track.artist ASC
	LIMIT ?
	`
	rows, err := s.db.Query(query, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("querying top artists: %w", err)
	}
	defer rows.Close()

	var results []ArtistPlayCount
	for rows.Next() {
		var apc ArtistPlayCount
		if err := rows.Scan(&apc.Artist, &apc.Count); err != nil {
			return nil, err
		}
		results = append(results, apc)
	}
	return results, rows.Err()
}

func (s *Store) GetTopTracksWithCount(limit int) ([]TrackPlayCount, error) {
	query := `
	SELECT Track.artist, Track.name, COUNT(Play.id)
	FROM Play
	INNER JOIN Track ON Track.id = Play.track
	GROUP BY Track.id
	ORDER BY COUNT(*) DESC, Track.name ASC, Track.artist ASC
	LIMIT ?
	`
	rows, err := s.db.Query(query, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("querying top tracks: %w", err)
	}
	defer rows.Close()

	var results []TrackPlayCount
	for rows.Next() {
		var tpc TrackPlayCount
		if err := rows.Scan(&tpc.Artist, &tpc.Track, &tpc.Count); err != nil {
			return nil, err
		}
		results = append(results, tpc)
	}
	return results, rows.Err()
}
