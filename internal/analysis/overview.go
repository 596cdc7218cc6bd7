package analysis

import (
	"cmp"
	"math"
	"slices"

	"github.com/ademuri/listening-stats/internal/history"
)

const msPerHour = 36e5

// Overview computes the headline numbers: total time, total plays and the
// most listened artist.
func Overview(events []history.Event) OverviewStats {
	var totalMs int64
	artistMs := make(map[string]int64)
	trackPlays := make(map[string]int)
	for _, e := range events {
		totalMs += e.MsPlayed
		artistMs[e.Artist] += e.MsPlayed
		trackPlays[e.Track]++
	}

	o := OverviewStats{
		TotalPlays:   len(events),
		TotalHours:   round(float64(totalMs)/msPerHour, 1),
		TotalMinutes: int64(math.Round(float64(totalMs) / 60000)),
	}
	for artist, ms := range artistMs {
		if ms > o.TopArtistMs || (ms == o.TopArtistMs && artist < o.TopArtist) {
			o.TopArtist, o.TopArtistMs = artist, ms
		}
	}
	if top := RankCounts(ArtistPlayCounts(events)); len(top) > 0 {
		o.MostPlayed = top[0]
	}
	if top := RankCounts(trackPlays); len(top) > 0 {
		o.TopTrack = top[0]
	}
	return o
}

// RankCounts orders counts by plays, most first, ties by name.
func RankCounts(counts map[string]int) []KeyCount {
	ranked := make([]KeyCount, 0, len(counts))
	for k, c := range counts {
		ranked = append(ranked, KeyCount{Key: k, Count: c})
	}
	slices.SortFunc(ranked, func(a, b KeyCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Key, b.Key))
	})
	return ranked
}

// TopTracks returns the n most played (track, artist) pairs. n <= 0 returns
// all of them.
func TopTracks(events []history.Event, n int) []TrackCount {
	type key struct{ track, artist string }
	counts := make(map[key]int)
	for _, e := range events {
		counts[key{e.Track, e.Artist}]++
	}

	tracks := make([]TrackCount, 0, len(counts))
	for k, plays := range counts {
		tracks = append(tracks, TrackCount{Track: k.track, Artist: k.artist, Plays: plays})
	}
	slices.SortFunc(tracks, func(a, b TrackCount) int {
		return cmp.Or(
			cmp.Compare(b.Plays, a.Plays),
			cmp.Compare(a.Track, b.Track),
			cmp.Compare(a.Artist, b.Artist),
		)
	})
	if n > 0 && len(tracks) > n {
		tracks = tracks[:n]
	}
	return tracks
}
