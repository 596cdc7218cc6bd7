package analysis

import (
	"math"

	"github.com/ademuri/listening-stats/internal/history"
)

// Discovery counts the breadth of the listening history.
func Discovery(events []history.Event) DiscoveryStats {
	tracks := make(map[string]struct{})
	var totalMs int64
	for _, e := range events {
		tracks[e.Track] = struct{}{}
		totalMs += e.MsPlayed
	}

	artists := ArtistPlayCounts(events)
	oneHit := 0
	for _, plays := range artists {
		if plays == 1 {
			oneHit++
		}
	}

	var avg int64
	if len(events) > 0 {
		avg = int64(math.Round(float64(totalMs) / float64(len(events)) / 1000))
	}

	return DiscoveryStats{
		UniqueArtists:       len(artists),
		UniqueTracks:        len(tracks),
		OneHitArtists:       oneHit,
		AverageTrackSeconds: avg,
	}
}
