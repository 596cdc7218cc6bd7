package analysis

import (
	"time"

	"github.com/ademuri/listening-stats/internal/history"
)

const defaultTopTracks = 10

// GenerateReport computes every metric group over the working set. now
// anchors the calendar window and the generated date.
func GenerateReport(events []history.Event, now time.Time) *Report {
	report := &Report{
		Metadata: ReportMetadata{
			GeneratedDate: now.Format(history.DayFormat),
			Plays:         len(events),
			ActiveDays:    len(ActiveDays(events)),
		},
		Overview:     Overview(events),
		Distribution: Distribution(events),
		Habits:       Habits(events),
		Discovery:    Discovery(events),
		TopTracks:    TopTracks(events, defaultTopTracks),
		Charts:       Charts(events),
		Calendar:     Calendar(events, now),
	}

	// Events are sorted, so the ends of the slice bound the history.
	if len(events) > 0 {
		report.Metadata.FirstPlay = events[0].Timestamp.Format(time.RFC3339)
		report.Metadata.LastPlay = events[len(events)-1].Timestamp.Format(time.RFC3339)
	}
	return report
}
