package history

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Criteria selects a working subset. Zero values match everything.
type Criteria struct {
	ArtistQuery string
	Start       time.Time
	End         time.Time
}

// IsZero reports whether c matches every event.
func (c Criteria) IsZero() bool {
	return c.ArtistQuery == "" && c.Start.IsZero() && c.End.IsZero()
}

// EndOfDay returns 23:59:59 on t's calendar day, in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// Filter returns the events matching c, in their original order. The input
// is never modified.
func Filter(events []Event, c Criteria) []Event {
	lower := cases.Lower(language.Und)
	query := lower.String(c.ArtistQuery)
	end := c.End
	if !end.IsZero() {
		end = EndOfDay(end)
	}

	out := make([]Event, 0, len(events))
	for _, e := range events {
		if query != "" && !strings.Contains(lower.String(e.Artist), query) {
			continue
		}
		if !c.Start.IsZero() && e.Timestamp.Before(c.Start) {
			continue
		}
		if !end.IsZero() && e.Timestamp.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}
