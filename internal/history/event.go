package history

import "time"

// Event is one play from a streaming-history export, after normalization.
type Event struct {
	Artist    string    `json:"artist" yaml:"artist"`
	Track     string    `json:"track" yaml:"track"`
	MsPlayed  int64     `json:"ms_played" yaml:"ms_played"`
	Timestamp time.Time `json:"ts" yaml:"ts"`
	URI       string    `json:"uri,omitempty" yaml:"uri,omitempty"`
}

// MinPlayedMs is the playback length at or below which a play is treated as
// accidental and dropped.
const MinPlayedMs = 1000

// Day returns the calendar day of the event in its own location, as
// midnight UTC. Two events share a Day value iff they fall on the same
// local date, and consecutive dates are exactly 24h apart.
func (e Event) Day() time.Time {
	return CivilDay(e.Timestamp)
}

// CivilDay truncates t to its calendar date, rebased onto UTC.
func CivilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayFormat is the layout used for calendar-day keys.
const DayFormat = "2006-01-02"
