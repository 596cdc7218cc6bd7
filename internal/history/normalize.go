package history

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"time"
)

// Record is one raw play as exported by the streaming service. Two export
// schemas are in circulation: the account-data export (schema A) and the
// extended streaming history (schema B). Both are decoded into the same
// struct and resolved per field by Normalize.
type Record struct {
	// Schema A
	ArtistName string  `json:"artistName"`
	TrackName  string  `json:"trackName"`
	MsPlayed   float64 `json:"msPlayed"`
	EndTime    string  `json:"endTime"`

	// Schema B
	AlbumArtistName string  `json:"master_metadata_album_artist_name"`
	TrackTitle      string  `json:"master_metadata_track_name"`
	MsPlayedB       float64 `json:"ms_played"`
	Ts              string  `json:"ts"`
	SpotifyTrackURI string  `json:"spotify_track_uri"`
}

const Unknown = "Unknown"

// Accessors are tried in order; the first non-empty value wins.
var (
	artistFields = []func(Record) string{
		func(r Record) string { return r.ArtistName },
		func(r Record) string { return r.AlbumArtistName },
	}
	trackFields = []func(Record) string{
		func(r Record) string { return r.TrackName },
		func(r Record) string { return r.TrackTitle },
	}
	msPlayedFields = []func(Record) float64{
		func(r Record) float64 { return r.MsPlayed },
		func(r Record) float64 { return r.MsPlayedB },
	}
	timestampFields = []func(Record) string{
		func(r Record) string { return r.EndTime },
		func(r Record) string { return r.Ts },
	}
	uriFields = []func(Record) string{
		func(r Record) string { return r.SpotifyTrackURI },
	}
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	DayFormat,
}

type normalizer struct {
	loc *time.Location
	now func() time.Time
}

// Option configures Normalize.
type Option func(*normalizer)

// WithLocation sets the zone used for zone-less timestamps and for every
// event's calendar fields. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(n *normalizer) {
		if loc != nil {
			n.loc = loc
		}
	}
}

// WithClock sets the time source used for records with no timestamp.
func WithClock(now func() time.Time) Option {
	return func(n *normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse decodes an export document. A single object is accepted and
// treated as a one-element list.
func Parse(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if !json.Valid(trimmed) {
		return nil, &ParseError{Index: -1, Reason: "not valid JSON"}
	}

	var raw []json.RawMessage
	switch trimmed[0] {
	case '{':
		raw = []json.RawMessage{trimmed}
	case '[':
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, &ParseError{Index: -1, Reason: "decoding array", Err: err}
		}
	default:
		return nil, &ParseError{Index: -1, Reason: "expected an object or an array of objects"}
	}

	records := make([]Record, 0, len(raw))
	for i, msg := range raw {
		msg = bytes.TrimSpace(msg)
		if len(msg) == 0 || msg[0] != '{' {
			return nil, &ParseError{Index: i, Reason: "not an object"}
		}
		var r Record
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, &ParseError{Index: i, Reason: "decoding record", Err: err}
		}
		records = append(records, r)
	}
	return records, nil
}

// Read parses and normalizes an export document in one step.
func Read(data []byte, opts ...Option) ([]Event, error) {
	records, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Normalize(records, opts...)
}

// Normalize resolves each record into an Event, drops plays of
// MinPlayedMs or less, and sorts the result by timestamp.
func Normalize(records []Record, opts ...Option) ([]Event, error) {
	n := normalizer{loc: time.Local, now: time.Now}
	for _, opt := range opts {
		opt(&n)
	}

	ingested := n.now().In(n.loc)
	events := make([]Event, 0, len(records))
	for i, r := range records {
		ts := ingested
		if raw := firstString(r, timestampFields, ""); raw != "" {
			parsed, err := parseTimestamp(raw, n.loc)
			if err != nil {
				return nil, &ParseError{Index: i, Reason: "unrecognized timestamp " + raw, Err: err}
			}
			ts = parsed
		}

		events = append(events, Event{
			Artist:    firstString(r, artistFields, Unknown),
			Track:     firstString(r, trackFields, Unknown),
			MsPlayed:  durationMs(firstNumber(r, msPlayedFields)),
			Timestamp: ts,
			URI:       firstString(r, uriFields, ""),
		})
	}
	return Canonicalize(events), nil
}

// Canonicalize drops negligible plays and stable-sorts by timestamp.
// Canonicalize(Canonicalize(x)) == Canonicalize(x).
func Canonicalize(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.MsPlayed > MinPlayedMs {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Event) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

func firstString(r Record, fields []func(Record) string, fallback string) string {
	for _, f := range fields {
		if v := f(r); v != "" {
			return v
		}
	}
	return fallback
}

func firstNumber(r Record, fields []func(Record) float64) float64 {
	for _, f := range fields {
		if v := f(r); v != 0 {
			return v
		}
	}
	return 0
}

// durationMs converts a raw play length to whole milliseconds. Fractions
// round up so that any length above MinPlayedMs stays above it.
func durationMs(v float64) int64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(math.Ceil(v))
}

func parseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, err
}
