package analysis

import "time"

// Report is the top-level structure for a listening-history report.
type Report struct {
	Metadata     ReportMetadata    `yaml:"metadata"`
	Overview     OverviewStats     `yaml:"overview"`
	Distribution DistributionStats `yaml:"distribution"`
	Habits       HabitStats        `yaml:"habits"`
	Discovery    DiscoveryStats    `yaml:"discovery"`
	TopTracks    []TrackCount      `yaml:"top_tracks"`
	Charts       []ChartSeries     `yaml:"charts"`
	Calendar     CalendarGrid      `yaml:"-"`
}

type ReportMetadata struct {
	GeneratedDate string `yaml:"generated_date"`
	FirstPlay     string `yaml:"first_play,omitempty"`
	LastPlay      string `yaml:"last_play,omitempty"`
	Plays         int    `yaml:"plays"`
	ActiveDays    int    `yaml:"active_days"`
}

type OverviewStats struct {
	TotalPlays   int      `yaml:"total_plays"`
	TotalHours   float64  `yaml:"total_hours"`
	TotalMinutes int64    `yaml:"total_minutes"`
	TopArtist    string   `yaml:"top_artist,omitempty"` // by time listened
	TopArtistMs  int64    `yaml:"top_artist_ms,omitempty"`
	MostPlayed   KeyCount `yaml:"most_played_artist"`
	TopTrack     KeyCount `yaml:"most_played_track"`
}

// KeyCount pairs a name with a number of plays.
type KeyCount struct {
	Key   string `yaml:"name"`
	Count int    `yaml:"plays"`
}

type TrackCount struct {
	Track  string `yaml:"track"`
	Artist string `yaml:"artist"`
	Plays  int    `yaml:"plays"`
}

type DistributionStats struct {
	Artists         int     `yaml:"artists"`
	Gini            float64 `yaml:"gini"`
	Entropy         float64 `yaml:"entropy_bits"`
	HIndex          int     `yaml:"h_index"`
	ParetoPercent   float64 `yaml:"pareto_percent"`
	SkipRatePercent float64 `yaml:"skip_rate_percent"`
}

type HabitStats struct {
	Obsession         Obsession `yaml:"obsession"`
	WeekendPercent    float64   `yaml:"weekend_percent"`
	NightOwlPercent   float64   `yaml:"night_owl_percent"`
	LongestStreakDays int       `yaml:"longest_streak_days"`
}

// Obsession is the most plays of a single track on a single day.
type Obsession struct {
	Plays  int    `yaml:"plays"`
	Track  string `yaml:"track,omitempty"`
	Artist string `yaml:"artist,omitempty"`
	Day    string `yaml:"day,omitempty"`
}

type DiscoveryStats struct {
	UniqueArtists       int   `yaml:"unique_artists"`
	UniqueTracks        int   `yaml:"unique_tracks"`
	OneHitArtists       int   `yaml:"one_hit_artists"`
	AverageTrackSeconds int64 `yaml:"average_track_seconds"`
}

type CalendarDay struct {
	Date  time.Time `yaml:"date"`
	Plays int       `yaml:"plays"`
	Level int       `yaml:"level"`
}

// CalendarGrid is a weekly-column heatmap. Weeks[w][d] is the day
// Start + 7*w + d.
type CalendarGrid struct {
	Start time.Time       `yaml:"start"`
	End   time.Time       `yaml:"end"`
	Max   int             `yaml:"max"`
	Weeks [][]CalendarDay `yaml:"weeks"`
}

type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartDoughnut  ChartKind = "doughnut"
	ChartPolarArea ChartKind = "polarArea"
	ChartRadar     ChartKind = "radar"
)

// ChartSeries is one labelled series for the charting front end.
type ChartSeries struct {
	ID     string    `yaml:"id" json:"id"`
	Kind   ChartKind `yaml:"kind" json:"type"`
	Title  string    `yaml:"title" json:"title"`
	Labels []string  `yaml:"labels" json:"labels"`
	Values []float64 `yaml:"values" json:"values"`
}
