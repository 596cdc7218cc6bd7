// Package present turns analysis results into display-ready records.
package present

import (
	"net/url"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ademuri/listening-stats/internal/analysis"
)

// MetricRecord is one stat card: a label, a formatted value, a short
// description and an optional 0-100 proportion bar.
type MetricRecord struct {
	Label       string   `yaml:"label" json:"label"`
	Value       string   `yaml:"value" json:"value"`
	Description string   `yaml:"description" json:"description"`
	Proportion  *float64 `yaml:"proportion,omitempty" json:"proportion,omitempty"`
}

var printer = message.NewPrinter(language.English)

func proportion(p float64) *float64 {
	p = min(max(p, 0), 100)
	return &p
}

// MathRecords presents the distribution group.
func MathRecords(d analysis.DistributionStats) []MetricRecord {
	return []MetricRecord{
		{Label: "Gini Coefficient", Value: printer.Sprintf("%.3f", d.Gini), Description: "Inequality Score (0-1)", Proportion: proportion(d.Gini * 100)},
		{Label: "Entropy Score", Value: printer.Sprintf("%.2f", d.Entropy), Description: "Musical Randomness", Proportion: proportion(d.Entropy * 10)},
		{Label: "H-Index", Value: printer.Sprintf("%d", d.HIndex), Description: printer.Sprintf("%d artists with ≥ %d plays", d.HIndex, d.HIndex)},
		{Label: "Pareto (80/20)", Value: printer.Sprintf("%.1f%%", d.ParetoPercent), Description: "% Artists for 80% plays"},
		{Label: "Skip Rate", Value: printer.Sprintf("%.1f%%", d.SkipRatePercent), Description: "< 30s playback"},
	}
}

// HabitRecords presents the habit group.
func HabitRecords(h analysis.HabitStats) []MetricRecord {
	obsession := "Plays of 1 song in 24h"
	if h.Obsession.Plays > 0 {
		obsession = printer.Sprintf("Plays of 1 song in 24h: %s by %s", h.Obsession.Track, h.Obsession.Artist)
	}
	return []MetricRecord{
		{Label: "Max Obsession", Value: printer.Sprintf("%d", h.Obsession.Plays), Description: obsession},
		{Label: "Weekend Vibe", Value: printer.Sprintf("%.1f%%", h.WeekendPercent), Description: "Sat/Sun Share", Proportion: proportion(h.WeekendPercent)},
		{Label: "Night Owl", Value: printer.Sprintf("%.1f%%", h.NightOwlPercent), Description: "12AM - 6AM activity"},
		{Label: "Active Streak", Value: printer.Sprintf("%d days", h.LongestStreakDays), Description: "Consecutive listening"},
	}
}

// DiscoveryRecords presents the discovery group.
func DiscoveryRecords(d analysis.DiscoveryStats) []MetricRecord {
	var oneHitShare float64
	if d.UniqueArtists > 0 {
		oneHitShare = float64(d.OneHitArtists) / float64(d.UniqueArtists) * 100
	}
	return []MetricRecord{
		{Label: "Unique Tracks", Value: printer.Sprintf("%d", d.UniqueTracks), Description: "Distinct Songs"},
		{Label: "Unique Artists", Value: printer.Sprintf("%d", d.UniqueArtists), Description: "Distinct Artists"},
		{Label: "One-Hitters", Value: printer.Sprintf("%d", d.OneHitArtists), Description: "Artists played exactly once", Proportion: proportion(oneHitShare)},
		{Label: "Avg Track", Value: printer.Sprintf("%ds", d.AverageTrackSeconds), Description: "Average Duration"},
	}
}

// Number formats n with English digit grouping.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// SearchURL links a track or artist name to the streaming service's search.
func SearchURL(name string) string {
	return "https://open.spotify.com/search/" + url.PathEscape(name)
}
