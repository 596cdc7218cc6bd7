package analysis

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ademuri/listening-stats/internal/history"
)

const chartTopArtists = 5

var (
	monthLabels   = []string{"J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"}
	weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// Charts builds the four dashboard series: hours per month, top artists by
// hours, hours per hour of day and hours per weekday.
func Charts(events []history.Event) []ChartSeries {
	months := make([]float64, 12)
	hours := make([]float64, 24)
	weekdays := make([]float64, 7)
	artistMs := make(map[string]int64)
	for _, e := range events {
		h := float64(e.MsPlayed) / msPerHour
		months[e.Timestamp.Month()-1] += h
		hours[e.Timestamp.Hour()] += h
		weekdays[e.Timestamp.Weekday()] += h
		artistMs[e.Artist] += e.MsPlayed
	}

	hourLabels := make([]string, 24)
	for i := range hourLabels {
		hourLabels[i] = fmt.Sprintf("%dh", i)
	}

	return []ChartSeries{
		{ID: "listening-time", Kind: ChartBar, Title: "Hours", Labels: slices.Clone(monthLabels), Values: roundAll(months, 2)},
		topArtistsChart(artistMs),
		{ID: "hour-of-day", Kind: ChartPolarArea, Title: "Hours by time of day", Labels: hourLabels, Values: roundAll(hours, 2)},
		{ID: "day-of-week", Kind: ChartRadar, Title: "Activity", Labels: slices.Clone(weekdayLabels), Values: roundAll(weekdays, 2)},
	}
}

func topArtistsChart(artistMs map[string]int64) ChartSeries {
	type artistTime struct {
		name string
		ms   int64
	}
	ranked := make([]artistTime, 0, len(artistMs))
	for name, ms := range artistMs {
		ranked = append(ranked, artistTime{name, ms})
	}
	slices.SortFunc(ranked, func(a, b artistTime) int {
		return cmp.Or(cmp.Compare(b.ms, a.ms), cmp.Compare(a.name, b.name))
	})
	if len(ranked) > chartTopArtists {
		ranked = ranked[:chartTopArtists]
	}

	series := ChartSeries{
		ID:     "artist-distribution",
		Kind:   ChartDoughnut,
		Title:  "Top artists by hours",
		Labels: make([]string, 0, len(ranked)),
		Values: make([]float64, 0, len(ranked)),
	}
	for _, a := range ranked {
		series.Labels = append(series.Labels, a.name)
		series.Values = append(series.Values, round(float64(a.ms)/msPerHour, 1))
	}
	return series
}

func roundAll(values []float64, places int) []float64 {
	for i, v := range values {
		values[i] = round(v, places)
	}
	return values
}
