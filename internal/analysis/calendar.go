package analysis

import (
	"time"

	"github.com/ademuri/listening-stats/internal/history"
)

const (
	CalendarWeeks = 53
	CalendarCells = CalendarWeeks * 7

	// Floor for the heatmap scale so a sparse history doesn't render
	// every active day at full intensity.
	minCalendarMax = 5
)

// Calendar buckets plays per day into a grid of CalendarWeeks columns whose
// last cell is now's calendar day.
func Calendar(events []history.Event, now time.Time) CalendarGrid {
	end := history.CivilDay(now)
	start := end.AddDate(0, 0, -(CalendarCells - 1))

	volume := make(map[string]int)
	for _, e := range events {
		volume[e.Day().Format(history.DayFormat)]++
	}

	grid := CalendarGrid{Start: start, End: end, Max: minCalendarMax}
	for i := 0; i < CalendarCells; i++ {
		day := start.AddDate(0, 0, i)
		grid.Max = max(grid.Max, volume[day.Format(history.DayFormat)])
	}

	grid.Weeks = make([][]CalendarDay, CalendarWeeks)
	for w := range grid.Weeks {
		week := make([]CalendarDay, 7)
		for d := range week {
			day := start.AddDate(0, 0, w*7+d)
			plays := volume[day.Format(history.DayFormat)]
			week[d] = CalendarDay{Date: day, Plays: plays, Level: HeatLevel(plays, grid.Max)}
		}
		grid.Weeks[w] = week
	}
	return grid
}

// HeatLevel maps a day's plays onto the 0-4 intensity scale relative to the
// busiest day.
func HeatLevel(plays, maxPlays int) int {
	m := float64(maxPlays)
	p := float64(plays)
	level := 0
	if plays > 0 {
		level = 1
	}
	if p > m*0.3 {
		level = 2
	}
	if p > m*0.6 {
		level = 3
	}
	if p > m*0.9 {
		level = 4
	}
	return level
}
