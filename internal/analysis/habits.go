package analysis

import (
	"slices"
	"strings"
	"time"

	"github.com/ademuri/listening-stats/internal/history"
)

const nightOwlEndHour = 6

// Habits computes the day-level listening habits. Calendar fields come from
// each event's own location.
func Habits(events []history.Event) HabitStats {
	weekend, night := 0, 0
	for _, e := range events {
		switch e.Timestamp.Weekday() {
		case time.Saturday, time.Sunday:
			weekend++
		}
		if e.Timestamp.Hour() < nightOwlEndHour {
			night++
		}
	}

	return HabitStats{
		Obsession:         MaxObsession(events),
		WeekendPercent:    percent(weekend, len(events)),
		NightOwlPercent:   percent(night, len(events)),
		LongestStreakDays: LongestStreak(events),
	}
}

type dayTrack struct {
	day    string
	track  string
	artist string
}

// MaxObsession finds the (day, track, artist) with the most plays. Ties go
// to the lexicographically smallest artist, then track, then earliest day.
func MaxObsession(events []history.Event) Obsession {
	counts := make(map[dayTrack]int)
	for _, e := range events {
		counts[dayTrack{e.Day().Format(history.DayFormat), e.Track, e.Artist}]++
	}

	var best dayTrack
	bestPlays := 0
	for k, plays := range counts {
		if plays > bestPlays || (plays == bestPlays && lessDayTrack(k, best)) {
			best, bestPlays = k, plays
		}
	}
	if bestPlays == 0 {
		return Obsession{}
	}
	return Obsession{Plays: bestPlays, Track: best.track, Artist: best.artist, Day: best.day}
}

func lessDayTrack(a, b dayTrack) bool {
	if c := strings.Compare(a.artist, b.artist); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.track, b.track); c != 0 {
		return c < 0
	}
	return a.day < b.day
}

// ActiveDays returns the distinct calendar days with at least one play, in
// ascending order.
func ActiveDays(events []history.Event) []time.Time {
	seen := make(map[string]bool)
	var days []time.Time
	for _, e := range events {
		day := e.Day()
		key := day.Format(history.DayFormat)
		if seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return days
}

// LongestStreak returns the length in days of the longest run of
// consecutive active days, or 0 when there are none.
func LongestStreak(events []history.Event) int {
	days := ActiveDays(events)
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}
