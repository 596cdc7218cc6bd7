package cmd

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ademuri/listening-stats/internal/history"
)

type ParsedDate struct {
	Date  time.Time
	Year  bool
	Month bool
	Day   bool
}

// criteriaFromFlags builds the filter criteria. from is the first day of its
// period; to includes the whole of its period.
func criteriaFromFlags(artist, from, to string, loc *time.Location) (c history.Criteria, err error) {
	c.ArtistQuery = artist

	if from != "" {
		var date ParsedDate
		date, err = parseSingleDatestring(from, loc)
		if err != nil {
			err = fmt.Errorf("--from: %w", err)
			return
		}
		c.Start = date.Date
	}

	if to != "" {
		var end time.Time
		_, end, err = getImplicitDateRange(to, loc)
		if err != nil {
			err = fmt.Errorf("--to: %w", err)
			return
		}
		c.End = end.AddDate(0, 0, -1)
	}

	if !c.Start.IsZero() && !c.End.IsZero() && c.End.Before(c.Start) {
		err = fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return
}

func getImplicitDateRange(ds string, loc *time.Location) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds, loc)
	if err != nil {
		return
	}

	start = date.Date
	switch {
	case date.Year:
		end = start.AddDate(1, 0, 0)

	case date.Month:
		end = start.AddDate(0, 1, 0)

	case date.Day:
		end = start.AddDate(0, 0, 1)

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}

	return
}

var (
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dayPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func parseSingleDatestring(ds string, loc *time.Location) (date ParsedDate, err error) {
	switch {
	case yearPattern.MatchString(ds):
		date.Date, err = time.ParseInLocation("2006", ds, loc)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as year: %w", err)
			return
		}
		date.Year = true

	case monthPattern.MatchString(ds):
		date.Date, err = time.ParseInLocation("2006-01", ds, loc)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as month: %w", err)
			return
		}
		date.Month = true

	case dayPattern.MatchString(ds):
		date.Date, err = time.ParseInLocation(history.DayFormat, ds, loc)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as day: %w", err)
			return
		}
		date.Day = true

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}
	return
}
