package metrics

import (
	"fmt"
	"time"
)

// Month identifies a calendar month. Comparisons use year and month so a
// window spanning a year boundary never aliases (January never matches the
// previous January).
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Label formats the month as "MonthName/YY".
func (m Month) Label() string {
	return fmt.Sprintf("%s/%02d", monthNames[m.Month], m.Year%100)
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Start returns the first instant of the month in the reporting offset.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, Recife)
}

// MonthWindow returns n consecutive months ending at the month containing
// now, chronologically ordered.
func MonthWindow(now time.Time, n int) []Month {
	now = now.In(Recife)
	window := make([]Month, n)
	m := Month{Year: now.Year(), Month: now.Month()}
	for i := n - 1; i >= 0; i-- {
		window[i] = m
		if m.Month == time.January {
			m = Month{Year: m.Year - 1, Month: time.December}
		} else {
			m = Month{Year: m.Year, Month: m.Month - 1}
		}
	}
	return window
}

// BaselineCutoff is the last second of the day before the window starts.
// Tickets created or closed on or before this instant belong to the
// pre-window baseline counts.
func BaselineCutoff(window []Month) time.Time {
	return window[0].Start().Add(-time.Second)
}
