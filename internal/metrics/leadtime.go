package metrics

import (
	"slices"
	"time"
)

// LeadTimeWindowMonths is the trailing period considered for lead times.
const LeadTimeWindowMonths = 6

// LeadTimes computes per-ticket resolution times for tickets closed within
// the trailing window, in whole days (hours floor-divided to days). Only
// tickets with state Fechado and both timestamps qualify. Closed-before-
// created rows are clock skew: they are counted in Flagged and excluded
// rather than contributing negative values.
func LeadTimes(tickets []Ticket, now time.Time) LeadTimeResult {
	cutoff := now.In(Recife).AddDate(0, -LeadTimeWindowMonths, 0)

	var result LeadTimeResult
	for _, t := range tickets {
		if t.State != StateClosed || t.Created == nil || t.Closed == nil {
			continue
		}
		if !t.Closed.After(cutoff) {
			continue
		}

		hours := int(t.Closed.Sub(*t.Created).Hours())
		if hours < 0 {
			result.Flagged++
			continue
		}

		month := MonthOf(*t.Closed)
		result.Entries = append(result.Entries, LeadTimeEntry{
			Number: t.Number,
			Sector: t.Sector,
			Month:  month,
			Label:  month.Label(),
			Days:   hours / 24,
		})
	}

	slices.SortStableFunc(result.Entries, func(a, b LeadTimeEntry) int {
		return compareMonths(a.Month, b.Month)
	})

	result.Monthly = monthlyMeans(result.Entries)
	return result
}

func compareMonths(a, b Month) int {
	if a.Year != b.Year {
		return a.Year - b.Year
	}
	return int(a.Month) - int(b.Month)
}

func monthlyMeans(entries []LeadTimeEntry) []MonthMean {
	type acc struct {
		sum   int
		count int
	}
	byMonth := make(map[Month]*acc)
	var months []Month

	for _, e := range entries {
		a, ok := byMonth[e.Month]
		if !ok {
			a = &acc{}
			byMonth[e.Month] = a
			months = append(months, e.Month)
		}
		a.sum += e.Days
		a.count++
	}

	slices.SortFunc(months, compareMonths)

	means := make([]MonthMean, 0, len(months))
	for _, m := range months {
		a := byMonth[m]
		means = append(means, MonthMean{
			Label: m.Label(),
			Days:  a.sum / a.count,
		})
	}
	return means
}

// PivotLeadTimes builds the dense (month x sector) grid of mean lead times
// for the given sector list. Every requested sector appears for every month
// present in the entries, zero-filled, because the consuming chart assumes a
// full grid.
func PivotLeadTimes(entries []LeadTimeEntry, sectors []Sector) LeadTimePivot {
	type acc struct {
		sum   int
		count int
	}
	cells := make(map[Month]map[Sector]*acc)
	var months []Month

	wanted := make(map[Sector]bool, len(sectors))
	for _, s := range sectors {
		wanted[s] = true
	}

	for _, e := range entries {
		if !wanted[e.Sector] {
			continue
		}
		row, ok := cells[e.Month]
		if !ok {
			row = make(map[Sector]*acc)
			cells[e.Month] = row
			months = append(months, e.Month)
		}
		a, ok := row[e.Sector]
		if !ok {
			a = &acc{}
			row[e.Sector] = a
		}
		a.sum += e.Days
		a.count++
	}

	slices.SortFunc(months, compareMonths)

	pivot := LeadTimePivot{
		Sectors: sectors,
		Cells:   make(map[string]map[Sector]int, len(months)),
	}
	for _, m := range months {
		label := m.Label()
		pivot.Months = append(pivot.Months, label)

		row := make(map[Sector]int, len(sectors))
		for _, s := range sectors {
			if a, ok := cells[m][s]; ok {
				row[s] = a.sum / a.count
			} else {
				row[s] = 0
			}
		}
		pivot.Cells[label] = row
	}

	return pivot
}
