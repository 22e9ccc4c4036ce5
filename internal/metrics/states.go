package metrics

// AggregateStates computes the month-indexed opened/closed/accumulated counts
// over the window, plus the headline scalars. Tickets must already be
// filtered to the requested sector; the baseline must come from pre-window
// store queries over the sector's raw groups.
//
// The output is dense: exactly one row per window month, chronologically
// ordered, zero-filled when a month has no activity.
func AggregateStates(tickets []Ticket, window []Month, base Baseline) StateSummary {
	if len(window) == 0 {
		return StateSummary{ClosedTotal: base.ClosedTotal}
	}

	opened := make([]int, len(window))
	closed := make([]int, len(window))

	index := make(map[Month]int, len(window))
	for i, m := range window {
		index[m] = i
	}

	for _, t := range tickets {
		if t.Created != nil {
			if i, ok := index[MonthOf(*t.Created)]; ok {
				opened[i]++
			}
		}
		// A closed state without a close timestamp is a data-quality anomaly;
		// it is tolerated by simply not counting toward any month.
		if t.State == StateClosed && t.Closed != nil {
			if i, ok := index[MonthOf(*t.Closed)]; ok {
				closed[i]++
			}
		}
	}

	// Backlog carry-forward: the first month is seeded from the pre-window
	// baseline, each later month rolls the previous balance forward.
	accumulated := make([]int, len(window))
	accumulated[0] = opened[0] + base.OpenedBefore - closed[0] - base.ClosedBefore
	for i := 1; i < len(window); i++ {
		accumulated[i] = accumulated[i-1] + opened[i] - closed[i]
	}

	rows := make([]StateRow, len(window))
	for i, m := range window {
		rows[i] = StateRow{
			Label:       m.Label(),
			Opened:      opened[i],
			Closed:      closed[i],
			Accumulated: accumulated[i],
		}
	}

	last := len(window) - 1
	return StateSummary{
		Rows:               rows,
		OpenedCurrentMonth: opened[last],
		ClosedCurrentMonth: closed[last],
		ClosedTotal:        base.ClosedTotal,
		Backlog:            accumulated[last],
	}
}
