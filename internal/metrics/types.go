package metrics

import "time"

// Ticket is a normalized ticket: timestamps shifted to the reporting offset,
// state and group mapped through the fixed vocabularies. State and Sector are
// empty for values the source vocabulary does not cover.
type Ticket struct {
	Number   string
	SourceID string
	Created  *time.Time
	Closed   *time.Time
	Updated  *time.Time
	State    string
	Sector   Sector
	RawGroup string
	Channel  Channel
}

// Snapshot is the normalized working set for one aggregation cycle, along
// with counters making the unmapped-value rate observable.
type Snapshot struct {
	Tickets       []Ticket
	UnknownStates int
	UnknownGroups int
}

// BySector returns the tickets belonging to one sector. An empty sector
// returns every mapped ticket.
func (s Snapshot) BySector(sector Sector) []Ticket {
	if sector == "" {
		return s.Tickets
	}
	var out []Ticket
	for _, t := range s.Tickets {
		if t.Sector == sector {
			out = append(out, t)
		}
	}
	return out
}

// StateRow is one month of the state aggregate.
type StateRow struct {
	Label       string `json:"mes_ano"`
	Opened      int    `json:"abertos"`
	Closed      int    `json:"fechados"`
	Accumulated int    `json:"acumulados"`
}

// StateSummary is the month-indexed state aggregate plus its headline scalars.
type StateSummary struct {
	Rows               []StateRow `json:"rows"`
	OpenedCurrentMonth int        `json:"opened_current_month"`
	ClosedCurrentMonth int        `json:"closed_current_month"`
	ClosedTotal        int        `json:"closed_total"`
	Backlog            int        `json:"backlog"`
}

// Baseline carries the pre-window counts required to seed the backlog
// recurrence. These come from dedicated store queries over the raw group
// names, never from the in-memory window slice.
type Baseline struct {
	OpenedBefore int
	ClosedBefore int
	ClosedTotal  int
}

// LeadTimeEntry is the per-ticket resolution time in whole days.
type LeadTimeEntry struct {
	Number string `json:"number"`
	Sector Sector `json:"sector"`
	Month  Month  `json:"-"`
	Label  string `json:"mes_ano"`
	Days   int    `json:"diff"`
}

// MonthMean is the mean lead time of one month, in whole days.
type MonthMean struct {
	Label string `json:"mes_ano"`
	Days  int    `json:"diff"`
}

// LeadTimeResult bundles the two lead-time shapes: flat per-ticket detail
// and per-month means.
type LeadTimeResult struct {
	Entries []LeadTimeEntry `json:"entries"`
	Monthly []MonthMean     `json:"monthly"`
	// Flagged counts closed tickets whose close predates their creation;
	// they are excluded from the aggregates.
	Flagged int `json:"flagged,omitempty"`
}

// LeadTimePivot is the dense (month x sector) mean lead-time grid. Every
// sector appears for every month, zero-filled, because the chart axis is
// fixed.
type LeadTimePivot struct {
	Months  []string                  `json:"months"`
	Sectors []Sector                  `json:"sectors"`
	Cells   map[string]map[Sector]int `json:"cells"`
}

// WeekdayDistribution counts tickets per weekday for both channels, dense
// Monday through Sunday.
type WeekdayDistribution struct {
	Days     []string `json:"days"`
	Portal   []int    `json:"portal"`
	Telefone []int    `json:"telefone"`
}

// HourlyDistribution counts tickets per hour of day for both channels.
type HourlyDistribution struct {
	Portal   [24]int `json:"portal"`
	Telefone [24]int `json:"telefone"`
}

// ScoreHistogram is the satisfaction score distribution over buckets 0-10.
type ScoreHistogram struct {
	Counts      [11]int     `json:"counts"`
	Percentages [11]float64 `json:"percentages"`
	Total       int         `json:"total"`
}
