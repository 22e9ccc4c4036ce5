package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"dsc-metrics/internal/store"
	"dsc-metrics/internal/survey"
)

// SnapshotWindowDays is the trailing period loaded into the working snapshot.
// It covers the 4-month state window with a margin for month-length drift.
const SnapshotWindowDays = 120

// StateWindowMonths is the reporting window of the state aggregate.
const StateWindowMonths = 4

// Store is the slice of the ticket store the aggregation layer consumes.
type Store interface {
	CountTickets(ctx context.Context, filter store.TicketFilter) (int, error)
	RecentTickets(ctx context.Context, since time.Time) ([]store.TicketRecord, error)
}

// Report is the complete aggregate bundle for one sector, or for all tickets
// when Sector is empty. Satisfaction is nil when the survey feed was
// unavailable for the cycle; every other artifact is always present.
type Report struct {
	Sector        Sector              `json:"sector,omitempty"`
	States        StateSummary        `json:"states"`
	LeadTimes     LeadTimeResult      `json:"lead_times"`
	LeadTimeStd   *LeadTimePivot      `json:"lead_time_std,omitempty"`
	LeadTimeCampi *LeadTimePivot      `json:"lead_time_campi,omitempty"`
	Weekdays      WeekdayDistribution `json:"weekdays"`
	Hours         HourlyDistribution  `json:"hours"`
	Satisfaction  *ScoreHistogram     `json:"satisfaction,omitempty"`
	UnknownStates int                 `json:"unknown_states,omitempty"`
	UnknownGroups int                 `json:"unknown_groups,omitempty"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// LoadSnapshot reads the trailing ticket window from the store and
// normalizes it. The snapshot is shared by every per-sector pass of a cycle.
func LoadSnapshot(ctx context.Context, st Store, now time.Time) (Snapshot, error) {
	since := now.In(Recife).AddDate(0, 0, -SnapshotWindowDays)
	records, err := st.RecentTickets(ctx, since)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading ticket snapshot: %w", err)
	}

	snap := Normalize(records)
	if snap.UnknownStates > 0 || snap.UnknownGroups > 0 {
		log.Warn().
			Int("unknownStates", snap.UnknownStates).
			Int("unknownGroups", snap.UnknownGroups).
			Msg("Snapshot contains unmapped vocabulary values")
	}
	return snap, nil
}

// SectorBaseline runs the pre-window count queries seeding the backlog
// recurrence. The queries are scoped to the sector's raw queue names because
// the store keeps the unmapped group field; an empty sector means no group
// filter. A failure here is fatal to the cycle: defaulting the baseline to
// zero would corrupt every month of the window.
func SectorBaseline(ctx context.Context, st Store, sector Sector, cutoff time.Time) (Baseline, error) {
	var groups []string
	if sector != "" {
		groups = RawGroups(sector)
	}

	var base Baseline
	var err error

	if base.OpenedBefore, err = st.CountTickets(ctx, store.TicketFilter{
		Groups:          groups,
		CreatedOnBefore: &cutoff,
	}); err != nil {
		return Baseline{}, fmt.Errorf("counting pre-window opened tickets: %w", err)
	}

	if base.ClosedBefore, err = st.CountTickets(ctx, store.TicketFilter{
		Groups:         groups,
		ClosedOnBefore: &cutoff,
	}); err != nil {
		return Baseline{}, fmt.Errorf("counting pre-window closed tickets: %w", err)
	}

	if base.ClosedTotal, err = st.CountTickets(ctx, store.TicketFilter{
		Groups: groups,
		State:  RawStateClosed,
	}); err != nil {
		return Baseline{}, fmt.Errorf("counting all-time closed tickets: %w", err)
	}

	return base, nil
}

// BuildReport computes the aggregate bundle for one sector from a shared
// snapshot. The reporting instant is an explicit parameter so results are
// reproducible under a fixed clock. A nil responses slice marks the survey
// feed as unavailable; the satisfaction histogram is then omitted while the
// remaining aggregates still publish.
func BuildReport(ctx context.Context, st Store, snap Snapshot, responses []survey.Response, sector Sector, now time.Time) (*Report, error) {
	window := MonthWindow(now, StateWindowMonths)

	base, err := SectorBaseline(ctx, st, sector, BaselineCutoff(window))
	if err != nil {
		return nil, err
	}

	tickets := snap.BySector(sector)

	report := &Report{
		Sector:        sector,
		States:        AggregateStates(tickets, window, base),
		LeadTimes:     LeadTimes(tickets, now),
		Weekdays:      ByWeekday(tickets, now),
		Hours:         ByHour(tickets, now),
		UnknownStates: snap.UnknownStates,
		UnknownGroups: snap.UnknownGroups,
		GeneratedAt:   now,
	}

	if report.LeadTimes.Flagged > 0 {
		log.Warn().
			Str("sector", string(sector)).
			Int("flagged", report.LeadTimes.Flagged).
			Msg("Excluded tickets closed before creation from lead times")
	}

	// The sector breakdown pivots only make sense on the unfiltered view.
	if sector == "" {
		std := PivotLeadTimes(report.LeadTimes.Entries, StdSectors)
		campi := PivotLeadTimes(report.LeadTimes.Entries, CampusSectors)
		report.LeadTimeStd = &std
		report.LeadTimeCampi = &campi
	}

	if responses != nil {
		var joinSet []Ticket
		if sector != "" {
			joinSet = tickets
		}
		hist := SatisfactionHistogram(responses, joinSet)
		report.Satisfaction = &hist

		if hist.Total == 0 && len(responses) > 0 && len(tickets) > 0 && sector != "" {
			log.Warn().
				Str("sector", string(sector)).
				Msg("Satisfaction join produced zero matches; possible upstream schema change")
		}
	}

	return report, nil
}

// BuildAllReports runs the unfiltered view plus every sector over a single
// snapshot. The per-sector passes are pure and independent, so they fan out
// concurrently; ordering between sectors never affects results.
func BuildAllReports(ctx context.Context, st Store, src survey.Source, now time.Time) (map[Sector]*Report, error) {
	snap, err := LoadSnapshot(ctx, st, now)
	if err != nil {
		return nil, err
	}

	responses, err := src.Responses(ctx)
	if err != nil {
		// Degraded cycle: satisfaction histograms stay empty, everything
		// else still publishes.
		log.Warn().Err(err).Msg("Survey feed unavailable; skipping satisfaction histograms")
		responses = nil
	}

	sectors := append([]Sector{""}, AllSectors...)

	reports := make(map[Sector]*Report, len(sectors))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, sector := range sectors {
		sector := sector
		g.Go(func() error {
			report, err := BuildReport(gctx, st, snap, responses, sector, now)
			if err != nil {
				return fmt.Errorf("building report for %q: %w", sector, err)
			}
			mu.Lock()
			reports[sector] = report
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}
