package metrics

import (
	"strings"

	"dsc-metrics/internal/survey"
)

// SatisfactionHistogram buckets survey scores into the 0-10 histogram.
// The feed is deduplicated by ticket number first, keeping the latest
// submission. When tickets is non-nil the feed is inner-joined against the
// ticket set by number; a nil ticket set means the unfiltered view.
//
// Both join sides are compared as trimmed strings: ticket numbers carry
// leading structure (year and sequence digits), so numeric coercion would
// silently drop matches.
func SatisfactionHistogram(responses []survey.Response, tickets []Ticket) ScoreHistogram {
	responses = survey.Deduplicate(responses)

	var known map[string]bool
	if tickets != nil {
		known = make(map[string]bool, len(tickets))
		for _, t := range tickets {
			known[canonicalNumber(t.Number)] = true
		}
	}

	var hist ScoreHistogram
	for _, r := range responses {
		if r.Score < 0 || r.Score > 10 {
			continue
		}
		if known != nil && !known[canonicalNumber(r.TicketNumber)] {
			continue
		}
		hist.Counts[r.Score]++
		hist.Total++
	}

	if hist.Total > 0 {
		for i, c := range hist.Counts {
			hist.Percentages[i] = float64(c) / float64(hist.Total) * 100
		}
	}

	return hist
}

func canonicalNumber(n string) string {
	return strings.TrimSpace(n)
}
