package metrics

import (
	"time"

	"dsc-metrics/internal/store"
)

// Normalize converts raw stored records into the normalized snapshot the
// aggregation engines consume: timestamps shifted to the reporting offset,
// state mapped through the display vocabulary, group mapped onto the sector
// taxonomy. Unrecognized states or groups become empty values rather than
// errors; their rate is reported so callers can watch for upstream vocabulary
// drift.
func Normalize(records []store.TicketRecord) Snapshot {
	snap := Snapshot{Tickets: make([]Ticket, 0, len(records))}

	for _, rec := range records {
		t := Ticket{
			Number:   rec.Number,
			SourceID: rec.SourceID,
			Created:  toRecife(rec.CreatedAt),
			Closed:   toRecife(rec.CloseAt),
			Updated:  toRecife(rec.UpdatedAt),
			RawGroup: rec.Group,
			Channel:  channelMap[rec.ArticleType],
		}

		if mapped, ok := stateMap[rec.State]; ok {
			t.State = mapped
		} else {
			snap.UnknownStates++
		}

		if sector, ok := groupToSector[rec.Group]; ok {
			t.Sector = sector
		} else {
			snap.UnknownGroups++
		}

		snap.Tickets = append(snap.Tickets, t)
	}

	return snap
}

func toRecife(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	shifted := t.In(Recife)
	return &shifted
}
