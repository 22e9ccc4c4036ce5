package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"dsc-metrics/internal/store"
	"dsc-metrics/internal/zammad"
)

// Options controls an ingestion cycle. Days zero means a full sync of the
// whole ticket listing; otherwise only tickets touched within the trailing
// number of days are fetched.
type Options struct {
	Days int
}

// Result summarizes one ingestion cycle.
type Result struct {
	Fetched  int
	Skipped  int
	Inserted int
	Updated  int
}

// Store is the slice of the ticket store ingestion needs.
type Store interface {
	UpsertTickets(ctx context.Context, records []store.TicketRecord) (inserted, updated int, err error)
}

// Run executes one ingestion cycle: fetch, map, upsert. Malformed records
// are skipped with a warning rather than aborting the batch. Connectivity
// failures surface to the caller; the next scheduled trigger retries with a
// fresh cycle.
func Run(ctx context.Context, client zammad.Client, st Store, opts Options) (Result, error) {
	var dtos []zammad.TicketDTO
	var err error

	if opts.Days > 0 {
		dtos, err = client.RecentTickets(ctx, opts.Days)
	} else {
		dtos, err = client.AllTickets(ctx)
	}
	if err != nil {
		return Result{}, fmt.Errorf("fetching tickets: %w", err)
	}

	result := Result{Fetched: len(dtos)}

	records := make([]store.TicketRecord, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := zammad.MapTicket(dto)
		if err != nil {
			log.Warn().Err(err).Msg("Skipping malformed ticket record")
			result.Skipped++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		log.Info().Msg("No ticket records to persist")
		return result, nil
	}

	result.Inserted, result.Updated, err = st.UpsertTickets(ctx, records)
	if err != nil {
		return result, fmt.Errorf("persisting tickets: %w", err)
	}

	log.Info().
		Int("fetched", result.Fetched).
		Int("skipped", result.Skipped).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Msg("Ingestion cycle finished")

	return result, nil
}
