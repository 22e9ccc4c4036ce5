package store

import (
	"context"
	"time"
)

// TicketRecord is a raw ticket row as persisted, prior to any normalization.
// State and Group keep the source vocabulary; the aggregation layer maps them.
// Nil timestamps mean the source reported null, not epoch-zero.
type TicketRecord struct {
	SourceID    string
	Number      string
	CreatedAt   *time.Time
	CloseAt     *time.Time
	UpdatedAt   *time.Time
	ArticleType string
	State       string
	Group       string
}

// TicketFilter restricts count queries. All set fields are AND-conjoined.
// Groups and State match the raw source values, not the canonical taxonomy:
// backlog baselines are computed per raw queue name.
type TicketFilter struct {
	Groups          []string
	State           string
	CreatedOnBefore *time.Time
	CreatedOnAfter  *time.Time
	ClosedOnBefore  *time.Time
	ClosedOnAfter   *time.Time
}

// TicketStore is the persistence contract consumed by ingestion and the
// aggregation engines.
type TicketStore interface {
	// UpsertTickets merges a batch by ticket number: existing numbers are
	// replaced in place, new numbers inserted. Returns inserted and updated
	// row counts.
	UpsertTickets(ctx context.Context, records []TicketRecord) (inserted, updated int, err error)

	// CountTickets returns the number of stored tickets matching the filter.
	CountTickets(ctx context.Context, filter TicketFilter) (int, error)

	// RecentTickets returns tickets created or closed on/after the given
	// instant, the working snapshot for the aggregation engines.
	RecentTickets(ctx context.Context, since time.Time) ([]TicketRecord, error)
}
