package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const upsertQuery = `
INSERT INTO tickets (number, source_id, created_at, close_at, updated_at, article_type, state, ticket_group)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (number) DO UPDATE SET
    source_id    = EXCLUDED.source_id,
    created_at   = EXCLUDED.created_at,
    close_at     = EXCLUDED.close_at,
    updated_at   = EXCLUDED.updated_at,
    article_type = EXCLUDED.article_type,
    state        = EXCLUDED.state,
    ticket_group = EXCLUDED.ticket_group
RETURNING (xmax = 0)`

// UpsertTickets merges a batch by number. The ON CONFLICT clause makes each
// row write atomic, so overlapping ingestion cycles converge to last-write-wins
// per number instead of duplicating.
func (p *Postgres) UpsertTickets(ctx context.Context, records []TicketRecord) (int, int, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(upsertQuery,
			rec.Number,
			rec.SourceID,
			rec.CreatedAt,
			rec.CloseAt,
			rec.UpdatedAt,
			rec.ArticleType,
			rec.State,
			rec.Group,
		)
	}

	results := p.pool.SendBatch(ctx, batch)
	defer results.Close()

	var inserted, updated int
	for range records {
		// xmax = 0 holds only for freshly inserted rows.
		var wasInsert bool
		if err := results.QueryRow().Scan(&wasInsert); err != nil {
			return inserted, updated, fmt.Errorf("upserting ticket batch: %w", err)
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}

	return inserted, updated, nil
}

// CountTickets counts stored tickets matching the filter.
func (p *Postgres) CountTickets(ctx context.Context, filter TicketFilter) (int, error) {
	query, args := buildCountQuery(filter)

	var count int
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting tickets: %w", err)
	}
	return count, nil
}

// RecentTickets returns tickets created or closed on/after since.
func (p *Postgres) RecentTickets(ctx context.Context, since time.Time) ([]TicketRecord, error) {
	const query = `
        SELECT number, source_id, created_at, close_at, updated_at, article_type, state, ticket_group
        FROM tickets
        WHERE created_at >= $1 OR close_at >= $1`

	rows, err := p.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("querying recent tickets: %w", err)
	}
	defer rows.Close()

	var records []TicketRecord
	for rows.Next() {
		var rec TicketRecord
		if err := rows.Scan(
			&rec.Number,
			&rec.SourceID,
			&rec.CreatedAt,
			&rec.CloseAt,
			&rec.UpdatedAt,
			&rec.ArticleType,
			&rec.State,
			&rec.Group,
		); err != nil {
			return nil, fmt.Errorf("scanning ticket row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading recent tickets: %w", err)
	}

	return records, nil
}

// buildCountQuery translates a TicketFilter into SQL. Kept separate from the
// pool so the translation is testable without a database.
func buildCountQuery(filter TicketFilter) (string, []any) {
	var clauses []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.Groups) > 0 {
		placeholders := make([]string, len(filter.Groups))
		for i, g := range filter.Groups {
			placeholders[i] = arg(g)
		}
		clauses = append(clauses, fmt.Sprintf("ticket_group IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.State != "" {
		clauses = append(clauses, fmt.Sprintf("state = %s", arg(filter.State)))
	}
	if filter.CreatedOnBefore != nil {
		clauses = append(clauses, fmt.Sprintf("created_at <= %s", arg(*filter.CreatedOnBefore)))
	}
	if filter.CreatedOnAfter != nil {
		clauses = append(clauses, fmt.Sprintf("created_at >= %s", arg(*filter.CreatedOnAfter)))
	}
	if filter.ClosedOnBefore != nil {
		clauses = append(clauses, fmt.Sprintf("close_at <= %s", arg(*filter.ClosedOnBefore)))
	}
	if filter.ClosedOnAfter != nil {
		clauses = append(clauses, fmt.Sprintf("close_at >= %s", arg(*filter.ClosedOnAfter)))
	}

	query := "SELECT COUNT(*) FROM tickets"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	return query, args
}
