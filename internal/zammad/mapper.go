package zammad

import (
	"fmt"
	"strings"
	"time"

	"dsc-metrics/internal/store"
)

// MapTicket transforms a Zammad DTO into a raw ticket record ready for the
// store. Absent timestamps stay nil, never zero-time. A ticket without a
// number cannot be reconciled and is rejected.
func MapTicket(dto TicketDTO) (store.TicketRecord, error) {
	number := strings.TrimSpace(dto.Number)
	if number == "" {
		return store.TicketRecord{}, fmt.Errorf("ticket %s has no number", dto.ID.String())
	}

	rec := store.TicketRecord{
		SourceID:    dto.ID.String(),
		Number:      number,
		ArticleType: dto.CreateArticleType,
		State:       dto.State,
		Group:       dto.Group,
	}

	var err error
	if rec.CreatedAt, err = parseOptional(dto.CreatedAt); err != nil {
		return store.TicketRecord{}, fmt.Errorf("ticket %s: bad created_at %q: %w", number, dto.CreatedAt, err)
	}
	if rec.CloseAt, err = parseOptional(dto.CloseAt); err != nil {
		return store.TicketRecord{}, fmt.Errorf("ticket %s: bad close_at %q: %w", number, dto.CloseAt, err)
	}
	if rec.UpdatedAt, err = parseOptional(dto.UpdatedAt); err != nil {
		return store.TicketRecord{}, fmt.Errorf("ticket %s: bad updated_at %q: %w", number, dto.UpdatedAt, err)
	}

	return rec, nil
}

func parseOptional(s string) (*time.Time, error) {
	if s == "" || s == "null" {
		return nil, nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
