package zammad

import (
	"encoding/json"
	"time"
)

// TicketDTO is the subset of a Zammad ticket payload the pipeline consumes.
// Timestamps arrive as ISO-8601 strings with millisecond precision and a Z
// suffix, or as JSON null (decoded to the empty string).
type TicketDTO struct {
	ID                json.Number `json:"id"`
	Number            string      `json:"number"`
	CreatedAt         string      `json:"created_at"`
	CloseAt           string      `json:"close_at"`
	UpdatedAt         string      `json:"updated_at"`
	CreateArticleType string      `json:"create_article_type"`
	State             string      `json:"state"`
	Group             string      `json:"group"`
}

// SearchResponse is the envelope returned by the ticket search endpoint.
type SearchResponse struct {
	TicketsCount int `json:"tickets_count"`
	Assets       struct {
		Ticket map[string]TicketDTO `json:"Ticket"`
	} `json:"assets"`
}

// ParseTime parses a Zammad timestamp. Zammad emits millisecond precision
// with a trailing Z, but older instances omit the fractional part.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05.000Z", s)
	if err != nil {
		return time.Parse(time.RFC3339, s)
	}
	return t, nil
}
