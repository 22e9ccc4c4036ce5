package survey

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Response is one satisfaction survey submission.
type Response struct {
	TicketNumber string
	Score        int
}

// Config identifies the published spreadsheet holding the survey export.
type Config struct {
	SheetID   string
	SheetName string
}

// Source fetches the satisfaction survey feed.
type Source interface {
	Responses(ctx context.Context) ([]Response, error)
}

type sheetSource struct {
	cfg  Config
	http *http.Client
}

// NewSource creates a Source reading the Google Sheets CSV export.
func NewSource(cfg Config) Source {
	return &sheetSource{
		cfg: cfg,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *sheetSource) Responses(ctx context.Context) ([]Response, error) {
	url := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s",
		s.cfg.SheetID, s.cfg.SheetName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching survey feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("survey feed returned status %d", resp.StatusCode)
	}

	responses, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("count", len(responses)).Msg("Fetched survey responses")
	return responses, nil
}

// Parse reads the CSV survey export. Column 1 holds the 0-10 score and the
// last column the ticket number as text; the first row is a header. Rows with
// an unparseable score are skipped with a warning.
func Parse(r io.Reader) ([]Response, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing survey csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var responses []Response
	for i, row := range rows[1:] {
		if len(row) < 2 {
			log.Warn().Int("row", i+2).Msg("Survey row too short, skipping")
			continue
		}

		score, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil || score < 0 || score > 10 {
			log.Warn().Int("row", i+2).Str("value", row[1]).Msg("Survey row has invalid score, skipping")
			continue
		}

		responses = append(responses, Response{
			TicketNumber: strings.TrimSpace(row[len(row)-1]),
			Score:        score,
		})
	}

	return responses, nil
}

// Deduplicate keeps only the last submission per ticket number, preserving
// the order of last occurrence.
func Deduplicate(responses []Response) []Response {
	last := make(map[string]int, len(responses))
	for i, r := range responses {
		last[r.TicketNumber] = i
	}

	out := make([]Response, 0, len(last))
	for i, r := range responses {
		if last[r.TicketNumber] == i {
			out = append(out, r)
		}
	}
	return out
}
