package zammad

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const pageSize = 100

// Config holds the authentication and connection settings for Zammad.
type Config struct {
	BaseURL  string
	Email    string
	Password string
	Token    string

	// Delay between consecutive page requests.
	RequestDelay time.Duration
}

// Client is the interface for fetching tickets from Zammad.
type Client interface {
	// AllTickets walks the paginated ticket listing until an empty page.
	AllTickets(ctx context.Context) ([]TicketDTO, error)
	// RecentTickets returns tickets created, updated or closed within the
	// trailing number of days, fetched individually via the search endpoint.
	RecentTickets(ctx context.Context, days int) ([]TicketDTO, error)
}

type httpClient struct {
	cfg         Config
	http        *http.Client
	lastRequest time.Time
}

// NewClient creates a new Zammad client based on the provided configuration.
func NewClient(cfg Config) Client {
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

func (c *httpClient) throttle() {
	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling Zammad request")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (c *httpClient) get(ctx context.Context, rawURL string, out any) error {
	c.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	if c.cfg.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Token token=%s", c.cfg.Token))
	} else {
		req.SetBasicAuth(c.cfg.Email, c.cfg.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("zammad authentication failed (%d): check ZAMMAD_EMAIL/ZAMMAD_PASSWORD or ZAMMAD_TOKEN", resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("zammad returned status %d: %s", resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *httpClient) AllTickets(ctx context.Context) ([]TicketDTO, error) {
	var tickets []TicketDTO

	log.Info().Msg("Fetching full ticket listing from Zammad")
	for page := 1; ; page++ {
		listURL := fmt.Sprintf("%s/api/v1/tickets?expand=true&page=%d&per_page=%d", c.cfg.BaseURL, page, pageSize)

		var batch []TicketDTO
		if err := c.get(ctx, listURL, &batch); err != nil {
			return nil, fmt.Errorf("fetching ticket page %d: %w", page, err)
		}

		// Pagination terminates on the first empty page.
		if len(batch) == 0 {
			break
		}

		tickets = append(tickets, batch...)
		log.Debug().Int("page", page).Int("total", len(tickets)).Msg("Fetched ticket page")
	}
	log.Info().Int("count", len(tickets)).Msg("Finished fetching ticket listing")

	return tickets, nil
}

func (c *httpClient) RecentTickets(ctx context.Context, days int) ([]TicketDTO, error) {
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	query := fmt.Sprintf("created_at:>%s OR updated_at:>%s OR close_at:>%s", since, since, since)

	var tickets []TicketDTO

	log.Info().Int("days", days).Msg("Fetching recent tickets from Zammad")
	for page := 1; ; page++ {
		searchURL := fmt.Sprintf("%s/api/v1/tickets/search?query=%s&expand=true&page=%d&per_page=200",
			c.cfg.BaseURL, url.QueryEscape(query), page)

		var result SearchResponse
		if err := c.get(ctx, searchURL, &result); err != nil {
			return nil, fmt.Errorf("searching tickets page %d: %w", page, err)
		}

		if result.TicketsCount == 0 || len(result.Assets.Ticket) == 0 {
			break
		}

		// The search response carries ticket ids only in asset keys; each
		// ticket is fetched individually to get the expanded fields.
		for id := range result.Assets.Ticket {
			ticketURL := fmt.Sprintf("%s/api/v1/tickets/%s?expand=true", c.cfg.BaseURL, id)

			var dto TicketDTO
			if err := c.get(ctx, ticketURL, &dto); err != nil {
				log.Warn().Err(err).Str("id", id).Msg("Failed to fetch ticket by id, skipping")
				continue
			}
			tickets = append(tickets, dto)
		}

		log.Debug().Int("page", page).Int("total", len(tickets)).Msg("Fetched search page")
	}
	log.Info().Int("count", len(tickets)).Msg("Finished fetching recent tickets")

	return tickets, nil
}
