package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"dsc-metrics/internal/store"
	"dsc-metrics/internal/zammad"
)

type fakeClient struct {
	tickets []zammad.TicketDTO
	err     error
}

func (f *fakeClient) AllTickets(context.Context) ([]zammad.TicketDTO, error) {
	return f.tickets, f.err
}

func (f *fakeClient) RecentTickets(context.Context, int) ([]zammad.TicketDTO, error) {
	return f.tickets, f.err
}

// fakeUpsertStore keys records by number, mimicking the upsert contract.
type fakeUpsertStore struct {
	byNumber map[string]store.TicketRecord
	err      error
}

func newFakeUpsertStore() *fakeUpsertStore {
	return &fakeUpsertStore{byNumber: make(map[string]store.TicketRecord)}
}

func (f *fakeUpsertStore) UpsertTickets(_ context.Context, records []store.TicketRecord) (int, int, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	inserted, updated := 0, 0
	for _, rec := range records {
		if _, exists := f.byNumber[rec.Number]; exists {
			updated++
		} else {
			inserted++
		}
		f.byNumber[rec.Number] = rec
	}
	return inserted, updated, nil
}

func dto(number, state string) zammad.TicketDTO {
	return zammad.TicketDTO{
		Number:    number,
		State:     state,
		Group:     "Triagem",
		CreatedAt: "2024-01-10T12:00:00.000Z",
	}
}

func TestRunIngestsBatch(t *testing.T) {
	client := &fakeClient{tickets: []zammad.TicketDTO{
		dto("1001", "open"),
		dto("1002", "closed"),
	}}
	st := newFakeUpsertStore()

	result, err := Run(context.Background(), client, st, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Fetched != 2 || result.Inserted != 2 || result.Updated != 0 {
		t.Errorf("Unexpected result: %+v", result)
	}
	if len(st.byNumber) != 2 {
		t.Errorf("Expected 2 stored tickets, got %d", len(st.byNumber))
	}
}

func TestRunIsIdempotentByNumber(t *testing.T) {
	client := &fakeClient{tickets: []zammad.TicketDTO{
		dto("1001", "open"),
		dto("1002", "open"),
	}}
	st := newFakeUpsertStore()

	if _, err := Run(context.Background(), client, st, Options{}); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	// Second batch overlaps: one updated ticket, one new.
	client.tickets = []zammad.TicketDTO{
		dto("1001", "closed"),
		dto("1003", "new"),
	}

	result, err := Run(context.Background(), client, st, Options{})
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if result.Inserted != 1 || result.Updated != 1 {
		t.Errorf("Expected 1 insert and 1 update, got %+v", result)
	}
	if len(st.byNumber) != 3 {
		t.Errorf("Expected 3 stored tickets with no duplicates, got %d", len(st.byNumber))
	}
	if st.byNumber["1001"].State != "closed" {
		t.Errorf("Expected ticket 1001 to reflect the latest batch, got state %q", st.byNumber["1001"].State)
	}
}

func TestRunSkipsMalformedRecords(t *testing.T) {
	client := &fakeClient{tickets: []zammad.TicketDTO{
		dto("1001", "open"),
		{ID: json.Number("42"), State: "open"}, // no number
	}}
	st := newFakeUpsertStore()

	result, err := Run(context.Background(), client, st, Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped record, got %d", result.Skipped)
	}
	if result.Inserted != 1 {
		t.Errorf("Expected the valid record to persist, got %d inserted", result.Inserted)
	}
}

func TestRunEmptyBatchIsNoOp(t *testing.T) {
	st := newFakeUpsertStore()

	result, err := Run(context.Background(), &fakeClient{}, st, Options{Days: 30})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Fetched != 0 || result.Inserted != 0 {
		t.Errorf("Expected a no-op, got %+v", result)
	}
}

func TestRunSurfacesFetchFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}

	if _, err := Run(context.Background(), client, newFakeUpsertStore(), Options{}); err == nil {
		t.Fatal("Expected fetch failure to surface")
	}
}
