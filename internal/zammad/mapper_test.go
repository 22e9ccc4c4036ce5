package zammad

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMapTicket(t *testing.T) {
	dto := TicketDTO{
		ID:                json.Number("42"),
		Number:            "2024010042",
		CreatedAt:         "2024-01-10T12:30:45.000Z",
		CloseAt:           "",
		UpdatedAt:         "2024-01-11T08:00:00.000Z",
		CreateArticleType: "email",
		State:             "open",
		Group:             "Triagem",
	}

	rec, err := MapTicket(dto)
	if err != nil {
		t.Fatalf("MapTicket failed: %v", err)
	}

	if rec.Number != "2024010042" {
		t.Errorf("Expected number 2024010042, got %q", rec.Number)
	}
	want := time.Date(2024, time.January, 10, 12, 30, 45, 0, time.UTC)
	if rec.CreatedAt == nil || !rec.CreatedAt.Equal(want) {
		t.Errorf("Expected created_at %v, got %v", want, rec.CreatedAt)
	}

	// Absent close_at must be an explicit nil, never epoch-zero.
	if rec.CloseAt != nil {
		t.Errorf("Expected nil close_at, got %v", rec.CloseAt)
	}
}

func TestMapTicketRejectsMissingNumber(t *testing.T) {
	if _, err := MapTicket(TicketDTO{ID: json.Number("7"), State: "open"}); err == nil {
		t.Fatal("Expected a ticket without number to be rejected")
	}
}

func TestMapTicketRejectsBadTimestamp(t *testing.T) {
	dto := TicketDTO{Number: "1", CreatedAt: "10/01/2024 12:00"}
	if _, err := MapTicket(dto); err == nil {
		t.Fatal("Expected an unparseable timestamp to be rejected")
	}
}

func TestParseTimeFallsBackToRFC3339(t *testing.T) {
	got, err := ParseTime("2024-01-10T12:30:45Z")
	if err != nil {
		t.Fatalf("ParseTime failed: %v", err)
	}
	if got.Minute() != 30 {
		t.Errorf("Unexpected parse result: %v", got)
	}
}
