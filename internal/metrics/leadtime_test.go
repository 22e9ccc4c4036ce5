package metrics

import (
	"testing"
	"time"
)

func TestLeadTimesFiveDayScenario(t *testing.T) {
	now := time.Date(2024, time.January, 31, 12, 0, 0, 0, Recife)
	created := time.Date(2024, time.January, 2, 10, 0, 0, 0, Recife)
	closed := created.AddDate(0, 0, 5)

	tickets := []Ticket{
		{Number: "1", Sector: SectorSistemas, State: StateClosed, Created: &created, Closed: &closed},
	}

	result := LeadTimes(tickets, now)

	if len(result.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(result.Entries))
	}
	if result.Entries[0].Days != 5 {
		t.Errorf("Expected 5 days lead time, got %d", result.Entries[0].Days)
	}
	if result.Entries[0].Label != "Janeiro/24" {
		t.Errorf("Expected label Janeiro/24, got %q", result.Entries[0].Label)
	}

	if len(result.Monthly) != 1 || result.Monthly[0].Days != 5 {
		t.Errorf("Expected Janeiro/24 mean of 5 days, got %+v", result.Monthly)
	}
}

func TestLeadTimesSkipsOpenAndOutOfWindow(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, Recife)
	oldCreated := time.Date(2023, time.January, 1, 0, 0, 0, 0, Recife)
	oldClosed := oldCreated.AddDate(0, 0, 3)
	created := time.Date(2024, time.May, 1, 0, 0, 0, 0, Recife)

	tickets := []Ticket{
		{Number: "1", State: StateClosed, Created: &oldCreated, Closed: &oldClosed}, // outside 6 months
		{Number: "2", State: StateOpen, Created: &created},                          // not closed
		{Number: "3", State: StateClosed, Created: &created, Closed: nil},           // anomaly
	}

	result := LeadTimes(tickets, now)

	if len(result.Entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(result.Entries))
	}
}

func TestLeadTimesFlagsClockSkew(t *testing.T) {
	now := time.Date(2024, time.January, 31, 0, 0, 0, 0, Recife)
	created := time.Date(2024, time.January, 10, 0, 0, 0, 0, Recife)
	closed := created.AddDate(0, 0, -2)

	result := LeadTimes([]Ticket{
		{Number: "1", State: StateClosed, Created: &created, Closed: &closed},
	}, now)

	if result.Flagged != 1 {
		t.Errorf("Expected 1 flagged ticket, got %d", result.Flagged)
	}
	if len(result.Entries) != 0 {
		t.Error("Clock-skewed ticket must not produce a negative lead time entry")
	}
}

func TestPivotLeadTimesDenseGrid(t *testing.T) {
	jan := Month{Year: 2024, Month: time.January}
	feb := Month{Year: 2024, Month: time.February}

	entries := []LeadTimeEntry{
		{Number: "1", Sector: SectorSistemas, Month: jan, Label: jan.Label(), Days: 4},
		{Number: "2", Sector: SectorSistemas, Month: jan, Label: jan.Label(), Days: 6},
		{Number: "3", Sector: SectorConect, Month: feb, Label: feb.Label(), Days: 2},
	}

	pivot := PivotLeadTimes(entries, StdSectors)

	if len(pivot.Months) != 2 {
		t.Fatalf("Expected 2 months, got %d", len(pivot.Months))
	}

	// Every sector must be present for every month, zero-filled.
	for _, label := range pivot.Months {
		row := pivot.Cells[label]
		if len(row) != len(StdSectors) {
			t.Errorf("Month %s: expected %d sectors, got %d", label, len(StdSectors), len(row))
		}
	}

	if pivot.Cells["Janeiro/24"][SectorSistemas] != 5 {
		t.Errorf("Expected Sistemas mean of 5 in Janeiro/24, got %d", pivot.Cells["Janeiro/24"][SectorSistemas])
	}
	if pivot.Cells["Janeiro/24"][SectorConect] != 0 {
		t.Errorf("Expected zero fill for Conectividade in Janeiro/24, got %d", pivot.Cells["Janeiro/24"][SectorConect])
	}
	if pivot.Cells["Fevereiro/24"][SectorConect] != 2 {
		t.Errorf("Expected Conectividade mean of 2 in Fevereiro/24, got %d", pivot.Cells["Fevereiro/24"][SectorConect])
	}
}
