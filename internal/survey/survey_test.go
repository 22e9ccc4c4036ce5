package survey

import (
	"strings"
	"testing"
)

const sampleCSV = `"Carimbo","Qual a sua satisfação?","Comentário","Número do chamado"
"2024-01-10","8","ok","2024010001"
"2024-01-11","3","ruim","2024010002"
"2024-01-12","9","melhorou","2024010002"
"2024-01-13","dez","inválido","2024010003"
`

func TestParse(t *testing.T) {
	responses, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// The row with an unparseable score is skipped.
	if len(responses) != 3 {
		t.Fatalf("Expected 3 responses, got %d", len(responses))
	}

	if responses[0].Score != 8 || responses[0].TicketNumber != "2024010001" {
		t.Errorf("Unexpected first response: %+v", responses[0])
	}
}

func TestParseEmptyFeed(t *testing.T) {
	responses, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(responses) != 0 {
		t.Errorf("Expected no responses, got %d", len(responses))
	}
}

func TestDeduplicateKeepsLast(t *testing.T) {
	responses := []Response{
		{TicketNumber: "1", Score: 2},
		{TicketNumber: "2", Score: 5},
		{TicketNumber: "1", Score: 9},
	}

	deduped := Deduplicate(responses)

	if len(deduped) != 2 {
		t.Fatalf("Expected 2 responses, got %d", len(deduped))
	}

	for _, r := range deduped {
		if r.TicketNumber == "1" && r.Score != 9 {
			t.Errorf("Expected last submission for ticket 1, got score %d", r.Score)
		}
	}
}
