package metrics

import "testing"

func TestSectorPartitionIsComplete(t *testing.T) {
	seen := make(map[string]Sector)

	for _, sector := range AllSectors {
		for _, g := range RawGroups(sector) {
			if prev, dup := seen[g]; dup {
				t.Errorf("Raw group %q maps to both %q and %q", g, prev, sector)
			}
			seen[g] = sector
		}
	}

	for _, g := range rawGroupOrder {
		if _, ok := seen[g]; !ok {
			t.Errorf("Raw group %q belongs to no sector", g)
		}
	}
	if len(seen) != len(rawGroupOrder) {
		t.Errorf("Expected %d raw groups partitioned, got %d", len(rawGroupOrder), len(seen))
	}
}

func TestSectorForUnknownGroup(t *testing.T) {
	if _, ok := SectorFor("Fila Desconhecida"); ok {
		t.Error("Unknown raw group must not map to a sector")
	}
}

func TestSistemasAggregatesSixQueues(t *testing.T) {
	groups := RawGroups(SectorSistemas)
	if len(groups) != 6 {
		t.Fatalf("Expected 6 raw queues for Sistemas, got %d: %v", len(groups), groups)
	}
}

func TestSuporteMapsFromTriagem(t *testing.T) {
	groups := RawGroups(SectorSuporte)
	if len(groups) != 1 || groups[0] != "Triagem" {
		t.Errorf("Expected Suporte ao Usuário to own only Triagem, got %v", groups)
	}
}
