package semantic

import "testing"

func TestReciprocalRankFuseAgreementWins(t *testing.T) {
	fts := []int64{1, 2, 3}
	vec := []int64{2, 1, 4}

	hits := ReciprocalRankFuse(fts, vec)
	if len(hits) != 4 {
		t.Fatalf("expected 4 fused symbols, got %d", len(hits))
	}
	// 1 and 2 appear in both lists near the top; either order is fine
	// between them, but both must outrank 3 and 4, which each appear
	// in only one list.
	top := map[int64]bool{hits[0].SymbolID: true, hits[1].SymbolID: true}
	if !top[1] || !top[2] {
		t.Fatalf("expected symbols 1 and 2 to rank first, got %+v", hits)
	}
}

func TestReciprocalRankFuseDeterministic(t *testing.T) {
	a := ReciprocalRankFuse([]int64{5, 2, 9}, []int64{2, 9, 5})
	b := ReciprocalRankFuse([]int64{5, 2, 9}, []int64{2, 9, 5})
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("fusion not deterministic at index %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestReciprocalRankFuseSingleListSurvives(t *testing.T) {
	hits := ReciprocalRankFuse([]int64{7})
	if len(hits) != 1 || hits[0].SymbolID != 7 {
		t.Fatalf("expected symbol 7 to survive fusion from a single list, got %+v", hits)
	}
}
