package semantic

import "testing"

func TestVectorIndexSearchOrdersByCosineDistance(t *testing.T) {
	idx := NewVectorIndex()
	idx.Put(1, []float32{1, 0})
	idx.Put(2, []float32{0, 1})
	idx.Put(3, []float32{0.9, 0.1})

	hits := idx.Search([]float32{1, 0}, 2)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].SymbolID != 1 {
		t.Fatalf("expected symbol 1 (exact match) first, got %+v", hits)
	}
	if hits[1].SymbolID != 3 {
		t.Fatalf("expected symbol 3 (close match) second, got %+v", hits)
	}
}

func TestVectorIndexRemove(t *testing.T) {
	idx := NewVectorIndex()
	idx.Put(1, []float32{1, 0})
	if !idx.Has(1) {
		t.Fatalf("expected symbol 1 to be present")
	}
	idx.Remove(1)
	if idx.Has(1) {
		t.Fatalf("expected symbol 1 to be removed")
	}
	if idx.Len() != 0 {
		t.Fatalf("expected empty index, got len %d", idx.Len())
	}
}

func TestVectorIndexEmptyQuery(t *testing.T) {
	idx := NewVectorIndex()
	idx.Put(1, []float32{1, 0})
	if hits := idx.Search(nil, 5); hits != nil {
		t.Fatalf("expected nil hits for empty query, got %+v", hits)
	}
}
