package semantic

import (
	"context"
	"testing"
)

func TestSearcherFTSOnlyDegradation(t *testing.T) {
	s := seedSymbolStore(t)
	sr := &Searcher{Store: s}

	hits, err := sr.Search(context.Background(), "ParseFile", "", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatalf("expected at least one hit in FTS-only mode")
	}
	if hits[0].Symbol.Name != "ParseFile" {
		t.Fatalf("expected ParseFile to rank first, got %+v", hits[0])
	}
	if hits[0].RerankScore != nil {
		t.Fatalf("expected no rerank score without a reranker, got %v", hits[0].RerankScore)
	}
}

func TestSearcherFullHybrid(t *testing.T) {
	s := seedSymbolStore(t)
	idx := NewVectorIndex()
	embedder := NewHashingEmbedder(64)
	if _, err := EmbedPending(context.Background(), s, embedder, idx); err != nil {
		t.Fatalf("embed pending: %v", err)
	}

	sr := &Searcher{Store: s, Index: idx, Model: embedder, Reranker: LexicalOverlapReranker{}}
	hits, err := sr.Search(context.Background(), "parse file", "", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatalf("expected at least one hit in hybrid mode")
	}
	if hits[0].RerankScore == nil {
		t.Fatalf("expected a rerank score in full hybrid mode")
	}
}

func TestSearcherKindFilter(t *testing.T) {
	s := seedSymbolStore(t)
	sr := &Searcher{Store: s}

	hits, err := sr.Search(context.Background(), "Config", "struct", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, h := range hits {
		if string(h.Symbol.Kind) != "struct" {
			t.Fatalf("expected only struct kind, got %+v", h)
		}
	}
}
