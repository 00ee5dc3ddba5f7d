package semantic

import (
	"context"
	"testing"
)

func TestLexicalOverlapRerankerRanksExactMatchHighest(t *testing.T) {
	r := LexicalOverlapReranker{}
	scores, err := r.Rerank(context.Background(), "parse file path", []string{
		"func ParseFile(path string) error",
		"type Config struct{}",
	})
	if err != nil {
		t.Fatalf("rerank: %v", err)
	}
	if scores[0] <= scores[1] {
		t.Fatalf("expected the overlapping doc to score higher: %+v", scores)
	}
}

func TestLexicalOverlapRerankerEmptyQuery(t *testing.T) {
	r := LexicalOverlapReranker{}
	scores, err := r.Rerank(context.Background(), "", []string{"anything"})
	if err != nil {
		t.Fatalf("rerank: %v", err)
	}
	if scores[0] != 0 {
		t.Fatalf("expected zero score for empty query, got %v", scores[0])
	}
}
