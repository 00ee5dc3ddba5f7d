package semantic

import (
	"context"
	"testing"
)

func TestHashingEmbedderDeterministic(t *testing.T) {
	e := NewHashingEmbedder(64)
	a, err := e.Embed(context.Background(), []string{"func ParseFile(path string) error"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	b, err := e.Embed(context.Background(), []string{"func ParseFile(path string) error"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatalf("expected deterministic embedding, differed at index %d", i)
		}
	}
}

func TestHashingEmbedderSimilarTextCloser(t *testing.T) {
	e := NewHashingEmbedder(128)
	texts := []string{
		"func ParseFile(path string) error",
		"func ParseFile(path string) (error)",
		"type HTTPServer struct{ addr string }",
	}
	vecs, err := e.Embed(context.Background(), texts)
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	dSimilar := cosineDistance(vecs[0], vecs[1])
	dDifferent := cosineDistance(vecs[0], vecs[2])
	if dSimilar >= dDifferent {
		t.Fatalf("expected near-identical signatures to be closer than an unrelated type: %.4f vs %.4f", dSimilar, dDifferent)
	}
}

func TestHashingEmbedderDimension(t *testing.T) {
	e := NewHashingEmbedder(32)
	if e.Dim() != 32 {
		t.Fatalf("expected dim 32, got %d", e.Dim())
	}
	vecs, _ := e.Embed(context.Background(), []string{"x"})
	if len(vecs[0]) != 32 {
		t.Fatalf("expected vector length 32, got %d", len(vecs[0]))
	}
}
