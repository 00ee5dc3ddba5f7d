package semantic

import (
	"context"
	"testing"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/store"
)

func seedSymbolStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	fileID, err := s.UpsertFile("pkg/file.go", "go", "h1", 10, 1)
	if err != nil {
		t.Fatalf("upsert file: %v", err)
	}
	err = s.ReplaceFileRows(fileID, api.ParseResult{
		Symbols: []api.ParsedSymbol{
			{Name: "ParseFile", QualifiedName: "ParseFile", Kind: api.KindFunction, StartLine: 1, EndLine: 3, ParentIndex: -1, Content: "func ParseFile(path string) error { return nil }"},
			{Name: "Config", QualifiedName: "Config", Kind: api.KindStruct, StartLine: 5, EndLine: 7, ParentIndex: -1, Content: "type Config struct{ Path string }"},
		},
	})
	if err != nil {
		t.Fatalf("replace file rows: %v", err)
	}
	return s
}

func TestEmbedPendingEmbedsAllAndPopulatesIndex(t *testing.T) {
	s := seedSymbolStore(t)
	idx := NewVectorIndex()
	embedder := NewHashingEmbedder(64)

	n, err := EmbedPending(context.Background(), s, embedder, idx)
	if err != nil {
		t.Fatalf("embed pending: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 symbols embedded, got %d", n)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected vector index to hold 2 entries, got %d", idx.Len())
	}

	pending, err := s.PendingEmbeddingSymbols()
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending symbols after embedding, got %d", len(pending))
	}
}

func TestForceEmbedAllReembedsEverything(t *testing.T) {
	s := seedSymbolStore(t)
	idx := NewVectorIndex()
	embedder := NewHashingEmbedder(64)

	if _, err := EmbedPending(context.Background(), s, embedder, idx); err != nil {
		t.Fatalf("embed pending: %v", err)
	}
	n, err := ForceEmbedAll(context.Background(), s, embedder, idx)
	if err != nil {
		t.Fatalf("force embed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 symbols re-embedded, got %d", n)
	}
}
