package semantic

import (
	"context"
	"log"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/store"
)

// BatchSize is the embedding pipeline's chunk size — spec §4.6 leaves
// this implementation-chosen within 16-32; 32 keeps the hashing
// embedder's per-chunk overhead negligible without holding too many
// pending rows in memory at once.
const BatchSize = 32

// EmbedPending embeds every symbol in the pending set (missing or stale
// embedding) using model, writes each chunk in one store transaction,
// and mirrors the result into idx so a live process's vector index stays
// consistent with the database. A failed model call (or a vector count
// that does not match the chunk) skips every symbol in that chunk and
// logs a warning; a failed store write skips only that symbol. Either
// way the pass continues with the remaining symbols.
func EmbedPending(ctx context.Context, s *store.Store, model EmbeddingModel, idx *VectorIndex) (int, error) {
	pending, err := s.PendingEmbeddingSymbols()
	if err != nil {
		return 0, err
	}

	embedded := 0
	for start := 0; start < len(pending); start += BatchSize {
		end := start + BatchSize
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[start:end]

		texts := make([]string, len(chunk))
		for i, sym := range chunk {
			texts[i] = embeddingInput(sym)
		}
		vectors, err := model.Embed(ctx, texts)
		if err != nil {
			log.Printf("semantic: embedding batch failed, skipping %d symbols: %v", len(chunk), err)
			continue
		}
		if len(vectors) != len(chunk) {
			log.Printf("semantic: embedding batch returned %d vectors for %d symbols, skipping", len(vectors), len(chunk))
			continue
		}

		for i, sym := range chunk {
			if err := s.UpsertEmbedding(sym.ID, vectors[i], sym.ContentHash); err != nil {
				log.Printf("semantic: failed to store embedding for symbol %d: %v", sym.ID, err)
				continue
			}
			if idx != nil {
				idx.Put(sym.ID, vectors[i])
			}
			embedded++
		}
	}
	return embedded, nil
}

// ForceEmbedAll re-embeds every symbol with content regardless of
// source_hash staleness — the explicit-rebuild semantics of `rag index
// --force`, mirroring `index --force`'s full re-parse.
func ForceEmbedAll(ctx context.Context, s *store.Store, model EmbeddingModel, idx *VectorIndex) (int, error) {
	if err := s.ClearEmbeddings(); err != nil {
		return 0, err
	}
	return EmbedPending(ctx, s, model, idx)
}

// embeddingInput builds the text fed to the embedding model: qualified
// name plus signature plus content gives the hashing embedder the most
// distinguishing tokens for a short symbol.
func embeddingInput(sym api.Symbol) string {
	name := sym.QualifiedName
	if name == "" {
		name = sym.Name
	}
	if sym.Signature != "" {
		name += " " + sym.Signature
	}
	if sym.Content != "" {
		return name + "\n" + sym.Content
	}
	return name
}
