package store

import (
	"encoding/binary"
	"math"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/cgerrors"
)

// FTSHit is one row of a full-text search over fts_symbols.content.
type FTSHit struct {
	SymbolID int64
	Score    float64 // bm25-derived; higher is better after negation (see SearchFTS)
}

// SearchFTS runs a tokenized full-text query over symbol content,
// returning the top-K hits descending by relevance (spec §4.6). SQLite's
// bm25() auxiliary function returns *lower-is-better* scores, so the
// sign is flipped here so a higher FTSHit.Score is a better match.
// internal/semantic uses only the order of the hits, not their scores.
func (s *Store) SearchFTS(query string, limit int) ([]FTSHit, error) {
	if query == "" || limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.Query(`
		SELECT symbol_id, bm25(fts_symbols) AS rank
		FROM fts_symbols
		WHERE fts_symbols MATCH ?
		ORDER BY rank
		LIMIT ?
	`, ftsQuery(query), limit)
	if err != nil {
		return nil, cgerrors.Store("search fts", err)
	}
	defer rows.Close()

	var out []FTSHit
	for rows.Next() {
		var h FTSHit
		if err := rows.Scan(&h.SymbolID, &h.Score); err != nil {
			return nil, cgerrors.Store("scan fts hit", err)
		}
		h.Score = -h.Score
		out = append(out, h)
	}
	return out, rows.Err()
}

// ftsQuery escapes a raw query string into an fts5 MATCH expression that
// treats the whole input as a phrase, so punctuation in symbol names
// (e.g. "a.b") doesn't trip the fts5 query-syntax parser.
func ftsQuery(q string) string {
	escaped := ""
	for _, r := range q {
		if r == '"' {
			escaped += `""`
		} else {
			escaped += string(r)
		}
	}
	return `"` + escaped + `"`
}

// UpsertEmbedding stores (or replaces) the embedding vector for a symbol.
func (s *Store) UpsertEmbedding(symbolID int64, vector []float32, sourceHash string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err := s.db.Exec(`
		INSERT INTO embeddings (symbol_id, vector, source_hash) VALUES (?, ?, ?)
		ON CONFLICT(symbol_id) DO UPDATE SET vector = excluded.vector, source_hash = excluded.source_hash
	`, symbolID, encodeVector(vector), sourceHash)
	if err != nil {
		return cgerrors.Store("upsert embedding", err)
	}
	return nil
}

// ClearEmbeddings deletes every stored embedding, so a subsequent
// EmbedPending treats every symbol as pending again — the `--force`
// rebuild path.
func (s *Store) ClearEmbeddings() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM embeddings`); err != nil {
		return cgerrors.Store("clear embeddings", err)
	}
	return nil
}

// AllEmbeddings loads every embedding record, used to populate the
// in-memory vector index at process start (spec §4.6's "resident" model).
func (s *Store) AllEmbeddings() ([]api.EmbeddingRecord, error) {
	rows, err := s.db.Query(`SELECT symbol_id, vector, source_hash FROM embeddings`)
	if err != nil {
		return nil, cgerrors.Store("list embeddings", err)
	}
	defer rows.Close()
	var out []api.EmbeddingRecord
	for rows.Next() {
		var rec api.EmbeddingRecord
		var blob []byte
		if err := rows.Scan(&rec.SymbolID, &blob, &rec.SourceHash); err != nil {
			return nil, cgerrors.Store("scan embedding", err)
		}
		rec.Vector = decodeVector(blob)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// PendingEmbeddingSymbols returns symbols with non-empty content whose
// embedding is missing or stale (source_hash != content_hash) — the
// pending set from spec §4.6's embedding pipeline.
func (s *Store) PendingEmbeddingSymbols() ([]api.Symbol, error) {
	return s.querySymbols(`
		SELECT ` + symbolColumns + `
		FROM symbols s
		WHERE s.content IS NOT NULL AND s.content != ''
		AND (
			NOT EXISTS (SELECT 1 FROM embeddings e WHERE e.symbol_id = s.id)
			OR EXISTS (SELECT 1 FROM embeddings e WHERE e.symbol_id = s.id AND e.source_hash != s.content_hash)
		)
	`)
}

// encodeVector packs a float32 slice as little-endian bytes — avoids a
// dependency on a vector SQLite extension (modernc.org/sqlite is
// pure-Go; loading a C extension would break that), per SPEC_FULL.md §4.2.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	n := len(buf) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}
