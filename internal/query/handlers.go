package query

import (
	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/cgerrors"
	"github.com/agentic-research/codegraph/internal/store"
)

// Outline returns every symbol defined in filePath, ordered by start line.
func Outline(s *store.Store, filePath string) ([]api.SymbolRow, error) {
	fi, err := s.GetFileByPath(filePath)
	if err != nil {
		return nil, err
	}
	if fi == nil {
		return nil, cgerrors.Userf("file not indexed: %s", filePath)
	}
	symbols, err := s.SymbolsByFile(fi.ID)
	if err != nil {
		return nil, err
	}
	rows := make([]api.SymbolRow, len(symbols))
	for i, sym := range symbols {
		rows[i] = symbolRow(sym, fi.Path)
	}
	return rows, nil
}

// Refs returns every edge whose resolved target is named name — "who
// references this symbol" — optionally filtered by edge kind.
func Refs(s *store.Store, name, kindFilter string) ([]api.EdgeRow, error) {
	edges, err := s.EdgesByResolvedTargetName(name, kindFilter)
	if err != nil {
		return nil, err
	}
	fc := newFileCache(s)
	rows := make([]api.EdgeRow, len(edges))
	for i, e := range edges {
		rows[i] = edgeRow(s, fc, e)
	}
	return rows, nil
}

// Callees returns every call edge sourced from a symbol named name —
// "what does this symbol call".
func Callees(s *store.Store, name string) ([]api.EdgeRow, error) {
	edges, err := s.EdgesByKindAndSourceName(string(api.EdgeCalls), name)
	if err != nil {
		return nil, err
	}
	fc := newFileCache(s)
	rows := make([]api.EdgeRow, len(edges))
	for i, e := range edges {
		rows[i] = edgeRow(s, fc, e)
	}
	return rows, nil
}

// Deps returns every import edge originating in filePath.
func Deps(s *store.Store, filePath string) ([]api.EdgeRow, error) {
	fi, err := s.GetFileByPath(filePath)
	if err != nil {
		return nil, err
	}
	if fi == nil {
		return nil, cgerrors.Userf("file not indexed: %s", filePath)
	}
	edges, err := s.EdgesImportsByFile(fi.ID)
	if err != nil {
		return nil, err
	}
	fc := newFileCache(s)
	rows := make([]api.EdgeRow, len(edges))
	for i, e := range edges {
		rows[i] = edgeRow(s, fc, e)
	}
	return rows, nil
}

// Stats returns the store-wide summary.
func Stats(s *store.Store) (api.Stats, error) {
	return s.Stats()
}
