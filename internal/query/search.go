package query

import (
	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/store"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// Search implements the lexical variant of search(): tiered LIKE
// matching (exact, prefix, substring), re-ranked by kind and earliest
// start line, optionally filtered by kind and file.
//
// limit == 0 is an explicit request for nothing and returns an empty
// list; callers resolve "limit not specified" to a negative value (or
// any value <0) before calling Search, which is the only case that
// substitutes defaultSearchLimit.
func Search(s *store.Store, queryStr, kindFilter, fileFilter string, limit int) ([]api.SymbolRow, error) {
	if limit == 0 {
		return nil, nil
	}
	if limit < 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	candidates, err := s.SearchSymbols(queryStr, kindFilter, fileFilter, limit)
	if err != nil {
		return nil, err
	}
	sortSymbolCandidates(candidates, queryStr)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	fc := newFileCache(s)
	rows := make([]api.SymbolRow, len(candidates))
	for i, sym := range candidates {
		rows[i] = symbolRow(sym, fc.pathOf(sym.FileID))
	}
	return rows, nil
}
