// Package query implements the eight read-only graph operations spec §4.5
// names (outline, search, refs, callees, impact, hierarchy, deps, stats).
// Every handler is a thin, allocation-light translation from store rows to
// the fixed api result shapes — no handler opens its own write transaction,
// matching the store's single-writer/many-readers design.
package query

import (
	"sort"
	"strings"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/store"
)

// fileCache memoizes FileByID lookups within one handler call — outline
// rows, search hits, and edge rows all resolve a file path from an ID,
// and a single query touches at most a handful of distinct files.
type fileCache struct {
	s     *store.Store
	paths map[int64]string
}

func newFileCache(s *store.Store) *fileCache {
	return &fileCache{s: s, paths: map[int64]string{}}
}

func (c *fileCache) pathOf(fileID int64) string {
	if p, ok := c.paths[fileID]; ok {
		return p
	}
	p := ""
	if fi, err := c.s.FileByID(fileID); err == nil && fi != nil {
		p = fi.Path
	}
	c.paths[fileID] = p
	return p
}

func symbolRow(sym api.Symbol, filePath string) api.SymbolRow {
	return api.SymbolRow{
		Kind:      sym.Kind,
		Name:      sym.Name,
		File:      filePath,
		StartLine: sym.StartLine,
		EndLine:   sym.EndLine,
		Signature: sym.Signature,
	}
}

// edgeRow converts a store edge to an api.EdgeRow, resolving the source
// symbol's name and (when resolved) the target symbol's qualified name.
// A module-level source (SourceSymbolID == 0) renders as the literal
// "(module)" placeholder spec §4.5 specifies for file-level edges.
func edgeRow(s *store.Store, fc *fileCache, e api.Edge) api.EdgeRow {
	row := api.EdgeRow{Kind: e.Kind, Line: e.Line, Target: e.TargetName, File: fc.pathOf(e.FileID)}
	if e.SourceSymbolID == 0 {
		row.Source = "(module)"
	} else if sym, err := s.SymbolByID(e.SourceSymbolID); err == nil && sym != nil {
		row.Source = sym.Name
	}
	if e.TargetSymbolID != 0 {
		if sym, err := s.SymbolByID(e.TargetSymbolID); err == nil && sym != nil && sym.QualifiedName != "" {
			row.Target = sym.QualifiedName
		}
	}
	return row
}

// matchTier ranks a candidate name against a query: 0 exact, 1 prefix, 2
// substring — used to re-rank SearchSymbols' overfetched LIKE results
// into the tiered ordering search() promises (spec §4.5).
func matchTier(name, query string) int {
	ln, lq := strings.ToLower(name), strings.ToLower(query)
	switch {
	case ln == lq:
		return 0
	case strings.HasPrefix(ln, lq):
		return 1
	default:
		return 2
	}
}

func sortSymbolCandidates(candidates []api.Symbol, query string) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := matchTier(candidates[i].Name, query), matchTier(candidates[j].Name, query)
		if ti != tj {
			return ti < tj
		}
		ri, rj := api.KindRank(candidates[i].Kind), api.KindRank(candidates[j].Kind)
		if ri != rj {
			return ri < rj
		}
		return candidates[i].StartLine < candidates[j].StartLine
	})
}
