package query

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/store"
)

const DefaultImpactDepth = 3

// Impact performs a bounded, cycle-safe breadth-first reverse-edge walk
// from every symbol named name: layer 1 is everything that directly
// references it, layer 2 is everything that references layer 1, and so
// on up to maxDepth. A symbol is visited at most once (the first, and
// therefore shallowest, layer it is reached from wins), which is what
// keeps the walk terminating on a reference cycle.
//
// maxDepth == 0 is an explicit caller request for the seed rows only and
// returns an empty result (the seed symbols themselves never appear as
// rows). Callers resolve "depth not specified" to DefaultImpactDepth
// before calling Impact; a negative maxDepth is treated the same way,
// as a defensive fallback rather than a second way to request zero.
func Impact(s *store.Store, name string, maxDepth int) ([]api.ImpactRow, error) {
	if maxDepth == 0 {
		return nil, nil
	}
	if maxDepth < 0 {
		maxDepth = DefaultImpactDepth
	}
	seeds, err := s.SymbolsByName(name)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, nil
	}

	visited := roaring.New()
	frontier := make([]int64, 0, len(seeds))
	for _, sym := range seeds {
		visited.Add(uint32(sym.ID))
		frontier = append(frontier, sym.ID)
	}

	fc := newFileCache(s)
	var rows []api.ImpactRow
	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		edges, err := s.EdgesIntoSymbols(frontier)
		if err != nil {
			return nil, err
		}
		var next []int64
		for _, e := range edges {
			if e.SourceSymbolID == 0 || visited.Contains(uint32(e.SourceSymbolID)) {
				continue
			}
			visited.Add(uint32(e.SourceSymbolID))
			rows = append(rows, api.ImpactRow{EdgeRow: edgeRow(s, fc, e), Depth: depth})
			next = append(next, e.SourceSymbolID)
		}
		frontier = next
	}
	return rows, nil
}
