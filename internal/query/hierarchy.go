package query

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/store"
)

// Hierarchy returns the full transitive closure of `inherits` edges
// touching any symbol named name — ancestors (what it extends/implements)
// and descendants (what extends/implements it) alike. The walk visits
// each symbol at most once, so an inherits cycle (legal in some
// dynamic languages, if unusual) terminates instead of looping.
func Hierarchy(s *store.Store, name string) ([]api.HierarchyPair, error) {
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

	seenPair := map[[2]int64]bool{}
	var pairs []api.HierarchyPair
	for len(frontier) > 0 {
		edges, err := s.EdgesInheritsTouching(frontier)
		if err != nil {
			return nil, err
		}
		var next []int64
		for _, e := range edges {
			if e.SourceSymbolID == 0 || e.TargetSymbolID == 0 {
				continue
			}
			key := [2]int64{e.SourceSymbolID, e.TargetSymbolID}
			if !seenPair[key] {
				seenPair[key] = true
				child, errC := s.SymbolByID(e.SourceSymbolID)
				parent, errP := s.SymbolByID(e.TargetSymbolID)
				if errC == nil && errP == nil && child != nil && parent != nil {
					pairs = append(pairs, api.HierarchyPair{Child: qualifiedOrName(*child), Parent: qualifiedOrName(*parent)})
				}
			}
			if !visited.Contains(uint32(e.SourceSymbolID)) {
				visited.Add(uint32(e.SourceSymbolID))
				next = append(next, e.SourceSymbolID)
			}
			if !visited.Contains(uint32(e.TargetSymbolID)) {
				visited.Add(uint32(e.TargetSymbolID))
				next = append(next, e.TargetSymbolID)
			}
		}
		frontier = next
	}
	return pairs, nil
}

func qualifiedOrName(sym api.Symbol) string {
	if sym.QualifiedName != "" {
		return sym.QualifiedName
	}
	return sym.Name
}
