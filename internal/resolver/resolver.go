// Package resolver links the unresolved textual edges a parser adapter
// emits (a call's bare target name, an import path, a superclass name)
// to the symbol they actually name. It generalizes the scope-tiered
// lookup in maraichr-codegraph's internal/resolver/resolver.go (FQN →
// file-local scope → project-wide short name → ambiguous-skip) from
// that resolver's UUID/Postgres symbol table into codegraph's
// SQLite-backed, scope-ranked variant: file, then directory, then a
// project-unique fallback, each tier breaking ties by kind rank and
// earliest start line rather than by confidence scoring.
package resolver

import (
	"path"
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/cgerrors"
	"github.com/agentic-research/codegraph/internal/store"
)

// ResolveAll links every currently-unresolved edge in the store to a
// symbol, where one can be determined unambiguously, and returns the
// number of edges newly resolved. It is idempotent and safe to call
// after every index run: already-resolved edges are never revisited
// (store.UnresolvedEdges only returns edges with a NULL target).
func ResolveAll(s *store.Store) (int, error) {
	edges, err := s.UnresolvedEdges()
	if err != nil {
		return 0, err
	}
	if len(edges) == 0 {
		return 0, nil
	}

	files, err := s.ListFiles()
	if err != nil {
		return 0, err
	}
	fileByID := make(map[int64]api.FileInfo, len(files))
	for _, f := range files {
		fileByID[f.ID] = f
	}

	dirFileCache := map[string]*roaring.Bitmap{}
	updates := make(map[int64]int64, len(edges))

	for _, e := range edges {
		fi, ok := fileByID[e.FileID]
		if !ok {
			continue
		}

		targetID, err := resolveOne(s, e, fi, dirFileCache)
		if err != nil {
			return 0, err
		}
		if targetID != 0 {
			updates[e.ID] = targetID
		}
	}

	if len(updates) == 0 {
		return 0, nil
	}
	if err := s.UpdateEdgeTargets(updates); err != nil {
		return 0, cgerrors.Store("persist resolved edges", err)
	}
	return len(updates), nil
}

// resolveOne runs the three-tier scope search for a single edge.
func resolveOne(s *store.Store, e api.Edge, fi api.FileInfo, dirFileCache map[string]*roaring.Bitmap) (int64, error) {
	// Tier 1: same file.
	candidates, err := s.SymbolsByNameInFile(e.FileID, e.TargetName)
	if err != nil {
		return 0, err
	}
	if best, ok := pickBest(candidates); ok {
		return best, nil
	}

	// Tier 2: same directory. Sibling file IDs are kept as a roaring
	// bitmap rather than a slice — a directory-scoped posting list that
	// stays cheap to build once per directory and to re-expand to []int64
	// for the DAO call, even as a project's fan-out grows.
	dirKey := path.Dir(fi.Path)
	bm, ok := dirFileCache[dirKey]
	if !ok {
		fileIDs, err := s.FilesInSameDirectory(fi.Path)
		if err != nil {
			return 0, err
		}
		bm = roaring.New()
		for _, id := range fileIDs {
			bm.Add(uint32(id))
		}
		dirFileCache[dirKey] = bm
	}
	if !bm.IsEmpty() {
		fileIDs := make([]int64, 0, bm.GetCardinality())
		it := bm.Iterator()
		for it.HasNext() {
			fileIDs = append(fileIDs, int64(it.Next()))
		}
		candidates, err = s.SymbolsByNameInFiles(fileIDs, e.TargetName)
		if err != nil {
			return 0, err
		}
		if best, ok := pickBest(candidates); ok {
			return best, nil
		}
	}

	// Tier 3: project-unique. Ambiguous project-wide matches are left
	// unresolved rather than guessed at — a later file may still narrow
	// the candidate set, and a wrong cross-file link is worse than none.
	candidates, err = s.SymbolsByName(e.TargetName)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 1 {
		return candidates[0].ID, nil
	}
	return 0, nil
}

// pickBest applies the kind-rank + earliest-start-line tie-break within
// a scope tier that already has at least one candidate. A single match
// returns immediately; multiple same-name matches in one scope (e.g. two
// overloaded methods) are disambiguated deterministically rather than
// left unresolved, since the scope itself already bounds the guess.
func pickBest(candidates []api.Symbol) (int64, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := api.KindRank(candidates[i].Kind), api.KindRank(candidates[j].Kind)
		if ri != rj {
			return ri < rj
		}
		return candidates[i].StartLine < candidates[j].StartLine
	})
	return candidates[0].ID, true
}
