// Package indexer is the orchestrator: it walks a project tree, decides
// which files need (re)parsing via content hash (spec's I5 invariant —
// a file is re-parsed only when its bytes change), drives the parser and
// store, and triggers edge resolution once every changed file has been
// ingested. It generalizes the teacher's internal/ingest.Engine.Ingest
// directory walk (filepath.Walk with a skip-list and a binary-content
// heuristic) from mache's generic node-graph ingestion into codegraph's
// file/symbol/edge model.
package indexer

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/cgerrors"
	"github.com/agentic-research/codegraph/internal/parser"
	"github.com/agentic-research/codegraph/internal/resolver"
	"github.com/agentic-research/codegraph/internal/store"
)

// Report summarizes one Index run, surfaced by `codegraph index` and the
// `index` RPC tool.
type Report struct {
	FilesScanned  int
	FilesIndexed  int
	FilesSkipped  int // unchanged content hash
	FilesDeleted  int // removed from the tree since the last run
	EdgesResolved int
	DurationMS    int64
}

// Indexer drives one project's worth of extraction and persistence.
type Indexer struct {
	Store *store.Store
	Root  string
}

func New(s *store.Store, root string) *Indexer {
	return &Indexer{Store: s, Root: root}
}

// Index performs a full reindex of Root: every file under it is walked,
// unsupported/binary files are skipped, unchanged files are skipped by
// content hash, and changed files are reparsed and written. Edge
// resolution runs once at the end so cross-file references see the
// fully updated symbol table. Index is equivalent to IndexRoot(false).
func (ix *Indexer) Index() (Report, error) {
	return ix.IndexRoot(false)
}

// IndexRoot is Index with force control: force=true bypasses the
// content-hash skip (spec §4.4 step 2's "no --force flag is set"
// clause) and reparses every file regardless of whether it changed.
func (ix *Indexer) IndexRoot(force bool) (Report, error) {
	start := nowMS()
	var rep Report

	seen := map[string]bool{}

	err := Walk(ix.Root, func(absPath string) error {
		relPath, err := filepath.Rel(ix.Root, absPath)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		lang, ok := parser.DetectLanguage(filepath.Ext(relPath))
		if !ok {
			return nil
		}
		rep.FilesScanned++
		seen[relPath] = true

		if isBinary(absPath) {
			return nil
		}
		content, err := os.ReadFile(absPath)
		if err != nil {
			return nil // file vanished mid-walk; next run will reconcile
		}

		changed, fileID, err := ix.upsertIfChanged(relPath, lang, content)
		if err != nil {
			return err
		}
		if !changed && !force {
			rep.FilesSkipped++
			return nil
		}

		result, err := parser.Parse(lang, content)
		if err != nil {
			log.Printf("indexer: skipping %s: %v", relPath, cgerrors.Parse("parse "+relPath, err))
			return nil
		}
		if err := ix.Store.ReplaceFileRows(fileID, result); err != nil {
			return err
		}
		rep.FilesIndexed++
		return nil
	})
	if err != nil {
		return rep, err
	}

	deleted, err := ix.pruneMissing(seen)
	if err != nil {
		return rep, err
	}
	rep.FilesDeleted = deleted

	resolved, err := resolver.ResolveAll(ix.Store)
	if err != nil {
		return rep, err
	}
	rep.EdgesResolved = resolved

	rep.DurationMS = nowMS() - start
	_ = ix.Store.SetMeta("last_index_ms", strconv.FormatInt(rep.DurationMS, 10))
	if commit := headCommit(ix.Root); commit != "" {
		_ = ix.Store.SetMeta("last_indexed_commit", commit)
	}
	return rep, nil
}

// IndexFile (re)parses a single file, relative to Root, and resolves
// edges afterward. Used by the watcher for per-file debounced reindex
// instead of a full Index() walk.
func (ix *Indexer) IndexFile(relPath string) (Report, error) {
	start := nowMS()
	var rep Report
	relPath = filepath.ToSlash(relPath)

	lang, ok := parser.DetectLanguage(filepath.Ext(relPath))
	if !ok {
		return rep, nil
	}
	absPath := filepath.Join(ix.Root, filepath.FromSlash(relPath))

	_, err := os.Stat(absPath)
	if err != nil {
		// File removed: drop its rows entirely.
		if err := ix.Store.DeleteFileByPath(relPath); err != nil {
			return rep, err
		}
		rep.FilesDeleted = 1
	} else {
		if isBinary(absPath) {
			return rep, nil
		}
		content, err := os.ReadFile(absPath)
		if err != nil {
			return rep, nil
		}
		changed, fileID, err := ix.upsertIfChanged(relPath, lang, content)
		if err != nil {
			return rep, err
		}
		if !changed {
			rep.FilesSkipped = 1
			rep.DurationMS = nowMS() - start
			return rep, nil
		}
		result, err := parser.Parse(lang, content)
		if err != nil {
			return rep, cgerrors.Parse("parse "+relPath, err)
		}
		if err := ix.Store.ReplaceFileRows(fileID, result); err != nil {
			return rep, err
		}
		rep.FilesIndexed = 1
	}

	resolved, err := resolver.ResolveAll(ix.Store)
	if err != nil {
		return rep, err
	}
	rep.EdgesResolved = resolved
	rep.DurationMS = nowMS() - start
	return rep, nil
}

// upsertIfChanged compares content's hash against the stored FileInfo
// (the sole re-parse trigger, I5) and upserts the files row regardless,
// so size/last_indexed_at stay current even when content is unchanged.
func (ix *Indexer) upsertIfChanged(relPath, lang string, content []byte) (changed bool, fileID int64, err error) {
	hash := api.ContentHash(content)

	existing, err := ix.Store.GetFileByPath(relPath)
	if err != nil {
		return false, 0, err
	}
	changed = existing == nil || existing.ContentHash != hash

	fileID, err = ix.Store.UpsertFile(relPath, lang, hash, int64(len(content)), nowMS()/1000)
	if err != nil {
		return false, 0, err
	}
	return changed, fileID, nil
}

// pruneMissing removes files that were indexed previously but were not
// encountered by this walk (deleted, renamed, or moved outside Root).
func (ix *Indexer) pruneMissing(seen map[string]bool) (int, error) {
	files, err := ix.Store.ListFiles()
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, f := range files {
		if seen[f.Path] {
			continue
		}
		if err := ix.Store.DeleteFileByPath(f.Path); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
