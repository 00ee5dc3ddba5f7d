package indexer

import (
	"bytes"
	"os"
	"path/filepath"
)

// ignoredDirs mirrors the teacher's directory skip-list in
// internal/ingest/engine.go's filepath.Walk callback, widened with the
// language-specific build/dependency directories this spec's six
// languages produce (Python venvs, Rust's target, Ruby's bundle cache).
var ignoredDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	"dist":         true,
	"build":        true,
	"vendor":       true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	".bundle":      true,
	".git":         true,
	".codegraph":   true,
}

// WalkFunc is called once per regular file under root that is not
// excluded by ignoredDirs or a dotfile/dotdir rule.
type WalkFunc func(path string) error

// Walk traverses root depth-first, pruning ignored and hidden
// directories the way the teacher's Ingest does (base[0] == '.', plus a
// fixed set of dependency/output directory names).
func Walk(root string, fn WalkFunc) error {
	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		base := filepath.Base(p)
		if info.IsDir() {
			if p != root && (isHidden(base) || ignoredDirs[base]) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(base) {
			return nil
		}
		return fn(p)
	})
}

func isHidden(base string) bool {
	return len(base) > 0 && base[0] == '.'
}

// IgnoredDirNames exposes ignoredDirs to internal/watcher, which applies
// the same skip-list when deciding whether an fsnotify event is relevant.
func IgnoredDirNames() map[string]bool { return ignoredDirs }

// WalkDirs calls fn once per directory under root that Walk would
// descend into (root itself included), skipping ignored/hidden
// subtrees. Used by the watcher to register every live directory with
// fsnotify, which (unlike Walk) is not recursive on its own.
func WalkDirs(root string, fn func(dir string) error) error {
	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(p)
		if p != root && (isHidden(base) || ignoredDirs[base]) {
			return filepath.SkipDir
		}
		return fn(p)
	})
}

// isBinary applies the teacher's null-byte heuristic (internal/ingest's
// isBinaryFile): a file whose first 512 bytes contain a NUL is treated
// as binary and skipped rather than handed to a tree-sitter parser.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return false
	}
	return bytes.ContainsRune(buf[:n], 0)
}
