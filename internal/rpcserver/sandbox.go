package rpcserver

import (
	"path/filepath"
	"strings"

	"github.com/agentic-research/codegraph/internal/cgerrors"
)

// resolveSandboxed joins root and rel, then rejects the result unless it
// stays within root — spec §4.8's "index restricted to the process's
// launch directory subtree; path traversal outside it is rejected."
func resolveSandboxed(root, rel string) (string, error) {
	if rel == "" {
		rel = "."
	}
	joined := filepath.Join(root, rel)
	cleanRoot := filepath.Clean(root)
	if joined != cleanRoot && !strings.HasPrefix(joined, cleanRoot+string(filepath.Separator)) {
		return "", cgerrors.Userf("path %q escapes the launch directory", rel)
	}
	return joined, nil
}
