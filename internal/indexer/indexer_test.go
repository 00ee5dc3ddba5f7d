package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentic-research/codegraph/internal/store"
)

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte(`package main

func helper() string { return "hi" }

func main() {
	println(helper())
}
`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor", "x"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "x", "skip.go"), []byte("package x"), 0o644))
	return dir
}

func TestIndexWalksAndSkipsUnchanged(t *testing.T) {
	dir := newProject(t)
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ix := New(s, dir)
	rep, err := ix.Index()
	require.NoError(t, err)
	require.Equal(t, 1, rep.FilesIndexed)
	require.Equal(t, 1, rep.FilesScanned) // vendor/ is pruned

	rep2, err := ix.Index()
	require.NoError(t, err)
	require.Equal(t, 0, rep2.FilesIndexed)
	require.Equal(t, 1, rep2.FilesSkipped)
}

func TestIndexPrunesDeletedFiles(t *testing.T) {
	dir := newProject(t)
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ix := New(s, dir)
	_, err = ix.Index()
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "main.go")))
	rep, err := ix.Index()
	require.NoError(t, err)
	require.Equal(t, 1, rep.FilesDeleted)

	files, err := s.ListFiles()
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestIndexRootForceReparsesUnchangedFiles(t *testing.T) {
	dir := newProject(t)
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ix := New(s, dir)
	_, err = ix.Index()
	require.NoError(t, err)

	rep, err := ix.IndexRoot(true)
	require.NoError(t, err)
	require.Equal(t, 1, rep.FilesIndexed)
	require.Equal(t, 0, rep.FilesSkipped)
}
