package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentic-research/codegraph/internal/indexer"
	"github.com/agentic-research/codegraph/internal/store"
)

func newWatchedProject(t *testing.T) (string, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatalf("write main.go: %v", err)
	}
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return dir, s
}

func TestWatcherIndexesOnStartupAndOnChange(t *testing.T) {
	dir, s := newWatchedProject(t)
	ix := indexer.New(s, dir)
	w := New(ix, 50*time.Millisecond, time.Hour, false, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the initial index a moment, then confirm main.go is visible.
	waitFor(t, func() bool {
		fi, _ := s.GetFileByPath("main.go")
		return fi != nil
	})

	// Add a new file and expect the debounced watcher to pick it up.
	if err := os.WriteFile(filepath.Join(dir, "extra.go"), []byte("package main\nfunc helper() {}\n"), 0o644); err != nil {
		t.Fatalf("write extra.go: %v", err)
	}
	waitFor(t, func() bool {
		fi, _ := s.GetFileByPath("extra.go")
		return fi != nil
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watcher run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not shut down after cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
