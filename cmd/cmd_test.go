package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte(`package main

func helper() string { return "hi" }

func main() {
	println(helper())
}
`), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// run executes the root command with args against a fresh output buffer,
// the way a shell invocation of the codegraph binary would.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestIndexThenOutline(t *testing.T) {
	dir := newTestProject(t)

	if _, err := run(t, "--root", dir, "index"); err != nil {
		t.Fatalf("index: %v", err)
	}

	out, err := run(t, "--root", dir, "outline", "main.go")
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	if !strings.Contains(out, "helper") || !strings.Contains(out, "main") {
		t.Fatalf("expected outline to list both functions, got %q", out)
	}
}

func TestIndexThenStatsJSON(t *testing.T) {
	dir := newTestProject(t)

	if _, err := run(t, "--root", dir, "index"); err != nil {
		t.Fatalf("index: %v", err)
	}

	out, err := run(t, "--root", dir, "--json", "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, `"files_by_language"`) || !strings.Contains(out, `"metrics"`) {
		t.Fatalf("expected stats JSON with metrics block, got %q", out)
	}
}

func TestOutlineUnknownFileIsUserError(t *testing.T) {
	dir := newTestProject(t)
	if _, err := run(t, "--root", dir, "index"); err != nil {
		t.Fatalf("index: %v", err)
	}
	_, err := run(t, "--root", dir, "outline", "missing.go")
	if err == nil {
		t.Fatal("expected an error for an unindexed file")
	}
}

func TestSearchExplicitZeroLimitReturnsEmpty(t *testing.T) {
	dir := newTestProject(t)
	if _, err := run(t, "--root", dir, "index"); err != nil {
		t.Fatalf("index: %v", err)
	}

	out, err := run(t, "--root", dir, "--json", "search", "helper", "--limit", "0")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if strings.TrimSpace(out) != "null" && strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected an empty result for --limit 0, got %q", out)
	}
}

func TestImpactExplicitZeroDepthReturnsSeedRowsOnly(t *testing.T) {
	dir := newTestProject(t)
	if _, err := run(t, "--root", dir, "index"); err != nil {
		t.Fatalf("index: %v", err)
	}

	out, err := run(t, "--root", dir, "--json", "impact", "helper", "--depth", "0")
	if err != nil {
		t.Fatalf("impact: %v", err)
	}
	if strings.TrimSpace(out) != "null" && strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected an empty result for --depth 0, got %q", out)
	}
}

func TestRagSetupIndexAndSearch(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("CODEGRAPH_MODEL_CACHE", cacheDir)

	if _, err := run(t, "rag", "setup"); err != nil {
		t.Fatalf("rag setup: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cacheDir, "VERSION")); err != nil {
		t.Fatalf("expected VERSION marker, got %v", err)
	}

	dir := newTestProject(t)
	if _, err := run(t, "--root", dir, "index"); err != nil {
		t.Fatalf("index: %v", err)
	}
	if _, err := run(t, "--root", dir, "rag", "index"); err != nil {
		t.Fatalf("rag index: %v", err)
	}
	out, err := run(t, "--root", dir, "rag", "search", "helper")
	if err != nil {
		t.Fatalf("rag search: %v", err)
	}
	if !strings.Contains(out, "helper") {
		t.Fatalf("expected search hit for helper, got %q", out)
	}
}
