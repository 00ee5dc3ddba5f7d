package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agentic-research/codegraph/api"
)

func TestJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, api.Stats{EdgesTotal: 3}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"") {
		t.Fatalf("expected indented JSON, got %q", buf.String())
	}
}

func TestSymbolsRendersNameWhenNoSignature(t *testing.T) {
	var buf bytes.Buffer
	Symbols(&buf, []api.SymbolRow{{Kind: api.KindFunction, Name: "Run", File: "a.go", StartLine: 3}})
	out := buf.String()
	if !strings.Contains(out, "Run") || !strings.Contains(out, "a.go:3") {
		t.Fatalf("expected rendered symbol line, got %q", out)
	}
}

func TestEdgesRendersModuleLevelSource(t *testing.T) {
	var buf bytes.Buffer
	Edges(&buf, []api.EdgeRow{{Kind: api.EdgeImports, Source: "(module)", Target: "fmt", File: "main.go", Line: 1}})
	out := buf.String()
	if !strings.Contains(out, "fmt") {
		t.Fatalf("expected target in output, got %q", out)
	}
	if !strings.Contains(out, "(module)") {
		t.Fatalf("expected module-level source in output, got %q", out)
	}
}

func TestStatsRendersCounts(t *testing.T) {
	var buf bytes.Buffer
	Stats(&buf, api.Stats{
		FilesByLanguage: map[string]int{"go": 2},
		SymbolsByKind:   map[string]int{"function": 5},
		EdgesTotal:      10,
		EdgesResolved:   8,
		LastIndexMS:     42,
	})
	out := buf.String()
	for _, want := range []string{"go", "2", "function", "5", "10", "8", "42"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected stats output to contain %q, got %q", want, out)
		}
	}
}
