package rpcserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/indexer"
	"github.com/agentic-research/codegraph/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	fileID, err := s.UpsertFile("pkg/file.go", "go", "h1", 10, 1)
	if err != nil {
		t.Fatalf("upsert file: %v", err)
	}
	if err := s.ReplaceFileRows(fileID, api.ParseResult{
		Symbols: []api.ParsedSymbol{
			{Name: "Run", QualifiedName: "Run", Kind: api.KindFunction, StartLine: 1, EndLine: 2, ParentIndex: -1, Content: "func Run() {}"},
		},
	}); err != nil {
		t.Fatalf("replace file rows: %v", err)
	}

	ix := indexer.New(s, t.TempDir())
	return New(s, ix, nil, ix.Root)
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestHandleOutline(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleOutline(context.Background(), toolRequest(map[string]any{"file": "pkg/file.go"}))
	if err != nil {
		t.Fatalf("handleOutline: %v", err)
	}
	if res == nil {
		t.Fatalf("expected a non-nil result")
	}
}

func TestHandleStats(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleStats(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handleStats: %v", err)
	}
	if res == nil {
		t.Fatalf("expected a non-nil result")
	}
}

func TestHandleSearchOmittedLimitUsesDefault(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleSearch(context.Background(), toolRequest(map[string]any{"query": "Run"}))
	if err != nil {
		t.Fatalf("handleSearch: %v", err)
	}
	if res == nil {
		t.Fatalf("expected a non-nil result")
	}
}

func TestHandleSearchExplicitZeroLimit(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleSearch(context.Background(), toolRequest(map[string]any{"query": "Run", "limit": float64(0)}))
	if err != nil {
		t.Fatalf("handleSearch: %v", err)
	}
	if res == nil {
		t.Fatalf("expected a non-nil result")
	}
}

func TestHandleImpactOmittedDepthUsesDefault(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleImpact(context.Background(), toolRequest(map[string]any{"name": "Run"}))
	if err != nil {
		t.Fatalf("handleImpact: %v", err)
	}
	if res == nil {
		t.Fatalf("expected a non-nil result")
	}
}

func TestHandleImpactExplicitZeroDepth(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleImpact(context.Background(), toolRequest(map[string]any{"name": "Run", "depth": float64(0)}))
	if err != nil {
		t.Fatalf("handleImpact: %v", err)
	}
	if res == nil {
		t.Fatalf("expected a non-nil result")
	}
}

func TestHandleIndexRejectsEscape(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.handleIndex(context.Background(), toolRequest(map[string]any{"path": "../../etc"}))
	if err != nil {
		t.Fatalf("handleIndex: %v", err)
	}
	if res == nil {
		t.Fatalf("expected an error result, not a nil result")
	}
	if len(res.Content) == 0 {
		t.Fatalf("expected an error result, got empty content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok || !strings.Contains(text.Text, `"error"`) {
		t.Fatalf("expected an error result, got %#v", res.Content[0])
	}
}
