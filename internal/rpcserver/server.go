// Package rpcserver exposes codegraph's query handlers over a long-lived
// stdio JSON-RPC process (spec §4.8), framed by mark3labs/mcp-go: one
// tool per internal/query handler, plus semantic_search and an index
// tool sandboxed to the process's launch directory. The surface adds no
// behavior beyond argument translation and cgerrors-to-RPC-code mapping
// — every tool handler is a thin wrapper around a §4.5 or §4.6 call.
package rpcserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/agentic-research/codegraph/internal/cgerrors"
	"github.com/agentic-research/codegraph/internal/indexer"
	"github.com/agentic-research/codegraph/internal/query"
	"github.com/agentic-research/codegraph/internal/semantic"
	"github.com/agentic-research/codegraph/internal/store"
)

const (
	serverName    = "codegraph"
	serverVersion = "0.1.0"
)

// Server wires the query/semantic/indexer layers into an mcp-go tool set.
type Server struct {
	Store    *store.Store
	Indexer  *indexer.Indexer
	Searcher *semantic.Searcher
	Root     string // launch directory; the index tool's sandbox root

	mcp *server.MCPServer
}

// New builds a Server. Searcher may be nil — semantic_search then always
// reports the FTS-only degradation tier (a nil Index/Model inside
// Searcher already does this; the tool is registered regardless).
func New(s *store.Store, ix *indexer.Indexer, searcher *semantic.Searcher, root string) *Server {
	srv := &Server{Store: s, Indexer: ix, Searcher: searcher, Root: root}
	srv.mcp = server.NewMCPServer(serverName, serverVersion)
	srv.registerTools()
	return srv
}

// Serve blocks, framing tool calls over stdin/stdout until the process
// is terminated (typically by the host closing stdin).
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("outline",
		mcp.WithDescription("List every symbol defined in a file, ordered by start line."),
		mcp.WithString("file", mcp.Required(), mcp.Description("Project-relative file path.")),
	), s.handleOutline)

	s.mcp.AddTool(mcp.NewTool("search",
		mcp.WithDescription("Lexical symbol search, tiered exact/prefix/substring matching."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Name or substring to search for.")),
		mcp.WithString("kind", mcp.Description("Restrict to one symbol kind.")),
		mcp.WithString("file", mcp.Description("Restrict to one file path.")),
		mcp.WithNumber("limit", mcp.Description("Maximum rows returned (default 20).")),
	), s.handleSearch)

	s.mcp.AddTool(mcp.NewTool("refs",
		mcp.WithDescription("Every edge whose resolved target is the named symbol."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Symbol name.")),
		mcp.WithString("kind", mcp.Description("Restrict to one edge kind.")),
	), s.handleRefs)

	s.mcp.AddTool(mcp.NewTool("callees",
		mcp.WithDescription("Every call edge sourced from the named symbol."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Symbol name.")),
	), s.handleCallees)

	s.mcp.AddTool(mcp.NewTool("impact",
		mcp.WithDescription("Bounded reverse-edge BFS: what transitively references the named symbol."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Symbol name.")),
		mcp.WithNumber("depth", mcp.Description("Maximum BFS depth (default 3).")),
	), s.handleImpact)

	s.mcp.AddTool(mcp.NewTool("hierarchy",
		mcp.WithDescription("Transitive closure of inherits edges touching the named symbol."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Symbol name.")),
	), s.handleHierarchy)

	s.mcp.AddTool(mcp.NewTool("deps",
		mcp.WithDescription("Every import edge originating in a file."),
		mcp.WithString("file", mcp.Required(), mcp.Description("Project-relative file path.")),
	), s.handleDeps)

	s.mcp.AddTool(mcp.NewTool("stats",
		mcp.WithDescription("Store-wide summary: file/symbol/edge counts, last index duration."),
	), s.handleStats)

	s.mcp.AddTool(mcp.NewTool("semantic_search",
		mcp.WithDescription("Hybrid FTS + vector + RRF search, optionally re-ranked."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural-language or code query.")),
		mcp.WithString("kind", mcp.Description("Restrict to one symbol kind.")),
		mcp.WithNumber("limit", mcp.Description("Maximum rows returned (default 10).")),
	), s.handleSemanticSearch)

	s.mcp.AddTool(mcp.NewTool("index",
		mcp.WithDescription("Run a full reindex of the launch directory; a path outside it is rejected."),
		mcp.WithString("path", mcp.Description("Subpath under the launch directory (default \".\"); checked against the sandbox, the whole launch directory is reindexed.")),
	), s.handleIndex)
}

func argString(args map[string]any, key, def string) string {
	if v, ok := args[key]; ok {
		if str, ok := v.(string); ok && str != "" {
			return str
		}
	}
	return def
}

func argInt(args map[string]any, key string, def int) int {
	if n, ok := argIntPresent(args, key); ok {
		return n
	}
	return def
}

// argIntPresent reports whether key was supplied at all, distinguishing
// an omitted argument from one explicitly set to its zero value — needed
// wherever 0 and "not specified" mean different things (impact's depth,
// search's limit).
func argIntPresent(args map[string]any, key string) (int, bool) {
	if v, ok := args[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n), true
		case int:
			return n, true
		}
	}
	return 0, false
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

func errResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(fmt.Sprintf(`{"error":%q,"code":%d}`, err.Error(), cgerrors.RPCCode(err))), nil
}

func (s *Server) handleOutline(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	rows, err := query.Outline(s.Store, argString(args, "file", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(rows)
}

func (s *Server) handleSearch(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	limit, ok := argIntPresent(args, "limit")
	if !ok {
		limit = -1 // unspecified: query.Search substitutes its own default
	}
	rows, err := query.Search(s.Store, argString(args, "query", ""), argString(args, "kind", ""), argString(args, "file", ""), limit)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(rows)
}

func (s *Server) handleRefs(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	rows, err := query.Refs(s.Store, argString(args, "name", ""), argString(args, "kind", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(rows)
}

func (s *Server) handleCallees(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	rows, err := query.Callees(s.Store, argString(args, "name", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(rows)
}

func (s *Server) handleImpact(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	depth := query.DefaultImpactDepth
	if n, ok := argIntPresent(args, "depth"); ok {
		depth = n
	}
	rows, err := query.Impact(s.Store, argString(args, "name", ""), depth)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(rows)
}

func (s *Server) handleHierarchy(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	rows, err := query.Hierarchy(s.Store, argString(args, "name", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(rows)
}

func (s *Server) handleDeps(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	rows, err := query.Deps(s.Store, argString(args, "file", ""))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(rows)
}

func (s *Server) handleStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := query.Stats(s.Store)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(st)
}

func (s *Server) handleSemanticSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sr := s.Searcher
	if sr == nil {
		sr = &semantic.Searcher{Store: s.Store}
	}
	args := req.GetArguments()
	hits, err := sr.Search(ctx, argString(args, "query", ""), argString(args, "kind", ""), argInt(args, "limit", 0))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(hits)
}

func (s *Server) handleIndex(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if _, err := resolveSandboxed(s.Root, argString(args, "path", ".")); err != nil {
		return errResult(err)
	}
	rep, err := s.Indexer.Index()
	if err != nil {
		return errResult(err)
	}
	return jsonResult(rep)
}
