package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestResolveAllSameFileWins(t *testing.T) {
	s := newTestStore(t)

	fileID, err := s.UpsertFile("pkg/a.go", "go", "h1", 10, 1)
	require.NoError(t, err)

	result := api.ParseResult{
		Symbols: []api.ParsedSymbol{
			{Name: "helper", Kind: api.KindFunction, StartLine: 1, EndLine: 3, ParentIndex: -1, Content: "func helper() {}"},
			{Name: "caller", Kind: api.KindFunction, StartLine: 5, EndLine: 7, ParentIndex: -1, Content: "func caller() { helper() }"},
		},
		Edges: []api.ParsedEdge{
			{SourceIndex: 1, TargetName: "helper", Kind: api.EdgeCalls, Line: 6},
		},
	}
	require.NoError(t, s.ReplaceFileRows(fileID, result))

	n, err := ResolveAll(s)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	edges, err := s.EdgesByKindAndSourceName(string(api.EdgeCalls), "caller")
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.True(t, edges[0].Resolved())
}

func TestResolveAllAmbiguousProjectWideStaysUnresolved(t *testing.T) {
	s := newTestStore(t)

	fileA, err := s.UpsertFile("pkga/a.go", "go", "h1", 10, 1)
	require.NoError(t, err)
	fileC, err := s.UpsertFile("pkgc/c.go", "go", "h2", 10, 1)
	require.NoError(t, err)
	fileCaller, err := s.UpsertFile("pkgcaller/caller.go", "go", "h3", 10, 1)
	require.NoError(t, err)

	require.NoError(t, s.ReplaceFileRows(fileA, api.ParseResult{
		Symbols: []api.ParsedSymbol{{Name: "run", Kind: api.KindFunction, StartLine: 1, EndLine: 2, ParentIndex: -1}},
	}))
	require.NoError(t, s.ReplaceFileRows(fileC, api.ParseResult{
		Symbols: []api.ParsedSymbol{{Name: "run", Kind: api.KindFunction, StartLine: 1, EndLine: 2, ParentIndex: -1}},
	}))
	require.NoError(t, s.ReplaceFileRows(fileCaller, api.ParseResult{
		Symbols: []api.ParsedSymbol{{Name: "caller", Kind: api.KindFunction, StartLine: 4, EndLine: 6, ParentIndex: -1}},
		Edges: []api.ParsedEdge{
			{SourceIndex: 0, TargetName: "run", Kind: api.EdgeCalls, Line: 5},
		},
	}))

	n, err := ResolveAll(s)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}
