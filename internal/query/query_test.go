package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/resolver"
	"github.com/agentic-research/codegraph/internal/store"
)

func seedStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	baseID, err := s.UpsertFile("pkg/base.go", "go", "h1", 10, 1)
	require.NoError(t, err)
	require.NoError(t, s.ReplaceFileRows(baseID, api.ParseResult{
		Symbols: []api.ParsedSymbol{
			{Name: "Base", QualifiedName: "Base", Kind: api.KindStruct, StartLine: 1, EndLine: 3, ParentIndex: -1, Content: "type Base struct{}"},
			{Name: "run", QualifiedName: "run", Kind: api.KindFunction, StartLine: 5, EndLine: 7, ParentIndex: -1, Content: "func run() {}"},
		},
	}))

	mainID, err := s.UpsertFile("pkg/main.go", "go", "h2", 10, 1)
	require.NoError(t, err)
	require.NoError(t, s.ReplaceFileRows(mainID, api.ParseResult{
		Symbols: []api.ParsedSymbol{
			{Name: "Derived", QualifiedName: "Derived", Kind: api.KindStruct, StartLine: 1, EndLine: 3, ParentIndex: -1, Content: "type Derived struct{ Base }"},
			{Name: "caller", QualifiedName: "caller", Kind: api.KindFunction, StartLine: 5, EndLine: 8, ParentIndex: -1, Content: "func caller() { run() }"},
		},
		Edges: []api.ParsedEdge{
			{SourceIndex: 1, TargetName: "run", Kind: api.EdgeCalls, Line: 6},
			{SourceIndex: 0, TargetName: "Base", Kind: api.EdgeInherits, Line: 1},
			{SourceIndex: -1, TargetName: "fmt", Kind: api.EdgeImports, Line: 0},
		},
	}))

	_, err = resolver.ResolveAll(s)
	require.NoError(t, err)
	return s
}

func TestOutline(t *testing.T) {
	s := seedStore(t)
	rows, err := Outline(s, "pkg/base.go")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Base", rows[0].Name)
	require.Equal(t, "run", rows[1].Name)
}

func TestRefsAndCallees(t *testing.T) {
	s := seedStore(t)

	refs, err := Refs(s, "run", "")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.Equal(t, "caller", refs[0].Source)

	callees, err := Callees(s, "caller")
	require.NoError(t, err)
	require.Len(t, callees, 1)
	require.Equal(t, "run", callees[0].Target)
}

func TestHierarchy(t *testing.T) {
	s := seedStore(t)
	pairs, err := Hierarchy(s, "Derived")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	require.Equal(t, "Derived", pairs[0].Child)
	require.Equal(t, "Base", pairs[0].Parent)
}

func TestImpact(t *testing.T) {
	s := seedStore(t)
	rows, err := Impact(s, "run", 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 1, rows[0].Depth)
	require.Equal(t, "caller", rows[0].Source)
}

func TestImpactZeroDepthReturnsSeedRowsOnly(t *testing.T) {
	s := seedStore(t)
	rows, err := Impact(s, "run", 0)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestImpactNegativeDepthUsesDefault(t *testing.T) {
	s := seedStore(t)
	rows, err := Impact(s, "run", -1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestDeps(t *testing.T) {
	s := seedStore(t)
	rows, err := Deps(s, "pkg/main.go")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "fmt", rows[0].Target)
	require.Equal(t, "(module)", rows[0].Source)
}

func TestSearch(t *testing.T) {
	s := seedStore(t)
	rows, err := Search(s, "run", "", "", 10)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	require.Equal(t, "run", rows[0].Name)
}

func TestSearchZeroLimitReturnsEmpty(t *testing.T) {
	s := seedStore(t)
	rows, err := Search(s, "run", "", "", 0)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestSearchNegativeLimitUsesDefault(t *testing.T) {
	s := seedStore(t)
	rows, err := Search(s, "run", "", "", -1)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
}

func TestStats(t *testing.T) {
	s := seedStore(t)
	st, err := Stats(s)
	require.NoError(t, err)
	require.Equal(t, 2, st.FilesByLanguage["go"])
}
