// Package api holds the data model shared by every layer of codegraph:
// the extraction pipeline, the store, the resolver, the query handlers,
// and the CLI/RPC surfaces. Nothing in here talks to SQLite, tree-sitter,
// or the filesystem — it is pure types.
package api

// SymbolKind enumerates the kinds of defined names codegraph tracks.
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindMethod    SymbolKind = "method"
	KindClass     SymbolKind = "class"
	KindStruct    SymbolKind = "struct"
	KindEnum      SymbolKind = "enum"
	KindTrait     SymbolKind = "trait"
	KindInterface SymbolKind = "interface"
	KindModule    SymbolKind = "module"
	KindVariable  SymbolKind = "variable"
	KindConstant  SymbolKind = "constant"
	KindImport    SymbolKind = "import"
)

// DefinitionBearing reports whether a kind is a "real" definition for the
// purposes of the resolver's and search's kind-rank tie-break.
func (k SymbolKind) DefinitionBearing() bool {
	switch k {
	case KindClass, KindStruct, KindEnum, KindTrait, KindInterface, KindFunction, KindMethod:
		return true
	default:
		return false
	}
}

// kindRank orders kinds for tie-breaking: definition-bearing kinds first,
// then variable/constant, then import last. Lower rank wins.
func (k SymbolKind) kindRank() int {
	if k.DefinitionBearing() {
		return 0
	}
	if k == KindVariable || k == KindConstant {
		return 1
	}
	return 2 // import
}

// KindRank exposes kindRank for packages outside api (resolver, search)
// that need the same ordering without duplicating the table.
func KindRank(k SymbolKind) int { return k.kindRank() }

// Visibility enumerates the visibility of a symbol, widened across
// languages that don't share Go's exported-by-case convention.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityCrate     Visibility = "crate"
	VisibilityModule    Visibility = "module"
)

// Symbol is a defined name in source.
type Symbol struct {
	ID              int64
	FileID          int64
	Name            string
	QualifiedName   string
	Kind            SymbolKind
	StartLine       int
	EndLine         int
	StartByte       uint32
	EndByte         uint32
	Signature       string
	Visibility      Visibility
	ParentSymbolID  int64 // 0 means no parent
	Content         string
	ContentHash     string
}

// HasParent reports whether ParentSymbolID is set. Symbol IDs are assigned
// by the store starting at 1, so 0 is never a valid parent.
func (s Symbol) HasParent() bool { return s.ParentSymbolID != 0 }

// EdgeKind enumerates the kinds of textual reference an edge records.
type EdgeKind string

const (
	EdgeCalls      EdgeKind = "calls"
	EdgeImports    EdgeKind = "imports"
	EdgeInherits   EdgeKind = "inherits"
	EdgeReferences EdgeKind = "references"
	EdgeRaises     EdgeKind = "raises"
)

// Edge is an unresolved (or resolved) textual reference emitted by a
// parser adapter and later linked by the resolver.
type Edge struct {
	ID             int64
	FileID         int64
	SourceSymbolID int64 // 0 means module-level (no enclosing symbol)
	TargetName     string
	Kind           EdgeKind
	Line           int
	TargetSymbolID int64 // 0 until resolved
}

// Resolved reports whether the resolver has linked this edge to a symbol.
func (e Edge) Resolved() bool { return e.TargetSymbolID != 0 }

// FileInfo records one indexed file.
type FileInfo struct {
	ID            int64
	Path          string // relative to project root, slash-separated
	Language      string
	ContentHash   string
	SizeBytes     int64
	LastIndexedAt int64 // unix seconds
}

// EmbeddingRecord is the dense-vector representation of a symbol's content
// at the time it was last embedded.
type EmbeddingRecord struct {
	SymbolID   int64
	Vector     []float32
	SourceHash string // content_hash at embedding time
}

// ParseResult is what a language adapter hands back for one file: a
// finite set of symbols and edges, with no store-assigned IDs yet
// (ParentIndex/SourceIndex below are positions into Symbols,
// resolved to real IDs by the store during ingest).
type ParseResult struct {
	Symbols []ParsedSymbol
	Edges   []ParsedEdge
}

// ParsedSymbol is a Symbol before store ingestion assigns it a real ID.
// ParentIndex, when >= 0, is the index into ParseResult.Symbols of the
// enclosing symbol (e.g. a method's class).
type ParsedSymbol struct {
	Name          string
	QualifiedName string
	Kind          SymbolKind
	StartLine     int
	EndLine       int
	StartByte     uint32
	EndByte       uint32
	Signature     string
	Visibility    Visibility
	ParentIndex   int // -1 means no parent
	Content       string
}

// ParsedEdge is an Edge before store ingestion. SourceIndex, when >= 0, is
// the index into ParseResult.Symbols of the enclosing symbol; -1 means the
// edge is module-level.
type ParsedEdge struct {
	SourceIndex int
	TargetName  string
	Kind        EdgeKind
	Line        int
}
