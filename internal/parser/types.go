// Package parser extracts symbols and reference edges from source files
// using tree-sitter grammars. It generalizes the teacher's per-language
// query-cache pattern (internal/ingest/sitter_walker.go and
// engine_languages.go in agentic-research-mache) from call/reference-only
// extraction into the richer symbol+edge taxonomy the graph needs: one
// declarative LanguageSpec per language, built from capture-named
// tree-sitter queries, feeding a single extraction engine shared by all
// six languages.
package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/agentic-research/codegraph/api"
)

// LanguageSpec declares, for one language, the tree-sitter grammar and the
// set of queries used to recover symbols and edges. Each query's captures
// are named "<def|ref>.<kind>[.<part>]" — see doc.go for the convention —
// and interpreted generically by Parse in engine.go.
type LanguageSpec struct {
	Name       string
	Extensions []string
	Lang       *sitter.Language

	// SymbolQuery extracts definitions: functions, methods, types,
	// variables, constants, imports. One query string combining every
	// definition-bearing grammar rule for the language.
	SymbolQuery string

	// RefQuery extracts call, raise/throw, inherit, and type-annotation
	// references. One query string combining every reference-bearing
	// grammar rule for the language.
	RefQuery string

	// VisibilityFunc derives a Visibility from a definition's name and
	// its enclosing node, applying the language's own convention
	// (Go capitalization, Python/Ruby leading underscore, TS/Rust
	// keywords). Nil means every definition defaults to public.
	VisibilityFunc func(src []byte, nameNode, defNode *sitter.Node) api.Visibility
}

var registry = map[string]*LanguageSpec{}
var extByLang = map[string]string{}

// register adds a language to the registry and indexes its extensions.
// Called from each lang_*.go's init().
func register(spec *LanguageSpec) {
	registry[spec.Name] = spec
	for _, ext := range spec.Extensions {
		extByLang[ext] = spec.Name
	}
}

// DetectLanguage maps a file extension (including the leading dot) to a
// registered language name. ok is false for anything unsupported — the
// caller (internal/indexer) skips such files per spec §4.1.
func DetectLanguage(ext string) (name string, ok bool) {
	name, ok = extByLang[ext]
	return name, ok
}

// SpecFor returns the registered LanguageSpec, or nil if unknown.
func SpecFor(name string) *LanguageSpec {
	return registry[name]
}
