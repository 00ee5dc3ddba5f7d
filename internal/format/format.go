// Package format renders query results for the two human-facing
// surfaces that share them: the CLI's default (non---json) output and
// its --json output, both operating on the fixed api row types
// internal/query and internal/semantic already produce. The RPC surface
// (internal/rpcserver) talks JSON directly and does not use this
// package — it exists for the terminal, where spec §6 asks for colored
// diagnostics on top of the same structured data.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/agentic-research/codegraph/api"
)

// JSON writes v as indented JSON, the shape every --json flag produces
// regardless of which subcommand asked for it.
func JSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

var kindColor = map[api.SymbolKind]*color.Color{
	api.KindFunction:  color.New(color.FgGreen),
	api.KindMethod:    color.New(color.FgGreen),
	api.KindClass:     color.New(color.FgCyan),
	api.KindStruct:    color.New(color.FgCyan),
	api.KindInterface: color.New(color.FgCyan),
	api.KindTrait:     color.New(color.FgCyan),
	api.KindEnum:      color.New(color.FgCyan),
	api.KindVariable:  color.New(color.FgYellow),
	api.KindConstant:  color.New(color.FgYellow),
	api.KindImport:    color.New(color.FgHiBlack),
	api.KindModule:    color.New(color.FgHiBlack),
}

func colorizeKind(k api.SymbolKind) string {
	c, ok := kindColor[k]
	if !ok {
		return string(k)
	}
	return c.Sprint(string(k))
}

// Symbols renders outline() or search() output: one line per symbol,
// kind colorized, location as file:line.
func Symbols(w io.Writer, rows []api.SymbolRow) {
	for _, r := range rows {
		loc := fmt.Sprintf("%s:%d", r.File, r.StartLine)
		if r.Signature != "" {
			fmt.Fprintf(w, "%-10s %-40s %s\n", colorizeKind(r.Kind), loc, r.Signature)
		} else {
			fmt.Fprintf(w, "%-10s %-40s %s\n", colorizeKind(r.Kind), loc, r.Name)
		}
	}
}

// Edges renders refs()/callees()/deps() output: one line per edge. A
// module-level source already arrives as the literal "(module)" from
// query.edgeRow, so there's nothing to substitute here.
func Edges(w io.Writer, rows []api.EdgeRow) {
	for _, r := range rows {
		fmt.Fprintf(w, "%-10s %s -> %s  (%s:%d)\n", string(r.Kind), r.Source, r.Target, r.File, r.Line)
	}
}

// Impact renders impact() output, grouping by BFS depth.
func Impact(w io.Writer, rows []api.ImpactRow) {
	for _, r := range rows {
		fmt.Fprintf(w, "[depth %d] %-10s %s -> %s  (%s:%d)\n", r.Depth, string(r.Kind), r.Source, r.Target, r.File, r.Line)
	}
}

// Hierarchy renders hierarchy() output: one child -> parent line per pair.
func Hierarchy(w io.Writer, pairs []api.HierarchyPair) {
	for _, p := range pairs {
		fmt.Fprintf(w, "%s -> %s\n", p.Child, p.Parent)
	}
}

// SearchHits renders semantic_search() output, including score and
// rerank_score when present.
func SearchHits(w io.Writer, hits []api.SearchHit) {
	for _, h := range hits {
		loc := fmt.Sprintf("%s:%d", h.Symbol.File, h.Symbol.StartLine)
		scoreStr := ""
		if h.RerankScore != nil {
			scoreStr = fmt.Sprintf("rerank=%.3f", *h.RerankScore)
		} else if h.Score != nil {
			scoreStr = fmt.Sprintf("rrf=%.3f", *h.Score)
		}
		fmt.Fprintf(w, "%-10s %-40s %-20s %s\n", colorizeKind(h.Symbol.Kind), loc, h.Symbol.Name, scoreStr)
	}
}

// Stats renders stats() output as a short labeled summary.
func Stats(w io.Writer, st api.Stats) {
	fmt.Fprintf(w, "files:\n")
	for lang, n := range st.FilesByLanguage {
		fmt.Fprintf(w, "  %-12s %d\n", lang, n)
	}
	fmt.Fprintf(w, "symbols:\n")
	for kind, n := range st.SymbolsByKind {
		fmt.Fprintf(w, "  %-12s %d\n", kind, n)
	}
	fmt.Fprintf(w, "edges: %d total, %d resolved\n", st.EdgesTotal, st.EdgesResolved)
	fmt.Fprintf(w, "last index: %dms\n", st.LastIndexMS)
}

// Report renders an indexer.Report-shaped summary. Defined on the
// minimal field set format needs rather than importing internal/indexer,
// which would otherwise be format's only non-api dependency.
type Report struct {
	FilesScanned  int
	FilesIndexed  int
	FilesSkipped  int
	FilesDeleted  int
	EdgesResolved int
	DurationMS    int64
}

func IndexReport(w io.Writer, r Report) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(w, "%s %d scanned, %d indexed, %d skipped, %d deleted, %d edges resolved (%dms)\n",
		green("index complete:"), r.FilesScanned, r.FilesIndexed, r.FilesSkipped, r.FilesDeleted, r.EdgesResolved, r.DurationMS)
}
