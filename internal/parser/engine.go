package parser

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/agentic-research/codegraph/api"
	"github.com/agentic-research/codegraph/internal/cgerrors"
)

var (
	symbolQueryCache sync.Map // lang name -> *sitter.Query
	refQueryCache    sync.Map // lang name -> *sitter.Query
)

var kindByTag = map[string]api.SymbolKind{
	"function":  api.KindFunction,
	"method":    api.KindMethod,
	"class":     api.KindClass,
	"struct":    api.KindStruct,
	"enum":      api.KindEnum,
	"trait":     api.KindTrait,
	"interface": api.KindInterface,
	"module":    api.KindModule,
	"variable":  api.KindVariable,
	"constant":  api.KindConstant,
	"import":    api.KindImport,
}

var edgeKindByTag = map[string]api.EdgeKind{
	"call":    api.EdgeCalls,
	"raise":   api.EdgeRaises,
	"inherit": api.EdgeInherits,
	"import":  api.EdgeImports,
	"type":    api.EdgeReferences,
}

// Parse compiles and runs the given language's symbol and reference
// queries over source, producing an api.ParseResult ready for
// store.ReplaceFileRows. It is a pure function of (langName, source),
// matching the content-hash-driven re-parse contract of spec §4.1/I5.
func Parse(langName string, source []byte) (api.ParseResult, error) {
	spec := SpecFor(langName)
	if spec == nil {
		return api.ParseResult{}, cgerrors.Userf("unsupported language %q", langName)
	}

	p := sitter.NewParser()
	p.SetLanguage(spec.Lang)
	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return api.ParseResult{}, cgerrors.Parse(fmt.Sprintf("parse %s source", langName), err)
	}
	root := tree.RootNode()

	defs, err := extractDefs(spec, root, source)
	if err != nil {
		return api.ParseResult{}, err
	}

	symbols := make([]api.ParsedSymbol, len(defs))
	for i, d := range defs {
		parentIdx := -1
		best := -1
		for j, other := range defs {
			if j == i || other.kind == api.KindImport {
				continue
			}
			if containsStrict(other.node, d.node) {
				if best == -1 || narrower(other.node, defs[best].node) {
					best = j
				}
			}
		}
		if best >= 0 {
			parentIdx = best
		} else if d.kind == api.KindMethod && d.receiver != "" {
			if j, ok := defIndexByName(defs, d.receiver); ok {
				parentIdx = j
			}
		}

		qualified := d.name
		if parentIdx >= 0 && defs[parentIdx].kind != api.KindImport {
			qualified = defs[parentIdx].name + "." + d.name
		} else if d.receiver != "" {
			qualified = d.receiver + "." + d.name
		}

		vis := api.VisibilityPublic
		if spec.VisibilityFunc != nil {
			vis = spec.VisibilityFunc(source, d.nameNode, d.node)
		}

		startLine, endLine := lineRange(d.node)
		symbols[i] = api.ParsedSymbol{
			Name:          d.name,
			QualifiedName: qualified,
			Kind:          d.kind,
			StartLine:     startLine,
			EndLine:       endLine,
			StartByte:     d.node.StartByte(),
			EndByte:       d.node.EndByte(),
			Signature:     signatureOf(source, d.node, d.body),
			Visibility:    vis,
			ParentIndex:   parentIdx,
			Content:       nodeText(source, d.node),
		}
	}

	edges, err := extractRefs(spec, root, source, defs)
	if err != nil {
		return api.ParseResult{}, err
	}

	for _, d := range defs {
		if d.kind != api.KindImport {
			continue
		}
		startLine, _ := lineRange(d.node)
		edges = append(edges, api.ParsedEdge{
			SourceIndex: -1,
			TargetName:  d.name,
			Kind:        api.EdgeImports,
			Line:        startLine,
		})
	}

	return api.ParseResult{Symbols: symbols, Edges: edges}, nil
}

type rawDef struct {
	kind     api.SymbolKind
	name     string
	receiver string
	node     *sitter.Node
	nameNode *sitter.Node
	body     *sitter.Node
}

func containsStrict(outer, inner *sitter.Node) bool {
	if outer.StartByte() == inner.StartByte() && outer.EndByte() == inner.EndByte() {
		return false
	}
	return outer.StartByte() <= inner.StartByte() && outer.EndByte() >= inner.EndByte()
}

func narrower(a, b *sitter.Node) bool {
	return (a.EndByte() - a.StartByte()) < (b.EndByte() - b.StartByte())
}

// typeBearingKinds are the definition kinds a method's receiver name can
// resolve to when the method isn't lexically nested inside its type's
// definition (Go's `func (g *Greeter) Greet()`, Rust's `impl Greeter`).
var typeBearingKinds = map[api.SymbolKind]bool{
	api.KindStruct:    true,
	api.KindClass:     true,
	api.KindEnum:      true,
	api.KindTrait:     true,
	api.KindInterface: true,
}

// defIndexByName finds a type-bearing definition in the same file named
// receiver, for methods whose parent isn't found by containment.
func defIndexByName(defs []rawDef, receiver string) (int, bool) {
	for j, other := range defs {
		if typeBearingKinds[other.kind] && other.name == receiver {
			return j, true
		}
	}
	return -1, false
}

func compiledQuery(cache *sync.Map, langName, src string, lang *sitter.Language) (*sitter.Query, error) {
	if src == "" {
		return nil, nil
	}
	if cached, ok := cache.Load(langName); ok {
		return cached.(*sitter.Query), nil
	}
	q, err := sitter.NewQuery([]byte(src), lang)
	if err != nil {
		return nil, fmt.Errorf("compile query for %s: %w", langName, err)
	}
	actual, loaded := cache.LoadOrStore(langName, q)
	if loaded {
		q.Close()
		return actual.(*sitter.Query), nil
	}
	return q, nil
}

func extractDefs(spec *LanguageSpec, root *sitter.Node, source []byte) ([]rawDef, error) {
	q, err := compiledQuery(&symbolQueryCache, spec.Name, spec.SymbolQuery, spec.Lang)
	if err != nil {
		return nil, cgerrors.Parse("compile symbol query", err)
	}
	if q == nil {
		return nil, nil
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var candidates []rawDef
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, source)
		if len(m.Captures) == 0 {
			continue
		}

		var kindTag string
		var defNode, nameNode, bodyNode *sitter.Node
		var receiver string
		for _, c := range m.Captures {
			capName := q.CaptureNameForId(c.Index)
			switch {
			case strings.HasPrefix(capName, "def.") && strings.HasSuffix(capName, ".name"):
				kindTag = strings.TrimSuffix(strings.TrimPrefix(capName, "def."), ".name")
				nameNode = c.Node
			case strings.HasPrefix(capName, "def.") && strings.HasSuffix(capName, ".receiver"):
				receiver = nodeText(source, c.Node)
			case strings.HasPrefix(capName, "def.") && strings.HasSuffix(capName, ".body"):
				bodyNode = c.Node
			case strings.HasPrefix(capName, "def."):
				kindTag = strings.TrimPrefix(capName, "def.")
				defNode = c.Node
			}
		}
		if defNode == nil || nameNode == nil {
			continue
		}
		kind, ok := kindByTag[kindTag]
		if !ok {
			continue
		}
		name := nodeText(source, nameNode)
		if name == "" {
			continue
		}
		candidates = append(candidates, rawDef{kind: kind, name: name, receiver: receiver, node: defNode, nameNode: nameNode, body: bodyNode})
	}

	// A function nested in a class body matches both a language's
	// class-scoped "method" pattern and its plain top-level "function"
	// pattern (tree-sitter queries can't express "not inside a class").
	// Collapse same-range duplicates, preferring the more specific kind.
	specificity := map[api.SymbolKind]int{api.KindMethod: 2, api.KindFunction: 1}
	indexByRange := map[[2]uint32]int{}
	var defs []rawDef
	for _, d := range candidates {
		key := [2]uint32{d.node.StartByte(), d.node.EndByte()}
		if idx, ok := indexByRange[key]; ok {
			if specificity[d.kind] > specificity[defs[idx].kind] {
				defs[idx] = d
			}
			continue
		}
		indexByRange[key] = len(defs)
		defs = append(defs, d)
	}
	return defs, nil
}

func extractRefs(spec *LanguageSpec, root *sitter.Node, source []byte, defs []rawDef) ([]api.ParsedEdge, error) {
	q, err := compiledQuery(&refQueryCache, spec.Name, spec.RefQuery, spec.Lang)
	if err != nil {
		return nil, cgerrors.Parse("compile ref query", err)
	}
	if q == nil {
		return nil, nil
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var edges []api.ParsedEdge
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, source)
		if len(m.Captures) == 0 {
			continue
		}

		for _, c := range m.Captures {
			capName := q.CaptureNameForId(c.Index)
			if !strings.HasPrefix(capName, "ref.") || !strings.HasSuffix(capName, ".name") {
				continue
			}
			kindTag := strings.TrimSuffix(strings.TrimPrefix(capName, "ref."), ".name")
			edgeKind, ok := edgeKindByTag[kindTag]
			if !ok {
				continue
			}
			target := nodeText(source, c.Node)
			if target == "" {
				continue
			}
			if dotIdx := strings.LastIndexByte(target, '.'); edgeKind == api.EdgeCalls && dotIdx >= 0 {
				target = target[dotIdx+1:]
			}
			line, _ := lineRange(c.Node)
			edges = append(edges, api.ParsedEdge{
				SourceIndex: enclosingDefIndex(defs, c.Node),
				TargetName:  target,
				Kind:        edgeKind,
				Line:        line,
			})
		}
	}
	return edges, nil
}

// enclosingDefIndex finds the smallest def of any kind whose range
// contains n, so a reference inside a variable's initializer attaches to
// that variable and one inside a function body to that function.
func enclosingDefIndex(defs []rawDef, n *sitter.Node) int {
	best := -1
	for i, d := range defs {
		if d.node.StartByte() <= n.StartByte() && d.node.EndByte() >= n.EndByte() {
			if best == -1 || narrower(d.node, defs[best].node) {
				best = i
			}
		}
	}
	return best
}
