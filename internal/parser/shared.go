package parser

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
)

func nodeText(src []byte, n *sitter.Node) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if end > uint32(len(src)) || start > end {
		return ""
	}
	return string(src[start:end])
}

// lineRange converts tree-sitter's 0-based rows to 1-based line numbers,
// matching the convention api.Symbol documents.
func lineRange(n *sitter.Node) (start, end int) {
	return int(n.StartPoint().Row) + 1, int(n.EndPoint().Row) + 1
}

// signatureOf returns the definition header: from the start of defNode up
// to (but not including) the body, single-lined and trimmed. Falls back
// to the first line of the whole node when no body node is identified.
func signatureOf(src []byte, defNode, bodyNode *sitter.Node) string {
	var raw string
	if bodyNode != nil && bodyNode.StartByte() > defNode.StartByte() {
		raw = string(src[defNode.StartByte():bodyNode.StartByte()])
	} else {
		raw = nodeText(src, defNode)
		if idx := strings.IndexByte(raw, '\n'); idx >= 0 {
			raw = raw[:idx]
		}
	}
	raw = strings.Join(strings.Fields(raw), " ")
	return strings.TrimRight(raw, "{ \t")
}

// goVisibility: exported iff the first rune of the identifier is upper case.
func goVisibility(name string) string {
	for _, r := range name {
		if unicode.IsUpper(r) {
			return "public"
		}
		return "private"
	}
	return "public"
}

// underscoreVisibility: Python/Ruby convention — a single leading
// underscore is "private" (by convention, not enforced by the
// language), a dunder/leading-double-underscore is still private.
func underscoreVisibility(name string) string {
	if strings.HasPrefix(name, "_") {
		return "private"
	}
	return "public"
}

// findAncestorOfType walks up from n looking for the nearest ancestor
// whose grammar type is one of types.
func findAncestorOfType(n *sitter.Node, types ...string) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		t := p.Type()
		for _, want := range types {
			if t == want {
				return p
			}
		}
	}
	return nil
}

// childByFieldText returns the text of a named field child, or "".
func childByFieldText(src []byte, n *sitter.Node, field string) string {
	if n == nil {
		return ""
	}
	c := n.ChildByFieldName(field)
	return nodeText(src, c)
}
