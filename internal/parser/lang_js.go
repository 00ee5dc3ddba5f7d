package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/agentic-research/codegraph/api"
)

const jsSymbolQuery = `
	(class_declaration
		name: (identifier) @def.class.name
		body: (class_body) @def.class.body
	) @def.class

	(class_declaration
		body: (class_body
			(method_definition
				name: (property_identifier) @def.method.name
				body: (statement_block) @def.method.body
			) @def.method
		)
	)

	(function_declaration
		name: (identifier) @def.function.name
		body: (statement_block) @def.function.body
	) @def.function

	(lexical_declaration
		(variable_declarator name: (identifier) @def.variable.name)
	) @def.variable

	(variable_declaration
		(variable_declarator name: (identifier) @def.variable.name)
	) @def.variable

	(import_statement
		source: (string (string_fragment) @def.import.name)
	) @def.import
`

const tsExtraSymbolQuery = `
	(interface_declaration
		name: (type_identifier) @def.interface.name
		body: (interface_body) @def.interface.body
	) @def.interface

	(enum_declaration
		name: (identifier) @def.enum.name
		body: (enum_body) @def.enum.body
	) @def.enum
`

const jsRefQuery = `
	(call_expression function: (identifier) @ref.call.name)
	(call_expression function: (member_expression property: (property_identifier) @ref.call.name))
	(class_heritage (extends_clause value: (identifier) @ref.inherit.name))
	(throw_statement (new_expression constructor: (identifier) @ref.raise.name))
	(catch_clause parameter: (identifier) @ref.type.name)
`

const tsExtraRefQuery = `
	(class_heritage (implements_clause (type_identifier) @ref.inherit.name))
	(type_annotation (type_identifier) @ref.type.name)
`

func jsVisibility(src []byte, nameNode, defNode *sitter.Node) api.Visibility {
	return api.VisibilityPublic
}

func tsVisibility(src []byte, nameNode, defNode *sitter.Node) api.Visibility {
	// method_definition/class members carry an accessibility_modifier
	// child ("public"/"private"/"protected") when explicitly annotated;
	// TypeScript's default (no modifier) is public.
	for i := 0; i < int(defNode.ChildCount()); i++ {
		c := defNode.Child(i)
		if c.Type() == "accessibility_modifier" {
			switch nodeText(src, c) {
			case "private":
				return api.VisibilityPrivate
			case "protected":
				return api.VisibilityProtected
			}
		}
	}
	return api.VisibilityPublic
}

func init() {
	register(&LanguageSpec{
		Name:           "javascript",
		Extensions:     []string{".js", ".jsx", ".mjs", ".cjs"},
		Lang:           javascript.GetLanguage(),
		SymbolQuery:    jsSymbolQuery,
		RefQuery:       jsRefQuery,
		VisibilityFunc: jsVisibility,
	})

	register(&LanguageSpec{
		Name:           "typescript",
		Extensions:     []string{".ts", ".tsx"},
		Lang:           typescript.GetLanguage(),
		SymbolQuery:    jsSymbolQuery + tsExtraSymbolQuery,
		RefQuery:       jsRefQuery + tsExtraRefQuery,
		VisibilityFunc: tsVisibility,
	})
}
