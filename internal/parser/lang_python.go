package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/agentic-research/codegraph/api"
)

func init() {
	register(&LanguageSpec{
		Name:       "python",
		Extensions: []string{".py"},
		Lang:       python.GetLanguage(),
		SymbolQuery: `
			(class_definition
				name: (identifier) @def.class.name
				body: (block) @def.class.body
			) @def.class

			(class_definition
				body: (block
					(function_definition
						name: (identifier) @def.method.name
						body: (block) @def.method.body
					) @def.method
				)
			)

			(function_definition
				name: (identifier) @def.function.name
				body: (block) @def.function.body
			) @def.function

			(assignment
				left: (identifier) @def.variable.name
			) @def.variable

			(import_statement
				name: (dotted_name) @def.import.name
			) @def.import

			(import_from_statement
				module_name: (dotted_name) @def.import.name
			) @def.import
		`,
		RefQuery: `
			(call function: (identifier) @ref.call.name)
			(call function: (attribute attribute: (identifier) @ref.call.name))
			(class_definition superclasses: (argument_list (identifier) @ref.inherit.name))
			(raise_statement (call function: (identifier) @ref.raise.name))
			(except_clause (identifier) @ref.type.name)
		`,
		VisibilityFunc: func(src []byte, nameNode, defNode *sitter.Node) api.Visibility {
			if underscoreVisibility(nodeText(src, nameNode)) == "private" {
				return api.VisibilityPrivate
			}
			return api.VisibilityPublic
		},
	})
}
