package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/agentic-research/codegraph/api"
)

func init() {
	register(&LanguageSpec{
		Name:       "rust",
		Extensions: []string{".rs"},
		Lang:       rust.GetLanguage(),
		SymbolQuery: `
			(function_item
				name: (identifier) @def.function.name
				body: (block) @def.function.body
			) @def.function

			(impl_item
				type: (type_identifier) @def.method.receiver
				body: (declaration_list
					(function_item
						name: (identifier) @def.method.name
						body: (block) @def.method.body
					) @def.method
				)
			)

			(struct_item name: (type_identifier) @def.struct.name) @def.struct
			(enum_item name: (type_identifier) @def.enum.name) @def.enum
			(trait_item
				name: (type_identifier) @def.trait.name
				body: (declaration_list) @def.trait.body
			) @def.trait

			(const_item name: (identifier) @def.constant.name) @def.constant
			(static_item name: (identifier) @def.variable.name) @def.variable

			(use_declaration argument: (_) @def.import.name) @def.import
		`,
		RefQuery: `
			(call_expression function: (identifier) @ref.call.name)
			(call_expression function: (field_expression field: (field_identifier) @ref.call.name))
			(impl_item trait: (type_identifier) @ref.inherit.name)
		`,
		VisibilityFunc: func(src []byte, nameNode, defNode *sitter.Node) api.Visibility {
			// `pub` precedes the item as a sibling child of the
			// definition's own node — a visibility_modifier child.
			for i := 0; i < int(defNode.ChildCount()); i++ {
				if defNode.Child(i).Type() == "visibility_modifier" {
					return api.VisibilityPublic
				}
			}
			return api.VisibilityCrate
		},
	})
}
