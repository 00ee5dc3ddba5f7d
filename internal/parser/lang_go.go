package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/agentic-research/codegraph/api"
)

func init() {
	register(&LanguageSpec{
		Name:       "go",
		Extensions: []string{".go"},
		Lang:       golang.GetLanguage(),
		SymbolQuery: `
			(function_declaration
				name: (identifier) @def.function.name
				body: (block) @def.function.body
			) @def.function

			(method_declaration
				receiver: (parameter_list
					(parameter_declaration type: (pointer_type (type_identifier) @def.method.receiver)))
				name: (field_identifier) @def.method.name
				body: (block) @def.method.body
			) @def.method

			(method_declaration
				receiver: (parameter_list
					(parameter_declaration type: (type_identifier) @def.method.receiver))
				name: (field_identifier) @def.method.name
				body: (block) @def.method.body
			) @def.method

			(type_declaration
				(type_spec name: (type_identifier) @def.struct.name type: (struct_type))
			) @def.struct

			(type_declaration
				(type_spec name: (type_identifier) @def.interface.name type: (interface_type))
			) @def.interface

			(const_declaration
				(const_spec name: (identifier) @def.constant.name)
			) @def.constant

			(var_declaration
				(var_spec name: (identifier) @def.variable.name)
			) @def.variable

			(import_spec path: (interpreted_string_literal) @def.import.name) @def.import
		`,
		RefQuery: `
			(call_expression function: (identifier) @ref.call.name)
			(call_expression function: (selector_expression field: (field_identifier) @ref.call.name))
		`,
		VisibilityFunc: func(src []byte, nameNode, defNode *sitter.Node) api.Visibility {
			if goVisibility(nodeText(src, nameNode)) == "public" {
				return api.VisibilityPublic
			}
			return api.VisibilityPrivate
		},
	})
}
