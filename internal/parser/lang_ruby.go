package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/agentic-research/codegraph/api"
)

func init() {
	register(&LanguageSpec{
		Name:       "ruby",
		Extensions: []string{".rb"},
		Lang:       ruby.GetLanguage(),
		SymbolQuery: `
			(class
				name: (constant) @def.class.name
				body: (body_statement) @def.class.body
			) @def.class

			(module
				name: (constant) @def.module.name
				body: (body_statement) @def.module.body
			) @def.module

			(method name: (identifier) @def.method.name) @def.method
			(singleton_method name: (identifier) @def.method.name) @def.method

			(assignment left: (constant) @def.constant.name) @def.constant
			(assignment left: (identifier) @def.variable.name) @def.variable

			(call
				method: (identifier) @_require
				arguments: (argument_list (string (string_content) @def.import.name))
				(#eq? @_require "require")
			) @def.import

			(call
				method: (identifier) @_require_rel
				arguments: (argument_list (string (string_content) @def.import.name))
				(#eq? @_require_rel "require_relative")
			) @def.import
		`,
		RefQuery: `
			(call method: (identifier) @ref.call.name)
			(class superclass: (superclass (_) @ref.inherit.name))
			(call
				method: (identifier) @_raise
				arguments: (argument_list (constant) @ref.raise.name)
				(#eq? @_raise "raise")
			)
			(rescue exceptions: (exceptions (constant) @ref.type.name))
		`,
		VisibilityFunc: func(src []byte, nameNode, defNode *sitter.Node) api.Visibility {
			if underscoreVisibility(nodeText(src, nameNode)) == "private" {
				return api.VisibilityPrivate
			}
			return api.VisibilityPublic
		},
	})
}
