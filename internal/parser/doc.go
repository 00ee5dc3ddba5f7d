package parser

// Capture naming convention used by every LanguageSpec's queries.
//
// Definition captures (SymbolQuery), one pair per definition:
//
//	@def.<kind>       the whole definition node (range = symbol span)
//	@def.<kind>.name  the identifier node (symbol name)
//
// <kind> is one of: function, method, class, module, struct, enum, trait,
// interface, variable, constant, import — matching api.SymbolKind names
// (lowercased). A method capture may additionally include:
//
//	@def.method.receiver   the receiver/enclosing-type identifier, used to
//	                       build QualifiedName and, when containment finds
//	                       no parent (Go/Rust methods outside their
//	                       type's body), to resolve ParentIndex by name.
//
// Reference captures (RefQuery), one pair per reference:
//
//	@ref.call.name     a call target's bare name ("b" in "a.b(...)")
//	@ref.raise.name     a thrown/raised exception type name
//	@ref.inherit.name   a superclass/interface/trait name
//	@ref.import.name    an imported module/package path
//	@ref.type.name      a type reference: a type annotation, or the
//	                    identifier at an except/catch/rescue site (the
//	                    caught type for except/rescue; the bound
//	                    parameter name for a JS catch clause)
//
// Every capture is scoped to the innermost enclosing definition by byte
// range containment — the engine does not require queries to express
// scope explicitly.
