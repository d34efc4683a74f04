// Package ast defines the syntax tree produced by the parser and
// consumed by the code generator: top-level declarations, statements
// and expressions of the `src` language (§4.2 of the language
// specification).
package ast

import "github.com/neri/toyscript-wasm/cerr"

// File is the root of one parsed source unit: its top-level function
// and class declarations, plus any statements that appear directly at
// top level (compiled into an implicit "main" function).
type File struct {
	Functions []*FunctionDecl
	Classes   []*ClassDecl
	Main      []Statement
}

// TypeRef names a type as written in source: a bare identifier, one of
// the primitive spellings ("i32", "boolean", "string", ...) or a
// previously declared class name. Generic type arguments are not part
// of this language.
type TypeRef struct {
	Name string
	Pos  cerr.Position
}

// Param is one function or constructor parameter.
type Param struct {
	Name string
	Type TypeRef
	Pos  cerr.Position
}
