package ast

import "github.com/neri/toyscript-wasm/cerr"

// FunctionDecl is a top-level or class-method function declaration.
type FunctionDecl struct {
	Name     string
	Params   []Param
	Result   *TypeRef // nil means inferred/void
	Body     []Statement
	Exported bool
	Pos      cerr.Position
}

// FieldDecl is one `class` field declaration.
type FieldDecl struct {
	Name string
	Type TypeRef
	Init Expression // nil if not default-initialized
	Pos  cerr.Position
}

// ClassDecl is a `class` declaration: fields, an optional constructor
// and any further methods. A superclass name is recorded and must
// resolve to a known type, but nothing is inherited from it. Generics
// and decorators are not supported.
type ClassDecl struct {
	Name        string
	SuperClass  string // empty if none
	Fields      []FieldDecl
	Constructor *FunctionDecl // nil if the class declares no constructor
	Methods     []*FunctionDecl
	Pos         cerr.Position
}
