package ast

import "github.com/neri/toyscript-wasm/cerr"

// Expression is one expression node. Implementations are the *Expr
// types below.
type Expression interface {
	exprNode()
	Position() cerr.Position
}

// IntLit is an integer literal. It carries no fixed type of its own;
// the type system assigns one from context (§4.4 "integer literal
// with no context").
type IntLit struct {
	Value int64
	Pos   cerr.Position
}

type FloatLit struct {
	Value float64
	Pos   cerr.Position
}

type BoolLit struct {
	Value bool
	Pos   cerr.Position
}

type StringLit struct {
	Value string
	Pos   cerr.Position
}

type Ident struct {
	Name string
	Pos  cerr.Position
}

// BinaryExpr is a binary operator expression: arithmetic, bitwise,
// shift, comparison, or logical `&&`/`||`. The logical operators use
// this same node kind; there is no separate logical node.
type BinaryExpr struct {
	Op    string // "+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>", "==", "!=", "<", "<=", ">", ">=", "&&", "||"
	Left  Expression
	Right Expression
	Pos   cerr.Position
}

// UnaryExpr is a prefix unary operator: "-" or "!".
type UnaryExpr struct {
	Op string
	X  Expression
	Pos cerr.Position
}

// IncDecExpr is a prefix or postfix "++"/"--" applied to an lvalue.
type IncDecExpr struct {
	Op      string // "++" or "--"
	X       Expression
	Postfix bool
	Pos     cerr.Position
}

// AssignExpr covers plain "=" and the compound assignment operators
// ("+=", "-=", etc.), which the code generator decomposes into a
// read-modify-write sequence.
type AssignExpr struct {
	Op     string // "=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>="
	Target Expression
	Value  Expression
	Pos    cerr.Position
}

// CallExpr is a function call by name; the language has no first-class
// function values, so the callee is always a bare identifier.
type CallExpr struct {
	Callee string
	Args   []Expression
	Pos    cerr.Position
}

// NewExpr is a class instantiation: `new ClassName(args...)`.
type NewExpr struct {
	ClassName string
	Args      []Expression
	Pos       cerr.Position
}

// CastExpr is an explicit `x as T` conversion.
type CastExpr struct {
	X    Expression
	Type TypeRef
	Pos  cerr.Position
}

func (e *IntLit) exprNode()     {}
func (e *FloatLit) exprNode()   {}
func (e *BoolLit) exprNode()    {}
func (e *StringLit) exprNode()  {}
func (e *Ident) exprNode()      {}
func (e *BinaryExpr) exprNode() {}
func (e *UnaryExpr) exprNode()  {}
func (e *IncDecExpr) exprNode() {}
func (e *AssignExpr) exprNode() {}
func (e *CallExpr) exprNode()   {}
func (e *NewExpr) exprNode()    {}
func (e *CastExpr) exprNode()   {}

func (e *IntLit) Position() cerr.Position     { return e.Pos }
func (e *FloatLit) Position() cerr.Position   { return e.Pos }
func (e *BoolLit) Position() cerr.Position    { return e.Pos }
func (e *StringLit) Position() cerr.Position  { return e.Pos }
func (e *Ident) Position() cerr.Position      { return e.Pos }
func (e *BinaryExpr) Position() cerr.Position { return e.Pos }
func (e *UnaryExpr) Position() cerr.Position  { return e.Pos }
func (e *IncDecExpr) Position() cerr.Position { return e.Pos }
func (e *AssignExpr) Position() cerr.Position { return e.Pos }
func (e *CallExpr) Position() cerr.Position   { return e.Pos }
func (e *NewExpr) Position() cerr.Position    { return e.Pos }
func (e *CastExpr) Position() cerr.Position   { return e.Pos }
