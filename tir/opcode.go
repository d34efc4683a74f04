// Package tir implements the typed intermediate representation: a flat,
// SSA-style opcode stream with value and block indices (§3, §4.1 of the
// language specification).
package tir

// Op is one TIR opcode. The set is closed and enumerated, matching the
// specification's arity classes exactly.
type Op int

const (
	Add Op = iota
	And
	Block
	Br
	BrIf
	Call
	CallV
	Cast
	Dec
	DivS
	DivU
	Drop
	Drop2
	DropRight
	End
	Eq
	Eqz
	F32Const
	F64Const
	GeS
	GeU
	GtS
	GtU
	I32Const
	I64Const
	Inc
	LeS
	LeU
	LocalGet
	LocalSet
	LocalTee
	Loop
	LtS
	LtU
	Mul
	Ne
	Neg
	Nop
	Not
	Or
	RemS
	RemU
	Return
	Shl
	ShrS
	ShrU
	Sub
	UnaryNop
	Unreachable
	Xor
)

// OpClass groups opcodes by operand layout / emission discipline.
type OpClass int

const (
	ClassNoParam OpClass = iota
	ClassBlock
	ClassControl
	ClassConst
	ClassLocal
	ClassUnOp
	ClassCmp
	ClassBinOp
)

var opNames = map[Op]string{
	Add: "add", And: "and", Block: "block", Br: "br", BrIf: "br_if",
	Call: "call", CallV: "call_v", Cast: "cast", Dec: "dec", DivS: "div_s",
	DivU: "div_u", Drop: "drop", Drop2: "drop2", DropRight: "drop_right",
	End: "end", Eq: "eq", Eqz: "eqz", F32Const: "f32.const", F64Const: "f64.const",
	GeS: "ge_s", GeU: "ge_u", GtS: "gt_s", GtU: "gt_u", I32Const: "i32.const",
	I64Const: "i64.const", Inc: "inc", LeS: "le_s", LeU: "le_u",
	LocalGet: "local.get", LocalSet: "local.set", LocalTee: "local.tee",
	Loop: "loop", LtS: "lt_s", LtU: "lt_u", Mul: "mul", Ne: "ne", Neg: "neg",
	Nop: "nop", Not: "not", Or: "or", RemS: "rem_s", RemU: "rem_u",
	Return: "return", Shl: "shl", ShrS: "shr_s", ShrU: "shr_u", Sub: "sub",
	UnaryNop: "unary_nop", Unreachable: "unreachable", Xor: "xor",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "unknown_op"
}

var opClasses = map[Op]OpClass{
	Add: ClassBinOp, And: ClassBinOp, Block: ClassBlock, Br: ClassControl,
	BrIf: ClassControl, Call: ClassControl, CallV: ClassControl, Cast: ClassUnOp,
	Dec: ClassUnOp, DivS: ClassBinOp, DivU: ClassBinOp, Drop: ClassControl,
	Drop2: ClassControl, DropRight: ClassControl, End: ClassBlock, Eq: ClassCmp,
	Eqz: ClassUnOp, F32Const: ClassConst, F64Const: ClassConst, GeS: ClassCmp,
	GeU: ClassCmp, GtS: ClassCmp, GtU: ClassCmp, I32Const: ClassConst,
	I64Const: ClassConst, Inc: ClassUnOp, LeS: ClassCmp, LeU: ClassCmp,
	LocalGet: ClassLocal, LocalSet: ClassLocal, LocalTee: ClassLocal,
	Loop: ClassBlock, LtS: ClassCmp, LtU: ClassCmp, Mul: ClassBinOp, Ne: ClassCmp,
	Neg: ClassUnOp, Nop: ClassNoParam, Not: ClassUnOp, Or: ClassBinOp,
	RemS: ClassBinOp, RemU: ClassBinOp, Return: ClassControl, Shl: ClassBinOp,
	ShrS: ClassBinOp, ShrU: ClassBinOp, Sub: ClassBinOp, UnaryNop: ClassControl,
	Unreachable: ClassNoParam, Xor: ClassBinOp,
}

func (o Op) Class() OpClass { return opClasses[o] }

// IsCommutative reports whether operand order doesn't affect the result.
func (o Op) IsCommutative() bool {
	switch o {
	case Add, Mul, And, Or, Xor, Eq, Ne:
		return true
	}
	return false
}
