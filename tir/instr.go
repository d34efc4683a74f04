package tir

// Instr is one TIR instruction. Operand fields are interpreted
// according to Op.Class():
//
//	ClassNoParam  -- no operands
//	ClassBlock    -- A = own BlockIndex (this instruction's position)
//	ClassControl  -- meaning depends on Op (see below)
//	ClassConst    -- Imm carries the literal value
//	ClassLocal    -- A = LocalIndex; for LocalSet/LocalTee, B = SsaIndex of the stored value
//	ClassUnOp     -- A = SsaIndex of the operand; for Cast, Imm.I32 carries the target primitive's TypeID
//	ClassCmp      -- A, B = SsaIndex of lhs/rhs
//	ClassBinOp    -- A, B = SsaIndex of lhs/rhs
//
// Control-class specifics:
//
//	Br        -- A = target BlockIndex
//	BrIf      -- A = condition SsaIndex, B = target BlockIndex
//	Call      -- A = ArrayIndex into Function.Calls (callee + args), result is unused (void)
//	CallV     -- same as Call but produces a value
//	Drop      -- A = SsaIndex of the dropped value
//	Return    -- A = SsaIndex of the returned value, or -1 for a void return
//	UnaryNop  -- A = SsaIndex this instruction aliases (pure renaming, emits nothing)
//	DropRight -- A = SsaIndex kept virtually (l), B = SsaIndex dropped for real (s)
//	Drop2     -- A = SsaIndex dropped second (l), B = SsaIndex dropped first (s)
type Instr struct {
	Op   Op
	A    int32
	B    int32
	Imm  Constant
	Line int
}

func (i Instr) String() string { return i.Op.String() }
