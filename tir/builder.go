package tir

import (
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/primitive"
)

// Builder assembles one Function body instruction by instruction,
// tracking the block nesting stack so control-flow emission can be
// validated as it happens rather than in a separate pass.
type Builder struct {
	name   string
	params []Local
	locals []Local
	result primitive.Primitive

	code  []Instr
	calls []CallSite

	openBlocks []BlockIndex
	line       int
}

// NewBuilder starts a function body with the given name, parameters and
// declared return type.
func NewBuilder(name string, params []Local, result primitive.Primitive) *Builder {
	return &Builder{name: name, params: params, result: result}
}

// SetLine sets the source line attributed to subsequently emitted
// instructions, for diagnostics and the explain mode.
func (b *Builder) SetLine(line int) { b.line = line }

// AddLocal declares a new local variable and returns its index.
func (b *Builder) AddLocal(name string, typ primitive.Primitive) LocalIndex {
	b.locals = append(b.locals, Local{Name: name, Type: typ})
	return LocalIndex(len(b.params) + len(b.locals) - 1)
}

func (b *Builder) emit(in Instr) SsaIndex {
	in.Line = b.line
	b.code = append(b.code, in)
	return SsaIndex(len(b.code) - 1)
}

func (b *Builder) EmitConstI32(v int32) SsaIndex { return b.emit(Instr{Op: I32Const, Imm: ConstI32(v)}) }
func (b *Builder) EmitConstI64(v int64) SsaIndex { return b.emit(Instr{Op: I64Const, Imm: ConstI64(v)}) }
func (b *Builder) EmitConstF32(v float32) SsaIndex { return b.emit(Instr{Op: F32Const, Imm: ConstF32(v)}) }
func (b *Builder) EmitConstF64(v float64) SsaIndex { return b.emit(Instr{Op: F64Const, Imm: ConstF64(v)}) }

func (b *Builder) EmitBinOp(op Op, lhs, rhs SsaIndex) SsaIndex {
	return b.emit(Instr{Op: op, A: int32(lhs), B: int32(rhs)})
}

func (b *Builder) EmitCmp(op Op, lhs, rhs SsaIndex) SsaIndex {
	return b.emit(Instr{Op: op, A: int32(lhs), B: int32(rhs)})
}

func (b *Builder) EmitUnOp(op Op, v SsaIndex) SsaIndex {
	return b.emit(Instr{Op: op, A: int32(v)})
}

// EmitCast casts v from its known static type to target. Both ends of
// the conversion are recorded on the instruction (A = operand, B =
// source TypeID, Imm.I32 = target TypeID) so the emitter can select the
// correct Wasm conversion opcode without re-inferring the source type
// from the flat instruction stream.
func (b *Builder) EmitCast(v SsaIndex, from, target primitive.Primitive) SsaIndex {
	return b.emit(Instr{Op: Cast, A: int32(v), B: int32(from.TypeID()), Imm: Constant{I32: int32(target.TypeID())}})
}

func (b *Builder) EmitLocalGet(idx LocalIndex) SsaIndex {
	return b.emit(Instr{Op: LocalGet, A: int32(idx)})
}

func (b *Builder) EmitLocalSet(idx LocalIndex, v SsaIndex) {
	b.emit(Instr{Op: LocalSet, A: int32(idx), B: int32(v)})
}

func (b *Builder) EmitLocalTee(idx LocalIndex, v SsaIndex) SsaIndex {
	return b.emit(Instr{Op: LocalTee, A: int32(idx), B: int32(v)})
}

func (b *Builder) EmitDrop(v SsaIndex) { b.emit(Instr{Op: Drop, A: int32(v)}) }

func (b *Builder) EmitReturn(v SsaIndex) { b.emit(Instr{Op: Return, A: int32(v)}) }

func (b *Builder) EmitReturnVoid() { b.emit(Instr{Op: Return, A: -1}) }

func (b *Builder) emitCallSite(callee string, args []SsaIndex) int32 {
	a := make([]int32, len(args))
	for i, s := range args {
		a[i] = int32(s)
	}
	b.calls = append(b.calls, CallSite{Callee: callee, Args: a})
	return int32(len(b.calls) - 1)
}

func (b *Builder) EmitCall(callee string, args []SsaIndex) {
	b.emit(Instr{Op: Call, A: b.emitCallSite(callee, args)})
}

func (b *Builder) EmitCallV(callee string, args []SsaIndex) SsaIndex {
	return b.emit(Instr{Op: CallV, A: b.emitCallSite(callee, args)})
}

// OpenBlock opens a forward-branch-only structured block and returns
// its index (the position of the opening instruction, used as the
// branch target by Br/BrIf).
func (b *Builder) OpenBlock() BlockIndex {
	idx := BlockIndex(len(b.code))
	b.emit(Instr{Op: Block, A: int32(idx)})
	b.openBlocks = append(b.openBlocks, idx)
	return idx
}

// OpenLoop opens a loop block, branches to which jump back to the top.
func (b *Builder) OpenLoop() BlockIndex {
	idx := BlockIndex(len(b.code))
	b.emit(Instr{Op: Loop, A: int32(idx)})
	b.openBlocks = append(b.openBlocks, idx)
	return idx
}

// CloseBlock emits the matching End for the most recently opened block
// and pops it off the nesting stack. Returns an Internal cerr.Error if
// idx does not match the innermost open block.
func (b *Builder) CloseBlock(idx BlockIndex) error {
	n := len(b.openBlocks)
	if n == 0 || b.openBlocks[n-1] != idx {
		return cerr.Internal(cerr.Position{}, len(b.code), "end", "mismatched block nesting")
	}
	b.openBlocks = b.openBlocks[:n-1]
	b.emit(Instr{Op: End, A: int32(idx)})
	return nil
}

func (b *Builder) EmitBr(target BlockIndex) { b.emit(Instr{Op: Br, A: int32(target)}) }

func (b *Builder) EmitBrIf(cond SsaIndex, target BlockIndex) {
	b.emit(Instr{Op: BrIf, A: int32(cond), B: int32(target)})
}

// Pos returns the SsaIndex the next emitted instruction will receive;
// useful for computing forward branch targets before the target block
// is opened.
func (b *Builder) Pos() SsaIndex { return SsaIndex(len(b.code)) }

// Build finalizes the function body. It fails if any opened block was
// never closed.
func (b *Builder) Build(exported bool) (*Function, error) {
	if len(b.openBlocks) != 0 {
		return nil, cerr.New(cerr.PhaseCodegen, cerr.KindInternal).
			Detail("unclosed block at function end").Build()
	}
	return &Function{
		Name:     b.name,
		Params:   b.params,
		Locals:   b.locals,
		Result:   b.result,
		Code:     b.code,
		Calls:    b.calls,
		Exported: exported,
	}, nil
}
