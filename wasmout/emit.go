package wasmout

import (
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/primitive"
	"github.com/neri/toyscript-wasm/tir"
)

// funcEmitter lowers one optimized tir.Function onto a flat
// []Instruction list and the local declarations the Wasm function
// body needs.
type funcEmitter struct {
	fn            *tir.Function
	funcIndex     map[string]uint32
	storage       []primitive.Primitive
	scratchI32    tir.LocalIndex
	scratchI64    tir.LocalIndex
	hasScratchI32 bool
	hasScratchI64 bool
	blockDepth    map[int32]int // block open SsaIndex -> nesting depth when opened
	depth         int
}

func newFuncEmitter(fn *tir.Function, funcIndex map[string]uint32) *funcEmitter {
	e := &funcEmitter{fn: fn, funcIndex: funcIndex, blockDepth: map[int32]int{}}
	e.inferStorage()
	e.allocateScratch()
	return e
}

func (e *funcEmitter) inferStorage() {
	all := e.fn.AllLocals()
	e.storage = make([]primitive.Primitive, len(e.fn.Code))
	for i, in := range e.fn.Code {
		switch in.Op {
		case tir.I32Const:
			e.storage[i] = primitive.I32
		case tir.I64Const:
			e.storage[i] = primitive.I64
		case tir.F32Const:
			e.storage[i] = primitive.F32
		case tir.F64Const:
			e.storage[i] = primitive.F64
		case tir.LocalGet:
			if int(in.A) < len(all) {
				e.storage[i] = all[in.A].Type.StorageType()
			}
		case tir.LocalTee:
			if int(in.A) < len(all) {
				e.storage[i] = all[in.A].Type.StorageType()
			}
		case tir.Eq, tir.Ne, tir.LtS, tir.LtU, tir.LeS, tir.LeU, tir.GtS, tir.GtU, tir.GeS, tir.GeU, tir.Eqz:
			e.storage[i] = primitive.I32
		case tir.Add, tir.Sub, tir.Mul, tir.DivS, tir.DivU, tir.RemS, tir.RemU,
			tir.And, tir.Or, tir.Xor, tir.Shl, tir.ShrS, tir.ShrU, tir.Neg, tir.Not, tir.Inc, tir.Dec:
			if int(in.A) < len(e.storage) {
				e.storage[i] = e.storage[in.A]
			}
		case tir.Cast:
			to, _ := primitive.FromTypeID(uint32(in.Imm.I32))
			e.storage[i] = to.StorageType()
		case tir.CallV:
			e.storage[i] = e.fn.Result.StorageType() // refined by caller via calleeResult when available
		}
	}
}

func (e *funcEmitter) allocateScratch() {
	next := tir.LocalIndex(len(e.fn.AllLocals()))
	for _, in := range e.fn.Code {
		switch in.Op {
		case tir.Neg, tir.Not, tir.Inc, tir.Dec:
			if int(in.A) >= len(e.storage) {
				continue
			}
			switch e.storage[in.A] {
			case primitive.I64:
				if !e.hasScratchI64 {
					e.hasScratchI64 = true
					e.scratchI64 = next
					next++
				}
			default:
				if !e.hasScratchI32 {
					e.hasScratchI32 = true
					e.scratchI32 = next
					next++
				}
			}
		}
	}
}

// scratchLocals returns the extra locals to append to the function's
// declared locals, in allocation order.
func (e *funcEmitter) scratchLocals() []tir.Local {
	var extra []tir.Local
	if e.hasScratchI32 {
		extra = append(extra, tir.Local{Name: "$scratch32", Type: primitive.I32})
	}
	if e.hasScratchI64 {
		extra = append(extra, tir.Local{Name: "$scratch64", Type: primitive.I64})
	}
	return extra
}

func (e *funcEmitter) emit() ([]Instruction, error) {
	var out []Instruction
	for i, in := range e.fn.Code {
		instrs, err := e.emitOne(int32(i), in)
		if err != nil {
			return nil, err
		}
		out = append(out, instrs...)
	}
	out = append(out, Instruction{Opcode: OpEnd})
	return out, nil
}

func (e *funcEmitter) emitOne(idx int32, in tir.Instr) ([]Instruction, error) {
	switch in.Op {
	case tir.I32Const:
		return []Instruction{{Opcode: OpI32Const, Imm: I32Imm{Value: in.Imm.I32}}}, nil
	case tir.I64Const:
		return []Instruction{{Opcode: OpI64Const, Imm: I64Imm{Value: in.Imm.I64}}}, nil
	case tir.F32Const:
		return []Instruction{{Opcode: OpF32Const, Imm: F32Imm{Value: in.Imm.F32}}}, nil
	case tir.F64Const:
		return []Instruction{{Opcode: OpF64Const, Imm: F64Imm{Value: in.Imm.F64}}}, nil

	case tir.LocalGet:
		return []Instruction{{Opcode: OpLocalGet, Imm: LocalImm{LocalIdx: uint32(in.A)}}}, nil
	case tir.LocalSet:
		return []Instruction{{Opcode: OpLocalSet, Imm: LocalImm{LocalIdx: uint32(in.A)}}}, nil
	case tir.LocalTee:
		return []Instruction{{Opcode: OpLocalTee, Imm: LocalImm{LocalIdx: uint32(in.A)}}}, nil

	case tir.Add, tir.Sub, tir.Mul, tir.DivS, tir.DivU, tir.RemS, tir.RemU,
		tir.And, tir.Or, tir.Xor, tir.Shl, tir.ShrS, tir.ShrU,
		tir.Eq, tir.Ne, tir.LtS, tir.LtU, tir.LeS, tir.LeU, tir.GtS, tir.GtU, tir.GeS, tir.GeU:
		storage := e.storageOf(in.A)
		op, ok := binOpcode(in.Op, storage)
		if !ok {
			return nil, e.internalErr(idx, "no wasm opcode for binop/cmp on storage type")
		}
		return []Instruction{{Opcode: op}}, nil

	case tir.Eqz:
		op, ok := eqzOpcode(e.storageOf(in.A))
		if !ok {
			return nil, e.internalErr(idx, "eqz on unsupported storage type")
		}
		return []Instruction{{Opcode: op}}, nil

	case tir.Neg:
		return e.emitNeg(idx, in)
	case tir.Not:
		return e.emitNot(idx, in)
	case tir.Inc:
		return e.emitIncDec(idx, in, true)
	case tir.Dec:
		return e.emitIncDec(idx, in, false)

	case tir.Cast:
		return e.emitCast(idx, in)

	case tir.Drop:
		return []Instruction{{Opcode: OpDrop}}, nil

	case tir.Return:
		return []Instruction{{Opcode: OpReturn}}, nil

	case tir.Call, tir.CallV:
		cs := e.fn.Calls[in.A]
		fnIdx, ok := e.funcIndex[cs.Callee]
		if !ok {
			return nil, cerr.New(cerr.PhaseEmit, cerr.KindIdentifierNotFound).Name(cs.Callee).Build()
		}
		return []Instruction{{Opcode: OpCall, Imm: CallImm{FuncIdx: fnIdx}}}, nil

	case tir.Block:
		e.blockDepth[idx] = e.depth
		e.depth++
		return []Instruction{{Opcode: OpBlock, Imm: BlockImm{Type: -64}}}, nil
	case tir.Loop:
		e.blockDepth[idx] = e.depth
		e.depth++
		return []Instruction{{Opcode: OpLoop, Imm: BlockImm{Type: -64}}}, nil
	case tir.End:
		e.depth--
		return []Instruction{{Opcode: OpEnd}}, nil
	case tir.Br:
		return []Instruction{{Opcode: OpBr, Imm: BranchImm{LabelIdx: e.relDepth(in.A)}}}, nil
	case tir.BrIf:
		return []Instruction{{Opcode: OpBrIf, Imm: BranchImm{LabelIdx: e.relDepth(in.B)}}}, nil
	}
	return nil, e.internalErr(idx, "unhandled opcode in wasm emission: "+in.Op.String())
}

func (e *funcEmitter) relDepth(target int32) uint32 {
	openDepth, ok := e.blockDepth[target]
	if !ok {
		return 0
	}
	// depth-1 is the innermost currently-open block's relative index 0;
	// a block opened at openDepth is (currentlyOpen - openDepth - 1) away.
	return uint32(e.depth - openDepth - 1)
}

func (e *funcEmitter) storageOf(i int32) primitive.Primitive {
	if i < 0 || int(i) >= len(e.storage) {
		return primitive.I32
	}
	return e.storage[i]
}

func (e *funcEmitter) emitNeg(idx int32, in tir.Instr) ([]Instruction, error) {
	storage := e.storageOf(in.A)
	switch storage {
	case primitive.F32:
		return []Instruction{{Opcode: OpF32Neg}}, nil
	case primitive.F64:
		return []Instruction{{Opcode: OpF64Neg}}, nil
	case primitive.I64:
		return []Instruction{
			{Opcode: OpLocalSet, Imm: LocalImm{LocalIdx: uint32(e.scratchI64)}},
			{Opcode: OpI64Const, Imm: I64Imm{Value: 0}},
			{Opcode: OpLocalGet, Imm: LocalImm{LocalIdx: uint32(e.scratchI64)}},
			{Opcode: OpI64Sub},
		}, nil
	default:
		return []Instruction{
			{Opcode: OpLocalSet, Imm: LocalImm{LocalIdx: uint32(e.scratchI32)}},
			{Opcode: OpI32Const, Imm: I32Imm{Value: 0}},
			{Opcode: OpLocalGet, Imm: LocalImm{LocalIdx: uint32(e.scratchI32)}},
			{Opcode: OpI32Sub},
		}, nil
	}
}

func (e *funcEmitter) emitNot(idx int32, in tir.Instr) ([]Instruction, error) {
	storage := e.storageOf(in.A)
	if storage == primitive.I64 {
		return []Instruction{
			{Opcode: OpLocalSet, Imm: LocalImm{LocalIdx: uint32(e.scratchI64)}},
			{Opcode: OpLocalGet, Imm: LocalImm{LocalIdx: uint32(e.scratchI64)}},
			{Opcode: OpI64Const, Imm: I64Imm{Value: -1}},
			{Opcode: OpI64Xor},
		}, nil
	}
	return []Instruction{
		{Opcode: OpLocalSet, Imm: LocalImm{LocalIdx: uint32(e.scratchI32)}},
		{Opcode: OpLocalGet, Imm: LocalImm{LocalIdx: uint32(e.scratchI32)}},
		{Opcode: OpI32Const, Imm: I32Imm{Value: -1}},
		{Opcode: OpI32Xor},
	}, nil
}

func (e *funcEmitter) emitIncDec(idx int32, in tir.Instr, inc bool) ([]Instruction, error) {
	storage := e.storageOf(in.A)
	if storage == primitive.I64 {
		op := OpI64Add
		if !inc {
			op = OpI64Sub
		}
		return []Instruction{
			{Opcode: OpLocalSet, Imm: LocalImm{LocalIdx: uint32(e.scratchI64)}},
			{Opcode: OpLocalGet, Imm: LocalImm{LocalIdx: uint32(e.scratchI64)}},
			{Opcode: OpI64Const, Imm: I64Imm{Value: 1}},
			{Opcode: op},
		}, nil
	}
	op := OpI32Add
	if !inc {
		op = OpI32Sub
	}
	return []Instruction{
		{Opcode: OpLocalSet, Imm: LocalImm{LocalIdx: uint32(e.scratchI32)}},
		{Opcode: OpLocalGet, Imm: LocalImm{LocalIdx: uint32(e.scratchI32)}},
		{Opcode: OpI32Const, Imm: I32Imm{Value: 1}},
		{Opcode: op},
	}, nil
}

func (e *funcEmitter) emitCast(idx int32, in tir.Instr) ([]Instruction, error) {
	to, ok := primitive.FromTypeID(uint32(in.Imm.I32))
	if !ok {
		return nil, e.internalErr(idx, "cast to unknown primitive type id")
	}
	from, ok := primitive.FromTypeID(uint32(in.B))
	if !ok {
		from = e.storageOf(in.A)
	}

	if from.IsFloat() && !to.IsFloat() {
		return floatToIntInstrs(from, to), nil
	}

	op, ok := castLadder(from, to)
	if !ok {
		if to.BitsOf() < 32 && !to.IsFloat() && !from.IsFloat() {
			return e.emitNarrowingMask(to)
		}
		return nil, nil // same-storage cast: a pure type-system fiction, no bytes
	}
	return []Instruction{{Opcode: op}}, nil
}

// emitNarrowingMask truncates an I32-storage value down to an 8/16-bit
// primitive's range using the sign/zero-extend opcodes, for casts like
// `as i8` that must actually clip the stored bit pattern.
func (e *funcEmitter) emitNarrowingMask(to primitive.Primitive) ([]Instruction, error) {
	switch {
	case to == primitive.I8:
		return []Instruction{{Opcode: OpI32Extend8S}}, nil
	case to == primitive.I16:
		return []Instruction{{Opcode: OpI32Extend16S}}, nil
	case to == primitive.U8:
		return []Instruction{
			{Opcode: OpI32Const, Imm: I32Imm{Value: 0xff}},
			{Opcode: OpI32And},
		}, nil
	case to == primitive.U16:
		return []Instruction{
			{Opcode: OpI32Const, Imm: I32Imm{Value: 0xffff}},
			{Opcode: OpI32And},
		}, nil
	}
	return nil, nil
}

func (e *funcEmitter) internalErr(idx int32, detail string) error {
	return cerr.Internal(cerr.Position{}, int(idx), "", detail)
}
