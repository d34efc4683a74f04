package tir

import (
	"fmt"
	"strings"

	"github.com/neri/toyscript-wasm/primitive"
)

// CallSite is the side-table entry referenced by Call/CallV instructions.
type CallSite struct {
	Callee string
	Args   []int32 // SsaIndex of each argument, in order
}

// Function is an immutable, fully-built TIR function body: a flat
// instruction stream plus the side tables every Control-class
// instruction indexes into.
type Function struct {
	Name    string
	Params  []Local
	Locals  []Local // declared locals, excluding params
	Result  primitive.Primitive
	Code    []Instr
	Calls   []CallSite
	Exported bool
}

// AllLocals returns params followed by declared locals, in LocalIndex order.
func (f *Function) AllLocals() []Local {
	all := make([]Local, 0, len(f.Params)+len(f.Locals))
	all = append(all, f.Params...)
	all = append(all, f.Locals...)
	return all
}

// Disassemble renders the function body as readable text, one
// instruction per line, in the form the explain mode and golden
// instruction-sequence tests both rely on.
func (f *Function) Disassemble() string {
	var b strings.Builder
	fmt.Fprintf(&b, "func %s(", f.Name)
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", p.Name, p.Type)
	}
	fmt.Fprintf(&b, ") -> %s {\n", f.Result)
	for idx, in := range f.Code {
		b.WriteString("  ")
		b.WriteString(disassembleInstr(f, idx, in))
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String()
}

func disassembleInstr(f *Function, idx int, in Instr) string {
	r := fmt.Sprintf("%%%d", idx)
	switch in.Op.Class() {
	case ClassNoParam:
		return in.Op.String()
	case ClassConst:
		return fmt.Sprintf("%s = %s %s", r, in.Op, constLiteral(in.Imm))
	case ClassLocal:
		switch in.Op {
		case LocalGet:
			return fmt.Sprintf("%s = local.get $%d", r, in.A)
		case LocalSet:
			return fmt.Sprintf("local.set $%d, %%%d", in.A, in.B)
		case LocalTee:
			return fmt.Sprintf("%s = local.tee $%d, %%%d", r, in.A, in.B)
		}
	case ClassUnOp:
		if in.Op == Cast {
			to, _ := primitive.FromTypeID(uint32(in.Imm.I32))
			from, _ := primitive.FromTypeID(uint32(in.B))
			return fmt.Sprintf("%s = cast<%s <- %s> %%%d", r, to, from, in.A)
		}
		return fmt.Sprintf("%s = %s %%%d", r, in.Op, in.A)
	case ClassCmp, ClassBinOp:
		return fmt.Sprintf("%s = %s %%%d, %%%d", r, in.Op, in.A, in.B)
	case ClassBlock:
		return fmt.Sprintf("%s: %s", r, in.Op)
	case ClassControl:
		return disassembleControl(f, idx, in, r)
	}
	return fmt.Sprintf("%s = %s(?)", r, in.Op)
}

func disassembleControl(f *Function, idx int, in Instr, r string) string {
	switch in.Op {
	case Br:
		return fmt.Sprintf("br %%%d", in.A)
	case BrIf:
		return fmt.Sprintf("br_if %%%d, %%%d", in.A, in.B)
	case Drop:
		return fmt.Sprintf("drop %%%d", in.A)
	case Drop2:
		return fmt.Sprintf("drop %%%d; drop %%%d", in.B, in.A)
	case DropRight:
		return fmt.Sprintf("%s = %%%d; drop %%%d", r, in.A, in.B)
	case UnaryNop:
		return fmt.Sprintf("%s = %%%d (alias)", r, in.A)
	case Return:
		if in.A < 0 {
			return "return"
		}
		return fmt.Sprintf("return %%%d", in.A)
	case Call, CallV:
		cs := f.Calls[in.A]
		args := make([]string, len(cs.Args))
		for i, a := range cs.Args {
			args[i] = fmt.Sprintf("%%%d", a)
		}
		prefix := ""
		if in.Op == CallV {
			prefix = r + " = "
		}
		return fmt.Sprintf("%scall %s(%s)", prefix, cs.Callee, strings.Join(args, ", "))
	}
	return in.Op.String()
}

func constLiteral(c Constant) string {
	switch c.Op {
	case I32Const:
		return fmt.Sprintf("%d", c.I32)
	case I64Const:
		return fmt.Sprintf("%d", c.I64)
	case F32Const:
		return fmt.Sprintf("%g", c.F32)
	case F64Const:
		return fmt.Sprintf("%g", c.F64)
	}
	return "?"
}
