package codegen

import (
	"strings"

	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/primitive"
	"github.com/neri/toyscript-wasm/tir"
	"github.com/neri/toyscript-wasm/typesys"
)

// lowerExpr lowers one expression to its TIR value and resolved type.
// want, when non-nil, is the type the surrounding context expects;
// an untyped literal concretizes against it, and a mismatched but
// implicitly convertible value is cast to it.
func (fg *funcGen) lowerExpr(sc *scope, expr ast.Expression, want *typesys.Descriptor) (tir.SsaIndex, *typesys.Descriptor, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return fg.lowerIntLit(e, want)
	case *ast.FloatLit:
		return fg.lowerFloatLit(e, want)
	case *ast.BoolLit:
		v := int32(0)
		if e.Value {
			v = 1
		}
		return fg.b.EmitConstI32(v), fg.boolType(), nil
	case *ast.StringLit:
		return 0, nil, cerr.New(cerr.PhaseCodegen, cerr.KindInvalidType).At(e.Pos).
			Detail("string literals require a data-section representation this implementation does not provide").Build()
	case *ast.Ident:
		v, ok := sc.resolve(e.Name)
		if !ok {
			return 0, nil, cerr.IdentifierNotFound(cerr.PhaseCodegen, e.Pos, e.Name)
		}
		return fg.b.EmitLocalGet(v.idx), v.typ, nil
	case *ast.BinaryExpr:
		return fg.lowerBinary(sc, e, want)
	case *ast.UnaryExpr:
		return fg.lowerUnary(sc, e, want)
	case *ast.IncDecExpr:
		return fg.lowerIncDec(sc, e)
	case *ast.AssignExpr:
		return fg.lowerAssign(sc, e)
	case *ast.CallExpr:
		return fg.lowerCall(sc, e)
	case *ast.CastExpr:
		return fg.lowerCastExpr(sc, e)
	case *ast.NewExpr:
		return 0, nil, cerr.New(cerr.PhaseCodegen, cerr.KindTypeMismatch).At(e.Pos).
			Detail("class instantiation is only supported as a standalone statement").Build()
	}
	return 0, nil, cerr.New(cerr.PhaseCodegen, cerr.KindInternal).At(expr.Position()).
		Detail("unhandled expression kind").Build()
}

func (fg *funcGen) lowerIntLit(e *ast.IntLit, want *typesys.Descriptor) (tir.SsaIndex, *typesys.Descriptor, error) {
	target := want
	if target == nil {
		target = fg.intType()
	}
	prim, ok := target.PrimitiveType()
	if !ok {
		return 0, nil, cerr.New(cerr.PhaseType, cerr.KindInvalidType).At(e.Pos).Name(target.Identifier).Build()
	}
	switch {
	case prim.IsInteger():
		if !typesys.TryConvertInt(e.Value, prim) {
			return 0, nil, cerr.New(cerr.PhaseType, cerr.KindInvalidLiteral).At(e.Pos).
				Detail("integer literal %d does not fit %s", e.Value, target.Identifier).Build()
		}
		return fg.constForPrimitive(prim, e.Value, 0), target, nil
	case prim.IsFloat():
		return fg.constForPrimitive(prim, 0, float64(e.Value)), target, nil
	}
	return 0, nil, cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(e.Pos).
		Detail("integer literal cannot be used as %s", target.Identifier).Build()
}

func (fg *funcGen) lowerFloatLit(e *ast.FloatLit, want *typesys.Descriptor) (tir.SsaIndex, *typesys.Descriptor, error) {
	target := want
	if target == nil {
		target = fg.numberType()
	}
	prim, ok := target.PrimitiveType()
	if !ok || !prim.IsFloat() {
		return 0, nil, cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(e.Pos).
			Detail("float literal cannot be used as %s", target.Identifier).Build()
	}
	return fg.constForPrimitive(prim, 0, e.Value), target, nil
}

func isCompareOp(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

// canonicalizeCompareOperand widens a sub-32-bit integer operand to
// I32/U32 before a comparison, per the specified canonicalization
// rule; the actual emitted bytes collapse to nothing when the value
// is already correctly sign/zero-extended, since both sides share I32
// storage regardless.
func (fg *funcGen) canonicalizeCompareOperand(ssa tir.SsaIndex, p primitive.Primitive) (tir.SsaIndex, primitive.Primitive) {
	if !p.IsInteger() || p.BitsOf() >= 32 {
		return ssa, p
	}
	target := primitive.I32
	if !p.IsSigned() {
		target = primitive.U32
	}
	return fg.b.EmitCast(ssa, p, target), target
}

func binOpFor(op string, storage primitive.Primitive) (tir.Op, bool) {
	signed := storage.IsSigned() || storage.IsFloat()
	switch op {
	case "+":
		return tir.Add, true
	case "-":
		return tir.Sub, true
	case "*":
		return tir.Mul, true
	case "/":
		if signed {
			return tir.DivS, true
		}
		return tir.DivU, true
	case "%":
		if signed {
			return tir.RemS, true
		}
		return tir.RemU, true
	case "&":
		return tir.And, true
	case "|":
		return tir.Or, true
	case "^":
		return tir.Xor, true
	case "<<":
		return tir.Shl, true
	case ">>":
		if signed {
			return tir.ShrS, true
		}
		return tir.ShrU, true
	case "==":
		return tir.Eq, true
	case "!=":
		return tir.Ne, true
	case "<":
		if signed {
			return tir.LtS, true
		}
		return tir.LtU, true
	case "<=":
		if signed {
			return tir.LeS, true
		}
		return tir.LeU, true
	case ">":
		if signed {
			return tir.GtS, true
		}
		return tir.GtU, true
	case ">=":
		if signed {
			return tir.GeS, true
		}
		return tir.GeU, true
	}
	return 0, false
}

func (fg *funcGen) lowerBinary(sc *scope, e *ast.BinaryExpr, want *typesys.Descriptor) (tir.SsaIndex, *typesys.Descriptor, error) {
	if e.Op == "&&" || e.Op == "||" {
		return fg.lowerLogical(sc, e)
	}

	compare := isCompareOp(e.Op)
	var operandWant *typesys.Descriptor
	if !compare {
		operandWant = want
	}

	lssa, ltyp, err := fg.lowerExpr(sc, e.Left, operandWant)
	if err != nil {
		return 0, nil, err
	}
	rssa, rtyp, err := fg.lowerExpr(sc, e.Right, operandWant)
	if err != nil {
		return 0, nil, err
	}

	if !ltyp.Equal(rtyp) {
		switch {
		case operandWant == nil && typesys.CanImplicitlyConvert(fg.types, rtyp, ltyp):
			rssa, err = fg.implicitCast(rssa, rtyp, ltyp, e.Right.Position())
			if err != nil {
				return 0, nil, err
			}
			rtyp = ltyp
		case typesys.CanImplicitlyConvert(fg.types, ltyp, rtyp):
			lssa, err = fg.implicitCast(lssa, ltyp, rtyp, e.Left.Position())
			if err != nil {
				return 0, nil, err
			}
			ltyp = rtyp
		default:
			return 0, nil, cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(e.Pos).
				Detail("%s vs %s", ltyp.Identifier, rtyp.Identifier).Build()
		}
	}

	operandPrim := fg.primitiveOf(ltyp)
	if compare {
		lssa, operandPrim = fg.canonicalizeCompareOperand(lssa, operandPrim)
		rssa, _ = fg.canonicalizeCompareOperand(rssa, operandPrim)
	}

	op, ok := binOpFor(e.Op, operandPrim)
	if !ok {
		return 0, nil, cerr.New(cerr.PhaseCodegen, cerr.KindInternal).At(e.Pos).
			Detail("no TIR opcode for operator %q on %s", e.Op, operandPrim).Build()
	}

	if compare {
		return fg.b.EmitCmp(op, lssa, rssa), fg.boolType(), nil
	}
	return fg.b.EmitBinOp(op, lssa, rssa), ltyp, nil
}

// lowerLogical lowers short-circuiting `&&`/`||`, since TIR has no
// eager boolean operator: the left operand always evaluates, the
// right only when it can change the outcome, with the result threaded
// through a dedicated local since Wasm 1.0 blocks carry no value.
func (fg *funcGen) lowerLogical(sc *scope, e *ast.BinaryExpr) (tir.SsaIndex, *typesys.Descriptor, error) {
	boolT := fg.boolType()

	lssa, ltyp, err := fg.lowerExpr(sc, e.Left, boolT)
	if err != nil {
		return 0, nil, err
	}
	lssa, err = fg.implicitCast(lssa, ltyp, boolT, e.Left.Position())
	if err != nil {
		return 0, nil, err
	}

	resIdx := fg.b.AddLocal("$logical", primitive.U8)
	fg.b.EmitLocalSet(resIdx, lssa)

	skip := fg.b.OpenBlock()
	guard := fg.b.EmitLocalGet(resIdx)
	if e.Op == "||" {
		fg.b.EmitBrIf(guard, skip)
	} else {
		eqz := fg.b.EmitUnOp(tir.Eqz, guard)
		fg.b.EmitBrIf(eqz, skip)
	}

	rssa, rtyp, err := fg.lowerExpr(sc, e.Right, boolT)
	if err != nil {
		return 0, nil, err
	}
	rssa, err = fg.implicitCast(rssa, rtyp, boolT, e.Right.Position())
	if err != nil {
		return 0, nil, err
	}
	fg.b.EmitLocalSet(resIdx, rssa)

	if err := fg.b.CloseBlock(skip); err != nil {
		return 0, nil, err
	}
	return fg.b.EmitLocalGet(resIdx), boolT, nil
}

func (fg *funcGen) lowerUnary(sc *scope, e *ast.UnaryExpr, want *typesys.Descriptor) (tir.SsaIndex, *typesys.Descriptor, error) {
	if e.Op == "!" {
		boolT := fg.boolType()
		xssa, xtyp, err := fg.lowerExpr(sc, e.X, boolT)
		if err != nil {
			return 0, nil, err
		}
		xssa, err = fg.implicitCast(xssa, xtyp, boolT, e.X.Position())
		if err != nil {
			return 0, nil, err
		}
		return fg.b.EmitUnOp(tir.Eqz, xssa), boolT, nil
	}
	xssa, xtyp, err := fg.lowerExpr(sc, e.X, want)
	if err != nil {
		return 0, nil, err
	}
	return fg.b.EmitUnOp(tir.Neg, xssa), xtyp, nil
}

func (fg *funcGen) lowerIncDec(sc *scope, e *ast.IncDecExpr) (tir.SsaIndex, *typesys.Descriptor, error) {
	ident, ok := e.X.(*ast.Ident)
	if !ok {
		return 0, nil, cerr.New(cerr.PhaseCodegen, cerr.KindTypeMismatch).At(e.Pos).
			Detail("%s requires an assignable variable", e.Op).Build()
	}
	v, ok := sc.resolve(ident.Name)
	if !ok {
		return 0, nil, cerr.IdentifierNotFound(cerr.PhaseCodegen, ident.Pos, ident.Name)
	}
	old := fg.b.EmitLocalGet(v.idx)
	op := tir.Inc
	if e.Op == "--" {
		op = tir.Dec
	}
	updated := fg.b.EmitUnOp(op, old)
	fg.b.EmitLocalSet(v.idx, updated)
	if e.Postfix {
		return old, v.typ, nil
	}
	return updated, v.typ, nil
}

func (fg *funcGen) lowerAssign(sc *scope, e *ast.AssignExpr) (tir.SsaIndex, *typesys.Descriptor, error) {
	ident, ok := e.Target.(*ast.Ident)
	if !ok {
		return 0, nil, cerr.New(cerr.PhaseCodegen, cerr.KindTypeMismatch).At(e.Pos).
			Detail("assignment target must be a variable").Build()
	}
	v, ok := sc.resolve(ident.Name)
	if !ok {
		return 0, nil, cerr.IdentifierNotFound(cerr.PhaseCodegen, ident.Pos, ident.Name)
	}

	if e.Op == "=" {
		rssa, rtyp, err := fg.lowerExpr(sc, e.Value, v.typ)
		if err != nil {
			return 0, nil, err
		}
		rssa, err = fg.implicitCast(rssa, rtyp, v.typ, e.Value.Position())
		if err != nil {
			return 0, nil, err
		}
		return fg.b.EmitLocalTee(v.idx, rssa), v.typ, nil
	}

	cur := fg.b.EmitLocalGet(v.idx)
	rssa, rtyp, err := fg.lowerExpr(sc, e.Value, v.typ)
	if err != nil {
		return 0, nil, err
	}
	rssa, err = fg.implicitCast(rssa, rtyp, v.typ, e.Value.Position())
	if err != nil {
		return 0, nil, err
	}

	baseOp := strings.TrimSuffix(e.Op, "=")
	op, ok := binOpFor(baseOp, fg.primitiveOf(v.typ))
	if !ok {
		return 0, nil, cerr.New(cerr.PhaseCodegen, cerr.KindInternal).At(e.Pos).
			Detail("no TIR opcode for compound operator %q", e.Op).Build()
	}
	combined := fg.b.EmitBinOp(op, cur, rssa)
	return fg.b.EmitLocalTee(v.idx, combined), v.typ, nil
}

func (fg *funcGen) lowerCall(sc *scope, e *ast.CallExpr) (tir.SsaIndex, *typesys.Descriptor, error) {
	sig, ok := fg.sigs[e.Callee]
	if !ok {
		return 0, nil, cerr.IdentifierNotFound(cerr.PhaseCodegen, e.Pos, e.Callee)
	}
	if len(e.Args) != len(sig.params) {
		return 0, nil, cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(e.Pos).
			Name(e.Callee).Detail("expected %d argument(s), got %d", len(sig.params), len(e.Args)).Build()
	}
	args := make([]tir.SsaIndex, len(e.Args))
	for i, a := range e.Args {
		assa, atyp, err := fg.lowerExpr(sc, a, sig.params[i])
		if err != nil {
			return 0, nil, err
		}
		assa, err = fg.implicitCast(assa, atyp, sig.params[i], a.Position())
		if err != nil {
			return 0, nil, err
		}
		args[i] = assa
	}
	if sig.result == nil {
		fg.b.EmitCall(e.Callee, args)
		return 0, fg.voidType(), nil
	}
	return fg.b.EmitCallV(e.Callee, args), sig.result, nil
}

func (fg *funcGen) lowerCastExpr(sc *scope, e *ast.CastExpr) (tir.SsaIndex, *typesys.Descriptor, error) {
	target, err := fg.types.FromAST(e.Type)
	if err != nil {
		return 0, nil, err
	}
	if target.IsSpecial() {
		return 0, nil, cerr.New(cerr.PhaseType, cerr.KindInvalidType).At(e.Pos).Name(e.Type.Name).Build()
	}
	xssa, xtyp, err := fg.lowerExpr(sc, e.X, nil)
	if err != nil {
		return 0, nil, err
	}

	fromPrim, fok := xtyp.PrimitiveType()
	toPrim, tok := target.PrimitiveType()
	if !fok || !tok {
		return 0, nil, cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(e.Pos).
			Detail("cast between %s and %s is not supported", xtyp.Identifier, target.Identifier).Build()
	}
	if fromPrim == toPrim {
		return xssa, target, nil
	}
	return fg.b.EmitCast(xssa, fromPrim, toPrim), target, nil
}

// lowerNewCall compiles a standalone `new ClassName(args)` statement
// into a call to the class's mangled constructor function; there is
// no instance value to produce, so nothing is returned to the caller.
func (fg *funcGen) lowerNewCall(sc *scope, e *ast.NewExpr) (tir.SsaIndex, error) {
	cls, ok := fg.types.Get(e.ClassName)
	if !ok || cls.Kind != typesys.KindClass {
		return 0, cerr.IdentifierNotFound(cerr.PhaseCodegen, e.Pos, e.ClassName)
	}
	ctor, hasCtor := cls.Class.Constructor()
	if !hasCtor {
		if len(e.Args) != 0 {
			return 0, cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(e.Pos).
				Name(e.ClassName).Detail("class declares no constructor but arguments were supplied").Build()
		}
		return 0, nil
	}
	if len(e.Args) != len(ctor.Params) {
		return 0, cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(e.Pos).
			Name(e.ClassName).Detail("constructor expects %d argument(s), got %d", len(ctor.Params), len(e.Args)).Build()
	}
	args := make([]tir.SsaIndex, len(e.Args))
	for i, a := range e.Args {
		assa, atyp, err := fg.lowerExpr(sc, a, ctor.Params[i])
		if err != nil {
			return 0, err
		}
		assa, err = fg.implicitCast(assa, atyp, ctor.Params[i], a.Position())
		if err != nil {
			return 0, err
		}
		args[i] = assa
	}
	fg.b.EmitCall(typesys.Mangled(e.ClassName, typesys.CtorName, nil), args)
	return 0, nil
}
