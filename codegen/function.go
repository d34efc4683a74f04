// Package codegen lowers a type-checked ast.File onto TIR functions,
// one FunctionGenerator per function body (§4.5 of the language
// specification).
package codegen

import (
	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/primitive"
	"github.com/neri/toyscript-wasm/tir"
	"github.com/neri/toyscript-wasm/typesys"
)

// funcGen lowers one function body onto a tir.Builder. A fresh funcGen
// exists per function; only the type system and the call-site
// signature table are shared across function boundaries.
type funcGen struct {
	types  *typesys.System
	sigs   map[string]funcSig
	b      *tir.Builder
	result *typesys.Descriptor // declared return type; nil means void
}

func (fg *funcGen) boolType() *typesys.Descriptor   { d, _ := fg.types.Get(typesys.BuiltinBoolean); return d }
func (fg *funcGen) intType() *typesys.Descriptor    { d, _ := fg.types.Get(typesys.BuiltinInt); return d }
func (fg *funcGen) numberType() *typesys.Descriptor { d, _ := fg.types.Get(typesys.BuiltinNumber); return d }
func (fg *funcGen) voidType() *typesys.Descriptor   { return fg.types.BuiltinVoid() }

// primitiveOf returns the exact primitive a descriptor stands for,
// falling back to its Wasm storage class for types with no primitive
// representation of their own (references, classes).
func (fg *funcGen) primitiveOf(d *typesys.Descriptor) primitive.Primitive {
	if p, ok := d.PrimitiveType(); ok {
		return p
	}
	return fg.types.StorageType(d)
}

// implicitCast inserts a Cast instruction when from and to are
// distinct types that may convert without an explicit `as`; it is a
// no-op when they are already the same type.
func (fg *funcGen) implicitCast(v tir.SsaIndex, from, to *typesys.Descriptor, pos cerr.Position) (tir.SsaIndex, error) {
	if from.Equal(to) {
		return v, nil
	}
	if !typesys.CanImplicitlyConvert(fg.types, from, to) {
		return 0, cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(pos).
			Detail("%s is not implicitly convertible to %s", from.Identifier, to.Identifier).Build()
	}
	return fg.b.EmitCast(v, fg.primitiveOf(from), fg.primitiveOf(to)), nil
}

func (fg *funcGen) constForPrimitive(p primitive.Primitive, i int64, f float64) tir.SsaIndex {
	switch p.StorageType() {
	case primitive.I64:
		return fg.b.EmitConstI64(i)
	case primitive.F32:
		return fg.b.EmitConstF32(float32(f))
	case primitive.F64:
		return fg.b.EmitConstF64(f)
	default:
		return fg.b.EmitConstI32(int32(i))
	}
}

func (fg *funcGen) zeroValue(d *typesys.Descriptor) tir.SsaIndex {
	return fg.constForPrimitive(fg.types.StorageType(d), 0, 0)
}

// lowerFunction lowers one top-level function declaration into a
// complete TIR function.
func lowerFunction(types *typesys.System, sigs map[string]funcSig, fd *ast.FunctionDecl) (*tir.Function, error) {
	sig := sigs[fd.Name]

	params := make([]tir.Local, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = tir.Local{Name: p.Name, Type: types.StorageType(sig.params[i]), IsParam: true}
	}
	resultPrim := primitive.Void
	if sig.result != nil {
		resultPrim = types.StorageType(sig.result)
	}

	b := tir.NewBuilder(fd.Name, params, resultPrim)
	fg := &funcGen{types: types, sigs: sigs, b: b, result: sig.result}

	sc := rootScope()
	for i, p := range fd.Params {
		if err := sc.declare(p.Name, tir.LocalIndex(i), sig.params[i], p.Pos); err != nil {
			return nil, err
		}
	}

	terminates, err := fg.lowerStmts(sc, fd.Body)
	if err != nil {
		return nil, err
	}
	if !terminates {
		if sig.result != nil {
			return nil, cerr.New(cerr.PhaseCodegen, cerr.KindTypeMismatch).At(fd.Pos).
				Name(fd.Name).Detail("not every path returns a value").Build()
		}
		fg.b.EmitReturnVoid()
	}

	return fg.b.Build(fd.Exported)
}

// lowerMain lowers the file's top-level statements into the implicit
// "main" function the Wasm emitter wires into the module's start
// section.
func lowerMain(types *typesys.System, sigs map[string]funcSig, stmts []ast.Statement) (*tir.Function, error) {
	b := tir.NewBuilder("main", nil, primitive.Void)
	fg := &funcGen{types: types, sigs: sigs, b: b, result: nil}

	terminates, err := fg.lowerStmts(rootScope(), stmts)
	if err != nil {
		return nil, err
	}
	if !terminates {
		fg.b.EmitReturnVoid()
	}
	return fg.b.Build(false)
}
