package typesys

import "github.com/neri/toyscript-wasm/primitive"

// TryConvertInt reports whether an integer literal's value fits the
// target primitive's representable range, the check an untyped
// integer literal undergoes once a context promotes it from Maybe to
// Known (§4.4's "adding a `: u8` context ... rejects overflow").
func TryConvertInt(v int64, target primitive.Primitive) bool {
	switch target {
	case primitive.I8:
		return v >= -128 && v <= 127
	case primitive.U8:
		return v >= 0 && v <= 255
	case primitive.I16:
		return v >= -32768 && v <= 32767
	case primitive.U16:
		return v >= 0 && v <= 65535
	case primitive.I32:
		return v >= -2147483648 && v <= 2147483647
	case primitive.U32:
		return v >= 0 && v <= 4294967295
	case primitive.I64, primitive.U64:
		return true
	case primitive.F32, primitive.F64:
		return true
	}
	return false
}

// TryConvertFloat reports whether a float literal may stand for the
// target primitive; unlike integers, no range check is meaningful for
// the common f32/f64 destinations so this only rejects non-float,
// non-numeric targets.
func TryConvertFloat(target primitive.Primitive) bool {
	return target.IsFloat()
}

// CanImplicitlyConvert reports whether a value of type from may be
// used where a value of type to is expected without an explicit `as`.
// Conversions between distinct class or reference types are never
// implicit; every primitive (after alias resolution) implicitly
// widens or narrows to every other non-void primitive, with the
// actual narrowing/truncation behavior supplied by the Cast
// instruction the code generator emits.
func CanImplicitlyConvert(s *System, from, to *Descriptor) bool {
	if from.Equal(to) {
		return true
	}
	if to.IsVoid() || from.IsVoid() {
		return false
	}
	fp, fok := from.PrimitiveType()
	tp, tok := to.PrimitiveType()
	if !fok || !tok {
		return false
	}
	_ = s
	return fp != primitive.Void && tp != primitive.Void
}
