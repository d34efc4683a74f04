package optimize

import "github.com/neri/toyscript-wasm/primitive"

// foldCast evaluates a constant cast at compile time. Rather than
// hand-enumerating the 10x10 = 100 arms of the cast matrix, the ladder
// is derived from each primitive's width/signedness/float-ness, per the
// specification's note that an implementation may auto-generate the
// table from the primitive catalog.
func foldCast(from primitive.Primitive, bits64 uint64, isFloat bool, to primitive.Primitive) (uint64, bool, bool) {
	if to == primitive.Void {
		return 0, false, false
	}

	var fval float64
	var ival int64
	if isFloat {
		if from.BitsOf() == 32 {
			fval = float64(float32frombits(uint32(bits64)))
		} else {
			fval = float64frombits(bits64)
		}
		ival = int64(fval)
	} else {
		ival = signExtend(int64(bits64), from.BitsOf())
		fval = float64(ival)
		if !from.IsSigned() {
			fval = float64(uint64(bits64) & maskFor(from.BitsOf()))
		}
	}

	switch {
	case to.IsFloat():
		var out uint64
		var f float64
		if isFloat {
			f = fval
		} else if from.IsSigned() {
			f = float64(ival)
		} else {
			f = float64(uint64(bits64) & maskFor(from.BitsOf()))
		}
		if to.BitsOf() == 32 {
			out = uint64(float32bitsOf(float32(f)))
		} else {
			out = float64bitsOf(f)
		}
		return out, true, true

	default:
		var n int64
		if isFloat {
			n = int64(fval)
		} else {
			n = ival
		}
		masked := uint64(n) & maskFor(to.BitsOf())
		return masked, false, true
	}
}

func signExtend(v int64, bits int) int64 {
	if bits == 0 || bits >= 64 {
		return v
	}
	shift := uint(64 - bits)
	return (v << shift) >> shift
}

func maskFor(bits int) uint64 {
	if bits == 0 {
		return 0
	}
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bits)) - 1
}
