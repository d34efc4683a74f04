// Package primitive defines the closed set of `src` primitive types and
// the arithmetic that derives a Wasm storage type, byte size and type id
// from them (§3 "Primitive type" of the language specification).
package primitive

import "fmt"

// Primitive is one of the eleven closed primitive types.
type Primitive uint32

// TypeID encodes is_unsigned | is_float<<1 | size_of<<2, matching the
// specification's bit layout exactly so Cast instructions can carry it
// as a single TIR operand word.
const (
	Void Primitive = 0x00
	I8   Primitive = 0x04
	U8   Primitive = 0x05
	I16  Primitive = 0x08
	U16  Primitive = 0x09
	I32  Primitive = 0x10
	U32  Primitive = 0x11
	F32  Primitive = 0x12
	I64  Primitive = 0x20
	U64  Primitive = 0x21
	F64  Primitive = 0x22
)

// All enumerates every primitive in declaration order.
func All() []Primitive {
	return []Primitive{Void, I8, U8, I16, U16, I32, U32, F32, I64, U64, F64}
}

func FromString(s string) (Primitive, bool) {
	switch s {
	case "void":
		return Void, true
	case "i8":
		return I8, true
	case "u8":
		return U8, true
	case "i16":
		return I16, true
	case "u16":
		return U16, true
	case "i32":
		return I32, true
	case "u32":
		return U32, true
	case "f32":
		return F32, true
	case "i64":
		return I64, true
	case "u64":
		return U64, true
	case "f64":
		return F64, true
	}
	return 0, false
}

func (p Primitive) String() string {
	switch p {
	case Void:
		return "void"
	case I8:
		return "i8"
	case U8:
		return "u8"
	case I16:
		return "i16"
	case U16:
		return "u16"
	case I32:
		return "i32"
	case U32:
		return "u32"
	case F32:
		return "f32"
	case I64:
		return "i64"
	case U64:
		return "u64"
	case F64:
		return "f64"
	}
	return fmt.Sprintf("primitive(%#x)", uint32(p))
}

func (p Primitive) BitsOf() int {
	switch p {
	case Void:
		return 0
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	case I64, U64, F64:
		return 64
	}
	return 0
}

func (p Primitive) SizeOf() int { return p.BitsOf() / 8 }

func (p Primitive) IsSigned() bool {
	switch p {
	case I8, I16, I32, F32, I64, F64:
		return true
	}
	return false
}

func (p Primitive) IsInteger() bool {
	switch p {
	case I8, U8, I16, U16, I32, U32, I64, U64:
		return true
	}
	return false
}

func (p Primitive) IsFloat() bool {
	return p == F32 || p == F64
}

// StorageType maps every primitive onto the Wasm value type it lowers
// to: integers <=32 bits become I32; I64/U64 stay I64; F32/F64 stay
// themselves.
func (p Primitive) StorageType() Primitive {
	switch p {
	case Void:
		return Void
	case I8, U8, I16, U16, I32, U32:
		return I32
	case F32:
		return F32
	case I64, U64:
		return I64
	case F64:
		return F64
	}
	return p
}

// TypeID returns the wire-format type identifier used by Cast operands.
func (p Primitive) TypeID() uint32 { return uint32(p) }

func FromTypeID(v uint32) (Primitive, bool) {
	p := Primitive(v)
	for _, c := range All() {
		if c == p {
			return p, true
		}
	}
	return 0, false
}

// IntForBits returns the signed integer primitive of the given width.
func IntForBits(bits int) (Primitive, bool) {
	switch bits {
	case 8:
		return I8, true
	case 16:
		return I16, true
	case 32:
		return I32, true
	case 64:
		return I64, true
	}
	return 0, false
}

// UintForBits returns the unsigned integer primitive of the given width.
func UintForBits(bits int) (Primitive, bool) {
	switch bits {
	case 8:
		return U8, true
	case 16:
		return U16, true
	case 32:
		return U32, true
	case 64:
		return U64, true
	}
	return 0, false
}
