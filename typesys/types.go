// Package typesys implements the `src` language's type table: the
// closed primitive set plus built-in aliases, user-declared classes
// resolved through a bounded forward-reference fixpoint, inference of
// untyped literals, and the mangling scheme used for class constructor
// and method names (§3, §4.4 of the language specification).
package typesys

import (
	"fmt"

	"github.com/neri/toyscript-wasm/primitive"
)

// Kind tags a Descriptor's shape. Equality between two descriptors is
// always nominal: two descriptors are the same type iff their
// Identifier strings match, never by structural comparison of Kind.
type Kind int

const (
	KindPrimitive Kind = iota
	KindAlias
	KindReference
	KindClass
	KindOptional
)

// Descriptor is one entry in the type table.
type Descriptor struct {
	Identifier string
	Kind       Kind
	Primitive  primitive.Primitive // valid when Kind == KindPrimitive
	Target     *Descriptor         // valid when Kind == KindAlias, KindReference or KindOptional
	Class      *ClassDescriptor    // valid when Kind == KindClass
}

// Equal reports nominal equality: same identifier, regardless of how
// the two descriptors were produced.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Identifier == other.Identifier
}

func (d *Descriptor) IsVoid() bool  { return d.Identifier == BuiltinVoid }
func (d *Descriptor) IsNever() bool { return d.Identifier == BuiltinNever }

// IsSpecial reports whether the type may not be used as an ordinary
// value type (a variable, field or parameter type).
func (d *Descriptor) IsSpecial() bool { return d.IsVoid() || d.IsNever() }

// PrimitiveType returns the primitive this descriptor ultimately
// stands for, walking the alias chain; ok is false for anything that is
// not a primitive or an alias that ends in one.
func (d *Descriptor) PrimitiveType() (primitive.Primitive, bool) {
	switch d.Kind {
	case KindPrimitive:
		return d.Primitive, true
	case KindAlias:
		return d.Target.PrimitiveType()
	default:
		return 0, false
	}
}

// Mangled returns this type's single-character or length-prefixed
// mangling fragment, used when building a class constructor or method
// symbol name.
func (d *Descriptor) Mangled() string {
	switch d.Identifier {
	case BuiltinBoolean:
		return "b"
	case BuiltinChar:
		return "w"
	case BuiltinInt:
		return "i"
	case BuiltinUint:
		return "j"
	case BuiltinIsize:
		return "l"
	case BuiltinUsize:
		return "m"
	}
	switch d.Kind {
	case KindPrimitive:
		switch d.Primitive {
		case primitive.F32:
			return "f"
		case primitive.F64:
			return "d"
		case primitive.Void:
			return "v"
		}
	case KindReference:
		return "P" + d.Target.Mangled()
	}
	return fmt.Sprintf("%d%s", len(d.Identifier), d.Identifier)
}

// FieldDescriptor is one resolved class field.
type FieldDescriptor struct {
	Name  string
	Type  *Descriptor
	Index int // slot position within the class's flattened local aggregate
}

// MethodDescriptor is one resolved class method or constructor
// signature. The constructor is stored under CtorName.
type MethodDescriptor struct {
	Name   string
	Params []*Descriptor
	Result *Descriptor // nil means void
}

// CtorName is the internal key a class constructor is stored under,
// distinct from any source-level method name (the `new` cast function
// name lives in a different namespace entirely).
const CtorName = ".ctor"

// ClassDescriptor is a fully resolved `class` declaration: its fields
// in declaration order (the flattened-aggregate layout codegen uses)
// plus its constructor and method signatures.
type ClassDescriptor struct {
	Index      int
	Identifier string
	SuperClass *Descriptor // nil if the class has no superclass
	Fields     []FieldDescriptor
	Methods    map[string]*MethodDescriptor
}

func (c *ClassDescriptor) Field(name string) (FieldDescriptor, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

func (c *ClassDescriptor) Constructor() (*MethodDescriptor, bool) {
	m, ok := c.Methods[CtorName]
	return m, ok
}
