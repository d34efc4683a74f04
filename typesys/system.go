package typesys

import (
	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/primitive"
)

const (
	BuiltinBoolean = "boolean"
	BuiltinChar    = "char"
	BuiltinInt     = "int"
	BuiltinIsize   = "isize"
	BuiltinNever   = "never"
	BuiltinNumber  = "number"
	BuiltinString  = "string"
	BuiltinUint    = "uint"
	BuiltinUsize   = "usize"
	BuiltinVoid    = "void"
)

// System is the global type table for one compilation: the primitive
// catalog, the built-in aliases, the chosen data model and every
// user-declared class resolved against it.
type System struct {
	types map[string]*Descriptor

	integerBits, pointerBits int
	typeInt, typeUint        *Descriptor
	typeIsize, typeUsize     *Descriptor

	classes []*ClassDescriptor
}

// New builds a type system seeded with the primitive catalog and
// built-in aliases, then fixes the data model (the integer/pointer bit
// widths `int`/`uint`/`isize`/`usize` resolve to) from useBits, one of
// 8, 16, 32 or 64.
func New(useBits int) (*System, error) {
	s := &System{types: make(map[string]*Descriptor)}

	for _, p := range primitive.All() {
		s.types[p.String()] = &Descriptor{Identifier: p.String(), Kind: KindPrimitive, Primitive: p}
	}

	if err := s.makePrimitiveAlias(BuiltinNever, primitive.Void); err != nil {
		return nil, err
	}
	if err := s.makePrimitiveAlias(BuiltinNumber, primitive.F64); err != nil {
		return nil, err
	}
	if err := s.makePrimitiveAlias(BuiltinChar, primitive.U32); err != nil {
		return nil, err
	}
	if err := s.makePrimitiveAlias(BuiltinBoolean, primitive.U8); err != nil {
		return nil, err
	}

	voidDesc, _ := s.Get(BuiltinVoid)
	s.types[BuiltinString] = &Descriptor{Identifier: BuiltinString, Kind: KindReference, Target: voidDesc}

	if err := s.setUse(useBits); err != nil {
		return nil, err
	}
	return s, nil
}

// setUse fixes the data model. Note the 64-bit "use" keeps 32-bit
// int/uint but widens isize/usize to 64 bits, and the 8-bit "use" pairs
// 8-bit int/uint with 16-bit isize/usize; 16 and 32 use matching
// integer and pointer bits.
func (s *System) setUse(bits int) error {
	switch bits {
	case 8:
		return s.setDataModel(8, 16)
	case 16:
		return s.setDataModel(16, 16)
	case 32:
		return s.setDataModel(32, 32)
	case 64:
		return s.setDataModel(32, 64)
	}
	return cerr.New(cerr.PhaseType, cerr.KindInvalidType).Detail("unsupported data model width %d", bits).Build()
}

func (s *System) setDataModel(integerBits, pointerBits int) error {
	typeInt, ok := primitive.IntForBits(integerBits)
	if !ok {
		return cerr.New(cerr.PhaseType, cerr.KindInvalidType).Detail("no signed primitive of %d bits", integerBits).Build()
	}
	typeUint, _ := primitive.UintForBits(integerBits)
	typeIsize, _ := primitive.IntForBits(pointerBits)
	typeUsize, _ := primitive.UintForBits(pointerBits)

	delete(s.types, BuiltinInt)
	delete(s.types, BuiltinUint)
	delete(s.types, BuiltinIsize)
	delete(s.types, BuiltinUsize)
	if err := s.makePrimitiveAlias(BuiltinInt, typeInt); err != nil {
		return err
	}
	if err := s.makePrimitiveAlias(BuiltinUint, typeUint); err != nil {
		return err
	}
	if err := s.makePrimitiveAlias(BuiltinIsize, typeIsize); err != nil {
		return err
	}
	if err := s.makePrimitiveAlias(BuiltinUsize, typeUsize); err != nil {
		return err
	}

	s.integerBits, s.pointerBits = integerBits, pointerBits
	s.typeInt, _ = s.Get(BuiltinInt)
	s.typeUint, _ = s.Get(BuiltinUint)
	s.typeIsize, _ = s.Get(BuiltinIsize)
	s.typeUsize, _ = s.Get(BuiltinUsize)
	return nil
}

func (s *System) makePrimitiveAlias(identifier string, p primitive.Primitive) error {
	target, ok := s.Get(p.String())
	if !ok {
		return cerr.New(cerr.PhaseType, cerr.KindInternal).Detail("unseeded primitive %s", p).Build()
	}
	s.types[identifier] = &Descriptor{Identifier: identifier, Kind: KindAlias, Target: target}
	return nil
}

// Get looks up a type by identifier.
func (s *System) Get(identifier string) (*Descriptor, bool) {
	d, ok := s.types[identifier]
	return d, ok
}

// FromAST resolves a parsed type reference against the table.
func (s *System) FromAST(ref ast.TypeRef) (*Descriptor, error) {
	d, ok := s.Get(ref.Name)
	if !ok {
		return nil, cerr.IdentifierNotFound(cerr.PhaseType, ref.Pos, ref.Name)
	}
	return d, nil
}

// StorageType returns the Wasm-representable primitive a value of
// this type lowers to: an alias chain walks to its underlying
// primitive; any reference, class or optional type collapses to the
// pointer-width primitive, since none of them have a defined memory
// representation in this implementation.
func (s *System) StorageType(d *Descriptor) primitive.Primitive {
	for {
		switch d.Kind {
		case KindPrimitive:
			return d.Primitive
		case KindAlias:
			d = d.Target
		default:
			return s.typeUsize.Primitive
		}
	}
}

func (s *System) BuiltinVoid() *Descriptor { d, _ := s.Get(BuiltinVoid); return d }

// Mangled builds the `$`-prefixed symbol name for a class member:
// `$ClassName:memberName`, or `$ClassName:memberName:<p1,p2,...>` when
// typeParams is non-empty (reserved for future generic support; this
// implementation never passes a non-empty slice).
func Mangled(prefix, identifier string, typeParams []string) string {
	return "$" + PrefixedIdentifier(prefix, identifier, typeParams)
}

func PrefixedIdentifier(prefix, identifier string, typeParams []string) string {
	body := identifier
	if prefix != "" {
		body = prefix + ":" + identifier
	}
	if len(typeParams) == 0 {
		return body
	}
	joined := typeParams[0]
	for _, p := range typeParams[1:] {
		joined += "," + p
	}
	if prefix != "" {
		return prefix + ":" + identifier + ":<" + joined + ">"
	}
	return identifier + ":<" + joined + ">"
}

// Classes returns every resolved class, in registration order.
func (s *System) Classes() []*ClassDescriptor { return s.classes }

func (s *System) addClass(c *ClassDescriptor) error {
	if _, exists := s.Get(c.Identifier); exists {
		return cerr.New(cerr.PhaseType, cerr.KindDuplicateIdentifier).Name(c.Identifier).Build()
	}
	s.types[c.Identifier] = &Descriptor{Identifier: c.Identifier, Kind: KindClass, Class: c}
	s.classes = append(s.classes, c)
	return nil
}
