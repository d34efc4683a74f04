package typesys

import "github.com/neri/toyscript-wasm/cerr"

// Certainty tags an Inferred value's provenance: whether its type came
// from an explicit annotation (Known), a literal with no context yet
// (Maybe), or nothing at all (Unknown).
type Certainty int

const (
	Unknown Certainty = iota
	Known
	Maybe
)

// Inferred is the result of the bidirectional type inference pass
// over an expression and its context (§4.4). A literal starts as
// Maybe(int)/Maybe(number); unifying it against an annotated context
// promotes it to Known and checks the literal fits.
type Inferred struct {
	Certainty Certainty
	Type      *Descriptor
}

func FromKnown(d *Descriptor) Inferred {
	if d == nil {
		return Inferred{Certainty: Unknown}
	}
	return Inferred{Certainty: Known, Type: d}
}

func FromMaybe(d *Descriptor) Inferred { return Inferred{Certainty: Maybe, Type: d} }

// Optimistic returns the type whether it is Known or merely Maybe;
// nil if Unknown.
func (i Inferred) Optimistic() *Descriptor {
	if i.Certainty == Unknown {
		return nil
	}
	return i.Type
}

// Strict returns the type only if fully Known.
func (i Inferred) Strict() *Descriptor {
	if i.Certainty != Known {
		return nil
	}
	return i.Type
}

// InferEach unifies two Inferred values against each other, e.g. the
// two operands of a binary expression, or a variable's declared type
// against its initializer. Unification is commutative up to swapping
// which side ends up promoted.
func InferEach(lhs, rhs *Inferred, pos cerr.Position) error {
	switch {
	case lhs.Certainty == Known && rhs.Certainty == Known:
		if !lhs.Type.Equal(rhs.Type) {
			return cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(pos).
				Detail("%s vs %s", lhs.Type.Identifier, rhs.Type.Identifier).Build()
		}
	case lhs.Certainty == Known && (rhs.Certainty == Unknown || rhs.Certainty == Maybe):
		*rhs = Inferred{Certainty: Known, Type: lhs.Type}
	case rhs.Certainty == Known && (lhs.Certainty == Unknown || lhs.Certainty == Maybe):
		*lhs = Inferred{Certainty: Known, Type: rhs.Type}
	case lhs.Certainty == Maybe && rhs.Certainty == Unknown:
		*rhs = Inferred{Certainty: Maybe, Type: lhs.Type}
	case lhs.Certainty == Unknown && rhs.Certainty == Maybe:
		*lhs = Inferred{Certainty: Maybe, Type: rhs.Type}
	}
	return nil
}
