package tir

import "github.com/neri/toyscript-wasm/primitive"

// LocalIndex identifies a function parameter or local variable slot.
type LocalIndex int32

// SsaIndex identifies the virtual result of a producer instruction; it
// is the instruction's position in the owning Function's Code slice.
type SsaIndex int32

// BlockIndex identifies a structured control block (block/loop) by the
// position of its opening instruction.
type BlockIndex int32

// ArrayIndex indexes into a side table (e.g. Function.Locals); distinct
// from LocalIndex so the two spaces are never confused at call sites.
type ArrayIndex int32

// Local describes one parameter or declared local variable.
type Local struct {
	Name      string
	Type      primitive.Primitive
	IsParam   bool
	MutatedBy int // count of LocalSet/LocalTee targeting this slot; no code generator or optimizer pass sets or reads it
}
