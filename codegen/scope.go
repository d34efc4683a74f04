package codegen

import (
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/tir"
	"github.com/neri/toyscript-wasm/typesys"
)

type localVar struct {
	name string
	idx  tir.LocalIndex
	typ  *typesys.Descriptor
}

// scope is one lexical block's variable bindings, chained to its
// parent so an inner block shadows an outer one without losing access
// to it. break/continue targets are carried down the chain the same
// way the source's loop nesting is: a nested non-loop block inherits
// its parent's targets, a loop body establishes its own.
type scope struct {
	parent        *scope
	vars          []localVar
	breakIndex    *tir.BlockIndex
	continueIndex *tir.BlockIndex
}

func rootScope() *scope { return &scope{} }

// child opens a nested block scope. A nil breakIdx/continueIdx
// inherits the parent's target; a non-nil one establishes a new one.
func (s *scope) child(breakIdx, continueIdx *tir.BlockIndex) *scope {
	c := &scope{parent: s, breakIndex: s.breakIndex, continueIndex: s.continueIndex}
	if breakIdx != nil {
		c.breakIndex = breakIdx
	}
	if continueIdx != nil {
		c.continueIndex = continueIdx
	}
	return c
}

// declare binds a new local in this scope only; shadowing a name bound
// in an enclosing scope is allowed, matching ordinary block scoping.
// Only a duplicate within the very same block is rejected.
func (s *scope) declare(name string, idx tir.LocalIndex, typ *typesys.Descriptor, pos cerr.Position) error {
	for _, v := range s.vars {
		if v.name == name {
			return cerr.DuplicateIdentifier(cerr.PhaseCodegen, pos, name)
		}
	}
	s.vars = append(s.vars, localVar{name: name, idx: idx, typ: typ})
	return nil
}

func (s *scope) resolve(name string) (localVar, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		for _, v := range cur.vars {
			if v.name == name {
				return v, true
			}
		}
	}
	return localVar{}, false
}
