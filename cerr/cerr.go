// Package cerr provides the structured error type shared by every
// compiler stage: tokenizer, parser, type system, code generator,
// optimizer and Wasm emitter.
//
// Errors are categorized by Phase (which stage raised them) and Kind
// (the closed set of error categories from the language specification).
// Every error carries a source Position so the driver can render a
// one-line-plus-caret diagnostic without the stage itself doing any I/O.
package cerr

import (
	"fmt"
	"strings"
)

// Phase indicates which compiler stage raised the error.
type Phase string

const (
	PhaseTokenize Phase = "tokenize"
	PhaseParse    Phase = "parse"
	PhaseType     Phase = "type"
	PhaseCodegen  Phase = "codegen"
	PhaseOptimize Phase = "optimize"
	PhaseEmit     Phase = "emit"
)

// Kind categorizes the error within its phase. This is the closed set
// from the language specification's error handling design.
type Kind string

const (
	KindTokenParse          Kind = "token_parse"
	KindSyntax              Kind = "syntax"
	KindInvalidLiteral      Kind = "invalid_literal"
	KindDuplicateIdentifier Kind = "duplicate_identifier"
	KindIdentifierNotFound  Kind = "identifier_not_found"
	KindTypeMismatch        Kind = "type_mismatch"
	KindInvalidType         Kind = "invalid_type"
	KindInternal            Kind = "internal"
)

// Position locates an error within the source buffer, or at EOF.
type Position struct {
	Line   int
	Column int
	EOF    bool
}

func (p Position) String() string {
	if p.EOF {
		return "EOF"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Error is the structured error type used throughout the compiler.
type Error struct {
	Cause        error
	Phase        Phase
	Kind         Kind
	Pos          Position
	Name         string   // identifier name, for DuplicateIdentifier/IdentifierNotFound
	Expected     []string // expected token kinds, for syntax errors
	Detail       string
	StreamOffset int // byte offset into a TIR code stream, for internal errors
	Opcode       string
	HasOffset    bool
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))
	b.WriteString(" at ")
	b.WriteString(e.Pos.String())

	if e.Name != "" {
		b.WriteString(" (")
		b.WriteString(e.Name)
		b.WriteByte(')')
	}

	if e.HasOffset {
		fmt.Fprintf(&b, " [offset %d", e.StreamOffset)
		if e.Opcode != "" {
			fmt.Fprintf(&b, " op=%s", e.Opcode)
		}
		b.WriteByte(']')
	}

	if len(e.Expected) > 0 {
		b.WriteString(": expected one of ")
		b.WriteString(strings.Join(e.Expected, ", "))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a *Error with the same Phase and Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides fluent, structured error construction.
type Builder struct {
	err Error
}

// New starts building an error for the given phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

func (b *Builder) At(pos Position) *Builder {
	b.err.Pos = pos
	return b
}

func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

func (b *Builder) Expected(kinds ...string) *Builder {
	b.err.Expected = kinds
	return b
}

func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

func (b *Builder) Offset(streamOffset int, opcode string) *Builder {
	b.err.StreamOffset = streamOffset
	b.err.Opcode = opcode
	b.err.HasOffset = true
	return b
}

func (b *Builder) Detail(format string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(format, args...)
	} else {
		b.err.Detail = format
	}
	return b
}

func (b *Builder) Build() *Error {
	e := b.err
	return &e
}

// IdentifierNotFound builds the IdentifierNotFound convenience error.
func IdentifierNotFound(phase Phase, pos Position, name string) *Error {
	return New(phase, KindIdentifierNotFound).At(pos).Name(name).Build()
}

// DuplicateIdentifier builds the DuplicateIdentifier convenience error.
func DuplicateIdentifier(phase Phase, pos Position, name string) *Error {
	return New(phase, KindDuplicateIdentifier).At(pos).Name(name).Build()
}

// Internal builds an InternalError carrying a TIR stream offset.
func Internal(pos Position, streamOffset int, opcode string, detail string) *Error {
	return New(PhaseOptimize, KindInternal).At(pos).Offset(streamOffset, opcode).Detail(detail).Build()
}
