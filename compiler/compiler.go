// Package compiler wires the tokenizer, parser, type system, code
// generator, optimizer and Wasm emitter into the single top-level
// entry point a driver (the CLI, or a test) calls.
package compiler

import (
	"time"

	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/codegen"
	"github.com/neri/toyscript-wasm/diag"
	"github.com/neri/toyscript-wasm/parser"
	"github.com/neri/toyscript-wasm/tir"
	"github.com/neri/toyscript-wasm/tir/optimize"
	"github.com/neri/toyscript-wasm/token"
	"github.com/neri/toyscript-wasm/typesys"
	"github.com/neri/toyscript-wasm/wasmout"
)

// DataModel selects the integer/pointer bit width the type system
// resolves usize/isize and class references against (§3 of the
// language specification). It is passed explicitly rather than held
// as global state.
type DataModel int

const (
	DataModel32 DataModel = 32
	DataModel64 DataModel = 64
)

// Result is the full output of a successful compile: the Wasm bytes
// plus every intermediate stage's product, kept around for explain
// modes and tests rather than thrown away after emission.
type Result struct {
	File    *ast.File
	Types   *typesys.System
	TIR     []*tir.Function
	Wasm    []byte
	Elapsed time.Duration
}

// Compile runs the full pipeline over one source file: tokenize,
// parse, resolve types, generate TIR, optimize, and emit a Wasm
// binary module. It returns on the first error any stage produces;
// there is no partial result and no recovery.
func Compile(fileName string, source []byte, model DataModel) (*Result, error) {
	start := time.Now()
	diag.Debugf("compiling %s (%d bytes, data model %d)", fileName, len(source), model)

	toks, errs := token.Tokenize(source, token.DefaultKeywords)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	diag.Debugf("tokenize: %d tokens", len(toks))

	file, err := parser.New(toks).Parse()
	if err != nil {
		return nil, err
	}
	diag.Debugf("parse: %d function(s), %d class(es)", len(file.Functions), len(file.Classes))

	types, err := typesys.New(int(model))
	if err != nil {
		return nil, err
	}
	if err := types.ResolveClasses(file.Classes); err != nil {
		return nil, err
	}
	diag.Debugf("typesys: %d class(es) resolved", len(types.Classes()))

	fns, err := codegen.Generate(types, file)
	if err != nil {
		return nil, err
	}
	diag.Debugf("codegen: %d function(s) lowered", len(fns))

	fns, err = optimize.Module(fns)
	if err != nil {
		return nil, err
	}
	diag.Debugf("optimize: done")

	wasmBytes, err := wasmout.Build(fns)
	if err != nil {
		return nil, err
	}
	diag.Debugf("emit: %d bytes", len(wasmBytes))

	return &Result{
		File:    file,
		Types:   types,
		TIR:     fns,
		Wasm:    wasmBytes,
		Elapsed: time.Since(start),
	}, nil
}

// AsError coerces a generic error into the structured *cerr.Error the
// diagnostic formatter expects, for the rare case a stage returns a
// plain error instead (never the case in practice, but the driver
// should not panic on it).
func AsError(err error) (*cerr.Error, bool) {
	ce, ok := err.(*cerr.Error)
	return ce, ok
}
