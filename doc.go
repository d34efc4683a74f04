// Package toyscriptwasm documents a compiler from `src`, a small
// strongly-typed curly-brace language, to WebAssembly 1.0 binary
// modules.
//
// The root of the module holds no importable code of its own; every
// stage lives in its own package, composed by compiler.Compile.
//
// # Architecture Overview
//
//	toyscript-wasm/
//	├── token/      tokenizer (configurable keyword resolver)
//	├── ast/        syntax tree produced by the parser
//	├── parser/     recursive-descent parser (tokens -> ast.File)
//	├── typesys/    type table, fixpoint class resolution, inference
//	├── primitive/  Primitive enum and Wasm storage-type mapping
//	├── tir/        typed intermediate representation and builder
//	├── tir/optimize/ peephole optimizer over a TIR function
//	├── codegen/    lowers a type-checked ast.File onto TIR functions
//	├── wasmout/    assembles optimized TIR into a Wasm binary module
//	├── leb128/     LEB128 codec used by the Wasm emitter
//	├── cerr/       structured compiler error type
//	├── diag/       process-wide structured logger
//	├── compiler/   Compile(fileName, source, dataModel) orchestration
//	└── cmd/toycompile/ command-line driver
//
// # Quick Start
//
//	result, err := compiler.Compile("main.src", source, compiler.DataModel32)
//	if err != nil {
//	    ce, _ := compiler.AsError(err)
//	    fmt.Fprint(os.Stderr, compiler.FormatDiagnostic("main.src", source, ce))
//	    os.Exit(1)
//	}
//	os.WriteFile("out.wasm", result.Wasm, 0o644)
//
// # Scope
//
// The compiler is pure and performs no I/O of its own: given source
// bytes it either returns a complete Wasm module or a structured
// error carrying a source position. It never executes the modules it
// produces — there is no Wasm runtime anywhere in this module.
package toyscriptwasm
