// Command toycompile compiles a `src` source file to a WebAssembly 1.0
// binary module.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/neri/toyscript-wasm/compiler"
	"github.com/neri/toyscript-wasm/diag"
)

func main() {
	var (
		outPath     = flag.String("o", "", "output .wasm path (default: input with .wasm extension)")
		dataModel   = flag.Int("bits", 32, "data model bit width (32 or 64)")
		explain     = flag.String("explain", "", "print an intermediate stage instead of compiling: ast, types, tir, wasm")
		interactive = flag.Bool("interactive", false, "page through explain output in a terminal UI")
		debug       = flag.Bool("debug", false, "enable structured debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: toycompile [flags] <input.src>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	if *debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "toycompile: %v\n", err)
			os.Exit(1)
		}
		diag.SetLogger(l)
		diag.SetDebug(true)
		defer l.Sync()
	}

	model := compiler.DataModel(*dataModel)
	if model != compiler.DataModel32 && model != compiler.DataModel64 {
		fmt.Fprintf(os.Stderr, "toycompile: -bits must be 32 or 64, got %d\n", *dataModel)
		os.Exit(2)
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "toycompile: %v\n", err)
		os.Exit(1)
	}

	result, err := compiler.Compile(inputPath, source, model)
	if err != nil {
		printError(inputPath, source, err)
		os.Exit(1)
	}

	if *explain != "" || *interactive {
		runExplain(inputPath, result, compiler.ExplainMode(*explain), *interactive)
		return
	}

	dest := *outPath
	if dest == "" {
		dest = defaultOutputPath(inputPath)
	}
	if err := os.WriteFile(dest, result.Wasm, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "toycompile: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d bytes, %s)\n", dest, len(result.Wasm), result.Elapsed)
}

func printError(inputPath string, source []byte, err error) {
	if ce, ok := compiler.AsError(err); ok {
		fmt.Fprint(os.Stderr, compiler.FormatDiagnostic(inputPath, source, ce))
		return
	}
	fmt.Fprintf(os.Stderr, "toycompile: %v\n", err)
}

func defaultOutputPath(inputPath string) string {
	for i := len(inputPath) - 1; i >= 0 && inputPath[i] != '/'; i-- {
		if inputPath[i] == '.' {
			return inputPath[:i] + ".wasm"
		}
	}
	return inputPath + ".wasm"
}
