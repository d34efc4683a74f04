package compiler

import (
	"fmt"
	"strings"

	"github.com/neri/toyscript-wasm/ast"
)

// ExplainMode selects which intermediate stage Explain renders.
type ExplainMode string

const (
	ExplainAST   ExplainMode = "ast"
	ExplainTypes ExplainMode = "types"
	ExplainTIR   ExplainMode = "tir"
	ExplainWasm  ExplainMode = "wasm"
)

// Explain renders one intermediate stage of an already-compiled
// Result as text, for the CLI's explain and --interactive modes.
func (r *Result) Explain(mode ExplainMode) string {
	switch mode {
	case ExplainAST:
		return explainAST(r.File)
	case ExplainTypes:
		return explainTypes(r)
	case ExplainTIR:
		return explainTIR(r)
	case ExplainWasm:
		return explainWasm(r)
	}
	return fmt.Sprintf("unknown explain mode %q", mode)
}

func explainAST(f *ast.File) string {
	var b strings.Builder
	for _, fn := range f.Functions {
		fmt.Fprintf(&b, "fn %s(", fn.Name)
		for i, p := range fn.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", p.Name, p.Type.Name)
		}
		b.WriteString(")")
		if fn.Result != nil {
			fmt.Fprintf(&b, " -> %s", fn.Result.Name)
		}
		fmt.Fprintf(&b, " { %d statement(s) }\n", len(fn.Body))
	}
	for _, cd := range f.Classes {
		fmt.Fprintf(&b, "class %s { %d field(s), %d method(s)", cd.Name, len(cd.Fields), len(cd.Methods))
		if cd.Constructor != nil {
			b.WriteString(", constructor")
		}
		b.WriteString(" }\n")
	}
	if len(f.Main) > 0 {
		fmt.Fprintf(&b, "main { %d statement(s) }\n", len(f.Main))
	}
	return b.String()
}

func explainTypes(r *Result) string {
	var b strings.Builder
	for _, c := range r.Types.Classes() {
		fmt.Fprintf(&b, "class %s (index %d)\n", c.Identifier, c.Index)
		for _, fld := range c.Fields {
			fmt.Fprintf(&b, "  field %s: %s (slot %d)\n", fld.Name, fld.Type.Identifier, fld.Index)
		}
		for name, m := range c.Methods {
			result := "void"
			if m.Result != nil {
				result = m.Result.Identifier
			}
			fmt.Fprintf(&b, "  method %s -> %s\n", name, result)
		}
	}
	return b.String()
}

func explainTIR(r *Result) string {
	var b strings.Builder
	for _, fn := range r.TIR {
		b.WriteString(fn.Disassemble())
		b.WriteByte('\n')
	}
	return b.String()
}

func explainWasm(r *Result) string {
	return fmt.Sprintf("wasm module: %d byte(s), %d function(s)\n", len(r.Wasm), len(r.TIR))
}
