package compiler

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, src string) *Result {
	t.Helper()
	r, err := Compile("test.src", []byte(src), DataModel32)
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func TestCompileAddFunctionExportsAndAdds(t *testing.T) {
	r := mustCompile(t, `export function add(a: i32, b: i32): i32 {
  return a + b
}
`)
	require.Len(t, r.TIR, 1)
	fn := r.TIR[0]
	require.Equal(t, "add", fn.Name)
	require.True(t, fn.Exported)
	require.Contains(t, fn.Disassemble(), "add %0, %1")

	require.GreaterOrEqual(t, len(r.Wasm), 8)
	require.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, r.Wasm[:8])
}

func TestCompileConstantFoldingCollapsesToOneReturn(t *testing.T) {
	r := mustCompile(t, `export function f(): i32 {
  const x: i32 = 3 * 7
  return x
}
`)
	require.Len(t, r.TIR, 1)
	dump := r.TIR[0].Disassemble()
	require.Contains(t, dump, "i32.const 21")
	require.NotContains(t, dump, "mul")
}

func TestCompileAbsIfElseDivergesCleanly(t *testing.T) {
	r := mustCompile(t, `export function abs(x: i32): i32 {
  if (x < 0) {
    return -x
  }
  return x
}
`)
	require.Len(t, r.TIR, 1)
	dump := r.TIR[0].Disassemble()
	require.Contains(t, dump, "lt_s")
	require.Contains(t, dump, "neg")
	require.Contains(t, dump, "block")
}

func TestCompileWhileLoopEmitsLoopAndCompare(t *testing.T) {
	r := mustCompile(t, `function f(x: i32): i32 {
  let y: i32 = 0
  while (x > 0) {
    y = y + x
    x = x - 1
  }
  return y
}
`)
	require.Len(t, r.TIR, 1)
	fn := r.TIR[0]
	require.Equal(t, "f", fn.Name)
	dump := fn.Disassemble()
	require.Contains(t, dump, "loop")
	require.Contains(t, dump, "gt_s")
}

func TestCompileClassConstructorAsStatement(t *testing.T) {
	r := mustCompile(t, `class Pair {
  a: i32
  b: i32
  constructor(a: i32, b: i32) {
  }
}

new Pair(1, 2)
`)
	require.Len(t, r.Types.Classes(), 1)
	require.Equal(t, "Pair", r.Types.Classes()[0].Identifier)

	names := make(map[string]bool, len(r.TIR))
	for _, fn := range r.TIR {
		names[fn.Name] = true
	}
	require.True(t, names["$Pair:.ctor"])
	require.True(t, names["main"])
}

func TestCompileCastTruncatesFloatToByte(t *testing.T) {
	r := mustCompile(t, `export function trunc(x: f64): u8 {
  return x as u8
}
`)
	require.Len(t, r.TIR, 1)
	dump := r.TIR[0].Disassemble()
	require.Contains(t, dump, "cast<")

	// x as u8 must lower to a non-trapping saturating truncation, clamped
	// to u8's range first: f64.const 255; f64.min; i32.trunc_sat_f64_u
	// (opcode 0xFC 0x03), never the trapping i32.trunc_f64_u (0xAB).
	var want bytes.Buffer
	want.WriteByte(0x44) // f64.const
	var bits [8]byte
	binary.LittleEndian.PutUint64(bits[:], math.Float64bits(255))
	want.Write(bits[:])
	want.WriteByte(0xA4) // f64.min
	want.WriteByte(0xFC) // misc prefix
	want.WriteByte(0x03) // trunc_sat_f64_u sub-opcode
	require.True(t, bytes.Contains(r.Wasm, want.Bytes()), "expected f64.const 255; f64.min; i32.trunc_sat_f64_u in emitted code")
}

func TestCompileRejectsConstWithoutAssignment(t *testing.T) {
	_, err := Compile("test.src", []byte(`export function f(): i32 {
  const x: i32
  return x
}
`), DataModel32)
	require.Error(t, err)
}

func TestCompileRejectsBreakOutsideLoop(t *testing.T) {
	_, err := Compile("test.src", []byte(`export function f(): i32 {
  break
  return 0
}
`), DataModel32)
	require.Error(t, err)
}

func TestFormatDiagnosticShowsCaret(t *testing.T) {
	src := []byte("export function f(): i32 {\n  return y\n}\n")
	_, err := Compile("bad.src", src, DataModel32)
	require.Error(t, err)
	ce, ok := AsError(err)
	require.True(t, ok)
	out := FormatDiagnostic("bad.src", src, ce)
	require.Contains(t, out, "bad.src:")
	require.Contains(t, out, "^")
}
