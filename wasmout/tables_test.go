package wasmout

import (
	"testing"

	"github.com/neri/toyscript-wasm/primitive"
	"github.com/stretchr/testify/require"
)

func TestFloatToIntInstrsUnsignedNarrowClampsUpperBoundOnly(t *testing.T) {
	instrs := floatToIntInstrs(primitive.F64, primitive.U8)
	require.Equal(t, []Instruction{
		{Opcode: OpF64Const, Imm: F64Imm{Value: 255}},
		{Opcode: OpF64Min},
		{Opcode: OpPrefixMisc, Imm: MiscImm{SubOpcode: MiscI32TruncSatF64U}},
	}, instrs)
}

func TestFloatToIntInstrsSignedNarrowClampsBothBounds(t *testing.T) {
	instrs := floatToIntInstrs(primitive.F64, primitive.I8)
	require.Equal(t, []Instruction{
		{Opcode: OpF64Const, Imm: F64Imm{Value: 127}},
		{Opcode: OpF64Min},
		{Opcode: OpF64Const, Imm: F64Imm{Value: -128}},
		{Opcode: OpF64Max},
		{Opcode: OpPrefixMisc, Imm: MiscImm{SubOpcode: MiscI32TruncSatF64S}},
	}, instrs)
}

func TestFloatToIntInstrsF32SourceClampsWithF32Bounds(t *testing.T) {
	instrs := floatToIntInstrs(primitive.F32, primitive.U16)
	require.Equal(t, []Instruction{
		{Opcode: OpF32Const, Imm: F32Imm{Value: 65535}},
		{Opcode: OpF32Min},
		{Opcode: OpPrefixMisc, Imm: MiscImm{SubOpcode: MiscI32TruncSatF32U}},
	}, instrs)
}

func TestFloatToIntInstrsWideTargetSkipsClamp(t *testing.T) {
	instrs := floatToIntInstrs(primitive.F64, primitive.I32)
	require.Equal(t, []Instruction{
		{Opcode: OpPrefixMisc, Imm: MiscImm{SubOpcode: MiscI32TruncSatF64S}},
	}, instrs)
}

func TestFloatToIntInstrsI64TargetUsesI64TruncSat(t *testing.T) {
	instrs := floatToIntInstrs(primitive.F64, primitive.U64)
	require.Equal(t, []Instruction{
		{Opcode: OpPrefixMisc, Imm: MiscImm{SubOpcode: MiscI64TruncSatF64U}},
	}, instrs)
}
