package leb128

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnsignedRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16384, math.MaxUint32, math.MaxUint64}
	for _, v := range values {
		var buf bytes.Buffer
		WriteUnsigned(&buf, v)
		got, err := ReadUnsigned(&buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestSignedRoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, 63, -64, 64, -65, math.MinInt32, math.MaxInt32, math.MinInt64, math.MaxInt64}
	for _, v := range values {
		var buf bytes.Buffer
		WriteSigned(&buf, v)
		got, err := ReadSigned(&buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestFixedWidthForms(t *testing.T) {
	var buf bytes.Buffer
	WriteFixedU32(&buf, 5)
	require.Len(t, buf.Bytes(), 5)
	v, err := ReadUnsigned(&buf)
	require.NoError(t, err)
	require.Equal(t, uint64(5), v)

	buf.Reset()
	WriteFixedU64(&buf, 5)
	require.Len(t, buf.Bytes(), 10)
}

func TestBlob(t *testing.T) {
	var buf bytes.Buffer
	WriteBlob(&buf, []byte("hello"))
	n, err := ReadUnsigned(&buf)
	require.NoError(t, err)
	require.Equal(t, uint64(5), n)
	require.Equal(t, "hello", buf.String())
}

func TestUnexpectedEOF(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x80})
	_, err := ReadUnsigned(buf)
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestFloatRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	WriteFloat32(&buf, 3.5)
	v, err := ReadFloat32(&buf)
	require.NoError(t, err)
	require.Equal(t, float32(3.5), v)

	buf.Reset()
	WriteFloat64(&buf, 2.25)
	v64, err := ReadFloat64(&buf)
	require.NoError(t, err)
	require.Equal(t, 2.25, v64)
}
