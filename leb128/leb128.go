// Package leb128 implements the LEB128 variable-length integer codec
// used by the Wasm binary format: unsigned/signed reads and writes with
// minimal byte count, fixed-width 5/10-byte forms for self-relocated
// section lengths, length-prefixed blobs, and raw little-endian floats.
//
// This is an external collaborator of the compiler core (§6 "LEB128
// codec (consumed)"), implemented here as a small self-contained codec
// rather than imported, since the corpus's own Wasm packages
// (wasm/leb128.go, wat/internal/encoder) each vendor their own instead
// of sharing a library — there is no ecosystem LEB128 package in the
// teacher's dependency set to reuse.
package leb128

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// ErrUnexpectedEOF is returned when a read runs out of input bytes
// before the terminating byte (continuation bit clear) is seen.
var ErrUnexpectedEOF = errors.New("leb128: unexpected EOF")

// ErrOverflow is returned when a decoded value would exceed the target
// bit width.
var ErrOverflow = errors.New("leb128: overflow")

// WriteUnsigned writes v using the minimal number of LEB128 bytes.
func WriteUnsigned(w *bytes.Buffer, v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

// WriteSigned writes v using the minimal number of LEB128 bytes, with
// sign-extension of the final byte's unused bits.
func WriteSigned(w *bytes.Buffer, v int64) {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		w.WriteByte(b)
	}
}

// WriteFixedU32 writes v as a constant 5-byte LEB128 form (every byte
// but the last has its continuation bit forced on), used for
// self-relocated section lengths patched in after the fact.
func WriteFixedU32(w *bytes.Buffer, v uint32) {
	for i := 0; i < 5; i++ {
		b := byte(v & 0x7f)
		v >>= 7
		if i < 4 {
			b |= 0x80
		}
		w.WriteByte(b)
	}
}

// WriteFixedU64 writes v as a constant 10-byte LEB128 form.
func WriteFixedU64(w *bytes.Buffer, v uint64) {
	for i := 0; i < 10; i++ {
		b := byte(v & 0x7f)
		v >>= 7
		if i < 9 {
			b |= 0x80
		}
		w.WriteByte(b)
	}
}

// WriteBlob writes a length-prefixed byte payload: write(len); write(payload).
func WriteBlob(w *bytes.Buffer, payload []byte) {
	WriteUnsigned(w, uint64(len(payload)))
	w.Write(payload)
}

// ReadUnsigned reads an unsigned LEB128 value up to 64 bits.
func ReadUnsigned(r io.ByteReader) (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, ErrUnexpectedEOF
			}
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, ErrOverflow
		}
	}
}

// ReadSigned reads a signed LEB128 value up to 64 bits, sign-extending
// using the continuation byte's bit 6 when the shift does not already
// cover the full width.
func ReadSigned(r io.ByteReader) (int64, error) {
	var result int64
	var shift uint
	var b byte
	var err error
	for {
		b, err = r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, ErrUnexpectedEOF
			}
			return 0, err
		}
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
		if shift >= 70 {
			return 0, ErrOverflow
		}
	}
	if shift < 64 && b&0x40 != 0 {
		result |= ^int64(0) << shift
	}
	return result, nil
}

// ReadFloat32 reads a raw little-endian float32.
func ReadFloat32(r io.Reader) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

// ReadFloat64 reads a raw little-endian float64.
func ReadFloat64(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

// WriteFloat32 writes a raw little-endian float32.
func WriteFloat32(w *bytes.Buffer, v float32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	w.Write(buf[:])
}

// WriteFloat64 writes a raw little-endian float64.
func WriteFloat64(w *bytes.Buffer, v float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	w.Write(buf[:])
}
