package wasmout

import (
	"bytes"
	"encoding/binary"

	"github.com/neri/toyscript-wasm/leb128"
)

const (
	wasmMagic   uint32 = 0x6D736100
	wasmVersion uint32 = 0x01
)

const (
	sectionCustom   byte = 0
	sectionType     byte = 1
	sectionFunction byte = 3
	sectionExport   byte = 7
	sectionStart    byte = 8
	sectionCode     byte = 10
)

// Encode serializes the module to a Wasm 1.0 binary, emitting only the
// sections this compiler ever populates: Type, Function, Export,
// Start, Code and trailing Custom sections. Sections with no content
// are omitted entirely, matching the binary format's "sections are
// optional" rule.
func (m *Module) Encode() []byte {
	var w bytes.Buffer

	var magic [4]byte
	binary.LittleEndian.PutUint32(magic[:], wasmMagic)
	w.Write(magic[:])
	var version [4]byte
	binary.LittleEndian.PutUint32(version[:], wasmVersion)
	w.Write(version[:])

	if len(m.Types) > 0 {
		var sec bytes.Buffer
		leb128.WriteUnsigned(&sec, uint64(len(m.Types)))
		for _, ft := range m.Types {
			sec.WriteByte(FuncTypeByte)
			writeValTypes(&sec, ft.Params)
			writeValTypes(&sec, ft.Results)
		}
		writeSection(&w, sectionType, sec.Bytes())
	}

	if len(m.Funcs) > 0 {
		var sec bytes.Buffer
		leb128.WriteUnsigned(&sec, uint64(len(m.Funcs)))
		for _, typeIdx := range m.Funcs {
			leb128.WriteUnsigned(&sec, uint64(typeIdx))
		}
		writeSection(&w, sectionFunction, sec.Bytes())
	}

	if len(m.Exports) > 0 {
		var sec bytes.Buffer
		leb128.WriteUnsigned(&sec, uint64(len(m.Exports)))
		for _, exp := range m.Exports {
			leb128.WriteBlob(&sec, []byte(exp.Name))
			sec.WriteByte(exp.Kind)
			leb128.WriteUnsigned(&sec, uint64(exp.Idx))
		}
		writeSection(&w, sectionExport, sec.Bytes())
	}

	if m.Start != nil {
		var sec bytes.Buffer
		leb128.WriteUnsigned(&sec, uint64(*m.Start))
		writeSection(&w, sectionStart, sec.Bytes())
	}

	if len(m.Code) > 0 {
		var sec bytes.Buffer
		leb128.WriteUnsigned(&sec, uint64(len(m.Code)))
		for _, body := range m.Code {
			var bodyBuf bytes.Buffer
			leb128.WriteUnsigned(&bodyBuf, uint64(len(body.Locals)))
			for _, local := range body.Locals {
				leb128.WriteUnsigned(&bodyBuf, uint64(local.Count))
				bodyBuf.WriteByte(byte(local.ValType))
			}
			bodyBuf.Write(body.Code)
			leb128.WriteBlob(&sec, bodyBuf.Bytes())
		}
		writeSection(&w, sectionCode, sec.Bytes())
	}

	for _, cs := range m.CustomSections {
		var sec bytes.Buffer
		leb128.WriteBlob(&sec, []byte(cs.Name))
		sec.Write(cs.Data)
		writeSection(&w, sectionCustom, sec.Bytes())
	}

	return w.Bytes()
}

func writeSection(w *bytes.Buffer, id byte, data []byte) {
	w.WriteByte(id)
	leb128.WriteBlob(w, data)
}

func writeValTypes(w *bytes.Buffer, types []ValType) {
	leb128.WriteUnsigned(w, uint64(len(types)))
	for _, t := range types {
		w.WriteByte(byte(t))
	}
}
