package wasmout

import (
	"bytes"
	"strings"

	"github.com/neri/toyscript-wasm/leb128"
	"github.com/neri/toyscript-wasm/tir"
)

const nameSubsecFunction = 1
const nameSubsecLocal = 2

// nameSection builds the standard "name" custom section. Only
// functions whose internal name carries the mangled-identifier "$"
// prefix (constructors and methods, named via typesys.Mangled) get a
// function-name entry, written with the prefix stripped; plain
// top-level functions and the implicit "main" entry point have no
// source identifier of that form and are left unnamed.
func nameSection(fns []*tir.Function) CustomSection {
	var buf bytes.Buffer

	type namedFunc struct {
		idx  int
		name string
	}
	var named []namedFunc
	for i, fn := range fns {
		if strings.HasPrefix(fn.Name, "$") {
			named = append(named, namedFunc{idx: i, name: fn.Name[1:]})
		}
	}

	funcNames := new(bytes.Buffer)
	leb128.WriteUnsigned(funcNames, uint64(len(named)))
	for _, nf := range named {
		leb128.WriteUnsigned(funcNames, uint64(nf.idx))
		leb128.WriteBlob(funcNames, []byte(nf.name))
	}
	writeNameSubsection(&buf, nameSubsecFunction, funcNames.Bytes())

	localNames := new(bytes.Buffer)
	leb128.WriteUnsigned(localNames, uint64(len(fns)))
	for i, fn := range fns {
		leb128.WriteUnsigned(localNames, uint64(i))
		all := fn.AllLocals()
		leb128.WriteUnsigned(localNames, uint64(len(all)))
		for j, l := range all {
			leb128.WriteUnsigned(localNames, uint64(j))
			leb128.WriteBlob(localNames, []byte(l.Name))
		}
	}
	writeNameSubsection(&buf, nameSubsecLocal, localNames.Bytes())

	return CustomSection{Name: "name", Data: buf.Bytes()}
}

func writeNameSubsection(buf *bytes.Buffer, id byte, payload []byte) {
	buf.WriteByte(id)
	leb128.WriteBlob(buf, payload)
}
