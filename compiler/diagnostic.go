package compiler

import (
	"fmt"
	"strings"

	"github.com/neri/toyscript-wasm/cerr"
)

// FormatDiagnostic renders a *cerr.Error as a one-line-plus-caret
// diagnostic: the error message, the offending source line, and a
// `^` underline at the error's column. Falls back to the bare error
// message when the position is at EOF or out of range.
func FormatDiagnostic(fileName string, source []byte, err *cerr.Error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s: %s\n", fileName, err.Pos.String(), err.Error())

	if err.Pos.EOF {
		return b.String()
	}

	line := sourceLine(source, err.Pos.Line)
	if line == "" {
		return b.String()
	}
	b.WriteString(line)
	b.WriteByte('\n')

	col := err.Pos.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteByte('^')
	b.WriteByte('\n')
	return b.String()
}

// sourceLine returns the 1-indexed line of source, or "" if out of range.
func sourceLine(source []byte, line int) string {
	if line < 1 {
		return ""
	}
	cur := 1
	start := 0
	for i, c := range source {
		if cur == line && c == '\n' {
			return string(source[start:i])
		}
		if c == '\n' {
			cur++
			start = i + 1
		}
	}
	if cur == line {
		return string(source[start:])
	}
	return ""
}
