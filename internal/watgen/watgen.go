/*
Copyright (C) 2026  The Proboscis Authors

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package watgen lowers a Program into a self-contained WebAssembly text
// module: static data, function table, the three bump globals, the
// spliced-in runtime file, and one WAT function per IR function.
package watgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/launix-de/proboscis/internal/ir"
	"github.com/launix-de/proboscis/internal/localplace"
)

// stackReserveBytes is the fixed gap between the end of static data and
// heap_start: 10 KiB of stack, per spec.
const stackReserveBytes = 10240

// Emit writes program as a WAT module to w. runtimeBody is the verbatim
// text of rt/rt.wat, spliced in between the globals and the generated
// functions.
func Emit(w io.Writer, program *ir.Program, runtimeBody string) error {
	localplace.Analyze(program)

	var b strings.Builder
	b.WriteString("(module\n")
	b.WriteString("  (import \"js\" \"mem\" (memory 10))\n")
	b.WriteString("  (import \"console\" \"log\" (func $log (param i32 i32)))\n\n")

	writeStaticData(&b, program)
	writeTable(&b, program)
	writeGlobals(&b, program)

	b.WriteString(runtimeBody)
	if !strings.HasSuffix(runtimeBody, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for id, fn := range program.Functions {
		writeFunction(&b, program, ir.FuncID(id), fn)
	}

	b.WriteString(")\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeStaticData(b *strings.Builder, program *ir.Program) {
	data := program.StaticData.Bytes()
	fmt.Fprintf(b, "  (data (i32.const 0) \"%s\")\n\n", escapeWatString(data))
}

func writeTable(b *strings.Builder, program *ir.Program) {
	n := len(program.Functions)
	fmt.Fprintf(b, "  (table %d funcref)\n", n)
	b.WriteString("  (elem (i32.const 0)")
	for id := range program.Functions {
		fmt.Fprintf(b, " %s", funcRef(ir.FuncID(id)))
	}
	b.WriteString(")\n\n")
}

func writeGlobals(b *strings.Builder, program *ir.Program) {
	staticLen := int32(program.StaticData.Len())
	heapStart := staticLen + stackReserveBytes
	fmt.Fprintf(b, "  (global $stack_bottom (mut i32) (i32.const %d))\n", staticLen)
	fmt.Fprintf(b, "  (global $stack_top i32 (i32.const %d))\n", heapStart)
	fmt.Fprintf(b, "  (global $heap_start (mut i32) (i32.const %d))\n\n", heapStart)
}

func funcRef(id ir.FuncID) string { return fmt.Sprintf("$fn%d", id) }

// escapeWatString renders raw bytes as a WAT string literal body: bytes
// in the printable ASCII range are kept literal except the two
// characters the grammar reserves, everything else is a \xx hex escape.
func escapeWatString(data []byte) string {
	var b strings.Builder
	for _, c := range data {
		switch {
		case c == '"' || c == '\\':
			fmt.Fprintf(&b, "\\%02x", c)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "\\%02x", c)
		}
	}
	return b.String()
}
