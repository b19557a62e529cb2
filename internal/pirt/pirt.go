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

// Package pirt pretty-prints a Program as PIRT: a read-only text dump of
// the static data pool and every function's instruction stream, with no
// corresponding parser.
package pirt

import (
	"fmt"
	"io"
	"strings"

	"github.com/launix-de/proboscis/internal/ir"
)

// Write renders program as PIRT text.
func Write(w io.Writer, program *ir.Program) error {
	if err := writeStaticData(w, program); err != nil {
		return err
	}
	for _, fn := range program.Functions {
		if err := writeFunction(w, fn); err != nil {
			return err
		}
	}
	return nil
}

// Format renders program as a PIRT string, for callers that prefer a
// value over a Writer (tests).
func Format(program *ir.Program) string {
	var b strings.Builder
	_ = Write(&b, program)
	return b.String()
}

func writeStaticData(w io.Writer, program *ir.Program) error {
	entries := program.StaticData.Entries()
	if len(entries) == 0 {
		return nil
	}
	if _, err := fmt.Fprint(w, "static_data = [\n"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "\t%d: %s\n", e.Addr, e.Key); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "]\n\n")
	return err
}

func writeFunction(w io.Writer, fn *ir.Function) error {
	attrs := attrNames(fn.Attrs)
	if len(attrs) > 0 {
		if _, err := fmt.Fprintf(w, "[%s] ", strings.Join(attrs, "] [")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s {\n", fn.Name); err != nil {
		return err
	}
	indent := 1
	for _, instr := range fn.Instructions {
		if instr.Op == ir.OpExitBlock {
			indent--
		}
		if _, err := fmt.Fprint(w, strings.Repeat("\t", indent)); err != nil {
			return err
		}
		line := formatInstruction(instr)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if instr.Op == ir.OpEnterBlock {
			indent++
		}
	}
	_, err := fmt.Fprint(w, "}\n\n")
	return err
}

func attrNames(a ir.FunctionAttrs) []string {
	var out []string
	if a.Has(ir.Exported) {
		out = append(out, "Exported")
	}
	if a.Has(ir.CreatesPersistentPlaces) {
		out = append(out, "CreatesPersistentPlaces")
	}
	if a.Has(ir.AcceptsPersistentPlaces) {
		out = append(out, "AcceptsPersistentPlaces")
	}
	return out
}

func place(p ir.PlaceAddress) string {
	if p.Mode == ir.Global {
		return fmt.Sprintf("G+%d", p.Offset)
	}
	return fmt.Sprintf("L+%d", p.Offset)
}

func formatInstruction(i ir.Instruction) string {
	switch i.Op {
	case ir.OpEnterBlock:
		return "{"
	case ir.OpExitBlock:
		return "}"
	case ir.OpLoadData:
		return fmt.Sprintf("LoadData data=%d -> %s", i.Data, place(i.To))
	case ir.OpWritePlace:
		return fmt.Sprintf("WritePlace %s -> %s", place(i.A), place(i.To))
	case ir.OpCons:
		return fmt.Sprintf("Cons car=%s cdr=%s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpConcatStringLike:
		return fmt.Sprintf("ConcatStringLike %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpLoadCar:
		return fmt.Sprintf("LoadCar %s -> %s", place(i.A), place(i.To))
	case ir.OpLoadCdr:
		return fmt.Sprintf("LoadCdr %s -> %s", place(i.A), place(i.To))
	case ir.OpLoadTypeTag:
		return fmt.Sprintf("LoadTypeTag %s -> %s", place(i.A), place(i.To))
	case ir.OpAdd:
		return fmt.Sprintf("Add %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpSub:
		return fmt.Sprintf("Sub %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpMul:
		return fmt.Sprintf("Mul %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpDiv:
		return fmt.Sprintf("Div %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpEq:
		return fmt.Sprintf("Eq %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpNe:
		return fmt.Sprintf("Ne %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpLt:
		return fmt.Sprintf("Lt %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpGt:
		return fmt.Sprintf("Gt %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpLte:
		return fmt.Sprintf("Lte %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpGte:
		return fmt.Sprintf("Gte %s %s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpNilIfZero:
		return fmt.Sprintf("NilIfZero %s -> %s", place(i.A), place(i.To))
	case ir.OpCall:
		return fmt.Sprintf("Call fn=%d params=%s -> %s", i.Function, place(i.A), place(i.To))
	case ir.OpCallIndirect:
		return fmt.Sprintf("CallIndirect fn=%s params=%s -> %s", place(i.A), place(i.B), place(i.To))
	case ir.OpCallPrint:
		return fmt.Sprintf("CallPrint %s", place(i.A))
	case ir.OpCreateFunction:
		return fmt.Sprintf("CreateFunction table=%d -> %s", i.TableIndex, place(i.To))
	case ir.OpConsumeParam:
		return fmt.Sprintf("ConsumeParam -> %s", place(i.To))
	case ir.OpConsumeRest:
		return fmt.Sprintf("ConsumeRest -> %s", place(i.To))
	case ir.OpBreak:
		return fmt.Sprintf("Break up=%d", i.Up)
	case ir.OpContinue:
		return fmt.Sprintf("Continue up=%d", i.Up)
	case ir.OpBreakIfNotNil:
		return fmt.Sprintf("BreakIfNotNil up=%d %s", i.Up, place(i.A))
	case ir.OpBreakIfNil:
		return fmt.Sprintf("BreakIfNil up=%d %s", i.Up, place(i.A))
	case ir.OpContinueIfNotNil:
		return fmt.Sprintf("ContinueIfNotNil up=%d %s", i.Up, place(i.A))
	case ir.OpReturn:
		return fmt.Sprintf("Return %s", place(i.A))
	case ir.OpPanic:
		return "Panic"
	default:
		return fmt.Sprintf("<unknown opcode %d>", i.Op)
	}
}
