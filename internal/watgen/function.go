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

package watgen

import (
	"fmt"
	"strings"

	"github.com/launix-de/proboscis/internal/ir"
)

// funcEmitter holds the per-function state needed while lowering one
// Function's instructions: the running block-label counter and the
// stack of currently-open labels that Break/Continue index into.
type funcEmitter struct {
	program *ir.Program
	fn      *ir.Function
	id      ir.FuncID
	labels  []int // open block labels, innermost last
	next    int
}

func writeFunction(b *strings.Builder, program *ir.Program, id ir.FuncID, fn *ir.Function) {
	fmt.Fprintf(b, "  (func %s", funcRef(id))
	if fn.Attrs.Has(ir.Exported) {
		fmt.Fprintf(b, " (export %q)", fn.Name)
	}
	b.WriteString(" (param $param_head i32) (param $persistent_bottom i32) (result i32)\n")
	b.WriteString("    (local $tmp i32)\n")
	b.WriteString("    (local $retval i32)\n")

	e := &funcEmitter{program: program, fn: fn, id: id}
	e.writePrologue(b)
	b.WriteString("    (block $body\n")
	for _, instr := range fn.Instructions {
		e.writeInstruction(b, instr)
	}
	b.WriteString("    )\n")
	e.writeEpilogue(b)
	b.WriteString("    (local.get $retval)\n")
	b.WriteString("  )\n\n")
}

func (e *funcEmitter) writePrologue(b *strings.Builder) {
	if e.fn.FrameSize == 0 {
		return
	}
	switch {
	case e.fn.Attrs.Has(ir.AcceptsPersistentPlaces):
		// Inherits the caller's persistent frame; no allocation here.
	case e.fn.Frame == ir.Heap:
		fmt.Fprintf(b, "    (local.set $persistent_bottom (call $alloc_heap (i32.const %d)))\n", e.fn.FrameSize)
	default:
		fmt.Fprintf(b, "    (call $inc_stack_bottom (i32.const %d))\n", e.fn.FrameSize)
	}
}

func (e *funcEmitter) writeEpilogue(b *strings.Builder) {
	if e.fn.FrameSize == 0 {
		return
	}
	if e.fn.Frame == ir.Stack && !e.fn.Attrs.Has(ir.AcceptsPersistentPlaces) {
		fmt.Fprintf(b, "    (call $inc_stack_bottom (i32.const %d))\n", -e.fn.FrameSize)
	}
}

// addr renders the byte address of the cell a Place names, given this
// function's frame strategy for Local places.
func (e *funcEmitter) addr(p ir.PlaceAddress) string {
	if p.Mode == ir.Global {
		return fmt.Sprintf("(i32.const %d)", p.Offset)
	}
	if e.fn.Frame == ir.Heap {
		return fmt.Sprintf("(i32.add (local.get $persistent_bottom) (i32.const %d))", p.Offset)
	}
	return fmt.Sprintf("(i32.sub (global.get $stack_bottom) (i32.const %d))", p.Offset+4)
}

func (e *funcEmitter) read(p ir.PlaceAddress) string {
	return fmt.Sprintf("(i32.load %s)", e.addr(p))
}

func (e *funcEmitter) write(b *strings.Builder, p ir.PlaceAddress, valueExpr string) {
	fmt.Fprintf(b, "    (i32.store %s %s)\n", e.addr(p), valueExpr)
}

func (e *funcEmitter) pushBlock() int {
	label := e.next
	e.next++
	e.labels = append(e.labels, label)
	return label
}

func (e *funcEmitter) popBlock() {
	e.labels = e.labels[:len(e.labels)-1]
}

func (e *funcEmitter) label(up int32) int {
	return e.labels[len(e.labels)-int(up)]
}

func startLabel(n int) string { return fmt.Sprintf("$b%d_start", n) }
func endLabel(n int) string   { return fmt.Sprintf("$b%d_end", n) }

func (e *funcEmitter) writeInstruction(b *strings.Builder, i ir.Instruction) {
	nilAddr := int32(e.program.StaticData.Nil())
	tAddr := int32(e.program.StaticData.T())

	switch i.Op {
	case ir.OpEnterBlock:
		n := e.pushBlock()
		fmt.Fprintf(b, "    (loop %s (block %s\n", startLabel(n), endLabel(n))

	case ir.OpExitBlock:
		e.popBlock()
		b.WriteString("    ))\n")

	case ir.OpLoadData:
		e.write(b, i.To, fmt.Sprintf("(i32.const %d)", i.Data))

	case ir.OpWritePlace:
		e.write(b, i.To, e.read(i.A))

	case ir.OpCons:
		fmt.Fprintf(b, "    (local.set $tmp (call $alloc_heap (i32.const 12)))\n")
		fmt.Fprintf(b, "    (i32.store (local.get $tmp) (i32.const %d))\n", ir.TagListNode)
		fmt.Fprintf(b, "    (i32.store offset=4 (local.get $tmp) %s)\n", e.read(i.A))
		fmt.Fprintf(b, "    (i32.store offset=8 (local.get $tmp) %s)\n", e.read(i.B))
		e.write(b, i.To, "(local.get $tmp)")

	case ir.OpConcatStringLike:
		e.write(b, i.To, fmt.Sprintf("(call $concat_strings %s %s)", e.read(i.A), e.read(i.B)))

	case ir.OpLoadCar:
		e.write(b, i.To, fmt.Sprintf("(i32.load offset=4 %s)", e.read(i.A)))

	case ir.OpLoadCdr:
		e.write(b, i.To, fmt.Sprintf("(i32.load offset=8 %s)", e.read(i.A)))

	case ir.OpLoadTypeTag:
		fmt.Fprintf(b, "    (local.set $tmp (i32.load %s))\n", e.read(i.A))
		e.write(b, i.To, "(call $make_num (local.get $tmp))")

	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv:
		e.write(b, i.To, fmt.Sprintf("(call $make_num (%s (i32.load offset=4 %s) (i32.load offset=4 %s)))",
			arithOp(i.Op), e.read(i.A), e.read(i.B)))

	case ir.OpEq, ir.OpNe, ir.OpLt, ir.OpGt, ir.OpLte, ir.OpGte:
		cond := fmt.Sprintf("(%s (i32.load offset=4 %s) (i32.load offset=4 %s))",
			cmpOp(i.Op), e.read(i.A), e.read(i.B))
		e.write(b, i.To, fmt.Sprintf("(select (i32.const %d) (i32.const %d) %s)", tAddr, nilAddr, cond))

	case ir.OpNilIfZero:
		cond := fmt.Sprintf("(i32.eqz (i32.load offset=4 %s))", e.read(i.A))
		e.write(b, i.To, fmt.Sprintf("(select (i32.const %d) %s %s)", nilAddr, e.read(i.A), cond))

	case ir.OpCall:
		e.write(b, i.To, fmt.Sprintf("(call %s %s (i32.const 0))", funcRef(i.Function), e.read(i.A)))

	case ir.OpCallIndirect:
		e.write(b, i.To, fmt.Sprintf("(call $call_function %s %s)", e.read(i.A), e.read(i.B)))

	case ir.OpCallPrint:
		fmt.Fprintf(b, "    (call $log (i32.add %s (i32.const 8)) (i32.load offset=4 %s))\n", e.read(i.A), e.read(i.A))

	case ir.OpCreateFunction:
		e.write(b, i.To, fmt.Sprintf("(call $make_function (i32.const %d) (local.get $persistent_bottom))", i.TableIndex))

	case ir.OpConsumeParam:
		e.write(b, i.To, "(i32.load offset=4 (local.get $param_head))")
		fmt.Fprintf(b, "    (local.set $param_head (i32.load offset=8 (local.get $param_head)))\n")

	case ir.OpConsumeRest:
		e.write(b, i.To, "(local.get $param_head)")

	case ir.OpBreak:
		fmt.Fprintf(b, "    (br %s)\n", endLabel(e.label(i.Up)))

	case ir.OpContinue:
		fmt.Fprintf(b, "    (br %s)\n", startLabel(e.label(i.Up)))

	case ir.OpBreakIfNotNil:
		fmt.Fprintf(b, "    (br_if %s (i32.ne %s (i32.const %d)))\n", endLabel(e.label(i.Up)), e.read(i.A), nilAddr)

	case ir.OpBreakIfNil:
		fmt.Fprintf(b, "    (br_if %s (i32.eq %s (i32.const %d)))\n", endLabel(e.label(i.Up)), e.read(i.A), nilAddr)

	case ir.OpContinueIfNotNil:
		fmt.Fprintf(b, "    (br_if %s (i32.ne %s (i32.const %d)))\n", startLabel(e.label(i.Up)), e.read(i.A), nilAddr)

	case ir.OpReturn:
		fmt.Fprintf(b, "    (local.set $retval %s)\n", e.read(i.A))
		b.WriteString("    (br $body)\n")

	case ir.OpPanic:
		b.WriteString("    (unreachable)\n")
	}
}

func arithOp(op ir.Opcode) string {
	switch op {
	case ir.OpAdd:
		return "i32.add"
	case ir.OpSub:
		return "i32.sub"
	case ir.OpMul:
		return "i32.mul"
	default:
		return "i32.div_s"
	}
}

func cmpOp(op ir.Opcode) string {
	switch op {
	case ir.OpEq:
		return "i32.eq"
	case ir.OpNe:
		return "i32.ne"
	case ir.OpLt:
		return "i32.lt_s"
	case ir.OpGt:
		return "i32.gt_s"
	case ir.OpLte:
		return "i32.le_s"
	default:
		return "i32.ge_s"
	}
}
