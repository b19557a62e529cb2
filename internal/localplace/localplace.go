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

// Package localplace computes each function's frame strategy and byte
// length by scanning its instructions for the highest Local offset
// written or read, recursing into any CreateFunction target so a
// persistent-frame function's size accounts for every lambda it
// creates.
package localplace

import "github.com/launix-de/proboscis/internal/ir"

// calculator tracks the maximum Local offset seen, mirroring the
// "start one word below zero, so an empty function reports zero"
// convention: an untouched calculator reports a frame of zero bytes.
type calculator struct {
	maxOffset int32
}

func newCalculator() *calculator { return &calculator{maxOffset: -4} }

func (c *calculator) mustContain(p ir.PlaceAddress) {
	if p.Mode != ir.Local {
		return
	}
	if p.Offset > c.maxOffset {
		c.maxOffset = p.Offset
	}
}

func (c *calculator) bytes() int32 { return c.maxOffset + 4 }

// Analyze fills in Frame and FrameSize for every function in prog. A
// function is Heap-strategy iff it creates or accepts persistent
// places; otherwise Stack. FrameSize for an AcceptsPersistentPlaces
// lambda is computed but never consulted by the WAT emitter, which
// gives such a function an empty prologue and relies entirely on its
// caller's frame.
func Analyze(prog *ir.Program) {
	for _, fn := range prog.Functions {
		fn.FrameSize = localPlacesByteLen(prog, fn, map[*ir.Function]bool{})
		if fn.Attrs.Has(ir.CreatesPersistentPlaces) || fn.Attrs.Has(ir.AcceptsPersistentPlaces) {
			fn.Frame = ir.Heap
		} else {
			fn.Frame = ir.Stack
		}
	}
}

// localPlacesByteLen scans fn's instructions, recursing into any
// CreateFunction target exactly once per call (visited guards against
// a lambda erroneously referencing itself through a future extension).
func localPlacesByteLen(prog *ir.Program, fn *ir.Function, visited map[*ir.Function]bool) int32 {
	if visited[fn] {
		return 0
	}
	visited[fn] = true

	c := newCalculator()
	var nested []int32
	for _, instr := range fn.Instructions {
		c.mustContain(instr.A)
		c.mustContain(instr.B)
		c.mustContain(instr.To)
		if instr.Op == ir.OpCreateFunction {
			target := prog.FunctionAt(instr.TableIndex)
			nested = append(nested, localPlacesByteLen(prog, target, visited))
		}
	}

	max := c.bytes()
	for _, n := range nested {
		if n > max {
			max = n
		}
	}
	return max
}
