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

// Package intrinsics hand-assembles the primitive operations the
// runtime library and user code call into: one fabricated IR function
// per op, each a straight-line ConsumeParam sequence, an opcode, and a
// Return. These are the only points where runtime primitives are
// injected into the IR rather than derived from user source.
package intrinsics

import "github.com/launix-de/proboscis/internal/ir"

// arity is how many parameters an intrinsic consumes before emitting
// its opcode.
type spec struct {
	op    string
	arity int
	build func(params []ir.PlaceAddress, result ir.PlaceAddress) ir.Instruction
}

func binary(op func(l, r, to ir.PlaceAddress) ir.Instruction) func([]ir.PlaceAddress, ir.PlaceAddress) ir.Instruction {
	return func(params []ir.PlaceAddress, result ir.PlaceAddress) ir.Instruction {
		return op(params[0], params[1], result)
	}
}

func unary(op func(from, to ir.PlaceAddress) ir.Instruction) func([]ir.PlaceAddress, ir.PlaceAddress) ir.Instruction {
	return func(params []ir.PlaceAddress, result ir.PlaceAddress) ir.Instruction {
		return op(params[0], result)
	}
}

var specs = []spec{
	{"princ", 1, func(params []ir.PlaceAddress, result ir.PlaceAddress) ir.Instruction {
		return ir.CallPrint(params[0])
	}},
	{"type-tag-of", 1, unary(ir.LoadTypeTag)},
	{"concat-string-like-2", 2, binary(ir.ConcatStringLike)},
	{"cons", 2, binary(ir.Cons)},
	{"car", 1, unary(ir.LoadCar)},
	{"cdr", 1, unary(ir.LoadCdr)},
	{"add-2", 2, binary(ir.Add)},
	{"sub-2", 2, binary(ir.Sub)},
	{"mul-2", 2, binary(ir.Mul)},
	{"div-2", 2, binary(ir.Div)},
	{"=-2", 2, binary(ir.Eq)},
	{"/=-2", 2, binary(ir.Ne)},
	{"<-2", 2, binary(ir.Lt)},
	{">-2", 2, binary(ir.Gt)},
	{"<=-2", 2, binary(ir.Lte)},
	{">=-2", 2, binary(ir.Gte)},
	{"nil-if-0", 1, unary(ir.NilIfZero)},
	{"panic", 1, nil},
}

// Names are the bare intrinsic operation names (e.g. "add-2"), usable
// both bare and under their "intrinsic:"-prefixed spelling.
var Names []string

func init() {
	for _, s := range specs {
		Names = append(Names, s.op)
	}
}

// QualifiedName is the function-table name an intrinsic is declared
// under.
func QualifiedName(op string) string { return "intrinsic:" + op }

// IsIntrinsic reports whether name (bare or "intrinsic:"-prefixed) names
// a built-in operation.
func IsIntrinsic(name string) bool {
	for _, op := range Names {
		if name == op || name == QualifiedName(op) {
			return true
		}
	}
	return false
}

// EmitAll declares every intrinsic as a private function in prog, bound
// under both its bare name and its "intrinsic:"-prefixed name so either
// calling convention resolves to the same function.
func EmitAll(prog *ir.Program) {
	for _, s := range specs {
		fn := prog.DeclareFunction(QualifiedName(s.op), 0)
		id, _ := prog.Lookup(QualifiedName(s.op))
		prog.FunctionIndex[s.op] = id

		var params []ir.PlaceAddress
		for i := 0; i < s.arity; i++ {
			p := ir.PlaceAddress{Mode: ir.Local, Offset: int32(i * 4)}
			params = append(params, p)
			fn.Instructions = append(fn.Instructions, ir.ConsumeParam(p))
		}
		result := ir.PlaceAddress{Mode: ir.Local, Offset: int32(s.arity * 4)}

		if s.op == "panic" {
			fn.Instructions = append(fn.Instructions, ir.Panic(), ir.Return(params[0]))
			continue
		}
		fn.Instructions = append(fn.Instructions, s.build(params, result), ir.Return(result))
	}
}
