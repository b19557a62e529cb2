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

package ir

type Opcode int

const (
	OpLoadData Opcode = iota
	OpWritePlace
	OpCons
	OpConcatStringLike
	OpLoadCar
	OpLoadCdr
	OpLoadTypeTag
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpLt
	OpGt
	OpLte
	OpGte
	OpNilIfZero
	OpCall
	OpCallIndirect
	OpCallPrint
	OpCreateFunction
	OpConsumeParam
	OpConsumeRest
	OpEnterBlock
	OpExitBlock
	OpBreak
	OpContinue
	OpBreakIfNotNil
	OpBreakIfNil
	OpContinueIfNotNil
	OpReturn
	OpPanic
)

// Instruction is one flat IR op. Every instruction carries the same
// generic operand fields; which ones mean anything is decided by Op, the
// same way inst.rs's enum variants each name the operands that matter to
// them. A flat struct (rather than one Go type per opcode) keeps
// traversal in the local-place analyzer and WAT emitter a single
// exhaustive switch on Op, not a type switch over N implementations.
type Instruction struct {
	Op Opcode

	A  PlaceAddress // primary source operand
	B  PlaceAddress // secondary source operand
	To PlaceAddress // destination place

	Data DataAddress // LoadData / CallPrint: static data operand

	Function   FuncID // Call: direct target
	TableIndex FuncID // CreateFunction: reserved table slot

	Up int32 // Break/Continue family: enclosing-block count (1-based)
}

// LoadData loads the value at a static address into a Place.
func LoadData(data DataAddress, to PlaceAddress) Instruction {
	return Instruction{Op: OpLoadData, Data: data, To: to}
}

// WritePlace copies one Place's address into another.
func WritePlace(from, to PlaceAddress) Instruction {
	return Instruction{Op: OpWritePlace, A: from, To: to}
}

func Cons(car, cdr, to PlaceAddress) Instruction {
	return Instruction{Op: OpCons, A: car, B: cdr, To: to}
}

func ConcatStringLike(l, r, to PlaceAddress) Instruction {
	return Instruction{Op: OpConcatStringLike, A: l, B: r, To: to}
}

func LoadCar(from, to PlaceAddress) Instruction {
	return Instruction{Op: OpLoadCar, A: from, To: to}
}

func LoadCdr(from, to PlaceAddress) Instruction {
	return Instruction{Op: OpLoadCdr, A: from, To: to}
}

func LoadTypeTag(from, to PlaceAddress) Instruction {
	return Instruction{Op: OpLoadTypeTag, A: from, To: to}
}

func arith(op Opcode, l, r, to PlaceAddress) Instruction {
	return Instruction{Op: op, A: l, B: r, To: to}
}

func Add(l, r, to PlaceAddress) Instruction { return arith(OpAdd, l, r, to) }
func Sub(l, r, to PlaceAddress) Instruction { return arith(OpSub, l, r, to) }
func Mul(l, r, to PlaceAddress) Instruction { return arith(OpMul, l, r, to) }
func Div(l, r, to PlaceAddress) Instruction { return arith(OpDiv, l, r, to) }

func Eq(l, r, to PlaceAddress) Instruction  { return arith(OpEq, l, r, to) }
func Ne(l, r, to PlaceAddress) Instruction  { return arith(OpNe, l, r, to) }
func Lt(l, r, to PlaceAddress) Instruction  { return arith(OpLt, l, r, to) }
func Gt(l, r, to PlaceAddress) Instruction  { return arith(OpGt, l, r, to) }
func Lte(l, r, to PlaceAddress) Instruction { return arith(OpLte, l, r, to) }
func Gte(l, r, to PlaceAddress) Instruction { return arith(OpGte, l, r, to) }

func NilIfZero(from, to PlaceAddress) Instruction {
	return Instruction{Op: OpNilIfZero, A: from, To: to}
}

// Call dispatches directly to a statically known function. A is the
// Place holding the pre-built cons argument list.
func Call(fn FuncID, paramList, to PlaceAddress) Instruction {
	return Instruction{Op: OpCall, Function: fn, A: paramList, To: to}
}

// CallIndirect dispatches through a Function value held at A, passing
// the argument list held at B.
func CallIndirect(fnPlace, paramList, to PlaceAddress) Instruction {
	return Instruction{Op: OpCallIndirect, A: fnPlace, B: paramList, To: to}
}

// CallPrint passes a string-like value to the host's console.log.
func CallPrint(stringPlace PlaceAddress) Instruction {
	return Instruction{Op: OpCallPrint, A: stringPlace}
}

// CreateFunction allocates a Function value bound to a reserved table
// slot, snapshotting the current persistent_bottom as its capture base.
func CreateFunction(tableIndex FuncID, to PlaceAddress) Instruction {
	return Instruction{Op: OpCreateFunction, TableIndex: tableIndex, To: to}
}

func ConsumeParam(to PlaceAddress) Instruction {
	return Instruction{Op: OpConsumeParam, To: to}
}

func ConsumeRest(to PlaceAddress) Instruction {
	return Instruction{Op: OpConsumeRest, To: to}
}

func EnterBlock() Instruction { return Instruction{Op: OpEnterBlock} }
func ExitBlock() Instruction  { return Instruction{Op: OpExitBlock} }

// Break exits the up-th enclosing block (1 = the innermost open block).
func Break(up int32) Instruction { return Instruction{Op: OpBreak, Up: up} }

// Continue restarts the up-th enclosing block.
func Continue(up int32) Instruction { return Instruction{Op: OpContinue, Up: up} }

func BreakIfNotNil(up int32, test PlaceAddress) Instruction {
	return Instruction{Op: OpBreakIfNotNil, Up: up, A: test}
}

func BreakIfNil(up int32, test PlaceAddress) Instruction {
	return Instruction{Op: OpBreakIfNil, Up: up, A: test}
}

func ContinueIfNotNil(up int32, test PlaceAddress) Instruction {
	return Instruction{Op: OpContinueIfNotNil, Up: up, A: test}
}

func Return(value PlaceAddress) Instruction {
	return Instruction{Op: OpReturn, A: value}
}

func Panic() Instruction { return Instruction{Op: OpPanic} }
