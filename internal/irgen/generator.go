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

// Package irgen is the IR generator: it owns the static data builder,
// the function table, a variable scope stack, and the per-node
// interning maps, and walks the Form algebra to produce PIRT.
package irgen

import (
	"fmt"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/form"
	"github.com/launix-de/proboscis/internal/intrinsics"
	"github.com/launix-de/proboscis/internal/ir"
	"github.com/launix-de/proboscis/internal/sema"
)

// Generator turns classified Units into an ir.Program.
type Generator struct {
	prog     *ir.Program
	sink     *diag.Sink
	scope    *scopeStack
	localGen *int32
}

func NewGenerator(sink *diag.Sink) *Generator {
	return &Generator{prog: ir.NewProgram(), sink: sink, scope: &scopeStack{}}
}

// Generate runs the full pipeline: intrinsics, globals, function address
// reservation, function bodies, and a synthesized main. Errors are
// reported to the sink; Generate always returns a Program, even a
// partial one when errors occurred — callers gate on the sink.
func (g *Generator) Generate(units []*sema.Unit) *ir.Program {
	intrinsics.EmitAll(g.prog)

	for _, u := range units {
		for _, gd := range u.Globals {
			g.emitGlobal(gd)
		}
	}

	for _, u := range units {
		for _, fn := range u.Functions {
			if fn.Name == "main" {
				g.sink.Report(reservedName(fn.Frag, "main"))
				continue
			}
			g.prog.DeclareFunction(fn.Name, ir.Exported)
		}
	}

	for _, u := range units {
		for _, fn := range u.Functions {
			if fn.Name == "main" {
				continue
			}
			g.emitFunctionBody(fn)
		}
	}

	g.emitMain(units)
	return g.prog
}

func (g *Generator) emit(fn *ir.Function, instr ir.Instruction) {
	fn.Instructions = append(fn.Instructions, instr)
}

func (g *Generator) freshLocal() ir.PlaceAddress {
	off := *g.localGen
	*g.localGen += 4
	return ir.PlaceAddress{Mode: ir.Local, Offset: off}
}

func (g *Generator) zeroPlace() ir.PlaceAddress { return ir.PlaceAddress{} }

func (g *Generator) emitGlobal(gd *sema.GlobalDefinition) {
	if gd.Value.Kind != form.KindConstant {
		g.sink.Report(globalMustHaveConstantInitializer(gd.Frag, gd.Name))
		return
	}
	addr, err := g.internConstant(gd.Value.ConstNode)
	if err != nil {
		g.sink.ReportIfErr(err)
		return
	}
	cell := g.prog.StaticData.AllocGlobalPlace(addr)
	g.scope.bind(gd.Name, ir.PlaceAddress{Mode: ir.Global, Offset: int32(cell)})
}

func (g *Generator) emitFunctionBody(fnDef *sema.FunctionDefinition) {
	id, ok := g.prog.Lookup(fnDef.Name)
	if !ok {
		return // reservedName already reported for this name (e.g. "main")
	}
	fn := g.prog.FunctionAt(id)
	if containsLambda(fnDef.Body) {
		fn.Attrs |= ir.CreatesPersistentPlaces
	}

	localGen := int32(0)
	g.localGen = &localGen
	g.scope.enter()

	for _, p := range fnDef.Params {
		place := g.freshLocal()
		g.emit(fn, ir.ConsumeParam(place))
		g.scope.bind(p, place)
	}
	if fnDef.Rest != "" {
		place := g.freshLocal()
		g.emit(fn, ir.ConsumeRest(place))
		g.scope.bind(fnDef.Rest, place)
	}

	result := g.emitBody(fnDef.Body, fn)
	g.emit(fn, ir.Return(result))
	g.scope.exit()
}

// emitMain synthesizes the entry point that runs every unit's root code
// in source order.
func (g *Generator) emitMain(units []*sema.Unit) {
	fn := g.prog.DeclareFunction("main", ir.Exported)

	var allRoot []*form.Form
	for _, u := range units {
		for _, r := range u.Root {
			allRoot = append(allRoot, r.Body...)
		}
	}
	if containsLambda(allRoot) {
		fn.Attrs |= ir.CreatesPersistentPlaces
	}

	localGen := int32(0)
	g.localGen = &localGen
	g.scope.enter()
	result := g.emitBody(allRoot, fn)
	g.emit(fn, ir.Return(result))
	g.scope.exit()
}

// emitBody emits every form in sequence, returning the last form's
// result Place, or a freshly loaded nil when forms is empty.
func (g *Generator) emitBody(forms []*form.Form, fn *ir.Function) ir.PlaceAddress {
	if len(forms) == 0 {
		r := g.freshLocal()
		g.emit(fn, ir.LoadData(g.prog.StaticData.Nil(), r))
		return r
	}
	var result ir.PlaceAddress
	for _, f := range forms {
		result = g.emitForm(f, fn)
	}
	return result
}

func (g *Generator) emitForm(f *form.Form, fn *ir.Function) ir.PlaceAddress {
	switch f.Kind {
	case form.KindName:
		place, ok := g.scope.lookup(f.Ident)
		if !ok {
			g.sink.Report(notInScope(f.Frag, f.Ident))
			return g.zeroPlace()
		}
		return place

	case form.KindFunctionName:
		id, ok := g.prog.Lookup(f.Ident)
		if !ok {
			g.sink.Report(functionNotFound(f.Frag, f.Ident))
			return g.zeroPlace()
		}
		addr := g.prog.StaticData.InternFunction(id)
		place := g.freshLocal()
		g.emit(fn, ir.LoadData(addr, place))
		return place

	case form.KindConstant:
		addr, err := g.internConstant(f.ConstNode)
		if err != nil {
			g.sink.ReportIfErr(err)
			return g.zeroPlace()
		}
		place := g.freshLocal()
		g.emit(fn, ir.LoadData(addr, place))
		return place

	case form.KindIf:
		return g.emitIf(f, fn)

	case form.KindAnd:
		return g.emitAndOr(f.Children, fn, true)

	case form.KindOr:
		return g.emitAndOr(f.Children, fn, false)

	case form.KindLet:
		return g.emitLet(f, fn)

	case form.KindCall:
		return g.emitCall(f, fn)

	case form.KindApply:
		return g.emitApply(f, fn)

	case form.KindFuncall:
		return g.emitFuncall(f, fn)

	case form.KindLambda:
		return g.emitLambda(f, fn)

	default:
		panic(fmt.Sprintf("irgen: unreachable form kind %v", f.Kind))
	}
}

func (g *Generator) emitIf(f *form.Form, fn *ir.Function) ir.PlaceAddress {
	t := g.emitForm(f.Test, fn)
	r := g.freshLocal()

	g.emit(fn, ir.EnterBlock())
	g.emit(fn, ir.EnterBlock())
	g.emit(fn, ir.BreakIfNotNil(1, t))

	var elseVal ir.PlaceAddress
	if f.Else != nil {
		elseVal = g.emitForm(f.Else, fn)
	} else {
		elseVal = g.freshLocal()
		g.emit(fn, ir.LoadData(g.prog.StaticData.Nil(), elseVal))
	}
	g.emit(fn, ir.WritePlace(elseVal, r))
	g.emit(fn, ir.Break(2))
	g.emit(fn, ir.ExitBlock())

	thenVal := g.emitForm(f.Then, fn)
	g.emit(fn, ir.WritePlace(thenVal, r))
	g.emit(fn, ir.ExitBlock())

	return r
}

func (g *Generator) emitAndOr(children []*form.Form, fn *ir.Function, isAnd bool) ir.PlaceAddress {
	init := g.prog.StaticData.Nil()
	if isAnd {
		init = g.prog.StaticData.T()
	}
	if len(children) == 0 {
		r := g.freshLocal()
		g.emit(fn, ir.LoadData(init, r))
		return r
	}
	if len(children) == 1 {
		return g.emitForm(children[0], fn)
	}
	r := g.freshLocal()
	g.emit(fn, ir.LoadData(init, r))
	g.emit(fn, ir.EnterBlock())
	for _, c := range children {
		v := g.emitForm(c, fn)
		g.emit(fn, ir.WritePlace(v, r))
		if isAnd {
			g.emit(fn, ir.BreakIfNil(1, r))
		} else {
			g.emit(fn, ir.BreakIfNotNil(1, r))
		}
	}
	g.emit(fn, ir.ExitBlock())
	return r
}

func (g *Generator) emitLet(f *form.Form, fn *ir.Function) ir.PlaceAddress {
	valuePlaces := make([]ir.PlaceAddress, len(f.Bindings))
	for i, b := range f.Bindings {
		valuePlaces[i] = g.emitForm(b.Value, fn)
	}
	g.scope.enter()
	for i, b := range f.Bindings {
		g.scope.bind(b.Name, valuePlaces[i])
	}
	result := g.emitBody(f.Children, fn)
	g.scope.exit()
	return result
}

// buildArgList evaluates args left-to-right, then conses them into a
// Place right-to-left so the resulting list is in source order.
func (g *Generator) buildArgList(args []*form.Form, fn *ir.Function) ir.PlaceAddress {
	argPlaces := make([]ir.PlaceAddress, len(args))
	for i, a := range args {
		argPlaces[i] = g.emitForm(a, fn)
	}
	a := g.freshLocal()
	g.emit(fn, ir.LoadData(g.prog.StaticData.Nil(), a))
	for i := len(argPlaces) - 1; i >= 0; i-- {
		g.emit(fn, ir.Cons(argPlaces[i], a, a))
	}
	return a
}

func (g *Generator) emitCall(f *form.Form, fn *ir.Function) ir.PlaceAddress {
	argList := g.buildArgList(f.Args, fn)
	r := g.freshLocal()
	id, ok := g.prog.Lookup(f.CallName)
	if !ok {
		g.sink.Report(functionNotFound(f.Frag, f.CallName))
		return g.zeroPlace()
	}
	g.emit(fn, ir.Call(id, argList, r))
	return r
}

// dispatch emits a direct Call when callee is a FunctionName, or
// evaluates callee into a Place and emits CallIndirect otherwise. Used
// identically by Apply and Funcall, both of which fully build their
// argument-list Place before this is called.
func (g *Generator) dispatch(callee *form.Form, argList ir.PlaceAddress, fn *ir.Function) ir.PlaceAddress {
	r := g.freshLocal()
	if callee.Kind == form.KindFunctionName {
		id, ok := g.prog.Lookup(callee.Ident)
		if !ok {
			g.sink.Report(functionNotFound(callee.Frag, callee.Ident))
			return g.zeroPlace()
		}
		g.emit(fn, ir.Call(id, argList, r))
		return r
	}
	calleePlace := g.emitForm(callee, fn)
	g.emit(fn, ir.CallIndirect(calleePlace, argList, r))
	return r
}

func (g *Generator) emitApply(f *form.Form, fn *ir.Function) ir.PlaceAddress {
	argList := g.emitForm(f.ArgList, fn)
	return g.dispatch(f.Callee, argList, fn)
}

func (g *Generator) emitFuncall(f *form.Form, fn *ir.Function) ir.PlaceAddress {
	argList := g.buildArgList(f.Args, fn)
	return g.dispatch(f.Callee, argList, fn)
}

func (g *Generator) emitLambda(f *form.Form, parentFn *ir.Function) ir.PlaceAddress {
	r := g.freshLocal()
	name := fmt.Sprintf("lambda:%s:%d", parentFn.Name, r.Offset)
	lambdaFn := g.prog.DeclareFunction(name, ir.AcceptsPersistentPlaces)

	g.scope.enter()
	for _, p := range f.Params {
		place := g.freshLocal()
		g.emit(lambdaFn, ir.ConsumeParam(place))
		g.scope.bind(p, place)
	}
	if f.Rest != "" {
		place := g.freshLocal()
		g.emit(lambdaFn, ir.ConsumeRest(place))
		g.scope.bind(f.Rest, place)
	}
	result := g.emitBody(f.Body, lambdaFn)
	g.emit(lambdaFn, ir.Return(result))
	g.scope.exit()

	tableIdx, _ := g.prog.Lookup(name)
	g.emit(parentFn, ir.CreateFunction(tableIdx, r))
	return r
}
