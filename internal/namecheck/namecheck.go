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

// Package namecheck is the optional gate that resolves every Name
// against its lexical scope and every Call head against the union of
// user-defined functions and the built-in intrinsics, before IR
// generation ever runs. Skipping it is not fatal: IR generation performs
// the same resolution and fails in the same way, just later and without
// this package's friendlier batch-of-errors presentation.
package namecheck

import (
	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/form"
	"github.com/launix-de/proboscis/internal/intrinsics"
	"github.com/launix-de/proboscis/internal/sema"
)

// scope is a flat, shadowing-aware stack of names, mirroring the IR
// generator's own scope stack so the two phases agree on resolution.
type scope struct {
	names []string
	marks []int
}

func (s *scope) enter() { s.marks = append(s.marks, len(s.names)) }

func (s *scope) exit() {
	mark := s.marks[len(s.marks)-1]
	s.marks = s.marks[:len(s.marks)-1]
	s.names = s.names[:mark]
}

func (s *scope) bind(name string) { s.names = append(s.names, name) }

func (s *scope) resolves(name string) bool {
	for i := len(s.names) - 1; i >= 0; i-- {
		if s.names[i] == name {
			return true
		}
	}
	return false
}

// Checker walks every function body, global value, and root-code form
// in a set of classified Units, reporting every Name or Call head that
// fails to resolve.
type Checker struct {
	functionNames map[string]bool
	globalNames   []string
	sink          *diag.Sink
}

// NewChecker builds a Checker aware of every user-defined function and
// global across units, plus the fixed intrinsic inventory under both its
// bare and its intrinsic:-prefixed names.
func NewChecker(units []*sema.Unit, sink *diag.Sink) *Checker {
	c := &Checker{functionNames: map[string]bool{}, sink: sink}
	for _, u := range units {
		for _, fn := range u.Functions {
			c.functionNames[fn.Name] = true
		}
		for _, g := range u.Globals {
			c.globalNames = append(c.globalNames, g.Name)
		}
	}
	for _, op := range intrinsics.Names {
		c.functionNames[op] = true
		c.functionNames[intrinsics.QualifiedName(op)] = true
	}
	return c
}

// globalScope returns a fresh scope with every global already bound, as
// the IR generator binds globals before emitting any body.
func (c *Checker) globalScope() *scope {
	s := &scope{}
	for _, name := range c.globalNames {
		s.bind(name)
	}
	return s
}

// Check walks one unit's functions, globals, and root code.
func (c *Checker) Check(u *sema.Unit) {
	for _, fn := range u.Functions {
		s := c.globalScope()
		s.enter()
		for _, p := range fn.Params {
			s.bind(p)
		}
		if fn.Rest != "" {
			s.bind(fn.Rest)
		}
		for _, b := range fn.Body {
			c.checkForm(b, s)
		}
		s.exit()
	}
	for _, g := range u.Globals {
		c.checkForm(g.Value, c.globalScope())
	}
	for _, r := range u.Root {
		for _, b := range r.Body {
			c.checkForm(b, c.globalScope())
		}
	}
}

func (c *Checker) checkForm(f *form.Form, s *scope) {
	if f == nil {
		return
	}
	switch f.Kind {
	case form.KindName:
		if !s.resolves(f.Ident) {
			c.sink.Report(&UndefinedVariableName{Frag: f.Frag, Name: f.Ident})
		}
	case form.KindFunctionName:
		if reservedHeads[f.Ident] {
			c.sink.Report(&MalformedFunctionName{Frag: f.Frag, Name: f.Ident})
		} else if !c.functionNames[f.Ident] {
			c.sink.Report(&UndefinedFunctionName{Frag: f.Frag, Name: f.Ident})
		}
	case form.KindConstant:
		// nothing to resolve

	case form.KindIf:
		c.checkForm(f.Test, s)
		c.checkForm(f.Then, s)
		c.checkForm(f.Else, s)

	case form.KindAnd, form.KindOr:
		for _, child := range f.Children {
			c.checkForm(child, s)
		}

	case form.KindLet:
		for _, b := range f.Bindings {
			c.checkForm(b.Value, s)
		}
		s.enter()
		for _, b := range f.Bindings {
			s.bind(b.Name)
		}
		for _, child := range f.Children {
			c.checkForm(child, s)
		}
		s.exit()

	case form.KindLambda:
		s.enter()
		for _, p := range f.Params {
			s.bind(p)
		}
		if f.Rest != "" {
			s.bind(f.Rest)
		}
		for _, b := range f.Body {
			c.checkForm(b, s)
		}
		s.exit()

	case form.KindCall:
		if !c.functionNames[f.CallName] {
			c.sink.Report(&UndefinedFunctionName{Frag: f.Frag, Name: f.CallName})
		}
		for _, a := range f.Args {
			c.checkForm(a, s)
		}

	case form.KindApply:
		c.checkCallee(f.Callee, s)
		c.checkForm(f.ArgList, s)

	case form.KindFuncall:
		c.checkCallee(f.Callee, s)
		for _, a := range f.Args {
			c.checkForm(a, s)
		}
	}
}

// checkCallee handles an Apply/Funcall callee: a FunctionName resolves as
// a function reference, anything else (including a plain Name bound to a
// Function value at runtime) resolves as an ordinary value expression.
func (c *Checker) checkCallee(callee *form.Form, s *scope) {
	c.checkForm(callee, s)
}

var reservedHeads = map[string]bool{
	"if": true, "and": true, "or": true, "let": true,
	"apply": true, "funcall": true, "lambda": true,
}
