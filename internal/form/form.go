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

// Package form rewrites the parser's untyped AST into the closed Form
// algebra every later phase switches over. Form is one struct with a
// Kind discriminant rather than an interface hierarchy, so every site
// that must handle every kind is an exhaustive switch the compiler can
// help check, not an open set of implementations.
package form

import (
	"github.com/launix-de/proboscis/internal/ast"
	"github.com/launix-de/proboscis/internal/srcset"
)

type Kind int

const (
	KindName Kind = iota
	KindFunctionName
	KindConstant
	KindIf
	KindAnd
	KindOr
	KindLet
	KindLambda
	KindCall
	KindApply
	KindFuncall
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "Name"
	case KindFunctionName:
		return "FunctionName"
	case KindConstant:
		return "Constant"
	case KindIf:
		return "If"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindLet:
		return "Let"
	case KindLambda:
		return "Lambda"
	case KindCall:
		return "Call"
	case KindApply:
		return "Apply"
	case KindFuncall:
		return "Funcall"
	default:
		return "Unknown"
	}
}

// Binding is one (name, value-form) pair of a LetForm, evaluated under
// the enclosing scope per the Let's parallel semantics.
type Binding struct {
	Name  string
	Value *Form
}

// Form is every shape the post-parse algebra can take, discriminated by
// Kind. Only the fields relevant to Kind are meaningful; see the field
// comments below for which.
type Form struct {
	Kind Kind
	Frag srcset.Fragment

	// KindName, KindFunctionName: the bare identifier (no leading #').
	Ident string

	// KindConstant: the literal atom or quoted tree this constant was
	// extracted from. Evaluates to itself; never walked further.
	ConstNode *ast.Node

	// KindIf.
	Test *Form
	Then *Form
	Else *Form // nil when the if has no else clause

	// KindAnd, KindOr: operands in source order.
	// KindLet: body forms in source order.
	Children []*Form

	// KindLet.
	Bindings []Binding

	// KindLambda.
	Params []string
	Rest   string // "" when the lambda takes no &rest
	Body   []*Form

	// KindCall.
	CallName string
	Args     []*Form

	// KindApply, KindFuncall.
	Callee  *Form
	ArgList *Form // KindApply only
}

func name(frag srcset.Fragment, ident string) *Form {
	return &Form{Kind: KindName, Frag: frag, Ident: ident}
}

func functionName(frag srcset.Fragment, ident string) *Form {
	return &Form{Kind: KindFunctionName, Frag: frag, Ident: ident}
}

func constant(node *ast.Node) *Form {
	return &Form{Kind: KindConstant, Frag: node.Frag, ConstNode: node}
}
