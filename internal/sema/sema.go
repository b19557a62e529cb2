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

// Package sema classifies each top-level AST root produced by the parser
// into a function definition, a global definition, or plain root code,
// and parses the defun/defparameter shapes that only make sense at the
// top level.
package sema

import (
	"github.com/launix-de/proboscis/internal/ast"
	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/form"
	"github.com/launix-de/proboscis/internal/srcset"
	"github.com/launix-de/proboscis/internal/token"
)

// FunctionDefinition is a (defun name (params…) doc-string? body…) root.
type FunctionDefinition struct {
	Source     *srcset.Source
	Frag       srcset.Fragment
	Name       string
	Params     []string
	Rest       string // "" when the function takes no &rest
	DocString  string // "" when absent
	Body       []*form.Form
}

// GlobalDefinition is a (defparameter name value) root. Value is
// extracted as a Form but is not required to be a Constant until IR
// generation checks it (per GlobalMustHaveConstantInitializer).
type GlobalDefinition struct {
	Source *srcset.Source
	Frag   srcset.Fragment
	Name   string
	Value  *form.Form
}

// RootCode is every other top-level root, extracted as ordinary Forms
// and run in source order by the synthesized main function.
type RootCode struct {
	Source *srcset.Source
	Frag   srcset.Fragment
	Body   []*form.Form
}

// Unit is the classification of one source file's top-level roots.
type Unit struct {
	Source    *srcset.Source
	Functions []*FunctionDefinition
	Globals   []*GlobalDefinition
	Root      []*RootCode
}

// Classify walks roots in source order, attempting defun, then
// defparameter, then falling back to root code. A shape error at the
// defun/defparameter step is reported and that root is skipped; nothing
// else is affected.
func Classify(src *srcset.Source, roots []*ast.Node, sink *diag.Sink) *Unit {
	u := &Unit{Source: src}
	for _, root := range roots {
		if headIs(root, "defun") {
			if fn := classifyDefun(src, root, sink); fn != nil {
				u.Functions = append(u.Functions, fn)
			}
			continue
		}
		if headIs(root, "defparameter") {
			if g := classifyDefparameter(src, root, sink); g != nil {
				u.Globals = append(u.Globals, g)
			}
			continue
		}
		f := form.Extract(root, sink)
		if f == nil {
			continue
		}
		u.Root = append(u.Root, &RootCode{Source: src, Frag: root.Frag, Body: []*form.Form{f}})
	}
	return u
}

func headIs(n *ast.Node, name string) bool {
	if n.Kind != ast.KindList || n.IsNil() {
		return false
	}
	head := n.Children[0]
	return head.Kind == ast.KindAtom && head.Tok.Kind == token.Ident && head.Tok.Text() == name
}

func classifyDefun(src *srcset.Source, n *ast.Node, sink *diag.Sink) *FunctionDefinition {
	rest := n.Children[1:]
	if len(rest) < 2 {
		sink.Report(shapeErrorf(n.Frag, "defun requires a name and a parameter list"))
		return nil
	}
	nameNode := rest[0]
	if nameNode.Kind != ast.KindAtom || nameNode.Tok.Kind != token.Ident {
		sink.Report(shapeErrorf(nameNode.Frag, "defun name must be an identifier"))
		return nil
	}
	paramsNode := rest[1]
	if paramsNode.Kind != ast.KindList {
		sink.Report(shapeErrorf(paramsNode.Frag, "defun parameter list must be a list"))
		return nil
	}
	params, restName, ok := parseParamList(paramsNode, sink)
	if !ok {
		return nil
	}
	bodyNodes := rest[2:]
	doc := ""
	if len(bodyNodes) > 0 && bodyNodes[0].Kind == ast.KindAtom && bodyNodes[0].Tok.Kind == token.StringLit && len(bodyNodes) > 1 {
		doc = bodyNodes[0].Tok.Text()
		bodyNodes = bodyNodes[1:]
	}
	body := form.ExtractAll(bodyNodes, sink)
	if len(body) != len(bodyNodes) {
		return nil
	}
	return &FunctionDefinition{
		Source: src, Frag: n.Frag, Name: nameNode.Tok.Text(),
		Params: params, Rest: restName, DocString: doc, Body: body,
	}
}

func classifyDefparameter(src *srcset.Source, n *ast.Node, sink *diag.Sink) *GlobalDefinition {
	rest := n.Children[1:]
	if len(rest) != 2 {
		sink.Report(shapeErrorf(n.Frag, "defparameter requires exactly a name and a value"))
		return nil
	}
	nameNode := rest[0]
	if nameNode.Kind != ast.KindAtom || nameNode.Tok.Kind != token.Ident {
		sink.Report(shapeErrorf(nameNode.Frag, "defparameter name must be an identifier"))
		return nil
	}
	value := form.Extract(rest[1], sink)
	if value == nil {
		return nil
	}
	return &GlobalDefinition{Source: src, Frag: n.Frag, Name: nameNode.Tok.Text(), Value: value}
}

// parseParamList mirrors form's lambda parameter parsing: identifiers,
// optionally ending with "&rest name".
func parseParamList(paramsNode *ast.Node, sink *diag.Sink) (params []string, rest string, ok bool) {
	children := paramsNode.Children
	for i := 0; i < len(children); i++ {
		c := children[i]
		if c.Kind != ast.KindAtom || c.Tok.Kind != token.Ident {
			sink.Report(shapeErrorf(c.Frag, "parameter must be an identifier"))
			return nil, "", false
		}
		if c.Tok.Text() == "&rest" {
			remaining := children[i+1:]
			if len(remaining) != 1 {
				sink.Report(shapeErrorf(paramsNode.Frag, "&rest must be followed by exactly one name"))
				return nil, "", false
			}
			restNode := remaining[0]
			if restNode.Kind != ast.KindAtom || restNode.Tok.Kind != token.Ident {
				sink.Report(shapeErrorf(restNode.Frag, "&rest name must be an identifier"))
				return nil, "", false
			}
			return params, restNode.Tok.Text(), true
		}
		params = append(params, c.Tok.Text())
	}
	return params, "", true
}
