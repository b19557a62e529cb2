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

package form

import (
	"github.com/launix-de/proboscis/internal/ast"
	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/token"
)

var reservedHeads = map[string]bool{
	"if": true, "and": true, "or": true, "let": true,
	"apply": true, "funcall": true, "lambda": true,
}

// Extract rewrites one AST node into a Form, reporting shape errors to
// sink and returning nil when the node cannot be extracted at all.
func Extract(n *ast.Node, sink *diag.Sink) *Form {
	switch n.Kind {
	case ast.KindQuoted:
		return &Form{Kind: KindConstant, Frag: n.Frag, ConstNode: n.Inner}

	case ast.KindAtom:
		switch n.Tok.Kind {
		case token.Ident:
			return name(n.Frag, n.Tok.Text())
		case token.FuncIdent:
			return functionName(n.Frag, n.Tok.Text()[2:])
		case token.IntLit, token.FloatLit, token.StringLit:
			return constant(n)
		default:
			sink.Report(shapeErrorf(n.Frag, "unexpected token in form position"))
			return nil
		}

	case ast.KindList:
		if n.IsNil() {
			return constant(n)
		}
		head := n.Children[0]
		if head.Kind == ast.KindAtom && head.Tok.Kind == token.Ident && reservedHeads[head.Tok.Text()] {
			return extractSpecial(head.Tok.Text(), n, sink)
		}
		return extractCall(n, sink)

	default:
		sink.Report(shapeErrorf(n.Frag, "unrecognized AST node"))
		return nil
	}
}

// ExtractAll extracts every node in ns, skipping (and reporting) nodes
// that fail to extract rather than aborting the whole batch.
func ExtractAll(ns []*ast.Node, sink *diag.Sink) []*Form {
	var out []*Form
	for _, n := range ns {
		if f := Extract(n, sink); f != nil {
			out = append(out, f)
		}
	}
	return out
}

func extractCall(n *ast.Node, sink *diag.Sink) *Form {
	head := n.Children[0]
	if head.Kind != ast.KindAtom || head.Tok.Kind != token.Ident {
		sink.Report(shapeErrorf(head.Frag, "call head must be an identifier"))
		return nil
	}
	args := ExtractAll(n.Children[1:], sink)
	if len(args) != len(n.Children)-1 {
		return nil
	}
	return &Form{Kind: KindCall, Frag: n.Frag, CallName: head.Tok.Text(), Args: args}
}

func extractSpecial(head string, n *ast.Node, sink *diag.Sink) *Form {
	switch head {
	case "if":
		return extractIf(n, sink)
	case "and":
		return extractAndOr(KindAnd, n, sink)
	case "or":
		return extractAndOr(KindOr, n, sink)
	case "let":
		return extractLet(n, sink)
	case "apply":
		return extractApply(n, sink)
	case "funcall":
		return extractFuncall(n, sink)
	case "lambda":
		return extractLambda(n, sink)
	default:
		panic("form: unreachable reserved head " + head)
	}
}

func extractIf(n *ast.Node, sink *diag.Sink) *Form {
	rest := n.Children[1:]
	if len(rest) < 2 || len(rest) > 3 {
		sink.Report(shapeErrorf(n.Frag, "if requires a test and a then-branch, with an optional else-branch"))
		return nil
	}
	test := Extract(rest[0], sink)
	then := Extract(rest[1], sink)
	if test == nil || then == nil {
		return nil
	}
	var elseForm *Form
	if len(rest) == 3 {
		elseForm = Extract(rest[2], sink)
		if elseForm == nil {
			return nil
		}
	}
	return &Form{Kind: KindIf, Frag: n.Frag, Test: test, Then: then, Else: elseForm}
}

func extractAndOr(kind Kind, n *ast.Node, sink *diag.Sink) *Form {
	children := ExtractAll(n.Children[1:], sink)
	if len(children) != len(n.Children)-1 {
		return nil
	}
	return &Form{Kind: kind, Frag: n.Frag, Children: children}
}

func extractLet(n *ast.Node, sink *diag.Sink) *Form {
	rest := n.Children[1:]
	if len(rest) < 1 {
		sink.Report(shapeErrorf(n.Frag, "let requires a bindings list"))
		return nil
	}
	bindingsNode := rest[0]
	if bindingsNode.Kind != ast.KindList {
		sink.Report(shapeErrorf(bindingsNode.Frag, "let bindings must be a list"))
		return nil
	}
	bindings := make([]Binding, 0, len(bindingsNode.Children))
	ok := true
	for _, b := range bindingsNode.Children {
		if b.Kind != ast.KindList || len(b.Children) != 2 {
			sink.Report(shapeErrorf(b.Frag, "let binding must be (name value)"))
			ok = false
			continue
		}
		nameNode := b.Children[0]
		if nameNode.Kind != ast.KindAtom || nameNode.Tok.Kind != token.Ident {
			sink.Report(shapeErrorf(nameNode.Frag, "let binding name must be an identifier"))
			ok = false
			continue
		}
		value := Extract(b.Children[1], sink)
		if value == nil {
			ok = false
			continue
		}
		bindings = append(bindings, Binding{Name: nameNode.Tok.Text(), Value: value})
	}
	if !ok {
		return nil
	}
	body := ExtractAll(rest[1:], sink)
	if len(body) != len(rest)-1 {
		return nil
	}
	return &Form{Kind: KindLet, Frag: n.Frag, Bindings: bindings, Children: body}
}

func extractApply(n *ast.Node, sink *diag.Sink) *Form {
	rest := n.Children[1:]
	if len(rest) != 2 {
		sink.Report(shapeErrorf(n.Frag, "apply requires exactly a callee and an argument-list form"))
		return nil
	}
	callee := Extract(rest[0], sink)
	argList := Extract(rest[1], sink)
	if callee == nil || argList == nil {
		return nil
	}
	return &Form{Kind: KindApply, Frag: n.Frag, Callee: callee, ArgList: argList}
}

func extractFuncall(n *ast.Node, sink *diag.Sink) *Form {
	rest := n.Children[1:]
	if len(rest) < 1 {
		sink.Report(shapeErrorf(n.Frag, "funcall requires a callee"))
		return nil
	}
	callee := Extract(rest[0], sink)
	if callee == nil {
		return nil
	}
	args := ExtractAll(rest[1:], sink)
	if len(args) != len(rest)-1 {
		return nil
	}
	return &Form{Kind: KindFuncall, Frag: n.Frag, Callee: callee, Args: args}
}

func extractLambda(n *ast.Node, sink *diag.Sink) *Form {
	rest := n.Children[1:]
	if len(rest) < 1 {
		sink.Report(shapeErrorf(n.Frag, "lambda requires a parameter list"))
		return nil
	}
	paramsNode := rest[0]
	if paramsNode.Kind != ast.KindList {
		sink.Report(shapeErrorf(paramsNode.Frag, "lambda parameter list must be a list"))
		return nil
	}
	params, restName, ok := extractParamList(paramsNode, sink)
	if !ok {
		return nil
	}
	body := ExtractAll(rest[1:], sink)
	if len(body) != len(rest)-1 {
		return nil
	}
	return &Form{Kind: KindLambda, Frag: n.Frag, Params: params, Rest: restName, Body: body}
}

// extractParamList parses a parameter list shared by lambda and defun:
// a sequence of identifiers optionally ending with "&rest name".
func extractParamList(paramsNode *ast.Node, sink *diag.Sink) (params []string, rest string, ok bool) {
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
