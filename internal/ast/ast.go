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

// Package ast is the parser's output: a bare-bones, untyped syntax tree
// of atoms, lists, and quoted forms, before any special-form meaning is
// assigned to anything.
package ast

import (
	"github.com/launix-de/proboscis/internal/srcset"
	"github.com/launix-de/proboscis/internal/token"
)

type Kind int

const (
	KindAtom Kind = iota
	KindList
	KindQuoted
)

// Node is one parsed syntax node. Exactly one of Tok, Children, or Inner
// is meaningful, selected by Kind. Frag spans the node's full source
// text, including enclosing parentheses or the leading quote.
type Node struct {
	Kind     Kind
	Frag     srcset.Fragment
	Tok      token.Token // KindAtom: the Ident/FuncIdent/IntLit/FloatLit/StringLit token
	Children []*Node     // KindList: the parenthesized elements, in order
	Inner    *Node       // KindQuoted: the form following the quote
}

// IsNil reports whether n is the empty list (), the dialect's nil.
func (n *Node) IsNil() bool {
	return n.Kind == KindList && len(n.Children) == 0
}

func Atom(tok token.Token) *Node {
	return &Node{Kind: KindAtom, Frag: tok.Frag, Tok: tok}
}

func List(children []*Node, frag srcset.Fragment) *Node {
	return &Node{Kind: KindList, Frag: frag, Children: children}
}

func Quoted(inner *Node, frag srcset.Fragment) *Node {
	return &Node{Kind: KindQuoted, Frag: frag, Inner: inner}
}
