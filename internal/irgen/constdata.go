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

package irgen

import (
	"strconv"

	"github.com/launix-de/proboscis/internal/ast"
	"github.com/launix-de/proboscis/internal/ir"
	"github.com/launix-de/proboscis/internal/lexer"
	"github.com/launix-de/proboscis/internal/token"
)

// internConstant interns the value a Constant form's AST node denotes
// into the static data pool, building cons chains for lists and
// recursing into quoted trees. The payload is never evaluated; it is
// erased into static data verbatim.
func (g *Generator) internConstant(node *ast.Node) (ir.DataAddress, error) {
	switch node.Kind {
	case ast.KindAtom:
		return g.internAtom(node)
	case ast.KindQuoted:
		// A quote nested inside a quoted tree, e.g. '(a 'b c), denotes
		// the two-element list (quote <inner>).
		inner, err := g.internConstant(node.Inner)
		if err != nil {
			return 0, err
		}
		quoteSym := g.prog.StaticData.InternIdentifier("quote")
		tail := g.prog.StaticData.InternCons(inner, g.prog.StaticData.Nil())
		return g.prog.StaticData.InternCons(quoteSym, tail), nil
	case ast.KindList:
		return g.internList(node.Children)
	default:
		return 0, notInScope(node.Frag, "<malformed constant>")
	}
}

func (g *Generator) internList(nodes []*ast.Node) (ir.DataAddress, error) {
	if len(nodes) == 0 {
		return g.prog.StaticData.Nil(), nil
	}
	car, err := g.internConstant(nodes[0])
	if err != nil {
		return 0, err
	}
	cdr, err := g.internList(nodes[1:])
	if err != nil {
		return 0, err
	}
	return g.prog.StaticData.InternCons(car, cdr), nil
}

func (g *Generator) internAtom(node *ast.Node) (ir.DataAddress, error) {
	switch node.Tok.Kind {
	case token.IntLit:
		v, err := strconv.ParseInt(node.Tok.Text(), 10, 32)
		if err != nil {
			return 0, numberParseError(node.Frag, node.Tok.Text())
		}
		return g.prog.StaticData.InternSInt32(int32(v)), nil
	case token.FloatLit:
		return 0, numberParseError(node.Frag, node.Tok.Text())
	case token.StringLit:
		return g.prog.StaticData.InternString(lexer.Unescape(node.Tok.Text())), nil
	case token.Ident:
		return g.prog.StaticData.InternIdentifier(node.Tok.Text()), nil
	default:
		return 0, numberParseError(node.Frag, node.Tok.Text())
	}
}
