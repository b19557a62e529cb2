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

package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/launix-de/proboscis/internal/ast"
)

// dumpAST renders one file's top-level roots as an indented tree, purely
// for inspection — there is no parser for this format.
func dumpAST(w io.Writer, roots []*ast.Node) {
	for _, r := range roots {
		dumpNode(w, r, 0)
	}
}

func dumpNode(w io.Writer, n *ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case ast.KindAtom:
		fmt.Fprintf(w, "%sAtom(%s) %q\n", indent, n.Tok.Kind, n.Tok.Text())
	case ast.KindQuoted:
		fmt.Fprintf(w, "%sQuoted\n", indent)
		dumpNode(w, n.Inner, depth+1)
	case ast.KindList:
		fmt.Fprintf(w, "%sList\n", indent)
		for _, c := range n.Children {
			dumpNode(w, c, depth+1)
		}
	}
}
