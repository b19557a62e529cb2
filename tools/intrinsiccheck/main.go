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

// intrinsiccheck scans internal/intrinsics for its registration table
// and fails if the registered operation set drifts from the fixed
// inventory the Intrinsic Emitter must produce.
//
// Usage:
//
//	go run ./tools/intrinsiccheck ./internal/intrinsics
package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"sort"

	"golang.org/x/tools/go/packages"
)

// wantedInventory is the fixed set of intrinsic operation names every
// build must register, regardless of how intrinsics.go assembles them.
var wantedInventory = []string{
	"princ", "type-tag-of", "concat-string-like-2", "cons", "car", "cdr",
	"add-2", "sub-2", "mul-2", "div-2",
	"=-2", "/=-2", "<-2", ">-2", "<=-2", ">=-2",
	"nil-if-0", "panic",
}

func main() {
	dir := "./internal/intrinsics"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	cfg := &packages.Config{
		Mode: packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "intrinsiccheck: load %s: %v\n", dir, err)
		os.Exit(1)
	}
	if len(pkgs) == 0 {
		fmt.Fprintf(os.Stderr, "intrinsiccheck: no package found at %s\n", dir)
		os.Exit(1)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		for _, e := range pkg.Errors {
			fmt.Fprintf(os.Stderr, "intrinsiccheck: %v\n", e)
		}
		os.Exit(1)
	}

	found := map[string]bool{}
	for _, f := range pkg.Syntax {
		for _, op := range collectRegisteredNames(f) {
			found[op] = true
		}
	}

	var missing, extra []string
	want := map[string]bool{}
	for _, op := range wantedInventory {
		want[op] = true
		if !found[op] {
			missing = append(missing, op)
		}
	}
	for op := range found {
		if !want[op] {
			extra = append(extra, op)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)

	if len(missing) == 0 && len(extra) == 0 {
		fmt.Printf("intrinsiccheck: %d intrinsics match the inventory\n", len(wantedInventory))
		return
	}
	for _, m := range missing {
		fmt.Fprintf(os.Stderr, "intrinsiccheck: missing intrinsic %q\n", m)
	}
	for _, e := range extra {
		fmt.Fprintf(os.Stderr, "intrinsiccheck: unexpected intrinsic %q\n", e)
	}
	os.Exit(1)
}

// collectRegisteredNames walks f's package-level composite literals
// looking for the {op-name-string, arity-int, ...} entries of the
// intrinsic spec table and returns the string literal in field 0 of
// each.
func collectRegisteredNames(f *ast.File) []string {
	var names []string
	ast.Inspect(f, func(n ast.Node) bool {
		cl, ok := n.(*ast.CompositeLit)
		if !ok || len(cl.Elts) == 0 {
			return true
		}
		lit, ok := cl.Elts[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}
		if len(cl.Elts) < 2 {
			return true
		}
		if _, ok := cl.Elts[1].(*ast.BasicLit); !ok {
			return true
		}
		names = append(names, mustUnquote(lit.Value))
		return true
	})
	return names
}

func mustUnquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
