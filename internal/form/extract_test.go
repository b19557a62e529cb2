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
	"strings"
	"testing"

	"github.com/launix-de/proboscis/internal/ast"
	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/lexer"
	"github.com/launix-de/proboscis/internal/parser"
	"github.com/launix-de/proboscis/internal/srcset"
)

func parseOne(t *testing.T, text string) (*ast.Node, *diag.Sink) {
	t.Helper()
	set := srcset.NewSet()
	src, err := set.Add("test.pbs", text)
	if err != nil {
		t.Fatalf("add source: %v", err)
	}
	var out strings.Builder
	sink := diag.NewSink(&out)
	toks := lexer.Lex(src, sink)
	forms := parser.ParseAll(src, parser.Filter(toks), sink)
	if len(forms) != 1 {
		t.Fatalf("expected exactly one top-level AST node, got %d", len(forms))
	}
	return forms[0], sink
}

func TestExtractEveryKindExactlyOnce(t *testing.T) {
	cases := map[string]Kind{
		"x":                    KindName,
		"#'foo":                KindFunctionName,
		"42":                   KindConstant,
		"()":                   KindConstant,
		"'(1 2)":               KindConstant,
		"(if a b c)":           KindIf,
		"(and a b)":            KindAnd,
		"(or a b)":             KindOr,
		"(let ((x 1)) x)":      KindLet,
		"(lambda (x) x)":       KindLambda,
		"(apply f xs)":         KindApply,
		"(funcall f a b)":      KindFuncall,
		"(my-func a b)":        KindCall,
	}
	for src, want := range cases {
		n, sink := parseOne(t, src)
		if sink.ErrorCount() != 0 {
			t.Fatalf("%q: unexpected parse errors", src)
		}
		var errOut strings.Builder
		f := Extract(n, diag.NewSink(&errOut))
		if f == nil {
			t.Fatalf("%q: extraction failed: %s", src, errOut.String())
		}
		if f.Kind != want {
			t.Fatalf("%q: kind = %s, want %s", src, f.Kind, want)
		}
	}
}

func TestExtractFunctionNameStripsQuote(t *testing.T) {
	n, _ := parseOne(t, "#'add-2")
	var out strings.Builder
	f := Extract(n, diag.NewSink(&out))
	if f.Ident != "add-2" {
		t.Fatalf("ident = %q, want %q", f.Ident, "add-2")
	}
}

func TestExtractIfNoElse(t *testing.T) {
	n, _ := parseOne(t, "(if a b)")
	var out strings.Builder
	f := Extract(n, diag.NewSink(&out))
	if f == nil {
		t.Fatalf("extraction failed: %s", out.String())
	}
	if f.Else != nil {
		t.Fatalf("expected no else clause")
	}
}

func TestExtractIfMissingTest(t *testing.T) {
	n, _ := parseOne(t, "(if)")
	var out strings.Builder
	sink := diag.NewSink(&out)
	f := Extract(n, sink)
	if f != nil {
		t.Fatalf("expected extraction to fail")
	}
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestExtractLetMalformedBinding(t *testing.T) {
	n, _ := parseOne(t, "(let ((x)) x)")
	var out strings.Builder
	sink := diag.NewSink(&out)
	f := Extract(n, sink)
	if f != nil {
		t.Fatalf("expected extraction to fail")
	}
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestExtractLetBindingsNotList(t *testing.T) {
	n, _ := parseOne(t, "(let x x)")
	var out strings.Builder
	sink := diag.NewSink(&out)
	f := Extract(n, sink)
	if f != nil {
		t.Fatalf("expected extraction to fail")
	}
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestExtractLambdaRest(t *testing.T) {
	n, _ := parseOne(t, "(lambda (a &rest r) r)")
	var out strings.Builder
	f := Extract(n, diag.NewSink(&out))
	if f == nil {
		t.Fatalf("extraction failed: %s", out.String())
	}
	if len(f.Params) != 1 || f.Params[0] != "a" {
		t.Fatalf("params = %v, want [a]", f.Params)
	}
	if f.Rest != "r" {
		t.Fatalf("rest = %q, want %q", f.Rest, "r")
	}
}

func TestExtractApplyWrongArity(t *testing.T) {
	n, _ := parseOne(t, "(apply f)")
	var out strings.Builder
	sink := diag.NewSink(&out)
	f := Extract(n, sink)
	if f != nil {
		t.Fatalf("expected extraction to fail")
	}
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestExtractAndOrArity(t *testing.T) {
	n, _ := parseOne(t, "(and)")
	var out strings.Builder
	f := Extract(n, diag.NewSink(&out))
	if f == nil || len(f.Children) != 0 {
		t.Fatalf("expected zero-child And form")
	}
}
