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

package lexer

import (
	"strings"
	"testing"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/srcset"
	"github.com/launix-de/proboscis/internal/token"
)

func lexString(t *testing.T, text string) ([]token.Token, *diag.Sink) {
	t.Helper()
	set := srcset.NewSet()
	src, err := set.Add("test.pbs", text)
	if err != nil {
		t.Fatalf("add source: %v", err)
	}
	var out strings.Builder
	sink := diag.NewSink(&out)
	return Lex(src, sink), sink
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexBasicForm(t *testing.T) {
	toks, sink := lexString(t, "(defun add-2 (a b) (+ a b))")
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	want := []token.Kind{
		token.LeftParen, token.Ident, token.Whitespace, token.Ident, token.Whitespace,
		token.LeftParen, token.Ident, token.Whitespace, token.Ident, token.RightParen,
		token.Whitespace, token.LeftParen, token.Ident, token.Whitespace, token.Ident,
		token.Whitespace, token.Ident, token.RightParen, token.RightParen,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexTokenTextRoundTrips(t *testing.T) {
	text := "(foo \"bar baz\" 42 3.5 -7 .25)"
	toks, sink := lexString(t, text)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	var rebuilt strings.Builder
	for _, tok := range toks {
		rebuilt.WriteString(tok.Text())
	}
	if rebuilt.String() != text {
		t.Fatalf("round trip = %q, want %q", rebuilt.String(), text)
	}
}

func TestLexNumberKinds(t *testing.T) {
	toks, sink := lexString(t, "42 -7 3.5 -2.25 .5")
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	var nums []token.Token
	for _, tok := range toks {
		if tok.Kind == token.IntLit || tok.Kind == token.FloatLit {
			nums = append(nums, tok)
		}
	}
	wantKind := []token.Kind{token.IntLit, token.IntLit, token.FloatLit, token.FloatLit, token.FloatLit}
	wantText := []string{"42", "-7", "3.5", "-2.25", ".5"}
	if len(nums) != len(wantKind) {
		t.Fatalf("numeric token count = %d, want %d", len(nums), len(wantKind))
	}
	for i := range wantKind {
		if nums[i].Kind != wantKind[i] || nums[i].Text() != wantText[i] {
			t.Fatalf("number %d = %s %q, want %s %q", i, nums[i].Kind, nums[i].Text(), wantKind[i], wantText[i])
		}
	}
}

func TestLexFuncIdent(t *testing.T) {
	toks, sink := lexString(t, "(funcall #'add-2 1 2)")
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	found := false
	for _, tok := range toks {
		if tok.Kind == token.FuncIdent {
			found = true
			if tok.Text() != "#'add-2" {
				t.Fatalf("FuncIdent text = %q, want %q", tok.Text(), "#'add-2")
			}
		}
	}
	if !found {
		t.Fatalf("no FuncIdent token found")
	}
}

func TestLexEmptyFuncName(t *testing.T) {
	_, sink := lexString(t, "(#' 1)")
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, sink := lexString(t, `(princ "hello`)
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, sink := lexString(t, `"a\"b\nc"`)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	if len(toks) != 1 || toks[0].Kind != token.StringLit {
		t.Fatalf("expected a single StringLit token, got %v", kinds(toks))
	}
	got := Unescape(toks[0].Text())
	want := "a\"b\nc"
	if got != want {
		t.Fatalf("unescape = %q, want %q", got, want)
	}
}

func TestLexComment(t *testing.T) {
	toks, sink := lexString(t, "(foo) ; a trailing comment\n(bar)")
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	sawComment := false
	for _, tok := range toks {
		if tok.Kind == token.Comment {
			sawComment = true
			if strings.Contains(tok.Text(), "\n") {
				t.Fatalf("comment text must not include the terminating newline: %q", tok.Text())
			}
		}
	}
	if !sawComment {
		t.Fatalf("no comment token found")
	}
}

func TestLexUnrecognizedCharStopsFile(t *testing.T) {
	toks, sink := lexString(t, "(foo @ bar)")
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
	for _, tok := range toks {
		if strings.Contains(tok.Text(), "bar") {
			t.Fatalf("lexer should not have produced tokens past the bad character: %v", kinds(toks))
		}
	}
}

func TestLexIdentPunctuation(t *testing.T) {
	toks, sink := lexString(t, "(<= a b) (/= c d)")
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	var idents []string
	for _, tok := range toks {
		if tok.Kind == token.Ident {
			idents = append(idents, tok.Text())
		}
	}
	wantFirst := "<="
	if len(idents) == 0 || idents[0] != wantFirst {
		t.Fatalf("idents = %v, want first %q", idents, wantFirst)
	}
}
