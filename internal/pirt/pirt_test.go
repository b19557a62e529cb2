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

package pirt

import (
	"strings"
	"testing"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/irgen"
	"github.com/launix-de/proboscis/internal/lexer"
	"github.com/launix-de/proboscis/internal/parser"
	"github.com/launix-de/proboscis/internal/sema"
	"github.com/launix-de/proboscis/internal/srcset"
)

func TestFormatIncludesEveryFunctionName(t *testing.T) {
	set := srcset.NewSet()
	src, err := set.Add("test.pbs", `(defun sq (x) (intrinsic:mul-2 x x))`)
	if err != nil {
		t.Fatalf("add source: %v", err)
	}
	var out strings.Builder
	sink := diag.NewSink(&out)
	toks := lexer.Lex(src, sink)
	roots := parser.ParseAll(src, parser.Filter(toks), sink)
	unit := sema.Classify(src, roots, sink)
	prog := irgen.NewGenerator(sink).Generate([]*sema.Unit{unit})
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %s", out.String())
	}

	text := Format(prog)
	if !strings.Contains(text, "sq {") {
		t.Fatalf("expected dump to contain sq's header, got:\n%s", text)
	}
	if !strings.Contains(text, "main {") {
		t.Fatalf("expected dump to contain main's header, got:\n%s", text)
	}
	if strings.Count(text, "{") != strings.Count(text, "}") {
		t.Fatalf("unbalanced block braces in dump:\n%s", text)
	}
}
