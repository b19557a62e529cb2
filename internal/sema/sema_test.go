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

package sema

import (
	"strings"
	"testing"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/lexer"
	"github.com/launix-de/proboscis/internal/parser"
	"github.com/launix-de/proboscis/internal/srcset"
)

func classifyString(t *testing.T, text string) (*Unit, *diag.Sink) {
	t.Helper()
	set := srcset.NewSet()
	src, err := set.Add("test.pbs", text)
	if err != nil {
		t.Fatalf("add source: %v", err)
	}
	var out strings.Builder
	sink := diag.NewSink(&out)
	toks := lexer.Lex(src, sink)
	roots := parser.ParseAll(src, parser.Filter(toks), sink)
	return Classify(src, roots, sink), sink
}

func TestClassifyFunctionDefinition(t *testing.T) {
	u, sink := classifyString(t, `(defun add-2 (a b) (intrinsic:add-2 a b))`)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	if len(u.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(u.Functions))
	}
	fn := u.Functions[0]
	if fn.Name != "add-2" || len(fn.Params) != 2 || fn.Params[0] != "a" || fn.Params[1] != "b" {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
}

func TestClassifyFunctionWithDocString(t *testing.T) {
	u, sink := classifyString(t, `(defun f (x) "doubles x" (intrinsic:mul-2 x 2))`)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	fn := u.Functions[0]
	if fn.DocString == "" {
		t.Fatalf("expected a doc string to be captured")
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected doc string excluded from body, got %d body forms", len(fn.Body))
	}
}

func TestClassifyFunctionRest(t *testing.T) {
	u, sink := classifyString(t, `(defun f (&rest r) r)`)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	fn := u.Functions[0]
	if fn.Rest != "r" || len(fn.Params) != 0 {
		t.Fatalf("unexpected rest shape: %+v", fn)
	}
}

func TestClassifyGlobalDefinition(t *testing.T) {
	u, sink := classifyString(t, `(defparameter *xs* '(1 2 3))`)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	if len(u.Globals) != 1 || u.Globals[0].Name != "*xs*" {
		t.Fatalf("unexpected globals: %+v", u.Globals)
	}
}

func TestClassifyRootCode(t *testing.T) {
	u, sink := classifyString(t, `(princ "hi")`)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	if len(u.Root) != 1 {
		t.Fatalf("expected 1 root code entry, got %d", len(u.Root))
	}
}

func TestClassifyContinuesPastDefunError(t *testing.T) {
	u, sink := classifyString(t, `(defun) (princ "after")`)
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
	if len(u.Root) != 1 {
		t.Fatalf("expected classification to continue past the bad defun, got %d root entries", len(u.Root))
	}
}

func TestClassifyRestArityZeroIsRejected(t *testing.T) {
	u, sink := classifyString(t, `(defun f (&rest) 1)`)
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
	if len(u.Functions) != 0 {
		t.Fatalf("expected no function to be classified")
	}
}

func TestClassifyRestArityTwoIsRejected(t *testing.T) {
	u, sink := classifyString(t, `(defun f (&rest a b) 1)`)
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
	if len(u.Functions) != 0 {
		t.Fatalf("expected no function to be classified")
	}
}
