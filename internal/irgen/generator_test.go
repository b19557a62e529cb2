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
	"strings"
	"testing"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/intrinsics"
	"github.com/launix-de/proboscis/internal/ir"
	"github.com/launix-de/proboscis/internal/lexer"
	"github.com/launix-de/proboscis/internal/parser"
	"github.com/launix-de/proboscis/internal/sema"
	"github.com/launix-de/proboscis/internal/srcset"
)

func generateString(t *testing.T, text string) (*ir.Program, *diag.Sink) {
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
	unit := sema.Classify(src, roots, sink)
	prog := NewGenerator(sink).Generate([]*sema.Unit{unit})
	return prog, sink
}

func TestGenerateSynthesizesMain(t *testing.T) {
	prog, sink := generateString(t, `(princ "hi")`)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	id, ok := prog.Lookup("main")
	if !ok {
		t.Fatalf("expected a synthesized main function")
	}
	main := prog.FunctionAt(id)
	if len(main.Instructions) == 0 {
		t.Fatalf("expected main to have a non-empty body")
	}
	last := main.Instructions[len(main.Instructions)-1]
	if last.Op != ir.OpReturn {
		t.Fatalf("expected main to end in Return, got %v", last.Op)
	}
}

func TestGenerateRejectsMainAsFunctionName(t *testing.T) {
	_, sink := generateString(t, `(defun main (x) x)`)
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestGenerateRejectsNonConstantGlobal(t *testing.T) {
	_, sink := generateString(t, `(defparameter *x* (intrinsic:add-2 1 2))`)
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestGenerateFunctionCallsIntrinsic(t *testing.T) {
	prog, sink := generateString(t, `(defun double (x) (intrinsic:mul-2 x 2))`)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	id, ok := prog.Lookup("double")
	if !ok {
		t.Fatalf("expected double to be declared")
	}
	fn := prog.FunctionAt(id)
	var sawCall bool
	for _, instr := range fn.Instructions {
		if instr.Op == ir.OpCall {
			sawCall = true
		}
	}
	if !sawCall {
		t.Fatalf("expected double's body to contain a Call instruction")
	}
}

func TestGenerateLambdaCreatesSeparateFunctionAndMarksParentPersistent(t *testing.T) {
	prog, sink := generateString(t, `(defun adder (n) (lambda (x) (intrinsic:add-2 x n)))`)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	id, ok := prog.Lookup("adder")
	if !ok {
		t.Fatalf("expected adder to be declared")
	}
	adder := prog.FunctionAt(id)
	if !adder.Attrs.Has(ir.CreatesPersistentPlaces) {
		t.Fatalf("expected adder to be marked CreatesPersistentPlaces")
	}

	var sawCreateFunction bool
	var lambdaTable ir.FuncID
	for _, instr := range adder.Instructions {
		if instr.Op == ir.OpCreateFunction {
			sawCreateFunction = true
			lambdaTable = instr.TableIndex
		}
	}
	if !sawCreateFunction {
		t.Fatalf("expected adder's body to contain a CreateFunction instruction")
	}
	lambdaFn := prog.FunctionAt(lambdaTable)
	if !lambdaFn.Attrs.Has(ir.AcceptsPersistentPlaces) {
		t.Fatalf("expected the lambda's own function to be AcceptsPersistentPlaces")
	}
	if len(prog.Functions) < len(intrinsics.Names)+3 {
		t.Fatalf("expected at least 3 functions (intrinsics aside): adder, its lambda, and main")
	}
}

func TestGenerateNoLocalOffsetIsReusedWithinAFunction(t *testing.T) {
	prog, sink := generateString(t, `(defun f (a b) (if a (intrinsic:add-2 a b) (intrinsic:sub-2 a b)))`)
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	id, _ := prog.Lookup("f")
	fn := prog.FunctionAt(id)

	seen := map[int32]bool{}
	var dests []int32
	collect := func(p ir.PlaceAddress) {
		if p.Mode != ir.Local {
			return
		}
		dests = append(dests, p.Offset)
	}
	for _, instr := range fn.Instructions {
		switch instr.Op {
		case ir.OpConsumeParam, ir.OpLoadData:
			collect(instr.To)
		}
	}
	for _, off := range dests {
		if seen[off] {
			t.Fatalf("local offset %d reused as a distinct binding destination", off)
		}
		seen[off] = true
	}
}

func TestGenerateGlobalBindsAGlobalPlace(t *testing.T) {
	set := srcset.NewSet()
	src, err := set.Add("test.pbs", `(defparameter *answer* 42)`)
	if err != nil {
		t.Fatalf("add source: %v", err)
	}
	var out strings.Builder
	sink := diag.NewSink(&out)
	toks := lexer.Lex(src, sink)
	roots := parser.ParseAll(src, parser.Filter(toks), sink)
	unit := sema.Classify(src, roots, sink)

	g := NewGenerator(sink)
	g.Generate([]*sema.Unit{unit})
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", sink.ErrorCount())
	}
	place, ok := g.scope.lookup("*answer*")
	if !ok {
		t.Fatalf("expected *answer* to be bound in scope")
	}
	if place.Mode != ir.Global {
		t.Fatalf("expected *answer* to resolve to a Global place, got %v", place.Mode)
	}
}
