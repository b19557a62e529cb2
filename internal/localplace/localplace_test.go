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

package localplace

import (
	"strings"
	"testing"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/ir"
	"github.com/launix-de/proboscis/internal/irgen"
	"github.com/launix-de/proboscis/internal/lexer"
	"github.com/launix-de/proboscis/internal/parser"
	"github.com/launix-de/proboscis/internal/sema"
	"github.com/launix-de/proboscis/internal/srcset"
)

func generate(t *testing.T, text string) *ir.Program {
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
	prog := irgen.NewGenerator(sink).Generate([]*sema.Unit{unit})
	if sink.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %s", out.String())
	}
	return prog
}

func TestAnalyzeFunctionWithoutLambdaIsStack(t *testing.T) {
	prog := generate(t, `(defun f (a b) (intrinsic:add-2 a b))`)
	id, _ := prog.Lookup("f")
	fn := prog.FunctionAt(id)
	Analyze(prog)
	if fn.Frame != ir.Stack {
		t.Fatalf("expected Stack strategy, got %v", fn.Frame)
	}
	if fn.FrameSize <= 0 {
		t.Fatalf("expected a positive frame size, got %d", fn.FrameSize)
	}
}

func TestAnalyzeFunctionWithLambdaAbsorbsNestedOffsets(t *testing.T) {
	prog := generate(t, `(defun adder (n) (lambda (x) (intrinsic:add-2 x n)))`)
	id, _ := prog.Lookup("adder")
	adder := prog.FunctionAt(id)
	Analyze(prog)
	if adder.Frame != ir.Heap {
		t.Fatalf("expected Heap strategy, got %v", adder.Frame)
	}

	var lambdaID ir.FuncID
	for _, instr := range adder.Instructions {
		if instr.Op == ir.OpCreateFunction {
			lambdaID = instr.TableIndex
		}
	}
	lambda := prog.FunctionAt(lambdaID)
	if adder.FrameSize < lambda.FrameSize {
		t.Fatalf("parent frame size %d should cover the lambda's own offsets (>= %d)", adder.FrameSize, lambda.FrameSize)
	}
}

func TestAnalyzeEmptyFunctionReportsZero(t *testing.T) {
	prog := ir.NewProgram()
	fn := prog.DeclareFunction("empty", ir.Exported)
	Analyze(prog)
	if fn.FrameSize != 0 {
		t.Fatalf("expected a zero frame size for an empty function, got %d", fn.FrameSize)
	}
}
