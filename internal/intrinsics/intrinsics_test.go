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

package intrinsics

import (
	"testing"

	"github.com/launix-de/proboscis/internal/ir"
)

func TestEmitAllBindsBothSpellings(t *testing.T) {
	prog := ir.NewProgram()
	EmitAll(prog)
	for _, op := range Names {
		bare, ok := prog.Lookup(op)
		if !ok {
			t.Fatalf("bare name %q did not resolve", op)
		}
		qualified, ok := prog.Lookup(QualifiedName(op))
		if !ok {
			t.Fatalf("qualified name %q did not resolve", QualifiedName(op))
		}
		if bare != qualified {
			t.Fatalf("%q: bare and qualified resolve to different functions", op)
		}
	}
}

func TestEmitAllBodiesEndInReturn(t *testing.T) {
	prog := ir.NewProgram()
	EmitAll(prog)
	for _, fn := range prog.Functions {
		if len(fn.Instructions) == 0 {
			t.Fatalf("%s: empty body", fn.Name)
		}
		last := fn.Instructions[len(fn.Instructions)-1]
		if last.Op != ir.OpReturn {
			t.Fatalf("%s: last instruction is %v, want Return", fn.Name, last.Op)
		}
	}
}

func TestIsIntrinsicAcceptsBothSpellings(t *testing.T) {
	if !IsIntrinsic("add-2") || !IsIntrinsic("intrinsic:add-2") {
		t.Fatalf("expected both spellings of add-2 to be recognized")
	}
	if IsIntrinsic("not-an-intrinsic") {
		t.Fatalf("did not expect not-an-intrinsic to be recognized")
	}
}
