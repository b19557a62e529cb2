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

// Package compiler wires every phase — lexer, parser, semantic
// classifier, name checker, IR generator, local-place analyzer, and the
// WAT/PIRT/AST output formats — into the batch pipeline the CLI drives.
// It owns no file I/O: callers supply already-read source text and a
// destination Writer.
package compiler

import (
	"fmt"
	"io"

	"github.com/launix-de/proboscis/internal/ast"
	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/ir"
	"github.com/launix-de/proboscis/internal/irgen"
	"github.com/launix-de/proboscis/internal/lexer"
	"github.com/launix-de/proboscis/internal/namecheck"
	"github.com/launix-de/proboscis/internal/parser"
	"github.com/launix-de/proboscis/internal/pirt"
	"github.com/launix-de/proboscis/internal/sema"
	"github.com/launix-de/proboscis/internal/srcset"
	"github.com/launix-de/proboscis/internal/watgen"
)

// Format selects the shape of Compile's output.
type Format string

const (
	FormatWAT  Format = "wat"
	FormatPIRT Format = "pirt"
	FormatAST  Format = "ast"
)

// Input is one already-loaded source file.
type Input struct {
	Name string
	Text string
}

// Options configures one Compile run.
type Options struct {
	Format      Format
	Out         io.Writer // receives the compiled output
	Diag        io.Writer // receives rendered diagnostics
	RuntimeBody string    // rt/rt.wat's text, spliced into WAT output
	ProgramOut  **ir.Program
}

// Compile runs the full pipeline over inputs and returns a non-nil error
// when the diagnostics sink reported an error, when writing the output
// fails, or when opts.Format is unknown — callers map that to exit code 1
// and must not trust Out's contents.
func Compile(inputs []Input, opts Options) error {
	sink := diag.NewSink(opts.Diag)
	set := srcset.NewSet()

	type file struct {
		src   *srcset.Source
		roots []*ast.Node
	}
	var files []file

	for _, in := range inputs {
		src, err := set.Add(in.Name, in.Text)
		if err != nil {
			sink.ReportIfErr(err)
			continue
		}
		toks := lexer.Lex(src, sink)
		roots := parser.ParseAll(src, parser.Filter(toks), sink)
		files = append(files, file{src: src, roots: roots})
	}

	if err := sink.EnsureNoErrors(); err != nil {
		return err
	}

	if opts.Format == FormatAST {
		for _, f := range files {
			dumpAST(opts.Out, f.roots)
		}
		return nil
	}

	var units []*sema.Unit
	for _, f := range files {
		units = append(units, sema.Classify(f.src, f.roots, sink))
	}

	checker := namecheck.NewChecker(units, sink)
	for _, u := range units {
		checker.Check(u)
	}

	if err := sink.EnsureNoErrors(); err != nil {
		return err
	}

	prog := irgen.NewGenerator(sink).Generate(units)
	if err := sink.EnsureNoErrors(); err != nil {
		return err
	}
	if opts.ProgramOut != nil {
		*opts.ProgramOut = prog
	}

	switch opts.Format {
	case FormatPIRT:
		return pirt.Write(opts.Out, prog)
	case FormatWAT, "":
		return watgen.Emit(opts.Out, prog, opts.RuntimeBody)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}
