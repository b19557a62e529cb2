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

// proboscis lexes, parses, classifies, and compiles LISP-dialect source
// into WebAssembly text targeting a JS host. See internal/cliflags.Usage
// for the full CLI surface.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/dc0d/onexit"
	"github.com/docker/go-units"
	"github.com/google/uuid"

	"github.com/launix-de/proboscis/internal/cliflags"
	"github.com/launix-de/proboscis/internal/compiler"
	"github.com/launix-de/proboscis/internal/ir"
	"github.com/launix-de/proboscis/internal/outsink"
	"github.com/launix-de/proboscis/internal/repl"
	"github.com/launix-de/proboscis/internal/serveapi"
	"github.com/launix-de/proboscis/internal/watch"
)

const runtimePath = "rt/rt.wat"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	parsed, err := cliflags.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, cliflags.Usage)
		return 2
	}

	switch parsed.Subcommand {
	case "compile":
		if parsed.Compile.Help {
			fmt.Print(cliflags.Usage)
			return 0
		}
		return runCompile(parsed.Compile)
	case "repl":
		if parsed.Repl.Help {
			fmt.Print(cliflags.Usage)
			return 0
		}
		if err := repl.Run(os.Stdout); err != nil {
			log.Printf("proboscis: repl: %v", err)
			return 1
		}
		return 0
	case "serve":
		if parsed.Serve.Help {
			fmt.Print(cliflags.Usage)
			return 0
		}
		return runServe(parsed.Serve)
	default:
		fmt.Fprint(os.Stderr, cliflags.Usage)
		return 2
	}
}

func runServe(opts *cliflags.Serve) int {
	runtimeBody, err := os.ReadFile(runtimePath)
	if err != nil {
		log.Printf("proboscis: read %s: %v", runtimePath, err)
		return 1
	}
	srv := serveapi.New(string(runtimeBody))
	onexit.Register(func() { log.Printf("proboscis serve: shutting down") })
	if err := serveapi.ListenAndServe(opts.Addr, srv); err != nil {
		log.Printf("proboscis: serve: %v", err)
		return 1
	}
	return 0
}

func runCompile(opts *cliflags.Compile) int {
	runID := uuid.New()

	compileOnce := func() int {
		return compileAndEmit(opts, runID)
	}

	if !opts.Watch {
		return compileOnce()
	}

	stop := make(chan struct{})
	defer close(stop)
	var lastCode int
	err := watch.Run(opts.Files, stop, func(id uuid.UUID) {
		lastCode = compileAndEmit(opts, id)
	})
	if err != nil {
		log.Printf("proboscis: watch: %v", err)
		return 1
	}
	return lastCode
}

func compileAndEmit(opts *cliflags.Compile, runID uuid.UUID) int {
	if opts.Watch {
		log.Printf("proboscis: recompile %s", runID)
	}
	var inputs []compiler.Input
	for _, path := range opts.Files {
		text, err := os.ReadFile(path)
		if err != nil {
			log.Printf("proboscis: read %s: %v", path, err)
			return 1
		}
		inputs = append(inputs, compiler.Input{Name: path, Text: string(text)})
	}

	runtimeBody, err := os.ReadFile(runtimePath)
	if err != nil {
		log.Printf("proboscis: read %s: %v", runtimePath, err)
		return 1
	}

	sink, err := outsink.Open(opts.Output)
	if err != nil {
		log.Printf("proboscis: %v", err)
		return 1
	}
	sink, err = outsink.Compress(sink, opts.Compress)
	if err != nil {
		log.Printf("proboscis: %v", err)
		return 1
	}

	var out, diagOut bytes.Buffer
	var prog *ir.Program
	compileErr := compiler.Compile(inputs, compiler.Options{
		Format:      compiler.Format(opts.Format),
		Out:         &out,
		Diag:        &diagOut,
		RuntimeBody: string(runtimeBody),
		ProgramOut:  &prog,
	})

	onexit.Register(func() { sink.Close() })

	if diagOut.Len() > 0 {
		fmt.Fprint(os.Stderr, diagOut.String())
	}
	if compileErr != nil {
		return 1
	}

	if _, err := sink.Write(out.Bytes()); err != nil {
		log.Printf("proboscis: write output: %v", err)
		return 1
	}
	if err := sink.Close(); err != nil {
		log.Printf("proboscis: close output: %v", err)
		return 1
	}

	if !opts.Quiet && prog != nil {
		printSummary(prog)
	}
	return 0
}

// printSummary reports the emitted module's static data size, function
// count, and table size, suppressible with -q/--quiet.
func printSummary(prog *ir.Program) {
	fmt.Fprintf(os.Stderr, "proboscis: %d function(s), static data %s, table size %d\n",
		len(prog.Functions),
		units.BytesSize(float64(prog.StaticData.Len())),
		len(prog.Functions),
	)
}
