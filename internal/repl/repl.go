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

// Package repl is an interactive form-at-a-time PIRT exploration loop:
// read one top-level form, compile it on its own with a fresh IR
// generator, print its PIRT dump.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/irgen"
	"github.com/launix-de/proboscis/internal/lexer"
	"github.com/launix-de/proboscis/internal/parser"
	"github.com/launix-de/proboscis/internal/pirt"
	"github.com/launix-de/proboscis/internal/sema"
	"github.com/launix-de/proboscis/internal/srcset"
)

const (
	newPrompt  = "\033[32m>\033[0m "
	contPrompt = "\033[32m.\033[0m "
	resultMark = "\033[31m=\033[0m "
)

// Run drives the interactive loop until EOF or interrupt. Each form is
// compiled in isolation (its own Source Set entry and a fresh IR
// Generator), since PIRT only has meaning as a whole program and there
// is no incremental-linking story for a REPL.
func Run(out io.Writer) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newPrompt,
		HistoryFile:       ".proboscis-history.tmp",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	l.CaptureExitSignal()

	var pending string
	n := 0
	for {
		line, err := l.Readline()
		line = pending + line
		if err == readline.ErrInterrupt {
			if line == "" {
				return nil
			}
			pending = ""
			l.SetPrompt(newPrompt)
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !balanced(line) {
			pending = line + "\n"
			l.SetPrompt(contPrompt)
			continue
		}
		n++
		evalOne(out, fmt.Sprintf("repl:%d", n), line)
		pending = ""
		l.SetPrompt(newPrompt)
	}
}

func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth <= 0
}

func evalOne(out io.Writer, name, text string) {
	var diagOut strings.Builder
	sink := diag.NewSink(&diagOut)
	set := srcset.NewSet()
	src, err := set.Add(name, text)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	toks := lexer.Lex(src, sink)
	roots := parser.ParseAll(src, parser.Filter(toks), sink)
	if sink.ErrorCount() != 0 {
		fmt.Fprint(out, diagOut.String())
		return
	}
	unit := sema.Classify(src, roots, sink)
	if sink.ErrorCount() != 0 {
		fmt.Fprint(out, diagOut.String())
		return
	}
	prog := irgen.NewGenerator(sink).Generate([]*sema.Unit{unit})
	if sink.ErrorCount() != 0 {
		fmt.Fprint(out, diagOut.String())
		return
	}
	fmt.Fprint(out, resultMark)
	pirt.Write(out, prog)
}
