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

// Package diag is the diagnostics sink: a small collector that reports
// errors and warnings to a writer and gates pipeline progression.
package diag

import (
	"fmt"
	"io"
)

type Kind int

const (
	Error Kind = iota
	Warning
)

// Diagnostic is anything that can be reported to a Sink. Kind decides the
// error/warning counter that gets bumped; Error() should already include
// rendered source context where one is available.
type Diagnostic interface {
	error
	Kind() Kind
}

// Sink collects diagnostics reported during one compile.
type Sink struct {
	out      io.Writer
	errors   int
	warnings int
}

func NewSink(out io.Writer) *Sink {
	return &Sink{out: out}
}

// Report prints one diagnostic and bumps the matching counter.
func (s *Sink) Report(d Diagnostic) {
	switch d.Kind() {
	case Error:
		s.errors++
		fmt.Fprint(s.out, "error: ")
	case Warning:
		s.warnings++
		fmt.Fprint(s.out, "warning: ")
	}
	fmt.Fprintln(s.out, d.Error())
}

// ReportIfErr reports err if it is non-nil, treating it as a Diagnostic
// when possible and as a bare error (always counted as an Error)
// otherwise. Returns true iff err was nil.
func (s *Sink) ReportIfErr(err error) bool {
	if err == nil {
		return true
	}
	if d, ok := err.(Diagnostic); ok {
		s.Report(d)
		return false
	}
	s.errors++
	fmt.Fprintf(s.out, "error: %s\n", err)
	return false
}

func (s *Sink) ErrorCount() int   { return s.errors }
func (s *Sink) WarningCount() int { return s.warnings }

// EnsureNoErrors gates progression: nil if no error was ever reported,
// otherwise a summary error naming the counts.
func (s *Sink) EnsureNoErrors() error {
	if s.errors == 0 {
		return nil
	}
	msg := "stopping after"
	if s.errors > 0 {
		msg += fmt.Sprintf(" %d errors", s.errors)
	}
	if s.errors > 0 && s.warnings > 0 {
		msg += ","
	}
	if s.warnings > 0 {
		msg += fmt.Sprintf(" %d warnings", s.warnings)
	}
	return fmt.Errorf("%s", msg)
}
