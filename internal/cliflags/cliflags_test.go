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

package cliflags

import "testing"

func TestParseDefaultsToCompile(t *testing.T) {
	p, err := Parse([]string{"a.pbs"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Subcommand != "compile" || p.Compile == nil {
		t.Fatalf("expected a default compile subcommand, got %+v", p)
	}
	if len(p.Compile.Files) != 1 || p.Compile.Files[0] != "a.pbs" {
		t.Fatalf("expected a.pbs as the only file, got %v", p.Compile.Files)
	}
	if p.Compile.Format != "wat" || p.Compile.Compress != "none" {
		t.Fatalf("expected wat/none defaults, got %+v", p.Compile)
	}
}

func TestParseCompileFlags(t *testing.T) {
	p, err := Parse([]string{"compile", "-o", "out.wat", "-f", "pirt", "--compress", "lz4", "--watch", "a.pbs", "b.pbs"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := p.Compile
	if c.Output != "out.wat" || c.Format != "pirt" || c.Compress != "lz4" || !c.Watch {
		t.Fatalf("unexpected flags: %+v", c)
	}
	if len(c.Files) != 2 {
		t.Fatalf("expected two files, got %v", c.Files)
	}
}

func TestParseRejectsCompressWithWAT(t *testing.T) {
	_, err := Parse([]string{"compile", "--compress", "lz4", "a.pbs"})
	if err == nil {
		t.Fatalf("expected an error combining --compress with the wat format")
	}
	if _, ok := err.(*UsageError); !ok {
		t.Fatalf("expected a *UsageError, got %T", err)
	}
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"compile", "--bogus", "a.pbs"})
	if err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
}

func TestParseServeDefaultsAddr(t *testing.T) {
	p, err := Parse([]string{"serve"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Subcommand != "serve" || p.Serve.Addr == "" {
		t.Fatalf("expected a default serve address, got %+v", p.Serve)
	}
}

func TestParseServeAddr(t *testing.T) {
	p, err := Parse([]string{"serve", "--addr", "0.0.0.0:9000"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Serve.Addr != "0.0.0.0:9000" {
		t.Fatalf("expected the given addr, got %q", p.Serve.Addr)
	}
}

func TestParseRepl(t *testing.T) {
	p, err := Parse([]string{"repl"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Subcommand != "repl" {
		t.Fatalf("expected repl subcommand, got %q", p.Subcommand)
	}
}

func TestParseNoArgsIsUsageError(t *testing.T) {
	_, err := Parse(nil)
	if err == nil {
		t.Fatalf("expected a usage error for no arguments")
	}
}
