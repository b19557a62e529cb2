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

package lexer

import (
	"fmt"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/srcset"
)

// UnrecognizedChar is reported for a byte that starts none of the known
// token forms.
type UnrecognizedChar struct {
	Frag srcset.Fragment
	Char rune
}

func (e *UnrecognizedChar) Kind() diag.Kind { return diag.Error }

func (e *UnrecognizedChar) Error() string {
	return fmt.Sprintf("unrecognized character %q\n%s", e.Char, e.Frag.Context())
}

// EmptyFuncName is reported for a #' not immediately followed by an
// identifier.
type EmptyFuncName struct {
	Frag srcset.Fragment
}

func (e *EmptyFuncName) Kind() diag.Kind { return diag.Error }

func (e *EmptyFuncName) Error() string {
	return fmt.Sprintf("#' must be followed by a function name\n%s", e.Frag.Context())
}

// UnterminatedStringLit is reported when a string literal's opening
// quote is never closed before end of input.
type UnterminatedStringLit struct {
	Frag srcset.Fragment
}

func (e *UnterminatedStringLit) Kind() diag.Kind { return diag.Error }

func (e *UnterminatedStringLit) Error() string {
	return fmt.Sprintf("unterminated string literal\n%s", e.Frag.Context())
}
