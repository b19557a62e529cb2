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

package parser

import (
	"fmt"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/srcset"
	"github.com/launix-de/proboscis/internal/token"
)

// UnbalancedParenthesis is reported for a ')' with no matching '('.
type UnbalancedParenthesis struct {
	Frag srcset.Fragment
}

func (e *UnbalancedParenthesis) Kind() diag.Kind { return diag.Error }

func (e *UnbalancedParenthesis) Error() string {
	return fmt.Sprintf("unbalanced parenthesis\n%s", e.Frag.Context())
}

// UnexpectedEnd is reported when a list's opening '(' is never closed
// before end of input.
type UnexpectedEnd struct {
	Frag srcset.Fragment
}

func (e *UnexpectedEnd) Kind() diag.Kind { return diag.Error }

func (e *UnexpectedEnd) Error() string {
	return fmt.Sprintf("unexpected end of input, list never closed\n%s", e.Frag.Context())
}

// MismatchedToken is reported when a token appears where no grammar
// production accepts it.
type MismatchedToken struct {
	Frag  srcset.Fragment
	Found token.Kind
}

func (e *MismatchedToken) Kind() diag.Kind { return diag.Error }

func (e *MismatchedToken) Error() string {
	return fmt.Sprintf("unexpected %s\n%s", e.Found, e.Frag.Context())
}
