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
	"fmt"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/srcset"
)

type genError struct {
	Frag   srcset.Fragment
	Reason string
}

func (e *genError) Kind() diag.Kind { return diag.Error }

func (e *genError) Error() string {
	return fmt.Sprintf("%s\n%s", e.Reason, e.Frag.Context())
}

func notInScope(frag srcset.Fragment, name string) *genError {
	return &genError{Frag: frag, Reason: fmt.Sprintf("%q is not in scope", name)}
}

func functionNotFound(frag srcset.Fragment, name string) *genError {
	return &genError{Frag: frag, Reason: fmt.Sprintf("function %q is not defined", name)}
}

func reservedName(frag srcset.Fragment, name string) *genError {
	return &genError{Frag: frag, Reason: fmt.Sprintf("%q is a reserved function name", name)}
}

func globalMustHaveConstantInitializer(frag srcset.Fragment, name string) *genError {
	return &genError{Frag: frag, Reason: fmt.Sprintf("defparameter %q must be initialized with a constant", name)}
}

func numberParseError(frag srcset.Fragment, text string) *genError {
	return &genError{Frag: frag, Reason: fmt.Sprintf("could not parse numeric literal %q", text)}
}
