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

package namecheck

import (
	"fmt"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/srcset"
)

// UndefinedVariableName is reported for a Name that resolves against no
// enclosing scope.
type UndefinedVariableName struct {
	Frag srcset.Fragment
	Name string
}

func (e *UndefinedVariableName) Kind() diag.Kind { return diag.Error }

func (e *UndefinedVariableName) Error() string {
	return fmt.Sprintf("undefined variable %q\n%s", e.Name, e.Frag.Context())
}

// UndefinedFunctionName is reported for a Call head or FunctionName that
// names neither a user-defined function nor a built-in intrinsic.
type UndefinedFunctionName struct {
	Frag srcset.Fragment
	Name string
}

func (e *UndefinedFunctionName) Kind() diag.Kind { return diag.Error }

func (e *UndefinedFunctionName) Error() string {
	return fmt.Sprintf("undefined function %q\n%s", e.Name, e.Frag.Context())
}

// MalformedFunctionName is reported for a #'name reference that names a
// special form rather than a callable function.
type MalformedFunctionName struct {
	Frag srcset.Fragment
	Name string
}

func (e *MalformedFunctionName) Kind() diag.Kind { return diag.Error }

func (e *MalformedFunctionName) Error() string {
	return fmt.Sprintf("%q is a special form, not a function\n%s", e.Name, e.Frag.Context())
}
