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

package form

import (
	"fmt"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/srcset"
)

// ShapeError is reported whenever a special form's source shape doesn't
// match what extraction requires: a missing test, a malformed binding
// list, a wrong-arity apply/funcall, and so on. What makes each instance
// distinct is Reason and Frag, not a proliferation of Go types.
type ShapeError struct {
	Frag   srcset.Fragment
	Reason string
}

func (e *ShapeError) Kind() diag.Kind { return diag.Error }

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s\n%s", e.Reason, e.Frag.Context())
}

func shapeErrorf(frag srcset.Fragment, format string, args ...any) *ShapeError {
	return &ShapeError{Frag: frag, Reason: fmt.Sprintf(format, args...)}
}
