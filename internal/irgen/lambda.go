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

import "github.com/launix-de/proboscis/internal/form"

// containsLambda reports whether any of forms transitively contains a
// Lambda, stopping the search at the first Lambda found without
// descending into that Lambda's own body — a function is marked
// CreatesPersistentPlaces because IT builds a closure, not because some
// closure nested arbitrarily deep within it does.
func containsLambda(forms []*form.Form) bool {
	for _, f := range forms {
		if formContainsLambda(f) {
			return true
		}
	}
	return false
}

func formContainsLambda(f *form.Form) bool {
	if f == nil {
		return false
	}
	switch f.Kind {
	case form.KindLambda:
		return true
	case form.KindIf:
		return formContainsLambda(f.Test) || formContainsLambda(f.Then) || formContainsLambda(f.Else)
	case form.KindAnd, form.KindOr, form.KindLet:
		for _, child := range f.Children {
			if formContainsLambda(child) {
				return true
			}
		}
		if f.Kind == form.KindLet {
			for _, b := range f.Bindings {
				if formContainsLambda(b.Value) {
					return true
				}
			}
		}
		return false
	case form.KindCall:
		for _, a := range f.Args {
			if formContainsLambda(a) {
				return true
			}
		}
		return false
	case form.KindApply:
		return formContainsLambda(f.Callee) || formContainsLambda(f.ArgList)
	case form.KindFuncall:
		if formContainsLambda(f.Callee) {
			return true
		}
		for _, a := range f.Args {
			if formContainsLambda(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
