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

import "github.com/launix-de/proboscis/internal/ir"

// scopeStack is a flat vector of (name, place) pairs with a parallel
// vector of scope-end marks: exit_scope truncates, lookup walks
// right-to-left to honor shadowing. Preferable to per-scope hash maps
// because scopes here are small and shallow. It is a single structure
// shared by the whole generator across every top-level function and its
// nested lambdas — never reset at a function boundary — which is what
// lets a lambda body see the places its enclosing function bound.
type scopeStack struct {
	names  []string
	places []ir.PlaceAddress
	marks  []int
}

func (s *scopeStack) enter() { s.marks = append(s.marks, len(s.names)) }

func (s *scopeStack) exit() {
	mark := s.marks[len(s.marks)-1]
	s.marks = s.marks[:len(s.marks)-1]
	s.names = s.names[:mark]
	s.places = s.places[:mark]
}

func (s *scopeStack) bind(name string, place ir.PlaceAddress) {
	s.names = append(s.names, name)
	s.places = append(s.places, place)
}

func (s *scopeStack) lookup(name string) (ir.PlaceAddress, bool) {
	for i := len(s.names) - 1; i >= 0; i-- {
		if s.names[i] == name {
			return s.places[i], true
		}
	}
	return ir.PlaceAddress{}, false
}
