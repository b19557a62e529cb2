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

// Package srcset owns the immutable text of every input file for one
// compile and hands out stable references to byte ranges within it.
package srcset

import "fmt"

// Source is one named, immutable input file.
type Source struct {
	name string
	text string
}

func newSource(name, text string) *Source {
	return &Source{name: name, text: text}
}

func (s *Source) Name() string { return s.name }
func (s *Source) Text() string { return s.text }
func (s *Source) Len() int     { return len(s.text) }

// Set owns every Source loaded for one compile. The writer is whoever
// loads files; after loading it is read-only for the rest of the pipeline.
type Set struct {
	sources []*Source
}

func NewSet() *Set {
	return &Set{}
}

// Add registers a new source under name. It is an error to add the same
// name twice within one Set.
func (s *Set) Add(name, text string) (*Source, error) {
	for _, existing := range s.sources {
		if existing.name == name {
			return nil, fmt.Errorf("duplicate source %q", name)
		}
	}
	src := newSource(name, text)
	s.sources = append(s.sources, src)
	return src, nil
}

func (s *Set) Sources() []*Source { return s.sources }
