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

// Package token defines the lexical token kinds shared by the lexer and
// parser.
package token

import "github.com/launix-de/proboscis/internal/srcset"

type Kind int

const (
	LeftParen Kind = iota
	RightParen
	Quote
	Ident
	FuncIdent
	IntLit
	FloatLit
	StringLit
	Comment
	Whitespace
)

func (k Kind) String() string {
	switch k {
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case Quote:
		return "Quote"
	case Ident:
		return "Ident"
	case FuncIdent:
		return "FuncIdent"
	case IntLit:
		return "IntLit"
	case FloatLit:
		return "FloatLit"
	case StringLit:
		return "StringLit"
	case Comment:
		return "Comment"
	case Whitespace:
		return "Whitespace"
	default:
		return "Unknown"
	}
}

// IsTrivia reports whether tokens of this kind are dropped by the
// lookahead filter before parsing.
func (k Kind) IsTrivia() bool {
	return k == Comment || k == Whitespace
}

type Token struct {
	Kind Kind
	Frag srcset.Fragment
}

// Text is the exact source text spanned by the token, including any
// punctuation such as the leading #' of a FuncIdent or the quotes of a
// StringLit.
func (t Token) Text() string { return t.Frag.Text() }
