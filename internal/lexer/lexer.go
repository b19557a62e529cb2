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

// Package lexer turns one Source's text into a stream of Tokens, single
// pass and zero-copy: every token is a Fragment referencing the source's
// own bytes.
package lexer

import (
	"strings"

	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/srcset"
	"github.com/launix-de/proboscis/internal/token"
)

// Lex scans src in full and returns the tokens found, reporting any lex
// error to sink. After a lex error the lexer consumes the remainder of
// the input and stops, yielding no further tokens (fail-fast within a
// file), matching the rest of the Source Set's files being unaffected.
func Lex(src *srcset.Source, sink *diag.Sink) []token.Token {
	l := &lexer{src: src, text: src.Text(), sink: sink}
	var toks []token.Token
	for l.pos < len(l.text) {
		tok, ok := l.next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

type lexer struct {
	src  *srcset.Source
	text string
	pos  int
	sink *diag.Sink
}

func isIdentStart(r byte) bool {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	switch r {
	case '+', '-', '/', '*', '.', '_', '\\', '<', '>', '=', '?', '&', ':':
		return true
	}
	return false
}

func isDigit(r byte) bool { return r >= '0' && r <= '9' }

func isIdentContinue(r byte) bool {
	return isIdentStart(r) || isDigit(r)
}

func isWhitespace(r byte) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func (l *lexer) frag(from, to int) srcset.Fragment {
	return srcset.NewFragment(l.src, from, to)
}

// next scans and returns one token, or ok=false if a fatal lex error
// occurred (already reported to the sink) and scanning must stop.
func (l *lexer) next() (token.Token, bool) {
	start := l.pos
	c := l.text[l.pos]

	switch {
	case isWhitespace(c):
		for l.pos < len(l.text) && isWhitespace(l.text[l.pos]) {
			l.pos++
		}
		return token.Token{Kind: token.Whitespace, Frag: l.frag(start, l.pos)}, true

	case c == ';':
		for l.pos < len(l.text) && l.text[l.pos] != '\n' {
			l.pos++
		}
		return token.Token{Kind: token.Comment, Frag: l.frag(start, l.pos)}, true

	case c == '(':
		l.pos++
		return token.Token{Kind: token.LeftParen, Frag: l.frag(start, l.pos)}, true

	case c == ')':
		l.pos++
		return token.Token{Kind: token.RightParen, Frag: l.frag(start, l.pos)}, true

	case c == '\'':
		l.pos++
		return token.Token{Kind: token.Quote, Frag: l.frag(start, l.pos)}, true

	case c == '"':
		return l.scanString(start)

	case c == '#' && l.pos+1 < len(l.text) && l.text[l.pos+1] == '\'':
		return l.scanFuncIdent(start)

	case isDigit(c):
		return l.scanNumber(start), true

	case (c == '+' || c == '-') && l.pos+1 < len(l.text) && (isDigit(l.text[l.pos+1]) || (l.text[l.pos+1] == '.' && l.pos+2 < len(l.text) && isDigit(l.text[l.pos+2]))):
		return l.scanNumber(start), true

	case c == '.' && l.pos+1 < len(l.text) && isDigit(l.text[l.pos+1]):
		return l.scanNumber(start), true

	case isIdentStart(c):
		l.pos++
		for l.pos < len(l.text) && isIdentContinue(l.text[l.pos]) {
			l.pos++
		}
		return token.Token{Kind: token.Ident, Frag: l.frag(start, l.pos)}, true

	default:
		l.pos++
		l.sink.Report(&UnrecognizedChar{Frag: l.frag(start, l.pos), Char: rune(c)})
		l.pos = len(l.text)
		return token.Token{}, false
	}
}

// scanNumber consumes an optional sign, a digit run, and an optional
// single '.' followed by another digit run, promoting IntLit to FloatLit
// when a dot is present.
func (l *lexer) scanNumber(start int) token.Token {
	if l.text[l.pos] == '+' || l.text[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.text) && isDigit(l.text[l.pos]) {
		l.pos++
	}
	kind := token.IntLit
	if l.pos < len(l.text) && l.text[l.pos] == '.' && l.pos+1 < len(l.text) && isDigit(l.text[l.pos+1]) {
		kind = token.FloatLit
		l.pos++
		for l.pos < len(l.text) && isDigit(l.text[l.pos]) {
			l.pos++
		}
	}
	return token.Token{Kind: kind, Frag: l.frag(start, l.pos)}
}

func (l *lexer) scanFuncIdent(start int) (token.Token, bool) {
	l.pos += 2 // consume "#'"
	if l.pos >= len(l.text) || !isIdentStart(l.text[l.pos]) {
		l.sink.Report(&EmptyFuncName{Frag: l.frag(start, l.pos)})
		return token.Token{}, false
	}
	l.pos++
	for l.pos < len(l.text) && isIdentContinue(l.text[l.pos]) {
		l.pos++
	}
	return token.Token{Kind: token.FuncIdent, Frag: l.frag(start, l.pos)}, true
}

var escapeReplacer = strings.NewReplacer(
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
	`\"`, "\"",
	`\\`, "\\",
)

func (l *lexer) scanString(start int) (token.Token, bool) {
	l.pos++ // consume opening quote
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		if c == '\\' {
			if l.pos+1 >= len(l.text) {
				break
			}
			l.pos += 2
			continue
		}
		if c == '"' {
			l.pos++
			return token.Token{Kind: token.StringLit, Frag: l.frag(start, l.pos)}, true
		}
		l.pos++
	}
	l.sink.Report(&UnterminatedStringLit{Frag: l.frag(start, len(l.text))})
	l.pos = len(l.text)
	return token.Token{}, false
}

// Unescape decodes a StringLit token's text (including its surrounding
// quotes) into the string value it denotes.
func Unescape(tokenText string) string {
	inner := tokenText
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	return escapeReplacer.Replace(inner)
}
