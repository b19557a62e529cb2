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

// Package parser is a recursive-descent parser over a trivia-filtered
// token stream, with one token of lookahead. Its grammar has exactly
// three productions: atom, list, and quoted-form.
package parser

import (
	"github.com/launix-de/proboscis/internal/ast"
	"github.com/launix-de/proboscis/internal/diag"
	"github.com/launix-de/proboscis/internal/srcset"
	"github.com/launix-de/proboscis/internal/token"
)

// Filter drops trivia tokens (comments, whitespace), leaving the stream
// the parser actually consumes.
func Filter(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, tok := range toks {
		if !tok.Kind.IsTrivia() {
			out = append(out, tok)
		}
	}
	return out
}

// ParseAll parses every top-level form in toks (already Filter-ed),
// reporting each malformed form to sink and skipping past it so that one
// mistake doesn't cascade. One file's forms are independent of every
// other file's.
func ParseAll(src *srcset.Source, toks []token.Token, sink *diag.Sink) []*ast.Node {
	p := &parser{src: src, toks: toks, sink: sink}
	var forms []*ast.Node
	for p.pos < len(p.toks) {
		n, ok := p.parseForm()
		if !ok {
			p.recover()
			continue
		}
		forms = append(forms, n)
	}
	return forms
}

type parser struct {
	src  *srcset.Source
	toks []token.Token
	pos  int
	sink *diag.Sink
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

// recover skips tokens until it passes one unmatched RightParen or runs
// out of input, so a single malformed form does not poison the rest of
// the file.
func (p *parser) recover() {
	depth := 0
	for p.pos < len(p.toks) {
		tok := p.toks[p.pos]
		p.pos++
		switch tok.Kind {
		case token.LeftParen:
			depth++
		case token.RightParen:
			if depth == 0 {
				return
			}
			depth--
		}
	}
}

func (p *parser) parseForm() (*ast.Node, bool) {
	tok, ok := p.peek()
	if !ok {
		return nil, false
	}
	switch tok.Kind {
	case token.LeftParen:
		return p.parseList()
	case token.Quote:
		return p.parseQuoted()
	case token.RightParen:
		p.sink.Report(&UnbalancedParenthesis{Frag: tok.Frag})
		return nil, false
	case token.Ident, token.FuncIdent, token.IntLit, token.FloatLit, token.StringLit:
		p.pos++
		return ast.Atom(tok), true
	default:
		p.sink.Report(&MismatchedToken{Frag: tok.Frag, Found: tok.Kind})
		return nil, false
	}
}

func (p *parser) parseList() (*ast.Node, bool) {
	open, _ := p.peek()
	p.pos++ // consume '('
	var children []*ast.Node
	for {
		tok, ok := p.peek()
		if !ok {
			p.sink.Report(&UnexpectedEnd{Frag: open.Frag})
			return nil, false
		}
		if tok.Kind == token.RightParen {
			p.pos++
			frag := srcset.Union(open.Frag, tok.Frag)
			return ast.List(children, frag), true
		}
		child, ok := p.parseForm()
		if !ok {
			return nil, false
		}
		children = append(children, child)
	}
}

func (p *parser) parseQuoted() (*ast.Node, bool) {
	q, _ := p.peek()
	p.pos++ // consume the quote
	inner, ok := p.parseForm()
	if !ok {
		return nil, false
	}
	frag := srcset.Union(q.Frag, inner.Frag)
	return ast.Quoted(inner, frag), true
}
