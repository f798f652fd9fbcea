// Vizx
// Copyright (C) 2013-2024+ James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package lexer turns diagram language source text into a list of tokens. At
// every position the rule with the longest match wins, and ties go to the rule
// that is declared first in the rule table.
package lexer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/purpleidea/vizx/lang/interfaces"
)

// rule is a single entry of the lexer table. Exactly one of lit or re is set.
type rule struct {
	kind Kind
	skip bool           // matched text is discarded (whitespace)
	lit  string         // exact text to match
	re   *regexp.Regexp // anchored pattern to match
}

// match returns the number of bytes this rule matches at the start of s.
func (obj *rule) match(s string) int {
	if obj.re == nil {
		if strings.HasPrefix(s, obj.lit) {
			return len(obj.lit)
		}
		return 0
	}
	loc := obj.re.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return 0
	}
	return loc[1]
}

func lit(kind Kind, s string) *rule {
	return &rule{kind: kind, lit: s}
}

func pattern(kind Kind, expr string) *rule {
	return &rule{kind: kind, re: regexp.MustCompile(`^(?:` + expr + `)`)}
}

// rules is the lexer table. Reserved words must precede the identifier rule,
// since they tie with it on length.
var rules = []*rule{
	{skip: true, re: regexp.MustCompile(`^[\s\p{Zs}]+`)},

	pattern(KindNumber, `[0-9]+`),
	lit(KindZ, "Z"),
	lit(KindX, "X"),
	lit(KindR0, "R0"),
	lit(KindR1, "R1"),
	lit(KindNWire, "n_wire"),
	lit(KindCast, GlyphCast),
	lit(KindCastOf, GlyphCastOf),
	pattern(KindSucc, `S[\s\p{Zs}]`),
	lit(KindLParen, GlyphLParen),
	lit(KindRParen, GlyphRParen),
	lit(KindPI, "PI"),

	lit(KindWire, "wire"),
	lit(KindBox, "box"),
	lit(KindCap, "cap"),
	lit(KindCup, "cup"),
	lit(KindSwap, "swap"),
	lit(KindEmpty, "empty"),

	pattern(KindIdent, `[A-WYa-zΑ-Ωα-ω][A-Za-zΑ-Ωα-ω0-9'_]*`),
	lit(KindComma, GlyphComma),

	lit(KindAdd, GlyphAdd),
	lit(KindSub, GlyphSub),
	lit(KindMul, GlyphMul),
	lit(KindDiv, GlyphDiv),
	lit(KindRoot, GlyphRoot),
	lit(KindExp, GlyphExp),
	lit(KindScale, GlyphScale),

	lit(KindSwap, GlyphSwap),
	lit(KindEmpty, GlyphEmpty),
	lit(KindWire, GlyphWire),
	lit(KindBox, GlyphBox),
	lit(KindCap, GlyphCap),
	lit(KindCup, GlyphCup),

	lit(KindTranspose, GlyphTranspose),
	lit(KindConjugate, GlyphConjugate),
	lit(KindAdjoint, GlyphAdjoint),
	lit(KindColorSwap, GlyphColorSwap),
	lit(KindFlip, GlyphFlip),

	lit(KindStack, GlyphStack),
	lit(KindNStack, GlyphNStack),
	lit(KindNStack1, GlyphNStack1),
	lit(KindCompose, GlyphCompose),
	lit(KindPropTo, GlyphPropTo),
	lit(KindEq, GlyphEq),
}

// cursor tracks the zero-based line and rune column of a byte offset.
type cursor struct {
	line int
	col  int
}

// advance moves the cursor over the text.
func (obj *cursor) advance(text string) {
	for _, r := range text {
		if r == '\n' {
			obj.line++
			obj.col = 0
			continue
		}
		obj.col++
	}
}

// Lex returns the list of tokens in the input. The list always ends with a
// single EOF token. If some part of the input matches no rule, it returns a
// *interfaces.LexParseErr which wraps interfaces.ErrLexerUnrecognized.
func Lex(input string) ([]*Token, error) {
	tokens := []*Token{}
	cur := &cursor{}
	pos := 0
	for pos < len(input) {
		rest := input[pos:]
		var best *rule
		size := 0
		for _, r := range rules {
			if n := r.match(rest); n > size { // strictly longer wins
				best, size = r, n
			}
		}

		if best == nil {
			_, n := utf8.DecodeRuneInString(rest)
			return nil, &interfaces.LexParseErr{
				Err:    interfaces.ErrLexerUnrecognized,
				Str:    rest[:n],
				Row:    cur.line,
				Col:    cur.col,
				Offset: pos,
			}
		}

		text := rest[:size]
		if best.skip {
			cur.advance(text)
			pos += size
			continue
		}

		tok := &Token{
			Kind: best.kind,
			Text: text,
		}
		line, col := cur.line, cur.col
		cur.advance(text)
		tok.Locate(line, col, cur.line, cur.col)
		tok.Span(pos, pos+size)
		tokens = append(tokens, tok)
		pos += size
	}

	eof := &Token{Kind: KindEOF}
	eof.Locate(cur.line, cur.col, cur.line, cur.col)
	eof.Span(pos, pos)
	tokens = append(tokens, eof)

	return tokens, nil
}

// ErrorArea returns the area of the input that a positioned error points at,
// so that it can be highlighted.
func ErrorArea(err *interfaces.LexParseErr) *Textarea {
	width := utf8.RuneCountInString(err.Str)
	if err.Str == interfaces.EOF {
		width = 0
	}
	ta := &Textarea{}
	ta.Locate(err.Row, err.Col, err.Row, err.Col+width)
	return ta
}
