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

package lexer

// These are the glyphs of the diagram language. The printer uses the same
// constants, so the canonical form of a tree is always lexable.
const (
	GlyphAdd  = "+"
	GlyphSub  = "-"
	GlyphMul  = "*"
	GlyphDiv  = "/"
	GlyphRoot = "√"
	GlyphExp  = "^"

	GlyphNStack  = "⇑"
	GlyphNStack1 = "↑"
	GlyphCompose = "⟷"
	GlyphStack   = "↕"
	GlyphPropTo  = "∝"
	GlyphEq      = "="
	GlyphScale   = ".*"

	GlyphCap   = "⊂"
	GlyphCup   = "⊃"
	GlyphWire  = "—"
	GlyphBox   = "□"
	GlyphSwap  = "⨉"
	GlyphEmpty = "⦰"

	GlyphTranspose = "⊤"
	GlyphConjugate = "⊼"
	GlyphAdjoint   = "†"
	GlyphColorSwap = "⊙"
	GlyphFlip      = "⥍"

	GlyphLParen = "("
	GlyphRParen = ")"
	GlyphComma  = ","
	GlyphCast   = "$"
	GlyphCastOf = ":::"
)

// Kind is the classification of a token.
type Kind int

// These are all the token kinds. The order of this list is not significant, the
// precedence between rules is defined by the rule table in the lexer.
const (
	KindEOF Kind = iota

	KindNumber
	KindIdent
	KindZ
	KindX
	KindR0
	KindR1
	KindPI
	KindSucc
	KindNWire

	KindAdd
	KindSub
	KindMul
	KindDiv
	KindRoot
	KindExp

	KindNStack
	KindNStack1
	KindCompose
	KindStack
	KindPropTo
	KindEq
	KindScale

	KindCap
	KindCup
	KindWire
	KindBox
	KindSwap
	KindEmpty

	KindTranspose
	KindConjugate
	KindAdjoint
	KindColorSwap
	KindFlip

	KindLParen
	KindRParen
	KindComma
	KindCast
	KindCastOf
)

var kindNames = map[Kind]string{
	KindEOF:    "EOF",
	KindNumber: "Number",
	KindIdent:  "Ident",
	KindZ:      "Z",
	KindX:      "X",
	KindR0:     "R0",
	KindR1:     "R1",
	KindPI:     "PI",
	KindSucc:   "Succ",
	KindNWire:  "NWire",

	KindAdd:  "Add",
	KindSub:  "Sub",
	KindMul:  "Mul",
	KindDiv:  "Div",
	KindRoot: "Root",
	KindExp:  "Exp",

	KindNStack:  "NStack",
	KindNStack1: "NStack1",
	KindCompose: "Compose",
	KindStack:   "Stack",
	KindPropTo:  "PropTo",
	KindEq:      "Eq",
	KindScale:   "Scale",

	KindCap:   "Cap",
	KindCup:   "Cup",
	KindWire:  "Wire",
	KindBox:   "Box",
	KindSwap:  "Swap",
	KindEmpty: "Empty",

	KindTranspose: "Transpose",
	KindConjugate: "Conjugate",
	KindAdjoint:   "Adjoint",
	KindColorSwap: "ColorSwap",
	KindFlip:      "Flip",

	KindLParen: "LParen",
	KindRParen: "RParen",
	KindComma:  "Comma",
	KindCast:   "Cast",
	KindCastOf: "CastOf",
}

// String returns the name of the token kind.
func (k Kind) String() string {
	if s, exists := kindNames[k]; exists {
		return s
	}
	return "Unknown"
}

// Token is a single classified piece of the input.
type Token struct {
	Textarea

	Kind Kind

	// Text is the exact matched text. It is empty for the EOF token.
	Text string
}

// String returns a short human readable representation of the token.
func (obj *Token) String() string {
	if obj.Kind == KindEOF {
		return "EOF"
	}
	return obj.Kind.String() + "(" + obj.Text + ")"
}
