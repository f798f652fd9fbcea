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

package ast

import (
	"strings"

	"github.com/purpleidea/vizx/lang/lexer"
)

// spiderArg prints an input or output count of a spider. Anything longer than
// one token is wrapped, so that it can't run into the following count.
func spiderArg(n Num) string {
	return NumAtom(n)
}

// realAtom prints a coefficient, which may start with one of the angle only
// prefixes that are not allowed inside parentheses.
func realAtom(n Num) string {
	if _, ok := n.(*NumUnaryOp); ok {
		return n.String()
	}
	return NumAtom(n)
}

// String returns the canonical form of the node.
func (obj *Const) String() string { return obj.Val.Glyph() }

// String returns the canonical form of the node.
func (obj *Spider) String() string {
	return obj.Color.String() + " " + spiderArg(obj.In) + " " + spiderArg(obj.Out) + " " + obj.Alpha.String()
}

// String returns the canonical form of the node.
func (obj *Var) String() string { return obj.Name }

// String returns the canonical form of the node.
func (obj *Stack) String() string {
	return "(" + obj.Left.String() + " " + lexer.GlyphStack + " " + obj.Right.String() + ")"
}

// String returns the canonical form of the node.
func (obj *Compose) String() string {
	return "(" + obj.Left.String() + " " + lexer.GlyphCompose + " " + obj.Right.String() + ")"
}

// String returns the canonical form of the node.
func (obj *NStack) String() string {
	return "(" + NumAtom(obj.N) + " " + lexer.GlyphNStack + " " + obj.Node.String() + ")"
}

// String returns the canonical form of the node.
func (obj *NStack1) String() string {
	return "(" + NumAtom(obj.N) + " " + lexer.GlyphNStack1 + " " + obj.Node.String() + ")"
}

// String returns the canonical form of the node.
func (obj *Cast) String() string {
	return lexer.GlyphCast + " " + obj.In.String() + " " + lexer.GlyphComma + " " + obj.Out.String() + " " + lexer.GlyphCastOf + " " + obj.Node.String() + " " + lexer.GlyphCast
}

// String returns the canonical form of the node.
func (obj *PropTo) String() string {
	return "(" + obj.Left.String() + " " + obj.Relation.String() + " " + obj.Right.String() + ")"
}

// String returns the canonical form of the node.
func (obj *Transform) String() string {
	if obj.Transform == TransformColorSwap {
		return "(" + obj.Transform.Glyph() + " " + obj.Node.String() + ")"
	}
	return "(" + obj.Node.String() + " " + obj.Transform.Glyph() + ")"
}

// String returns the canonical form of the node.
func (obj *Scale) String() string {
	return "(" + realAtom(obj.Coefficient) + " " + lexer.GlyphScale + " " + obj.Node.String() + ")"
}

// String returns the canonical form of the node. A Var argument comes back as a
// numeric variable, since the two can't be told apart.
func (obj *Function) String() string {
	args := []string{}
	for _, arg := range obj.Args {
		args = append(args, arg.String())
	}
	return obj.Name + "(" + strings.Join(args, lexer.GlyphComma+" ") + ")"
}

// String returns the canonical form of the node.
func (obj *NWire) String() string {
	return "n_wire " + NumAtom(obj.N)
}

// String returns the canonical form of the argument.
func (obj *Arg) String() string {
	if obj.Num != nil {
		return obj.Num.String()
	}
	switch obj.Node.(type) {
	case *Cast, *Var:
		return "(" + obj.Node.String() + ")"
	}
	return obj.Node.String()
}
