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

// Op is an arithmetic operator of a numeric expression.
type Op string

// These are the numeric operators. Root and the reciprocal (Div) are only ever
// used as prefixes of an angle.
const (
	OpAdd  Op = lexer.GlyphAdd
	OpSub  Op = lexer.GlyphSub
	OpMul  Op = lexer.GlyphMul
	OpDiv  Op = lexer.GlyphDiv
	OpExp  Op = lexer.GlyphExp
	OpRoot Op = lexer.GlyphRoot
)

// Num is a numeric expression. Numbers are never evaluated. Every variant keeps
// the text it was written as, so that a label can be shown verbatim.
type Num interface {
	// Expr returns the text of the expression as it was written. It is
	// never empty.
	Expr() string

	// String returns the canonical form of the expression, which the
	// parser reads back into a structurally equal expression.
	String() string

	// Copy returns a deep copy.
	Copy() Num

	// num seals the interface.
	num()
}

// NumLiteral is an unsigned integer.
type NumLiteral struct {
	Val    string `json:"val"`
	Source string `json:"expr"`
}

// NumVariable is a named value such as alpha or n.
type NumVariable struct {
	Name   string `json:"name"`
	Source string `json:"expr"`
}

// NumBinaryOp is an infix operation.
type NumBinaryOp struct {
	Op     Op     `json:"op"`
	Left   Num    `json:"left"`
	Right  Num    `json:"right"`
	Source string `json:"expr"`
}

// NumUnaryOp is a prefix operation such as a sign.
type NumUnaryOp struct {
	Op      Op     `json:"op"`
	Operand Num    `json:"operand"`
	Source  string `json:"expr"`
}

// NumFunctionCall is a named function applied to one or more arguments.
type NumFunctionCall struct {
	Name   string `json:"name"`
	Args   []Num  `json:"args"`
	Source string `json:"expr"`
}

// NumRealConstant is one of the two real endpoints R0 and R1.
type NumRealConstant struct {
	Val    string `json:"val"`
	Source string `json:"expr"`
}

// NewLiteral builds a literal.
func NewLiteral(val string) *NumLiteral {
	return &NumLiteral{Val: val, Source: val}
}

// NewVariable builds a variable.
func NewVariable(name string) *NumVariable {
	return &NumVariable{Name: name, Source: name}
}

// NewBinaryOp builds an infix operation.
func NewBinaryOp(op Op, left, right Num) *NumBinaryOp {
	obj := &NumBinaryOp{Op: op, Left: left, Right: right}
	obj.Source = obj.String()
	return obj
}

// NewUnaryOp builds a prefix operation.
func NewUnaryOp(op Op, operand Num) *NumUnaryOp {
	obj := &NumUnaryOp{Op: op, Operand: operand}
	obj.Source = obj.String()
	return obj
}

// NewFunctionCall builds a function call.
func NewFunctionCall(name string, args ...Num) *NumFunctionCall {
	obj := &NumFunctionCall{Name: name, Args: args}
	obj.Source = obj.String()
	return obj
}

// NewRealConstant builds R0 or R1.
func NewRealConstant(val string) *NumRealConstant {
	return &NumRealConstant{Val: val, Source: val}
}

// NumLevel returns the binding level of the expression. Atoms are 0, products
// are 1, sums are 2 and powers are 3, so larger numbers bind more loosely.
func NumLevel(n Num) int {
	x, ok := n.(*NumBinaryOp)
	if !ok {
		return 0
	}
	switch x.Op {
	case OpMul, OpDiv:
		return 1
	case OpAdd, OpSub:
		return 2
	}
	return 3
}

// NumAtom returns the canonical form of the expression, in parentheses unless
// it is a single token or a call.
func NumAtom(n Num) string {
	switch n.(type) {
	case *NumLiteral, *NumVariable, *NumRealConstant, *NumFunctionCall:
		return n.String()
	}
	return "(" + n.String() + ")"
}

func source(s string, n Num) string {
	if s != "" {
		return s
	}
	return n.String()
}

func (obj *NumLiteral) num()      {}
func (obj *NumVariable) num()     {}
func (obj *NumBinaryOp) num()     {}
func (obj *NumUnaryOp) num()      {}
func (obj *NumFunctionCall) num() {}
func (obj *NumRealConstant) num() {}

// Expr returns the text of the expression as it was written.
func (obj *NumLiteral) Expr() string { return source(obj.Source, obj) }

// Expr returns the text of the expression as it was written.
func (obj *NumVariable) Expr() string { return source(obj.Source, obj) }

// Expr returns the text of the expression as it was written.
func (obj *NumBinaryOp) Expr() string { return source(obj.Source, obj) }

// Expr returns the text of the expression as it was written.
func (obj *NumUnaryOp) Expr() string { return source(obj.Source, obj) }

// Expr returns the text of the expression as it was written.
func (obj *NumFunctionCall) Expr() string { return source(obj.Source, obj) }

// Expr returns the text of the expression as it was written.
func (obj *NumRealConstant) Expr() string { return source(obj.Source, obj) }

// String returns the canonical form of the expression.
func (obj *NumLiteral) String() string { return obj.Val }

// String returns the canonical form of the expression.
func (obj *NumVariable) String() string { return obj.Name }

// String returns the canonical form of the expression. Operators associate to
// the left at every level, so a right operand at the same level needs
// parentheses.
func (obj *NumBinaryOp) String() string {
	level := NumLevel(obj)
	l := obj.Left.String()
	if NumLevel(obj.Left) > level {
		l = "(" + l + ")"
	}
	r := obj.Right.String()
	if NumLevel(obj.Right) >= level {
		r = "(" + r + ")"
	}
	return l + " " + string(obj.Op) + " " + r
}

// String returns the canonical form of the expression.
func (obj *NumUnaryOp) String() string {
	return string(obj.Op) + NumAtom(obj.Operand)
}

// String returns the canonical form of the expression.
func (obj *NumFunctionCall) String() string {
	args := []string{}
	for _, x := range obj.Args {
		args = append(args, x.String())
	}
	return obj.Name + "(" + strings.Join(args, ", ") + ")"
}

// String returns the canonical form of the expression.
func (obj *NumRealConstant) String() string { return obj.Val }

// Copy returns a deep copy.
func (obj *NumLiteral) Copy() Num {
	return &NumLiteral{Val: obj.Val, Source: obj.Source}
}

// Copy returns a deep copy.
func (obj *NumVariable) Copy() Num {
	return &NumVariable{Name: obj.Name, Source: obj.Source}
}

// Copy returns a deep copy.
func (obj *NumBinaryOp) Copy() Num {
	return &NumBinaryOp{
		Op:     obj.Op,
		Left:   obj.Left.Copy(),
		Right:  obj.Right.Copy(),
		Source: obj.Source,
	}
}

// Copy returns a deep copy.
func (obj *NumUnaryOp) Copy() Num {
	return &NumUnaryOp{
		Op:      obj.Op,
		Operand: obj.Operand.Copy(),
		Source:  obj.Source,
	}
}

// Copy returns a deep copy.
func (obj *NumFunctionCall) Copy() Num {
	args := []Num{}
	for _, x := range obj.Args {
		args = append(args, x.Copy())
	}
	return &NumFunctionCall{
		Name:   obj.Name,
		Args:   args,
		Source: obj.Source,
	}
}

// Copy returns a deep copy.
func (obj *NumRealConstant) Copy() Num {
	return &NumRealConstant{Val: obj.Val, Source: obj.Source}
}
