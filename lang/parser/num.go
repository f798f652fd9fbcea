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

package parser

import (
	"strings"

	"github.com/purpleidea/vizx/lang/ast"
	"github.com/purpleidea/vizx/lang/lexer"
)

// The numeric grammar, loosest level first. Every level is left associative.
//
//	Number  = NumAdd { "^" NumAdd }
//	NumAdd  = NumMul { ("+" | "-") NumMul }
//	NumMul  = NumAtom { ("*" | "/") NumAtom }
//	NumAtom = "S" NumAtom | literal | "PI" | ("+" | "-") NumAtom
//	        | "(" Number ")" | Call | ident
//	Call    = ident "(" Number { [","] Number } ")" | ident Number { Number }
//	RealNum = "R0" | "R1" | ("/" | "√") Number | Number

var binaryOps = map[lexer.Kind]ast.Op{
	lexer.KindAdd: ast.OpAdd,
	lexer.KindSub: ast.OpSub,
	lexer.KindMul: ast.OpMul,
	lexer.KindDiv: ast.OpDiv,
	lexer.KindExp: ast.OpExp,
}

// binary builds an infix operation which keeps the written text.
func binary(op ast.Op, left, right ast.Num) ast.Num {
	return &ast.NumBinaryOp{
		Op:     op,
		Left:   left,
		Right:  right,
		Source: left.Expr() + " " + string(op) + " " + right.Expr(),
	}
}

// unary builds a prefix operation which keeps the written text.
func unary(op ast.Op, operand ast.Num) ast.Num {
	return &ast.NumUnaryOp{
		Op:      op,
		Operand: operand,
		Source:  string(op) + operand.Expr(),
	}
}

// level parses one left associative level of infix operators.
func (obj *parser) level(pos int, ops []lexer.Kind, operand func(int) []result[ast.Num]) []result[ast.Num] {
	return lrec(operand(pos), func(left result[ast.Num]) []result[ast.Num] {
		k := obj.kind(left.next)
		found := false
		for _, op := range ops {
			if obj.is(left.next, op) {
				found = true
			}
		}
		if !found {
			return nil
		}
		out := []result[ast.Num]{}
		rights := operand(left.next + 1)
		if len(rights) == 0 {
			obj.need(left.next+1, "Number")
		}
		for _, right := range rights {
			out = append(out, result[ast.Num]{
				val:  binary(binaryOps[k], left.val, right.val),
				next: right.next,
			})
		}
		return out
	})
}

// number is the loosest level of the numeric grammar.
func (obj *parser) number(pos int) []result[ast.Num] {
	return obj.memoNum(ruleNumber, pos, func(pos int) []result[ast.Num] {
		return obj.level(pos, []lexer.Kind{lexer.KindExp}, obj.numAdd)
	})
}

func (obj *parser) numAdd(pos int) []result[ast.Num] {
	return obj.memoNum(ruleNumAdd, pos, func(pos int) []result[ast.Num] {
		return obj.level(pos, []lexer.Kind{lexer.KindAdd, lexer.KindSub}, obj.numMul)
	})
}

func (obj *parser) numMul(pos int) []result[ast.Num] {
	return obj.memoNum(ruleNumMul, pos, func(pos int) []result[ast.Num] {
		return obj.level(pos, []lexer.Kind{lexer.KindMul, lexer.KindDiv}, obj.numAtom)
	})
}

func (obj *parser) numAtom(pos int) []result[ast.Num] {
	return obj.memoNum(ruleNumAtom, pos, func(pos int) []result[ast.Num] {
		out := []result[ast.Num]{}

		if obj.is(pos, lexer.KindSucc) {
			inner := obj.numAtom(pos + 1)
			if len(inner) == 0 {
				obj.need(pos+1, "Number")
			}
			for _, r := range inner {
				out = append(out, result[ast.Num]{
					val:  succ(r.val),
					next: r.next,
				})
			}
		}

		if obj.is(pos, lexer.KindNumber) {
			out = append(out, result[ast.Num]{
				val:  ast.NewLiteral(obj.text(pos)),
				next: pos + 1,
			})
		}

		if obj.is(pos, lexer.KindPI) {
			out = append(out, result[ast.Num]{
				val:  ast.NewVariable(obj.text(pos)),
				next: pos + 1,
			})
		}

		if obj.is(pos, lexer.KindAdd) || obj.is(pos, lexer.KindSub) {
			op := binaryOps[obj.kind(pos)]
			inner := obj.numAtom(pos + 1)
			if len(inner) == 0 {
				obj.need(pos+1, "Number")
			}
			for _, r := range inner {
				out = append(out, result[ast.Num]{
					val:  unary(op, r.val),
					next: r.next,
				})
			}
		}

		if obj.is(pos, lexer.KindLParen) {
			inner := obj.number(pos + 1)
			if len(inner) == 0 {
				obj.need(pos+1, "Number")
			}
			for _, r := range inner {
				if !obj.is(r.next, lexer.KindRParen) {
					obj.need(r.next, lexer.GlyphRParen)
					continue
				}
				out = append(out, result[ast.Num]{
					val:  withSource(r.val, paren(r.val.Expr())),
					next: r.next + 1,
				})
			}
		}

		if obj.is(pos, lexer.KindIdent) {
			name := obj.text(pos)
			calls := obj.args(pos+1, numArgs, obj.numArg)
			for _, c := range calls {
				nums := []ast.Num{}
				for _, a := range c.val {
					nums = append(nums, a.Num)
				}
				out = append(out, result[ast.Num]{
					val:  call(name, nums),
					next: c.next,
				})
			}
			out = append(out, result[ast.Num]{
				val:  ast.NewVariable(name),
				next: pos + 1,
			})
		}

		return out
	})
}

// call builds a function call which keeps the written text.
func call(name string, args []ast.Num) ast.Num {
	exprs := []string{}
	for _, x := range args {
		exprs = append(exprs, x.Expr())
	}
	return &ast.NumFunctionCall{
		Name:   name,
		Args:   args,
		Source: name + "(" + strings.Join(exprs, ", ") + ")",
	}
}

// succ builds the successor of a number. The written text is parenthesized so
// that it still reads correctly as the operand of a tighter operator.
func succ(n ast.Num) ast.Num {
	return &ast.NumBinaryOp{
		Op:     ast.OpAdd,
		Left:   n,
		Right:  ast.NewLiteral("1"),
		Source: "(" + n.Expr() + " + 1)",
	}
}

// paren wraps written text in parentheses, unless one pair already encloses all
// of it, as it does for a successor.
func paren(s string) string {
	depth := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && i < len(s)-1 {
			return "(" + s + ")"
		}
	}
	if strings.HasPrefix(s, "(") {
		return s
	}
	return "(" + s + ")"
}

// withSource returns a shallow copy of a number with different written text.
// The children are shared, since parsed trees are never modified.
func withSource(n ast.Num, s string) ast.Num {
	switch x := n.(type) {
	case *ast.NumLiteral:
		y := *x
		y.Source = s
		return &y
	case *ast.NumVariable:
		y := *x
		y.Source = s
		return &y
	case *ast.NumBinaryOp:
		y := *x
		y.Source = s
		return &y
	case *ast.NumUnaryOp:
		y := *x
		y.Source = s
		return &y
	case *ast.NumFunctionCall:
		y := *x
		y.Source = s
		return &y
	case *ast.NumRealConstant:
		y := *x
		y.Source = s
		return &y
	}
	return n
}

// realNum parses an angle or a coefficient.
func (obj *parser) realNum(pos int) []result[ast.Num] {
	return obj.memoNum(ruleRealNum, pos, func(pos int) []result[ast.Num] {
		out := []result[ast.Num]{}

		if obj.is(pos, lexer.KindR0) || obj.is(pos, lexer.KindR1) {
			out = append(out, result[ast.Num]{
				val:  ast.NewRealConstant(obj.text(pos)),
				next: pos + 1,
			})
		}

		if obj.is(pos, lexer.KindDiv) || obj.is(pos, lexer.KindRoot) {
			op := ast.OpDiv
			if obj.kind(pos) == lexer.KindRoot {
				op = ast.OpRoot
			}
			inner := obj.number(pos + 1)
			if len(inner) == 0 {
				obj.need(pos+1, "Number")
			}
			for _, r := range inner {
				out = append(out, result[ast.Num]{
					val:  unary(op, r.val),
					next: r.next,
				})
			}
		}

		return append(out, obj.number(pos)...)
	})
}

// arg is a single function argument. Exactly one field is set.
type arg = ast.Arg

// numArg parses a numeric argument.
func (obj *parser) numArg(pos int) []result[*arg] {
	out := []result[*arg]{}
	for _, r := range obj.number(pos) {
		out = append(out, result[*arg]{val: &arg{Num: r.val}, next: r.next})
	}
	return out
}

// argRules names the memo entries of one kind of argument list.
type argRules struct {
	bare  rule
	paren rule
}

var (
	numArgs  = argRules{bare: ruleNumBare, paren: ruleNumParen}
	nodeArgs = argRules{bare: ruleNodeBare, paren: ruleNodeParen}
)

// args parses the arguments of a call that starts at pos, either as a
// parenthesized list with optional commas, or as a bare list of one or more
// adjacent arguments. Longer lists come first. The lists that start at each
// position are memoized, so adjacent names are only walked once.
func (obj *parser) args(pos int, rules argRules, one func(int) []result[*arg]) []result[[]*arg] {
	out := []result[[]*arg]{}

	if obj.is(pos, lexer.KindLParen) {
		var walk func(pos int) []result[[]*arg]
		walk = func(pos int) []result[[]*arg] {
			res := []result[[]*arg]{}
			xs := one(pos)
			if len(xs) == 0 {
				obj.need(pos, "argument")
			}
			for _, x := range xs {
				next := x.next
				if obj.is(next, lexer.KindRParen) {
					res = append(res, result[[]*arg]{val: []*arg{x.val}, next: next + 1})
					continue
				}
				if obj.is(next, lexer.KindComma) {
					next++
				} else {
					obj.need(next, lexer.GlyphRParen)
				}
				for _, tail := range obj.memoArgs(rules.paren, next, walk) {
					res = append(res, result[[]*arg]{val: prepend(x.val, tail.val), next: tail.next})
					if len(res) >= MaxCandidates {
						return res
					}
				}
			}
			return res
		}
		out = append(out, obj.memoArgs(rules.paren, pos+1, walk)...)
	}

	var bare func(pos int) []result[[]*arg]
	bare = func(pos int) []result[[]*arg] {
		res := []result[[]*arg]{}
		if k := obj.kind(pos); k == lexer.KindAdd || k == lexer.KindSub {
			return res // a sign after a name is always the infix operator
		}
		for _, x := range one(pos) {
			for _, tail := range obj.memoArgs(rules.bare, x.next, bare) {
				res = append(res, result[[]*arg]{val: prepend(x.val, tail.val), next: tail.next})
				if len(res) >= MaxCandidates {
					return res
				}
			}
			res = append(res, result[[]*arg]{val: []*arg{x.val}, next: x.next})
			if len(res) >= MaxCandidates {
				return res
			}
		}
		return res
	}
	return append(out, obj.memoArgs(rules.bare, pos, bare)...)
}

// prepend returns a new list with x in front. The tail is shared.
func prepend(x *arg, tail []*arg) []*arg {
	return append([]*arg{x}, tail...)
}
