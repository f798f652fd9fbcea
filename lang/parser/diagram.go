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
	"sort"

	"github.com/purpleidea/vizx/lang/ast"
	"github.com/purpleidea/vizx/lang/lexer"
)

// The diagram grammar, loosest first.
//
//	Diagram  = { "⊙" } Relation { "†" | "⊤" | "⊼" | "⥍" }
//	Relation = Chain [ ("∝" ["="] | "=") Chain ]
//	Chain    = Unit { ("↕" | "⟷") Unit }
//	Unit     = BaseTerm | Number ("⇑" | "↑") Unit | RealNum ".*" Unit
//	         | "$" Number "," Number ":::" Diagram "$"
//	BaseTerm = const | "n_wire" Number | Spider | Function | ident
//	         | "(" Diagram ")"
//	Spider   = ("Z" | "X" | "(" ("Z" | "X") ")") Number Number RealNum
//	Function = ident "(" Arg { [","] Arg } ")" | ident Arg { Arg }
//	Arg      = Number | BaseTerm
//
// A BaseTerm argument may not be a bare identifier, which is read as a number.

var consts = map[lexer.Kind]ast.ConstKind{
	lexer.KindSwap:  ast.ConstSwap,
	lexer.KindEmpty: ast.ConstEmpty,
	lexer.KindWire:  ast.ConstWire,
	lexer.KindBox:   ast.ConstBox,
	lexer.KindCap:   ast.ConstCap,
	lexer.KindCup:   ast.ConstCup,
}

var postfix = map[lexer.Kind]ast.TransformKind{
	lexer.KindTranspose: ast.TransformTranspose,
	lexer.KindAdjoint:   ast.TransformAdjoint,
	lexer.KindConjugate: ast.TransformConjugate,
	lexer.KindFlip:      ast.TransformFlip,
}

func (obj *parser) diagram(pos int) []result[ast.Node] {
	return obj.memoNode(ruleDiagram, pos, func(pos int) []result[ast.Node] {
		swaps := 0
		for obj.kind(pos+swaps) == lexer.KindColorSwap {
			swaps++
		}

		rels := obj.relation(pos + swaps)
		if len(rels) == 0 && swaps > 0 {
			obj.need(pos+swaps, "Diagram")
		}

		out := lrec(rels, func(left result[ast.Node]) []result[ast.Node] {
			t, exists := postfix[obj.kind(left.next)]
			if !exists {
				return nil
			}
			return []result[ast.Node]{{
				val:  &ast.Transform{Transform: t, Node: left.val},
				next: left.next + 1,
			}}
		})

		for i := range out {
			for j := 0; j < swaps; j++ {
				out[i].val = &ast.Transform{
					Transform: ast.TransformColorSwap,
					Node:      out[i].val,
				}
			}
		}
		return out
	})
}

func (obj *parser) relation(pos int) []result[ast.Node] {
	return obj.memoNode(ruleRelation, pos, func(pos int) []result[ast.Node] {
		out := []result[ast.Node]{}
		lefts := obj.chain(pos)
		for _, left := range lefts {
			next := left.next
			var rel ast.Relation
			switch {
			case obj.is(next, lexer.KindPropTo):
				rel = ast.RelationProportional
				next++
				if obj.kind(next) == lexer.KindEq {
					rel = ast.RelationProportionalEq
					next++
				}
			case obj.is(next, lexer.KindEq):
				rel = ast.RelationEqual
				next++
			default:
				continue
			}

			rights := obj.chain(next)
			if len(rights) == 0 {
				obj.need(next, "Diagram")
			}
			for _, right := range rights {
				out = append(out, result[ast.Node]{
					val: &ast.PropTo{
						Left:     left.val,
						Right:    right.val,
						Relation: rel,
					},
					next: right.next,
				})
			}
		}
		return append(out, lefts...)
	})
}

func (obj *parser) chain(pos int) []result[ast.Node] {
	return obj.memoNode(ruleChain, pos, func(pos int) []result[ast.Node] {
		return lrec(obj.unit(pos), func(left result[ast.Node]) []result[ast.Node] {
			stack := obj.is(left.next, lexer.KindStack)
			if !stack && !obj.is(left.next, lexer.KindCompose) {
				return nil
			}
			rights := obj.unit(left.next + 1)
			if len(rights) == 0 {
				obj.need(left.next+1, "Diagram")
			}
			out := []result[ast.Node]{}
			for _, right := range rights {
				var n ast.Node = &ast.Compose{Left: left.val, Right: right.val}
				if stack {
					n = &ast.Stack{Left: left.val, Right: right.val}
				}
				out = append(out, result[ast.Node]{val: n, next: right.next})
			}
			return out
		})
	})
}

func (obj *parser) unit(pos int) []result[ast.Node] {
	return obj.memoNode(ruleUnit, pos, func(pos int) []result[ast.Node] {
		out := obj.baseTerm(pos)
		out = append(out, obj.nstack(pos)...)
		out = append(out, obj.cast(pos)...)
		return append(out, obj.scale(pos)...)
	})
}

func (obj *parser) nstack(pos int) []result[ast.Node] {
	out := []result[ast.Node]{}
	for _, n := range obj.number(pos) {
		one := obj.is(n.next, lexer.KindNStack1)
		if !one && !obj.is(n.next, lexer.KindNStack) {
			continue
		}
		inner := obj.unit(n.next + 1)
		if len(inner) == 0 {
			obj.need(n.next+1, "Diagram")
		}
		for _, r := range inner {
			var x ast.Node = &ast.NStack{N: n.val, Node: r.val}
			if one {
				x = &ast.NStack1{N: n.val, Node: r.val}
			}
			out = append(out, result[ast.Node]{val: x, next: r.next})
		}
	}
	return out
}

func (obj *parser) scale(pos int) []result[ast.Node] {
	out := []result[ast.Node]{}
	for _, c := range obj.realNum(pos) {
		if !obj.is(c.next, lexer.KindScale) {
			continue
		}
		inner := obj.unit(c.next + 1)
		if len(inner) == 0 {
			obj.need(c.next+1, "Diagram")
		}
		for _, r := range inner {
			out = append(out, result[ast.Node]{
				val:  &ast.Scale{Coefficient: c.val, Node: r.val},
				next: r.next,
			})
		}
	}
	return out
}

func (obj *parser) cast(pos int) []result[ast.Node] {
	out := []result[ast.Node]{}
	if !obj.is(pos, lexer.KindCast) {
		return out
	}
	ins := obj.number(pos + 1)
	if len(ins) == 0 {
		obj.need(pos+1, "Number")
	}
	for _, in := range ins {
		if !obj.is(in.next, lexer.KindComma) {
			obj.need(in.next, lexer.GlyphComma)
			continue
		}
		outs := obj.number(in.next + 1)
		if len(outs) == 0 {
			obj.need(in.next+1, "Number")
		}
		for _, o := range outs {
			if !obj.is(o.next, lexer.KindCastOf) {
				obj.need(o.next, lexer.GlyphCastOf)
				continue
			}
			inner := obj.diagram(o.next + 1)
			if len(inner) == 0 {
				obj.need(o.next+1, "Diagram")
			}
			for _, r := range inner {
				if !obj.is(r.next, lexer.KindCast) {
					obj.need(r.next, lexer.GlyphCast)
					continue
				}
				out = append(out, result[ast.Node]{
					val:  &ast.Cast{In: in.val, Out: o.val, Node: r.val},
					next: r.next + 1,
				})
			}
		}
	}
	return out
}

func (obj *parser) baseTerm(pos int) []result[ast.Node] {
	return obj.memoNode(ruleBaseTerm, pos, func(pos int) []result[ast.Node] {
		out := []result[ast.Node]{}

		if k, exists := consts[obj.kind(pos)]; exists {
			out = append(out, result[ast.Node]{
				val:  &ast.Const{Val: k},
				next: pos + 1,
			})
		}

		if obj.is(pos, lexer.KindNWire) {
			ns := obj.number(pos + 1)
			if len(ns) == 0 {
				obj.need(pos+1, "Number")
			}
			for _, n := range ns {
				out = append(out, result[ast.Node]{
					val:  &ast.NWire{N: n.val},
					next: n.next,
				})
			}
		}

		out = append(out, obj.spider(pos)...)

		if obj.is(pos, lexer.KindIdent) {
			name := obj.text(pos)
			for _, c := range obj.args(pos+1, nodeArgs, obj.nodeArg) {
				out = append(out, result[ast.Node]{
					val:  &ast.Function{Name: name, Args: c.val},
					next: c.next,
				})
			}
			out = append(out, result[ast.Node]{
				val:  &ast.Var{Name: name},
				next: pos + 1,
			})
		}

		if obj.is(pos, lexer.KindLParen) {
			inner := obj.diagram(pos + 1)
			for _, r := range inner {
				if !obj.is(r.next, lexer.KindRParen) {
					obj.need(r.next, lexer.GlyphRParen)
					continue
				}
				out = append(out, result[ast.Node]{val: r.val, next: r.next + 1})
			}
		}

		return out
	})
}

func (obj *parser) spider(pos int) []result[ast.Node] {
	out := []result[ast.Node]{}

	color, next := ast.ColorZ, pos
	switch {
	case obj.is(pos, lexer.KindZ):
		next = pos + 1
	case obj.is(pos, lexer.KindX):
		color, next = ast.ColorX, pos+1
	case obj.is(pos, lexer.KindLParen) && obj.is(pos+2, lexer.KindRParen):
		switch obj.kind(pos + 1) {
		case lexer.KindZ:
		case lexer.KindX:
			color = ast.ColorX
		default:
			return out
		}
		next = pos + 3
	default:
		return out
	}

	ins := obj.number(next)
	if len(ins) == 0 {
		obj.need(next, "Number")
	}
	for _, in := range ins {
		outs := obj.number(in.next)
		if len(outs) == 0 {
			obj.need(in.next, "Number")
		}
		for _, o := range outs {
			alphas := obj.realNum(o.next)
			if len(alphas) == 0 {
				obj.need(o.next, "RealNum")
			}
			for _, alpha := range alphas {
				out = append(out, result[ast.Node]{
					val: &ast.Spider{
						Color: color,
						In:    in.val,
						Out:   o.val,
						Alpha: alpha.val,
					},
					next: alpha.next,
				})
			}
		}
	}
	return out
}

// nodeArg parses a diagram argument or a numeric one. Longer ones come first,
// so that `g(x)` is read as a call before it is read as `g` and `(x)`.
func (obj *parser) nodeArg(pos int) []result[*arg] {
	out := obj.numArg(pos)
	for _, r := range obj.baseTerm(pos) {
		if _, ok := r.val.(*ast.Var); ok {
			continue // the numeric variable already covers it
		}
		out = append(out, result[*arg]{val: &arg{Node: r.val}, next: r.next})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].next > out[j].next })
	return out
}
