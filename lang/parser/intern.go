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
	"fmt"
	"strings"

	"github.com/purpleidea/vizx/lang/ast"
)

// interner gives every distinct tree structure a small integer id. Two trees
// get the same id exactly when they print the same, but the printed form is
// never built. Numbers and diagrams share one id space. Children are looked up by pointer, so the cost of keying a tree
// does not depend on its depth once its children are known.
type interner struct {
	ids   map[string]int
	nums  map[ast.Num]int
	nodes map[ast.Node]int
}

func newInterner() *interner {
	return &interner{
		ids:   make(map[string]int),
		nums:  make(map[ast.Num]int),
		nodes: make(map[ast.Node]int),
	}
}

// intern returns the id for a key, allocating the next one if it is new.
func (obj *interner) intern(key string) int {
	if id, exists := obj.ids[key]; exists {
		return id
	}
	id := len(obj.ids)
	obj.ids[key] = id
	return id
}

// num returns the id of a number. The written text is ignored.
func (obj *interner) num(n ast.Num) int {
	if id, exists := obj.nums[n]; exists {
		return id
	}
	var key string
	switch x := n.(type) {
	case *ast.NumLiteral:
		key = "literal " + x.Val
	case *ast.NumVariable:
		key = "variable " + x.Name
	case *ast.NumRealConstant:
		key = "real " + x.Val
	case *ast.NumBinaryOp:
		key = fmt.Sprintf("binary %s %d %d", x.Op, obj.num(x.Left), obj.num(x.Right))
	case *ast.NumUnaryOp:
		key = fmt.Sprintf("unary %s %d", x.Op, obj.num(x.Operand))
	case *ast.NumFunctionCall:
		ids := []string{}
		for _, a := range x.Args {
			ids = append(ids, fmt.Sprintf("%d", obj.num(a)))
		}
		key = fmt.Sprintf("call %s %s", x.Name, strings.Join(ids, " "))
	default:
		key = fmt.Sprintf("%T %p", n, n)
	}
	id := obj.intern(key)
	obj.nums[n] = id
	return id
}

// node returns the id of a diagram. Layout fields are ignored.
func (obj *interner) node(n ast.Node) int {
	if id, exists := obj.nodes[n]; exists {
		return id
	}
	var key string
	switch x := n.(type) {
	case *ast.Const:
		key = fmt.Sprintf("const %d", x.Val)
	case *ast.Var:
		key = "var " + x.Name
	case *ast.Spider:
		key = fmt.Sprintf("spider %d %d %d %d", x.Color, obj.num(x.In), obj.num(x.Out), obj.num(x.Alpha))
	case *ast.NWire:
		key = fmt.Sprintf("nwire %d", obj.num(x.N))
	case *ast.Stack:
		key = fmt.Sprintf("stack %d %d", obj.node(x.Left), obj.node(x.Right))
	case *ast.Compose:
		key = fmt.Sprintf("compose %d %d", obj.node(x.Left), obj.node(x.Right))
	case *ast.NStack:
		key = fmt.Sprintf("nstack %d %d", obj.num(x.N), obj.node(x.Node))
	case *ast.NStack1:
		key = fmt.Sprintf("nstack1 %d %d", obj.num(x.N), obj.node(x.Node))
	case *ast.Cast:
		key = fmt.Sprintf("cast %d %d %d", obj.num(x.In), obj.num(x.Out), obj.node(x.Node))
	case *ast.PropTo:
		key = fmt.Sprintf("propto %d %d %d", x.Relation, obj.node(x.Left), obj.node(x.Right))
	case *ast.Transform:
		key = fmt.Sprintf("transform %d %d", x.Transform, obj.node(x.Node))
	case *ast.Scale:
		key = fmt.Sprintf("scale %d %d", obj.num(x.Coefficient), obj.node(x.Node))
	case *ast.Function:
		// a call with only numeric arguments prints like a numeric call
		ids := []string{}
		for _, a := range x.Args {
			if a.Num != nil {
				ids = append(ids, fmt.Sprintf("%d", obj.num(a.Num)))
				continue
			}
			ids = append(ids, fmt.Sprintf("%d", obj.node(a.Node)))
		}
		key = fmt.Sprintf("call %s %s", x.Name, strings.Join(ids, " "))
	default:
		key = fmt.Sprintf("%T %p", n, n)
	}
	id := obj.intern(key)
	obj.nodes[n] = id
	return id
}
