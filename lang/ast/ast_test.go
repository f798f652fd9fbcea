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
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/purpleidea/vizx/layout/geom"
	"github.com/purpleidea/vizx/util"
)

func wire() Node { return &Const{Val: ConstWire} }

func spider(color Color, in, out, alpha string) *Spider {
	return &Spider{
		Color: color,
		In:    NewLiteral(in),
		Out:   NewLiteral(out),
		Alpha: NewVariable(alpha),
	}
}

func TestNumString0(t *testing.T) {
	type test struct { // an individual test
		name string
		num  Num
		exp  string
	}
	testCases := []test{}

	a, b, c := NewVariable("a"), NewVariable("b"), NewVariable("c")
	testCases = append(testCases, test{
		name: "literal",
		num:  NewLiteral("42"),
		exp:  "42",
	})
	testCases = append(testCases, test{
		name: "left nested sum",
		num:  NewBinaryOp(OpSub, NewBinaryOp(OpSub, a, b), c),
		exp:  "a - b - c",
	})
	testCases = append(testCases, test{
		name: "right nested sum",
		num:  NewBinaryOp(OpSub, a, NewBinaryOp(OpSub, b, c)),
		exp:  "a - (b - c)",
	})
	testCases = append(testCases, test{
		name: "product of sums",
		num:  NewBinaryOp(OpMul, NewBinaryOp(OpAdd, a, b), c),
		exp:  "(a + b) * c",
	})
	testCases = append(testCases, test{
		name: "sum of products",
		num:  NewBinaryOp(OpAdd, a, NewBinaryOp(OpMul, b, c)),
		exp:  "a + b * c",
	})
	testCases = append(testCases, test{
		name: "power binds loosest",
		num:  NewBinaryOp(OpExp, NewBinaryOp(OpAdd, a, b), c),
		exp:  "a + b ^ c",
	})
	testCases = append(testCases, test{
		name: "sum of a power",
		num:  NewBinaryOp(OpAdd, NewBinaryOp(OpExp, a, b), c),
		exp:  "(a ^ b) + c",
	})
	testCases = append(testCases, test{
		name: "negation",
		num:  NewUnaryOp(OpSub, NewBinaryOp(OpAdd, a, b)),
		exp:  "-(a + b)",
	})
	testCases = append(testCases, test{
		name: "root",
		num:  NewUnaryOp(OpRoot, NewLiteral("2")),
		exp:  "√2",
	})
	testCases = append(testCases, test{
		name: "call",
		num:  NewFunctionCall("f", a, NewBinaryOp(OpAdd, b, c)),
		exp:  "f(a, b + c)",
	})
	testCases = append(testCases, test{
		name: "real constant",
		num:  NewRealConstant("R1"),
		exp:  "R1",
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			if s := tc.num.String(); s != tc.exp {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: got: %s", index, s)
				t.Errorf("test #%d: exp: %s", index, tc.exp)
			}
			if tc.num.Expr() == "" {
				t.Errorf("test #%d: empty expr", index)
			}
		})
	}
}

func TestNumExpr0(t *testing.T) {
	n := &NumBinaryOp{
		Op:     OpMul,
		Left:   NewLiteral("2"),
		Right:  NewVariable("x"),
		Source: "2*x",
	}
	if s := n.Expr(); s != "2*x" {
		t.Errorf("expected the source text, got: %s", s)
	}
	n.Source = ""
	if s := n.Expr(); s != "2 * x" {
		t.Errorf("expected the canonical text, got: %s", s)
	}
}

func TestNodeString0(t *testing.T) {
	type test struct { // an individual test
		name string
		node Node
		exp  string
	}
	testCases := []test{}

	testCases = append(testCases, test{
		name: "wire",
		node: wire(),
		exp:  "—",
	})
	testCases = append(testCases, test{
		name: "spider",
		node: spider(ColorX, "1", "2", "α"),
		exp:  "X 1 2 α",
	})
	testCases = append(testCases, test{
		name: "spider with compound counts",
		node: &Spider{
			Color: ColorZ,
			In:    NewBinaryOp(OpAdd, NewVariable("n"), NewLiteral("1")),
			Out:   NewUnaryOp(OpSub, NewLiteral("1")),
			Alpha: NewUnaryOp(OpRoot, NewLiteral("2")),
		},
		exp: "Z (n + 1) (-1) √2",
	})
	testCases = append(testCases, test{
		name: "stack of compose",
		node: &Stack{
			Left:  &Compose{Left: wire(), Right: &Const{Val: ConstBox}},
			Right: &Var{Name: "D"},
		},
		exp: "((— ⟷ □) ↕ D)",
	})
	testCases = append(testCases, test{
		name: "nstack",
		node: &NStack{N: NewLiteral("3"), Node: spider(ColorZ, "1", "1", "0")},
		exp:  "(3 ⇑ Z 1 1 0)",
	})
	testCases = append(testCases, test{
		name: "nstack1",
		node: &NStack1{N: NewVariable("n"), Node: wire()},
		exp:  "(n ↑ —)",
	})
	testCases = append(testCases, test{
		name: "cast",
		node: &Cast{In: NewLiteral("2"), Out: NewLiteral("2"), Node: spider(ColorX, "1", "1", "0")},
		exp:  "$ 2 , 2 ::: X 1 1 0 $",
	})
	testCases = append(testCases, test{
		name: "propto equal",
		node: &PropTo{Left: wire(), Right: &Const{Val: ConstEmpty}, Relation: RelationProportionalEq},
		exp:  "(— ∝= ⦰)",
	})
	testCases = append(testCases, test{
		name: "colorswap and adjoint",
		node: &Transform{
			Transform: TransformAdjoint,
			Node:      &Transform{Transform: TransformColorSwap, Node: wire()},
		},
		exp: "((⊙ —) †)",
	})
	testCases = append(testCases, test{
		name: "scale",
		node: &Scale{Coefficient: NewUnaryOp(OpDiv, NewLiteral("2")), Node: wire()},
		exp:  "(/2 .* —)",
	})
	testCases = append(testCases, test{
		name: "function",
		node: &Function{
			Name: "f",
			Args: []*Arg{
				{Num: NewLiteral("1")},
				{Node: &Cast{In: NewLiteral("1"), Out: NewLiteral("1"), Node: wire()}},
				{Node: &Stack{Left: wire(), Right: wire()}},
			},
		},
		exp: "f(1, ($ 1 , 1 ::: — $), (— ↕ —))",
	})
	testCases = append(testCases, test{
		name: "nwire",
		node: &NWire{N: NewVariable("n")},
		exp:  "n_wire n",
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			if s := tc.node.String(); s != tc.exp {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: got: %s", index, s)
				t.Errorf("test #%d: exp: %s", index, tc.exp)
			}
		})
	}
}

func TestApplyOrder0(t *testing.T) {
	root := &Compose{
		Left:  &NStack{N: NewLiteral("2"), Node: wire()},
		Right: &Var{Name: "D"},
	}
	kinds := []string{}
	for _, n := range Nodes(root) {
		kinds = append(kinds, n.Kind().String())
	}
	exp := "Const NStack Var Compose"
	if s := strings.Join(kinds, " "); s != exp {
		t.Errorf("got: %s, exp: %s", s, exp)
	}
}

func TestApplyError0(t *testing.T) {
	root := &Stack{Left: wire(), Right: wire()}
	count := 0
	err := root.Apply(func(n Node) error {
		count++
		return fmt.Errorf("stop")
	})
	if err == nil || count != 1 {
		t.Errorf("expected the walk to stop at the first error, ran %d times", count)
	}
}

func TestCopy0(t *testing.T) {
	orig := &Stack{Left: wire(), Right: spider(ColorZ, "1", "1", "0")}
	orig.SetExtent(120, 240)
	orig.SetBoundary(geom.Rect(0, 0, 120, 240))

	cp := orig.Copy()
	if cp.String() != orig.String() {
		t.Errorf("copy printed differently: %s", cp)
	}
	if _, _, ok := cp.Layout().Extent(); ok {
		t.Errorf("copy should not be sized")
	}
	if cp.Layout().Boundary != nil {
		t.Errorf("copy should not be placed")
	}
	cp.(*Stack).Left = &Const{Val: ConstBox}
	if orig.Left.(*Const).Val != ConstWire {
		t.Errorf("copy aliased the original")
	}
}

func TestKindName0(t *testing.T) {
	if s := KindName(KindCompose); s != "compose" {
		t.Errorf("unexpected kind name: %s", s)
	}
	if s := KindName(KindPropTo); s != "prop_to" {
		t.Errorf("unexpected kind name: %s", s)
	}
}

func TestMarshalJSON0(t *testing.T) {
	root := &Compose{
		Left:  spider(ColorZ, "1", "1", "α"),
		Right: wire(),
	}
	root.SetExtent(240, 120)
	b, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal failed with: %+v", err)
	}

	m := map[string]interface{}{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal failed with: %+v", err)
	}
	if m["kind"] != "compose" {
		t.Errorf("unexpected kind: %v", m["kind"])
	}
	if m["hor_len"] != 240.0 || m["ver_len"] != 120.0 {
		t.Errorf("unexpected extent: %v x %v", m["hor_len"], m["ver_len"])
	}
	if _, exists := m["boundary"]; exists {
		t.Errorf("unplaced node should not have a boundary")
	}
	left, ok := m["left"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing left child in: %s", string(b))
	}
	if left["kind"] != "spider" || left["color"] != "Z" {
		t.Errorf("unexpected left child: %v", left)
	}
	alpha, ok := left["alpha"].(map[string]interface{})
	if !ok || alpha["kind"] != "variable" || alpha["expr"] != "α" {
		t.Errorf("unexpected angle: %v", left["alpha"])
	}
	right, ok := m["right"].(map[string]interface{})
	if !ok || right["val"] != "Wire" {
		t.Errorf("unexpected right child: %v", m["right"])
	}
}
