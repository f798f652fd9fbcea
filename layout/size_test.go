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

package layout

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/purpleidea/vizx/lang/ast"
	"github.com/purpleidea/vizx/util"
)

func TestSize0(t *testing.T) {
	type test struct { // an individual test
		name string
		code string
		hor  float64
		ver  float64
	}
	testCases := []test{}
	// NOTE: all of these use the default scale, so a generator is 100 wide
	// and the padding is 10.

	testCases = append(testCases, test{
		name: "wire",
		code: `wire`,
		hor:  100,
		ver:  100,
	})
	testCases = append(testCases, test{
		name: "spider",
		code: `Z 1 1 0`,
		hor:  100,
		ver:  100,
	})
	testCases = append(testCases, test{
		name: "variable",
		code: `D`,
		hor:  100,
		ver:  100,
	})
	testCases = append(testCases, test{
		name: "n_wire is one wire",
		code: `n_wire 3`,
		hor:  100,
		ver:  100,
	})
	testCases = append(testCases, test{
		name: "stack",
		code: `wire ↕ wire`,
		hor:  120,
		ver:  240,
	})
	testCases = append(testCases, test{
		name: "compose",
		code: `wire ⟷ wire`,
		hor:  240,
		ver:  120,
	})
	testCases = append(testCases, test{
		name: "compose of a stack",
		code: `(wire ↕ wire) ⟷ wire`,
		hor:  260,
		ver:  260,
	})
	testCases = append(testCases, test{
		name: "nstack",
		code: `2 ⇑ wire`,
		hor:  190,
		ver:  120,
	})
	testCases = append(testCases, test{
		name: "nstack1",
		code: `n ↑ wire`,
		hor:  190,
		ver:  120,
	})
	testCases = append(testCases, test{
		name: "transform",
		code: `wire †`,
		hor:  190,
		ver:  120,
	})
	testCases = append(testCases, test{
		name: "cast",
		code: `$1,1::: wire$`,
		hor:  160,
		ver:  120,
	})
	testCases = append(testCases, test{
		name: "propto",
		code: `wire ∝ wire`,
		hor:  260,
		ver:  120,
	})
	testCases = append(testCases, test{
		name: "short scale uses the minimum label",
		code: `2 .* wire`,
		hor:  190,
		ver:  120,
	})
	testCases = append(testCases, test{
		name: "long scale grows with the text",
		code: `(1 + 2 + 3 + 4 + 5) .* wire`,
		hor:  262, // 100 + (22 * 6 + 10) + 20
		ver:  120,
	})
	testCases = append(testCases, test{
		name: "function of a node and a number",
		code: `f(wire, 1)`,
		hor:  270, // 100 + 70 + 3 * 10 + 70
		ver:  120,
	})
	testCases = append(testCases, test{
		name: "function of a number",
		code: `f 1`,
		hor:  160,
		ver:  90,
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if tc.name == "" {
			t.Errorf("test #%d: not named", index)
			continue
		}
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)

		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			root := mustParse(t, tc.code)
			if err := Default().Size(root); err != nil {
				t.Errorf("test #%d: size failed with: %+v", index, err)
				return
			}
			hor, ver, ok := root.Layout().Extent()
			if !ok {
				t.Errorf("test #%d: root was not sized", index)
				return
			}
			if !same(hor, tc.hor) || !same(ver, tc.ver) {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: got: %g x %g", index, hor, ver)
				t.Errorf("test #%d: exp: %g x %g", index, tc.hor, tc.ver)
			}
		})
	}
}

func TestSizeStack0(t *testing.T) {
	// the height of a stack never depends on the widths of its sides
	c := Default()
	sides := []string{`wire`, `wire ⟷ wire`, `2 ⇑ swap`, `f(box, 1, 2)`, `$1,1::: cap$`}
	for _, l := range sides {
		for _, r := range sides {
			left, right := mustParse(t, l), mustParse(t, r)
			stack := &ast.Stack{Left: left, Right: right}
			compose := &ast.Compose{Left: left.Copy(), Right: right.Copy()}
			for _, n := range []ast.Node{stack, compose} {
				if err := c.Size(n); err != nil {
					t.Fatalf("size failed with: %+v", err)
				}
			}
			_, lv, _ := left.Layout().Extent()
			_, rv, _ := right.Layout().Extent()
			if _, v, _ := stack.Layout().Extent(); !same(v, lv+rv+4*c.Pad) {
				t.Errorf("bad stack height for `%s` and `%s`: %g", l, r, v)
			}
			lh, _, _ := compose.Left.Layout().Extent()
			rh, _, _ := compose.Right.Layout().Extent()
			if h, _, _ := compose.Layout().Extent(); !same(h, lh+rh+4*c.Pad) {
				t.Errorf("bad compose width for `%s` and `%s`: %g", l, r, h)
			}
		}
	}
}

func TestSizeIdempotent0(t *testing.T) {
	c := Default()
	root := mustParse(t, `⊙ (2 ⇑ (wire ↕ Z 1 1 0)) ⟷ f(box, n) ∝ $1,1::: cap$`)

	fresh := root.Copy()
	if err := c.Size(fresh); err != nil {
		t.Fatalf("size failed with: %+v", err)
	}
	h1, v1, _ := fresh.Layout().Extent()

	// sizing the same tree again must not add the padding twice
	if err := c.Size(fresh); err != nil {
		t.Fatalf("size failed with: %+v", err)
	}
	h2, v2, _ := fresh.Layout().Extent()

	again := root.Copy()
	if err := c.Size(again); err != nil {
		t.Fatalf("size failed with: %+v", err)
	}
	h3, v3, _ := again.Layout().Extent()

	if !same(h1, h2) || !same(v1, v2) || !same(h1, h3) || !same(v1, v3) {
		t.Errorf("sizes differ: %gx%g, %gx%g, %gx%g", h1, v1, h2, v2, h3, v3)
	}
	if _, _, ok := root.Layout().Extent(); ok {
		t.Errorf("sizing a copy must not touch the original")
	}
}

func TestSizeScale0(t *testing.T) {
	// every length is proportional to the scale
	root := mustParse(t, `wire ⟷ f(wire, 1) ↕ 2 .* cap`)
	small, err := NewConfig(DefaultScale)
	if err != nil {
		t.Fatalf("config failed with: %+v", err)
	}
	large, err := NewConfig(ExportScale)
	if err != nil {
		t.Fatalf("config failed with: %+v", err)
	}
	a, b := root.Copy(), root.Copy()
	if err := small.Size(a); err != nil {
		t.Fatalf("size failed with: %+v", err)
	}
	if err := large.Size(b); err != nil {
		t.Fatalf("size failed with: %+v", err)
	}
	ah, av, _ := a.Layout().Extent()
	bh, bv, _ := b.Layout().Extent()
	if math.Abs(ah*10-bh) > 1e-6 || math.Abs(av*10-bv) > 1e-6 {
		t.Errorf("unexpected ratio: %gx%g vs %gx%g", ah, av, bh, bv)
	}
}

func TestSizeError0(t *testing.T) {
	c := Default()
	testCases := []ast.Node{
		nil,
		&ast.Stack{Left: &ast.Const{Val: ast.ConstWire}},
		&ast.Compose{Right: &ast.Const{Val: ast.ConstWire}},
		&ast.Transform{Transform: ast.TransformAdjoint},
		&ast.Cast{In: ast.NewLiteral("1"), Out: ast.NewLiteral("1")},
	}
	for index, node := range testCases {
		err := c.Size(node)
		if !errors.Is(err, ErrSizeMissingChild) {
			t.Errorf("test #%d: expected a missing child error, got: %+v", index, err)
		}
	}
}
