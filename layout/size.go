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
	"math"
	"unicode/utf8"

	"github.com/purpleidea/vizx/lang/ast"
	"github.com/purpleidea/vizx/lang/lexer"
	"github.com/purpleidea/vizx/util/errwrap"
)

// Size computes the extent of node and of everything below it. Extents are
// assigned, not accumulated, so running it twice on the same tree gives the
// same result as running it once.
func (obj *Config) Size(node ast.Node) error {
	if isNil(node) {
		return errwrap.Wrapf(ErrSizeMissingChild, "nil node")
	}
	for _, child := range node.Children() {
		if isNil(child) {
			return errwrap.Wrapf(ErrSizeMissingChild, "in %s", ast.KindName(node.Kind()))
		}
		if err := obj.Size(child); err != nil {
			return err
		}
	}

	hor, ver, err := obj.extent(node)
	if err != nil {
		return err
	}
	node.Layout().SetExtent(hor, ver)
	return nil
}

// extent returns the width and height of a node whose children are sized.
func (obj *Config) extent(node ast.Node) (float64, float64, error) {
	pad := obj.Pad

	switch x := node.(type) {
	case *ast.Const, *ast.Spider, *ast.Var, *ast.NWire:
		return obj.Base, obj.Base, nil

	case *ast.Stack:
		lh, lv, rh, rv, err := pair(x.Left, x.Right)
		if err != nil {
			return 0, 0, err
		}
		return math.Max(lh, rh) + 2*pad, lv + rv + 4*pad, nil

	case *ast.Compose:
		lh, lv, rh, rv, err := pair(x.Left, x.Right)
		if err != nil {
			return 0, 0, err
		}
		return lh + rh + 4*pad, math.Max(lv, rv) + 2*pad, nil

	case *ast.PropTo:
		lh, lv, rh, rv, err := pair(x.Left, x.Right)
		if err != nil {
			return 0, 0, err
		}
		return lh + rh + obj.PropTo + 4*pad, math.Max(lv, rv) + 2*pad, nil

	case *ast.NStack, *ast.NStack1, *ast.Transform:
		h, v, err := childExtent(node.Children()[0])
		if err != nil {
			return 0, 0, err
		}
		return h + obj.Label + 2*pad, v + 2*pad, nil

	case *ast.Scale:
		h, v, err := childExtent(x.Node)
		if err != nil {
			return 0, 0, err
		}
		return h + obj.ScaleLabel(x.Coefficient) + 2*pad, v + 2*pad, nil

	case *ast.Cast:
		h, v, err := childExtent(x.Node)
		if err != nil {
			return 0, 0, err
		}
		return h + 2*obj.Cast, v + 2*pad, nil

	case *ast.Function:
		hor, ver := 0.0, 0.0
		for _, arg := range x.Args {
			h, v, err := obj.slot(arg)
			if err != nil {
				return 0, 0, err
			}
			hor += h
			ver = math.Max(ver, v)
		}
		hor += float64(len(x.Args)+1)*pad + obj.Label
		return hor, ver + 2*pad, nil
	}

	return 0, 0, errwrap.Wrapf(ErrSizeUnknownKind, "%T", node)
}

// ScaleLabel returns the width of the gutter which holds the printed
// coefficient of a scale. It grows with the length of the text.
func (obj *Config) ScaleLabel(coefficient ast.Num) float64 {
	text := lexer.GlyphScale
	if coefficient != nil {
		text = coefficient.Expr() + " " + text
	}
	w := 0.2*obj.Cast*float64(utf8.RuneCountInString(text)) + obj.Pad
	return math.Max(w, obj.Label)
}

// slot returns the extent of one function argument. A numeric argument takes
// a fixed square.
func (obj *Config) slot(arg *ast.Arg) (float64, float64, error) {
	if arg == nil {
		return 0, 0, errwrap.Wrapf(ErrSizeMissingChild, "nil argument")
	}
	if arg.Node == nil {
		return obj.Label, obj.Label, nil
	}
	return childExtent(arg.Node)
}

func pair(left, right ast.Node) (float64, float64, float64, float64, error) {
	lh, lv, err := childExtent(left)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	rh, rv, err := childExtent(right)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return lh, lv, rh, rv, nil
}

// childExtent returns the stored extent of a child.
func childExtent(node ast.Node) (float64, float64, error) {
	if isNil(node) {
		return 0, 0, ErrSizeMissingChild
	}
	h, v, ok := node.Layout().Extent()
	if !ok {
		return 0, 0, errwrap.Wrapf(ErrSizeMissingChild, "%s was not sized", ast.KindName(node.Kind()))
	}
	return h, v, nil
}
