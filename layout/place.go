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
	"reflect"

	"github.com/purpleidea/vizx/lang/ast"
	"github.com/purpleidea/vizx/layout/geom"
	"github.com/purpleidea/vizx/util/errwrap"
)

// Place centers node inside box and then places every child inside the
// boundary of its parent. The tree must have been sized first.
func (obj *Config) Place(node ast.Node, box geom.Quad) error {
	if isNil(node) {
		return errwrap.Wrapf(ErrPlaceMissingExtent, "nil node")
	}
	hor, ver, ok := node.Layout().Extent()
	if !ok {
		return errwrap.Wrapf(ErrPlaceMissingExtent, "%s", ast.KindName(node.Kind()))
	}
	own := geom.AtCenter(box.Center(), hor, ver)
	node.Layout().SetBoundary(own)

	pad := obj.Pad
	x0, y0, x1, y1 := own.TL.X, own.TL.Y, own.BR.X, own.BR.Y

	switch x := node.(type) {
	case *ast.Const, *ast.Spider, *ast.Var, *ast.NWire:
		return nil

	case *ast.Stack:
		_, lv, _, rv, err := placed(x.Left, x.Right)
		if err != nil {
			return err
		}
		top := geom.Rect(x0+pad, y0+pad, x1-pad, y0+pad+lv)
		bottom := geom.Rect(x0+pad, y1-pad-rv, x1-pad, y1-pad)
		return obj.places(x.Left, top, x.Right, bottom)

	case *ast.Compose:
		return obj.sides(x.Left, x.Right, own)

	case *ast.PropTo:
		return obj.sides(x.Left, x.Right, own)

	case *ast.NStack, *ast.NStack1, *ast.Transform:
		return obj.Place(node.Children()[0], own.Inset(pad+obj.Label, pad, pad, pad))

	case *ast.Scale:
		return obj.Place(x.Node, own.Inset(pad+obj.ScaleLabel(x.Coefficient), pad, pad, pad))

	case *ast.Cast:
		return obj.Place(x.Node, own.Inset(obj.Cast, pad, obj.Cast, pad))

	case *ast.Function:
		x.Slots = []geom.Quad{}
		left := x0 + obj.Label
		for _, arg := range x.Args {
			left += pad
			w, _, err := obj.slot(arg)
			if err != nil {
				return errwrap.Wrapf(ErrPlaceMissingExtent, "%s", err)
			}
			column := geom.Rect(left, y0+pad, left+w, y1-pad)
			if arg.Node == nil {
				x.Slots = append(x.Slots, geom.AtCenter(column.Center(), obj.Label, obj.Label))
			} else {
				if err := obj.Place(arg.Node, column); err != nil {
					return err
				}
				x.Slots = append(x.Slots, *arg.Node.Layout().Boundary)
			}
			left += w
		}
		return nil
	}

	return errwrap.Wrapf(ErrPlaceUnknownKind, "%T", node)
}

// sides places two children next to each other, one against each side.
func (obj *Config) sides(left, right ast.Node, own geom.Quad) error {
	lh, _, rh, _, err := placed(left, right)
	if err != nil {
		return err
	}
	pad := obj.Pad
	x0, y0, x1, y1 := own.TL.X, own.TL.Y, own.BR.X, own.BR.Y
	l := geom.Rect(x0+pad, y0+pad, x0+pad+lh, y1-pad)
	r := geom.Rect(x1-pad-rh, y0+pad, x1-pad, y1-pad)
	return obj.places(left, l, right, r)
}

func (obj *Config) places(left ast.Node, l geom.Quad, right ast.Node, r geom.Quad) error {
	if err := obj.Place(left, l); err != nil {
		return err
	}
	return obj.Place(right, r)
}

// placed returns the extents of two children that are about to be placed.
func placed(left, right ast.Node) (float64, float64, float64, float64, error) {
	lh, lv, rh, rv, err := pair(left, right)
	if err != nil {
		return 0, 0, 0, 0, errwrap.Wrapf(ErrPlaceMissingExtent, "%s", err)
	}
	return lh, lv, rh, rv, nil
}

// Canvas returns the size of the drawing area for a sized root. Each extent is
// rounded up to a whole number of scale units and then a margin is added on
// both sides.
func (obj *Config) Canvas(root ast.Node) (float64, float64, error) {
	if isNil(root) {
		return 0, 0, errwrap.Wrapf(ErrPlaceMissingExtent, "nil node")
	}
	hor, ver, ok := root.Layout().Extent()
	if !ok {
		return 0, 0, errwrap.Wrapf(ErrPlaceMissingExtent, "%s", ast.KindName(root.Kind()))
	}
	w := math.Ceil(hor/obj.Scale)*obj.Scale + 2*obj.Margin
	h := math.Ceil(ver/obj.Scale)*obj.Scale + 2*obj.Margin
	return w, h, nil
}

// Layout runs both passes on root and returns the canvas size. The root is
// centered on the canvas.
func (obj *Config) Layout(root ast.Node) (float64, float64, error) {
	if err := obj.Size(root); err != nil {
		return 0, 0, err
	}
	w, h, err := obj.Canvas(root)
	if err != nil {
		return 0, 0, err
	}
	if err := obj.Place(root, geom.Rect(0, 0, w, h)); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// isNil also catches a typed nil pointer inside the interface.
func isNil(node ast.Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
