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

// Package geom contains the plain value types used to describe where things
// are drawn. The y axis grows downwards, as it does on a canvas.
package geom

import (
	"fmt"
)

// Coord is a point on the canvas.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String returns a short representation of the point.
func (obj Coord) String() string {
	return fmt.Sprintf("(%g, %g)", obj.X, obj.Y)
}

// Quad is a quadrilateral described by its four corners. Every constructor in
// this package builds an axis aligned rectangle, but nothing else requires it.
type Quad struct {
	TL Coord `json:"tl"`
	TR Coord `json:"tr"`
	BL Coord `json:"bl"`
	BR Coord `json:"br"`
}

// Rect builds the axis aligned rectangle with a top left corner at (x0, y0)
// and a bottom right corner at (x1, y1).
func Rect(x0, y0, x1, y1 float64) Quad {
	return Quad{
		TL: Coord{X: x0, Y: y0},
		TR: Coord{X: x1, Y: y0},
		BL: Coord{X: x0, Y: y1},
		BR: Coord{X: x1, Y: y1},
	}
}

// AtCenter builds the rectangle of the given width and height centered on c.
func AtCenter(c Coord, width, height float64) Quad {
	return Rect(c.X-width/2, c.Y-height/2, c.X+width/2, c.Y+height/2)
}

// Center returns the center of the quad.
func (obj Quad) Center() Coord {
	return Coord{
		X: (obj.TL.X + obj.TR.X + obj.BL.X + obj.BR.X) / 4,
		Y: (obj.TL.Y + obj.TR.Y + obj.BL.Y + obj.BR.Y) / 4,
	}
}

// Width returns the length of the top edge.
func (obj Quad) Width() float64 {
	return obj.TR.X - obj.TL.X
}

// Height returns the length of the left edge.
func (obj Quad) Height() float64 {
	return obj.BL.Y - obj.TL.Y
}

// Inset shrinks the quad by moving each edge inwards by the given amounts.
func (obj Quad) Inset(left, top, right, bottom float64) Quad {
	return Quad{
		TL: Coord{X: obj.TL.X + left, Y: obj.TL.Y + top},
		TR: Coord{X: obj.TR.X - right, Y: obj.TR.Y + top},
		BL: Coord{X: obj.BL.X + left, Y: obj.BL.Y - bottom},
		BR: Coord{X: obj.BR.X - right, Y: obj.BR.Y - bottom},
	}
}

// Corners returns the four corners in tl, tr, bl, br order.
func (obj Quad) Corners() []Coord {
	return []Coord{obj.TL, obj.TR, obj.BL, obj.BR}
}

// Contains returns true if every corner of other lies inside this axis aligned
// quad, allowing for an error of eps on each side.
func (obj Quad) Contains(other Quad, eps float64) bool {
	for _, c := range other.Corners() {
		if c.X < obj.TL.X-eps || c.X > obj.TR.X+eps {
			return false
		}
		if c.Y < obj.TL.Y-eps || c.Y > obj.BL.Y+eps {
			return false
		}
	}
	return true
}

// String returns a short representation of the quad.
func (obj Quad) String() string {
	return fmt.Sprintf("[%s %s %s %s]", obj.TL, obj.TR, obj.BL, obj.BR)
}
