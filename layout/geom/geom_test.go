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

package geom

import (
	"testing"
)

func TestRect0(t *testing.T) {
	q := Rect(10, 20, 110, 70)
	if q.Width() != 100 || q.Height() != 50 {
		t.Errorf("unexpected size: %g x %g", q.Width(), q.Height())
	}
	if c := q.Center(); c.X != 60 || c.Y != 45 {
		t.Errorf("unexpected center: %s", c)
	}
}

func TestAtCenter0(t *testing.T) {
	q := AtCenter(Coord{X: 50, Y: 50}, 20, 40)
	exp := Rect(40, 30, 60, 70)
	if q != exp {
		t.Errorf("got %s, expected %s", q, exp)
	}
}

func TestInset0(t *testing.T) {
	q := Rect(0, 0, 100, 100).Inset(10, 5, 20, 15)
	exp := Rect(10, 5, 80, 85)
	if q != exp {
		t.Errorf("got %s, expected %s", q, exp)
	}
}

func TestValueSemantics(t *testing.T) {
	a := Rect(0, 0, 10, 10)
	b := a
	b.TL.X = 5
	if a.TL.X != 0 {
		t.Errorf("copy aliased the original")
	}
}

func TestContains0(t *testing.T) {
	outer := Rect(0, 0, 100, 100)
	if !outer.Contains(Rect(10, 10, 90, 90), 0) {
		t.Errorf("expected inner quad to be contained")
	}
	if !outer.Contains(outer, 0) {
		t.Errorf("expected quad to contain itself")
	}
	if outer.Contains(Rect(-1, 10, 90, 90), 0) {
		t.Errorf("did not expect overlapping quad to be contained")
	}
	if !outer.Contains(Rect(-1e-9, 10, 90, 100+1e-9), 1e-6) {
		t.Errorf("expected quad within tolerance to be contained")
	}
}
