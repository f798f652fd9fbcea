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

// Package layout computes where every part of a diagram is drawn. The Size
// pass runs bottom up and stores the extent of every node, and the Place pass
// runs top down and stores the boundary of every node.
package layout

import (
	"math"

	"github.com/purpleidea/vizx/lang/interfaces"
	"github.com/purpleidea/vizx/util/errwrap"
)

const (
	// DefaultScale is the side of a single generator when viewing.
	DefaultScale = 100

	// ExportScale is the side of a single generator when exporting.
	ExportScale = 1000

	// MinScale is the smallest scale that is accepted.
	MinScale = 1

	// MaxScale is the largest scale that is accepted.
	MaxScale = 9999
)

const (
	// ErrBadScale is returned when a config is built from an unusable
	// scale.
	ErrBadScale = interfaces.Error("scale out of range")

	// ErrSizeUnknownKind is returned when a node has no sizing rule.
	ErrSizeUnknownKind = interfaces.Error("size: unknown kind")

	// ErrSizeMissingChild is returned when a child is absent or was not
	// sized before its parent.
	ErrSizeMissingChild = interfaces.Error("size: missing child")

	// ErrPlaceUnknownKind is returned when a node has no placement rule.
	ErrPlaceUnknownKind = interfaces.Error("place: unknown kind")

	// ErrPlaceMissingExtent is returned when a node is placed before it
	// was sized.
	ErrPlaceMissingExtent = interfaces.Error("place: missing extent")
)

// Config holds every absolute length used by the layout passes. It is derived
// from a single scale and never changes afterwards, so one run of the passes
// always sees a consistent set of values.
type Config struct {
	// Scale is the value the config was built from.
	Scale float64

	Base   float64 // side of a single generator
	Pad    float64 // gap between a node and its children
	PropTo float64 // room for the relation symbol
	Cast   float64 // side gutter of a cast
	Label  float64 // gutter for a name or a count, and numeric slot side
	Margin float64 // space around the whole canvas
	Text   float64 // padding around text
	Line   float64 // stroke width
}

// NewConfig builds the config for a scale, which must be between MinScale and
// MaxScale.
func NewConfig(scale float64) (*Config, error) {
	if scale < MinScale || scale > MaxScale || math.IsNaN(scale) {
		return nil, errwrap.Wrapf(ErrBadScale, "got %g, need %d to %d", scale, MinScale, MaxScale)
	}
	return &Config{
		Scale:  scale,
		Base:   1 * scale,
		Pad:    0.1 * scale,
		PropTo: 0.2 * scale,
		Cast:   0.3 * scale,
		Label:  0.7 * scale,
		Margin: 0.1 * scale,
		Text:   0.08 * scale,
		Line:   scale / 200,
	}, nil
}

// Default returns the config for DefaultScale.
func Default() *Config {
	c, _ := NewConfig(DefaultScale) // always in range
	return c
}
