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

// Package ast contains the abstract syntax tree of the diagram language. The
// Node and Num interfaces are sealed, so the set of variants is closed and
// every pass can switch over them exhaustively.
package ast

import (
	"fmt"

	"github.com/purpleidea/vizx/layout/geom"
	"github.com/purpleidea/vizx/lang/lexer"
)

// Kind is the variant tag of a Node.
type Kind int

// These are all the node kinds.
const (
	KindConst Kind = iota
	KindSpider
	KindVar
	KindStack
	KindCompose
	KindNStack
	KindNStack1
	KindCast
	KindPropTo
	KindTransform
	KindScale
	KindFunction
	KindNWire
)

var kindNames = []string{
	"Const",
	"Spider",
	"Var",
	"Stack",
	"Compose",
	"NStack",
	"NStack1",
	"Cast",
	"PropTo",
	"Transform",
	"Scale",
	"Function",
	"NWire",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ConstKind is one of the fixed generators.
type ConstKind int

// These are the fixed generators.
const (
	ConstSwap ConstKind = iota
	ConstEmpty
	ConstWire
	ConstBox
	ConstCap
	ConstCup
)

var constNames = []string{"Swap", "Empty", "Wire", "Box", "Cap", "Cup"}

var constGlyphs = []string{
	lexer.GlyphSwap,
	lexer.GlyphEmpty,
	lexer.GlyphWire,
	lexer.GlyphBox,
	lexer.GlyphCap,
	lexer.GlyphCup,
}

// String returns the name of the generator.
func (k ConstKind) String() string { return constNames[k] }

// Glyph returns the symbol of the generator.
func (k ConstKind) Glyph() string { return constGlyphs[k] }

// MarshalText encodes the generator by name.
func (k ConstKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Color is the color of a spider.
type Color int

// Spider colors.
const (
	ColorZ Color = iota // green
	ColorX              // red
)

// String returns the letter of the color.
func (c Color) String() string {
	if c == ColorX {
		return "X"
	}
	return "Z"
}

// MarshalText encodes the color by letter.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// TransformKind is the modifier of a Transform.
type TransformKind int

// Transform kinds. ColorSwap is a prefix, all the others are postfix.
const (
	TransformTranspose TransformKind = iota
	TransformAdjoint
	TransformConjugate
	TransformColorSwap
	TransformFlip
)

var transformNames = []string{"Transpose", "Adjoint", "Conjugate", "ColorSwap", "Flip"}

var transformGlyphs = []string{
	lexer.GlyphTranspose,
	lexer.GlyphAdjoint,
	lexer.GlyphConjugate,
	lexer.GlyphColorSwap,
	lexer.GlyphFlip,
}

// String returns the name of the transform.
func (k TransformKind) String() string { return transformNames[k] }

// Glyph returns the symbol of the transform.
func (k TransformKind) Glyph() string { return transformGlyphs[k] }

// MarshalText encodes the transform by name.
func (k TransformKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Relation is the relation drawn between the two sides of a PropTo.
type Relation int

// Relations.
const (
	RelationProportional   Relation = iota // ∝
	RelationProportionalEq                 // ∝=
	RelationEqual                          // =
)

// String returns the symbol of the relation.
func (r Relation) String() string {
	switch r {
	case RelationProportionalEq:
		return lexer.GlyphPropTo + lexer.GlyphEq
	case RelationEqual:
		return lexer.GlyphEq
	}
	return lexer.GlyphPropTo
}

// MarshalText encodes the relation by symbol.
func (r Relation) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Area is the layout data attached to a node. The sizing pass sets the extent
// and the placement pass sets the boundary.
type Area struct {
	HorLen   float64    `json:"hor_len"`
	VerLen   float64    `json:"ver_len"`
	Boundary *geom.Quad `json:"boundary,omitempty"`

	sized bool
}

// Layout returns the layout data of the node.
func (obj *Area) Layout() *Area { return obj }

// SetExtent stores the required width and height.
func (obj *Area) SetExtent(hor, ver float64) {
	obj.HorLen, obj.VerLen = hor, ver
	obj.sized = true
}

// Extent returns the required width and height, and false if they were never
// set.
func (obj *Area) Extent() (float64, float64, bool) {
	return obj.HorLen, obj.VerLen, obj.sized
}

// SetBoundary stores the final position.
func (obj *Area) SetBoundary(q geom.Quad) {
	obj.Boundary = &q
}

// Node is a diagram expression.
type Node interface {
	fmt.Stringer // canonical form, which parses back to an equal tree

	// Kind returns the variant tag.
	Kind() Kind

	// Layout returns the layout data of this node.
	Layout() *Area

	// Children returns the diagram children in order. Numeric arguments
	// are not included.
	Children() []Node

	// Apply is a general purpose iterator method that operates on any AST
	// node. It is not used as the primary AST traversal function because
	// it is less readable and easy to reason about than manually
	// implementing traversal for each node. Nevertheless, it is a useful
	// facility for operations that might only apply to a select number of
	// node types, since they won't need extra noop iterators... Children
	// are visited before their parent.
	Apply(fn func(Node) error) error

	// Copy returns a deep copy of the tree without any layout data.
	Copy() Node

	// node seals the interface.
	node()
}

// Const is one of the fixed generators.
type Const struct {
	Area
	Val ConstKind `json:"val"`
}

// Spider is a Z or X spider with an input count, an output count and an angle.
type Spider struct {
	Area
	Color Color `json:"color"`
	In    Num   `json:"in"`
	Out   Num   `json:"out"`
	Alpha Num   `json:"alpha"`
}

// Var is a named placeholder diagram.
type Var struct {
	Area
	Name string `json:"name"`
}

// Stack places Left above Right.
type Stack struct {
	Area
	Left  Node `json:"left"`
	Right Node `json:"right"`
}

// Compose places Left before Right.
type Compose struct {
	Area
	Left  Node `json:"left"`
	Right Node `json:"right"`
}

// NStack is N copies of Node stacked. Only one copy is kept and it is drawn
// with a multiplicative label.
type NStack struct {
	Area
	N    Num  `json:"n"`
	Node Node `json:"node"`
}

// NStack1 is the variant of NStack whose copies are counted from one.
type NStack1 struct {
	Area
	N    Num  `json:"n"`
	Node Node `json:"node"`
}

// Cast asserts that Node has In inputs and Out outputs.
type Cast struct {
	Area
	In   Num  `json:"in"`
	Out  Num  `json:"out"`
	Node Node `json:"node"`
}

// PropTo relates two diagrams.
type PropTo struct {
	Area
	Left     Node     `json:"left"`
	Right    Node     `json:"right"`
	Relation Relation `json:"relation"`
}

// Transform applies a structural modifier to Node.
type Transform struct {
	Area
	Transform TransformKind `json:"transform"`
	Node      Node          `json:"node"`
}

// Scale multiplies Node by a scalar coefficient.
type Scale struct {
	Area
	Coefficient Num  `json:"coefficient"`
	Node        Node `json:"node"`
}

// Arg is a single argument of a Function. Exactly one field is set.
type Arg struct {
	Num  Num  `json:"num"`
	Node Node `json:"node"`
}

// Function is a named diagram built from arguments.
type Function struct {
	Area
	Name string `json:"name"`
	Args []*Arg `json:"args"`

	// Slots holds the boundary of every argument, in order. It is set by
	// the placement pass, and is the only position numeric arguments get.
	Slots []geom.Quad `json:"slots,omitempty"`
}

// NWire is n parallel wires, drawn as one wire with a label.
type NWire struct {
	Area
	N Num `json:"n"`
}

func (obj *Const) node()     {}
func (obj *Spider) node()    {}
func (obj *Var) node()       {}
func (obj *Stack) node()     {}
func (obj *Compose) node()   {}
func (obj *NStack) node()    {}
func (obj *NStack1) node()   {}
func (obj *Cast) node()      {}
func (obj *PropTo) node()    {}
func (obj *Transform) node() {}
func (obj *Scale) node()     {}
func (obj *Function) node()  {}
func (obj *NWire) node()     {}

// Kind returns the variant tag.
func (obj *Const) Kind() Kind { return KindConst }

// Kind returns the variant tag.
func (obj *Spider) Kind() Kind { return KindSpider }

// Kind returns the variant tag.
func (obj *Var) Kind() Kind { return KindVar }

// Kind returns the variant tag.
func (obj *Stack) Kind() Kind { return KindStack }

// Kind returns the variant tag.
func (obj *Compose) Kind() Kind { return KindCompose }

// Kind returns the variant tag.
func (obj *NStack) Kind() Kind { return KindNStack }

// Kind returns the variant tag.
func (obj *NStack1) Kind() Kind { return KindNStack1 }

// Kind returns the variant tag.
func (obj *Cast) Kind() Kind { return KindCast }

// Kind returns the variant tag.
func (obj *PropTo) Kind() Kind { return KindPropTo }

// Kind returns the variant tag.
func (obj *Transform) Kind() Kind { return KindTransform }

// Kind returns the variant tag.
func (obj *Scale) Kind() Kind { return KindScale }

// Kind returns the variant tag.
func (obj *Function) Kind() Kind { return KindFunction }

// Kind returns the variant tag.
func (obj *NWire) Kind() Kind { return KindNWire }

// Children returns nothing since this is a leaf.
func (obj *Const) Children() []Node { return nil }

// Children returns nothing since this is a leaf.
func (obj *Spider) Children() []Node { return nil }

// Children returns nothing since this is a leaf.
func (obj *Var) Children() []Node { return nil }

// Children returns both sides.
func (obj *Stack) Children() []Node { return []Node{obj.Left, obj.Right} }

// Children returns both sides.
func (obj *Compose) Children() []Node { return []Node{obj.Left, obj.Right} }

// Children returns the repeated node.
func (obj *NStack) Children() []Node { return []Node{obj.Node} }

// Children returns the repeated node.
func (obj *NStack1) Children() []Node { return []Node{obj.Node} }

// Children returns the inner node.
func (obj *Cast) Children() []Node { return []Node{obj.Node} }

// Children returns both sides.
func (obj *PropTo) Children() []Node { return []Node{obj.Left, obj.Right} }

// Children returns the inner node.
func (obj *Transform) Children() []Node { return []Node{obj.Node} }

// Children returns the inner node.
func (obj *Scale) Children() []Node { return []Node{obj.Node} }

// Children returns the diagram arguments.
func (obj *Function) Children() []Node {
	nodes := []Node{}
	for _, arg := range obj.Args {
		if arg.Node != nil {
			nodes = append(nodes, arg.Node)
		}
	}
	return nodes
}

// Children returns nothing since this is a leaf.
func (obj *NWire) Children() []Node { return nil }

// apply runs fn on every child and then on the node itself.
func apply(self Node, fn func(Node) error) error {
	for _, child := range self.Children() {
		if err := child.Apply(fn); err != nil {
			return err
		}
	}
	return fn(self)
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *Const) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *Spider) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *Var) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *Stack) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *Compose) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *NStack) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *NStack1) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *Cast) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *PropTo) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *Transform) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *Scale) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *Function) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *NWire) Apply(fn func(Node) error) error { return apply(obj, fn) }

// Copy returns a deep copy of the tree without any layout data.
func (obj *Const) Copy() Node { return &Const{Val: obj.Val} }

// Copy returns a deep copy of the tree without any layout data.
func (obj *Spider) Copy() Node {
	return &Spider{
		Color: obj.Color,
		In:    obj.In.Copy(),
		Out:   obj.Out.Copy(),
		Alpha: obj.Alpha.Copy(),
	}
}

// Copy returns a deep copy of the tree without any layout data.
func (obj *Var) Copy() Node { return &Var{Name: obj.Name} }

// Copy returns a deep copy of the tree without any layout data.
func (obj *Stack) Copy() Node {
	return &Stack{Left: obj.Left.Copy(), Right: obj.Right.Copy()}
}

// Copy returns a deep copy of the tree without any layout data.
func (obj *Compose) Copy() Node {
	return &Compose{Left: obj.Left.Copy(), Right: obj.Right.Copy()}
}

// Copy returns a deep copy of the tree without any layout data.
func (obj *NStack) Copy() Node {
	return &NStack{N: obj.N.Copy(), Node: obj.Node.Copy()}
}

// Copy returns a deep copy of the tree without any layout data.
func (obj *NStack1) Copy() Node {
	return &NStack1{N: obj.N.Copy(), Node: obj.Node.Copy()}
}

// Copy returns a deep copy of the tree without any layout data.
func (obj *Cast) Copy() Node {
	return &Cast{In: obj.In.Copy(), Out: obj.Out.Copy(), Node: obj.Node.Copy()}
}

// Copy returns a deep copy of the tree without any layout data.
func (obj *PropTo) Copy() Node {
	return &PropTo{
		Left:     obj.Left.Copy(),
		Right:    obj.Right.Copy(),
		Relation: obj.Relation,
	}
}

// Copy returns a deep copy of the tree without any layout data.
func (obj *Transform) Copy() Node {
	return &Transform{Transform: obj.Transform, Node: obj.Node.Copy()}
}

// Copy returns a deep copy of the tree without any layout data.
func (obj *Scale) Copy() Node {
	return &Scale{Coefficient: obj.Coefficient.Copy(), Node: obj.Node.Copy()}
}

// Copy returns a deep copy of the tree without any layout data.
func (obj *Function) Copy() Node {
	args := []*Arg{}
	for _, arg := range obj.Args {
		x := &Arg{}
		if arg.Num != nil {
			x.Num = arg.Num.Copy()
		}
		if arg.Node != nil {
			x.Node = arg.Node.Copy()
		}
		args = append(args, x)
	}
	return &Function{Name: obj.Name, Args: args}
}

// Copy returns a deep copy of the tree without any layout data.
func (obj *NWire) Copy() Node { return &NWire{N: obj.N.Copy()} }

// Nodes returns every node of the tree, children before their parents.
func Nodes(root Node) []Node {
	nodes := []Node{}
	_ = root.Apply(func(n Node) error { // never errors
		nodes = append(nodes, n)
		return nil
	})
	return nodes
}
