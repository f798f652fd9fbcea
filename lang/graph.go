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

package lang

import (
	"fmt"
	"strings"

	"github.com/purpleidea/vizx/lang/ast"
	"github.com/purpleidea/vizx/lang/lexer"
	"github.com/purpleidea/vizx/pgraph"
)

// vertex wraps a node so that it prints as a short graph label.
type vertex struct {
	node ast.Node
}

// String returns the label of the node. A leaf prints in full, and anything
// else prints as its kind with the parameters that aren't children.
func (obj *vertex) String() string {
	switch x := obj.node.(type) {
	case *ast.NStack:
		return fmt.Sprintf("%s %s", ast.NumAtom(x.N), lexer.GlyphNStack)
	case *ast.NStack1:
		return fmt.Sprintf("%s %s", ast.NumAtom(x.N), lexer.GlyphNStack1)
	case *ast.Cast:
		return fmt.Sprintf("%s %s %s %s", x.In, lexer.GlyphComma, x.Out, lexer.GlyphCastOf)
	case *ast.PropTo:
		return x.Relation.String()
	case *ast.Transform:
		return x.Transform.String()
	case *ast.Scale:
		return fmt.Sprintf("%s %s", ast.NumAtom(x.Coefficient), lexer.GlyphScale)
	case *ast.Function:
		return x.Name
	}
	if len(obj.node.Children()) > 0 {
		return obj.node.Kind().String()
	}
	return obj.node.String()
}

type edge struct {
	name string
}

func (obj *edge) String() string { return obj.name }

// edgeNames returns the name of the edge to each child of node.
func edgeNames(node ast.Node) []string {
	switch x := node.(type) {
	case *ast.Stack:
		return []string{"top", "bottom"}
	case *ast.Compose, *ast.PropTo:
		return []string{"left", "right"}
	case *ast.Function:
		names := []string{}
		for i, arg := range x.Args {
			if arg.Node != nil {
				names = append(names, fmt.Sprintf("arg #%d", i))
			}
		}
		return names
	}
	return []string{"node"}
}

// Graph returns the tree as a graph whose vertices print as short labels. The
// first vertex is the root, and the children of every vertex are in order.
func Graph(name string, root ast.Node) (*pgraph.Graph, error) {
	if root == nil {
		return nil, fmt.Errorf("empty tree")
	}
	g, err := pgraph.NewGraph(name)
	if err != nil {
		return nil, err
	}

	var add func(ast.Node) (pgraph.Vertex, error)
	add = func(node ast.Node) (pgraph.Vertex, error) {
		v := &vertex{node: node}
		g.AddVertex(v)
		children := node.Children()
		if len(children) == 0 {
			return v, nil
		}
		names := edgeNames(node)
		if len(names) != len(children) {
			return nil, fmt.Errorf("node %s has %d children", node.Kind(), len(children))
		}
		for i, child := range children {
			if child == nil {
				return nil, fmt.Errorf("node %s is missing child #%d", node.Kind(), i)
			}
			cv, err := add(child)
			if err != nil {
				return nil, err
			}
			g.AddEdge(v, cv, &edge{name: names[i]})
		}
		return v, nil
	}
	if _, err := add(root); err != nil {
		return nil, err
	}
	return g, nil
}

// Tree prints the graph as an indented outline, one vertex per line, starting
// from each root in turn.
func Tree(g *pgraph.Graph) (string, error) {
	var b strings.Builder
	for _, root := range g.Roots() {
		fn := func(v pgraph.Vertex, depth int) error {
			_, err := fmt.Fprintf(&b, "%s%s\n", strings.Repeat("\t", depth), v)
			return err
		}
		if err := g.Walk(root, fn); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
