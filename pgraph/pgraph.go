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

// Package pgraph represents the internal "pointer graph" that we use.
package pgraph

import (
	"fmt"

	"github.com/purpleidea/vizx/util/errwrap"
)

// Vertex is the primary vertex interface in this library. A vertex is
// identified by its value, so it should be a pointer.
type Vertex interface {
	fmt.Stringer // String() string
}

// Edge is the primary edge interface in this library.
type Edge interface {
	fmt.Stringer // String() string
}

// Graph is the graph structure in this library. Unlike a map based graph, it
// remembers the order in which vertices and edges were added, so that every
// walk over it is deterministic.
type Graph struct {
	Name string

	adjacency map[Vertex]map[Vertex]Edge // *Vertex -> *Vertex (edge)
	vertices  []Vertex                   // in insertion order
	outgoing  map[Vertex][]Vertex        // in insertion order
}

// NewGraph builds a new graph.
func NewGraph(name string) (*Graph, error) {
	if name == "" {
		return nil, fmt.Errorf("empty graph name")
	}
	g := &Graph{Name: name}
	g.init()
	return g, nil
}

func (g *Graph) init() {
	if g.adjacency == nil {
		g.adjacency = make(map[Vertex]map[Vertex]Edge)
	}
	if g.outgoing == nil {
		g.outgoing = make(map[Vertex][]Vertex)
	}
}

// GetName returns the name of the graph.
func (g *Graph) GetName() string {
	return g.Name
}

// String makes the graph pretty print.
func (g *Graph) String() string {
	return fmt.Sprintf("%s: Vertices(%d), Edges(%d)", g.Name, g.NumVertices(), g.NumEdges())
}

// AddVertex uses variadic input to add all listed vertices to the graph. A
// vertex which is already present keeps its position.
func (g *Graph) AddVertex(xv ...Vertex) {
	g.init()
	for _, v := range xv {
		if _, exists := g.adjacency[v]; exists {
			continue
		}
		g.adjacency[v] = make(map[Vertex]Edge)
		g.vertices = append(g.vertices, v)
	}
}

// AddEdge adds a directed edge to the graph from v1 to v2. Both vertices are
// added if they are missing. An existing edge between them is replaced.
func (g *Graph) AddEdge(v1, v2 Vertex, e Edge) {
	g.AddVertex(v1, v2)
	if _, exists := g.adjacency[v1][v2]; !exists {
		g.outgoing[v1] = append(g.outgoing[v1], v2)
	}
	g.adjacency[v1][v2] = e
}

// HasVertex returns if the input vertex exists in the graph.
func (g *Graph) HasVertex(v Vertex) bool {
	_, exists := g.adjacency[v]
	return exists
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int {
	return len(g.vertices)
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int {
	count := 0
	for _, v := range g.vertices {
		count += len(g.outgoing[v])
	}
	return count
}

// Vertices returns every vertex in the order it was added.
func (g *Graph) Vertices() []Vertex {
	return append([]Vertex{}, g.vertices...)
}

// OutgoingGraphVertices returns every vertex that v points to, in the order
// the edges were added.
func (g *Graph) OutgoingGraphVertices(v Vertex) []Vertex {
	return append([]Vertex{}, g.outgoing[v]...)
}

// IncomingGraphVertices returns every vertex that points to v.
func (g *Graph) IncomingGraphVertices(v Vertex) []Vertex {
	s := []Vertex{}
	for _, v1 := range g.vertices {
		if _, exists := g.adjacency[v1][v]; exists {
			s = append(s, v1)
		}
	}
	return s
}

// Roots returns every vertex without an incoming edge.
func (g *Graph) Roots() []Vertex {
	s := []Vertex{}
	for _, v := range g.vertices {
		if len(g.IncomingGraphVertices(v)) == 0 {
			s = append(s, v)
		}
	}
	return s
}

// Walk visits every vertex reachable from start depth first, in edge order.
// It stops at the first error that fn returns.
func (g *Graph) Walk(start Vertex, fn func(v Vertex, depth int) error) error {
	if !g.HasVertex(start) {
		return fmt.Errorf("vertex %s is not in graph %s", start, g.Name)
	}
	seen := make(map[Vertex]struct{})
	var walk func(Vertex, int) error
	walk = func(v Vertex, depth int) error {
		if _, exists := seen[v]; exists {
			return nil
		}
		seen[v] = struct{}{}
		if err := fn(v, depth); err != nil {
			return errwrap.Wrapf(err, "walk failed at %s", v)
		}
		for _, next := range g.OutgoingGraphVertices(v) {
			if err := walk(next, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(start, 0)
}
