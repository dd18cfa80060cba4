// Copyright (c) 2026 The izon Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package dot

import (
	"fmt"
	"html"
	"sort"
)

// ErrorType of a node for display.
type ErrorType int

const (
	noError ErrorType = iota
	rootCause
	transitiveFailure
)

// Color returns the color representation of each ErrorType.
func (s ErrorType) Color() string {
	switch s {
	case rootCause:
		return "red"
	case transitiveFailure:
		return "orange"
	default:
		return "black"
	}
}

// EdgeKind tells why one definition depends on another.
type EdgeKind int

const (
	// Reference is a definition that resolves to another id.
	Reference EdgeKind = iota
	// Placeholder is an {id} inside an expression.
	Placeholder
	// ClassHint is a constructor parameter autowired by type.
	ClassHint
)

// Style returns the DOT attributes for edges of this kind.
func (k EdgeKind) Style() string {
	switch k {
	case Placeholder:
		return "style=dashed"
	case ClassHint:
		return "style=bold"
	default:
		return "style=solid"
	}
}

// Graph is the DOT-format graph of the definitions in a Container.
type Graph struct {
	Nodes []*Node
	Edges []*Edge

	nodes map[string]*Node
}

// Node is a single id in the graph.
type Node struct {
	ID string

	// Kind of definition bound to the id, for example "object". Empty if
	// the id has no definition.
	Kind string

	ErrorType ErrorType
}

// Edge is a dependency of From on To.
type Edge struct {
	From, To string
	Kind     EdgeKind
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds the node for id, or returns the existing one. A non-empty
// kind replaces the kind of an existing node.
func (g *Graph) AddNode(id, kind string) *Node {
	n, ok := g.nodes[id]
	if !ok {
		n = &Node{ID: id}
		g.nodes[id] = n
		g.Nodes = append(g.Nodes, n)
	}
	if kind != "" {
		n.Kind = kind
	}
	return n
}

// AddEdge adds a dependency of from on to, adding both nodes if needed.
// Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string, kind EdgeKind) {
	g.AddNode(from, "")
	g.AddNode(to, "")
	for _, e := range g.Edges {
		if e.From == from && e.To == to && e.Kind == kind {
			return
		}
	}
	g.Edges = append(g.Edges, &Edge{From: from, To: to, Kind: kind})
}

// MarkMissing marks id as the root cause of a failure.
func (g *Graph) MarkMissing(id string) {
	g.AddNode(id, "").ErrorType = rootCause
}

// MarkFailed marks id as failing because of one of its dependencies. Root
// causes stay root causes.
func (g *Graph) MarkFailed(id string) {
	n := g.AddNode(id, "")
	if n.ErrorType == noError {
		n.ErrorType = transitiveFailure
	}
}

// Failed reports whether any node is marked.
func (g *Graph) Failed() bool {
	for _, n := range g.Nodes {
		if n.Failed() {
			return true
		}
	}
	return false
}

// PruneSuccess removes nodes that are not marked, and the edges touching
// them.
func (g *Graph) PruneSuccess() {
	var nodes []*Node
	for _, n := range g.Nodes {
		if n.ErrorType == noError {
			delete(g.nodes, n.ID)
			continue
		}
		nodes = append(nodes, n)
	}
	g.Nodes = nodes

	var edges []*Edge
	for _, e := range g.Edges {
		if _, ok := g.nodes[e.From]; !ok {
			continue
		}
		if _, ok := g.nodes[e.To]; !ok {
			continue
		}
		edges = append(edges, e)
	}
	g.Edges = edges
}

// Sort orders nodes by id and edges by their endpoints so output is
// reproducible.
func (g *Graph) Sort() {
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
	sort.SliceStable(g.Edges, func(i, j int) bool {
		if g.Edges[i].From != g.Edges[j].From {
			return g.Edges[i].From < g.Edges[j].From
		}
		return g.Edges[i].To < g.Edges[j].To
	})
}

// Failed reports whether the node is marked as missing or failed.
func (n *Node) Failed() bool {
	return n.ErrorType != noError
}

// String returns the string representation of a node.
func (n *Node) String() string {
	return n.ID
}

// Attributes composes and returns a string to style the node when
// visualizing the graph.
func (n *Node) Attributes() string {
	kind := n.Kind
	if kind == "" {
		kind = "undefined"
	}
	attrs := fmt.Sprintf(`shape=box label=<%v<BR /><FONT POINT-SIZE="10">%v</FONT>>`, html.EscapeString(n.ID), kind)
	if n.ErrorType != noError {
		attrs += " color=" + n.ErrorType.Color()
	}
	return attrs
}
