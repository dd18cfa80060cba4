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

package izon

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/derbenni/izon/internal/dot"
)

// A VisualizeOption modifies the default behavior of Visualize.
type VisualizeOption interface {
	applyVisualizeOption(*visualizeOptions)
}

type visualizeOptions struct {
	VisualizeError error
}

// VisualizeError includes a visualization of the given error in the output of
// Visualize if an error was returned by Get or Make.
//
//	if _, err := c.Get("mailer"); err != nil {
//	  izon.Visualize(c, w, izon.VisualizeError(err))
//	}
//
// Missing ids are drawn in red, ids that failed because of them or because
// they are part of a cycle in orange, and everything else is left out. This
// option has no effect if the error was nil or if it didn't contain any
// information to visualize.
func VisualizeError(err error) VisualizeOption {
	return visualizeErrorOption{err}
}

type visualizeErrorOption struct{ err error }

func (o visualizeErrorOption) String() string {
	return fmt.Sprintf("VisualizeError(%v)", o.err)
}

func (o visualizeErrorOption) applyVisualizeOption(opt *visualizeOptions) {
	opt.VisualizeError = o.err
}

// dependency is an edge from a definition to an id it needs.
type dependency struct {
	id   string
	kind dot.EdgeKind
}

// dependent is implemented by definitions that need other ids.
type dependent interface {
	dependencies() []dependency
}

func dependenciesOf(d Definition) []dependency {
	if dd, ok := d.(dependent); ok {
		return dd.dependencies()
	}
	return nil
}

func kindOf(d Definition) string {
	switch d.(type) {
	case *ScalarDefinition:
		return "scalar"
	case *ArrayDefinition:
		return "array"
	case *ObjectDefinition:
		return "object"
	case *FactoryDefinition:
		return "factory"
	case *ExpressionDefinition:
		return "expression"
	case *EntryReferenceDefinition:
		return "reference"
	default:
		return fmt.Sprintf("%T", d)
	}
}

func updateGraph(dg *dot.Graph, err error) {
	for ; err != nil; err = errors.Unwrap(err) {
		switch e := err.(type) {
		case NotFoundError:
			dg.MarkMissing(e.ID)
		case CycleError:
			for _, id := range e.Path {
				dg.MarkFailed(id)
			}
		}
	}

	// Anything depending on a failed node fails too.
	for changed := true; changed; {
		changed = false
		for _, e := range dg.Edges {
			if dg.AddNode(e.To, "").Failed() && !dg.AddNode(e.From, "").Failed() {
				dg.MarkFailed(e.From)
				changed = true
			}
		}
	}

	if dg.Failed() {
		// Remove non-error entries from the graph for readability.
		dg.PruneSuccess()
	}
}

// Visualize writes the definitions in Container c and the dependencies
// between them to w in DOT format.
func Visualize(c *Container, w io.Writer, opts ...VisualizeOption) error {
	dg := c.createGraph()

	var options visualizeOptions
	for _, o := range opts {
		o.applyVisualizeOption(&options)
	}

	if options.VisualizeError != nil {
		updateGraph(dg, options.VisualizeError)
	}

	dg.Sort()
	return visualizeGraph(w, dg)
}

func visualizeGraph(w io.Writer, dg *dot.Graph) error {
	if _, err := io.WriteString(w, "digraph {\n\trankdir=RL;\n"); err != nil {
		return err
	}
	for _, n := range dg.Nodes {
		if _, err := fmt.Fprintf(w, "\t%s [%s];\n", strconv.Quote(n.String()), n.Attributes()); err != nil {
			return err
		}
	}
	for _, e := range dg.Edges {
		if _, err := fmt.Fprintf(w, "\t%s -> %s [%s];\n",
			strconv.Quote(e.From), strconv.Quote(e.To), e.Kind.Style()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

// CanVisualizeError returns true if the error carries a missing id or a
// dependency cycle that VisualizeError can draw.
func CanVisualizeError(err error) bool {
	var nf NotFoundError
	var ce CycleError
	return errors.As(err, &nf) || errors.As(err, &ce)
}

func (c *Container) createGraph() *dot.Graph {
	dg := dot.NewGraph()
	for _, id := range c.IDs() {
		d := c.definitions[id]
		dg.AddNode(id, kindOf(d))
		for _, dep := range dependenciesOf(d) {
			dg.AddEdge(id, dep.id, dep.kind)
		}
	}
	return dg
}
