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
	"bytes"
	"errors"
	"fmt"
)

// CycleError reports a resolution chain that requires an id which is already
// being resolved higher up in the same chain. It is always wrapped in a
// DependencyError.
type CycleError struct {
	// Path lists the ids in resolution order. The first and last entries
	// are the same id.
	Path []string
}

func (CycleError) izonError() {}

func (e CycleError) Error() string {
	// We get something like,
	//
	//   *app.Mailer -> *app.Transport -> *app.Mailer
	//
	b := new(bytes.Buffer)
	for i, id := range e.Path {
		if i > 0 {
			b.WriteString(" -> ")
		}
		fmt.Fprint(b, id)
	}
	return b.String()
}

// isCycle reports whether err was caused by a circular dependency.
func isCycle(err error) bool {
	var ce CycleError
	return errors.As(err, &ce)
}

// enter marks id as in progress. It fails if id is already in progress.
func (c *Container) enter(id string) error {
	for i, p := range c.resolving {
		if p != id {
			continue
		}
		path := make([]string, 0, len(c.resolving)-i+1)
		path = append(path, c.resolving[i:]...)
		path = append(path, id)
		return DependencyError{
			Message: "circular dependency detected",
			Cause:   CycleError{Path: path},
		}
	}
	c.resolving = append(c.resolving, id)
	return nil
}

// leave removes id from the in-progress path. Calls to enter and leave are
// always nested, so id is the last entry.
func (c *Container) leave(id string) {
	n := len(c.resolving)
	if n == 0 || c.resolving[n-1] != id {
		panic(fmt.Sprintf(
			"It looks like you have found a bug in izon: "+
				"left %q while resolving %v", id, c.resolving))
	}
	c.resolving = c.resolving[:n-1]
}
