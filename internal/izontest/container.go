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

package izontest

import (
	"testing"

	"github.com/derbenni/izon"
	"github.com/stretchr/testify/require"
)

// Container wraps izon.Container to provide methods for easier testing.
type Container struct {
	*izon.Container

	t testing.TB
}

// New builds a new testing container, halting the test if the definitions
// are invalid.
func New(t testing.TB, defs izon.Definitions, opts ...izon.Option) *Container {
	t.Helper()

	c, err := izon.New(defs, opts...)
	require.NoError(t, err, "failed to build container")
	return &Container{Container: c, t: t}
}

// RequireAdd adds a definition to the container, halting the test if it
// fails.
func (c *Container) RequireAdd(id string, d izon.Definition) {
	c.t.Helper()

	require.NoError(c.t, c.Add(id, d), "failed to add %q", id)
}

// RequireGet gets id from the container, halting the test if it fails.
func (c *Container) RequireGet(id string) interface{} {
	c.t.Helper()

	v, err := c.Get(id)
	require.NoError(c.t, err, "failed to get %q", id)
	return v
}

// RequireMake makes id with the container, halting the test if it fails.
func (c *Container) RequireMake(id string) interface{} {
	c.t.Helper()

	v, err := c.Make(id)
	require.NoError(c.t, err, "failed to make %q", id)
	return v
}

// RequireHas halts the test if the container cannot supply id.
func (c *Container) RequireHas(id string) {
	c.t.Helper()

	require.True(c.t, c.Has(id), "container has no %q", id)
}

// NewRegistry builds an empty registry and registers every constructor in
// ctors, halting the test if any registration fails.
func NewRegistry(t testing.TB, ctors ...interface{}) *izon.Registry {
	t.Helper()

	r := izon.NewRegistry()
	for _, ctor := range ctors {
		require.NoError(t, r.Register(ctor), "failed to register %T", ctor)
	}
	return r
}
