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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterDetectsCycle(t *testing.T) {
	c := newTestContainer(t, nil)
	require.NoError(t, c.enter("a"))
	require.NoError(t, c.enter("b"))
	require.NoError(t, c.enter("c"))

	err := c.enter("b")
	require.Error(t, err)
	assert.True(t, IsDependency(err))
	assert.True(t, isCycle(err))

	var ce CycleError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"b", "c", "b"}, ce.Path)
	assert.Equal(t, "b -> c -> b", ce.Error())
	assert.Equal(t, []string{"a", "b", "c"}, c.resolving, "a failed enter must not change the path")
}

func TestLeave(t *testing.T) {
	c := newTestContainer(t, nil)
	require.NoError(t, c.enter("a"))
	require.NoError(t, c.enter("b"))

	c.leave("b")
	c.leave("a")
	assert.Empty(t, c.resolving)
}

func TestLeaveOutOfOrder(t *testing.T) {
	c := newTestContainer(t, nil)
	require.NoError(t, c.enter("a"))
	require.NoError(t, c.enter("b"))
	assert.Panics(t, func() { c.leave("a") })
}

func TestLeaveEmpty(t *testing.T) {
	c := newTestContainer(t, nil)
	assert.Panics(t, func() { c.leave("a") })
}
