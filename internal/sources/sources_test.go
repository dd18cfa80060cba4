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

package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := NewSet()

	t.Run("new id", func(t *testing.T) {
		_, overridden := s.Provide("a.yaml", "db.host")
		assert.False(t, overridden)
	})

	t.Run("another new id", func(t *testing.T) {
		_, overridden := s.Provide("a.yaml", "db.port")
		assert.False(t, overridden)
	})

	t.Run("override", func(t *testing.T) {
		prev, overridden := s.Provide("b.ini", "db.host")
		require.True(t, overridden, "expected override")
		assert.Equal(t, "a.yaml", prev)
	})

	t.Run("override of an override", func(t *testing.T) {
		prev, overridden := s.Provide("c.env", "db.host")
		require.True(t, overridden, "expected override")
		assert.Equal(t, "b.ini", prev)
	})

	src, ok := s.Source("db.host")
	require.True(t, ok)
	assert.Equal(t, "c.env", src)

	_, ok = s.Source("db.user")
	assert.False(t, ok)

	assert.Equal(t, []string{"db.host", "db.port"}, s.Items(), "items should match")
}
