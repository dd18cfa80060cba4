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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualize(t *testing.T) {
	c := newTestContainer(t, Definitions{
		"greeting": MustValue("hello"),
		"msg":      Expression("{greeting} {name}"),
		"alias":    Get("msg"),
	})

	t.Run("graph", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, Visualize(c, &b))
		assert.Equal(t, `digraph {
	rankdir=RL;
	"alias" [shape=box label=<alias<BR /><FONT POINT-SIZE="10">reference</FONT>>];
	"greeting" [shape=box label=<greeting<BR /><FONT POINT-SIZE="10">scalar</FONT>>];
	"msg" [shape=box label=<msg<BR /><FONT POINT-SIZE="10">expression</FONT>>];
	"name" [shape=box label=<name<BR /><FONT POINT-SIZE="10">undefined</FONT>>];
	"alias" -> "msg" [style=solid];
	"msg" -> "greeting" [style=dashed];
	"msg" -> "name" [style=dashed];
}
`, b.String())
	})

	t.Run("error", func(t *testing.T) {
		_, err := c.Get("alias")
		require.Error(t, err)
		require.True(t, CanVisualizeError(err))

		var b bytes.Buffer
		require.NoError(t, Visualize(c, &b, VisualizeError(err)))
		assert.Equal(t, `digraph {
	rankdir=RL;
	"alias" [shape=box label=<alias<BR /><FONT POINT-SIZE="10">reference</FONT>> color=orange];
	"msg" [shape=box label=<msg<BR /><FONT POINT-SIZE="10">expression</FONT>> color=orange];
	"name" [shape=box label=<name<BR /><FONT POINT-SIZE="10">undefined</FONT>> color=red];
	"alias" -> "msg" [style=solid];
	"msg" -> "name" [style=dashed];
}
`, b.String())
	})

	t.Run("error without information", func(t *testing.T) {
		err := errors.New("great sadness")
		assert.False(t, CanVisualizeError(err))
		assert.Equal(t, "VisualizeError(great sadness)", visualizeErrorOption{err}.String())

		var plain, withErr bytes.Buffer
		require.NoError(t, Visualize(c, &plain))
		require.NoError(t, Visualize(c, &withErr, VisualizeError(err)))
		assert.Equal(t, plain.String(), withErr.String(), "graph must not change")
	})
}

func TestVisualizeCycle(t *testing.T) {
	c := newTestContainer(t, Definitions{
		"a":     Get("b"),
		"b":     MustValue([]interface{}{Get("a")}),
		"other": MustValue(1),
	})

	_, err := c.Get("a")
	require.Error(t, err)

	var b bytes.Buffer
	require.NoError(t, Visualize(c, &b, VisualizeError(err)))
	assert.Contains(t, b.String(), `"a" [shape=box label=<a<BR /><FONT POINT-SIZE="10">reference</FONT>> color=orange];`)
	assert.Contains(t, b.String(), `"b" [shape=box label=<b<BR /><FONT POINT-SIZE="10">array</FONT>> color=orange];`)
	assert.Contains(t, b.String(), `"b" -> "a" [style=solid];`)
	assert.NotContains(t, b.String(), `"other"`)
}

func TestVisualizeObjects(t *testing.T) {
	r := newTestRegistry(t)
	md, err := r.Object(_mailerClass)
	require.NoError(t, err)
	md.Property("from", Get("mail.from"))

	wired, err := r.Object(_mailerClass)
	require.NoError(t, err)
	wired.ConstructorParameter("transport", Get("tr"))

	c, err := New(Definitions{
		"mailer": md,
		"wired":  wired,
		"clock":  MustFactory(func(*Container) clock { return clock{} }),
	}, WithRegistry(r))
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, Visualize(c, &b))
	out := b.String()
	assert.Contains(t, out, `"mailer" -> "github.com/derbenni/izon.transport" [style=bold];`)
	assert.Contains(t, out, `"mailer" -> "mail.from" [style=solid];`)
	assert.Contains(t, out, `"wired" -> "tr" [style=solid];`)
	assert.NotContains(t, out, `"wired" -> "github.com/derbenni/izon.transport"`,
		"supplied arguments replace autowiring")
	assert.Contains(t, out, `"clock" [shape=box label=<clock<BR /><FONT POINT-SIZE="10">factory</FONT>>];`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("great sadness") }

func TestVisualizeWriteError(t *testing.T) {
	c := newTestContainer(t, Definitions{"a": MustValue(1)})
	assert.EqualError(t, Visualize(c, failingWriter{}), "great sadness")
}
