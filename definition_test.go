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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	tests := []struct {
		desc     string
		give     interface{}
		wantType Definition
		wantErr  bool
	}{
		{desc: "string", give: "hello", wantType: &ScalarDefinition{}},
		{desc: "int", give: 42, wantType: &ScalarDefinition{}},
		{desc: "uint16", give: uint16(42), wantType: &ScalarDefinition{}},
		{desc: "float", give: 4.2, wantType: &ScalarDefinition{}},
		{desc: "bool", give: true, wantType: &ScalarDefinition{}},
		{desc: "named string", give: namedString("x"), wantType: &ScalarDefinition{}},
		{desc: "slice", give: []string{"a"}, wantType: &ArrayDefinition{}},
		{desc: "array", give: [2]int{1, 2}, wantType: &ArrayDefinition{}},
		{desc: "map", give: map[string]interface{}{"a": 1}, wantType: &ArrayDefinition{}},
		{desc: "nil", give: nil, wantErr: true},
		{desc: "struct", give: clock{}, wantErr: true},
		{desc: "pointer", give: &clock{}, wantErr: true},
		{desc: "int keyed map", give: map[int]string{1: "a"}, wantErr: true},
		{desc: "func", give: func() {}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			d, err := Value(tt.give)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidArgument(err), "expected InvalidArgumentError, got %T", err)
				assert.Panics(t, func() { MustValue(tt.give) })
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.wantType, d)

			c, err := New(nil)
			require.NoError(t, err)
			v, err := d.Resolve(c)
			require.NoError(t, err)
			assert.Equal(t, tt.give, v)
		})
	}
}

func TestScalarDefinition(t *testing.T) {
	d, err := NewScalar("x")
	require.NoError(t, err)
	assert.Equal(t, "x", d.Value())

	v, err := d.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "x", v, "scalars ignore the container")

	_, err = NewScalar([]string{"x"})
	assert.True(t, IsInvalidArgument(err))
}

func TestArrayDefinition(t *testing.T) {
	c := newTestContainer(t, Definitions{
		"host": MustValue("mx"),
		"port": MustValue(25),
	})

	t.Run("nested definitions", func(t *testing.T) {
		give := []interface{}{"plain", Get("host"), Expression("{host}:{port}"), MustValue([]interface{}{Get("port")})}
		d, err := NewArray(give)
		require.NoError(t, err)

		v, err := d.Resolve(c)
		require.NoError(t, err)
		assert.Equal(t, []interface{}{"plain", "mx", "mx:25", []interface{}{25}}, v)
		assert.IsType(t, Get(""), give[1], "input must not be modified")
	})

	t.Run("map keeps its type", func(t *testing.T) {
		give := map[string]interface{}{"h": Get("host"), "p": Get("port"), "x": nil}
		v, err := MustValue(give).Resolve(c)
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"h": "mx", "p": 25, "x": nil}, v)
	})

	t.Run("typed collection", func(t *testing.T) {
		v, err := MustValue(map[string]int{"a": 1}).Resolve(c)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 1}, v)
	})

	t.Run("idempotent", func(t *testing.T) {
		give := []interface{}{"a", 1, map[string]interface{}{"b": true}}
		once, err := MustValue(give).Resolve(c)
		require.NoError(t, err)
		twice, err := MustValue(once).Resolve(c)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
		assert.Equal(t, give, once)
	})

	t.Run("error names the entry", func(t *testing.T) {
		_, err := MustValue(map[string]interface{}{"a": 1, "b": Get("missing")}).Resolve(c)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), `entry "b"`)

		_, err = MustValue([]interface{}{1, Get("missing")}).Resolve(c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry 1")
	})

	t.Run("nil slice", func(t *testing.T) {
		v, err := MustValue([]string(nil)).Resolve(c)
		require.NoError(t, err)
		assert.Equal(t, []string(nil), v)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := ArrayResolver{}.Resolve(c, 1)
		assert.True(t, IsInvalidArgument(err))
	})
}

type stringer struct{ s string }

func (s stringer) String() string { return s.s }

type panicky struct{}

func (panicky) String() string { panic("no string for you") }

func TestExpressionDefinition(t *testing.T) {
	c := newTestContainer(t, Definitions{
		"a":        MustValue("base"),
		"b":        MustValue("end"),
		"n":        MustValue(42),
		"f":        MustValue(1.5),
		"ok":       MustValue(true),
		"ref":      Get("a"),
		"stringer": MustFactory(func(*Container) stringer { return stringer{"str"} }),
		"err":      MustFactory(func(*Container) (interface{}, error) { return errors.New("oops"), nil }),
		"nothing":  MustFactory(func(*Container) transport { return nil }),
		"list":     MustValue([]string{"x"}),
		"panicky":  MustFactory(func(*Container) panicky { return panicky{} }),
		"broken":   Get("missing"),
	})

	tests := []struct {
		desc          string
		give          string
		want          string
		wantErr       string
		wantUnforeseen bool
	}{
		{desc: "two placeholders", give: "{a}/{b}", want: "base/end"},
		{desc: "no placeholders", give: "plain", want: "plain"},
		{desc: "repeated", give: "{a}{a}", want: "basebase"},
		{desc: "scalars", give: "{n} {f} {ok}", want: "42 1.5 true"},
		{desc: "reference", give: "{ref}", want: "base"},
		{desc: "stringer", give: "[{stringer}]", want: "[str]"},
		{desc: "error", give: "{err}", want: "oops"},
		{desc: "nil", give: "<{nothing}>", want: "<>"},
		{desc: "nested braces are not placeholders", give: "{{a}}", want: "{base}"},
		{desc: "empty braces", give: "{}", want: "{}"},
		{
			desc:    "missing",
			give:    "{a}/{missing}",
			wantErr: `placeholder "missing" of expression "{a}/{missing}" could not be resolved`,
		},
		{
			desc:          "no string form",
			give:          "{list}",
			wantErr:       `something unforeseen happened when parsing the expression "{list}"`,
			wantUnforeseen: true,
		},
		{
			desc:          "panicking stringer",
			give:          "{panicky}",
			wantErr:       "no string for you",
			wantUnforeseen: true,
		},
		{
			desc:    "broken dependency",
			give:    "{broken}",
			wantErr: `placeholder "broken" of expression "{broken}" could not be resolved`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			d := Expression(tt.give)
			assert.Equal(t, tt.give, d.Expression())

			v, err := d.Resolve(c)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, v)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			var ue UnforeseenError
			assert.Equal(t, tt.wantUnforeseen, errors.As(err, &ue))
			if !tt.wantUnforeseen {
				assert.True(t, IsDependency(err))
			}
		})
	}
}

func TestExpressionPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"a", "b.c", "a"}, Expression("{a}-{b.c}-{a}").Placeholders())
	assert.Empty(t, Expression("none").Placeholders())
	assert.True(t, HasPlaceholders("x{y}z"))
	assert.False(t, HasPlaceholders("x{}z"))
}

func TestEntryReferenceDefinition(t *testing.T) {
	c := newTestContainer(t, Definitions{
		"a": MustValue("x"),
		"b": Get("a"),
		"c": Get("b"),
	})

	assert.Equal(t, "a", Get("a").ID())
	v, err := c.Get("c")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	_, err = Get("missing").Resolve(c)
	assert.Equal(t, NotFoundError{ID: "missing"}, err)
}

func TestFactoryDefinition(t *testing.T) {
	tests := []struct {
		desc    string
		give    interface{}
		wantErr string
	}{
		{desc: "nil", give: nil, wantErr: "untyped nil"},
		{desc: "not a function", give: "x", wantErr: "factory must be a function"},
		{desc: "no arguments", give: func() int { return 1 }, wantErr: "must accept exactly one *izon.Container"},
		{desc: "wrong argument", give: func(string) int { return 1 }, wantErr: "must accept exactly one *izon.Container"},
		{desc: "variadic", give: func(...*Container) int { return 1 }, wantErr: "must accept exactly one *izon.Container"},
		{desc: "no results", give: func(*Container) {}, wantErr: "must return a value"},
		{desc: "only error", give: func(*Container) error { return nil }, wantErr: "must return a value"},
		{desc: "value", give: func(*Container) int { return 1 }},
		{desc: "value and error", give: func(*Container) (int, error) { return 1, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			d, err := Factory(tt.give)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotNil(t, d.Location())
				return
			}
			require.Error(t, err)
			assert.True(t, IsInvalidArgument(err))
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Panics(t, func() { MustFactory(tt.give) })
		})
	}

	t.Run("receives the container", func(t *testing.T) {
		c := newTestContainer(t, Definitions{
			"port": MustValue(25),
			"addr": MustFactory(func(c *Container) (string, error) {
				port, err := Resolve[int](c, "port")
				return fmt.Sprintf("mx:%d", port), err
			}),
		})
		v, err := c.Get("addr")
		require.NoError(t, err)
		assert.Equal(t, "mx:25", v)
	})

	t.Run("error", func(t *testing.T) {
		c := newTestContainer(t, Definitions{
			"addr": MustFactory(func(c *Container) (string, error) {
				return "", errors.New("great sadness")
			}),
		})
		_, err := c.Get("addr")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TestFactoryDefinition")
		assert.Contains(t, err.Error(), "failed: great sadness")
	})
}
