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

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/derbenni/izon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter struct {
	greeting string
	Name     string
	tags     []string
}

func newGreeter(greeting string) *greeter {
	return &greeter{greeting: greeting}
}

func (g *greeter) AddTag(tag string) {
	g.tags = append(g.tags, tag)
}

func (g *greeter) Greet() string {
	return fmt.Sprintf("%v, %v!", g.greeting, g.Name)
}

var _greeterClass = izon.NameOf[*greeter]()

func newTestLoader(t *testing.T) (*Loader, *izon.Registry) {
	t.Helper()

	r := izon.NewRegistry()
	require.NoError(t, r.Register(newGreeter,
		izon.Params("greeting"),
		izon.Default("greeting", "Hello"),
		izon.MethodParams("AddTag", "tag")))
	return NewLoader(r), r
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// buildFrom loads patterns into a new builder and builds a container.
func buildFrom(t *testing.T, l *Loader, r *izon.Registry, patterns ...string) (*izon.Builder, *izon.Container) {
	t.Helper()

	b := izon.NewBuilder(izon.WithRegistry(r))
	require.NoError(t, l.AddDefinitionsByPath(b, patterns...))
	c, err := b.Build()
	require.NoError(t, err)
	return b, c
}

func TestLoadYAML(t *testing.T) {
	l, r := newTestLoader(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yaml", `
db.host: localhost
db.port: 5432
db.dsn: "postgres://{db.host}:{db.port}"
db.alias: !get db.host
db.url: !expr "{db.dsn}/app"
raw: !value "{not.an.expression}"
hosts:
  - example.com
  - !get db.host
limits:
  read: 10
  write: !get db.port
plain: !object "`+_greeterClass+`"
custom: !object
  class: "`+_greeterClass+`"
  constructorParameters:
    greeting: !get greeting
  properties:
    Name: !expr "{db.host}"
  methods:
    - name: AddTag
      args: [first]
    - name: AddTag
      params:
        tag: !get db.host
greeting: Howdy
`)

	_, c := buildFrom(t, l, r, path)

	tests := []struct {
		id   string
		want interface{}
	}{
		{id: "db.host", want: "localhost"},
		{id: "db.port", want: 5432},
		{id: "db.dsn", want: "postgres://localhost:5432"},
		{id: "db.alias", want: "localhost"},
		{id: "db.url", want: "postgres://localhost:5432/app"},
		{id: "raw", want: "{not.an.expression}"},
		{id: "hosts", want: []interface{}{"example.com", "localhost"}},
		{id: "limits", want: map[string]interface{}{"read": 10, "write": 5432}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			v, err := c.Get(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	t.Run("autowired object", func(t *testing.T) {
		v, err := c.Get("plain")
		require.NoError(t, err)
		assert.Equal(t, "Hello, !", v.(*greeter).Greet())
	})

	t.Run("configured object", func(t *testing.T) {
		v, err := c.Get("custom")
		require.NoError(t, err)

		g := v.(*greeter)
		assert.Equal(t, "Howdy, localhost!", g.Greet())
		assert.Equal(t, []string{"first", "localhost"}, g.tags)
	})
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		desc    string
		give    string
		wantErr string
	}{
		{
			desc:    "not a mapping",
			give:    "- a\n- b\n",
			wantErr: "top level must be a mapping",
		},
		{
			desc:    "unknown tag",
			give:    "a: !secret foo\n",
			wantErr: "unknown tag !secret",
		},
		{
			desc:    "expression mapping",
			give:    "a: !expr {b: c}\n",
			wantErr: "!expr must be a string",
		},
		{
			desc:    "object without class",
			give:    "a: !object {properties: {Name: x}}\n",
			wantErr: "!object needs a class",
		},
		{
			desc:    "unregistered class",
			give:    "a: !object app.Missing\n",
			wantErr: `class "app.Missing" is not registered`,
		},
		{
			desc:    "method without name",
			give:    "a: !object {class: \"" + _greeterClass + "\", methods: [{args: [x]}]}\n",
			wantErr: "method 0 needs a name",
		},
		{
			desc:    "unquoted pointer class",
			give:    "a: !object " + _greeterClass + "\n",
			wantErr: "cannot parse",
		},
		{
			desc:    "malformed",
			give:    "a: [b\n",
			wantErr: "cannot parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			l, _ := newTestLoader(t)
			path := writeFile(t, t.TempDir(), "bad.yaml", tt.give)

			_, err := l.LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	l, _ := newTestLoader(t)
	path := writeFile(t, t.TempDir(), "empty.yml", "")

	defs, err := l.LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestLoadINI(t *testing.T) {
	l, r := newTestLoader(t)
	path := writeFile(t, t.TempDir(), "app.ini", `
name = shop

[db]
host = localhost
dsn = mysql://{db.host}/{name}
`)

	_, c := buildFrom(t, l, r, path)
	assert.Equal(t, []string{"db.dsn", "db.host", "name"}, c.IDs())

	v, err := c.Get("db.dsn")
	require.NoError(t, err)
	assert.Equal(t, "mysql://localhost/shop", v)
}

func TestLoadDotenv(t *testing.T) {
	l, r := newTestLoader(t)
	path := writeFile(t, t.TempDir(), "app.env", `
# comment
APP_HOST=localhost
APP_URL="http://{APP_HOST}"
`)

	_, c := buildFrom(t, l, r, path)

	v, err := c.Get("APP_URL")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost", v)
}

func TestLoadUnknownExtension(t *testing.T) {
	l, _ := newTestLoader(t)
	path := writeFile(t, t.TempDir(), "app.toml", "a = 1")

	_, err := l.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown extension ".toml"`)
}

func TestLoadMissingFile(t *testing.T) {
	l, _ := newTestLoader(t)

	_, err := l.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read definitions")
}

func TestAddDefinitionsByPathOverrides(t *testing.T) {
	l, r := newTestLoader(t)
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "env: prod\nhost: example.com\n")
	writeFile(t, dir, "local.yaml", "env: dev\n")
	extra := writeFile(t, dir, "extra.ini", "host = localhost\n")

	b, c := buildFrom(t, l, r,
		filepath.Join(dir, "{base,local}.yaml"),
		filepath.Join(dir, "*.ini"))

	tests := []struct {
		id         string
		want       interface{}
		wantSource string
	}{
		{id: "env", want: "dev", wantSource: filepath.Join(dir, "local.yaml")},
		{id: "host", want: "localhost", wantSource: extra},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			v, err := c.Get(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)

			src, ok := b.Source(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.wantSource, src)
		})
	}

	assert.Equal(t, []string{"env", "host"}, b.IDs())
}

func TestAddDefinitionsByPathDefaultRegistry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "a: 1\n")

	b := izon.NewBuilder()
	require.NoError(t, AddDefinitionsByPath(b, filepath.Join(dir, "*.yaml")))
	assert.Equal(t, []string{"a"}, b.IDs())
}
