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

// Package config loads izon definitions from configuration files and reads
// the settings of the izon command from the environment.
//
// Definition files are picked by extension:
//
//	.yaml, .yml  YAML documents, see the Loader documentation for tags
//	.ini         INI files; keys of named sections become "section.key"
//	.env         dotenv files
//
// String values containing {id} placeholders become expressions in every
// format.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/derbenni/izon"
	"github.com/pkg/errors"
)

// Loader reads definition files.
//
// YAML files support these tags:
//
//	!expr "{db.host}:{db.port}"   an expression
//	!get db.host                  the value of another id
//	!value [a, b]                 a value used verbatim, tags inside are not interpreted
//	!object app.Mailer            an autowired instance of a registered class
//	!object                       a configured instance
//	  class: app.Mailer
//	  constructor: [!get transport]
//	  constructorParameters: {from: ops@example.com}
//	  properties: {retries: 3}
//	  methods:
//	    - name: Use
//	      args: [auth, log]
//	    - name: SetFrom
//	      params: {from: !get mail.from}
//
// Class names of pointer types start with "*", which YAML reads as an
// alias, so they must be quoted:
//
//	mailer: !object "*github.com/you/app.Mailer"
type Loader struct {
	registry *izon.Registry
}

// NewLoader builds a Loader that resolves !object classes with r. A nil
// registry means izon.DefaultRegistry.
func NewLoader(r *izon.Registry) *Loader {
	if r == nil {
		r = izon.DefaultRegistry
	}
	return &Loader{registry: r}
}

// LoadFile reads the definitions in the file at path.
func (l *Loader) LoadFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read definitions")
	}

	var defs map[string]interface{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		defs, err = l.parseYAML(data)
	case ".ini":
		defs, err = parseINI(data)
	case ".env":
		defs, err = parseDotenv(data)
	default:
		return nil, errors.Errorf("unsupported definition file %q: unknown extension %q", path, ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %v", path)
	}
	return defs, nil
}

// AddDefinitionsByPath adds the definitions of every file matching
// patterns to b. Files are added in the order Glob returns them, pattern by
// pattern, so later files override earlier ones.
func (l *Loader) AddDefinitionsByPath(b *izon.Builder, patterns ...string) error {
	for _, pattern := range patterns {
		files, err := Glob(pattern)
		if err != nil {
			return err
		}
		for _, f := range files {
			defs, err := l.LoadFile(f)
			if err != nil {
				return err
			}
			if err := b.AddDefinitions(f, defs); err != nil {
				return errors.Wrapf(err, "cannot add definitions from %v", f)
			}
		}
	}
	return nil
}

// AddDefinitionsByPath adds the definitions of every file matching
// patterns to b, resolving classes with izon.DefaultRegistry.
func AddDefinitionsByPath(b *izon.Builder, patterns ...string) error {
	return NewLoader(nil).AddDefinitionsByPath(b, patterns...)
}

// scalarOrExpression turns a string read from a flat file into a
// definition.
func scalarOrExpression(s string) interface{} {
	if izon.HasPlaceholders(s) {
		return izon.Expression(s)
	}
	return s
}
