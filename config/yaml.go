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
	"sort"

	"github.com/derbenni/izon"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	_exprTag   = "!expr"
	_getTag    = "!get"
	_objectTag = "!object"
	_valueTag  = "!value"
)

// parseYAML reads definitions from a YAML document whose top level is a
// mapping of id to definition.
func (l *Loader) parseYAML(data []byte) (map[string]interface{}, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	// An empty document has no content.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return map[string]interface{}{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: top level must be a mapping of ids to definitions", root.Line)
	}

	defs := make(map[string]interface{}, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		id := root.Content[i].Value
		v, err := l.convert(root.Content[i+1], false)
		if err != nil {
			return nil, errors.Wrapf(err, "definition %q", id)
		}
		defs[id] = v
	}
	return defs, nil
}

// convert turns n into a raw value or a definition. Nested collections
// that hold definitions are wrapped in array definitions so they are
// resolved too.
func (l *Loader) convert(n *yaml.Node, nested bool) (interface{}, error) {
	if n.Kind == yaml.AliasNode {
		return l.convert(n.Alias, nested)
	}

	switch n.Tag {
	case _exprTag:
		if n.Kind != yaml.ScalarNode {
			return nil, errors.Errorf("line %d: %v must be a string", n.Line, _exprTag)
		}
		return izon.Expression(n.Value), nil
	case _getTag:
		if n.Kind != yaml.ScalarNode {
			return nil, errors.Errorf("line %d: %v must be an id", n.Line, _getTag)
		}
		return izon.Get(n.Value), nil
	case _objectTag:
		return l.object(n)
	case _valueTag:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return izon.Value(v)
	}

	if len(n.Tag) > 0 && n.Tag[0] == '!' && (len(n.Tag) < 2 || n.Tag[1] != '!') {
		return nil, errors.Errorf("line %d: unknown tag %v", n.Line, n.Tag)
	}

	var (
		out     interface{}
		hasDefs bool
	)
	switch n.Kind {
	case yaml.SequenceNode:
		items := make([]interface{}, len(n.Content))
		for i, c := range n.Content {
			v, err := l.convert(c, true)
			if err != nil {
				return nil, err
			}
			_, isDef := v.(izon.Definition)
			hasDefs = hasDefs || isDef
			items[i] = v
		}
		out = items
	case yaml.MappingNode:
		items := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := l.convert(n.Content[i+1], true)
			if err != nil {
				return nil, err
			}
			_, isDef := v.(izon.Definition)
			hasDefs = hasDefs || isDef
			items[n.Content[i].Value] = v
		}
		out = items
	default:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		if s, ok := v.(string); ok {
			return scalarOrExpression(s), nil
		}
		return v, nil
	}

	if nested && hasDefs {
		return izon.Value(out)
	}
	return out, nil
}

type methodNode struct {
	Name   string               `yaml:"name"`
	Args   []yaml.Node          `yaml:"args"`
	Params map[string]yaml.Node `yaml:"params"`
}

type objectNode struct {
	Class                 string               `yaml:"class"`
	Constructor           []yaml.Node          `yaml:"constructor"`
	ConstructorParameters map[string]yaml.Node `yaml:"constructorParameters"`
	Properties            map[string]yaml.Node `yaml:"properties"`
	Methods               []methodNode         `yaml:"methods"`
}

// object builds the definition for an !object node.
func (l *Loader) object(n *yaml.Node) (interface{}, error) {
	if n.Kind == yaml.ScalarNode {
		return l.registry.Object(n.Value)
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: %v must be a class name or a mapping", n.Line, _objectTag)
	}

	var on objectNode
	if err := n.Decode(&on); err != nil {
		return nil, err
	}
	if on.Class == "" {
		return nil, errors.Errorf("line %d: %v needs a class", n.Line, _objectTag)
	}

	d, err := l.registry.Object(on.Class)
	if err != nil {
		return nil, err
	}

	args, err := l.convertList(on.Constructor)
	if err != nil {
		return nil, errors.Wrap(err, "constructor")
	}
	if len(args) > 0 {
		d.Constructor(args...)
	}

	if err := l.convertEach(on.ConstructorParameters, func(name string, v interface{}) {
		d.ConstructorParameter(name, v)
	}); err != nil {
		return nil, errors.Wrap(err, "constructor parameter")
	}

	if err := l.convertEach(on.Properties, func(name string, v interface{}) {
		d.Property(name, v)
	}); err != nil {
		return nil, errors.Wrap(err, "property")
	}

	for i, m := range on.Methods {
		if m.Name == "" {
			return nil, errors.Errorf("method %d needs a name", i)
		}
		values, err := l.convertList(m.Args)
		if err != nil {
			return nil, errors.Wrapf(err, "method %v", m.Name)
		}
		if m.Name == izon.ConstructorMethod {
			if len(values) > 0 {
				d.Constructor(values...)
			}
			if err := l.convertEach(m.Params, func(name string, v interface{}) {
				d.ConstructorParameter(name, v)
			}); err != nil {
				return nil, errors.Wrapf(err, "method %v", m.Name)
			}
			continue
		}

		args := izon.Args(values...)
		if err := l.convertEach(m.Params, func(name string, v interface{}) {
			args = args.With(name, v)
		}); err != nil {
			return nil, errors.Wrapf(err, "method %v", m.Name)
		}
		d.Call(m.Name, args)
	}

	return d, nil
}

func (l *Loader) convertList(nodes []yaml.Node) ([]interface{}, error) {
	values := make([]interface{}, len(nodes))
	for i := range nodes {
		v, err := l.convert(&nodes[i], true)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

// convertEach converts the nodes of m in sorted key order and passes them
// to f.
func (l *Loader) convertEach(m map[string]yaml.Node, f func(name string, v interface{})) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		n := m[name]
		v, err := l.convert(&n, true)
		if err != nil {
			return errors.Wrapf(err, "%q", name)
		}
		f(name, v)
	}
	return nil
}
