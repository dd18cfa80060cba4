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
	"reflect"
)

// A Definition is a recipe for a value bound to an id in a Container.
//
// Definitions are resolved lazily, the first time their id is requested
// with Get, and every time it is requested with Make.
type Definition interface {
	Resolve(c *Container) (interface{}, error)
}

// Value wraps v in a definition that resolves to v itself: a
// ScalarDefinition for booleans, strings and numbers, an ArrayDefinition for
// slices, arrays and string-keyed maps. Any other value is rejected.
func Value(v interface{}) (Definition, error) {
	if v != nil {
		switch reflect.TypeOf(v).Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return NewArray(v)
		}
	}
	return NewScalar(v)
}

// MustValue is like Value but panics if v cannot be wrapped.
func MustValue(v interface{}) Definition {
	d, err := Value(v)
	if err != nil {
		panic(err)
	}
	return d
}

// Object returns an autowired definition for a class registered with
// DefaultRegistry. The definition may be configured further before it is
// added to a container.
func Object(class string) (*ObjectDefinition, error) {
	return DefaultRegistry.Object(class)
}

// MustObject is like Object but panics if class is not registered.
func MustObject(class string) *ObjectDefinition {
	d, err := Object(class)
	if err != nil {
		panic(err)
	}
	return d
}

// Factory returns a definition that calls fn with the container.
func Factory(fn interface{}) (*FactoryDefinition, error) {
	return NewFactory(fn)
}

// MustFactory is like Factory but panics if fn has the wrong shape.
func MustFactory(fn interface{}) *FactoryDefinition {
	d, err := NewFactory(fn)
	if err != nil {
		panic(err)
	}
	return d
}

// Expression returns a definition that renders s, replacing every {id}
// with the string form of the value of id.
func Expression(s string) *ExpressionDefinition {
	return NewExpression(s)
}

// Get returns a definition that resolves to the value of another id.
func Get(id string) *EntryReferenceDefinition {
	return NewEntryReference(id)
}
