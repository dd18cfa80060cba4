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
	"strconv"
)

// ArrayDefinition resolves to a collection whose entries may themselves be
// definitions. It accepts slices, arrays and maps with string keys.
type ArrayDefinition struct {
	value    reflect.Value
	resolver ArrayResolver
}

var _ Definition = (*ArrayDefinition)(nil)

// NewArray wraps v. It fails with an InvalidArgumentError if v is not a
// slice, an array or a map keyed by strings.
func NewArray(v interface{}) (*ArrayDefinition, error) {
	if !(ArrayResolver{}).Can(v) {
		return nil, invalidArgumentf("array definition must be a slice, array or map with string keys, got %T", v)
	}
	return &ArrayDefinition{value: reflect.ValueOf(v)}, nil
}

// Value returns the wrapped collection with its definitions unresolved.
func (d *ArrayDefinition) Value() interface{} { return d.value.Interface() }

// Resolve returns a copy of the collection in which every entry that is a
// definition is replaced by its resolved value. The wrapped collection is
// never modified.
func (d *ArrayDefinition) Resolve(c *Container) (interface{}, error) {
	return d.resolver.Resolve(c, d.value.Interface())
}

func (d *ArrayDefinition) dependencies() []dependency {
	var deps []dependency
	d.resolver.each(d.value, func(e reflect.Value) {
		if dd, ok := entryDefinition(e); ok {
			deps = append(deps, dependenciesOf(dd)...)
		}
	})
	return deps
}

// ArrayResolver resolves nested definitions inside collections.
type ArrayResolver struct{}

// Can reports whether v is a collection ArrayResolver can walk.
func (ArrayResolver) Can(v interface{}) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	case reflect.Map:
		return t.Key().Kind() == reflect.String
	default:
		return false
	}
}

// Resolve returns a copy of v of the same Go type with every definition
// entry resolved. Map entries are resolved in sorted key order. Only entries
// of interface-typed collections can hold definitions; other collections
// are copied unchanged.
func (r ArrayResolver) Resolve(c *Container, v interface{}) (interface{}, error) {
	if !r.Can(v) {
		return nil, invalidArgumentf("cannot resolve %T as an array", v)
	}

	rv := reflect.ValueOf(v)
	var out reflect.Value
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v, nil
		}
		out = reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	case reflect.Array:
		out = reflect.New(rv.Type()).Elem()
	case reflect.Map:
		if rv.IsNil() {
			return v, nil
		}
		out = reflect.MakeMapWithSize(rv.Type(), rv.Len())
	}

	resolve := func(label string, e reflect.Value) (reflect.Value, error) {
		d, ok := entryDefinition(e)
		if !ok {
			return e, nil
		}
		resolved, err := d.Resolve(c)
		if err != nil {
			return _noValue, errWrapf(err, "entry %v", label)
		}
		if resolved == nil {
			return reflect.Zero(e.Type()), nil
		}
		return reflect.ValueOf(resolved), nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			e, err := resolve(strconv.Itoa(i), rv.Index(i))
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(e)
		}
	case reflect.Map:
		for _, k := range sortedKeys(rv) {
			e, err := resolve(strconv.Quote(k.String()), rv.MapIndex(k))
			if err != nil {
				return nil, err
			}
			out.SetMapIndex(k, e)
		}
	}
	return out.Interface(), nil
}

// each calls f for every entry of rv. Map entries are visited in sorted key
// order.
func (ArrayResolver) each(rv reflect.Value, f func(e reflect.Value)) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			f(rv.Index(i))
		}
	case reflect.Map:
		for _, k := range sortedKeys(rv) {
			f(rv.MapIndex(k))
		}
	}
}

// entryDefinition returns the definition held by an interface-typed entry.
func entryDefinition(e reflect.Value) (Definition, bool) {
	if e.Kind() != reflect.Interface || e.IsNil() {
		return nil, false
	}
	d, ok := e.Interface().(Definition)
	return d, ok
}
