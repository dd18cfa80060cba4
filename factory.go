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

	"github.com/derbenni/izon/internal/izonreflect"
)

// FactoryDefinition resolves by calling a user function with the container.
type FactoryDefinition struct {
	fn       reflect.Value
	location *izonreflect.Func
}

var _ Definition = (*FactoryDefinition)(nil)

// NewFactory wraps fn, which must have one of the forms
//
//	func(*izon.Container) T
//	func(*izon.Container) (T, error)
func NewFactory(fn interface{}) (*FactoryDefinition, error) {
	if fn == nil {
		return nil, invalidArgumentf("factory must be a function, got an untyped nil")
	}

	ft := reflect.TypeOf(fn)
	if ft.Kind() != reflect.Func {
		return nil, invalidArgumentf("factory must be a function, got %v (type %v)", fn, ft)
	}
	if ft.NumIn() != 1 || ft.In(0) != _containerType || ft.IsVariadic() {
		return nil, invalidArgumentf("factory %v must accept exactly one *izon.Container", ft)
	}

	switch {
	case ft.NumOut() == 1 && ft.Out(0) != _errType:
	case ft.NumOut() == 2 && ft.Out(0) != _errType && ft.Out(1) == _errType:
	default:
		return nil, invalidArgumentf("factory %v must return a value, optionally followed by an error", ft)
	}

	return &FactoryDefinition{
		fn:       reflect.ValueOf(fn),
		location: izonreflect.InspectFunc(fn),
	}, nil
}

// Location returns where the factory function is defined.
func (d *FactoryDefinition) Location() *izonreflect.Func { return d.location }

// Resolve calls the factory and returns its result verbatim.
func (d *FactoryDefinition) Resolve(c *Container) (interface{}, error) {
	out := d.fn.Call([]reflect.Value{reflect.ValueOf(c)})
	if len(out) == 2 {
		if err, _ := out[1].Interface().(error); err != nil {
			return nil, errWrapf(err, "factory %v failed", d.location)
		}
	}
	return out[0].Interface(), nil
}
