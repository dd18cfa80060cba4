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
	"fmt"
	"reflect"
)

// Signature identifies a callable whose parameters should be resolved.
type Signature struct {
	Class  string
	Method string
	Params []Parameter
}

// MethodResolver resolves the arguments of a callable by running a
// ParameterResolver over each of its parameters in order.
type MethodResolver struct {
	params ParameterResolver
}

// NewMethodResolver builds a MethodResolver that uses params for every
// parameter.
func NewMethodResolver(params ParameterResolver) *MethodResolver {
	return &MethodResolver{params: params}
}

// Resolve returns the arguments for sig, ready to be passed to
// reflect.Value.Call. Values in args override autowiring.
func (r *MethodResolver) Resolve(c *Container, sig Signature, args Arguments) ([]reflect.Value, error) {
	values := make([]reflect.Value, len(sig.Params))
	for i, p := range sig.Params {
		v, err := r.params.Resolve(c, p, args)
		if err != nil {
			return nil, err
		}

		rv, err := adaptValue(v, p.Type)
		if err != nil {
			return nil, DependencyError{
				Message: fmt.Sprintf("parameter %v of method %q in class %q could not be resolved",
					p, sig.Method, sig.Class),
				Cause: err,
			}
		}
		values[i] = rv
	}
	return values, nil
}

// ObjectResolver instantiates registered classes, autowiring their
// constructor arguments.
type ObjectResolver struct {
	registry *Registry
	methods  *MethodResolver
}

// Can reports whether class names a constructible class.
func (r *ObjectResolver) Can(class string) bool {
	return r.registry.Can(class)
}

// Resolve builds a new instance of class. Values in args override
// autowiring of constructor parameters.
func (r *ObjectResolver) Resolve(c *Container, class string, args Arguments) (interface{}, error) {
	cls, ok := r.registry.Lookup(class)
	if !ok {
		return nil, invalidArgumentf("class %q is not registered", class)
	}
	v, err := r.instantiate(c, cls, args)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (r *ObjectResolver) instantiate(c *Container, cls *Class, args Arguments) (reflect.Value, error) {
	if !cls.ctor.IsValid() {
		if cls.typ.Kind() == reflect.Ptr {
			return reflect.New(cls.typ.Elem()), nil
		}
		return reflect.New(cls.typ).Elem(), nil
	}

	sig := Signature{
		Class:  cls.name,
		Method: ConstructorMethod,
		Params: cls.params,
	}
	in, err := r.methods.Resolve(c, sig, args)
	if err != nil {
		return _noValue, err
	}

	out := cls.ctor.Call(in)
	if len(out) == 2 {
		if err, _ := out[1].Interface().(error); err != nil {
			return _noValue, DependencyError{
				Message: fmt.Sprintf("constructor %v failed", cls.location),
				Cause:   err,
			}
		}
	}
	return out[0], nil
}
