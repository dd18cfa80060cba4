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

// Parameter describes one formal parameter of a constructor or method.
type Parameter struct {
	// Name of the parameter. Go does not keep parameter names at runtime, so
	// this is only set when the parameter was named during registration.
	Name string

	// Position of the parameter, starting at 0.
	Position int

	// Type of the parameter.
	Type reflect.Type

	// Optional is set when the parameter has a declared default.
	Optional bool

	// Default is the declared default value. Only meaningful if Optional.
	Default interface{}

	// Method and Class identify the callable that declares this parameter.
	Method string
	Class  string
}

// String returns the parameter's name, or its position if it has none.
func (p Parameter) String() string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("#%d", p.Position)
}

// Arguments are caller supplied values that override autowiring for some
// parameters of a callable. Values are keyed either by parameter name or by
// position. A value may itself be a Definition, in which case it is resolved
// before use.
//
// Arguments are immutable; With and At return modified copies.
type Arguments struct {
	named      map[string]interface{}
	positional map[int]interface{}
}

// Args builds positional Arguments from values: the first value is used for
// the parameter at position 0 and so on.
func Args(values ...interface{}) Arguments {
	var a Arguments
	for i, v := range values {
		a = a.At(i, v)
	}
	return a
}

// NamedArgs builds Arguments from a map of parameter name to value.
func NamedArgs(values map[string]interface{}) Arguments {
	var a Arguments
	for name, v := range values {
		a = a.With(name, v)
	}
	return a
}

// With returns a copy of a with the named argument set.
func (a Arguments) With(name string, v interface{}) Arguments {
	out := a.clone()
	if out.named == nil {
		out.named = make(map[string]interface{})
	}
	out.named[name] = v
	return out
}

// At returns a copy of a with the argument at position i set.
func (a Arguments) At(i int, v interface{}) Arguments {
	out := a.clone()
	if out.positional == nil {
		out.positional = make(map[int]interface{})
	}
	out.positional[i] = v
	return out
}

// Named returns the argument supplied for the parameter called name.
func (a Arguments) Named(name string) (interface{}, bool) {
	v, ok := a.named[name]
	return v, ok
}

// Positional returns the argument supplied for position i.
func (a Arguments) Positional(i int) (interface{}, bool) {
	v, ok := a.positional[i]
	return v, ok
}

// Len returns the number of supplied arguments.
func (a Arguments) Len() int {
	return len(a.named) + len(a.positional)
}

func (a Arguments) clone() Arguments {
	var out Arguments
	if a.named != nil {
		out.named = make(map[string]interface{}, len(a.named))
		for k, v := range a.named {
			out.named[k] = v
		}
	}
	if a.positional != nil {
		out.positional = make(map[int]interface{}, len(a.positional))
		for k, v := range a.positional {
			out.positional[k] = v
		}
	}
	return out
}

// A ParameterResolver decides which value to supply for a parameter.
type ParameterResolver interface {
	// Can reports whether this resolver knows how to supply p.
	Can(p Parameter, args Arguments) bool

	// Resolve produces the value for p. It is only called if Can returned
	// true.
	Resolve(c *Container, p Parameter, args Arguments) (interface{}, error)
}

// NamedParameterResolver supplies the argument given for the parameter's
// name.
type NamedParameterResolver struct{}

var _ ParameterResolver = NamedParameterResolver{}

// Can implements ParameterResolver.
func (NamedParameterResolver) Can(p Parameter, args Arguments) bool {
	if p.Name == "" {
		return false
	}
	_, ok := args.Named(p.Name)
	return ok
}

// Resolve implements ParameterResolver.
func (NamedParameterResolver) Resolve(_ *Container, p Parameter, args Arguments) (interface{}, error) {
	v, _ := args.Named(p.Name)
	return v, nil
}

// PositionalParameterResolver supplies the argument given for the
// parameter's position.
type PositionalParameterResolver struct{}

var _ ParameterResolver = PositionalParameterResolver{}

// Can implements ParameterResolver.
func (PositionalParameterResolver) Can(p Parameter, args Arguments) bool {
	_, ok := args.Positional(p.Position)
	return ok
}

// Resolve implements ParameterResolver.
func (PositionalParameterResolver) Resolve(_ *Container, p Parameter, args Arguments) (interface{}, error) {
	v, _ := args.Positional(p.Position)
	return v, nil
}

// ClassHintParameterResolver asks the container for an instance of the
// parameter's type. If the container cannot supply one and the parameter is
// optional, its default is used instead. Circular dependencies are never
// replaced by the default.
type ClassHintParameterResolver struct{}

var _ ParameterResolver = ClassHintParameterResolver{}

// Can implements ParameterResolver.
func (ClassHintParameterResolver) Can(p Parameter, _ Arguments) bool {
	return p.Type != nil && isClassHint(p.Type)
}

// Resolve implements ParameterResolver.
func (ClassHintParameterResolver) Resolve(c *Container, p Parameter, _ Arguments) (interface{}, error) {
	class := TypeName(p.Type)
	v, err := c.Get(class)
	if err == nil {
		return v, nil
	}
	if isCycle(err) {
		return nil, err
	}
	if p.Optional {
		return p.Default, nil
	}
	return nil, DependencyError{
		Message: fmt.Sprintf("dependency of class %q could not be resolved", class),
		Cause:   err,
	}
}

// DefaultValueParameterResolver supplies the declared default of an optional
// parameter that is not a class hint.
type DefaultValueParameterResolver struct{}

var _ ParameterResolver = DefaultValueParameterResolver{}

// Can implements ParameterResolver.
func (DefaultValueParameterResolver) Can(p Parameter, _ Arguments) bool {
	return p.Optional && (p.Type == nil || !isClassHint(p.Type))
}

// Resolve implements ParameterResolver.
func (DefaultValueParameterResolver) Resolve(_ *Container, p Parameter, _ Arguments) (interface{}, error) {
	return p.Default, nil
}

// ParameterResolvers tries each resolver in order and uses the first one
// that can supply the parameter. If the selected value is a Definition, it
// is resolved against the container.
type ParameterResolvers []ParameterResolver

var _ ParameterResolver = ParameterResolvers(nil)

// DefaultParameterResolvers returns the standard chain: named arguments,
// then positional arguments, then autowiring by type, then declared
// defaults.
func DefaultParameterResolvers() ParameterResolvers {
	return ParameterResolvers{
		NamedParameterResolver{},
		PositionalParameterResolver{},
		ClassHintParameterResolver{},
		DefaultValueParameterResolver{},
	}
}

// Can implements ParameterResolver. A chain always accepts a parameter and
// reports failures from Resolve instead.
func (ParameterResolvers) Can(Parameter, Arguments) bool { return true }

// Resolve implements ParameterResolver.
func (rs ParameterResolvers) Resolve(c *Container, p Parameter, args Arguments) (interface{}, error) {
	for _, r := range rs {
		if !r.Can(p, args) {
			continue
		}

		v, err := r.Resolve(c, p, args)
		if err != nil {
			return nil, err
		}
		if d, ok := v.(Definition); ok {
			return d.Resolve(c)
		}
		return v, nil
	}

	return nil, DependencyError{
		Message: fmt.Sprintf("parameter %v of method %q in class %q could not be resolved",
			p, p.Method, p.Class),
	}
}
