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
	"unsafe"

	"github.com/derbenni/izon/internal/dot"
)

// ConstructorMethod is the method name that addresses the constructor in
// ObjectDefinition.Method and ObjectDefinition.MethodParameter.
const ConstructorMethod = "New"

// ObjectDefinition resolves to a new instance of a registered class. The
// constructor is autowired; constructor arguments, properties and method
// calls configured on the definition are applied on top.
//
// An ObjectDefinition must be fully configured before it is first
// resolved. Configuring it afterwards panics.
type ObjectDefinition struct {
	class   string
	objects *ObjectResolver

	constructor Arguments
	properties  []property
	calls       []methodCall

	resolved bool
}

type property struct {
	name  string
	value interface{}
}

type methodCall struct {
	name string
	args Arguments
}

var _ Definition = (*ObjectDefinition)(nil)

func newObjectDefinition(class string, objects *ObjectResolver) *ObjectDefinition {
	return &ObjectDefinition{class: class, objects: objects}
}

// Class returns the name of the class this definition instantiates.
func (d *ObjectDefinition) Class() string { return d.class }

func (d *ObjectDefinition) checkMutable() {
	if d.resolved {
		panic(fmt.Sprintf("object definition for %q cannot be changed after it was resolved", d.class))
	}
}

// Constructor sets positional constructor arguments, replacing any set
// before. Named arguments set with ConstructorParameter take precedence.
func (d *ObjectDefinition) Constructor(args ...interface{}) *ObjectDefinition {
	d.checkMutable()
	named := d.constructor.named
	d.constructor = Args(args...)
	d.constructor.named = named
	return d
}

// ConstructorParameter sets the constructor argument for the parameter
// called name.
func (d *ObjectDefinition) ConstructorParameter(name string, value interface{}) *ObjectDefinition {
	d.checkMutable()
	d.constructor = d.constructor.With(name, value)
	return d
}

// Property sets the field called name on the new instance, even if it is
// unexported. Setting the same property twice keeps the last value.
func (d *ObjectDefinition) Property(name string, value interface{}) *ObjectDefinition {
	d.checkMutable()
	for i, p := range d.properties {
		if p.name == name {
			d.properties[i].value = value
			return d
		}
	}
	d.properties = append(d.properties, property{name: name, value: value})
	return d
}

// Method adds a call of the method called name with positional arguments.
// Calls are made in the order they were added. Using ConstructorMethod as
// the name is the same as calling Constructor.
func (d *ObjectDefinition) Method(name string, args ...interface{}) *ObjectDefinition {
	if name == ConstructorMethod {
		return d.Constructor(args...)
	}
	d.checkMutable()
	d.calls = append(d.calls, methodCall{name: name, args: Args(args...)})
	return d
}

// Call adds a call of the method called name with args, which may mix
// named and positional arguments.
func (d *ObjectDefinition) Call(name string, args Arguments) *ObjectDefinition {
	d.checkMutable()
	d.calls = append(d.calls, methodCall{name: name, args: args})
	return d
}

// MethodParameter sets a named argument for the first call of the method
// called name, adding a call if there is none. Using ConstructorMethod as
// the name is the same as calling ConstructorParameter.
func (d *ObjectDefinition) MethodParameter(name, param string, value interface{}) *ObjectDefinition {
	if name == ConstructorMethod {
		return d.ConstructorParameter(param, value)
	}
	d.checkMutable()
	for i, call := range d.calls {
		if call.name == name {
			d.calls[i].args = call.args.With(param, value)
			return d
		}
	}
	d.calls = append(d.calls, methodCall{name: name, args: Arguments{}.With(param, value)})
	return d
}

// Resolve builds a new instance, sets the configured properties and makes
// the configured method calls.
func (d *ObjectDefinition) Resolve(c *Container) (interface{}, error) {
	d.resolved = true

	cls, ok := d.objects.registry.Lookup(d.class)
	if !ok {
		return nil, invalidArgumentf("class %q is not registered", d.class)
	}

	obj, err := d.objects.instantiate(c, cls, d.constructor)
	if err != nil {
		return nil, err
	}
	if obj.Kind() == reflect.Struct && !obj.CanAddr() {
		// Fields and pointer methods need an addressable value.
		cp := reflect.New(obj.Type()).Elem()
		cp.Set(obj)
		obj = cp
	}

	if len(d.properties) > 0 {
		if obj, err = d.setProperties(c, cls, obj); err != nil {
			return nil, err
		}
	}

	for _, call := range d.calls {
		if err := d.call(c, cls, obj, call); err != nil {
			return nil, err
		}
	}

	return obj.Interface(), nil
}

// setProperties assigns the configured fields. A struct held in an
// interface is copied so its fields become settable; the copy is returned.
func (d *ObjectDefinition) setProperties(c *Container, cls *Class, obj reflect.Value) (reflect.Value, error) {
	target := obj
	if obj.Kind() == reflect.Interface && !obj.IsNil() {
		target = obj.Elem()
	}

	var copied bool
	switch {
	case target.Kind() == reflect.Ptr && !target.IsNil() && target.Elem().Kind() == reflect.Struct:
		target = target.Elem()
	case target.Kind() == reflect.Struct:
		if !target.CanAddr() {
			cp := reflect.New(target.Type()).Elem()
			cp.Set(target)
			target = cp
			copied = true
		}
	default:
		return _noValue, invalidArgumentf("class %q has no properties: instances are of type %v", d.class, obj.Type())
	}

	for _, p := range d.properties {
		f := target.FieldByName(p.name)
		if !f.IsValid() {
			return _noValue, invalidArgumentf("class %q has no property %q", d.class, p.name)
		}

		v := p.value
		if def, ok := v.(Definition); ok {
			var err error
			if v, err = def.Resolve(c); err != nil {
				return _noValue, errWrapf(err, "property %q of class %q", p.name, cls.name)
			}
		}

		rv, err := adaptValue(v, f.Type())
		if err != nil {
			return _noValue, DependencyError{
				Message: fmt.Sprintf("property %q of class %q could not be set", p.name, cls.name),
				Cause:   err,
			}
		}

		if !f.CanSet() {
			f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
		}
		f.Set(rv)
	}

	if copied {
		out := reflect.New(obj.Type()).Elem()
		out.Set(target)
		return out, nil
	}
	return obj, nil
}

func (d *ObjectDefinition) call(c *Container, cls *Class, obj reflect.Value, call methodCall) error {
	m := obj.MethodByName(call.name)
	if !m.IsValid() && obj.CanAddr() {
		m = obj.Addr().MethodByName(call.name)
	}
	if !m.IsValid() {
		return invalidArgumentf("class %q has no method %q", d.class, call.name)
	}

	sig := Signature{
		Class:  cls.name,
		Method: call.name,
		Params: cls.methodParams(call.name, m.Type()),
	}
	in, err := d.objects.methods.Resolve(c, sig, call.args)
	if err != nil {
		return err
	}

	var out []reflect.Value
	if m.Type().IsVariadic() {
		out = m.CallSlice(in)
	} else {
		out = m.Call(in)
	}

	if n := len(out); n > 0 && out[n-1].Type() == _errType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return errWrapf(err, "method %q of class %q failed", call.name, cls.name)
		}
	}
	return nil
}

// dependencies lists the ids the constructor autowires by type and those
// referenced by configured values.
func (d *ObjectDefinition) dependencies() []dependency {
	var deps []dependency
	if cls, ok := d.objects.registry.Lookup(d.class); ok {
		for _, p := range cls.params {
			if (NamedParameterResolver{}).Can(p, d.constructor) ||
				(PositionalParameterResolver{}).Can(p, d.constructor) {
				continue
			}
			if isClassHint(p.Type) {
				deps = append(deps, dependency{id: TypeName(p.Type), kind: dot.ClassHint})
			}
		}
	}

	values := make([]interface{}, 0, d.constructor.Len()+len(d.properties))
	for _, v := range d.constructor.named {
		values = append(values, v)
	}
	for _, v := range d.constructor.positional {
		values = append(values, v)
	}
	for _, p := range d.properties {
		values = append(values, p.value)
	}
	for _, call := range d.calls {
		for _, v := range call.args.named {
			values = append(values, v)
		}
		for _, v := range call.args.positional {
			values = append(values, v)
		}
	}
	for _, v := range values {
		if def, ok := v.(Definition); ok {
			deps = append(deps, dependenciesOf(def)...)
		}
	}
	return deps
}
