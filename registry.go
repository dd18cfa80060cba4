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
	"sort"
	"sync"

	"github.com/derbenni/izon/internal/izonreflect"
)

// Registry knows how to build instances of registered classes. It is the
// object definition factory a Container uses to autowire ids that name a
// class but have no definition.
//
// Go keeps neither parameter names nor default values at runtime, so both
// are declared at registration time with Params and Default.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class

	methods *MethodResolver
	objects *ObjectResolver
}

var _ ObjectDefinitionFactory = (*Registry)(nil)

// DefaultRegistry is the Registry used by Register, RegisterType, Object and
// by containers built without WithRegistry or WithObjectFactory.
var DefaultRegistry = NewRegistry()

// NewRegistry builds an empty Registry that resolves parameters with
// DefaultParameterResolvers.
func NewRegistry() *Registry {
	r := &Registry{classes: make(map[string]*Class)}
	r.methods = NewMethodResolver(DefaultParameterResolvers())
	r.objects = &ObjectResolver{registry: r, methods: r.methods}
	return r
}

// Class is a registered type together with the function that builds it.
type Class struct {
	name     string
	typ      reflect.Type
	ctor     reflect.Value // invalid if the class has no constructor
	params   []Parameter
	methods  map[string]*methodSpec
	location *izonreflect.Func
}

type methodSpec struct {
	names    []string
	defaults map[string]interface{}
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Type returns the Go type of instances of this class.
func (c *Class) Type() reflect.Type { return c.typ }

// Params returns the constructor parameters. It is empty for classes
// registered without a constructor.
func (c *Class) Params() []Parameter {
	return append([]Parameter(nil), c.params...)
}

// Location returns where the class was registered.
func (c *Class) Location() *izonreflect.Func { return c.location }

// methodParams describes the parameters of the method with type ft.
func (c *Class) methodParams(method string, ft reflect.Type) []Parameter {
	spec := c.methods[method]
	params := make([]Parameter, ft.NumIn())
	for i := range params {
		p := Parameter{
			Position: i,
			Type:     ft.In(i),
			Method:   method,
			Class:    c.name,
		}
		if spec != nil && i < len(spec.names) {
			p.Name = spec.names[i]
			if d, ok := spec.defaults[p.Name]; ok {
				p.Optional = true
				p.Default = d
			}
		}
		params[i] = p
	}
	return params
}

// A RegisterOption modifies the default behavior of Register and
// RegisterType.
type RegisterOption interface {
	applyRegisterOption(*registerOptions)
}

type registerOptions struct {
	Name     string
	Params   []string
	Defaults map[string]interface{}
	Methods  map[string]*methodSpec

	// Order in which methods were configured, for deterministic errors.
	MethodOrder []string
}

func (o *registerOptions) method(name string) *methodSpec {
	if o.Methods == nil {
		o.Methods = make(map[string]*methodSpec)
	}
	spec, ok := o.Methods[name]
	if !ok {
		spec = &methodSpec{}
		o.Methods[name] = spec
		o.MethodOrder = append(o.MethodOrder, name)
	}
	return spec
}

type registerOptionFunc func(*registerOptions)

func (f registerOptionFunc) applyRegisterOption(o *registerOptions) { f(o) }

// Named registers the class under name instead of the name of the type the
// constructor returns.
func Named(name string) RegisterOption {
	return registerOptionFunc(func(o *registerOptions) {
		o.Name = name
	})
}

// Params names the constructor parameters, in order. The number of names
// must match the number of parameters. Names enable named arguments and
// defaults.
func Params(names ...string) RegisterOption {
	return registerOptionFunc(func(o *registerOptions) {
		o.Params = names
	})
}

// Default declares a default value for the named constructor parameter,
// making it optional.
func Default(param string, value interface{}) RegisterOption {
	return registerOptionFunc(func(o *registerOptions) {
		if o.Defaults == nil {
			o.Defaults = make(map[string]interface{})
		}
		o.Defaults[param] = value
	})
}

// MethodParams names the parameters of a method, in order.
func MethodParams(method string, names ...string) RegisterOption {
	return registerOptionFunc(func(o *registerOptions) {
		o.method(method).names = names
	})
}

// MethodDefault declares a default value for a named method parameter.
func MethodDefault(method, param string, value interface{}) RegisterOption {
	return registerOptionFunc(func(o *registerOptions) {
		spec := o.method(method)
		if spec.defaults == nil {
			spec.defaults = make(map[string]interface{})
		}
		spec.defaults[param] = value
	})
}

// Register adds a class built by the constructor ctor to DefaultRegistry.
func Register(ctor interface{}, opts ...RegisterOption) error {
	return DefaultRegistry.Register(ctor, opts...)
}

// MustRegister is like Register but panics on failure. It is meant for
// package init functions.
func MustRegister(ctor interface{}, opts ...RegisterOption) {
	if err := Register(ctor, opts...); err != nil {
		panic(err)
	}
}

// RegisterType adds a class without constructor to DefaultRegistry.
func RegisterType(zero interface{}, opts ...RegisterOption) error {
	return DefaultRegistry.RegisterType(zero, opts...)
}

// Register adds a class built by the constructor ctor.
//
// ctor must be a function returning either a single value or a value and an
// error. The class is named after the returned type unless the Named option
// is given. Every parameter of ctor is resolved when the class is
// instantiated:
//
//	r.Register(NewMailer, izon.Params("transport", "from"), izon.Default("from", "noreply@example.com"))
func (r *Registry) Register(ctor interface{}, opts ...RegisterOption) error {
	if ctor == nil {
		return invalidArgumentf("can't register an untyped nil")
	}

	ctype := reflect.TypeOf(ctor)
	if ctype.Kind() != reflect.Func {
		return invalidArgumentf("must register constructor function, got %v (type %v)", ctor, ctype)
	}
	if ctype.IsVariadic() {
		return invalidArgumentf("constructor %v must not be variadic", ctype)
	}

	switch {
	case ctype.NumOut() == 1 && ctype.Out(0) != _errType:
	case ctype.NumOut() == 2 && ctype.Out(0) != _errType && ctype.Out(1) == _errType:
	default:
		return invalidArgumentf("constructor %v must return a value, optionally followed by an error", ctype)
	}

	return r.add(ctype.Out(0), reflect.ValueOf(ctor), izonreflect.InspectFunc(ctor), opts)
}

// RegisterType adds the type of zero as a class without constructor.
// Instances are fresh zero values; for pointer types, a pointer to a new
// zero value.
func (r *Registry) RegisterType(zero interface{}, opts ...RegisterOption) error {
	if zero == nil {
		return invalidArgumentf("can't register an untyped nil")
	}
	t := reflect.TypeOf(zero)
	if t.Kind() == reflect.Func {
		return invalidArgumentf("can't register function type %v without constructor, use Register", t)
	}
	return r.add(t, reflect.Value{}, izonreflect.InspectType(t), opts)
}

func (r *Registry) add(t reflect.Type, ctor reflect.Value, loc *izonreflect.Func, opts []RegisterOption) error {
	var options registerOptions
	for _, o := range opts {
		o.applyRegisterOption(&options)
	}

	cls := &Class{
		name:     options.Name,
		typ:      t,
		ctor:     ctor,
		methods:  options.Methods,
		location: loc,
	}
	if cls.name == "" {
		cls.name = TypeName(t)
	}

	if err := cls.buildParams(options); err != nil {
		return errWrapf(err, "cannot register %v", loc)
	}
	if err := cls.checkMethods(options); err != nil {
		return errWrapf(err, "cannot register %v", loc)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.classes[cls.name]; ok {
		return invalidArgumentf("class %q is already registered by %v", cls.name, prev.location)
	}
	r.classes[cls.name] = cls
	return nil
}

func (c *Class) buildParams(o registerOptions) error {
	if !c.ctor.IsValid() {
		if len(o.Params) > 0 || len(o.Defaults) > 0 {
			return invalidArgumentf("class %q has no constructor to name parameters of", c.name)
		}
		return nil
	}

	ft := c.ctor.Type()
	if len(o.Params) > 0 && len(o.Params) != ft.NumIn() {
		return invalidArgumentf("got %d parameter names for constructor with %d parameters",
			len(o.Params), ft.NumIn())
	}

	seen := make(map[string]struct{}, len(o.Params))
	c.params = make([]Parameter, ft.NumIn())
	for i := range c.params {
		p := Parameter{
			Position: i,
			Type:     ft.In(i),
			Method:   ConstructorMethod,
			Class:    c.name,
		}
		if len(o.Params) > 0 {
			p.Name = o.Params[i]
			if _, dup := seen[p.Name]; dup {
				return invalidArgumentf("parameter name %q is used twice", p.Name)
			}
			seen[p.Name] = struct{}{}
		}
		c.params[i] = p
	}

	for _, name := range sortedNames(o.Defaults) {
		if err := setDefault(c.params, name, o.Defaults[name]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Class) checkMethods(o registerOptions) error {
	for _, name := range o.MethodOrder {
		spec := o.Methods[name]
		m, ok := methodByName(c.typ, name)
		if !ok {
			return invalidArgumentf("class %q has no method %q", c.name, name)
		}

		ft := m.Type
		if len(spec.names) != ft.NumIn() {
			return invalidArgumentf("got %d parameter names for method %q with %d parameters",
				len(spec.names), name, ft.NumIn())
		}

		params := c.methodParams(name, ft)
		for _, param := range sortedNames(spec.defaults) {
			if err := setDefault(params, param, spec.defaults[param]); err != nil {
				return errWrapf(err, "method %q", name)
			}
		}
	}
	return nil
}

// setDefault checks that a default can be used for the named parameter.
func setDefault(params []Parameter, name string, value interface{}) error {
	for i, p := range params {
		if p.Name != name {
			continue
		}
		if _, err := adaptValue(value, p.Type); err != nil {
			if _, isDef := value.(Definition); !isDef {
				return invalidArgumentf("default for parameter %q: %v", name, err)
			}
		}
		params[i].Optional = true
		params[i].Default = value
		return nil
	}
	return invalidArgumentf("unknown parameter %q", name)
}

// methodByName finds a method on t or, for addressable kinds, on *t. The
// returned method type does not include the receiver.
func methodByName(t reflect.Type, name string) (reflect.Method, bool) {
	if t.Kind() == reflect.Interface {
		return t.MethodByName(name)
	}

	pt := t
	if t.Kind() != reflect.Ptr {
		pt = reflect.PointerTo(t)
	}
	m, ok := pt.MethodByName(name)
	if !ok {
		return m, false
	}
	// Drop the receiver so interface and concrete methods look alike.
	in := make([]reflect.Type, 0, m.Type.NumIn()-1)
	for i := 1; i < m.Type.NumIn(); i++ {
		in = append(in, m.Type.In(i))
	}
	out := make([]reflect.Type, m.Type.NumOut())
	for i := range out {
		out[i] = m.Type.Out(i)
	}
	m.Type = reflect.FuncOf(in, out, m.Type.IsVariadic())
	return m, true
}

func sortedNames(m map[string]interface{}) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the class registered under name.
func (r *Registry) Lookup(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cls, ok := r.classes[name]
	return cls, ok
}

// Can reports whether class names a registered class.
func (r *Registry) Can(class string) bool {
	_, ok := r.Lookup(class)
	return ok
}

// Make builds an autowired object definition for class.
func (r *Registry) Make(class string) (Definition, error) {
	return r.Object(class)
}

// Object builds an object definition for class that can be further
// configured before it is added to a container.
func (r *Registry) Object(class string) (*ObjectDefinition, error) {
	if !r.Can(class) {
		return nil, invalidArgumentf("class %q is not registered", class)
	}
	return newObjectDefinition(class, r.objects), nil
}

// Classes returns the names of all registered classes in sorted order.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) String() string {
	return fmt.Sprintf("Registry%v", r.Classes())
}
