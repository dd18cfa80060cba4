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

	"github.com/derbenni/izon/internal/izonclock"
	"go.uber.org/zap"
)

// ObjectDefinitionFactory builds definitions for ids that name a class but
// were never added to a container. A Registry is an ObjectDefinitionFactory.
type ObjectDefinitionFactory interface {
	Can(class string) bool
	Make(class string) (Definition, error)
}

// Definitions maps ids to the definitions of their values.
type Definitions map[string]Definition

// Container maps ids to lazily resolved values.
//
// Values are resolved from their definitions the first time they are
// requested with Get and cached afterwards. Ids that have no definition but
// name a class known to the container's object definition factory are
// autowired.
//
// A Container is not safe for concurrent use.
type Container struct {
	factory     ObjectDefinitionFactory
	definitions map[string]Definition
	values      map[string]interface{}

	// Ids currently being resolved, outermost first.
	resolving []string

	logger *zap.Logger
	clock  izonclock.Clock

	recoverFromPanics bool

	stats *stats
}

// New builds a Container holding defs.
//
// Every id must be non-empty and every definition non-nil, else New fails
// with an InvalidArgumentError naming the offending id.
func New(defs Definitions, opts ...Option) (*Container, error) {
	c := &Container{
		factory:     DefaultRegistry,
		definitions: make(map[string]Definition, len(defs)),
		values:      make(map[string]interface{}),
		logger:      zap.NewNop(),
		clock:       izonclock.System,
		stats:       newStats(),
	}

	for _, opt := range opts {
		opt.applyOption(c)
	}

	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := c.Add(id, defs[id]); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Add binds id to d, replacing any previous definition and dropping any
// value cached for id.
func (c *Container) Add(id string, d Definition) error {
	if id == "" {
		return invalidArgumentf("definition id must not be empty")
	}
	if isNilDefinition(d) {
		return invalidArgumentf("definition for %q must not be nil", id)
	}

	c.definitions[id] = d
	delete(c.values, id)
	return nil
}

// isNilDefinition reports whether d is nil or a nil pointer, map or func
// wrapped in the interface.
func isNilDefinition(d Definition) bool {
	if d == nil {
		return true
	}
	switch v := reflect.ValueOf(d); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// Has reports whether the container can supply a value for id.
//
// If id has no definition but names a class the object definition factory
// can build, Has adds an autowired definition for it and returns true.
func (c *Container) Has(id string) bool {
	if _, ok := c.definitions[id]; ok {
		return true
	}
	if c.factory == nil || !c.factory.Can(id) {
		return false
	}

	d, err := c.factory.Make(id)
	if err != nil {
		c.logger.Debug("autowiring failed", zap.String("id", id), zap.Error(err))
		return false
	}

	c.definitions[id] = d
	c.stats.Promotions.Inc()
	c.logger.Debug("definition autowired", zap.String("id", id))
	return true
}

// Get returns the value of id, resolving it on first use. Later calls
// return the same value.
//
// Get fails with a NotFoundError if the container has no definition for id
// and cannot autowire it. Failed resolutions are not cached.
func (c *Container) Get(id string) (interface{}, error) {
	if v, ok := c.values[id]; ok {
		c.stats.Hits.Inc()
		return v, nil
	}
	c.stats.Misses.Inc()

	v, err := c.resolve(id)
	if err != nil {
		return nil, err
	}
	c.values[id] = v
	return v, nil
}

// Make resolves id anew on every call. It neither reads nor fills the
// cache used by Get, although dependencies of id are still fetched with
// Get.
func (c *Container) Make(id string) (interface{}, error) {
	return c.resolve(id)
}

func (c *Container) resolve(id string) (v interface{}, err error) {
	if !c.Has(id) {
		return nil, NotFoundError{ID: id}
	}

	if err := c.enter(id); err != nil {
		return nil, err
	}
	defer c.leave(id)

	if c.recoverFromPanics {
		defer func() {
			if p := recover(); p != nil {
				v, err = nil, PanicError{ID: id, Panic: p}
			}
		}()
	}

	start := c.clock.Now()
	v, err = c.definitions[id].Resolve(c)
	elapsed := c.clock.Since(start)

	if err != nil {
		c.stats.Failures.Inc()
		c.logger.Debug("resolution failed",
			zap.String("id", id),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return nil, err
	}

	c.stats.Resolutions.Inc()
	c.logger.Debug("resolved",
		zap.String("id", id),
		zap.Duration("duration", elapsed),
		zap.Int("depth", len(c.resolving)))
	return v, nil
}

// IDs returns every id that currently has a definition, in sorted order.
func (c *Container) IDs() []string {
	ids := make([]string, 0, len(c.definitions))
	for id := range c.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Definition returns the definition bound to id, without autowiring.
func (c *Container) Definition(id string) (Definition, bool) {
	d, ok := c.definitions[id]
	return d, ok
}

// String representation of the container.
func (c *Container) String() string {
	return fmt.Sprintf("izon.Container%v", c.IDs())
}

// Resolve fetches id from c with Get and asserts that its value is a T.
//
//	mailer, err := izon.Resolve[*app.Mailer](c, izon.NameOf[*app.Mailer]())
func Resolve[T any](c *Container, id string) (T, error) {
	var zero T
	v, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, invalidArgumentf("value of %q has type %T, not %v", id, v, NameOf[T]())
	}
	return t, nil
}

// ResolveClass is shorthand for Resolve with the class name of T as id.
func ResolveClass[T any](c *Container) (T, error) {
	return Resolve[T](c, NameOf[T]())
}
