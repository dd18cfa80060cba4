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
	"github.com/derbenni/izon/internal/sources"
	"go.uber.org/zap"
)

// Builder collects definitions from several sources, later sources
// overriding earlier ones, and builds a Container from them.
type Builder struct {
	opts        []Option
	logger      *zap.Logger
	definitions Definitions
	sources     *sources.Set
}

// NewBuilder returns an empty Builder. opts are passed to the Container
// built by Build.
func NewBuilder(opts ...Option) *Builder {
	// Apply the options to a scratch container to find the logger.
	var scratch Container
	scratch.logger = zap.NewNop()
	for _, opt := range opts {
		opt.applyOption(&scratch)
	}

	return &Builder{
		opts:        opts,
		logger:      scratch.logger,
		definitions: make(Definitions),
		sources:     sources.NewSet(),
	}
}

// AddDefinitions adds the entries of defs, supplied by source. Values that
// are not Definitions are wrapped with Value. Entries override those with
// the same id from earlier calls.
func (b *Builder) AddDefinitions(source string, defs map[string]interface{}) error {
	for _, id := range sortedNames(defs) {
		if id == "" {
			return invalidArgumentf("definition id from %v must not be empty", source)
		}

		d, ok := defs[id].(Definition)
		if !ok {
			var err error
			if d, err = Value(defs[id]); err != nil {
				return errWrapf(err, "definition %q from %v", id, source)
			}
		}

		if prev, overridden := b.sources.Provide(source, id); overridden {
			b.logger.Debug("definition overridden",
				zap.String("id", id),
				zap.String("previous", prev),
				zap.String("source", source))
		}
		b.definitions[id] = d
	}
	return nil
}

// Source returns the source that supplied the current definition of id.
func (b *Builder) Source(id string) (string, bool) {
	return b.sources.Source(id)
}

// IDs returns the ids added so far, in the order they were first added.
func (b *Builder) IDs() []string {
	return append([]string(nil), b.sources.Items()...)
}

// Build returns a new Container holding the collected definitions.
func (b *Builder) Build() (*Container, error) {
	defs := make(Definitions, len(b.definitions))
	for id, d := range b.definitions {
		defs[id] = d
	}
	return New(defs, b.opts...)
}
