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
	"github.com/derbenni/izon/internal/izonclock"
	"go.uber.org/zap"
)

// Option configures a Container.
type Option interface {
	applyOption(*Container)
}

type optionFunc func(*Container)

func (f optionFunc) applyOption(c *Container) { f(c) }

// WithRegistry autowires ids with r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	if r == nil {
		return WithObjectFactory(nil)
	}
	return WithObjectFactory(r)
}

// WithObjectFactory autowires ids with f instead of DefaultRegistry. A nil
// factory disables autowiring.
func WithObjectFactory(f ObjectDefinitionFactory) Option {
	return optionFunc(func(c *Container) {
		c.factory = f
	})
}

// WithLogger sets the logger the container reports resolutions to. The
// default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(c *Container) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// RecoverFromPanics makes Get and Make return a PanicError instead of
// panicking when a constructor, factory or method panics.
func RecoverFromPanics() Option {
	return optionFunc(func(c *Container) {
		c.recoverFromPanics = true
	})
}

// setClock sets the time source used to time resolutions. For tests.
func setClock(clock izonclock.Clock) Option {
	return optionFunc(func(c *Container) {
		c.clock = clock
	})
}
