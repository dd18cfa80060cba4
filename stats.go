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

import "go.uber.org/atomic"

// Stats is a snapshot of a container's resolution counters.
type Stats struct {
	// Hits counts Get calls answered from the cache.
	Hits int64

	// Misses counts Get calls that had to resolve.
	Misses int64

	// Resolutions counts successful resolutions by Get and Make,
	// including nested ones.
	Resolutions int64

	// Failures counts failed resolutions.
	Failures int64

	// Promotions counts ids autowired by Has.
	Promotions int64
}

// stats counters may be read from other goroutines while the container is
// in use, for example by a metrics collector.
type stats struct {
	Hits        atomic.Int64
	Misses      atomic.Int64
	Resolutions atomic.Int64
	Failures    atomic.Int64
	Promotions  atomic.Int64
}

func newStats() *stats { return new(stats) }

// Stats returns the current counters of c.
func (c *Container) Stats() Stats {
	return Stats{
		Hits:        c.stats.Hits.Load(),
		Misses:      c.stats.Misses.Load(),
		Resolutions: c.stats.Resolutions.Load(),
		Failures:    c.stats.Failures.Load(),
		Promotions:  c.stats.Promotions.Load(),
	}
}
