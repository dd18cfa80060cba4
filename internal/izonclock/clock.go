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

package izonclock

import (
	"time"
)

// Clock defines how izon measures resolution time.
type Clock interface {
	Now() time.Time
	Since(time.Time) time.Duration
}

// System is the default implementation of Clock based on real time.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Mock is a fake source of time. Each call to Now advances the clock by
// Step, so code timing itself against a Mock observes a fixed duration per
// measurement.
//
// Mock is not safe for concurrent use.
type Mock struct {
	now time.Time

	// Step is added to the current time after every call to Now.
	Step time.Duration
}

var _ Clock = (*Mock)(nil)

// NewMock creates a new mock clock set to the current time that advances by
// step on every reading.
func NewMock(step time.Duration) *Mock {
	return &Mock{now: time.Now(), Step: step}
}

// Now returns the current time and then advances the clock by Step.
func (m *Mock) Now() time.Time {
	now := m.now
	m.now = m.now.Add(m.Step)
	return now
}

// Since returns the time elapsed since the given time without advancing
// the clock.
func (m *Mock) Since(t time.Time) time.Duration {
	return m.now.Sub(t)
}

// Add progresses time by the given duration.
//
// It panics if the duration is negative.
func (m *Mock) Add(d time.Duration) {
	if d < 0 {
		panic("cannot add negative duration")
	}
	m.now = m.now.Add(d)
}
