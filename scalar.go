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

import "reflect"

// ScalarDefinition resolves to a single boolean, string or number.
type ScalarDefinition struct {
	value interface{}
}

var _ Definition = (*ScalarDefinition)(nil)

// NewScalar wraps v. It fails with an InvalidArgumentError if v is not a
// boolean, string or number.
func NewScalar(v interface{}) (*ScalarDefinition, error) {
	if v == nil || !isScalarKind(reflect.TypeOf(v).Kind()) {
		return nil, invalidArgumentf("scalar definition must be a bool, string or number, got %T", v)
	}
	return &ScalarDefinition{value: v}, nil
}

// Value returns the wrapped value.
func (d *ScalarDefinition) Value() interface{} { return d.value }

// Resolve returns the wrapped value.
func (d *ScalarDefinition) Resolve(*Container) (interface{}, error) {
	return d.value, nil
}
