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

import "github.com/derbenni/izon/internal/dot"

// EntryReferenceDefinition resolves to the value of another id in the same
// container.
type EntryReferenceDefinition struct {
	id string
}

var _ Definition = (*EntryReferenceDefinition)(nil)

// NewEntryReference returns a definition referring to id.
func NewEntryReference(id string) *EntryReferenceDefinition {
	return &EntryReferenceDefinition{id: id}
}

// ID returns the referenced id.
func (d *EntryReferenceDefinition) ID() string { return d.id }

// Resolve returns c.Get of the referenced id.
func (d *EntryReferenceDefinition) Resolve(c *Container) (interface{}, error) {
	return c.Get(d.id)
}

func (d *EntryReferenceDefinition) dependencies() []dependency {
	return []dependency{{id: d.id, kind: dot.Reference}}
}
