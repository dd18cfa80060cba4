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

package sources

// Set is an ordered record of which configuration source supplied each
// definition id. Later sources overwrite earlier ones; Set remembers the
// source an id was taken from so overrides can be reported.
type Set struct {
	// Ids that have already been taken. The value for this map is the
	// source from which this id came.
	taken map[string]string
	ids   []string
}

// NewSet builds a new Set.
func NewSet() *Set {
	return &Set{taken: make(map[string]string)}
}

// Provide records that source supplied id. If another source supplied id
// before, Provide reports it as the previous source and overridden is true.
// The id keeps its original position in Items.
func (s *Set) Provide(source, id string) (previous string, overridden bool) {
	previous, overridden = s.taken[id]
	if !overridden {
		s.ids = append(s.ids, id)
	}
	s.taken[id] = source
	return previous, overridden
}

// Source returns the source that last supplied id.
func (s *Set) Source(id string) (string, bool) {
	src, ok := s.taken[id]
	return src, ok
}

// Items returns the ids in this Set in the order they were first provided.
func (s *Set) Items() []string { return s.ids }
