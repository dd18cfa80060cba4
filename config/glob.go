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

package config

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Glob returns the names of all files matching pattern.
//
// In addition to the filepath.Match syntax, pattern may contain {a,b}
// alternatives, which can be nested. Matches are returned alternative by
// alternative, sorted within each, so that
//
//	config/{base,local}.yaml
//
// yields config/base.yaml before config/local.yaml. A file matched by more
// than one alternative is only returned the first time.
func Glob(pattern string) ([]string, error) {
	var (
		files []string
		seen  = make(map[string]struct{})
	)
	for _, p := range expandBraces(pattern) {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	return files, nil
}

// expandBraces returns the patterns described by the {a,b} alternatives in
// pattern, in order. Unbalanced braces are kept as they are.
func expandBraces(pattern string) []string {
	start := strings.IndexByte(pattern, '{')
	if start < 0 {
		return []string{pattern}
	}

	depth := 0
	commas := []int{}
	end := -1
scan:
	for i := start; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
				break scan
			}
		case ',':
			if depth == 1 {
				commas = append(commas, i)
			}
		}
	}
	if end < 0 {
		return []string{pattern}
	}

	prefix, suffix := pattern[:start], pattern[end+1:]
	var alternatives []string
	last := start + 1
	for _, c := range append(commas, end) {
		alternatives = append(alternatives, pattern[last:c])
		last = c + 1
	}

	var out []string
	for _, alt := range alternatives {
		out = append(out, expandBraces(prefix+alt+suffix)...)
	}
	return out
}
