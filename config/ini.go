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
	"github.com/go-ini/ini"
)

// parseINI reads definitions from an INI file. Keys outside of any section
// keep their name, others are prefixed with the section name and a dot.
func parseINI(data []byte) (map[string]interface{}, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, err
	}

	defs := make(map[string]interface{})
	for _, sec := range f.Sections() {
		for _, key := range sec.Keys() {
			id := key.Name()
			if sec.Name() != ini.DefaultSection {
				id = sec.Name() + "." + id
			}
			defs[id] = scalarOrExpression(key.String())
		}
	}
	return defs, nil
}
