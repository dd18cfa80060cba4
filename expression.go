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
	"regexp"

	"github.com/derbenni/izon/internal/dot"
)

var _placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// ExpressionDefinition resolves to a string in which every {id} placeholder
// is replaced by the string form of the value of id.
//
//	izon.Expression("{db.host}:{db.port}")
type ExpressionDefinition struct {
	expression string
	resolver   ExpressionResolver
}

var _ Definition = (*ExpressionDefinition)(nil)

// NewExpression returns a definition for the template s.
func NewExpression(s string) *ExpressionDefinition {
	return &ExpressionDefinition{expression: s}
}

// Expression returns the template.
func (d *ExpressionDefinition) Expression() string { return d.expression }

// Placeholders returns the ids referenced by the template, in order of
// appearance.
func (d *ExpressionDefinition) Placeholders() []string {
	return placeholders(d.expression)
}

// Resolve renders the template.
func (d *ExpressionDefinition) Resolve(c *Container) (interface{}, error) {
	return d.resolver.Resolve(c, d.expression)
}

func (d *ExpressionDefinition) dependencies() []dependency {
	var deps []dependency
	for _, id := range d.Placeholders() {
		deps = append(deps, dependency{id: id, kind: dot.Placeholder})
	}
	return deps
}

func placeholders(s string) []string {
	matches := _placeholderRe.FindAllStringSubmatch(s, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

// HasPlaceholders reports whether s contains at least one {id} placeholder.
func HasPlaceholders(s string) bool {
	return _placeholderRe.MatchString(s)
}

// ExpressionResolver renders expression templates against a container.
type ExpressionResolver struct{}

// Resolve replaces every placeholder in expr with the string form of the
// value of its id.
//
// If a placeholder names an id the container does not have, Resolve fails
// with a DependencyError naming both the id and expr. If a value has no
// string form, it fails with an UnforeseenError.
func (ExpressionResolver) Resolve(c *Container, expr string) (string, error) {
	var err error
	out := _placeholderRe.ReplaceAllStringFunc(expr, func(m string) string {
		if err != nil {
			return m
		}

		id := _placeholderRe.FindStringSubmatch(m)[1]
		v, gerr := c.Get(id)
		if gerr != nil {
			if IsNotFound(gerr) {
				err = DependencyError{
					Message: fmt.Sprintf("placeholder %q of expression %q could not be resolved", id, expr),
					Cause:   gerr,
				}
			} else {
				err = gerr
			}
			return m
		}

		s, serr := stringify(v)
		if serr != nil {
			err = UnforeseenError{Expression: expr, Cause: serr}
			return m
		}
		return s
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// stringify returns the string form of v used inside expressions.
func stringify(v interface{}) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while converting %T to string: %v", v, r)
		}
	}()

	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case error:
		return v.Error(), nil
	}

	if isScalarKind(reflect.TypeOf(v).Kind()) {
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("value of type %T has no string form", v)
}
