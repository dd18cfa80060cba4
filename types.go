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
	"math"
	"reflect"
	"sort"
)

var (
	_noValue       reflect.Value
	_errType       = reflect.TypeOf((*error)(nil)).Elem()
	_containerType = reflect.TypeOf((*Container)(nil))
)

// TypeName returns the class name under which values of type t are looked
// up in a Container.
//
// Named types are qualified with their full import path, pointers are
// prefixed with "*":
//
//	TypeName(reflect.TypeOf(&bytes.Buffer{})) == "*bytes.Buffer"
//	TypeName(reflect.TypeOf(app.Mailer{}))    == "github.com/you/app.Mailer"
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr && t.Name() == "" {
		return "*" + TypeName(t.Elem())
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// NameOf returns the class name of T.
//
//	izon.NameOf[*app.Mailer]()
func NameOf[T any]() string {
	return TypeName(reflect.TypeOf((*T)(nil)).Elem())
}

// isClassHint reports whether a parameter of type t asks the container for
// an instance of that type.
func isClassHint(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Struct:
		return true
	case reflect.Ptr:
		return t.Elem().Kind() == reflect.Struct
	default:
		return false
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func isScalarKind(k reflect.Kind) bool {
	return k == reflect.Bool || k == reflect.String || isNumeric(k)
}

// adaptValue makes v usable as a value of type t.
//
// nil becomes the zero value of t. Numbers convert between numeric kinds,
// and slices and string-keyed maps are converted element by element so that
// loosely typed configuration (for example []interface{} decoded from YAML)
// can feed typed parameters.
func adaptValue(v interface{}, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	return adaptReflectValue(reflect.ValueOf(v), t)
}

func adaptReflectValue(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Zero(t), nil
		}
		rv = rv.Elem()
	}

	vt := rv.Type()
	switch {
	case vt.AssignableTo(t):
		return rv, nil
	case isNumeric(vt.Kind()) && isNumeric(t.Kind()):
		return convertNumber(rv, t)
	case vt.Kind() == reflect.String && t.Kind() == reflect.String,
		vt.Kind() == reflect.Bool && t.Kind() == reflect.Bool:
		return rv.Convert(t), nil
	case (vt.Kind() == reflect.Slice || vt.Kind() == reflect.Array) && t.Kind() == reflect.Slice:
		out := reflect.MakeSlice(t, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			e, err := adaptReflectValue(rv.Index(i), t.Elem())
			if err != nil {
				return _noValue, fmt.Errorf("element %d: %v", i, err)
			}
			out.Index(i).Set(e)
		}
		return out, nil
	case vt.Kind() == reflect.Map && t.Kind() == reflect.Map && vt.Key().Kind() == reflect.String && t.Key().Kind() == reflect.String:
		out := reflect.MakeMapWithSize(t, rv.Len())
		for _, k := range sortedKeys(rv) {
			e, err := adaptReflectValue(rv.MapIndex(k), t.Elem())
			if err != nil {
				return _noValue, fmt.Errorf("entry %q: %v", k.String(), err)
			}
			out.SetMapIndex(k.Convert(t.Key()), e)
		}
		return out, nil
	default:
		return _noValue, fmt.Errorf("cannot use value of type %v as %v", vt, t)
	}
}

// convertNumber converts rv to the numeric type t. It fails instead of
// wrapping around or truncating.
func convertNumber(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	target := reflect.New(t).Elem()
	overflow := func() (reflect.Value, error) {
		return _noValue, fmt.Errorf("value %v overflows %v", rv, t)
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := rv.Int()
		switch {
		case isSigned(t.Kind()) && target.OverflowInt(v):
			return overflow()
		case isUnsigned(t.Kind()) && (v < 0 || target.OverflowUint(uint64(v))):
			return overflow()
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := rv.Uint()
		switch {
		case isSigned(t.Kind()) && (v > math.MaxInt64 || target.OverflowInt(int64(v))):
			return overflow()
		case isUnsigned(t.Kind()) && target.OverflowUint(v):
			return overflow()
		}
	case reflect.Float32, reflect.Float64:
		v := rv.Float()
		if t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64 {
			if !math.IsInf(v, 0) && !math.IsNaN(v) && target.OverflowFloat(v) {
				return overflow()
			}
			break
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return _noValue, fmt.Errorf("value %v is not a whole number and cannot be used as %v", rv, t)
		}
		switch {
		case isSigned(t.Kind()) && (v < math.MinInt64 || v >= math.MaxInt64 || target.OverflowInt(int64(v))):
			return overflow()
		case isUnsigned(t.Kind()) && (v < 0 || v >= math.MaxUint64 || target.OverflowUint(uint64(v))):
			return overflow()
		}
	}
	return rv.Convert(t), nil
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// sortedKeys returns the keys of a string-keyed map in lexical order.
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
