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
	"errors"
	"fmt"
	"io"
)

// Error is an interface implemented by all izon errors.
type Error interface {
	error
	izonError()
}

// wrappedError is an Error that wraps another error and can be formatted
// via formatError.
type wrappedError interface {
	Error
	fmt.Formatter
	Unwrap() error
	writeMessage(w io.Writer, v string)
}

// formatError calls a wrappedError's writeMessage method to print the error
// message and then prints the errors wrapped underneath. With %+v every
// wrapped error is printed on its own line.
func formatError(e wrappedError, w fmt.State, v rune) {
	multiline := w.Flag('+') && v == 'v'
	verb := "%v"
	if multiline {
		verb = "%+v"
	}

	// "context: " or "context:\n"
	e.writeMessage(w, verb)

	wrapped := errors.Unwrap(e)
	if wrapped != nil {
		io.WriteString(w, ":")
		if multiline {
			io.WriteString(w, "\n")
		} else {
			io.WriteString(w, " ")
		}
		fmt.Fprintf(w, verb, wrapped)
	}
}

// RootCause returns the original error that caused the provided izon
// failure.
//
// RootCause may be used on errors returned by Get or Make to get the original
// error returned by a constructor, method or factory. If there is no non-izon
// error in the chain, RootCause returns nil.
func RootCause(err error) error {
	var ie Error
	for {
		if ok := errors.As(err, &ie); ok {
			err = errors.Unwrap(ie)
		} else {
			return err
		}
	}
}

// errWrapf wraps an existing error with more contextual information.
//
// The given error is treated as the cause of the returned error and is
// available through RootCause.
//
// If the error is nil, errWrapf returns nil.
func errWrapf(err error, msg string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	return wrappedErr{err: err, msg: msg}
}

type wrappedErr struct {
	err error
	msg string
}

var _ wrappedError = wrappedErr{}

func (wrappedErr) izonError() {}

func (e wrappedErr) Unwrap() error { return e.err }

func (e wrappedErr) writeMessage(w io.Writer, _ string) {
	io.WriteString(w, e.msg)
}

func (e wrappedErr) Error() string { return fmt.Sprint(e) }
func (e wrappedErr) Format(w fmt.State, c rune) {
	formatError(e, w, c)
}

// NotFoundError is returned by Get and Make when the requested id has no
// definition and does not name a constructible class.
type NotFoundError struct {
	ID string
}

var _ Error = NotFoundError{}

func (NotFoundError) izonError() {}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("id %q was not found in the container", e.ID)
}

// DependencyError is returned when a dependency could not be satisfied: an
// unresolvable constructor or method parameter, an unresolvable expression
// placeholder or a circular dependency.
type DependencyError struct {
	Message string
	Cause   error
}

var _ wrappedError = DependencyError{}

func (DependencyError) izonError() {}

func (e DependencyError) Unwrap() error { return e.Cause }

func (e DependencyError) writeMessage(w io.Writer, _ string) {
	io.WriteString(w, e.Message)
}

func (e DependencyError) Error() string { return fmt.Sprint(e) }
func (e DependencyError) Format(w fmt.State, c rune) {
	formatError(e, w, c)
}

// InvalidArgumentError is returned whenever the user provides bad input while
// configuring the container: an invalid id, a value of the wrong shape for a
// definition, a non-callable factory or an unknown class name.
type InvalidArgumentError struct {
	Message string
	Cause   error
}

var _ wrappedError = InvalidArgumentError{}

func (InvalidArgumentError) izonError() {}

func (e InvalidArgumentError) Unwrap() error { return e.Cause }

func (e InvalidArgumentError) writeMessage(w io.Writer, _ string) {
	io.WriteString(w, e.Message)
}

func (e InvalidArgumentError) Error() string { return fmt.Sprint(e) }
func (e InvalidArgumentError) Format(w fmt.State, c rune) {
	formatError(e, w, c)
}

func invalidArgumentf(format string, args ...interface{}) InvalidArgumentError {
	return InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// UnforeseenError is returned when an expression could not be rendered for
// a reason other than a missing id.
type UnforeseenError struct {
	Expression string
	Cause      error
}

var _ wrappedError = UnforeseenError{}

func (UnforeseenError) izonError() {}

func (e UnforeseenError) Unwrap() error { return e.Cause }

func (e UnforeseenError) writeMessage(w io.Writer, _ string) {
	fmt.Fprintf(w, "something unforeseen happened when parsing the expression %q", e.Expression)
}

func (e UnforeseenError) Error() string { return fmt.Sprint(e) }
func (e UnforeseenError) Format(w fmt.State, c rune) {
	formatError(e, w, c)
}

// IsNotFound reports whether err, or an error it wraps, is a NotFoundError.
func IsNotFound(err error) bool {
	var e NotFoundError
	return errors.As(err, &e)
}

// IsDependency reports whether err, or an error it wraps, is a
// DependencyError.
func IsDependency(err error) bool {
	var e DependencyError
	return errors.As(err, &e)
}

// IsInvalidArgument reports whether err, or an error it wraps, is an
// InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var e InvalidArgumentError
	return errors.As(err, &e)
}

// PanicError is returned by Get and Make when a definition panics during
// resolution and the container was built with RecoverFromPanics.
type PanicError struct {
	// ID whose resolution panicked.
	ID string

	// Panic is the recovered value.
	Panic interface{}
}

var _ Error = PanicError{}

func (PanicError) izonError() {}

func (e PanicError) Error() string {
	return fmt.Sprintf("panic: %v while resolving %q", e.Panic, e.ID)
}
