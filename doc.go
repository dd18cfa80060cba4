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

// Package izon is a dependency injection container that maps string ids to
// lazily resolved values.
//
// # Container
//
// A Container is built from Definitions, recipes for the value bound to
// each id:
//
//	c, err := izon.New(izon.Definitions{
//		"greeting": izon.MustValue("hello"),
//		"msg":      izon.Expression("{greeting} world"),
//	})
//
// Get resolves an id the first time it is requested and returns the cached
// value afterwards. Make resolves it again on every call. Has reports
// whether an id can be resolved at all.
//
// # Definitions
//
// Value wraps scalars (booleans, strings and numbers) and collections
// (slices, arrays and string-keyed maps whose entries may be definitions
// themselves). Expression renders a template, replacing {id} with the value
// of id. Get refers to another id. Factory calls a function with the
// container. Object instantiates a registered class.
//
// # Autowiring
//
// Classes are registered with a Registry, usually DefaultRegistry, by
// constructor:
//
//	func init() {
//		izon.MustRegister(NewMailer, izon.Params("transport", "from"), izon.Default("from", "noreply@example.com"))
//	}
//
// A class is named after the type its constructor returns, see TypeName.
// Any id that names a registered class can be requested from a container
// without a definition. Constructor parameters are resolved in this order:
// an argument supplied by name, an argument supplied by position, an
// instance of the parameter's type if it is an interface, a struct or a
// pointer to a struct, and finally the parameter's declared default.
//
// Object definitions can supply constructor arguments, set properties and
// call methods after construction:
//
//	izon.MustObject(izon.NameOf[*Mailer]()).
//		ConstructorParameter("from", izon.Get("mail.from")).
//		Property("retries", 3).
//		Method("Use", izon.Get("mail.middleware"))
//
// # Errors
//
// Failures to configure the container are reported as InvalidArgumentError.
// Get and Make fail with NotFoundError for unknown ids and with
// DependencyError when a dependency cannot be satisfied, including
// circular dependencies.
package izon
