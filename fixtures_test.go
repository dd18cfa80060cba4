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
	"testing"

	"github.com/stretchr/testify/require"
)

type transport interface {
	Address() string
}

type smtpTransport struct {
	Host string
	Port int
}

func (t *smtpTransport) Address() string { return fmt.Sprintf("%v:%v", t.Host, t.Port) }

func newTransport(host string, port int) transport {
	return &smtpTransport{Host: host, Port: port}
}

type mailer struct {
	transport  transport
	from       string
	retries    int
	middleware []string
	calls      []string
}

func newMailer(t transport, from string) *mailer {
	return &mailer{transport: t, from: from}
}

func (m *mailer) Use(names ...string) {
	m.middleware = append(m.middleware, names...)
	m.calls = append(m.calls, "Use")
}

func (m *mailer) SetFrom(from string) error {
	m.calls = append(m.calls, "SetFrom")
	if from == "" {
		return errors.New("empty sender")
	}
	m.from = from
	return nil
}

type clock struct {
	Zone string
}

type chickenA struct{ b *chickenB }
type chickenB struct{ a *chickenA }

func newChickenA(b *chickenB) *chickenA { return &chickenA{b: b} }
func newChickenB(a *chickenA) *chickenB { return &chickenB{a: a} }

// newTestRegistry registers the fixtures above in a fresh registry.
//
// The transport is built from the "mail.host" and "mail.port" ids unless
// arguments are supplied, and the mailer's sender defaults to
// "noreply@example.com".
func newTestRegistry(t testing.TB) *Registry {
	t.Helper()

	r := NewRegistry()
	require.NoError(t, r.Register(newTransport,
		Params("host", "port"),
		Default("host", "localhost"),
		Default("port", 25)))
	require.NoError(t, r.Register(newMailer,
		Params("transport", "from"),
		Default("from", "noreply@example.com"),
		MethodParams("SetFrom", "from"),
		MethodParams("Use", "names")))
	require.NoError(t, r.RegisterType(clock{}))
	return r
}

func newTestContainer(t testing.TB, defs Definitions, opts ...Option) *Container {
	t.Helper()

	c, err := New(defs, append([]Option{WithRegistry(newTestRegistry(t))}, opts...)...)
	require.NoError(t, err)
	return c
}

var (
	_transportClass = NameOf[transport]()
	_mailerClass    = NameOf[*mailer]()
	_clockClass     = NameOf[clock]()
)
