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

// Package izonhttp serves a read-only HTTP view of an izon container.
//
//	GET /definitions       ids known to the container, as JSON
//	GET /definitions/{id}  the value of id, as JSON
//	GET /graph             the dependency graph in DOT format
//	GET /metrics           container counters in the Prometheus format
package izonhttp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/derbenni/izon"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Option configures an Inspector.
type Option interface {
	applyOption(*Inspector)
}

type optionFunc func(*Inspector)

func (f optionFunc) applyOption(i *Inspector) { f(i) }

// WithLogger sets the logger used for failed requests. A nil logger
// disables logging.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(i *Inspector) {
		if logger == nil {
			logger = zap.NewNop()
		}
		i.logger = logger
	})
}

// Inspector is an http.Handler exposing a container.
//
// Containers are not safe for concurrent use, so the Inspector serializes
// every request that touches the container.
type Inspector struct {
	mu        sync.Mutex
	container *izon.Container

	logger  *zap.Logger
	metrics *prometheus.Registry
	router  chi.Router
}

var _ http.Handler = (*Inspector)(nil)

// New builds an Inspector for c.
func New(c *izon.Container, opts ...Option) *Inspector {
	i := &Inspector{
		container: c,
		logger:    zap.NewNop(),
		metrics:   prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt.applyOption(i)
	}
	i.metrics.MustRegister(NewCollector(c))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/definitions", i.listDefinitions)
	r.Get("/definitions/*", i.getDefinition)
	r.Get("/graph", i.graph)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(i.metrics, promhttp.HandlerOpts{}))
	i.router = r
	return i
}

// ServeHTTP implements http.Handler.
func (i *Inspector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	i.router.ServeHTTP(w, r)
}

func (i *Inspector) listDefinitions(w http.ResponseWriter, _ *http.Request) {
	var ids []string
	i.withContainer(func(c *izon.Container) { ids = c.IDs() })

	if ids == nil {
		ids = []string{}
	}
	i.writeJSON(w, http.StatusOK, ids)
}

// definition is the body of GET /definitions/{id}.
type definition struct {
	ID    string      `json:"id"`
	Value interface{} `json:"value"`
}

// problem is the body of failed requests.
type problem struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

func (i *Inspector) getDefinition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "*")

	var (
		v   interface{}
		err error
	)
	i.withContainer(func(c *izon.Container) { v, err = c.Get(id) })

	if err != nil {
		status := http.StatusInternalServerError
		var nf izon.NotFoundError
		if errors.As(err, &nf) && nf.ID == id {
			status = http.StatusNotFound
		} else {
			i.logger.Warn("cannot resolve definition", zap.String("id", id), zap.Error(err))
		}
		i.writeJSON(w, status, problem{ID: id, Error: err.Error()})
		return
	}

	body, err := json.Marshal(definition{ID: id, Value: v})
	if err != nil {
		// Values that cannot be encoded, like functions and channels, are
		// shown as text.
		body, err = json.Marshal(definition{ID: id, Value: fmt.Sprintf("%+v", v)})
	}
	if err != nil {
		i.writeJSON(w, http.StatusInternalServerError, problem{ID: id, Error: err.Error()})
		return
	}
	writeBody(w, http.StatusOK, "application/json", append(body, '\n'))
}

// graph writes the dependency graph. If the highlight query parameter
// names an id that fails to resolve, the failure is marked in the graph.
func (i *Inspector) graph(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	var err error
	i.withContainer(func(c *izon.Container) {
		var opts []izon.VisualizeOption
		if id := r.URL.Query().Get("highlight"); id != "" {
			if _, gerr := c.Get(id); gerr != nil && izon.CanVisualizeError(gerr) {
				opts = append(opts, izon.VisualizeError(gerr))
			}
		}
		err = izon.Visualize(c, &buf, opts...)
	})

	if err != nil {
		i.logger.Error("cannot visualize container", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeBody(w, http.StatusOK, "text/vnd.graphviz; charset=utf-8", buf.Bytes())
}

// withContainer runs f with exclusive access to the container. The lock is
// released even if f panics.
func (i *Inspector) withContainer(f func(*izon.Container)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	f(i.container)
}

func (i *Inspector) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		i.logger.Error("cannot encode response", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeBody(w, status, "application/json", append(body, '\n'))
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
