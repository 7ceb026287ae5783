// Copyright 2025 The Apiversion Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apiversion

import (
	"net/http"
	"slices"
	"strings"
	"sync"
)

// Route is one entry in a router's live table: a verb, a path, and the
// handler serving it. Handlers declared through Annotate carry recoverable
// version metadata; foreign handlers are served but ignored by version
// classification.
type Route struct {
	Method  string
	Path    string
	Handler http.Handler
}

// Router is the route-table contract the version manager consumes. Any
// router can participate in version lifecycle management by exposing a
// snapshot of its routes, accepting a replacement table, and identifying its
// documentation paths.
//
// SetRoutes must replace the table atomically: in-flight requests see either
// the old table or the new one, never a partially swapped state.
type Router interface {
	// Routes returns a snapshot of the current route table.
	Routes() []Route

	// SetRoutes replaces the route table.
	SetRoutes(routes []Route)

	// DocsPaths returns the fixed paths serving human documentation UIs.
	DocsPaths() []string

	// OpenAPIPath returns the fixed path serving the machine-readable spec,
	// or empty when none exists.
	OpenAPIPath() string
}

// Table is a minimal exact-match route table implementing Router. It is the
// default collaborator for tests and small services; production deployments
// typically adapt their own router to the Router interface instead.
type Table struct {
	mu          sync.RWMutex
	routes      []Route
	index       map[string]map[string]http.Handler // path -> method -> handler
	docsPaths   []string
	openAPIPath string
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithDocsPaths sets the paths serving documentation UIs.
func WithDocsPaths(paths ...string) TableOption {
	return func(t *Table) {
		t.docsPaths = paths
	}
}

// WithOpenAPIPath sets the path serving the machine-readable spec.
func WithOpenAPIPath(path string) TableOption {
	return func(t *Table) {
		t.openAPIPath = path
	}
}

// NewTable creates an empty route table.
func NewTable(opts ...TableOption) *Table {
	t := &Table{index: make(map[string]map[string]http.Handler)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register adds declared endpoints to the table, one entry per verb in the
// endpoint's route metadata. A later registration for the same verb and path
// replaces the earlier one.
func (t *Table) Register(endpoints ...*Endpoint) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, ep := range endpoints {
		meta := ep.RouteMetadata()
		for _, method := range meta.Methods {
			t.addLocked(Route{Method: method, Path: meta.Path, Handler: ep})
		}
	}
}

// Handle adds a plain handler to the table, outside version management.
func (t *Table) Handle(method, path string, h http.Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.addLocked(Route{Method: strings.ToUpper(method), Path: path, Handler: h})
}

// addLocked appends or replaces a route. Callers must hold the write lock.
func (t *Table) addLocked(route Route) {
	for i, existing := range t.routes {
		if existing.Method == route.Method && existing.Path == route.Path {
			t.routes[i] = route
			t.reindexLocked()
			return
		}
	}
	t.routes = append(t.routes, route)
	methods, ok := t.index[route.Path]
	if !ok {
		methods = make(map[string]http.Handler)
		t.index[route.Path] = methods
	}
	methods[route.Method] = route.Handler
}

// Routes returns a copy of the current table.
func (t *Table) Routes() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Clone(t.routes)
}

// SetRoutes replaces the table. The swap happens under the table's lock, so
// concurrent dispatch sees either the old table or the new one.
func (t *Table) SetRoutes(routes []Route) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.routes = slices.Clone(routes)
	t.reindexLocked()
}

// reindexLocked rebuilds the dispatch index from the route list.
// Callers must hold the write lock.
func (t *Table) reindexLocked() {
	t.index = make(map[string]map[string]http.Handler, len(t.routes))
	for _, route := range t.routes {
		methods, ok := t.index[route.Path]
		if !ok {
			methods = make(map[string]http.Handler)
			t.index[route.Path] = methods
		}
		methods[route.Method] = route.Handler
	}
}

// DocsPaths returns the configured documentation paths.
func (t *Table) DocsPaths() []string {
	return t.docsPaths
}

// OpenAPIPath returns the configured spec path.
func (t *Table) OpenAPIPath() string {
	return t.openAPIPath
}

// ServeHTTP dispatches by exact path and method match. Unknown paths get
// 404; known paths without the request's method get 405 with an Allow header.
func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.mu.RLock()
	methods, ok := t.index[r.URL.Path]
	var handler http.Handler
	if ok {
		handler = methods[r.Method]
	}
	var allow []string
	if ok && handler == nil {
		allow = make([]string, 0, len(methods))
		for method := range methods {
			allow = append(allow, method)
		}
		slices.Sort(allow)
	}
	t.mu.RUnlock()

	switch {
	case handler != nil:
		handler.ServeHTTP(w, r)
	case ok:
		w.Header().Set("Allow", strings.Join(allow, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	default:
		http.NotFound(w, r)
	}
}
