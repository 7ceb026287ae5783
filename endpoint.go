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
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/dev-laww/apiversion/semver"
)

// DefaultVersion is the version assigned to routes declared without one.
const DefaultVersion = "1.0.0"

// Endpoint binds a handler to its route and version metadata. It serves
// requests by delegating to the wrapped handler, so it can be registered
// anywhere a plain http.Handler is accepted, and a route scan can later
// recover the metadata through the MetadataCarrier interface.
type Endpoint struct {
	handler http.Handler
	route   *RouteMetadata
	version *VersionMetadata
}

// MetadataCarrier is implemented by handlers that carry declaration metadata.
// The version manager uses it to recover version facts from registered routes.
type MetadataCarrier interface {
	RouteMetadata() *RouteMetadata
	VersionMetadata() *VersionMetadata
}

// ServeHTTP delegates to the wrapped handler.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.handler.ServeHTTP(w, r)
}

// Handler returns the wrapped handler.
func (e *Endpoint) Handler() http.Handler {
	return e.handler
}

// RouteMetadata returns the route's dispatch and documentation facts.
func (e *Endpoint) RouteMetadata() *RouteMetadata {
	return e.route
}

// VersionMetadata returns the route's version lifecycle facts.
func (e *Endpoint) VersionMetadata() *VersionMetadata {
	return e.version
}

// MetadataOf recovers the metadata bound to a handler, or false when the
// handler carries none. Handlers without metadata are invisible to version
// classification: they are neither deprecated nor removed by the manager.
func MetadataOf(h http.Handler) (*RouteMetadata, *VersionMetadata, bool) {
	c, ok := h.(MetadataCarrier)
	if !ok {
		return nil, nil, false
	}
	return c.RouteMetadata(), c.VersionMetadata(), true
}

// Annotate computes route and version metadata from declaration arguments and
// binds them to the handler. It does not register the route with any router;
// registration is a separate step that consumes the returned Endpoint.
//
// Annotating an existing *Endpoint rebinds it in place: the previous metadata
// is overwritten, not appended, and the wrapped handler is kept.
//
// Returns semver.ErrInvalidFormat when version, deprecated-in, or removed-in
// do not parse. Declarations run at startup; treat an error as fatal to that
// declaration.
//
// Example:
//
//	ep, err := apiversion.Annotate(handler, "/users", []string{"GET", "HEAD"},
//	    apiversion.WithVersion("2.0.0"),
//	    apiversion.WithRemovedIn("3.0.0"),
//	)
func Annotate(h http.Handler, path string, methods []string, opts ...RouteOption) (*Endpoint, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if path == "" {
		return nil, ErrEmptyPath
	}

	cfg := routeConfig{includeInDocs: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	version, err := parseOrDefault(cfg.version, DefaultVersion)
	if err != nil {
		return nil, fmt.Errorf("version: %w", err)
	}
	deprecatedIn, err := parseOptional(cfg.deprecatedIn)
	if err != nil {
		return nil, fmt.Errorf("deprecated in: %w", err)
	}
	removedIn, err := parseOptional(cfg.removedIn)
	if err != nil {
		return nil, fmt.Errorf("removed in: %w", err)
	}

	normalized := normalizeMethods(methods)

	route := &RouteMetadata{
		Path:          path,
		Methods:       normalized,
		Summary:       cfg.summary,
		Description:   cfg.description,
		Tags:          cfg.tags,
		StatusCode:    cfg.statusCode,
		OperationID:   cfg.operationID,
		Deprecated:    cfg.deprecated,
		IncludeInDocs: cfg.includeInDocs,
		ResponseShape: cfg.responseShape,
		Extra:         cfg.extra,
	}
	versionMeta := &VersionMetadata{
		Path:         path,
		Method:       normalized[0],
		Version:      version,
		DeprecatedIn: deprecatedIn,
		RemovedIn:    removedIn,
	}

	// Re-annotation overwrites the existing binding instead of wrapping the
	// endpoint a second time.
	if ep, ok := h.(*Endpoint); ok {
		ep.route = route
		ep.version = versionMeta
		return ep, nil
	}

	return &Endpoint{handler: h, route: route, version: versionMeta}, nil
}

// Must panics when a declaration failed. It allows fail-fast startup
// declarations in package-level variables.
//
// Example:
//
//	var listUsers = apiversion.Must(apiversion.GET("/users", handler))
func Must(e *Endpoint, err error) *Endpoint {
	if err != nil {
		panic(err)
	}
	return e
}

// GET declares a route served for GET requests.
func GET(path string, h http.Handler, opts ...RouteOption) (*Endpoint, error) {
	return Annotate(h, path, []string{http.MethodGet}, opts...)
}

// POST declares a route served for POST requests.
func POST(path string, h http.Handler, opts ...RouteOption) (*Endpoint, error) {
	return Annotate(h, path, []string{http.MethodPost}, opts...)
}

// PUT declares a route served for PUT requests.
func PUT(path string, h http.Handler, opts ...RouteOption) (*Endpoint, error) {
	return Annotate(h, path, []string{http.MethodPut}, opts...)
}

// PATCH declares a route served for PATCH requests.
func PATCH(path string, h http.Handler, opts ...RouteOption) (*Endpoint, error) {
	return Annotate(h, path, []string{http.MethodPatch}, opts...)
}

// DELETE declares a route served for DELETE requests.
func DELETE(path string, h http.Handler, opts ...RouteOption) (*Endpoint, error) {
	return Annotate(h, path, []string{http.MethodDelete}, opts...)
}

// HEAD declares a route served for HEAD requests.
func HEAD(path string, h http.Handler, opts ...RouteOption) (*Endpoint, error) {
	return Annotate(h, path, []string{http.MethodHead}, opts...)
}

// OPTIONS declares a route served for OPTIONS requests.
func OPTIONS(path string, h http.Handler, opts ...RouteOption) (*Endpoint, error) {
	return Annotate(h, path, []string{http.MethodOptions}, opts...)
}

// TRACE declares a route served for TRACE requests.
func TRACE(path string, h http.Handler, opts ...RouteOption) (*Endpoint, error) {
	return Annotate(h, path, []string{http.MethodTrace}, opts...)
}

// normalizeMethods uppercases verbs, drops empties and duplicates, and
// defaults to GET so the method set is never empty.
func normalizeMethods(methods []string) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		out = append(out, http.MethodGet)
	}
	return out
}

func parseOrDefault(text, fallback string) (*semver.Version, error) {
	if text == "" {
		text = fallback
	}
	return semver.Parse(text)
}

func parseOptional(text string) (*semver.Version, error) {
	if text == "" {
		return nil, nil
	}
	return semver.Parse(text)
}
