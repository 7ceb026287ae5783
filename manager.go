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
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"rivaas.dev/logging"

	"github.com/dev-laww/apiversion/semver"
)

// VersionsRoutePath is where the manager mounts the version listing route
// when configured with WithVersionsRoute.
const VersionsRoutePath = "/versions"

// Manager applies version lifecycle decisions to a route table. Run Apply
// once at startup, before serving traffic: it scans every registered route
// for version metadata, determines the latest declared version, classifies
// each versioned route as active, deprecated, or removed relative to that
// latest version, and strips the live table down to the always-kept subset.
//
// Classification is retroactive and global: a route's fate depends on the
// single highest version found across all declared routes, not on any
// per-client negotiated version. Shipping version N removes, for everyone,
// whatever was marked as removed at or before N. Per-request negotiation
// (Negotiator) only decides what a given caller is told within the routes
// that remain.
//
// Apply is idempotent: it works on a fresh snapshot of the router's routes
// each time, and routes it mounts itself are kept across re-applies.
type Manager struct {
	defaultVersion *semver.Version
	latestPrefix   string

	includeMainDocs            bool
	includeMainOpenAPIRoute    bool
	includeVersionDocs         bool
	includeVersionOpenAPIRoute bool
	includeVersionsRoute       bool

	registry *Registry
	observer *Observer
	logger   *logging.Logger
}

// Report is the outcome of one Apply pass. The manager computes which routes
// are deprecated or removed but only prunes the table to the always-kept
// subset; acting on the classification lists (for example refusing to
// dispatch removed routes) is the caller's decision.
type Report struct {
	// Latest is the highest version declared by any route, or the
	// configured default when no route carries version metadata.
	Latest *semver.Version

	// Versions is the distinct set of declared versions, ascending.
	Versions []*semver.Version

	// Routes holds the version metadata of every scanned route that carried
	// any, sorted descending by version.
	Routes []*VersionMetadata

	// Deprecated holds routes whose deprecated-in version has shipped.
	Deprecated []*VersionMetadata

	// Removed holds routes whose removed-in version has shipped. A route can
	// appear in both lists; removal wins.
	Removed []*VersionMetadata
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager) error

// WithDefaultVersion sets the latest version assumed when no route declares
// one. Defaults to "1.0.0".
func WithDefaultVersion(version string) ManagerOption {
	return func(m *Manager) error {
		v, err := semver.Parse(version)
		if err != nil {
			return err
		}
		m.defaultVersion = v
		return nil
	}
}

// WithLatestPrefix reserves a path prefix that always serves the latest
// version. Routes under it survive the strip pass.
func WithLatestPrefix(prefix string) ManagerOption {
	return func(m *Manager) error {
		m.latestPrefix = prefix
		return nil
	}
}

// WithMainDocs controls whether the router's documentation routes are kept.
// Defaults to true.
func WithMainDocs(keep bool) ManagerOption {
	return func(m *Manager) error {
		m.includeMainDocs = keep
		return nil
	}
}

// WithMainOpenAPIRoute controls whether the router's spec route is kept.
// Defaults to true.
func WithMainOpenAPIRoute(keep bool) ManagerOption {
	return func(m *Manager) error {
		m.includeMainOpenAPIRoute = keep
		return nil
	}
}

// WithVersionDocs controls whether version-prefixed documentation routes
// (for example "/v2/docs") are kept. Defaults to true.
func WithVersionDocs(keep bool) ManagerOption {
	return func(m *Manager) error {
		m.includeVersionDocs = keep
		return nil
	}
}

// WithVersionOpenAPIRoute controls whether version-prefixed spec routes are
// kept. Defaults to true.
func WithVersionOpenAPIRoute(keep bool) ManagerOption {
	return func(m *Manager) error {
		m.includeVersionOpenAPIRoute = keep
		return nil
	}
}

// WithVersionsRoute mounts a GET route at VersionsRoutePath listing the
// registry's versions. Requires WithManagerRegistry. Defaults to false.
func WithVersionsRoute(mount bool) ManagerOption {
	return func(m *Manager) error {
		m.includeVersionsRoute = mount
		return nil
	}
}

// WithManagerRegistry injects the version registry used by the versions
// route and available to callers combining manager and registry state.
func WithManagerRegistry(r *Registry) ManagerOption {
	return func(m *Manager) error {
		m.registry = r
		return nil
	}
}

// WithManagerObserver installs callbacks fired per classified route.
func WithManagerObserver(o *Observer) ManagerOption {
	return func(m *Manager) error {
		m.observer = o
		return nil
	}
}

// WithManagerLogger sets the structured logger for apply diagnostics.
// Logging is off by default.
func WithManagerLogger(logger *logging.Logger) ManagerOption {
	return func(m *Manager) error {
		m.logger = logger
		return nil
	}
}

// NewManager creates a version manager.
//
// Example:
//
//	mgr, err := apiversion.NewManager(
//	    apiversion.WithDefaultVersion("1.0.0"),
//	    apiversion.WithVersionsRoute(true),
//	    apiversion.WithManagerRegistry(registry),
//	)
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		defaultVersion:             semver.MustParse(DefaultVersion),
		includeMainDocs:            true,
		includeMainOpenAPIRoute:    true,
		includeVersionDocs:         true,
		includeVersionOpenAPIRoute: true,
		logger:                     noopLogger,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Apply snapshots the router's routes, strips the live table to the
// always-kept subset, classifies every versioned route against the latest
// declared version, and reports the outcome.
func (m *Manager) Apply(rt Router) (*Report, error) {
	if rt == nil {
		return nil, ErrNilRouter
	}

	snapshot := rt.Routes()
	m.strip(rt, snapshot)

	report := m.classify(snapshot)

	if m.includeVersionsRoute && m.registry != nil {
		m.mountVersionsRoute(rt)
	}

	m.logger.Info("api versions discovered",
		"count", len(report.Versions),
		"versions", semver.Strings(report.Versions),
		"latest", report.Latest.String(),
	)

	return report, nil
}

// strip replaces the live table with the always-kept subset of the snapshot:
// documentation and spec routes per configuration, plus everything under the
// latest prefix. Version classification never touches these routes.
func (m *Manager) strip(rt Router, snapshot []Route) {
	kept := make([]Route, 0, len(snapshot))
	for _, route := range snapshot {
		if m.keepAlways(rt, route.Path) {
			kept = append(kept, route)
		}
	}
	rt.SetRoutes(kept)
}

// keepAlways reports whether a path survives the strip pass. Kept paths are
// identified by the router's fixed path attributes, not by version metadata.
func (m *Manager) keepAlways(rt Router, path string) bool {
	openAPIPath := rt.OpenAPIPath()

	if m.includeMainDocs && slices.Contains(rt.DocsPaths(), path) {
		return true
	}
	if m.includeMainOpenAPIRoute && openAPIPath != "" && path == openAPIPath {
		return true
	}
	if m.latestPrefix != "" && strings.HasPrefix(path, m.latestPrefix) {
		return true
	}
	if m.includeVersionDocs {
		for _, docsPath := range rt.DocsPaths() {
			if versionPrefixed(path, docsPath) {
				return true
			}
		}
	}
	if m.includeVersionOpenAPIRoute && openAPIPath != "" && versionPrefixed(path, openAPIPath) {
		return true
	}
	if m.includeVersionsRoute && path == VersionsRoutePath {
		return true
	}
	return false
}

// versionPrefixed reports whether path is suffix mounted under a version
// prefix, e.g. "/v2/docs" for suffix "/docs".
func versionPrefixed(path, suffix string) bool {
	if suffix == "" || !strings.HasSuffix(path, suffix) {
		return false
	}
	prefix := strings.TrimSuffix(path, suffix)
	return strings.HasPrefix(prefix, "/v") && len(prefix) > 2
}

// classify collects version metadata from the snapshot, determines the
// latest version, and partitions routes into deprecated and removed lists.
func (m *Manager) classify(snapshot []Route) *Report {
	report := &Report{}

	seen := make(map[string]*semver.Version)
	for _, route := range snapshot {
		_, meta, ok := MetadataOf(route.Handler)
		if !ok || meta == nil {
			continue
		}
		report.Routes = append(report.Routes, meta)
		seen[semver.Key(meta.Version)] = meta.Version
	}

	// Highest version first; the head is the latest declared version.
	slices.SortFunc(report.Routes, func(a, b *VersionMetadata) int {
		return b.Version.Compare(a.Version)
	})

	report.Latest = m.defaultVersion
	if len(report.Routes) > 0 {
		report.Latest = report.Routes[0].Version
	}

	for _, meta := range report.Routes {
		if meta.RemovedBy(report.Latest) {
			report.Removed = append(report.Removed, meta)
			m.observer.notifyRouteRemoved(meta)
		}
		if meta.DeprecatedBy(report.Latest) {
			report.Deprecated = append(report.Deprecated, meta)
			m.observer.notifyRouteDeprecated(meta)
		}
	}

	report.Versions = make([]*semver.Version, 0, len(seen))
	for _, v := range seen {
		report.Versions = append(report.Versions, v)
	}
	semver.Sort(report.Versions)

	return report
}

// mountVersionsRoute adds the version listing route unless it already
// exists, keeping Apply idempotent.
func (m *Manager) mountVersionsRoute(rt Router) {
	routes := rt.Routes()
	for _, route := range routes {
		if route.Path == VersionsRoutePath && route.Method == http.MethodGet {
			return
		}
	}
	routes = append(routes, Route{
		Method:  http.MethodGet,
		Path:    VersionsRoutePath,
		Handler: m.versionsHandler(),
	})
	rt.SetRoutes(routes)
}

// versionsHandler serves the registry's version list as JSON.
func (m *Manager) versionsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := struct {
			Versions   []string `json:"versions"`
			Deprecated []string `json:"deprecated,omitempty"`
			Default    string   `json:"default,omitempty"`
		}{
			Versions:   semver.Strings(m.registry.Versions(true)),
			Deprecated: semver.Strings(m.registry.Deprecated()),
		}
		if d := m.registry.Default(); d != nil {
			payload.Default = d.String()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			m.logger.Error("failed to encode versions payload", "error", err)
		}
	})
}
