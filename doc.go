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

// Package apiversion provides semantic API version negotiation and route
// lifecycle management for HTTP services.
//
// Routes declare the version they belong to, and optionally the versions in
// which they become deprecated or removed, at the point where the handler is
// registered. A version manager then resolves, at startup, which routes are
// live for the latest declared version. Clients select a version per request
// through a vendor media type in the Accept header; requests that do not ask
// for one silently get the latest.
//
// # Declaring Routes
//
// Wrap handlers with Annotate (or the verb helpers) to attach metadata:
//
//	users := apiversion.Must(apiversion.GET("/users", listUsers,
//	    apiversion.WithVersion("2.0.0"),
//	    apiversion.WithSummary("List users"),
//	))
//	legacy := apiversion.Must(apiversion.GET("/legacy/users", listUsersLegacy,
//	    apiversion.WithVersion("1.0.0"),
//	    apiversion.WithDeprecatedIn("2.0.0"),
//	))
//
// # Applying the Lifecycle
//
// Register endpoints on a Table (or any Router implementation) and let the
// Manager classify them:
//
//	table := apiversion.NewTable()
//	table.Register(users, legacy)
//
//	mgr, _ := apiversion.NewManager()
//	report, err := mgr.Apply(table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// report.Latest is 2.0.0; legacy appears in report.Deprecated.
//
// Deprecated and removed routes are reported, not pruned. Callers decide how
// to act on the classification, for example by refusing to dispatch routes
// in report.Removed.
//
// # Negotiating Per Request
//
// The Negotiator middleware reads vendor media types of the form
// "accept/vnd.<prefix>.v<version>+<subtype>" and stores the requested and
// latest versions on the request context:
//
//	neg, _ := apiversion.NewNegotiator("acme",
//	    apiversion.WithLatestVersion("2.0.0"),
//	)
//	handler := neg.Middleware(table)
//
//	// Inside a handler:
//	requested := apiversion.RequestedVersion(r.Context())
//
// Negotiation never fails a request. Missing headers, foreign media types,
// and malformed version tokens all fall back to the configured latest.
//
// # Tracking Versions
//
// A Registry holds the set of versions an API exposes, with deprecation
// flags and a default. The manager can mount a GET /versions route that
// serves the registry as JSON, and NewMetricsObserver exports negotiation
// and lifecycle events as OpenTelemetry counters.
package apiversion
