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
	"github.com/dev-laww/apiversion/semver"
)

// RouteMetadata describes one declared handler's dispatch and documentation
// facts. It is created once at declaration time and never mutated afterwards;
// all fields pass through unchanged to whatever router registers the route.
type RouteMetadata struct {
	// Path is the route path pattern.
	Path string

	// Methods is the set of HTTP verbs, uppercase and non-empty after
	// declaration-time normalization.
	Methods []string

	// Documentation options, consumed by documentation generators and the
	// registering router. All optional.
	Summary       string
	Description   string
	Tags          []string
	StatusCode    int
	OperationID   string
	Deprecated    bool
	IncludeInDocs bool
	ResponseShape any
	Extra         map[string]any
}

// VersionMetadata describes one declared handler's place in the API's version
// history: the version that introduced it and, optionally, the versions that
// deprecate and remove it. Immutable after declaration.
type VersionMetadata struct {
	// Path is the route path pattern.
	Path string

	// Method is the primary HTTP verb (the first of RouteMetadata.Methods).
	Method string

	// Version is the version that introduced the route. Defaults to 1.0.0.
	Version *semver.Version

	// DeprecatedIn is the version that deprecates the route, or nil.
	DeprecatedIn *semver.Version

	// RemovedIn is the version that removes the route, or nil.
	RemovedIn *semver.Version
}

// DeprecatedBy reports whether the route is deprecated once latest has
// shipped: DeprecatedIn is set and latest >= DeprecatedIn.
func (m *VersionMetadata) DeprecatedBy(latest *semver.Version) bool {
	return m.DeprecatedIn != nil && latest != nil && !latest.LessThan(m.DeprecatedIn)
}

// RemovedBy reports whether the route is removed once latest has shipped:
// RemovedIn is set and latest >= RemovedIn. A removed route is no longer
// served regardless of its deprecation state.
func (m *VersionMetadata) RemovedBy(latest *semver.Version) bool {
	return m.RemovedIn != nil && latest != nil && !latest.LessThan(m.RemovedIn)
}
