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
	"context"

	"github.com/dev-laww/apiversion/semver"
)

// Unexported context key types prevent collisions with other packages.
type (
	requestedVersionKey struct{}
	latestVersionKey    struct{}
)

// RequestedVersion returns the version the caller asked for via content
// negotiation, or nil when the negotiation middleware did not run. The value
// is set once per request, before routing, and is visible to every handler
// reading the same request context.
func RequestedVersion(ctx context.Context) *semver.Version {
	v, _ := ctx.Value(requestedVersionKey{}).(*semver.Version)
	return v
}

// LatestVersion returns the negotiator's configured latest version, or nil
// when the negotiation middleware did not run.
func LatestVersion(ctx context.Context) *semver.Version {
	v, _ := ctx.Value(latestVersionKey{}).(*semver.Version)
	return v
}
