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

import "github.com/dev-laww/apiversion/semver"

// Observer holds callbacks for negotiation and classification events.
// Any callback may be nil. Callbacks run synchronously on the request or
// apply path and must be fast and safe for concurrent use.
type Observer struct {
	// OnNegotiated is called when an Accept header yields a version.
	OnNegotiated func(version *semver.Version)

	// OnFallback is called when a request falls back to the default version
	// (no Accept header, non-matching media type, or unparsable token).
	OnFallback func()

	// OnInvalid is called when a matched version token fails to parse.
	// The request still falls back to the default; this is diagnostics only.
	OnInvalid func(token string)

	// OnRouteDeprecated is called for each route classified as deprecated
	// during Manager.Apply.
	OnRouteDeprecated func(meta *VersionMetadata)

	// OnRouteRemoved is called for each route classified as removed during
	// Manager.Apply.
	OnRouteRemoved func(meta *VersionMetadata)
}

func (o *Observer) notifyNegotiated(v *semver.Version) {
	if o != nil && o.OnNegotiated != nil {
		o.OnNegotiated(v)
	}
}

func (o *Observer) notifyFallback() {
	if o != nil && o.OnFallback != nil {
		o.OnFallback()
	}
}

func (o *Observer) notifyInvalid(token string) {
	if o != nil && o.OnInvalid != nil {
		o.OnInvalid(token)
	}
}

func (o *Observer) notifyRouteDeprecated(meta *VersionMetadata) {
	if o != nil && o.OnRouteDeprecated != nil {
		o.OnRouteDeprecated(meta)
	}
}

func (o *Observer) notifyRouteRemoved(meta *VersionMetadata) {
	if o != nil && o.OnRouteRemoved != nil {
		o.OnRouteRemoved(meta)
	}
}
