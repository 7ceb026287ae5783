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
	"sync"

	"github.com/dev-laww/apiversion/semver"
)

// Registry tracks the set of known API versions, which of them are
// deprecated, and the default version. It is the single source of truth for
// "what versions exist" and is meant to be constructed once at process
// initialization and passed by reference to every component that needs it.
//
// All methods are safe for concurrent use. One mutex guards the version set,
// the deprecated set, and the default together: operations that touch several
// of them (Remove, Clear) are one critical section, so a concurrent reader
// never observes a partial update.
//
// Version membership is by semantic version identity: prerelease-sensitive,
// build-metadata-insensitive.
type Registry struct {
	mu         sync.RWMutex
	versions   map[string]*semver.Version
	deprecated map[string]struct{}
	defaultKey string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		versions:   make(map[string]*semver.Version),
		deprecated: make(map[string]struct{}),
	}
}

// Add registers a version. Returns false when the version is already present
// (no-op). The new version becomes the default when setDefault is true or
// when no default exists yet, so the first version added is always the
// default.
func (r *Registry) Add(v *semver.Version, setDefault bool) bool {
	if v == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := semver.Key(v)
	if _, ok := r.versions[key]; ok {
		return false
	}

	r.versions[key] = v
	if setDefault || r.defaultKey == "" {
		r.defaultKey = key
	}
	return true
}

// Remove unregisters a version. Returns false when the version is absent.
// Removal also clears the version's deprecation mark and, when the version
// was the default, unsets the default without reassigning it.
func (r *Registry) Remove(v *semver.Version) bool {
	if v == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := semver.Key(v)
	if _, ok := r.versions[key]; !ok {
		return false
	}

	delete(r.versions, key)
	delete(r.deprecated, key)
	if r.defaultKey == key {
		r.defaultKey = ""
	}
	return true
}

// Has reports whether the version is registered.
func (r *Registry) Has(v *semver.Version) bool {
	if v == nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.versions[semver.Key(v)]
	return ok
}

// IsValid reports whether the version is registered and not deprecated.
func (r *Registry) IsValid(v *semver.Version) bool {
	if v == nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	key := semver.Key(v)
	if _, ok := r.versions[key]; !ok {
		return false
	}
	_, deprecated := r.deprecated[key]
	return !deprecated
}

// Deprecate marks a registered version as deprecated.
// Returns false when the version is absent.
func (r *Registry) Deprecate(v *semver.Version) bool {
	if v == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := semver.Key(v)
	if _, ok := r.versions[key]; !ok {
		return false
	}
	r.deprecated[key] = struct{}{}
	return true
}

// Undeprecate clears a registered version's deprecation mark.
// Returns false when the version is absent.
func (r *Registry) Undeprecate(v *semver.Version) bool {
	if v == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := semver.Key(v)
	if _, ok := r.versions[key]; !ok {
		return false
	}
	delete(r.deprecated, key)
	return true
}

// IsDeprecated reports whether the version is marked deprecated.
func (r *Registry) IsDeprecated(v *semver.Version) bool {
	if v == nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.deprecated[semver.Key(v)]
	return ok
}

// Versions returns registered versions in ascending order. Deprecated
// versions are excluded unless includeDeprecated is true.
func (r *Registry) Versions(includeDeprecated bool) []*semver.Version {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.versionsLocked(includeDeprecated)
}

// versionsLocked collects versions ascending. Callers must hold at least a
// read lock.
func (r *Registry) versionsLocked(includeDeprecated bool) []*semver.Version {
	out := make([]*semver.Version, 0, len(r.versions))
	for key, v := range r.versions {
		if !includeDeprecated {
			if _, deprecated := r.deprecated[key]; deprecated {
				continue
			}
		}
		out = append(out, v)
	}
	semver.Sort(out)
	return out
}

// Latest returns the highest non-deprecated version, or nil when none exist.
func (r *Registry) Latest() *semver.Version {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return semver.Max(r.versionsLocked(false))
}

// LatestStable returns the highest non-deprecated version without a
// prerelease, or nil when none exist.
func (r *Registry) LatestStable() *semver.Version {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stable []*semver.Version
	for _, v := range r.versionsLocked(false) {
		if v.Prerelease() == "" {
			stable = append(stable, v)
		}
	}
	return semver.Max(stable)
}

// Range returns registered versions within [min, max], inclusive, ascending.
// Deprecated versions are excluded unless includeDeprecated is true.
func (r *Registry) Range(min, max *semver.Version, includeDeprecated bool) []*semver.Version {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*semver.Version
	for _, v := range r.versionsLocked(includeDeprecated) {
		if v.LessThan(min) || v.GreaterThan(max) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Default returns the default version, or nil when unset.
func (r *Registry) Default() *semver.Version {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.defaultKey == "" {
		return nil
	}
	return r.versions[r.defaultKey]
}

// SetDefault makes a registered version the default. Returns
// ErrUnknownVersion, leaving the registry unchanged, when the version is not
// registered.
func (r *Registry) SetDefault(v *semver.Version) error {
	if v == nil {
		return fmt.Errorf("%w: <nil>", ErrUnknownVersion)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := semver.Key(v)
	if _, ok := r.versions[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVersion, v)
	}
	r.defaultKey = key
	return nil
}

// Deprecated returns the deprecated versions in ascending order.
func (r *Registry) Deprecated() []*semver.Version {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*semver.Version, 0, len(r.deprecated))
	for key := range r.deprecated {
		out = append(out, r.versions[key])
	}
	semver.Sort(out)
	return out
}

// Count returns the number of registered versions, counting deprecated ones
// only when includeDeprecated is true.
func (r *Registry) Count(includeDeprecated bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if includeDeprecated {
		return len(r.versions)
	}
	return len(r.versions) - len(r.deprecated)
}

// Clear resets the registry to its initial empty state: version set,
// deprecated set, and default are all re-initialized.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.versions = make(map[string]*semver.Version)
	r.deprecated = make(map[string]struct{})
	r.defaultKey = ""
}
