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
	"net/http"
	"regexp"
	"strings"

	"rivaas.dev/logging"

	"github.com/dev-laww/apiversion/semver"
)

// versionToken matches the version part of a vendor-tree media type: a bare
// major ("2"), major.minor ("2.1"), full semver, with an optional prerelease.
const versionToken = `\d+(?:\.\d+){0,2}(?:-[0-9A-Za-z.-]+)?`

// Negotiator resolves, per request, which API version the caller asks for.
//
// It reads the Accept header looking for a vendor-tree media type of the form
//
//	accept/vnd.<vendor_prefix>.v<version>+<subtype>
//
// per RFC 6838 §3.2 conventions. On a match, the version token is normalized
// and parsed; on success it becomes the request's requested version. A
// missing header, a non-matching media type, and an unparsable token are all
// treated identically: the request silently keeps the configured latest
// version. Negotiation is advisory, never a reason to fail a request.
//
// The middleware must run before routing so the resolved version is readable
// for the whole request lifecycle. It performs no other request mutation and
// keeps no per-request state, so one Negotiator serves any number of
// concurrent requests.
type Negotiator struct {
	vendorPrefix string
	latest       *semver.Version
	accept       *regexp.Regexp
	observer     *Observer
	logger       *logging.Logger
}

// NegotiatorOption configures a Negotiator.
type NegotiatorOption func(*Negotiator) error

// WithLatestVersion sets the version used when negotiation yields nothing.
// Defaults to "1.0.0".
//
// Example:
//
//	apiversion.NewNegotiator("acme", apiversion.WithLatestVersion("2.1.0"))
func WithLatestVersion(version string) NegotiatorOption {
	return func(n *Negotiator) error {
		v, err := semver.Parse(version)
		if err != nil {
			return err
		}
		n.latest = v
		return nil
	}
}

// WithObserver installs callbacks for negotiation events.
func WithObserver(o *Observer) NegotiatorOption {
	return func(n *Negotiator) error {
		n.observer = o
		return nil
	}
}

// WithLogger sets the structured logger used for negotiation diagnostics.
// Logging is off by default.
func WithLogger(logger *logging.Logger) NegotiatorOption {
	return func(n *Negotiator) error {
		n.logger = logger
		return nil
	}
}

// NewNegotiator creates a negotiation middleware for the given vendor prefix.
// The prefix is matched literally inside the Accept media type.
//
// Example:
//
//	neg, err := apiversion.NewNegotiator("acme",
//	    apiversion.WithLatestVersion("2.0.0"),
//	)
//	handler := neg.Middleware(mux)
func NewNegotiator(vendorPrefix string, opts ...NegotiatorOption) (*Negotiator, error) {
	if vendorPrefix == "" {
		return nil, ErrEmptyVendorPrefix
	}

	n := &Negotiator{
		vendorPrefix: vendorPrefix,
		latest:       semver.MustParse(DefaultVersion),
		logger:       noopLogger,
	}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}

	n.accept = regexp.MustCompile(
		`^accept/vnd\.` + regexp.QuoteMeta(vendorPrefix) + `\.v(` + versionToken + `)\+[0-9A-Za-z.-]+$`,
	)
	return n, nil
}

// VendorPrefix returns the configured vendor prefix.
func (n *Negotiator) VendorPrefix() string {
	return n.vendorPrefix
}

// Latest returns the configured latest version.
func (n *Negotiator) Latest() *semver.Version {
	return n.latest
}

// Middleware wraps next so every request carries the negotiated version in
// its context. Both the latest and the requested version default to the
// configured latest; a successful negotiation overwrites only the requested
// version. WebSocket upgrades arrive as HTTP requests, so they are covered
// like any other request.
func (n *Negotiator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested := n.latest

		if accept := r.Header.Get("Accept"); accept != "" {
			if v, ok := n.negotiate(accept); ok {
				requested = v
				n.observer.notifyNegotiated(v)
			} else {
				n.observer.notifyFallback()
				n.logger.Debug("version negotiation fell back to default",
					"accept", accept,
					"default", n.latest.String(),
				)
			}
		} else {
			n.observer.notifyFallback()
		}

		ctx := context.WithValue(r.Context(), latestVersionKey{}, n.latest)
		ctx = context.WithValue(ctx, requestedVersionKey{}, requested)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// negotiate scans the Accept header's media types for a vendor-tree version.
// Quality parameters are stripped before matching.
func (n *Negotiator) negotiate(accept string) (*semver.Version, bool) {
	for mediaType := range strings.SplitSeq(accept, ",") {
		mediaType = strings.TrimSpace(mediaType)
		if semi := strings.IndexByte(mediaType, ';'); semi >= 0 {
			mediaType = strings.TrimSpace(mediaType[:semi])
		}

		m := n.accept.FindStringSubmatch(mediaType)
		if m == nil {
			continue
		}

		v, err := semver.Parse(m[1])
		if err != nil {
			n.observer.notifyInvalid(m[1])
			continue
		}
		return v, true
	}
	return nil, false
}
