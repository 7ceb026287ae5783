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

// routeConfig collects declaration arguments before they become immutable
// metadata records.
type routeConfig struct {
	version      string
	deprecatedIn string
	removedIn    string

	summary       string
	description   string
	tags          []string
	statusCode    int
	operationID   string
	deprecated    bool
	includeInDocs bool
	responseShape any
	extra         map[string]any
}

// RouteOption configures a route declaration.
type RouteOption func(*routeConfig)

// WithVersion sets the version that introduces the route.
// Defaults to "1.0.0" when omitted.
//
// Example:
//
//	apiversion.GET("/users", handler, apiversion.WithVersion("2.0.0"))
func WithVersion(version string) RouteOption {
	return func(cfg *routeConfig) {
		cfg.version = version
	}
}

// WithDeprecatedIn sets the version that deprecates the route.
//
// Example:
//
//	apiversion.GET("/users", handler,
//	    apiversion.WithVersion("1.0.0"),
//	    apiversion.WithDeprecatedIn("2.0.0"),
//	)
func WithDeprecatedIn(version string) RouteOption {
	return func(cfg *routeConfig) {
		cfg.deprecatedIn = version
	}
}

// WithRemovedIn sets the version that removes the route. Once the API's
// latest version reaches it, the route is classified as removed for everyone.
func WithRemovedIn(version string) RouteOption {
	return func(cfg *routeConfig) {
		cfg.removedIn = version
	}
}

// WithSummary sets a short summary for documentation.
func WithSummary(summary string) RouteOption {
	return func(cfg *routeConfig) {
		cfg.summary = summary
	}
}

// WithDescription sets a longer description for documentation.
func WithDescription(description string) RouteOption {
	return func(cfg *routeConfig) {
		cfg.description = description
	}
}

// WithTags adds categorization tags to the route.
func WithTags(tags ...string) RouteOption {
	return func(cfg *routeConfig) {
		cfg.tags = append(cfg.tags, tags...)
	}
}

// WithStatusCode sets the default success status code for the route.
func WithStatusCode(code int) RouteOption {
	return func(cfg *routeConfig) {
		cfg.statusCode = code
	}
}

// WithOperationID sets a stable operation identifier for documentation.
func WithOperationID(id string) RouteOption {
	return func(cfg *routeConfig) {
		cfg.operationID = id
	}
}

// MarkDeprecated flags the route as deprecated in documentation, independent
// of its version lifecycle.
func MarkDeprecated() RouteOption {
	return func(cfg *routeConfig) {
		cfg.deprecated = true
	}
}

// ExcludeFromDocs hides the route from generated documentation.
func ExcludeFromDocs() RouteOption {
	return func(cfg *routeConfig) {
		cfg.includeInDocs = false
	}
}

// WithResponseShape sets a descriptor of the response body shape for
// documentation generators. The value passes through unchanged.
func WithResponseShape(shape any) RouteOption {
	return func(cfg *routeConfig) {
		cfg.responseShape = shape
	}
}

// WithExtra attaches a free-form documentation field to the route.
func WithExtra(key string, value any) RouteOption {
	return func(cfg *routeConfig) {
		if cfg.extra == nil {
			cfg.extra = make(map[string]any)
		}
		cfg.extra[key] = value
	}
}
