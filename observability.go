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
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dev-laww/apiversion/semver"
)

const meterName = "github.com/dev-laww/apiversion"

// metricsConfig holds the configuration for NewMetricsObserver.
type metricsConfig struct {
	provider metric.MeterProvider
}

// MetricsOption configures the OpenTelemetry metrics observer.
type MetricsOption func(*metricsConfig)

// WithMeterProvider sets the meter provider used to create instruments.
// Defaults to the global provider.
func WithMeterProvider(provider metric.MeterProvider) MetricsOption {
	return func(c *metricsConfig) {
		c.provider = provider
	}
}

// NewMetricsObserver builds an Observer that records negotiation and
// lifecycle events as OpenTelemetry counters. Attach it to a Negotiator or
// Manager:
//
//	obs, err := apiversion.NewMetricsObserver()
//	if err != nil {
//	    return err
//	}
//	neg, err := apiversion.NewNegotiator("acme", apiversion.WithObserver(obs))
func NewMetricsObserver(opts ...MetricsOption) (*Observer, error) {
	cfg := &metricsConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.provider == nil {
		cfg.provider = otel.GetMeterProvider()
	}

	meter := cfg.provider.Meter(meterName)

	negotiated, err := meter.Int64Counter(
		"api_version_negotiated_total",
		metric.WithDescription("Total number of requests with an explicitly negotiated API version"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create negotiated counter: %w", err)
	}

	fallback, err := meter.Int64Counter(
		"api_version_fallback_total",
		metric.WithDescription("Total number of requests that fell back to the latest API version"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback counter: %w", err)
	}

	invalid, err := meter.Int64Counter(
		"api_version_invalid_total",
		metric.WithDescription("Total number of Accept headers carrying an unparseable version token"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invalid counter: %w", err)
	}

	deprecated, err := meter.Int64Counter(
		"api_route_deprecated_total",
		metric.WithDescription("Total number of routes classified as deprecated"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create deprecated counter: %w", err)
	}

	removed, err := meter.Int64Counter(
		"api_route_removed_total",
		metric.WithDescription("Total number of routes classified as removed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create removed counter: %w", err)
	}

	ctx := context.Background()
	return &Observer{
		OnNegotiated: func(version *semver.Version) {
			negotiated.Add(ctx, 1, metric.WithAttributes(
				attribute.String("version", version.String()),
			))
		},
		OnFallback: func() {
			fallback.Add(ctx, 1)
		},
		OnInvalid: func(token string) {
			invalid.Add(ctx, 1)
		},
		OnRouteDeprecated: func(meta *VersionMetadata) {
			deprecated.Add(ctx, 1, metric.WithAttributes(
				attribute.String("path", meta.Path),
				attribute.String("version", meta.Version.String()),
			))
		},
		OnRouteRemoved: func(meta *VersionMetadata) {
			removed.Add(ctx, 1, metric.WithAttributes(
				attribute.String("path", meta.Path),
				attribute.String("version", meta.Version.String()),
			))
		},
	}, nil
}
