// Package telemetry provides OpenTelemetry metrics for the snowgate server.
package telemetry

import (
	"context"
	"fmt"

	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Config holds the configuration for initializing telemetry providers.
type Config struct {
	ServiceName string
	Enabled     bool
}

// Providers bundles the configured OpenTelemetry providers.
// When telemetry is disabled, Providers is inert and all methods are safe no-ops.
type Providers struct {
	serviceName string
	enabled     bool

	Meter         metric.Meter
	meterProvider *sdkmetric.MeterProvider
}

// Init sets up the OpenTelemetry metrics pipeline with a Prometheus exporter.
// If telemetry is disabled in the config, an inert Providers is returned.
func Init(_ context.Context, c *Config) (*Providers, error) {
	p := &Providers{
		serviceName: c.ServiceName,
		enabled:     c.Enabled,
	}
	if !c.Enabled {
		return p, nil
	}

	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	p.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	p.Meter = p.meterProvider.Meter(c.ServiceName)

	return p, nil
}

// IsEnabled returns true if telemetry is enabled.
func (p *Providers) IsEnabled() bool {
	return p.enabled
}

// ServiceName returns the service name telemetry was configured with.
func (p *Providers) ServiceName() string {
	return p.serviceName
}

// Shutdown flushes and stops the telemetry providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}
