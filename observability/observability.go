// Package observability wires OpenTelemetry tracing and metrics export
// over OTLP/HTTP. Providers are registered globally so instrumented code
// can use otel.Tracer and otel.Meter directly.
package observability

import (
	"context"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vibetrip/vibetrip-api/logger"
)

// Config controls telemetry export.
type Config struct {
	// Enabled turns telemetry export on. When false, Init is a no-op and
	// instrumented code falls through to the otel no-op providers.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port (e.g. "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Insecure allows plain HTTP to the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`

	// MetricInterval is the metric export interval.
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// ServiceInfo identifies the service in exported telemetry.
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
}

// Provider holds the initialized telemetry providers for shutdown.
type Provider struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	log            *logger.Logger
}

// Init sets up the global tracer and meter providers. When cfg.Enabled
// is false it returns an empty Provider whose Shutdown is a no-op.
func Init(ctx context.Context, cfg Config, svc ServiceInfo, log *logger.Logger) (*Provider, error) {
	p := &Provider{log: log.WithComponent("observability")}
	if !cfg.Enabled {
		return p, nil
	}

	tp, err := initTracer(ctx, cfg, svc)
	if err != nil {
		return nil, err
	}
	p.tracerProvider = tp

	mp, err := initMeter(ctx, cfg, svc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	p.meterProvider = mp

	p.log.Info("telemetry initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
		"metric_interval", cfg.MetricInterval.String(),
	))
	return p, nil
}

// Shutdown flushes and stops the providers.
func (p *Provider) Shutdown(ctx context.Context) {
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			p.log.Warn("tracer shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			p.log.Warn("meter shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}
}
