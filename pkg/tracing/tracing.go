// Package tracing wires OpenCensus trace and stats exporters for the page
// service and records its domain metrics.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/luxor-creek/Personalized-App/config"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

// Provider owns the exporters registered by InitTracing
type Provider struct {
	log            logger.Logger
	traceExporters []trace.Exporter
	viewExporters  []view.Exporter
	views          []*view.View
	closers        []io.Closer
	metricsServer  *http.Server
}

type traceFactory func(cfg *config.TracingConfig, p *Provider) (trace.Exporter, error)

type viewFactory func(cfg *config.TracingConfig, p *Provider) (view.Exporter, error)

var traceFactories = map[string]traceFactory{
	"jaeger":      newJaegerExporter,
	"zipkin":      newZipkinExporter,
	"stackdriver": newStackdriverTraceExporter,
	"datadog":     newDatadogTraceExporter,
	"xray":        newXRayExporter,
}

var viewFactories = map[string]viewFactory{
	"prometheus":  newPrometheusExporter,
	"stackdriver": newStackdriverViewExporter,
	"datadog":     newDatadogViewExporter,
}

// InitTracing registers the exporters named in cfg. A disabled config
// returns a Provider whose Shutdown does nothing.
func InitTracing(cfg *config.TracingConfig, log logger.Logger) (*Provider, error) {
	p := &Provider{log: log}
	if !cfg.Enabled {
		return p, nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if name := exporterName(cfg.TraceExporter); name != "" {
		factory, ok := traceFactories[name]
		if !ok {
			return nil, fmt.Errorf("unsupported trace exporter: %s (supported: %s)", name, supported(traceFactories))
		}
		exporter, err := factory(cfg, p)
		if err != nil {
			p.closeAll()
			return nil, fmt.Errorf("failed to create %s trace exporter: %w", name, err)
		}
		trace.RegisterExporter(exporter)
		p.traceExporters = append(p.traceExporters, exporter)
	}

	for _, name := range strings.Split(cfg.MetricsExporter, ",") {
		name = exporterName(name)
		if name == "" {
			continue
		}
		factory, ok := viewFactories[name]
		if !ok {
			p.unregister()
			return nil, fmt.Errorf("unsupported metrics exporter: %s (supported: %s)", name, supported(viewFactories))
		}
		exporter, err := factory(cfg, p)
		if err != nil {
			p.unregister()
			return nil, fmt.Errorf("failed to create %s metrics exporter: %w", name, err)
		}
		view.RegisterExporter(exporter)
		p.viewExporters = append(p.viewExporters, exporter)
	}

	p.views = append(p.views, ochttp.DefaultServerViews...)
	p.views = append(p.views, ochttp.ClientRoundtripLatencyDistribution, ochttp.ClientCompletedCount)
	p.views = append(p.views, ocsql.DefaultViews...)
	p.views = append(p.views, Views...)
	if err := view.Register(p.views...); err != nil {
		p.views = nil
		p.unregister()
		return nil, fmt.Errorf("failed to register views: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"trace_exporter":   cfg.TraceExporter,
		"metrics_exporter": cfg.MetricsExporter,
		"sampling_rate":    cfg.SamplingProbability,
	}).Info("OpenCensus initialized")
	return p, nil
}

// Shutdown flushes and unregisters every exporter and stops the metrics server
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.metricsServer != nil {
		if err := p.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop metrics server: %w", err))
		}
		p.metricsServer = nil
	}
	p.unregister()
	return errors.Join(errs...)
}

func (p *Provider) unregister() {
	if len(p.views) > 0 {
		view.Unregister(p.views...)
		p.views = nil
	}
	for _, e := range p.traceExporters {
		trace.UnregisterExporter(e)
		flush(e)
	}
	for _, e := range p.viewExporters {
		view.UnregisterExporter(e)
		flush(e)
	}
	p.traceExporters, p.viewExporters = nil, nil
	p.closeAll()
}

func (p *Provider) closeAll() {
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			p.log.WithField("error", err.Error()).Warn("Failed to close trace reporter")
		}
	}
	p.closers = nil
}

// flush drains buffered spans; some exporters flush, others stop
func flush(exporter interface{}) {
	switch e := exporter.(type) {
	case interface{ Flush() }:
		e.Flush()
	case interface{ Stop() }:
		e.Stop()
	}
}

func exporterName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "none" {
		return ""
	}
	return s
}

func supported[F any](factories map[string]F) string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func datadogAgent(cfg *config.TracingConfig) (string, error) {
	if cfg.DatadogAgentAddress != "" {
		return cfg.DatadogAgentAddress, nil
	}
	if cfg.AgentEndpoint != "" {
		return cfg.AgentEndpoint, nil
	}
	return "", errors.New("datadog agent address is required")
}

func newJaegerExporter(cfg *config.TracingConfig, _ *Provider) (trace.Exporter, error) {
	if cfg.JaegerEndpoint == "" {
		return nil, errors.New("jaeger endpoint is required")
	}
	return jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: cfg.JaegerEndpoint,
		Process:           jaeger.Process{ServiceName: cfg.ServiceName},
	})
}

func newZipkinExporter(cfg *config.TracingConfig, p *Provider) (trace.Exporter, error) {
	if cfg.ZipkinEndpoint == "" {
		return nil, errors.New("zipkin endpoint is required")
	}
	reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
	p.closers = append(p.closers, reporter)
	return zipkin.NewExporter(reporter, nil), nil
}

func newStackdriverTraceExporter(cfg *config.TracingConfig, _ *Provider) (trace.Exporter, error) {
	if cfg.StackdriverProjectID == "" {
		return nil, errors.New("stackdriver project id is required")
	}
	return stackdriver.NewExporter(stackdriver.Options{ProjectID: cfg.StackdriverProjectID})
}

func newDatadogTraceExporter(cfg *config.TracingConfig, _ *Provider) (trace.Exporter, error) {
	addr, err := datadogAgent(cfg)
	if err != nil {
		return nil, err
	}
	return datadog.NewExporter(datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: addr,
	})
}

func newXRayExporter(cfg *config.TracingConfig, _ *Provider) (trace.Exporter, error) {
	if cfg.XRayRegion == "" {
		return nil, errors.New("xray region is required")
	}
	return aws.NewExporter(aws.WithRegion(cfg.XRayRegion), aws.WithVersion("latest"))
}

func newPrometheusExporter(cfg *config.TracingConfig, p *Provider) (view.Exporter, error) {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			p.log.WithField("error", err.Error()).Warn("Prometheus exporter error")
		},
	})
	if err != nil {
		return nil, err
	}
	if cfg.PrometheusPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", pe)
		p.metricsServer = &http.Server{Addr: fmt.Sprintf(":%d", cfg.PrometheusPort), Handler: mux}
		go func(srv *http.Server) {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				p.log.WithField("error", err.Error()).Error("Prometheus metrics server stopped")
			}
		}(p.metricsServer)
	}
	return pe, nil
}

func newStackdriverViewExporter(cfg *config.TracingConfig, p *Provider) (view.Exporter, error) {
	if cfg.StackdriverProjectID == "" {
		return nil, errors.New("stackdriver project id is required")
	}
	return stackdriver.NewExporter(stackdriver.Options{
		ProjectID:    cfg.StackdriverProjectID,
		MetricPrefix: cfg.ServiceName,
		OnError: func(err error) {
			p.log.WithField("error", err.Error()).Warn("Stackdriver exporter error")
		},
	})
}

func newDatadogViewExporter(cfg *config.TracingConfig, p *Provider) (view.Exporter, error) {
	addr, err := datadogAgent(cfg)
	if err != nil {
		return nil, err
	}
	opts := datadog.Options{
		Service:   cfg.ServiceName,
		StatsAddr: addr,
		OnError: func(err error) {
			p.log.WithField("error", err.Error()).Warn("Datadog exporter error")
		},
	}
	if cfg.DatadogAPIKey != "" {
		opts.GlobalTags = map[string]interface{}{"api_key": cfg.DatadogAPIKey}
	}
	return datadog.NewExporter(opts)
}
