package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/luxor-creek/Personalized-App/config"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

func TestInitTracing_Disabled(t *testing.T) {
	p, err := InitTracing(&config.TracingConfig{Enabled: false}, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Empty(t, p.traceExporters)
	assert.Empty(t, p.views)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInitTracing_UnsupportedExporters(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.TracingConfig
		wantErr string
	}{
		{
			name:    "trace exporter",
			cfg:     config.TracingConfig{Enabled: true, TraceExporter: "carrier-pigeon"},
			wantErr: "unsupported trace exporter: carrier-pigeon (supported: datadog, jaeger, stackdriver, xray, zipkin)",
		},
		{
			name:    "metrics exporter",
			cfg:     config.TracingConfig{Enabled: true, MetricsExporter: "graphite"},
			wantErr: "unsupported metrics exporter: graphite (supported: datadog, prometheus, stackdriver)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := InitTracing(&tc.cfg, logger.NewTestLogger(t))
			require.Error(t, err)
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestInitTracing_MissingExporterSettings(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.TracingConfig
		wantErr string
	}{
		{name: "jaeger", cfg: config.TracingConfig{Enabled: true, TraceExporter: "jaeger"}, wantErr: "jaeger endpoint is required"},
		{name: "zipkin", cfg: config.TracingConfig{Enabled: true, TraceExporter: "zipkin"}, wantErr: "zipkin endpoint is required"},
		{name: "stackdriver", cfg: config.TracingConfig{Enabled: true, TraceExporter: "stackdriver"}, wantErr: "stackdriver project id is required"},
		{name: "datadog", cfg: config.TracingConfig{Enabled: true, TraceExporter: "datadog"}, wantErr: "datadog agent address is required"},
		{name: "xray", cfg: config.TracingConfig{Enabled: true, TraceExporter: "xray"}, wantErr: "xray region is required"},
		{name: "stackdriver metrics", cfg: config.TracingConfig{Enabled: true, MetricsExporter: "stackdriver"}, wantErr: "stackdriver project id is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := InitTracing(&tc.cfg, logger.NewTestLogger(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestInitTracing_NoneRegistersViews(t *testing.T) {
	cfg := &config.TracingConfig{
		Enabled:             true,
		SamplingProbability: 0.5,
		TraceExporter:       "none",
		MetricsExporter:     " none ",
	}

	p, err := InitTracing(cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.NotNil(t, view.Find("pagekit/import/records"))

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Nil(t, view.Find("pagekit/import/records"))
}

func TestInitTracing_PrometheusWithoutServer(t *testing.T) {
	cfg := &config.TracingConfig{
		Enabled:         true,
		ServiceName:     "pagekit-api",
		MetricsExporter: "prometheus",
	}

	p, err := InitTracing(cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	require.Len(t, p.viewExporters, 1)
	assert.Nil(t, p.metricsServer)

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Empty(t, p.viewExporters)
}

type flushCounter struct{ flushed int }

func (f *flushCounter) ExportSpan(*trace.SpanData) {}
func (f *flushCounter) Flush()                     { f.flushed++ }

type stopCounter struct{ stopped int }

func (s *stopCounter) ExportSpan(*trace.SpanData) {}
func (s *stopCounter) Stop()                      { s.stopped++ }

func TestProvider_ShutdownFlushesExporters(t *testing.T) {
	f, s := &flushCounter{}, &stopCounter{}
	trace.RegisterExporter(f)
	trace.RegisterExporter(s)
	p := &Provider{log: logger.NewTestLogger(t), traceExporters: []trace.Exporter{f, s}}

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, 1, f.flushed)
	assert.Equal(t, 1, s.stopped)

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, 1, f.flushed, "exporters are released after the first shutdown")
}
