package tracing

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	openzipkin "github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/relasjon/crm/config"
	"github.com/relasjon/crm/pkg/logger"
)

// Exporters holds what InitTracing started so it can be flushed on shutdown
type Exporters struct {
	jaeger  *jaeger.Exporter
	zipkin  func() error
	metrics *http.Server
}

// Close flushes pending spans and stops the metrics server
func (e *Exporters) Close() error {
	if e == nil {
		return nil
	}
	var errs []error
	if e.jaeger != nil {
		e.jaeger.Flush()
	}
	if e.zipkin != nil {
		errs = append(errs, e.zipkin())
	}
	if e.metrics != nil {
		errs = append(errs, e.metrics.Close())
	}
	return errors.Join(errs...)
}

// InitTracing configures sampling and the configured exporters. It returns
// nil exporters when tracing is disabled.
func InitTracing(cfg *config.TracingConfig, log logger.Logger) (*Exporters, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	exp := &Exporters{}
	if err := initTraceExporter(cfg, exp); err != nil {
		return nil, err
	}
	if err := initMetricsExporter(cfg, exp, log); err != nil {
		_ = exp.Close()
		return nil, err
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		_ = exp.Close()
		return nil, fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"trace_exporter":   cfg.TraceExporter,
		"metrics_exporter": cfg.MetricsExporter,
		"sampling":         cfg.SamplingProbability,
	}).Info("OpenCensus initialized")
	return exp, nil
}

func initTraceExporter(cfg *config.TracingConfig, exp *Exporters) error {
	switch strings.ToLower(cfg.TraceExporter) {
	case "jaeger":
		if cfg.JaegerEndpoint == "" {
			return fmt.Errorf("jaeger endpoint is required for the jaeger exporter")
		}
		je, err := jaeger.NewExporter(jaeger.Options{
			CollectorEndpoint: cfg.JaegerEndpoint,
			Process:           jaeger.Process{ServiceName: cfg.ServiceName},
		})
		if err != nil {
			return fmt.Errorf("failed to create Jaeger exporter: %w", err)
		}
		trace.RegisterExporter(je)
		exp.jaeger = je
	case "zipkin":
		if cfg.ZipkinEndpoint == "" {
			return fmt.Errorf("zipkin endpoint is required for the zipkin exporter")
		}
		endpoint, err := openzipkin.NewEndpoint(cfg.ServiceName, "")
		if err != nil {
			return fmt.Errorf("failed to create Zipkin endpoint: %w", err)
		}
		reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
		trace.RegisterExporter(zipkin.NewExporter(reporter, endpoint))
		exp.zipkin = reporter.Close
	case "none", "":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	return nil
}

func initMetricsExporter(cfg *config.TracingConfig, exp *Exporters, log logger.Logger) error {
	switch strings.ToLower(cfg.MetricsExporter) {
	case "prometheus":
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported metrics exporter: %s", cfg.MetricsExporter)
	}

	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.Warn(fmt.Sprintf("Prometheus exporter error: %v", err))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	view.RegisterExporter(pe)

	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}

	if cfg.PrometheusPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", pe)
		exp.metrics = &http.Server{Addr: fmt.Sprintf(":%d", cfg.PrometheusPort), Handler: mux}
		go func() {
			if err := exp.metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error(fmt.Sprintf("Prometheus metrics server failed: %v", err))
			}
		}()
	}
	return nil
}
