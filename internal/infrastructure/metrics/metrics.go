package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookcatalog"

// Metrics holds every collector the API exposes on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec   // method, route, status
	httpDuration *prometheus.HistogramVec // method, route

	loaderBatchSize *prometheus.HistogramVec // loader
	graphqlErrors   *prometheus.CounterVec   // code
	tasksEnqueued   *prometheus.CounterVec   // type, status
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		loaderBatchSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dataloader",
			Name:      "batch_size",
			Help:      "Keys per batch dispatched by each loader",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}, []string{"loader"}),

		graphqlErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "errors_total",
			Help:      "GraphQL errors by client-facing code",
		}, []string{"code"}),

		tasksEnqueued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "tasks_enqueued_total",
			Help:      "Background tasks enqueued by type and outcome",
		}, []string{"type", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.loaderBatchSize,
		m.graphqlErrors,
		m.tasksEnqueued,
	)
	return m
}

// RegisterGaugeFunc exposes a value sampled at scrape time (pool stats...)
func (m *Metrics) RegisterGaugeFunc(subsystem, name, help string, fn func() float64) error {
	if m == nil {
		return nil
	}
	return m.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, fn))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveBatch satisfies loader.BatchObserver
func (m *Metrics) ObserveBatch(loader string, size int) {
	if m == nil {
		return
	}
	m.loaderBatchSize.WithLabelValues(loader).Observe(float64(size))
}

func (m *Metrics) CountGraphQLError(code string) {
	if m == nil {
		return
	}
	m.graphqlErrors.WithLabelValues(code).Inc()
}

func (m *Metrics) CountEnqueue(taskType string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.tasksEnqueued.WithLabelValues(taskType, status).Inc()
}
