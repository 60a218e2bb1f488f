package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "posting_engine"

// Recorder owns the engine's Prometheus collectors.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	postings       *prometheus.CounterVec
	refunds        *prometheus.CounterVec
	stockMovements *prometheus.CounterVec
	loanPayments   *prometheus.CounterVec
	retries        *prometheus.CounterVec
	conflicts      *prometheus.CounterVec
	unitDuration   *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	httpInFlight   prometheus.Gauge
}

// New creates a Recorder backed by its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		postings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "postings_total",
			Help:      "Journal postings by transaction type and outcome.",
		}, []string{"type", "outcome"}),
		refunds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunds_total",
			Help:      "Refunds composed, split into full and partial.",
		}, []string{"kind"}),
		stockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_total",
			Help:      "Stock movements applied by movement type and outcome.",
		}, []string{"movement_type", "outcome"}),
		loanPayments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loan_operations_total",
			Help:      "Loan ledger operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unit_of_work_retries_total",
			Help:      "Retries of units of work after retryable storage conflicts.",
		}, []string{"operation"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "concurrency_conflicts_total",
			Help:      "Units of work that exhausted their retry budget.",
		}, []string{"operation"}),
		unitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_of_work_duration_seconds",
			Help:      "Duration of units of work including retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.postings, r.refunds, r.stockMovements, r.loanPayments,
		r.retries, r.conflicts, r.unitDuration,
		r.httpRequests, r.httpDuration, r.httpInFlight,
	)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObservePosting counts one Post call. noOp postings are reported separately.
func (r *Recorder) ObservePosting(txnType string, noOp bool, err error) {
	if r == nil {
		return
	}
	o := outcome(err)
	if err == nil && noOp {
		o = "noop"
	}
	r.postings.WithLabelValues(txnType, o).Inc()
}

// ObserveRefund counts a composed refund.
func (r *Recorder) ObserveRefund(full bool) {
	if r == nil {
		return
	}
	kind := "partial"
	if full {
		kind = "full"
	}
	r.refunds.WithLabelValues(kind).Inc()
}

// ObserveStockMovement counts one stock ledger application.
func (r *Recorder) ObserveStockMovement(movementType string, err error) {
	if r == nil {
		return
	}
	r.stockMovements.WithLabelValues(movementType, outcome(err)).Inc()
}

// ObserveLoanOperation counts one loan ledger operation.
func (r *Recorder) ObserveLoanOperation(operation string, err error) {
	if r == nil {
		return
	}
	r.loanPayments.WithLabelValues(operation, outcome(err)).Inc()
}

// ObserveRetry counts a retried unit of work.
func (r *Recorder) ObserveRetry(operation string) {
	if r == nil {
		return
	}
	r.retries.WithLabelValues(operation).Inc()
}

// ObserveConflict counts a unit of work that gave up retrying.
func (r *Recorder) ObserveConflict(operation string) {
	if r == nil {
		return
	}
	r.conflicts.WithLabelValues(operation).Inc()
}

// ObserveUnitDuration records how long a unit of work took.
func (r *Recorder) ObserveUnitDuration(operation string, d time.Duration) {
	if r == nil {
		return
	}
	r.unitDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// GinMiddleware records request count, latency and in-flight requests per route.
func (r *Recorder) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil {
			c.Next()
			return
		}
		r.httpInFlight.Inc()
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		r.httpDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		r.httpRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		r.httpInFlight.Dec()
	}
}
