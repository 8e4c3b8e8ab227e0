// Package metrics exposes Prometheus instrumentation for the HTTP layer and the bill store.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

const namespace = "billbook"

type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	storeOps *prometheus.CounterVec
}

// New creates a Metrics with its own registry, so tests can build as many as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Bill store calls by operation and result.",
		}, []string{"op", "result"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.storeOps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records a request count and latency per chi route pattern.
// Unmatched requests are grouped under a single "unmatched" route to bound label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Repository wraps repo so every call is counted in store_operations_total.
func (m *Metrics) Repository(repo bill.Repository) bill.Repository {
	return &instrumentedRepository{next: repo, ops: m.storeOps}
}

type instrumentedRepository struct {
	next bill.Repository
	ops  *prometheus.CounterVec
}

func (r *instrumentedRepository) observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	r.ops.WithLabelValues(op, result).Inc()
}

func (r *instrumentedRepository) CreateBill(ctx context.Context, b *bill.Bill) error {
	err := r.next.CreateBill(ctx, b)
	r.observe("create", err)

	return err
}

func (r *instrumentedRepository) GetBill(ctx context.Context, id bill.ID) (*bill.Bill, error) {
	b, err := r.next.GetBill(ctx, id)
	r.observe("get", err)

	return b, err
}

func (r *instrumentedRepository) ListBills(ctx context.Context) ([]*bill.Bill, error) {
	bills, err := r.next.ListBills(ctx)
	r.observe("list", err)

	return bills, err
}

func (r *instrumentedRepository) UpdateBill(ctx context.Context, b *bill.Bill) error {
	err := r.next.UpdateBill(ctx, b)
	r.observe("update", err)

	return err
}

func (r *instrumentedRepository) DeleteBill(ctx context.Context, id bill.ID) error {
	err := r.next.DeleteBill(ctx, id)
	r.observe("delete", err)

	return err
}

func (r *instrumentedRepository) LatestCustomerBill(ctx context.Context, name string) (*bill.Bill, error) {
	b, err := r.next.LatestCustomerBill(ctx, name)
	r.observe("latest_customer_bill", err)

	return b, err
}
