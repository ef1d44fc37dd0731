// Package metrics exposes Prometheus collectors for RPCs and ledger events.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
)

const namespace = "fintrack"

// Metrics owns a registry with the fintrack collectors.
type Metrics struct {
	registry *prometheus.Registry

	transactionsPosted *prometheus.CounterVec
	debtsPaidOff       *prometheus.CounterVec
	currencyRebases    prometheus.Counter
	rpcRequests        *prometheus.CounterVec
	rpcDuration        *prometheus.HistogramVec
}

var _ ledger.Recorder = (*Metrics)(nil)

// New registers the collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transactionsPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_posted_total",
			Help:      "Transactions posted, by type.",
		}, []string{"type"}),
		debtsPaidOff: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debts_paid_off_total",
			Help:      "Debts that reached a zero remaining amount, by debt type.",
		}, []string{"debt_type"}),
		currencyRebases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "currency_rebases_total",
			Help:      "Base currency changes.",
		}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPCs handled, by procedure and code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency, by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}
	m.registry.MustRegister(
		m.transactionsPosted,
		m.debtsPaidOff,
		m.currencyRebases,
		m.rpcRequests,
		m.rpcDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) TransactionPosted(t models.TransactionType) {
	m.transactionsPosted.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) DebtPaidOff(t models.DebtType) {
	m.debtsPaidOff.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) BaseCurrencyChanged() {
	m.currencyRebases.Inc()
}

// Interceptor counts and times every unary RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			m.rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			m.rpcRequests.WithLabelValues(procedure, codeOf(err)).Inc()
			return resp, err
		}
	}
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return connect.CodeUnknown.String()
}
