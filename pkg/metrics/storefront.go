package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront groups the counters and histograms emitted by the cart and
// order flows. A nil *Storefront is valid and records nothing.
type Storefront struct {
	cartMutations      *prometheus.CounterVec
	storageRecoveries  *prometheus.CounterVec
	ordersPlaced       prometheus.Counter
	orderValue         prometheus.Histogram
	validationFailures *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewStorefront registers the storefront metrics on the provided registerer.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	s := &Storefront{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Committed cart mutations by operation.",
		}, []string{"op"}),
		storageRecoveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_storage_recoveries_total",
			Help: "Persisted carts that could not be read and were reset to empty.",
		}, []string{"reason"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders accepted at checkout.",
		}),
		orderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_total_dollars",
			Help:    "Grand total of accepted orders.",
			Buckets: []float64{5, 10, 15, 20, 30, 50, 75, 100},
		}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_validation_failures_total",
			Help: "Checkout form fields rejected on submit.",
		}, []string{"field"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		s.cartMutations,
		s.storageRecoveries,
		s.ordersPlaced,
		s.orderValue,
		s.validationFailures,
		s.httpDuration,
	)
	return s
}

// IncCartMutation counts a committed cart mutation (add, update, remove, clear, drain).
func (s *Storefront) IncCartMutation(op string) {
	if s == nil || s.cartMutations == nil {
		return
	}
	s.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncStorageRecovery counts a cart that fell back to empty on load.
func (s *Storefront) IncStorageRecovery(reason string) {
	if s == nil || s.storageRecoveries == nil {
		return
	}
	s.storageRecoveries.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveOrder records an accepted order and its grand total in cents.
func (s *Storefront) ObserveOrder(totalCents int64) {
	if s == nil || s.ordersPlaced == nil {
		return
	}
	s.ordersPlaced.Inc()
	s.orderValue.Observe(float64(totalCents) / 100)
}

// IncValidationFailure counts one rejected checkout field.
func (s *Storefront) IncValidationFailure(field string) {
	if s == nil || s.validationFailures == nil {
		return
	}
	s.validationFailures.WithLabelValues(normalizeLabel(field)).Inc()
}

// ObserveHTTP records request latency under the chi route pattern.
func (s *Storefront) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if s == nil || s.httpDuration == nil {
		return
	}
	s.httpDuration.WithLabelValues(methodLabel(method), normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

// methodLabel folds non-standard methods into one label value.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	}
	return "OTHER"
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
