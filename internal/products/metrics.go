package products

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

type storeMetrics struct {
	stored prometheus.Gauge
	ops    *prometheus.CounterVec
}

// InstrumentedStore records per-operation outcomes and the live record count.
type InstrumentedStore struct {
	next Store
	m    storeMetrics
}

func NewInstrumentedStore(next Store, reg prometheus.Registerer) *InstrumentedStore {
	m := storeMetrics{
		stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "products_stored",
			Help: "Products currently held by the store",
		}),
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "product_store_operations_total",
				Help: "Product store operations by outcome",
			},
			[]string{"op", "result"},
		),
	}
	reg.MustRegister(m.stored, m.ops)

	s := &InstrumentedStore{next: next, m: m}
	if n, err := next.Len(context.Background()); err == nil {
		m.stored.Set(float64(n))
	}
	return s
}

func (s *InstrumentedStore) observe(op string, found bool, err error) {
	switch {
	case err != nil:
		s.m.ops.WithLabelValues(op, resultError).Inc()
	case !found:
		s.m.ops.WithLabelValues(op, resultNotFound).Inc()
	default:
		s.m.ops.WithLabelValues(op, resultOK).Inc()
	}
}

func (s *InstrumentedStore) Ping(ctx context.Context) error { return s.next.Ping(ctx) }

func (s *InstrumentedStore) Len(ctx context.Context) (int, error) { return s.next.Len(ctx) }

func (s *InstrumentedStore) Create(ctx context.Context, f Fields) (Product, error) {
	p, err := s.next.Create(ctx, f)
	s.observe("create", true, err)
	if err == nil {
		s.m.stored.Inc()
	}
	return p, err
}

func (s *InstrumentedStore) List(ctx context.Context) ([]Product, error) {
	out, err := s.next.List(ctx)
	s.observe("list", true, err)
	return out, err
}

func (s *InstrumentedStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	p, ok, err := s.next.Get(ctx, id)
	s.observe("get", ok, err)
	return p, ok, err
}

func (s *InstrumentedStore) Update(ctx context.Context, id int64, patch Patch) (Product, bool, error) {
	p, ok, err := s.next.Update(ctx, id, patch)
	s.observe("update", ok, err)
	return p, ok, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, id int64) (Product, bool, error) {
	p, ok, err := s.next.Delete(ctx, id)
	s.observe("delete", ok, err)
	if err == nil && ok {
		s.m.stored.Dec()
	}
	return p, ok, err
}
