package metrics

import (
	"context"
	"time"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
)

const (
	statusSuccess  = "success"
	statusNotFound = "not_found"
	statusError    = "error"
)

// InstrumentedStore は event.Store の各操作の回数とレイテンシを記録するデコレーター
type InstrumentedStore struct {
	next    event.Store
	metrics *Metrics
}

// InstrumentStore は store をメトリクス記録付きでラップする
func InstrumentStore(store event.Store, m *Metrics) *InstrumentedStore {
	return &InstrumentedStore{next: store, metrics: m}
}

func (s *InstrumentedStore) Put(ctx context.Context, e *event.Event) error {
	start := time.Now()
	err := s.next.Put(ctx, e)
	s.observe("put", start, statusOf(err))
	return err
}

func (s *InstrumentedStore) Get(ctx context.Context, eventID string) (*event.Event, bool, error) {
	start := time.Now()
	e, found, err := s.next.Get(ctx, eventID)
	status := statusOf(err)
	if err == nil && !found {
		status = statusNotFound
	}
	s.observe("get", start, status)
	return e, found, err
}

func (s *InstrumentedStore) ScanAll(ctx context.Context, status string) ([]*event.Event, error) {
	start := time.Now()
	events, err := s.next.ScanAll(ctx, status)
	s.observe("scan", start, statusOf(err))
	return events, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, eventID string) error {
	start := time.Now()
	err := s.next.Delete(ctx, eventID)
	s.observe("delete", start, statusOf(err))
	return err
}

func (s *InstrumentedStore) observe(op string, start time.Time, status string) {
	s.metrics.StoreOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	s.metrics.StoreOperationsTotal.WithLabelValues(op, status).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}

var _ event.Store = (*InstrumentedStore)(nil)
