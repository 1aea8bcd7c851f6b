package memory

import (
	"context"
	"sync"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
)

// EventStore はプロセス内メモリに保持する event.Store 実装
// ローカル実行とテスト用。保存・取得時にコピーするため呼び出し元と値を共有しない
type EventStore struct {
	mu     sync.RWMutex
	events map[string]*event.Event
}

// NewEventStore は空の EventStore を作成する
func NewEventStore() *EventStore {
	return &EventStore{events: make(map[string]*event.Event)}
}

// Put はイベントを upsert する
func (s *EventStore) Put(_ context.Context, e *event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.EventID] = e.Clone()
	return nil
}

// Get はイベントを取得する
func (s *EventStore) Get(_ context.Context, eventID string) (*event.Event, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[eventID]
	if !ok {
		return nil, false, nil
	}
	return e.Clone(), true, nil
}

// ScanAll は全イベント、または status が一致するイベントを返す
func (s *EventStore) ScanAll(_ context.Context, status string) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]*event.Event, 0, len(s.events))
	for _, e := range s.events {
		if status != "" && e.Status != status {
			continue
		}
		events = append(events, e.Clone())
	}
	return events, nil
}

// Delete はイベントを削除する
func (s *EventStore) Delete(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, eventID)
	return nil
}

// Len は保存されているイベント数を返す
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// インターフェースを満たしているか確認
var _ event.Store = (*EventStore)(nil)
