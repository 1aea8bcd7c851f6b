package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/logger"
)

// EventService はイベントの作成・取得・更新・削除を扱う
// プロセス内で状態を持たないため、複数のゴルーチンから同時に呼び出してよい。
// 同一イベントへの同時更新は直列化しない（後勝ち）。
type EventService struct {
	store event.Store
	newID func() string
}

// Option は EventService の設定を変更する
type Option func(*EventService)

// WithIDGenerator は eventId の採番関数を差し替える
func WithIDGenerator(fn func() string) Option {
	return func(s *EventService) {
		s.newID = fn
	}
}

func NewEventService(store event.Store, opts ...Option) *EventService {
	s := &EventService{store: store, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEvent はイベントを作成する
// eventId が指定されていればそのまま使い（既存があれば上書き）、なければ新規に採番する。
func (s *EventService) CreateEvent(ctx context.Context, fields event.Fields) (*event.Event, error) {
	if violations := event.ValidateForCreate(fields); len(violations) > 0 {
		return nil, event.NewValidationError(violations)
	}

	id, ok := fields.EventID()
	if !ok {
		id = s.newID()
	}
	e := event.NewEvent(id, fields)

	if err := s.store.Put(ctx, e); err != nil {
		return nil, unavailable("create", id, err)
	}
	return e, nil
}

// GetEvent はIDでイベントを取得する。存在しなければ ErrEventNotFound を返す
func (s *EventService) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	e, found, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, unavailable("get", id, err)
	}
	if !found {
		return nil, event.ErrEventNotFound
	}
	return e, nil
}

// ListEvents はイベント一覧を返す。status が空でなければ完全一致で絞り込む
func (s *EventService) ListEvents(ctx context.Context, status string) ([]*event.Event, error) {
	events, err := s.store.ScanAll(ctx, status)
	if err != nil {
		return nil, unavailable("list", "", err)
	}
	if events == nil {
		events = []*event.Event{}
	}
	return events, nil
}

// UpdateEvent はイベントを部分更新する
// 指定されなかったフィールドは保存済みの値を保持し、eventId は変更しない。
// 更新後の完全なイベントを put で書き戻して返す。
func (s *EventService) UpdateEvent(ctx context.Context, id string, fields event.Fields) (*event.Event, error) {
	existing, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if violations := event.ValidateForUpdate(fields); len(violations) > 0 {
		return nil, event.NewValidationError(violations)
	}

	updated := existing.Clone()
	event.PatchFromFields(fields).ApplyTo(updated)

	if err := s.store.Put(ctx, updated); err != nil {
		return nil, unavailable("update", id, err)
	}
	return updated, nil
}

// DeleteEvent はイベントを削除する
// ゲートウェイの Delete は存在しないキーでも成功するため、存在確認はここで行う
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return unavailable("delete", id, err)
	}
	return nil
}

func unavailable(op, id string, err error) error {
	logger.Warn("ストア操作に失敗しました",
		zap.String("operation", op),
		zap.String("event_id", id),
		zap.Error(err),
	)
	return event.ErrServiceUnavailable
}
