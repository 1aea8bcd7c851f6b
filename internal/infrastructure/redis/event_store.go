package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/logger"
)

// EventStore は event.Store のRedis実装
// イベントは <prefix>event:<id> のハッシュに保存し、ID の一覧を <prefix>events のセットで持つ
type EventStore struct {
	client redis.UniversalClient
	prefix string
}

// NewEventStore はEventStoreを作成する
func NewEventStore(client redis.UniversalClient, prefix string) *EventStore {
	return &EventStore{client: client, prefix: prefix}
}

// Put はハッシュの書き込みとインデックスへの追加を1トランザクションで行う
func (s *EventStore) Put(ctx context.Context, e *event.Event) error {
	key := s.eventKey(e.EventID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// 上書き時に古いフィールドが残らないよう作り直す
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, e)
		pipe.SAdd(ctx, s.indexKey(), e.EventID)
		return nil
	})
	if err != nil {
		return s.fail("put", err)
	}
	return nil
}

// Get はハッシュからイベントを取得する
func (s *EventStore) Get(ctx context.Context, eventID string) (*event.Event, bool, error) {
	cmd := s.client.HGetAll(ctx, s.eventKey(eventID))
	values, err := cmd.Result()
	if err != nil {
		return nil, false, s.fail("get", err)
	}
	if len(values) == 0 {
		return nil, false, nil
	}

	var e event.Event
	if err := cmd.Scan(&e); err != nil {
		return nil, false, s.fail("get", err)
	}
	return &e, true, nil
}

// ScanAll はインデックスの全IDをパイプラインでまとめて取得する
func (s *EventStore) ScanAll(ctx context.Context, status string) ([]*event.Event, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, s.fail("scan", err)
	}

	events := []*event.Event{}
	if len(ids) == 0 {
		return events, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, s.eventKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("scan", err)
	}

	for _, cmd := range cmds {
		// インデックスだけ残ったIDは読み飛ばす
		if len(cmd.Val()) == 0 {
			continue
		}
		var e event.Event
		if err := cmd.Scan(&e); err != nil {
			return nil, s.fail("scan", err)
		}
		if status != "" && e.Status != status {
			continue
		}
		events = append(events, &e)
	}
	return events, nil
}

// Delete はハッシュとインデックスのエントリを削除する。存在しなくても成功する
func (s *EventStore) Delete(ctx context.Context, eventID string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.eventKey(eventID))
		pipe.SRem(ctx, s.indexKey(), eventID)
		return nil
	})
	if err != nil {
		return s.fail("delete", err)
	}
	return nil
}

func (s *EventStore) fail(op string, err error) error {
	logger.Error("Redis操作に失敗しました",
		zap.String("operation", op),
		zap.String("prefix", s.prefix),
		zap.Error(err),
	)
	return event.ErrStoreUnavailable
}

func (s *EventStore) eventKey(eventID string) string {
	return fmt.Sprintf("%sevent:%s", s.prefix, eventID)
}

func (s *EventStore) indexKey() string {
	return s.prefix + "events"
}

// インターフェースを満たしているか確認
var _ event.Store = (*EventStore)(nil)
