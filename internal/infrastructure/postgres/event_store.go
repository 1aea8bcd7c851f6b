package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/logger"
)

const eventColumns = `event_id, title, description, date, location, capacity, organizer, status`

// EventStore は event.Store のPostgreSQL実装
type EventStore struct {
	db *sqlx.DB
}

// NewEventStore はEventStoreを作成する
func NewEventStore(db *sqlx.DB) *EventStore {
	return &EventStore{db: db}
}

// Put はイベントを upsert する。同じ event_id の行は全列が置き換わる
func (s *EventStore) Put(ctx context.Context, e *event.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES (:event_id, :title, :description, :date, :location, :capacity, :organizer, :status)
		ON CONFLICT (event_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			date = EXCLUDED.date,
			location = EXCLUDED.location,
			capacity = EXCLUDED.capacity,
			organizer = EXCLUDED.organizer,
			status = EXCLUDED.status,
			updated_at = NOW()
	`
	if _, err := s.db.NamedExecContext(ctx, query, e); err != nil {
		return s.fail("put", err)
	}
	return nil
}

// Get はIDからイベントを取得する
func (s *EventStore) Get(ctx context.Context, eventID string) (*event.Event, bool, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE event_id = $1`

	var e event.Event
	err := s.db.GetContext(ctx, &e, query, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, s.fail("get", err)
	}
	return &e, true, nil
}

// ScanAll は全イベントを取得する。status が空でなければ一致する行だけを返す
func (s *EventStore) ScanAll(ctx context.Context, status string) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	events := []*event.Event{}
	if err := s.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, s.fail("scan", err)
	}
	return events, nil
}

// Delete はイベントを削除する。行が存在しなくても成功する
func (s *EventStore) Delete(ctx context.Context, eventID string) error {
	query := `DELETE FROM events WHERE event_id = $1`

	if _, err := s.db.ExecContext(ctx, query, eventID); err != nil {
		return s.fail("delete", err)
	}
	return nil
}

func (s *EventStore) fail(op string, err error) error {
	fields := []zap.Field{zap.String("operation", op), zap.Error(err)}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		fields = append(fields, zap.String("pg_code", string(pqErr.Code)))
	}
	logger.Error("PostgreSQL操作に失敗しました", fields...)
	return event.ErrStoreUnavailable
}

// インターフェースを満たしているか確認
var _ event.Store = (*EventStore)(nil)
