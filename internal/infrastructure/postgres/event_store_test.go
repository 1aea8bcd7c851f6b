package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
)

var columns = []string{"event_id", "title", "description", "date", "location", "capacity", "organizer", "status"}

func newMockStore(t *testing.T) (*EventStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewEventStore(sqlx.NewDb(db, "postgres")), mock
}

func sampleEvent() *event.Event {
	return &event.Event{
		EventID:     "evt-1",
		Title:       "Go Conference",
		Description: "年次カンファレンス",
		Date:        "2025-06-01",
		Location:    "東京",
		Capacity:    120,
		Organizer:   "Go Community",
		Status:      "active",
	}
}

func TestEventStore_Put(t *testing.T) {
	store, mock := newMockStore(t)
	e := sampleEvent()

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (event_id) DO UPDATE")).
		WithArgs(e.EventID, e.Title, e.Description, e.Date, e.Location, e.Capacity, e.Organizer, e.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Put(context.Background(), e))
}

func TestEventStore_Get(t *testing.T) {
	t.Run("存在するイベントを取得できる", func(t *testing.T) {
		store, mock := newMockStore(t)
		e := sampleEvent()
		mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE event_id = $1")).
			WithArgs("evt-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(e.EventID, e.Title, e.Description, e.Date, e.Location, e.Capacity, e.Organizer, e.Status))

		got, found, err := store.Get(context.Background(), "evt-1")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, e, got)
	})

	t.Run("存在しない場合はfound=falseでエラーなし", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE event_id = $1")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(columns))

		got, found, err := store.Get(context.Background(), "missing")

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, got)
	})

	t.Run("DBエラーはErrStoreUnavailable", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE event_id = $1")).
			WithArgs("evt-1").
			WillReturnError(&pq.Error{Code: "57P01", Message: "terminating connection"})

		_, found, err := store.Get(context.Background(), "evt-1")

		assert.ErrorIs(t, err, event.ErrStoreUnavailable)
		assert.False(t, found)
	})
}

func TestEventStore_ScanAll(t *testing.T) {
	t.Run("フィルタなしは全件", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT .+ FROM events ORDER BY created_at`).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("a", "A", "", "2025-01-01", "X", 1, "O", "active").
				AddRow("b", "B", "", "2025-01-02", "Y", 2, "O", "cancelled"))

		events, err := store.ScanAll(context.Background(), "")

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "a", events[0].EventID)
		assert.Equal(t, "cancelled", events[1].Status)
	})

	t.Run("statusで絞り込む", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE status = $1")).
			WithArgs("active").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("a", "A", "", "2025-01-01", "X", 1, "O", "active"))

		events, err := store.ScanAll(context.Background(), "active")

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "active", events[0].Status)
	})

	t.Run("0件は空スライス", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE status = $1")).
			WithArgs("none").
			WillReturnRows(sqlmock.NewRows(columns))

		events, err := store.ScanAll(context.Background(), "none")

		require.NoError(t, err)
		assert.NotNil(t, events)
		assert.Empty(t, events)
	})

	t.Run("DBエラーはErrStoreUnavailable", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`FROM events`).WillReturnError(errors.New("connection refused"))

		_, err := store.ScanAll(context.Background(), "")

		assert.ErrorIs(t, err, event.ErrStoreUnavailable)
	})
}

func TestEventStore_Delete(t *testing.T) {
	t.Run("存在しない行の削除も成功する", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE event_id = $1")).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, store.Delete(context.Background(), "missing"))
	})

	t.Run("DBエラーはErrStoreUnavailable", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events")).
			WithArgs("evt-1").
			WillReturnError(errors.New("connection reset"))

		err := store.Delete(context.Background(), "evt-1")

		assert.ErrorIs(t, err, event.ErrStoreUnavailable)
		assert.NotContains(t, err.Error(), "connection reset")
	})
}
