package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
)

func newEvent(id, status string) *event.Event {
	return &event.Event{
		EventID:   id,
		Title:     "タイトル",
		Date:      "2025-01-01",
		Location:  "会場",
		Capacity:  10,
		Organizer: "主催者",
		Status:    status,
	}
}

func TestEventStore_PutGet(t *testing.T) {
	s := NewEventStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, newEvent("e1", "active")))

	got, found, err := s.Get(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, newEvent("e1", "active"), got)
}

func TestEventStore_GetMissing(t *testing.T) {
	s := NewEventStore()

	got, found, err := s.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestEventStore_PutOverwrites(t *testing.T) {
	s := NewEventStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, newEvent("e1", "active")))
	require.NoError(t, s.Put(ctx, newEvent("e1", "done")))

	got, _, err := s.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "done", got.Status)
	assert.Equal(t, 1, s.Len())
}

func TestEventStore_ReturnsCopies(t *testing.T) {
	s := NewEventStore()
	ctx := context.Background()
	e := newEvent("e1", "active")
	require.NoError(t, s.Put(ctx, e))

	e.Title = "changed after put"
	got, _, _ := s.Get(ctx, "e1")
	got.Status = "changed after get"

	again, _, _ := s.Get(ctx, "e1")
	assert.Equal(t, "タイトル", again.Title)
	assert.Equal(t, "active", again.Status)
}

func TestEventStore_ScanAll(t *testing.T) {
	s := NewEventStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, newEvent("e1", "active")))
	require.NoError(t, s.Put(ctx, newEvent("e2", "active")))
	require.NoError(t, s.Put(ctx, newEvent("e3", "done")))

	all, err := s.ScanAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := s.ScanAll(ctx, "active")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	// 大文字小文字は区別する
	upper, err := s.ScanAll(ctx, "ACTIVE")
	require.NoError(t, err)
	assert.NotNil(t, upper)
	assert.Empty(t, upper)
}

func TestEventStore_DeleteIsIdempotent(t *testing.T) {
	s := NewEventStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, newEvent("e1", "active")))

	require.NoError(t, s.Delete(ctx, "e1"))
	require.NoError(t, s.Delete(ctx, "e1"))

	_, found, err := s.Get(ctx, "e1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEventStore_ConcurrentAccess(t *testing.T) {
	s := NewEventStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("e%d", i)
			_ = s.Put(ctx, newEvent(id, "active"))
			_, _, _ = s.Get(ctx, id)
			_, _ = s.ScanAll(ctx, "active")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
