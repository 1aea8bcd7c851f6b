package handler

import (
	"context"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
)

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, fields event.Fields) (*event.Event, error)
	GetEvent(ctx context.Context, id string) (*event.Event, error)
	ListEvents(ctx context.Context, status string) ([]*event.Event, error)
	UpdateEvent(ctx context.Context, id string, fields event.Fields) (*event.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
