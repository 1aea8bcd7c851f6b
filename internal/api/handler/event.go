package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-management-api/internal/api"
)

type EventHandler struct {
	eventService EventServiceInterface
	binder       echo.DefaultBinder
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// eventPath は /events/:eventId のパスパラメータ
type eventPath struct {
	EventID string `param:"eventId" validate:"required"`
}

// listQuery は一覧取得のクエリパラメータ
type listQuery struct {
	Status string `query:"status"`
}

func (h *EventHandler) eventID(c echo.Context) (string, error) {
	var p eventPath
	if err := h.binder.BindPathParams(c, &p); err != nil {
		return "", err
	}
	if err := c.Validate(&p); err != nil {
		return "", err
	}
	return p.EventID, nil
}

// Create godoc
// @Summary イベントを作成
// @Description 新しいイベントを作成します。eventId を省略した場合は UUID を採番します
// @Tags events
// @Accept json
// @Produce json
// @Param request body event.Event true "イベント情報"
// @Success 201 {object} event.Event
// @Failure 400 {object} api.ErrorResponse
// @Failure 422 {object} api.ErrorResponse
// @Failure 503 {object} api.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	fields, err := api.DecodeFields(c.Request().Body)
	if err != nil {
		return api.RespondError(c, err)
	}

	e, err := h.eventService.CreateEvent(c.Request().Context(), fields)
	if err != nil {
		return api.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

// GetByID godoc
// @Summary イベントを取得
// @Description 指定IDのイベントを取得します
// @Tags events
// @Produce json
// @Param eventId path string true "イベントID"
// @Success 200 {object} event.Event
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{eventId} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := h.eventID(c)
	if err != nil {
		return api.RespondError(c, err)
	}

	e, err := h.eventService.GetEvent(c.Request().Context(), id)
	if err != nil {
		return api.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// List godoc
// @Summary イベント一覧を取得
// @Description イベントの一覧を取得します。status を指定すると一致するものだけを返します
// @Tags events
// @Produce json
// @Param status query string false "ステータス"
// @Success 200 {array} event.Event
// @Failure 503 {object} api.ErrorResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	var q listQuery
	if err := h.binder.BindQueryParams(c, &q); err != nil {
		return api.RespondError(c, err)
	}

	events, err := h.eventService.ListEvents(c.Request().Context(), q.Status)
	if err != nil {
		return api.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

// Update godoc
// @Summary イベントを更新
// @Description 指定したフィールドだけを更新します。PUT と PATCH は同じ部分更新です
// @Tags events
// @Accept json
// @Produce json
// @Param eventId path string true "イベントID"
// @Param request body event.Event true "更新するフィールド"
// @Success 200 {object} event.Event
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 422 {object} api.ErrorResponse
// @Router /events/{eventId} [put]
// @Router /events/{eventId} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	id, err := h.eventID(c)
	if err != nil {
		return api.RespondError(c, err)
	}
	fields, err := api.DecodeFields(c.Request().Body)
	if err != nil {
		return api.RespondError(c, err)
	}

	e, err := h.eventService.UpdateEvent(c.Request().Context(), id, fields)
	if err != nil {
		return api.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// Delete godoc
// @Summary イベントを削除
// @Description 指定IDのイベントを削除します
// @Tags events
// @Produce json
// @Param eventId path string true "イベントID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{eventId} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := h.eventID(c)
	if err != nil {
		return api.RespondError(c, err)
	}

	if err := h.eventService.DeleteEvent(c.Request().Context(), id); err != nil {
		return api.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Event %s deleted successfully", id),
	})
}
