package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error      string            `json:"error"`
	Code       int               `json:"code,omitempty"`
	Violations []event.Violation `json:"violations,omitempty"`
}

// ToErrorResponse はエラーをHTTPステータスとレスポンスボディに変換する
func ToErrorResponse(err error) (int, ErrorResponse) {
	var (
		validationErr *event.ValidationError
		httpErr       *echo.HTTPError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:      "入力内容が不正です",
			Code:       http.StatusUnprocessableEntity,
			Violations: validationErr.Violations,
		}
	case errors.Is(err, event.ErrEventNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: http.StatusNotFound}
	case errors.Is(err, event.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: http.StatusServiceUnavailable}
	case errors.Is(err, ErrMalformedBody):
		return http.StatusBadRequest, ErrorResponse{Error: ErrMalformedBody.Error(), Code: http.StatusBadRequest}
	case errors.As(err, &httpErr):
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorResponse{Error: message, Code: httpErr.Code}
	}
	return http.StatusInternalServerError, ErrorResponse{
		Error: "内部サーバーエラー",
		Code:  http.StatusInternalServerError,
	}
}

// RespondError はエラーを JSON レスポンスとして書き出す
func RespondError(c echo.Context, err error) error {
	code, body := ToErrorResponse(err)

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}
	return c.JSON(code, body)
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if err := RespondError(c, err); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
