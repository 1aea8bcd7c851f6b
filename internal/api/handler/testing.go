package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-management-api/internal/api"
)

// NewTestEcho はテスト用のEchoインスタンスを作成する
func NewTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	e.JSONSerializer = api.JSONSerializer{}
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	return e
}
