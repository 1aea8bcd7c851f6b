package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sanosuguru/go-event-management-api/internal/config"
)

// MetricsBasicAuth は /metrics エンドポイント用の Basic 認証ミドルウェア
// METRICS_USER と METRICS_PASSWORD の両方が設定されている場合のみ認証を要求する
func MetricsBasicAuth(cfg *config.MetricsConfig) echo.MiddlewareFunc {
	// 認証設定がない場合はスキップ（ローカル開発用）
	if !cfg.IsEnabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	expectedUser := []byte(cfg.User)
	expectedPass := []byte(cfg.Password)
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: "metrics",
		Validator: func(username, password string, c echo.Context) (bool, error) {
			// タイミング攻撃を防ぐため ConstantTimeCompare を使用
			userMatch := subtle.ConstantTimeCompare([]byte(username), expectedUser) == 1
			passMatch := subtle.ConstantTimeCompare([]byte(password), expectedPass) == 1
			return userMatch && passMatch, nil
		},
	})
}
