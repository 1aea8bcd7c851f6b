package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-management-api/internal/config"
)

func serveMetrics(t *testing.T, cfg *config.MetricsConfig, authorization string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := MetricsBasicAuth(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, "metrics")
	})
	return rec, handler(c)
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestMetricsBasicAuth_NoCredentials(t *testing.T) {
	// 認証設定がない場合はスキップ
	rec, err := serveMetrics(t, &config.MetricsConfig{}, "")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "metrics", rec.Body.String())
}

func TestMetricsBasicAuth_PartialConfigSkipsAuth(t *testing.T) {
	rec, err := serveMetrics(t, &config.MetricsConfig{User: "user"}, "")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsBasicAuth_ValidCredentials(t *testing.T) {
	cfg := &config.MetricsConfig{User: "testuser", Password: "testpass"}

	rec, err := serveMetrics(t, cfg, basic("testuser", "testpass"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsBasicAuth_InvalidCredentials(t *testing.T) {
	cfg := &config.MetricsConfig{User: "testuser", Password: "testpass"}

	_, err := serveMetrics(t, cfg, basic("wronguser", "wrongpass"))

	// Basic認証失敗時はHTTPErrorが返る
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestMetricsBasicAuth_NoAuthHeader(t *testing.T) {
	cfg := &config.MetricsConfig{User: "testuser", Password: "testpass"}

	rec, err := serveMetrics(t, cfg, "")

	// ヘッダーがない場合は WWW-Authenticate 付きの401
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderWWWAuthenticate), "metrics")
}
