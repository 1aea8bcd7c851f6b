package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/go-event-management-api/internal/api"
	"github.com/sanosuguru/go-event-management-api/internal/api/handler"
	"github.com/sanosuguru/go-event-management-api/internal/api/middleware"
	"github.com/sanosuguru/go-event-management-api/internal/config"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/metrics"
)

// Options はルーティングに必要な依存
type Options struct {
	EventService handler.EventServiceInterface
	// Metrics が nil の場合は /metrics を公開しない
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// MetricsAuth は /metrics の Basic 認証設定
	MetricsAuth *config.MetricsConfig
}

// New はミドルウェアとルートを設定したEchoインスタンスを作成する
func New(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.JSONSerializer = api.JSONSerializer{}
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler

	middleware.SetupMiddleware(e, opts.Metrics)
	Register(e, opts)
	return e
}

// Register はルートを登録する
func Register(e *echo.Echo, opts Options) {
	healthHandler := handler.NewHealthHandler()
	eventHandler := handler.NewEventHandler(opts.EventService)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Check)

	if opts.Metrics != nil {
		gatherer := opts.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		auth := opts.MetricsAuth
		if auth == nil {
			auth = &config.MetricsConfig{}
		}
		e.GET("/metrics",
			echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
			middleware.MetricsBasicAuth(auth),
		)
	}

	events := e.Group("/events")
	events.POST("", eventHandler.Create)
	events.GET("", eventHandler.List)
	events.GET("/:eventId", eventHandler.GetByID)
	events.PUT("/:eventId", eventHandler.Update)
	events.PATCH("/:eventId", eventHandler.Update)
	events.DELETE("/:eventId", eventHandler.Delete)
}
