package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-management-api/internal/api/router"
	"github.com/sanosuguru/go-event-management-api/internal/application"
	"github.com/sanosuguru/go-event-management-api/internal/config"
	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/infrastructure/dynamo"
	"github.com/sanosuguru/go-event-management-api/internal/infrastructure/memory"
	"github.com/sanosuguru/go-event-management-api/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-event-management-api/internal/infrastructure/redis"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/logger"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/metrics"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.App.Env, cfg.App.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// ストアはプロセスで1つだけ作成し、全リクエストで共有する
	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Fatal("ストアの初期化に失敗しました",
			zap.String("backend", cfg.Store.Backend),
			zap.Error(err),
		)
	}
	defer closeStore()

	m := metrics.New()
	eventService := application.NewEventService(metrics.InstrumentStore(store, m))

	e := router.New(router.Options{
		EventService: eventService,
		Metrics:      m,
		Gatherer:     prometheus.DefaultGatherer,
		MetricsAuth:  &cfg.Metrics,
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Graceful shutdown
	go func() {
		logger.Info("サーバーを起動します",
			zap.String("port", cfg.Server.Port),
			zap.String("backend", cfg.Store.Backend),
			zap.Bool("metrics_auth", cfg.Metrics.IsEnabled()),
		)
		if err := e.Start(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
		return
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}

// buildStore は STORE_BACKEND に応じたストアゲートウェイを作成する
func buildStore(ctx context.Context, cfg *config.Config) (event.Store, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendDynamoDB:
		client, err := dynamo.NewClient(ctx, &cfg.DynamoDB)
		if err != nil {
			return nil, noop, err
		}
		// DynamoDB Local などではテーブルを自前で用意する
		if cfg.DynamoDB.Endpoint != "" {
			if err := dynamo.EnsureTable(ctx, client, cfg.DynamoDB.TableName); err != nil {
				return nil, noop, err
			}
		}
		return dynamo.NewEventStore(client, cfg.DynamoDB.TableName), noop, nil

	case config.BackendPostgres:
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
			db.Close()
			return nil, noop, err
		}
		return postgres.NewEventStore(db), func() { db.Close() }, nil

	case config.BackendRedis:
		client := redisinfra.NewClient(&cfg.Redis)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisinfra.Ping(pingCtx, client); err != nil {
			client.Close()
			return nil, noop, err
		}
		return redisinfra.NewEventStore(client, cfg.Redis.KeyPrefix), func() { client.Close() }, nil

	case config.BackendMemory:
		logger.Warn("インメモリストアを使用します。再起動でデータは失われます")
		return memory.NewEventStore(), noop, nil
	}

	return nil, noop, fmt.Errorf("未対応のストアバックエンドです: %q", cfg.Store.Backend)
}
