package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moviemate/watchparty/internal/application/config"
	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/application/metric"
	"github.com/moviemate/watchparty/internal/infra/adapters/genai"
	"github.com/moviemate/watchparty/internal/infra/adapters/kafka"
	"github.com/moviemate/watchparty/internal/infra/adapters/memory"
	"github.com/moviemate/watchparty/internal/infra/adapters/postgres"
	"github.com/moviemate/watchparty/internal/infra/adapters/postgres/repository"
	"github.com/moviemate/watchparty/internal/infra/adapters/redis"
	"github.com/moviemate/watchparty/internal/infra/adapters/tmdb"
	"github.com/moviemate/watchparty/internal/infra/ports/http/handlers"
	"github.com/moviemate/watchparty/internal/infra/ports/http/server"
	"github.com/moviemate/watchparty/internal/usecase"
)

func runApp() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: slog.LevelInfo},
			),
		),
	)

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	slog.Info("Running app", slog.Bool("debug", cfg.Debug))

	partyStore, err := redis.New(ctx, cfg.Redis.URL)
	if err != nil {
		slog.Error("connect to redis", slog.Any(constant.Error, err))
		os.Exit(1)
	}
	defer partyStore.Close()

	dbConn, err := postgres.NewPostgres(ctx, cfg.Postgres.DSN())
	if err != nil {
		slog.Error("connect to postgres", slog.Any(constant.Error, err))
		os.Exit(1)
	}
	defer dbConn.Close()

	kafkaWriter := kafka.NewWriter(cfg.Kafka.Brokers)
	defer kafkaWriter.Close()

	emitter := kafka.NewStreamEmitter(kafkaWriter, cfg.Kafka.QueueSize)
	go emitter.Run(ctx)

	historyRepo := repository.NewHistoryRepo(dbConn)
	registry := memory.NewRoomRegistry()

	partyUsecase := usecase.NewPartyUsecase(partyStore, emitter, cfg.Host)
	relayUsecase := usecase.NewRelayUsecase(registry, partyStore, emitter, partyUsecase)
	historyUsecase := usecase.NewHistoryUsecase(historyRepo)
	recommendUsecase := usecase.NewRecommendUsecase(tmdb.New(cfg.TMDB), genai.New(cfg.Gemini), historyRepo)

	bridge := usecase.NewBridge(partyStore, registry)
	if err := bridge.Run(ctx); err != nil {
		slog.Error("attach pub/sub bridge", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	partyHandler := handlers.NewPartyHandler(partyUsecase)
	wsHandler := handlers.NewWebSocketHandler(cfg, relayUsecase)
	movieHandler := handlers.NewMovieHandler(recommendUsecase)
	historyHandler := handlers.NewHistoryHandler(historyUsecase)

	echoSrv := server.New(partyHandler, wsHandler, movieHandler, historyHandler)

	metricSrv := metric.NewServer()
	go func() {
		if err := metricSrv.Start(":" + cfg.MetricPort); err != nil {
			slog.Warn("metrics server stopped", slog.Any(constant.Error, err))
		}
	}()

	srvCh := make(chan error, 1)
	go func() {
		srvCh <- echoSrv.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server due to context cancel")
	case err := <-srvCh:
		slog.Error(
			"HTTP server failed",
			slog.Any(constant.Error, err),
		)

		os.Exit(1)
	}

	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeoutCancel()

	if err := echoSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown server", slog.Any(constant.Error, err))
	}

	if err := metricSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown metrics server", slog.Any(constant.Error, err))
	}
}
