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

	"github.com/gin-gonic/gin"
	"github.com/moodlog/backend/internal/cache"
	"github.com/moodlog/backend/internal/config"
	"github.com/moodlog/backend/internal/db"
	"github.com/moodlog/backend/internal/handler"
	"github.com/moodlog/backend/internal/logger"
	"github.com/moodlog/backend/internal/metrics"
	"github.com/moodlog/backend/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// @title moodlog API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env 및 환경변수에서 설정 로드
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()

	pg := db.NewPostgres(pool, cfg.Postgres.QueryTimeout)
	if err := pg.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	// REDIS_URL이 설정된 경우에만 revocation 캐시 사용
	var store service.RevocationStore = pg
	if cfg.Redis.URL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer func() { _ = client.Close() }()
		store = cache.NewRevocationCache(pg, client, cfg.Auth.RevocationRetention, log)
		log.Info("revocation cache enabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	codec := service.NewTokenCodec(cfg.Auth.JWTSecret)
	gate := service.NewSessionGate(codec, store, log, m)
	verifier := service.NewPasswordVerifier(cfg.Auth.BcryptCost)

	authSvc := service.NewAuthService(pg, verifier, codec, gate, cfg.Auth.TokenTTL, log)
	google := service.NewGoogleService(cfg.Google, service.GoogleDeps{
		Users:       pg,
		Verifier:    verifier,
		Auth:        authSvc,
		StateSecret: cfg.Auth.JWTSecret,
		FrontendURL: cfg.FrontendURL,
		Log:         log,
	})
	if google == nil {
		log.Info("google sign-in disabled")
	}

	sweeper := service.NewRevocationSweeper(store, service.SweeperConfig{
		Interval:  cfg.Auth.SweepInterval,
		Retention: cfg.Auth.RevocationRetention,
	}, log, m)
	if err := sweeper.Start(); err != nil {
		return fmt.Errorf("sweeper: %w", err)
	}
	defer sweeper.Stop()

	router := handler.NewRouter(handler.RouterDeps{
		Log:            log,
		Gate:           gate,
		DB:             pg,
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth:           handler.NewAuthHandler(authSvc, google),
		Journals:       handler.NewJournalHandler(service.NewJournalService(pg, log)),
		Moods:          handler.NewMoodHandler(service.NewMoodService(pg, log)),
		Users:          handler.NewUserHandler(service.NewUserService(pg, verifier, log)),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	// 종료 시그널 수신 시 graceful shutdown
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
