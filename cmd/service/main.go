package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexcesaro/statsd"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/ideaforge/messaging-service/internal/bus"
	"github.com/ideaforge/messaging-service/internal/client/centrifugo"
	"github.com/ideaforge/messaging-service/internal/config"
	"github.com/ideaforge/messaging-service/internal/infra"
	"github.com/ideaforge/messaging-service/internal/monitor"
	"github.com/ideaforge/messaging-service/internal/notify"
	"github.com/ideaforge/messaging-service/internal/pkg/cache"
	"github.com/ideaforge/messaging-service/internal/pkg/jwt"
	"github.com/ideaforge/messaging-service/internal/pkg/ratelimit"
	"github.com/ideaforge/messaging-service/internal/pkg/tx"
	db "github.com/ideaforge/messaging-service/internal/repository/postgres"
	"github.com/ideaforge/messaging-service/internal/resilience"
	"github.com/ideaforge/messaging-service/internal/rest"
	"github.com/ideaforge/messaging-service/internal/service"
)

const notificationQueueSize = 1024

func main() {
	cfg := config.MustLoad()
	logger := logger_lib.New(cfg.Logger.Host, cfg.Logger.Port, cfg.Service.Name, cfg.Platform.Env)

	dbRepo := db.New(cfg)
	defer dbRepo.Close()

	centrifugeClient := centrifugo.New(cfg)
	defer centrifugeClient.Close()

	jwtGenerator := jwt.New(cfg.Centrifuge.JWTSecret)

	// A failed statsd connection leaves a no-op client, so metrics never
	// block startup.
	stats, err := statsd.New(
		statsd.Address(fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port)),
		statsd.Prefix(cfg.Service.Name),
	)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to connect statsd: %v", err))
	}
	defer stats.Close()

	scalabilityMonitor := monitor.New(monitor.Settings{
		MaxChannelMembers: cfg.Limits.MaxChannelMembers,
	}, logger, stats)

	gateway := resilience.New(resilience.Settings{
		MaxRetries:       cfg.Resilience.MaxRetries,
		InitialBackoff:   cfg.Resilience.InitialBackoff,
		FailureThreshold: cfg.Resilience.FailureThreshold,
		CoolDown:         cfg.Resilience.CoolDown,
	}, scalabilityMonitor)

	limiter := ratelimit.New(map[ratelimit.Tier]ratelimit.Budget{
		ratelimit.TierFree:       {Requests: cfg.RateLimit.FreeRequests, Window: cfg.RateLimit.Window},
		ratelimit.TierPro:        {Requests: cfg.RateLimit.ProRequests, Window: cfg.RateLimit.Window},
		ratelimit.TierEnterprise: {Requests: cfg.RateLimit.EnterpriseRequests, Window: cfg.RateLimit.Window},
	})

	appCache := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)

	eventBus := bus.New(dbRepo, centrifugeClient)

	notifier := notify.NewQueued(notify.New(dbRepo, centrifugeClient), notificationQueueSize, func(err error) {
		logger.Warn(fmt.Sprintf("notification fanout failed: %v", err))
	})
	defer notifier.Shutdown()

	messagingService := service.New(
		dbRepo,
		gateway,
		limiter,
		appCache,
		eventBus,
		notifier,
		scalabilityMonitor,
		cfg.Limits,
	)

	handler := rest.New(messagingService, jwtGenerator)
	router := chi.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return infra.AuthInterceptorHTTP(next)
	})
	router.Use(func(next http.Handler) http.Handler {
		return infra.LoggerHTTP(next, logger)
	})
	router.Use(func(next http.Handler) http.Handler {
		return tx.TxMiddlewareHTTP(dbRepo)(next)
	})

	handler.Register(router)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Service.Port),
		Handler: router,
	}

	g, _ := errgroup.WithContext(context.Background())

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("server error: %v", err))
	}
}
