package main

import (
	"context"
	"fmt"
	"time"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/ideaforge/messaging-service/internal/config"
	"github.com/ideaforge/messaging-service/internal/repository/postgres"
)

// The retention worker archives messages past the archive window and
// purges those past the hard retention ceiling, on a fixed interval.
func main() {
	cfg := config.MustLoad()
	logger := logger_lib.New(cfg.Logger.Host, cfg.Logger.Port, cfg.Service.Name, cfg.Platform.Env)

	dbRepo := postgres.New(cfg)
	defer dbRepo.Close()

	ctx := context.Background()

	run := func() {
		now := time.Now().UTC()

		archived, err := dbRepo.ArchiveMessagesBefore(ctx, now.Add(-cfg.Retention.ArchiveAfter))
		if err != nil {
			logger.Error(fmt.Sprintf("failed to archive messages: %v", err))
		} else if archived > 0 {
			logger.Info(fmt.Sprintf("archived %d messages", archived))
		}

		purged, err := dbRepo.PurgeMessagesBefore(ctx, now.Add(-cfg.Retention.MaxAge))
		if err != nil {
			logger.Error(fmt.Sprintf("failed to purge messages: %v", err))
		} else if purged > 0 {
			logger.Info(fmt.Sprintf("purged %d messages", purged))
		}
	}

	run()

	ticker := time.NewTicker(cfg.Retention.Interval)
	defer ticker.Stop()

	for range ticker.C {
		run()
	}
}
