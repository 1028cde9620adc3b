package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/matchdesk/league-console/external/leagueapi"
	"github.com/matchdesk/league-console/internal/config"
	"github.com/matchdesk/league-console/internal/domain/sport"
	"github.com/matchdesk/league-console/internal/observability"
	"github.com/matchdesk/league-console/internal/platform/logging"
	"github.com/matchdesk/league-console/internal/platform/resilience"
	"github.com/matchdesk/league-console/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer logger.Sync()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		os.Exit(1)
	}

	client := leagueapi.NewClient(leagueapi.Config{
		BaseURL:    cfg.LeagueAPIBaseURL,
		Tokens:     leagueapi.StaticToken(cfg.LeagueAPIToken),
		Timeout:    cfg.LeagueAPITimeout,
		MaxRetries: cfg.LeagueAPIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LeagueAPICircuitEnabled,
			FailureThreshold: cfg.LeagueAPICircuitFailureCount,
			OpenTimeout:      cfg.LeagueAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LeagueAPICircuitHalfOpenMax,
		},
	})
	client.SetUnauthorizedHook(func() {
		logger.Warn("api token rejected, mutations will fail until it is rotated")
	})

	st := store.New(client, store.Options{
		Logger:  logger,
		Locale:  cfg.Locale,
		Workers: cfg.RefreshWorkers,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	warmup := func(ctx context.Context) {
		res, err := st.Refresh(ctx, store.Selection{Sport: sport.Football})
		if err != nil {
			logger.ErrorContext(ctx, "refresh failed", "error", err)
			return
		}
		if res.Failed > 0 {
			logger.WarnContext(ctx, "refresh finished with failures",
				"attempted", res.Attempted,
				"failed", res.Failed,
			)
		}
	}
	warmup(ctx)

	if cfg.RefreshInterval > 0 {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
				warmup(ctx)
			}
		}
	} else {
		<-ctx.Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
		logger.Error("stop pprof", "error", err)
	}
	if err := stopPyroscope(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := shutdownUptrace(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}

	logger.Info("console stopped")
}
