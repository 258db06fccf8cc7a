// Package main provides the entry point for the betting optimizer API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/betting-optimizer/internal/apifootball"
	"github.com/yourusername/betting-optimizer/internal/config"
	"github.com/yourusername/betting-optimizer/internal/engine"
	"github.com/yourusername/betting-optimizer/internal/logger"
	"github.com/yourusername/betting-optimizer/internal/metrics"
	"github.com/yourusername/betting-optimizer/internal/scheduler"
	"github.com/yourusername/betting-optimizer/internal/server"
	"github.com/yourusername/betting-optimizer/internal/service"
)

func main() {
	cfg, err := config.LoadWithDefaults(os.Getenv("BETTING_OPTIMIZER_CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The API key may come straight from the environment instead of the file
	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = os.Getenv("API_FOOTBALL_KEY")
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Betting Optimizer starting")

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	httpCfg := apifootball.DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.ProviderTimeout()
	httpCfg.MaxRetries = cfg.Provider.MaxRetries
	httpCfg.RateLimit = cfg.Provider.RateLimitPerSecond
	httpClient := apifootball.NewRateLimitedHTTPClient(httpCfg, appLog)
	defer httpClient.Close()

	client := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:       cfg.Provider.BaseURL,
		APIKey:        cfg.Provider.APIKey,
		Host:          cfg.Provider.Host,
		BookmakerID:   cfg.Provider.BookmakerID,
		BookmakerName: cfg.Provider.BookmakerName,
	}, httpClient, appLog)

	pipeline := engine.NewPipeline(engine.BuilderOptions{
		MaxEligibleSingles: cfg.Engine.MaxEligibleSingles,
		MaxAccumulators:    cfg.Engine.MaxAccumulators,
	}, appLog)

	analyzer := service.NewAnalyzer(client, pipeline, cfg.ProviderCacheTTL(), appLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warm the first snapshot; failure here is not fatal, the API can
	// run the analysis on demand
	if cfg.Provider.APIKey != "" {
		warmCtx, warmCancel := context.WithTimeout(ctx, 5*time.Minute)
		if _, err := analyzer.Analyze(warmCtx); err != nil {
			appLog.WithError(err).Warn("Initial analysis failed, continuing without a snapshot")
		}
		warmCancel()
	} else {
		appLog.Warn("No API key configured, /api/status and analysis will be unavailable")
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(analyzer, appLog)
		if err := sched.ScheduleRefresh(cfg.Scheduler.RefreshCron); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule snapshot refresh")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		defer sched.Stop()
	}

	srv := server.NewServer(server.Config{
		Port:             cfg.Server.Port,
		ReadTimeout:      time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:     time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		DefaultStake:     cfg.Engine.DefaultStake,
		APIKeyConfigured: cfg.Provider.APIKey != "",
		MetricsEnabled:   cfg.Metrics.Enabled,
		MetricsPath:      cfg.Metrics.Path,

		MaxEligibleSingles: cfg.Engine.MaxEligibleSingles,
		MaxAccumulators:    cfg.Engine.MaxAccumulators,
	}, analyzer, appLog)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		appLog.WithField("signal", sig.String()).Info("Shutdown signal received")
		cancel()
	}()

	if err := srv.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("API server failed")
	}

	appLog.Info("Betting Optimizer stopped")
}
