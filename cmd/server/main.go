package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"shortdash/internal/backend"
	"shortdash/internal/config"
	"shortdash/internal/jobs"
	"shortdash/internal/logging"
	"shortdash/internal/metrics"
	"shortdash/internal/page"
	"shortdash/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.IsDev(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Error reporting - only when a DSN is configured
	reportFailure := func(error) {}
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
		}); err != nil {
			logger.Fatalw("Failed to initialize Sentry", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
		reportFailure = func(err error) { sentry.CaptureException(err) }
		logger.Info("Sentry error reporting enabled")
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatalw("Invalid timezone", "timezone", cfg.Timezone, "error", err)
	}
	origins := cfg.Origins()

	// Pages are created before the recorder so it can report them
	var recorder *metrics.Recorder
	client := backend.New(
		backend.Origins{Shorten: origins.Shorten, Stats: origins.Stats, Links: origins.Links},
		cfg.BackendTimeout,
		logger,
		backend.WithObserver(func(endpoint, outcome string, elapsed time.Duration) {
			recorder.ObserveBackend(endpoint, outcome, elapsed)
		}),
		backend.WithFailureHook(reportFailure),
	)

	pages := page.NewRegistry(page.Deps{
		Shortener:   client,
		Stats:       client,
		Links:       client,
		FormOrigin:  origins.Shorten,
		LinksOrigin: origins.Links,
		DebugOrigin: origins.ShareDebug,
		Now:         func() time.Time { return time.Now().In(loc) },
		Log:         logger,
	})
	defer pages.Close()

	recorder = metrics.Init(pages)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prober := jobs.NewBackendProber(client,
		[]string{origins.Shorten, origins.Stats, origins.Links},
		cfg.ProbeInterval, recorder.SetBackendUp, logger)
	go prober.Start(ctx)

	janitor := jobs.NewPageJanitor(pages, cfg.SessionIdleTimeout, time.Minute, logger)
	go janitor.Start(ctx)

	// HTTP server
	srv := server.New(cfg, logger)
	srv.RegisterRoutes(server.Deps{
		Pages:     pages,
		Readiness: prober,
		Metrics:   recorder.Handler(),
	})

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			logger.Errorw("Server error", "error", err)
		}
	}()

	logger.Infow("Server started", "addr", cfg.ServerAddr, "env", cfg.Env,
		"shorten", origins.Shorten, "stats", origins.Stats, "links", origins.Links)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		logger.Errorw("Server forced to shutdown", "error", err)
	}
	logger.Info("Server exited")
}
