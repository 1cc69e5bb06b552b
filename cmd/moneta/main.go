package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"moneta/internal/agent"
	"moneta/internal/chart"
	"moneta/internal/config"
	apphttp "moneta/internal/http"
	"moneta/internal/llm/gemini"
	applog "moneta/internal/log"
	"moneta/internal/query"
	"moneta/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration",
			applog.FieldOperation, applog.OpStartup,
			applog.FieldError, err)
		os.Exit(1)
	}

	st := store.New()
	engine := query.New(st)
	charts := chart.NewRenderer(cfg.ChartWidth, cfg.ChartHeight)
	gen := gemini.New(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiTimeout)

	extractor := agent.NewExtractor(st, gen, logger.WithComponent(applog.ComponentAgent))
	resolver := agent.NewResolver(st, engine, charts, gen, logger.WithComponent(applog.ComponentAgent))

	srv := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + cfg.Port,
		Credential:         cfg.GeminiAPIKey,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, st, engine, extractor, resolver, logger)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting moneta server",
			applog.FieldOperation, applog.OpStartup,
			"port", cfg.Port,
			applog.FieldModel, cfg.GeminiModel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error",
			applog.FieldOperation, applog.OpShutdown,
			applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully", applog.FieldOperation, applog.OpShutdown)
}
