// Command launchdash serves the SpaceX launch records dashboard. The dataset
// is read once at startup; every setting comes from LAUNCHDASH_* environment
// variables.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"launchdash/internal/adapters/httpapi"
	"launchdash/internal/blob"
	"launchdash/internal/config"
	"launchdash/internal/dashboard"
	"launchdash/internal/logging"
	"launchdash/internal/observability"
	"launchdash/internal/render"
	"launchdash/internal/server"
	"launchdash/internal/source"
)

var exitFunc = os.Exit

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stderr)
	stop()
	exitFunc(code)
}

func run(ctx context.Context, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "launchdash: %v\n", err)
		return 2
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "launchdash: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error("launchdash exited", zap.Error(err))
		return 1
	}
	return 0
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	recorder, metricsHandler, err := observability.New(cfg.Metrics)
	if err != nil {
		return err
	}

	ds, err := source.Load(ctx, cfg.Dataset, source.Options{
		Table: cfg.DatasetTable,
		S3: blob.S3Config{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		},
	})
	if err != nil {
		return err
	}
	logger.Info("dataset loaded",
		zap.String("source", ds.Source()),
		zap.Int("records", ds.Len()),
		zap.Strings("sites", ds.Sites()),
		zap.Float64("min_payload_kg", ds.MinPayload()),
		zap.Float64("max_payload_kg", ds.MaxPayload()),
	)

	svc := dashboard.New(ds,
		dashboard.WithLogger(logger.Named("dashboard")),
		dashboard.WithMetrics(recorder),
	)
	handler := httpapi.NewHandler(svc, httpapi.Options{
		Render: render.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight},
		Logger: logger.Named("http"),
	})
	srv, err := server.New(server.Config{Addr: cfg.HTTPAddr, ShutdownTimeout: cfg.ShutdownTimeout}, handler, server.Options{
		Logger:         logger,
		Metrics:        recorder,
		MetricsHandler: metricsHandler,
	})
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}
