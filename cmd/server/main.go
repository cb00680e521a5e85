package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/worklog/internal/config"
	"github.com/bornholm/worklog/internal/setup"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"

	// Task store adapters
	_ "github.com/bornholm/worklog/internal/adapter/gorm"
	_ "github.com/bornholm/worklog/internal/adapter/memory"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf, err := config.Parse()
	if err != nil {
		slog.ErrorContext(ctx, "could not parse config", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	logger := slog.New(slogx.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     slog.Level(conf.Logger.Level),
			AddSource: true,
		}),
	})

	slog.SetDefault(logger)

	slog.DebugContext(ctx, "using configuration", slog.Any("config", conf))

	if conf.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: conf.Sentry.DSN}); err != nil {
			slog.ErrorContext(ctx, "could not initialize sentry", slog.Any("error", errors.WithStack(err)))
			os.Exit(1)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	go func() {
		slog.InfoContext(ctx, "use ctrl+c to interrupt")
		<-sig
		cancel()
	}()

	if conf.Scheduler.Enabled {
		carryForward, err := setup.NewCarryForwardFromConfig(ctx, conf)
		if err != nil {
			slog.ErrorContext(ctx, "could not setup carry-forward scheduler", slog.Any("error", errors.WithStack(err)))
			os.Exit(1)
		}

		if err := carryForward.Start(ctx); err != nil {
			slog.ErrorContext(ctx, "could not start carry-forward scheduler", slog.Any("error", errors.WithStack(err)))
			os.Exit(1)
		}

		defer carryForward.Stop()
	}

	server, err := setup.NewHTTPServerFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not setup http server", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}

	slog.InfoContext(ctx, "starting server", slog.Any("address", conf.HTTP.Address))

	if err := server.Run(ctx); err != nil {
		slog.Error("could not run server", slog.Any("error", errors.WithStack(err)))
		os.Exit(1)
	}
}
