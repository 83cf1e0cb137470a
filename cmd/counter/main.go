package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/asyncware/app/counter"
	"github.com/dmitrymomot/asyncware/core/config"
	"github.com/dmitrymomot/asyncware/core/logger"
	"github.com/dmitrymomot/asyncware/integration/database/redis"
)

func main() {
	var cfg counter.Config
	config.MustLoad(&cfg)

	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("counter stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg counter.Config, log *slog.Logger) error {
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Warn("failed to close redis client", logger.Error(err))
		}
	}()

	app, err := counter.NewApp(cfg, client, counter.WithLogger(log))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(app.Run(ctx))

	return g.Wait()
}

func newLogger(cfg counter.Config) *slog.Logger {
	if cfg.IsProduction() {
		return logger.New(logger.WithProduction(cfg.AppName))
	}
	return logger.New(logger.WithDevelopment(cfg.AppName))
}
