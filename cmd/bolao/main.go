package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/palpiteria/bolao/internal/app"
	"github.com/palpiteria/bolao/internal/config"
	"github.com/palpiteria/bolao/internal/observability"
	"github.com/palpiteria/bolao/internal/platform/logging"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "bolao: load config:", err)
		return 1
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		if err := shutdownUptrace(context.Background()); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}()

	application, err := app.New(cfg)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCLI(application).RunContext(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, "bolao:", err)
		return 1
	}

	return 0
}
