package main

import (
	// stdlib
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	// internal
	"github.com/Robogera/gcoll/pkg/config"
	"github.com/Robogera/gcoll/pkg/enums"
	"github.com/Robogera/gcoll/pkg/rpath"

	// external
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
)

const (
	default_cfg_path string = "../cfg/config.default.toml"
)

var cfg_path string
var create_default bool
var exe_dir string

func init() {
	flag.StringVar(
		&cfg_path, "config",
		default_cfg_path,
		"Path to config file, relative paths start at the executable's directory")
	flag.BoolVar(
		&create_default, "create-default",
		false,
		"Write the default config to -config and exit")

	var err error
	exe_dir, err = rpath.ExecutableDir()
	if err != nil {
		slog.Warn("Can't find the executable's location, using the working directory", "error", err)
	}
}

func logLevel(level string) slog.Level {
	parsed := enums.LoggingLevels.Parse(level)
	if parsed == nil {
		slog.Warn(
			"No valid logging level provided. Defaulting to LevelError",
			"provided value", level)
		return slog.LevelError
	}
	switch *parsed {
	case enums.LoggingLevelDebug:
		return slog.LevelDebug
	case enums.LoggingLevelInfo:
		return slog.LevelInfo
	case enums.LoggingLevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func main() {

	// Configuration init

	flag.Parse()

	path := rpath.Resolve(exe_dir, cfg_path)

	if create_default {
		if err := config.CreateDefault(path); err != nil {
			slog.Error("Can't write default config", "path", path, "error", err)
			os.Exit(1)
		}
		slog.Info("Default config written", "path", path)
		return
	}

	cfg, err := config.Unmarshal(path)
	if err != nil {
		slog.Error("Config file not loaded. Shutting down...", "provided path", path, "error", err)
		os.Exit(1)
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      logLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		AddSource:  false,
	}))

	logger.Info("Starting...", "containers", cfg.Soak.Containers, "operations", cfg.Soak.Operations, "seed", cfg.Soak.Seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eg, child_ctx := errgroup.WithContext(ctx)

	stats_chan := make(chan Statistics, len(cfg.Soak.Containers))

	eg.Go(func() error {
		err := soak(child_ctx, logger, cfg, stats_chan)
		close(stats_chan)
		if err != nil {
			return err
		}
		// finished cleanly, release control
		cancel()
		return nil
	})

	eg.Go(func() error {
		return stat(
			logger, stats_chan,
			cfg.Logging.StatPeriodSec,
			cfg.Logging.StatWindow)
	})

	eg.Go(func() error {
		return control(child_ctx, logger)
	})

	err = eg.Wait()
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("Stopped")
	case errors.Is(err, ERR_INTERRUPTED_BY_USER):
		logger.Warn("Stopped before the workload finished")
	default:
		logger.Error("Soak failed", "error", err)
		os.Exit(1)
	}
}

func control(ctx context.Context, logger *slog.Logger) error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt,
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGINT)
	defer signal.Stop(interrupt)

	select {
	case <-ctx.Done():
		logger.Debug("Control cancelled by context")
		return context.Canceled
	case <-interrupt:
		logger.Info("Cancelled by user")
		return ERR_INTERRUPTED_BY_USER
	}
}
