package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/pagemirror/internal/config"
	"github.com/aleister1102/pagemirror/internal/logger"
	"github.com/aleister1102/pagemirror/internal/mirror"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := ParseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		return exitUsage
	}

	// Bootstrap logger until the configured one exists
	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootLogger)
	if err != nil {
		bootLogger.Error().Err(err).Str("path", flags.GlobalConfigFile).Msg("Could not load configuration")
		return exitFatal
	}
	flags.ApplyOverrides(gCfg)

	if err := config.ValidateConfig(gCfg); err != nil {
		bootLogger.Error().Err(err).Msg("Configuration validation failed")
		return exitUsage
	}

	runID := uuid.NewString()
	zLogger, err := logger.NewWithRunID(gCfg.LogConfig, runID)
	if err != nil {
		bootLogger.Error().Err(err).Msg("Could not initialize logger")
		return exitFatal
	}

	m, err := mirror.NewMirrorBuilder(zLogger).
		WithConfig(gCfg).
		WithRunID(runID).
		Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to create mirror")
		return exitFatal
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := m.Run(ctx, flags.TargetURL)
	if err != nil {
		zLogger.Error().Err(err).Str("url", flags.TargetURL).Msg("Mirror failed")
		return exitFatal
	}

	fmt.Fprintf(os.Stdout, "Saved %s (%d bytes), %d assets saved, %d failed, %d skipped\n",
		summary.DocumentPath, summary.DocumentSize, len(summary.Stored), len(summary.Failed), len(summary.Skipped))
	return exitOK
}
