package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aleister1102/pagemirror/internal/config"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("usage error")

// AppFlags holds the parsed command line. Override fields apply only when
// the matching flag was set explicitly.
type AppFlags struct {
	TargetURL        string
	GlobalConfigFile string
	OutputDir        string
	Concurrency      int
	Delay            time.Duration
	Timeout          time.Duration
	Retries          int
	LogLevel         string
	LogFormat        string

	changed map[string]bool
}

// ParseFlags parses args (without the program name). Help and malformed
// input return an error wrapping errUsage.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	flags := AppFlags{changed: make(map[string]bool)}

	fs := pflag.NewFlagSet("pagemirror", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "Usage: pagemirror [flags] <url>")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Mirror one web page and its stylesheets, scripts and images into a local directory.")
		fmt.Fprintln(output)
		fs.PrintDefaults()
	}

	fs.StringVarP(&flags.OutputDir, "output", "o", config.DefaultMirrorOutputDir, "Directory the page and its assets are written to")
	fs.StringVarP(&flags.GlobalConfigFile, "config", "c", "", "Path to a YAML/JSON configuration file. If not set, searches default locations.")
	fs.IntVar(&flags.Concurrency, "concurrency", config.DefaultMirrorConcurrency, "Number of assets retrieved in parallel")
	fs.DurationVar(&flags.Delay, "delay", time.Duration(config.DefaultMirrorHostDelayMs)*time.Millisecond, "Minimum spacing between two requests to the same host")
	fs.DurationVar(&flags.Timeout, "timeout", time.Duration(config.DefaultFetcherTimeoutSecs)*time.Second, "Per-request timeout")
	fs.IntVar(&flags.Retries, "retries", config.DefaultRetryMaxRetries, "Extra attempts for transient failures")
	fs.StringVar(&flags.LogLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&flags.LogFormat, "log-format", config.DefaultLogFormat, "Log format: console, json, text")

	if err := fs.Parse(args); err != nil {
		return flags, fmt.Errorf("%w: %w", errUsage, err)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return flags, fmt.Errorf("%w: expected exactly one URL, got %d arguments", errUsage, fs.NArg())
	}
	flags.TargetURL = fs.Arg(0)

	fs.Visit(func(f *pflag.Flag) {
		flags.changed[f.Name] = true
	})
	return flags, nil
}

// ApplyOverrides copies explicitly set flags over cfg
func (f AppFlags) ApplyOverrides(cfg *config.GlobalConfig) {
	if f.changed["output"] {
		cfg.MirrorConfig.OutputDir = f.OutputDir
	}
	if f.changed["concurrency"] {
		cfg.MirrorConfig.Concurrency = f.Concurrency
	}
	if f.changed["delay"] {
		cfg.MirrorConfig.HostDelayMs = int(f.Delay / time.Millisecond)
	}
	if f.changed["timeout"] {
		// round up so sub-second values do not become 0
		cfg.FetcherConfig.TimeoutSecs = int((f.Timeout + time.Second - 1) / time.Second)
	}
	if f.changed["retries"] {
		cfg.FetcherConfig.Retry.MaxRetries = f.Retries
	}
	if f.changed["log-level"] {
		cfg.LogConfig.LogLevel = f.LogLevel
	}
	if f.changed["log-format"] {
		cfg.LogConfig.LogFormat = f.LogFormat
	}
}
