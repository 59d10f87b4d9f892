package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/aleister1102/pagemirror/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	flags, err := ParseFlags([]string{"-o", "site", "--concurrency", "8", "--delay", "250ms", "https://x.test/"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "https://x.test/", flags.TargetURL)
	assert.Equal(t, "site", flags.OutputDir)
	assert.Equal(t, 8, flags.Concurrency)
	assert.Equal(t, 250*time.Millisecond, flags.Delay)
}

func TestParseFlags_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no url", args: nil},
		{name: "two urls", args: []string{"https://a.test/", "https://b.test/"}},
		{name: "unknown flag", args: []string{"--bogus", "https://x.test/"}},
		{name: "bad duration", args: []string{"--delay", "soon", "https://x.test/"}},
		{name: "help", args: []string{"--help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := ParseFlags(tt.args, &out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errUsage))
		})
	}
}

func TestApplyOverrides_OnlyExplicitFlags(t *testing.T) {
	var out bytes.Buffer
	flags, err := ParseFlags([]string{"--timeout", "1500ms", "--retries", "2", "--log-format", "json", "https://x.test/"}, &out)
	require.NoError(t, err)

	cfg := config.NewDefaultGlobalConfig()
	cfg.MirrorConfig.OutputDir = "from-file"
	cfg.MirrorConfig.HostDelayMs = 100
	flags.ApplyOverrides(cfg)

	assert.Equal(t, "from-file", cfg.MirrorConfig.OutputDir)
	assert.Equal(t, 100, cfg.MirrorConfig.HostDelayMs)
	assert.Equal(t, 2, cfg.FetcherConfig.TimeoutSecs)
	assert.Equal(t, 2, cfg.FetcherConfig.Retry.MaxRetries)
	assert.Equal(t, "json", cfg.LogConfig.LogFormat)
}
