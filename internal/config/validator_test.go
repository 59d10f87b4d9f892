package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *GlobalConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *GlobalConfig) {},
		},
		{
			name:    "zero concurrency",
			mutate:  func(cfg *GlobalConfig) { cfg.MirrorConfig.Concurrency = 0 },
			wantErr: "Concurrency",
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "verbose" },
			wantErr: "loglevel",
		},
		{
			name:    "unknown log format",
			mutate:  func(cfg *GlobalConfig) { cfg.LogConfig.LogFormat = "xml" },
			wantErr: "logformat",
		},
		{
			name:    "document name with separator",
			mutate:  func(cfg *GlobalConfig) { cfg.MirrorConfig.DocumentName = "pages/index.html" },
			wantErr: "pathsegment",
		},
		{
			name:    "layout dir escaping root",
			mutate:  func(cfg *GlobalConfig) { cfg.MirrorConfig.Layout.ImageDir = ".." },
			wantErr: "pathsegment",
		},
		{
			name: "shared layout dir",
			mutate: func(cfg *GlobalConfig) {
				cfg.MirrorConfig.Layout.ImageDir = "static"
				cfg.MirrorConfig.Layout.OtherDir = "static"
			},
			wantErr: "both use",
		},
		{
			name:    "retry status out of range",
			mutate:  func(cfg *GlobalConfig) { cfg.FetcherConfig.Retry.RetryStatusCodes = []int{42} },
			wantErr: "RetryStatusCodes",
		},
		{
			name:    "bad proxy",
			mutate:  func(cfg *GlobalConfig) { cfg.FetcherConfig.Proxy = "not a url" },
			wantErr: "Proxy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	assert.Error(t, ValidateConfig(nil))
}
