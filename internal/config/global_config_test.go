package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultMirrorOutputDir, cfg.MirrorConfig.OutputDir)
	assert.Equal(t, "index.html", cfg.MirrorConfig.DocumentName)
	assert.Equal(t, "index", cfg.MirrorConfig.FallbackName)
	assert.Equal(t, "style", cfg.MirrorConfig.Layout.StyleDir)
	assert.Equal(t, "script", cfg.MirrorConfig.Layout.ScriptDir)
	assert.Equal(t, "image", cfg.MirrorConfig.Layout.ImageDir)
	assert.Equal(t, "other", cfg.MirrorConfig.Layout.OtherDir)
	assert.Equal(t, 0, cfg.FetcherConfig.Retry.MaxRetries)
	assert.Equal(t, DefaultFetcherTimeoutSecs, cfg.FetcherConfig.TimeoutSecs)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnv, "")

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, DefaultMirrorConcurrency, cfg.MirrorConfig.Concurrency)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"mirror_config": {"output_dir": "out", "concurrency": 2},
		"fetcher_config": {"user_agent": "test-agent", "timeout_secs": 5},
		"log_config": {"log_level": "debug"}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "out", cfg.MirrorConfig.OutputDir)
	assert.Equal(t, 2, cfg.MirrorConfig.Concurrency)
	assert.Equal(t, "test-agent", cfg.FetcherConfig.UserAgent)
	assert.Equal(t, 5, cfg.FetcherConfig.TimeoutSecs)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	// untouched sections keep their defaults
	assert.Equal(t, "image", cfg.MirrorConfig.Layout.ImageDir)
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
mirror_config:
  host_delay_ms: 250
  layout:
    style_dir: css
    script_dir: js
    image_dir: images
    other_dir: assets
fetcher_config:
  headers:
    X-Test: yes
  retry:
    max_retries: 2
log_config:
  log_format: json
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 250, cfg.MirrorConfig.HostDelayMs)
	assert.Equal(t, "css", cfg.MirrorConfig.Layout.StyleDir)
	assert.Equal(t, "assets", cfg.MirrorConfig.Layout.OtherDir)
	assert.Equal(t, "yes", cfg.FetcherConfig.Headers["X-Test"])
	assert.Equal(t, 2, cfg.FetcherConfig.Retry.MaxRetries)
	assert.Equal(t, "json", cfg.LogConfig.LogFormat)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_InvalidJSON(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"mirror_config": {},}`), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal JSON")
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
mirror_config:
  output_dir: out
    concurrency: 3
`
	require.NoError(t, os.WriteFile(configFile, []byte(invalidYAML), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}

func TestGetConfigPath_EnvVariable(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("mirror_config: {}\n"), 0644))
	t.Setenv(ConfigPathEnv, configFile)

	assert.Equal(t, configFile, GetConfigPath(""))
}

func TestGetConfigPath_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(ConfigPathEnv, "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{}\n"), 0644))

	assert.Equal(t, filepath.Join(dir, "config.yaml"), GetConfigPath(""))
}
