package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/pagemirror/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	_, err := New(cfg)
	require.NoError(t, err)
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogLevel = "loud"

	_, err := New(cfg)

	assert.ErrorContains(t, err, "invalid log level")
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatConsole, ParseFormat("console"))
	assert.Equal(t, FormatConsole, ParseFormat("unknown"))
}

func TestLoggerBuilder_JSONConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "debug"

	l, err := NewLoggerBuilder().WithConfig(cfg).WithRunID("run-1").WithConsoleOutput(&buf).Build()
	require.NoError(t, err)

	l.GetZerolog().Debug().Str("component", "Test").Msg("hello")

	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Contains(t, buf.String(), `"run_id":"run-1"`)
	assert.Equal(t, zerolog.DebugLevel, l.Config().Level)
}

func TestLoggerBuilder_FileUnderRunDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(dir, "pagemirror.log")
	cfg.LogFormat = "json"

	l, err := NewLoggerBuilder().WithRunID("abc").WithConfig(cfg).WithConsoleOutput(&bytes.Buffer{}).Build()
	require.NoError(t, err)
	l.GetZerolog().Info().Msg("to file")

	data, err := os.ReadFile(filepath.Join(dir, "runs", "abc", "pagemirror.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
