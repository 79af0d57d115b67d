package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yudaprama/timeid/internal/models"
)

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := New(models.LogConfig{Level: "warn", Output: "console"}, &buf)

	lg.Info("quiet")
	lg.Warn("loud")
	require.NoError(t, lg.Sync())

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), "WARN")
}

func TestBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	lg := New(models.LogConfig{Level: "chatty"}, &buf)

	lg.Debug("hidden")
	lg.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileOutputWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeid.log")
	var console bytes.Buffer
	lg := New(models.LogConfig{Level: "info", Output: "file", File: path, MaxSize: 1}, &console)

	lg.Info("to file")
	require.NoError(t, lg.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
	assert.Empty(t, console.String())
}

func TestFileOutputWithoutPathUsesConsole(t *testing.T) {
	var console bytes.Buffer
	lg := New(models.LogConfig{Level: "info", Output: "file"}, &console)

	lg.Info("fallback")
	assert.Contains(t, console.String(), "fallback")
}

func TestGlobalsHaveAFallback(t *testing.T) {
	assert.NotNil(t, S())
	assert.NotNil(t, L())
}
