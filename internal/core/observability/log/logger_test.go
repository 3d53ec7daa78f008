package log

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestLoggerWritesJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "game.log")
	logger, err := New(Config{Level: "info", Encoding: "json", Outputs: []string{out}})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.With(String("component", "carry")).Info("delivered", Uint64("score", 3), Error(errors.New("none")))
	_ = logger.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"delivered"`)
	assert.Contains(t, string(data), `"component":"carry"`)
	assert.Contains(t, string(data), `"score":3`)
}

func TestLoggerLevelSwitch(t *testing.T) {
	logger, err := New(Config{Level: "warn", Outputs: []string{filepath.Join(t.TempDir(), "x.log")}})
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, logger.GetLevel())

	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.GetLevel())
}

func TestNewRejectsUnknownEncoding(t *testing.T) {
	_, err := New(Config{Encoding: "xml"})
	assert.Error(t, err)
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	logger.Info("nothing", Int("n", 1))
	assert.Equal(t, LevelSilent, logger.GetLevel())
}
