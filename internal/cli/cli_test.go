package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse([]string{"validate"}, out)
		require.NoError(t, err)
		require.False(t, shouldExit)
		assert.Equal(t, "validate", cfg.Command)
		assert.Empty(t, cfg.Args)
		assert.Equal(t, "config", cfg.ConfigDir)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.Strict)
	})

	t.Run("flags and positional args", func(t *testing.T) {
		out := &bytes.Buffer{}
		args := []string{"--config-dir", "conf", "--log-level", "debug", "--log-format", "json", "--strict", "path", "cube", "galaxy=ngc3"}
		cfg, shouldExit, err := Parse(args, out)
		require.NoError(t, err)
		require.False(t, shouldExit)
		assert.Equal(t, "path", cfg.Command)
		assert.Equal(t, []string{"cube", "galaxy=ngc3"}, cfg.Args)
		assert.Equal(t, "conf", cfg.ConfigDir)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.Strict)
	})

	t.Run("no command prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
		assert.Contains(t, out.String(), "validate")
	})

	t.Run("help flag exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse([]string{"-h"}, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
	})

	t.Run("unknown flag is an exit code 2 error", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--no-such-flag"}, out)
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log format", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--log-format", "xml", "validate"}, out)
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "log-format")
	})

	t.Run("invalid log level", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, _, err := Parse([]string{"--log-level", "verbose", "validate"}, out)
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "log-level")
	})

	t.Run("log level is case-insensitive", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, _, err := Parse([]string{"--log-level", "DEBUG", "validate"}, out)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}
