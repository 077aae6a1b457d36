package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deckhand.yaml")
		require.NoError(t, os.WriteFile(path, []byte("transport: sse\nport: 9090\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "sse", cfg.Transport)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("unknown transport is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deckhand.yaml")
		require.NoError(t, os.WriteFile(path, []byte("transport: websocket\n"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
