package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Setenv("PW_SET", "value")
	assert.Equal(t, "value", Get("PW_SET", "fallback"))
	assert.Equal(t, "fallback", Get("PW_DEFINITELY_UNSET", "fallback"))
}

func TestRequire(t *testing.T) {
	t.Setenv("PW_REQ", "value")
	v, err := Require("PW_REQ")
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	_, err = Require("PW_DEFINITELY_UNSET")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PW_DEFINITELY_UNSET")
}

func TestLoadDotenv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("PW_FROM_DOTENV=loaded\n"), 0o644))
	chdir(t, root)

	// Make sure a previous test run's value doesn't linger.
	t.Setenv("PW_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("PW_FROM_DOTENV"))

	require.NoError(t, LoadDotenv())
	assert.Equal(t, "loaded", os.Getenv("PW_FROM_DOTENV"))
}

// chdir changes into dir for the duration of the test, mirroring
// testing.T.Chdir which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
