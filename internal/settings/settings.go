// Package settings reads process configuration from the environment, with
// optional .env file support for local development.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/specialistvlad/pathweaver/internal/fsutil"
)

// Environment variable names the engine cares about.
const (
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvLogLevel      = "LOG_LEVEL"
)

// LoadDotenv loads a .env file from the project root if one exists. Already
// exported variables win; the file never overrides the real environment. A
// missing file is not an error.
func LoadDotenv() error {
	root, err := fsutil.ProjectRoot(".")
	if err != nil {
		return err
	}
	envPath := filepath.Join(root, ".env")
	if _, err := os.Stat(envPath); err != nil {
		return nil
	}
	return godotenv.Load(envPath)
}

// Get returns the environment variable's value, or def when unset.
func Get(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// Require returns the environment variable's value, or an error when unset.
func Require(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required environment variable: %s", key)
	}
	return v, nil
}
