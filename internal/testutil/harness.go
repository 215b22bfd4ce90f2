// Package testutil provides a shared harness for tests that exercise the
// application end to end against a temporary configuration tree.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/pathweaver/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a harnessed task run.
type HarnessResult struct {
	Output string // combined task output and log lines
	Err    error
	App    *app.App
	Root   string // the temporary project root
}

// RunTask stands up a temporary project (a root directory with a config/
// subdirectory acting as the project marker), writes the given files into
// it, chdirs there, and runs one task through a fully wired App.
//
// File map keys are relative paths, e.g. "config/paths.yaml".
func RunTask(t *testing.T, files map[string]string, command string, args ...string) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "config"), 0o755))
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}
	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prevDir)) })

	appConfig, err := app.NewConfig(app.Config{
		Command:   command,
		Args:      args,
		ConfigDir: "config",
		LogLevel:  "debug",
		LogFormat: "text",
	})
	require.NoError(t, err)

	buf := &SafeBuffer{}
	testApp := app.NewApp(buf, appConfig)
	runErr := testApp.Run(context.Background())

	return &HarnessResult{
		Output: buf.String(),
		Err:    runErr,
		App:    testApp,
		Root:   tmpDir,
	}
}
