package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRows(t *testing.T) {
	files := []string{
		filepath.Join("data", "ngc1_7m.fits"),
		filepath.Join("data", "ngc2_12m.fits"),
	}

	parser := func(base string) map[string]any {
		galaxy, array, ok := strings.Cut(base, "_")
		out := map[string]any{"galaxy": galaxy}
		if ok {
			out["array"] = array
		}
		return out
	}

	t.Run("parses fields and keeps path/base", func(t *testing.T) {
		rows := BuildRows(files, parser)
		require.Len(t, rows, 2)
		assert.Equal(t, files[0], rows[0]["path"])
		assert.Equal(t, "ngc1_7m", rows[0]["base"])
		assert.Equal(t, "ngc1", rows[0]["galaxy"])
		assert.Equal(t, "7m", rows[0]["array"])
	})

	t.Run("filters drop rows", func(t *testing.T) {
		only12m := func(r Row) bool { return r["array"] == "12m" }
		rows := BuildRows(files, parser, only12m)
		require.Len(t, rows, 1)
		assert.Equal(t, "ngc2", rows[0]["galaxy"])
	})

	t.Run("nil parser falls back to basename only", func(t *testing.T) {
		rows := BuildRows(files[:1], nil)
		require.Len(t, rows, 1)
		assert.Equal(t, "ngc1_7m", rows[0]["base"])
	})
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	for _, name := range []string{"a.fits", "b.txt", filepath.Join("nested", "c.fits")} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}

	files, err := Scan(root, []string{"*.fits"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.fits")}, files)

	files, err = Scan(root, []string{"*.fits"}, true)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestWriteLoad(t *testing.T) {
	rows := []Row{
		{"path": "/d/ngc1.fits", "base": "ngc1", "galaxy": "ngc1", "z": 1},
		{"path": "/d/ngc2.fits", "base": "ngc2", "galaxy": "ngc2"},
	}

	out := filepath.Join(t.TempDir(), "tables", "manifest.csv")
	require.NoError(t, Write(rows, out))

	loaded, err := Load(out)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "/d/ngc1.fits", loaded[0]["path"])
	assert.Equal(t, "ngc1", loaded[0]["galaxy"])
	// Values round-trip as strings.
	assert.Equal(t, "1", loaded[0]["z"])
	// Missing fields come back empty, not absent.
	assert.Equal(t, "", loaded[1]["z"])
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest not found")
}
