package validate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/pathweaver/internal/config"
)

func TestPaths(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	t.Run("existing and creatable paths pass", func(t *testing.T) {
		paths := map[string]any{
			"data": map[string]any{
				// Parent (root) exists: creatable with one mkdir.
				"products": config.Path(filepath.Join(root, "products")),
				// Grandparent exists: still within tolerance.
				"deep": config.Path(filepath.Join(root, "a", "b")),
			},
		}
		assert.Empty(t, Paths(ctx, paths))
	})

	t.Run("missing grandparent is an error", func(t *testing.T) {
		paths := map[string]any{
			"bad": config.Path(filepath.Join(root, "x", "y", "z")),
		}
		errs := Paths(ctx, paths)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "bad")
		assert.Contains(t, errs[0], filepath.Join(root, "x", "y", "z"))
	})

	t.Run("file leaves are judged by their parent dir", func(t *testing.T) {
		paths := map[string]any{
			"manifest": config.Path(filepath.Join(root, "tables", "manifest.csv")),
		}
		// tables/ is missing but root exists, so one mkdir suffices.
		assert.Empty(t, Paths(ctx, paths))
	})

	t.Run("external paths only warn", func(t *testing.T) {
		paths := map[string]any{
			"external": map[string]any{
				"archive": config.Path(filepath.Join(root, "nope", "nope", "deep")),
			},
		}
		assert.Empty(t, Paths(ctx, paths))
	})
}

func TestTemplates(t *testing.T) {
	ctx := context.Background()

	docs := &config.Documents{
		Paths: map[string]any{
			"data": map[string]any{
				"products": config.Path("/proj/data/products"),
			},
		},
		Params: map[string]any{
			"version": "v4",
			"placeholders": map[string]any{
				"target": "{galaxy}_{version}",
			},
		},
		Placeholders: []config.Placeholder{{Name: "target", Expr: "{galaxy}_{version}"}},
	}

	t.Run("resolvable references pass", func(t *testing.T) {
		docs.Files = map[string]any{
			"file_templates": map[string]any{
				"cube": "{data.products}/{target}.fits",
			},
		}
		assert.Empty(t, Templates(ctx, docs))
	})

	t.Run("simple unknown references assumed dynamic", func(t *testing.T) {
		docs.Files = map[string]any{
			"file_templates": map[string]any{
				"cube": "{galaxy}.fits",
			},
		}
		assert.Empty(t, Templates(ctx, docs))
	})

	t.Run("dotted unknown reference is an error", func(t *testing.T) {
		docs.Files = map[string]any{
			"file_templates": map[string]any{
				"cube": "{data.prodcuts}/cube.fits",
			},
			"outputs": map[string]any{
				"tab": "{data.products}/tab.ecsv",
			},
		}
		errs := Templates(ctx, docs)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "data.prodcuts")
	})
}

func TestPlaceholderCycles(t *testing.T) {
	t.Run("mutual reference is a cycle", func(t *testing.T) {
		docs := &config.Documents{
			Placeholders: []config.Placeholder{
				{Name: "a", Expr: "{b}"},
				{Name: "b", Expr: "{a}"},
			},
		}
		errs := placeholderCycles(docs)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "circular dependency")
	})

	t.Run("chain ending in a plain value has no cycle", func(t *testing.T) {
		docs := &config.Documents{
			Placeholders: []config.Placeholder{
				{Name: "a", Expr: "{b}"},
				{Name: "b", Expr: "{c}"},
				{Name: "c", Expr: "plain"},
			},
		}
		assert.Empty(t, placeholderCycles(docs))
	})

	t.Run("self reference is a cycle", func(t *testing.T) {
		docs := &config.Documents{
			Placeholders: []config.Placeholder{{Name: "a", Expr: "prefix_{a}"}},
		}
		errs := placeholderCycles(docs)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "a -> a")
	})

	t.Run("references to non-placeholders are not dependencies", func(t *testing.T) {
		docs := &config.Documents{
			Placeholders: []config.Placeholder{
				{Name: "a", Expr: "{galaxy}_{data.products}"},
			},
		}
		assert.Empty(t, placeholderCycles(docs))
	})
}

func TestConfigs(t *testing.T) {
	ctx := context.Background()

	writeTree := func(t *testing.T, docs map[string]string) {
		t.Helper()
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
		for name, content := range docs {
			require.NoError(t, os.WriteFile(filepath.Join(root, "config", name), []byte(content), 0o644))
		}
		chdir(t, root)
	}

	t.Run("valid project passes", func(t *testing.T) {
		writeTree(t, map[string]string{
			config.PathsFile:  "data:\n  products: products\n",
			config.ParamsFile: "version: v4\nplaceholders:\n  target: \"{galaxy}_{version}\"\n",
			config.FilesFile:  "file_templates:\n  cube: \"{data.products}/{target}.fits\"\n",
		})

		ok, errs := Configs(ctx, config.NewService(), "config", Options{})
		assert.True(t, ok, "unexpected errors: %v", errs)
		assert.Empty(t, errs)
	})

	t.Run("empty documents are each counted", func(t *testing.T) {
		writeTree(t, map[string]string{
			config.PathsFile: "data: data\n",
		})

		ok, errs := Configs(ctx, config.NewService(), "config", Options{})
		assert.False(t, ok)
		require.Len(t, errs, 2)
		assert.Contains(t, errs[0], config.ParamsFile)
		assert.Contains(t, errs[1], config.FilesFile)
	})

	t.Run("cycle and unknown reference reported together", func(t *testing.T) {
		writeTree(t, map[string]string{
			config.PathsFile:  "data:\n  products: products\n",
			config.ParamsFile: "placeholders:\n  a: \"{b}\"\n  b: \"{a}\"\n",
			config.FilesFile:  "file_templates:\n  cube: \"{data.missing}/cube.fits\"\n",
		})

		ok, errs := Configs(ctx, config.NewService(), "config", Options{})
		assert.False(t, ok)
		require.Len(t, errs, 2)
		assert.Contains(t, errs[0], "data.missing")
		assert.Contains(t, errs[1], "circular dependency")
	})
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
