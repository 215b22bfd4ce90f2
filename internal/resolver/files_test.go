package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/pathweaver/internal/tmpl"
)

func testFiles() map[string]any {
	return map[string]any{
		"file_templates": map[string]any{
			"cube": "{galaxy}.fits",
			"mom0": "{galaxy}_mom0.fits",
		},
		"outputs": map[string]any{
			"tab": "{galaxy}_tab.ecsv",
		},
	}
}

func TestResolveFile(t *testing.T) {
	ctx := context.Background()
	tc := tmpl.Context{"galaxy": cty.StringVal("NGC1")}

	t.Run("unqualified key uses the file_templates namespace", func(t *testing.T) {
		got, err := ResolveFile(ctx, testFiles(), "cube", tc, tmpl.Options{})
		require.NoError(t, err)
		assert.Equal(t, "NGC1.fits", got)
	})

	t.Run("qualified key addresses its own namespace", func(t *testing.T) {
		got, err := ResolveFile(ctx, testFiles(), "outputs.tab", tc, tmpl.Options{})
		require.NoError(t, err)
		assert.Equal(t, "NGC1_tab.ecsv", got)
	})

	t.Run("missing key suggests near matches", func(t *testing.T) {
		_, err := ResolveFile(ctx, testFiles(), "cubo", tc, tmpl.Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cube")

		var notFound *KeyNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("non-string template is a type mismatch", func(t *testing.T) {
		files := testFiles()
		files["file_templates"].(map[string]any)["broken"] = map[string]any{"oops": 1}

		_, err := ResolveFile(ctx, files, "broken", tc, tmpl.Options{})
		require.Error(t, err)

		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "file_templates.broken", mismatch.Dotted)
		assert.Equal(t, "string", mismatch.Expected)
	})

	t.Run("strict resolution failure is wrapped with context", func(t *testing.T) {
		_, err := ResolveFile(ctx, testFiles(), "cube", tmpl.Context{}, tmpl.Options{Strict: true})
		require.Error(t, err)

		var resolveErr *ResolveError
		require.ErrorAs(t, err, &resolveErr)
		assert.Equal(t, "cube", resolveErr.Key)
		assert.Equal(t, "{galaxy}.fits", resolveErr.Template)

		var unknownErr *tmpl.UnknownPlaceholderError
		assert.ErrorAs(t, err, &unknownErr)
	})

	t.Run("non-strict leaves unknown placeholders verbatim", func(t *testing.T) {
		got, err := ResolveFile(ctx, testFiles(), "cube", tmpl.Context{}, tmpl.Options{})
		require.NoError(t, err)
		assert.Equal(t, "{galaxy}.fits", got)
	})
}
