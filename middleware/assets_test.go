package middleware

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFileHash(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.css")
	require.NoError(t, os.WriteFile(tmpFile, []byte("body { color: red; }"), 0644))

	hash := computeFileHash(tmpFile)
	assert.Len(t, hash, 8)

	assert.Empty(t, computeFileHash("non_existent_file.css"))
}

func TestAssetVersions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "style.css"), []byte("h1{}"), 0644))

	LoadAssetVersions(dir, "css/style.css", "js/missing.js")
	t.Cleanup(func() { LoadAssetVersions(dir) })

	ctx := context.Background()
	v := AssetVersion(ctx, "css/style.css")
	assert.Len(t, v, 8)
	assert.Equal(t, "1", AssetVersion(ctx, "js/missing.js"))
	assert.Equal(t, "/static/css/style.css?v="+v, AssetURL(ctx, "css/style.css"))
	assert.Equal(t, "/static/js/missing.js?v=1", AssetURL(ctx, "js/missing.js"))
}
