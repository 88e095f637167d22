package modstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/scaffgo/internal/config"
)

const shadcnManifest = `
module "adapters/ui/shadcn" {
  description = "UI toolkit"

  defaults {
    style = "default"
  }
}

blueprint {
  create "components.json" {
    content = "{}"
    conflict {
      strategy = "replace"
      priority = 1
    }
  }

  append ".gitignore" {
    content = "generated/\n"
  }
}
`

func writeManifest(t *testing.T, dir, id, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(id), "module.hcl")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewFileStore_RejectsMissingDirectory(t *testing.T) {
	t.Parallel()
	_, err := NewFileStore(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not accessible")
}

func TestLoad_DecodesManifestAndBlueprint(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeManifest(t, dir, "adapters/ui/shadcn", shadcnManifest)

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	cfg, bp, err := store.Load(context.Background(), "adapters/ui/shadcn")
	require.NoError(t, err)

	assert.Equal(t, "adapters/ui/shadcn", cfg.ID)
	assert.Equal(t, config.CategoryAdapter, cfg.Category)
	assert.Equal(t, "UI toolkit", cfg.Description)
	assert.Contains(t, cfg.Defaults, "style")

	require.Len(t, bp.Actions, 2)
	assert.Equal(t, config.ActionCreate, bp.Actions[0].Kind)
	assert.Equal(t, "components.json", bp.Actions[0].Path)
	require.NotNil(t, bp.Actions[0].Conflict)
	assert.Equal(t, config.StrategyReplace, bp.Actions[0].Conflict.Strategy)
	assert.Equal(t, 1, bp.Actions[0].Conflict.Priority)
	assert.Equal(t, config.ActionAppend, bp.Actions[1].Kind)
}

func TestLoad_CachesByID(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeManifest(t, dir, "adapters/ui/shadcn", shadcnManifest)

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	cfg1, _, err := store.Load(context.Background(), "adapters/ui/shadcn")
	require.NoError(t, err)

	// Removing the file does not evict the cached entry.
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "adapters")))
	cfg2, _, err := store.Load(context.Background(), "adapters/ui/shadcn")
	require.NoError(t, err)
	assert.Same(t, cfg1, cfg2)
}

func TestLoad_UnknownModuleFails(t *testing.T) {
	t.Parallel()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Load(context.Background(), "adapters/ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in store")
}

func TestLoad_IDMismatchFails(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeManifest(t, dir, "adapters/ui/other", shadcnManifest)

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, _, err = store.Load(context.Background(), "adapters/ui/other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declares id")
}

func TestDiscover_ListsModuleIDs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeManifest(t, dir, "adapters/ui/shadcn", shadcnManifest)
	writeManifest(t, dir, "frameworks/nextjs", `
module "frameworks/nextjs" {
  category = "framework"
}

blueprint {
}
`)

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	ids, err := store.Discover(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"adapters/ui/shadcn", "frameworks/nextjs"}, ids)
}
