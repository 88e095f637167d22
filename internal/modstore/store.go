package modstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/fsutil"
	"github.com/vk/scaffgo/internal/hcl_adapter"
)

// manifestName is the expected manifest file inside a module's directory.
const manifestName = "module.hcl"

// cacheSize bounds the per-run manifest cache. Genomes are far smaller than
// this in practice; the bound only guards against pathological stores.
const cacheSize = 512

// entry is one cached load result.
type entry struct {
	cfg *config.ModuleConfig
	bp  *config.Blueprint
}

// FileStore is the file-backed implementation of the config.Store interface.
// A module id maps to <dir>/<id>/module.hcl.
type FileStore struct {
	dir    string
	loader *hcl_adapter.Loader
	cache  *lru.Cache[string, *entry]
}

// NewFileStore creates a store rooted at the given modules directory.
func NewFileStore(dir string) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("modules path %q is not accessible: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("modules path %q is not a directory", dir)
	}

	cache, err := lru.New[string, *entry](cacheSize)
	if err != nil {
		return nil, err
	}
	return &FileStore{
		dir:    dir,
		loader: hcl_adapter.NewLoader(),
		cache:  cache,
	}, nil
}

// Load implements config.Store. Results are cached by id: the first lookup
// reads disk, every repeat lookup during the run is served from memory.
func (s *FileStore) Load(ctx context.Context, moduleID string) (*config.ModuleConfig, *config.Blueprint, error) {
	logger := ctxlog.FromContext(ctx).With("module", moduleID)

	if e, ok := s.cache.Get(moduleID); ok {
		logger.Debug("Module manifest served from cache.")
		return e.cfg, e.bp, nil
	}

	path := filepath.Join(s.dir, filepath.FromSlash(moduleID), manifestName)
	if !fsutil.Exists(path) {
		return nil, nil, fmt.Errorf("module %q not found in store (expected manifest at %s)", moduleID, path)
	}

	cfg, bp, err := s.loader.DecodeManifestFile(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load module %q: %w", moduleID, err)
	}
	if cfg.ID != moduleID {
		return nil, nil, fmt.Errorf("manifest at %s declares id %q, expected %q", path, cfg.ID, moduleID)
	}

	s.cache.Add(moduleID, &entry{cfg: cfg, bp: bp})
	logger.Debug("Module manifest loaded from disk.", "actions", len(bp.Actions))
	return cfg, bp, nil
}

// Discover lists every module id available in the store, derived from the
// manifest files present under the store directory.
func (s *FileStore) Discover(ctx context.Context) ([]string, error) {
	files, err := fsutil.FindFiles(s.dir, "**/"+manifestName)
	if err != nil {
		return nil, fmt.Errorf("failed to scan modules path %q: %w", s.dir, err)
	}

	ids := make([]string, 0, len(files))
	for _, file := range files {
		rel, err := filepath.Rel(s.dir, filepath.Dir(file))
		if err != nil {
			return nil, err
		}
		ids = append(ids, strings.TrimPrefix(filepath.ToSlash(rel), "./"))
	}
	ctxlog.FromContext(ctx).Debug("Module store discovery complete.", "count", len(ids))
	return ids, nil
}
