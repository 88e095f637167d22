package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scaffgo/internal/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGenome_FullDocument(t *testing.T) {
	t.Parallel()
	path := writeFile(t, `
name = "acme-web"

layout {
  package "ui" {
    path = "packages/ui"
  }

  app "web" {
    path = "apps/web"
    type = "frontend"
  }
}

module "frameworks/nextjs" {
}

module "adapters/ui/shadcn" {
  capability = "ui"
  requires   = ["frameworks/nextjs"]

  params {
    style = "new-york"
  }
}

module "auth" {
  category = "feature"
}
`)

	genome, err := NewLoader().LoadGenome(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "acme-web", genome.Name)
	assert.Equal(t, map[string]string{"ui": "packages/ui"}, genome.Layout.Packages)
	require.Len(t, genome.Layout.Apps, 1)
	assert.Equal(t, "frontend", genome.Layout.Apps[0].Type)

	require.Len(t, genome.Modules, 3)
	assert.Equal(t, config.CategoryFramework, genome.Modules[0].Category)

	shadcn := genome.Modules[1]
	assert.Equal(t, config.CategoryAdapter, shadcn.Category)
	assert.Equal(t, "ui", shadcn.Capability)
	assert.Equal(t, []string{"frameworks/nextjs"}, shadcn.Requires)
	assert.Equal(t, cty.StringVal("new-york"), shadcn.Params["style"])

	// Explicit category wins over id classification.
	assert.Equal(t, config.CategoryFeature, genome.Modules[2].Category)
}

func TestLoadGenome_RejectsUnknownCategory(t *testing.T) {
	t.Parallel()
	path := writeFile(t, `
name = "acme"

module "adapters/x" {
  category = "gizmo"
}
`)

	_, err := NewLoader().LoadGenome(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown module category")
}

func TestLoadGenome_RejectsNonLiteralParams(t *testing.T) {
	t.Parallel()
	path := writeFile(t, `
name = "acme"

module "adapters/x" {
  params {
    value = something.dynamic
  }
}
`)

	_, err := NewLoader().LoadGenome(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "literal value")
}

func TestDecodeManifestFile_PreservesActionOrder(t *testing.T) {
	t.Parallel()
	path := writeFile(t, `
module "adapters/ui/shadcn" {
  description = "UI toolkit"
}

blueprint {
  create "b.txt" {
    content = "b"
    conflict {
      strategy = "skip"
    }
  }

  run "setup" {
    command = "echo hi"
  }

  create "a.txt" {
    content = "a"
    conflict {
      strategy = "merge"
    }
  }

  install "deps" {
    packages = ["left-pad"]
  }
}
`)

	cfg, bp, err := NewLoader().DecodeManifestFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "adapters/ui/shadcn", cfg.ID)

	require.Len(t, bp.Actions, 4)
	assert.Equal(t, config.ActionCreate, bp.Actions[0].Kind)
	assert.Equal(t, "b.txt", bp.Actions[0].Path)
	assert.Equal(t, config.ActionRun, bp.Actions[1].Kind)
	assert.Equal(t, "setup", bp.Actions[1].Name)
	assert.Contains(t, bp.Actions[1].Args, "command")
	assert.Equal(t, config.ActionCreate, bp.Actions[2].Kind)
	assert.Equal(t, "a.txt", bp.Actions[2].Path)
	assert.Equal(t, config.ActionInstall, bp.Actions[3].Kind)
}

func TestDecodeManifestFile_ConditionalActionKeepsExpression(t *testing.T) {
	t.Parallel()
	path := writeFile(t, `
module "adapters/x" {
}

blueprint {
  create "tsconfig.json" {
    when    = params.typescript
    content = "{}"
    conflict {
      strategy = "skip"
    }
  }

  create "always.txt" {
    content = "x"
    conflict {
      strategy = "skip"
    }
  }
}
`)

	_, bp, err := NewLoader().DecodeManifestFile(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, bp.Actions, 2)
	assert.NotNil(t, bp.Actions[0].When)
	assert.Nil(t, bp.Actions[1].When)
}

func TestDecodeManifestFile_RejectsUnknownStrategy(t *testing.T) {
	t.Parallel()
	path := writeFile(t, `
module "adapters/x" {
}

blueprint {
  create "a.txt" {
    content = "x"
    conflict {
      strategy = "overwrite-maybe"
    }
  }
}
`)

	_, _, err := NewLoader().DecodeManifestFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown conflict strategy")
}

func TestDecodeManifestFile_RequiresModuleBlock(t *testing.T) {
	t.Parallel()
	path := writeFile(t, `
blueprint {
}
`)

	_, _, err := NewLoader().DecodeManifestFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no module block")
}
