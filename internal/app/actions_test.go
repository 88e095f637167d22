package app

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/registry"
	"github.com/vk/scaffgo/internal/vfs"
)

func literalArgs(values map[string]cty.Value) map[string]hcl.Expression {
	out := make(map[string]hcl.Expression, len(values))
	for name, val := range values {
		out[name] = hcl.StaticExpr(val, hcl.Range{})
	}
	return out
}

func emptyParams() *config.MergedParams {
	return &config.MergedParams{EvalContext: &hcl.EvalContext{}}
}

func TestCommandActions_RegisterCoreKinds(t *testing.T) {
	t.Parallel()
	r := registry.New()
	(&commandActions{}).Register(r)

	_, ok := r.Lookup(config.ActionRun)
	assert.True(t, ok)
	_, ok = r.Lookup(config.ActionInstall)
	assert.True(t, ok)
}

func TestHandleRun_DefersUntilFlush(t *testing.T) {
	t.Parallel()
	c := &commandActions{}
	fs := vfs.New("t", t.TempDir(), "")
	action := &config.Action{
		Kind: config.ActionRun,
		Name: "generate",
		Args: literalArgs(map[string]cty.Value{
			"command": cty.StringVal("npx prisma generate"),
		}),
	}

	require.NoError(t, c.handleRun(context.Background(), fs, action, emptyParams()))
	// The side effect is queued, not executed; flushing runs it.
	require.NoError(t, fs.Flush(context.Background()))
}

func TestHandleRun_MissingCommandFails(t *testing.T) {
	t.Parallel()
	c := &commandActions{}
	fs := vfs.New("t", t.TempDir(), "")
	action := &config.Action{Kind: config.ActionRun, Name: "noop"}

	err := c.handleRun(context.Background(), fs, action, emptyParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command")
}

func TestHandleInstall(t *testing.T) {
	t.Parallel()
	c := &commandActions{}

	t.Run("valid package list", func(t *testing.T) {
		t.Parallel()
		fs := vfs.New("t", t.TempDir(), "")
		action := &config.Action{
			Kind: config.ActionInstall,
			Name: "deps",
			Args: literalArgs(map[string]cty.Value{
				"packages": cty.ListVal([]cty.Value{cty.StringVal("next"), cty.StringVal("react")}),
				"dev":      cty.True,
			}),
		}
		require.NoError(t, c.handleInstall(context.Background(), fs, action, emptyParams()))
	})

	t.Run("empty package list fails", func(t *testing.T) {
		t.Parallel()
		fs := vfs.New("t", t.TempDir(), "")
		action := &config.Action{Kind: config.ActionInstall, Name: "deps"}
		err := c.handleInstall(context.Background(), fs, action, emptyParams())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no packages")
	})

	t.Run("non-string package fails", func(t *testing.T) {
		t.Parallel()
		fs := vfs.New("t", t.TempDir(), "")
		action := &config.Action{
			Kind: config.ActionInstall,
			Name: "deps",
			Args: literalArgs(map[string]cty.Value{
				"packages": cty.ListVal([]cty.Value{cty.NumberIntVal(1)}),
			}),
		}
		err := c.handleInstall(context.Background(), fs, action, emptyParams())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "list of strings")
	})
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{GenomePath: "g.hcl", ModulesPath: "modules"})
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir, "output directory defaults to the working directory")
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)

	_, err = NewConfig(Config{ModulesPath: "modules"})
	require.Error(t, err)

	_, err = NewConfig(Config{GenomePath: "g.hcl"})
	require.Error(t, err)

	_, err = NewConfig(Config{GenomePath: "g.hcl", ModulesPath: "modules", LogFormat: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log-format")

	_, err = NewConfig(Config{GenomePath: "g.hcl", ModulesPath: "modules", LogLevel: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log-level")
}
