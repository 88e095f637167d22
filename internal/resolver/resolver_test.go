package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scaffgo/internal/config"
)

func testGenome() *config.Genome {
	return &config.Genome{
		Name: "acme",
		Layout: &config.Layout{
			Packages: map[string]string{"ui": "packages/ui"},
			Apps: []*config.Application{
				{Name: "web", Path: "apps/web", Type: "frontend"},
				{Name: "admin", Path: "apps/admin", Type: "frontend"},
				{Name: "api", Path: "apps/api", Type: "backend"},
			},
		},
	}
}

func TestResolve_ExplicitPackageHintWins(t *testing.T) {
	t.Parallel()
	r := New(testGenome())
	m := &config.Module{
		ID:         "adapters/ui/shadcn",
		Capability: "ui",
		Params: map[string]cty.Value{
			"target_package": cty.StringVal("packages/design"),
		},
	}

	target, err := r.Resolve(context.Background(), m)

	require.NoError(t, err)
	assert.Equal(t, TargetPackage, target.Kind)
	assert.Equal(t, "packages/design", target.Package)
	assert.Equal(t, []string{"packages/design"}, target.Subpaths())
}

func TestResolve_CapabilityMapsToPackage(t *testing.T) {
	t.Parallel()
	r := New(testGenome())
	m := &config.Module{ID: "adapters/ui/shadcn", Capability: "ui"}

	target, err := r.Resolve(context.Background(), m)

	require.NoError(t, err)
	assert.Equal(t, TargetPackage, target.Kind)
	assert.Equal(t, "packages/ui", target.Package)
}

func TestResolve_AppTypeMatchesMultipleApps(t *testing.T) {
	t.Parallel()
	r := New(testGenome())
	m := &config.Module{
		ID: "features/auth",
		Params: map[string]cty.Value{
			"target_app_types": cty.ListVal([]cty.Value{cty.StringVal("frontend")}),
		},
	}

	target, err := r.Resolve(context.Background(), m)

	require.NoError(t, err)
	assert.Equal(t, TargetApps, target.Kind)
	assert.Equal(t, []string{"apps/web", "apps/admin"}, target.Subpaths())
}

func TestResolve_NoTargetMeansSkip(t *testing.T) {
	t.Parallel()
	r := New(testGenome())

	t.Run("unknown capability", func(t *testing.T) {
		t.Parallel()
		m := &config.Module{ID: "adapters/payments", Capability: "payments"}

		target, err := r.Resolve(context.Background(), m)

		require.NoError(t, err)
		assert.Equal(t, TargetNone, target.Kind)
	})

	t.Run("no matching app type", func(t *testing.T) {
		t.Parallel()
		m := &config.Module{
			ID: "adapters/mobile-push",
			Params: map[string]cty.Value{
				"target_app_types": cty.ListVal([]cty.Value{cty.StringVal("mobile")}),
			},
		}

		target, err := r.Resolve(context.Background(), m)

		require.NoError(t, err)
		assert.Equal(t, TargetNone, target.Kind)
	})
}

func TestResolve_DefaultIsProjectRoot(t *testing.T) {
	t.Parallel()
	r := New(testGenome())
	m := &config.Module{ID: "frameworks/nextjs"}

	target, err := r.Resolve(context.Background(), m)

	require.NoError(t, err)
	assert.Equal(t, TargetRoot, target.Kind)
	assert.Equal(t, []string{""}, target.Subpaths())
}

func TestResolve_UnknownCapabilityFallsBackToAppTypes(t *testing.T) {
	t.Parallel()
	r := New(testGenome())
	m := &config.Module{
		ID:         "connectors/db/prisma",
		Capability: "db",
		Params: map[string]cty.Value{
			"target_app_types": cty.ListVal([]cty.Value{cty.StringVal("backend")}),
		},
	}

	target, err := r.Resolve(context.Background(), m)

	require.NoError(t, err)
	assert.Equal(t, TargetApps, target.Kind)
	assert.Equal(t, []string{"apps/api"}, target.Subpaths())
}
