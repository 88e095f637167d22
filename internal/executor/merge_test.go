package executor

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMergeContent_JSONMergesKeywise(t *testing.T) {
	t.Parallel()
	existing := []byte(`{"name": "web", "scripts": {"dev": "next dev"}}`)
	incoming := []byte(`{"scripts": {"test": "vitest"}, "private": true}`)

	out, err := mergeContent("package.json", existing, incoming)
	require.NoError(t, err)

	var merged map[string]any
	require.NoError(t, sonic.Unmarshal(out, &merged))
	assert.Equal(t, "web", merged["name"])
	assert.Equal(t, true, merged["private"])
	scripts, ok := merged["scripts"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "next dev", scripts["dev"])
	assert.Equal(t, "vitest", scripts["test"])
}

func TestMergeContent_JSONIncomingWinsOnScalarConflict(t *testing.T) {
	t.Parallel()
	existing := []byte(`{"version": "1.0.0"}`)
	incoming := []byte(`{"version": "2.0.0"}`)

	out, err := mergeContent("package.json", existing, incoming)
	require.NoError(t, err)

	var merged map[string]any
	require.NoError(t, sonic.Unmarshal(out, &merged))
	assert.Equal(t, "2.0.0", merged["version"])
}

func TestMergeContent_JSONNonObjectRootFails(t *testing.T) {
	t.Parallel()
	_, err := mergeContent("data.json", []byte(`[1, 2]`), []byte(`{"a": 1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a JSON object")
}

func TestMergeContent_YAML(t *testing.T) {
	t.Parallel()
	existing := []byte("services:\n  db:\n    image: postgres\n")
	incoming := []byte("services:\n  cache:\n    image: redis\n")

	out, err := mergeContent("compose.yaml", existing, incoming)
	require.NoError(t, err)

	var merged map[string]any
	require.NoError(t, yaml.Unmarshal(out, &merged))
	services, ok := merged["services"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, services, "db")
	assert.Contains(t, services, "cache")
}

func TestMergeContent_TOML(t *testing.T) {
	t.Parallel()
	existing := []byte("[tool]\nname = \"a\"\n")
	incoming := []byte("[tool]\nversion = \"1\"\n")

	out, err := mergeContent("config.toml", existing, incoming)
	require.NoError(t, err)

	var merged map[string]any
	require.NoError(t, toml.Unmarshal(out, &merged))
	tool, ok := merged["tool"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a", tool["name"])
	assert.Equal(t, "1", tool["version"])
}

func TestMergeContent_PlainTextAppends(t *testing.T) {
	t.Parallel()
	out, err := mergeContent(".gitignore", []byte("node_modules/"), []byte("dist/\n"))
	require.NoError(t, err)
	assert.Equal(t, "node_modules/\ndist/\n", string(out))
}

func TestDeepMerge_NestedMaps(t *testing.T) {
	t.Parallel()
	dst := map[string]any{
		"a": map[string]any{"x": 1, "y": 2},
		"b": "keep",
	}
	src := map[string]any{
		"a": map[string]any{"y": 3, "z": 4},
		"c": "new",
	}

	out := deepMerge(dst, src)

	assert.Equal(t, map[string]any{
		"a": map[string]any{"x": 1, "y": 3, "z": 4},
		"b": "keep",
		"c": "new",
	}, out)
}

func TestDeepMerge_MapReplacesScalar(t *testing.T) {
	t.Parallel()
	dst := map[string]any{"a": "scalar"}
	src := map[string]any{"a": map[string]any{"k": 1}}

	out := deepMerge(dst, src)

	assert.Equal(t, map[string]any{"a": map[string]any{"k": 1}}, out)
}
