package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullArguments(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	args := []string{
		"-genome", "examples/webapp.hcl",
		"-modules-path", "my-modules",
		"-out", "./generated",
		"-log-format", "text",
		"-log-level", "debug",
	}

	cfg, shouldExit, err := Parse(args, &out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "examples/webapp.hcl", cfg.GenomePath)
	assert.Equal(t, "my-modules", cfg.ModulesPath)
	assert.Equal(t, "./generated", cfg.OutputDir)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_GenomePathSources(t *testing.T) {
	t.Parallel()

	t.Run("shorthand flag", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		cfg, shouldExit, err := Parse([]string{"-g", "g.hcl"}, &out)
		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Equal(t, "g.hcl", cfg.GenomePath)
	})

	t.Run("positional argument", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		cfg, shouldExit, err := Parse([]string{"g.hcl"}, &out)
		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Equal(t, "g.hcl", cfg.GenomePath)
	})
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"g.hcl"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "modules", cfg.ModulesPath)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_NoGenomePrintsUsageAndExits(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidOptionsReturnExitError(t *testing.T) {
	t.Parallel()

	t.Run("bad log format", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-format", "xml", "g.hcl"}, &out)
		require.Error(t, err)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-level", "loud", "g.hcl"}, &out)
		require.Error(t, err)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		_, _, err := Parse([]string{"-bogus"}, &out)
		require.Error(t, err)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}
