package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// GenomeLoader is the interface for a format-specific genome loader.
type GenomeLoader interface {
	// LoadGenome reads a project genome from the given path and translates
	// it into the format-agnostic model.
	LoadGenome(ctx context.Context, path string) (*Genome, error)
}

// Store serves module manifests. Implementations are expected to cache
// results by id for the lifetime of a run.
type Store interface {
	// Load returns the configuration and blueprint for one module id.
	Load(ctx context.Context, moduleID string) (*ModuleConfig, *Blueprint, error)
}

// MergedParams is the result of merging genome parameters over manifest
// defaults, ready for expression evaluation during preprocessing.
type MergedParams struct {
	// Values is the final parameter set, genome values winning on overlap.
	Values map[string]cty.Value
	// EvalContext exposes the merged values (and genome metadata) to
	// blueprint expressions.
	EvalContext *hcl.EvalContext
	// Excludes lists path glob patterns; actions targeting a matching
	// path are pruned during preprocessing.
	Excludes []string
}

// Merger is the configuration/context collaborator: it merges parameters and
// prepares a blueprint for execution.
type Merger interface {
	// Merge combines a module's genome parameters with its manifest
	// defaults and builds the template-rendering context.
	Merge(ctx context.Context, module *Module, cfg *ModuleConfig, genome *Genome) (*MergedParams, error)

	// Preprocess evaluates conditional actions against the merged
	// parameters and returns the pruned, render-complete action list.
	Preprocess(ctx context.Context, bp *Blueprint, params *MergedParams) ([]*Action, error)
}
