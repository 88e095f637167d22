package params

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
)

// excludeParam is the reserved parameter listing path globs whose actions
// are pruned during preprocessing.
const excludeParam = "exclude_paths"

// Merger is the default implementation of the config.Merger interface.
type Merger struct{}

// New creates a new parameter merger.
func New() *Merger {
	return &Merger{}
}

// Merge combines manifest defaults with the module's genome parameters
// (genome values win on overlap) and builds the evaluation context exposed
// to blueprint expressions as `params`, `module`, and `genome`.
func (m *Merger) Merge(ctx context.Context, module *config.Module, cfg *config.ModuleConfig, genome *config.Genome) (*config.MergedParams, error) {
	logger := ctxlog.FromContext(ctx).With("module", module.ID)

	values := make(map[string]cty.Value, len(cfg.Defaults)+len(module.Params))
	for name, val := range cfg.Defaults {
		values[name] = val
	}
	for name, val := range module.Params {
		values[name] = val
	}
	logger.Debug("Merged module parameters.", "defaults", len(cfg.Defaults), "overrides", len(module.Params))

	excludes, err := excludePatterns(values)
	if err != nil {
		return nil, fmt.Errorf("module %q: %w", module.ID, err)
	}

	paramsVal := cty.EmptyObjectVal
	if len(values) > 0 {
		paramsVal = cty.ObjectVal(values)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"params": paramsVal,
			"module": cty.ObjectVal(map[string]cty.Value{
				"id":       cty.StringVal(module.ID),
				"category": cty.StringVal(module.Category.String()),
			}),
			"genome": cty.ObjectVal(map[string]cty.Value{
				"name": cty.StringVal(genome.Name),
			}),
		},
	}

	return &config.MergedParams{
		Values:      values,
		EvalContext: evalCtx,
		Excludes:    excludes,
	}, nil
}

// excludePatterns extracts the reserved exclude_paths parameter, if present.
func excludePatterns(values map[string]cty.Value) ([]string, error) {
	val, ok := values[excludeParam]
	if !ok || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		return nil, fmt.Errorf("parameter %q must be a list of glob strings, got %s", excludeParam, ty.FriendlyName())
	}

	var patterns []string
	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if ev.Type() != cty.String || ev.IsNull() {
			return nil, fmt.Errorf("parameter %q must contain only strings", excludeParam)
		}
		patterns = append(patterns, ev.AsString())
	}
	return patterns, nil
}
