package params

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
)

// Preprocess prepares a blueprint for execution: it prunes actions whose
// `when` condition is false or whose path matches an exclude pattern, and
// renders the content of the surviving file actions against the merged
// parameters. The returned actions preserve declaration order.
func (m *Merger) Preprocess(ctx context.Context, bp *config.Blueprint, params *config.MergedParams) ([]*config.Action, error) {
	logger := ctxlog.FromContext(ctx).With("module", bp.ModuleID)

	var out []*config.Action
	for i, action := range bp.Actions {
		keep, err := m.conditionHolds(action, params)
		if err != nil {
			return nil, fmt.Errorf("action %d of module %q: %w", i, bp.ModuleID, err)
		}
		if !keep {
			logger.Debug("Pruned conditional action.", "index", i, "kind", action.Kind, "path", action.Path)
			continue
		}

		if action.Path != "" {
			excluded, err := matchesAny(action.Path, params.Excludes)
			if err != nil {
				return nil, fmt.Errorf("action %d of module %q: %w", i, bp.ModuleID, err)
			}
			if excluded {
				logger.Debug("Pruned excluded action.", "index", i, "path", action.Path)
				continue
			}
		}

		prepared := *action
		if action.Content != nil {
			rendered, err := m.renderContent(action, params)
			if err != nil {
				return nil, fmt.Errorf("action %d of module %q: %w", i, bp.ModuleID, err)
			}
			prepared.RenderedContent = rendered
		}
		out = append(out, &prepared)
	}

	logger.Debug("Blueprint preprocessing complete.", "declared", len(bp.Actions), "kept", len(out))
	return out, nil
}

// conditionHolds evaluates an action's optional `when` guard.
func (m *Merger) conditionHolds(action *config.Action, params *config.MergedParams) (bool, error) {
	if action.When == nil {
		return true, nil
	}
	val, diags := action.When.Value(params.EvalContext)
	if diags.HasErrors() {
		return false, fmt.Errorf("failed to evaluate when condition: %s", diags.Error())
	}
	boolVal, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("when condition must be a boolean, got %s: %w", val.Type().FriendlyName(), err)
	}
	if boolVal.IsNull() {
		return false, fmt.Errorf("when condition evaluated to null")
	}
	return boolVal.True(), nil
}

// renderContent evaluates an action's content expression to a string.
func (m *Merger) renderContent(action *config.Action, params *config.MergedParams) ([]byte, error) {
	val, diags := action.Content.Value(params.EvalContext)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to render content for %q: %s", action.Path, diags.Error())
	}
	strVal, err := convert.Convert(val, cty.String)
	if err != nil {
		return nil, fmt.Errorf("content for %q must be a string, got %s: %w", action.Path, val.Type().FriendlyName(), err)
	}
	if strVal.IsNull() {
		return nil, fmt.Errorf("content for %q evaluated to null", action.Path)
	}
	return []byte(strVal.AsString()), nil
}

// matchesAny reports whether a slash-separated path matches any glob pattern.
func matchesAny(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
