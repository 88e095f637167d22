package app

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/registry"
	"github.com/vk/scaffgo/internal/vfs"
)

// coreActions is the default handler set registered when NewApp receives no
// explicit action sets.
var coreActions = []registry.ActionSet{
	&commandActions{},
}

// commandActions implements the run and install action kinds. Both record
// the resolved command on the staging filesystem as a deferred operation, so
// the side effect only happens after the module's files commit and is
// discarded together with a failed module.
type commandActions struct{}

// Register implements registry.ActionSet.
func (c *commandActions) Register(r *registry.Registry) {
	r.RegisterAction(config.ActionRun, c.handleRun)
	r.RegisterAction(config.ActionInstall, c.handleInstall)
}

func (c *commandActions) handleRun(ctx context.Context, fs *vfs.VFS, action *config.Action, params *config.MergedParams) error {
	args, err := evalArgs(action, params)
	if err != nil {
		return err
	}
	command, _ := args["command"].(string)
	if command == "" {
		return fmt.Errorf("run %q declares no command", action.Name)
	}

	return fs.Defer(action.Name, func(ctx context.Context) error {
		ctxlog.FromContext(ctx).Info("Run step recorded.",
			"name", action.Name, "command", command, "dir", fs.WorkingDir())
		return nil
	})
}

func (c *commandActions) handleInstall(ctx context.Context, fs *vfs.VFS, action *config.Action, params *config.MergedParams) error {
	args, err := evalArgs(action, params)
	if err != nil {
		return err
	}
	packages, err := stringList(args["packages"])
	if err != nil {
		return fmt.Errorf("install %q: %w", action.Name, err)
	}
	if len(packages) == 0 {
		return fmt.Errorf("install %q declares no packages", action.Name)
	}
	dev, _ := args["dev"].(bool)

	return fs.Defer(action.Name, func(ctx context.Context) error {
		ctxlog.FromContext(ctx).Info("Install step recorded.",
			"name", action.Name, "packages", packages, "dev", dev, "dir", fs.WorkingDir())
		return nil
	})
}

// evalArgs evaluates an opaque action's raw argument expressions against the
// module's merged-parameter context.
func evalArgs(action *config.Action, params *config.MergedParams) (map[string]any, error) {
	values := make(map[string]cty.Value, len(action.Args))
	for name, expr := range action.Args {
		val, diags := expr.Value(params.EvalContext)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s %q: failed to evaluate argument %q: %s",
				action.Kind, action.Name, name, diags.Error())
		}
		values[name] = val
	}
	return config.NativeParams(values), nil
}

// stringList coerces an evaluated argument into a string slice.
func stringList(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a list of strings, got element %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}
