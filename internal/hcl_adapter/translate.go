package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/schema"
)

// translateGenome converts the HCL genome schema into the agnostic model.
func (l *Loader) translateGenome(raw *schema.GenomeConfig) (*config.Genome, error) {
	genome := &config.Genome{
		Name:   raw.Name,
		Layout: &config.Layout{Packages: make(map[string]string)},
	}

	if raw.Layout != nil {
		for _, pkg := range raw.Layout.Packages {
			genome.Layout.Packages[pkg.Capability] = pkg.Path
		}
		for _, app := range raw.Layout.Apps {
			genome.Layout.Apps = append(genome.Layout.Apps, &config.Application{
				Name: app.Name,
				Path: app.Path,
				Type: app.Type,
			})
		}
	}

	for _, m := range raw.Modules {
		mod, err := l.translateGenomeModule(m)
		if err != nil {
			return nil, err
		}
		genome.Modules = append(genome.Modules, mod)
	}
	return genome, nil
}

// translateGenomeModule converts one genome `module` block. An explicit
// category wins; otherwise the category is inferred from the id prefix.
func (l *Loader) translateGenomeModule(raw *schema.GenomeModule) (*config.Module, error) {
	cat := config.ClassifyID(raw.ID)
	if raw.Category != "" {
		parsed, err := config.ParseCategory(raw.Category)
		if err != nil {
			return nil, fmt.Errorf("module %q: %w", raw.ID, err)
		}
		cat = parsed
	}

	params, err := extractStaticAttributes(paramsBody(raw.Params))
	if err != nil {
		return nil, fmt.Errorf("module %q params: %w", raw.ID, err)
	}

	return &config.Module{
		ID:         raw.ID,
		Category:   cat,
		Capability: raw.Capability,
		Requires:   raw.Requires,
		Params:     params,
	}, nil
}

// translateManifest converts a manifest `module` block into a ModuleConfig.
func (l *Loader) translateManifest(raw *schema.ModuleManifest) (*config.ModuleConfig, error) {
	cat := config.ClassifyID(raw.ID)
	if raw.Category != "" {
		parsed, err := config.ParseCategory(raw.Category)
		if err != nil {
			return nil, fmt.Errorf("module %q: %w", raw.ID, err)
		}
		cat = parsed
	}

	defaults, err := extractStaticAttributes(paramsBody(raw.Defaults))
	if err != nil {
		return nil, fmt.Errorf("module %q defaults: %w", raw.ID, err)
	}

	return &config.ModuleConfig{
		ID:          raw.ID,
		Category:    cat,
		Description: raw.Description,
		Defaults:    defaults,
	}, nil
}

// translateBlueprint extracts action blocks from a blueprint body in source
// order. Order is significant: later actions observe earlier staged writes.
func (l *Loader) translateBlueprint(raw *schema.BlueprintBlock) ([]*config.Action, error) {
	content, diags := raw.Body.Content(schema.BlueprintSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode blueprint body: %s", diags.Error())
	}

	var actions []*config.Action
	for _, block := range content.Blocks {
		action, err := l.translateAction(block)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// translateAction converts one action block into the agnostic model.
func (l *Loader) translateAction(block *hcl.Block) (*config.Action, error) {
	switch block.Type {
	case config.ActionCreate:
		var body schema.CreateAction
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return nil, fmt.Errorf("create %q: %s", block.Labels[0], diags.Error())
		}
		action := &config.Action{
			Kind:    config.ActionCreate,
			Path:    block.Labels[0],
			Content: body.Content,
			When:    optionalExpr(body.When),
		}
		if body.Conflict != nil {
			strategy, err := config.ParseStrategy(body.Conflict.Strategy)
			if err != nil {
				return nil, fmt.Errorf("create %q: %w", block.Labels[0], err)
			}
			action.Conflict = &config.ConflictResolution{
				Strategy: strategy,
				Priority: body.Conflict.Priority,
			}
		}
		return action, nil

	case config.ActionAppend:
		var body schema.AppendAction
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return nil, fmt.Errorf("append %q: %s", block.Labels[0], diags.Error())
		}
		return &config.Action{
			Kind:    config.ActionAppend,
			Path:    block.Labels[0],
			Content: body.Content,
			When:    optionalExpr(body.When),
		}, nil

	case config.ActionRun, config.ActionInstall:
		var body schema.OpaqueAction
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return nil, fmt.Errorf("%s %q: %s", block.Type, block.Labels[0], diags.Error())
		}
		args, err := extractBodyAttributes(body.Body)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", block.Type, block.Labels[0], err)
		}
		return &config.Action{
			Kind: block.Type,
			Name: block.Labels[0],
			When: optionalExpr(body.When),
			Args: args,
		}, nil
	}
	return nil, fmt.Errorf("unknown action block type %q", block.Type)
}

// paramsBody unwraps an optional params/defaults block to its body.
func paramsBody(block *schema.ParamsBlock) hcl.Body {
	if block == nil {
		return nil
	}
	return block.Body
}

// extractBodyAttributes collects every attribute of a body as a raw,
// unevaluated expression map.
func extractBodyAttributes(body hcl.Body) (map[string]hcl.Expression, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read attributes: %s", diags.Error())
	}
	out := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		out[name] = attr.Expr
	}
	return out, nil
}

// extractStaticAttributes evaluates every attribute of a body with a nil
// evaluation context. Genome parameters and manifest defaults must be
// literal values; anything referencing variables is rejected here.
func extractStaticAttributes(body hcl.Body) (map[string]cty.Value, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read attributes: %s", diags.Error())
	}
	out := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q must be a literal value: %s", name, diags.Error())
		}
		out[name] = val
	}
	return out, nil
}

// optionalExpr normalizes gohcl's zero-value expressions to nil so callers
// can test presence with a nil check.
func optionalExpr(expr hcl.Expression) hcl.Expression {
	if expr == nil {
		return nil
	}
	// gohcl fills optional expression fields with a synthetic expression
	// whose variables and value are both empty; a literal null marks absence.
	if v, diags := expr.Value(nil); !diags.HasErrors() && v.IsNull() && len(expr.Variables()) == 0 {
		return nil
	}
	return expr
}
