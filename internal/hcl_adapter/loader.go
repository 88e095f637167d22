package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/schema"
)

// Loader is the HCL-specific implementation of the config.GenomeLoader
// interface, also used by the module store to decode manifest files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadGenome parses a genome file and translates it into the agnostic model.
func (l *Loader) LoadGenome(ctx context.Context, path string) (*config.Genome, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading genome file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse genome file %s: %s", path, diags.Error())
	}

	var raw schema.GenomeConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode genome file %s: %s", path, diags.Error())
	}

	genome, err := l.translateGenome(&raw)
	if err != nil {
		return nil, fmt.Errorf("invalid genome file %s: %w", path, err)
	}

	logger.Debug("Genome loaded.", "name", genome.Name, "modules", len(genome.Modules))
	return genome, nil
}

// DecodeManifestFile parses a single module manifest and returns its
// configuration and blueprint.
func (l *Loader) DecodeManifestFile(ctx context.Context, path string) (*config.ModuleConfig, *config.Blueprint, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding module manifest.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to parse manifest file %s: %s", path, diags.Error())
	}

	var raw schema.ManifestConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to decode manifest file %s: %s", path, diags.Error())
	}
	if raw.Module == nil {
		return nil, nil, fmt.Errorf("manifest file %s declares no module block", path)
	}

	cfg, err := l.translateManifest(raw.Module)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	bp := &config.Blueprint{ModuleID: cfg.ID}
	if raw.Blueprint != nil {
		actions, err := l.translateBlueprint(raw.Blueprint)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid blueprint in %s: %w", path, err)
		}
		bp.Actions = actions
	}

	logger.Debug("Manifest decoded.", "module", cfg.ID, "actions", len(bp.Actions))
	return cfg, bp, nil
}
