// Package schema defines the HCL block structures for genome files and
// module manifests. These are the raw, format-specific shapes; the
// hcl_adapter package translates them into the agnostic config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Genome file structures ---

// ParamsBlock captures an open attribute body, used for genome `params`
// blocks and manifest `defaults` blocks.
type ParamsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// LayoutPackage maps a capability to a monorepo package path.
type LayoutPackage struct {
	Capability string `hcl:"capability,label"`
	Path       string `hcl:"path"`
}

// LayoutApp declares one application of a multi-app project.
type LayoutApp struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
	Type string `hcl:"type"`
}

// Layout describes the target project topology.
type Layout struct {
	Packages []*LayoutPackage `hcl:"package,block"`
	Apps     []*LayoutApp     `hcl:"app,block"`
}

// GenomeModule is a `module` block inside a genome file: a request to apply
// one module, with optional overrides for its parameters.
type GenomeModule struct {
	ID         string       `hcl:"id,label"`
	Category   string       `hcl:"category,optional"`
	Capability string       `hcl:"capability,optional"`
	Requires   []string     `hcl:"requires,optional"`
	Params     *ParamsBlock `hcl:"params,block"`
}

// GenomeConfig is the top-level structure of a genome file.
type GenomeConfig struct {
	Name    string          `hcl:"name"`
	Layout  *Layout         `hcl:"layout,block"`
	Modules []*GenomeModule `hcl:"module,block"`
	Body    hcl.Body        `hcl:",remain"`
}

// --- Module manifest structures ---

// ModuleManifest is the `module` block of a manifest file.
type ModuleManifest struct {
	ID          string       `hcl:"id,label"`
	Category    string       `hcl:"category,optional"`
	Description string       `hcl:"description,optional"`
	Defaults    *ParamsBlock `hcl:"defaults,block"`
}

// ConflictBlock declares the conflict policy of a create action.
type ConflictBlock struct {
	Strategy string `hcl:"strategy"`
	Priority int    `hcl:"priority,optional"`
}

// CreateAction is the body of a `create` block; the target path is the
// block label.
type CreateAction struct {
	Content  hcl.Expression `hcl:"content"`
	When     hcl.Expression `hcl:"when,optional"`
	Conflict *ConflictBlock `hcl:"conflict,block"`
}

// AppendAction is the body of an `append` block; the target path is the
// block label.
type AppendAction struct {
	Content hcl.Expression `hcl:"content"`
	When    hcl.Expression `hcl:"when,optional"`
}

// OpaqueAction is the body of a `run` or `install` block. The body is
// handler-specific and passed through as raw arguments.
type OpaqueAction struct {
	When hcl.Expression `hcl:"when,optional"`
	Body hcl.Body       `hcl:",remain"`
}

// BlueprintBlock captures the raw body of a `blueprint` block. It is decoded
// manually so that action source order survives.
type BlueprintBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// ManifestConfig is the top-level structure of a module manifest file.
type ManifestConfig struct {
	Module    *ModuleManifest `hcl:"module,block"`
	Blueprint *BlueprintBlock `hcl:"blueprint,block"`
	Body      hcl.Body        `hcl:",remain"`
}

// BlueprintSchema is the body schema used for order-preserving extraction of
// action blocks from a `blueprint` block.
var BlueprintSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "create", LabelNames: []string{"path"}},
		{Type: "append", LabelNames: []string{"path"}},
		{Type: "run", LabelNames: []string{"name"}},
		{Type: "install", LabelNames: []string{"name"}},
	},
}
