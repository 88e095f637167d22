package resolver

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
)

// TargetKind distinguishes the possible execution contexts of a module.
type TargetKind int

const (
	// TargetNone means no valid location exists; the module is skipped.
	TargetNone TargetKind = iota
	// TargetRoot executes the blueprint against the project root.
	TargetRoot
	// TargetPackage executes against one monorepo package.
	TargetPackage
	// TargetApps executes the blueprint once per matched application.
	TargetApps
)

// Target is a module's resolved execution context: exactly one of project
// root, a single package path, or one-or-more application paths.
type Target struct {
	Kind    TargetKind
	Package string
	Apps    []*config.Application
}

// Subpaths returns the context-relative subpath for each execution the
// target requires. The project root yields a single empty subpath.
func (t *Target) Subpaths() []string {
	switch t.Kind {
	case TargetRoot:
		return []string{""}
	case TargetPackage:
		return []string{t.Package}
	case TargetApps:
		paths := make([]string, len(t.Apps))
		for i, app := range t.Apps {
			paths[i] = app.Path
		}
		return paths
	}
	return nil
}

// targetHint is the genome-parameter override a module may carry. It takes
// precedence over every manifest-declared rule.
type targetHint struct {
	Package  string   `mapstructure:"target_package"`
	AppTypes []string `mapstructure:"target_app_types"`
}

// Resolver resolves modules against one project layout. The capability map
// is fixed at construction, during project-structure initialization.
type Resolver struct {
	layout       *config.Layout
	capabilities map[string]string
}

// New builds a resolver for the given genome's layout.
func New(genome *config.Genome) *Resolver {
	r := &Resolver{
		layout:       genome.Layout,
		capabilities: make(map[string]string),
	}
	if genome.Layout != nil {
		for capability, path := range genome.Layout.Packages {
			r.capabilities[capability] = path
		}
	}
	return r
}

// Resolve maps a module to its execution context. Precedence: explicit
// target-package hint, capability lookup, application-type matching, project
// root. A module that declares targeting requirements the topology cannot
// satisfy resolves to TargetNone.
func (r *Resolver) Resolve(ctx context.Context, m *config.Module) (*Target, error) {
	logger := ctxlog.FromContext(ctx).With("module", m.ID)

	var hint targetHint
	if len(m.Params) > 0 {
		if err := mapstructure.Decode(config.NativeParams(m.Params), &hint); err != nil {
			return nil, fmt.Errorf("module %q has malformed target hints: %w", m.ID, err)
		}
	}

	// (1) Explicit package hint from the genome.
	if hint.Package != "" {
		logger.Debug("Resolved to explicit target package.", "package", hint.Package)
		return &Target{Kind: TargetPackage, Package: hint.Package}, nil
	}

	// (2) Capability map established at project-structure initialization.
	if m.Capability != "" {
		if path, ok := r.capabilities[m.Capability]; ok {
			logger.Debug("Resolved via capability map.", "capability", m.Capability, "package", path)
			return &Target{Kind: TargetPackage, Package: path}, nil
		}
		logger.Debug("Capability not present in layout.", "capability", m.Capability)
	}

	// (3) Applications with a compatible declared type. A module may
	// legitimately target more than one application.
	appTypes := hint.AppTypes
	if len(appTypes) > 0 {
		var matched []*config.Application
		if r.layout != nil {
			for _, app := range r.layout.Apps {
				for _, t := range appTypes {
					if app.Type == t {
						matched = append(matched, app)
						break
					}
				}
			}
		}
		if len(matched) > 0 {
			logger.Debug("Resolved to applications.", "count", len(matched))
			return &Target{Kind: TargetApps, Apps: matched}, nil
		}
	}

	// A module that asked for a capability or app type this project does
	// not have models an optional feature: skip, not error.
	if m.Capability != "" || len(appTypes) > 0 {
		logger.Debug("No valid target in project topology, module will be skipped.")
		return &Target{Kind: TargetNone}, nil
	}

	// (4) Single-app mode: the project root.
	logger.Debug("Resolved to project root.")
	return &Target{Kind: TargetRoot}, nil
}
