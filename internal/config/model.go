package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Category classifies a module within the generation hierarchy. The category
// drives execution ordering: framework modules always run first, followed by
// adapters, connectors, and features.
type Category int

const (
	// CategoryAdapter is the default category for modules that do not
	// declare one and whose id carries no recognized prefix.
	CategoryAdapter Category = iota
	// CategoryFramework marks one-time project bootstrap modules.
	CategoryFramework
	// CategoryConnector marks modules that integrate external services.
	CategoryConnector
	// CategoryFeature marks end-user feature modules.
	CategoryFeature
)

// String returns the canonical lower-case name of the category.
func (c Category) String() string {
	switch c {
	case CategoryFramework:
		return "framework"
	case CategoryAdapter:
		return "adapter"
	case CategoryConnector:
		return "connector"
	case CategoryFeature:
		return "feature"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory converts a manifest category string into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "framework":
		return CategoryFramework, nil
	case "adapter":
		return CategoryAdapter, nil
	case "connector", "integration":
		return CategoryConnector, nil
	case "feature":
		return CategoryFeature, nil
	}
	return CategoryAdapter, fmt.Errorf("unknown module category %q", s)
}

// ClassifyID infers a category from a slash-segmented module id. It is the
// fallback used when a manifest omits an explicit category field.
func ClassifyID(id string) Category {
	prefix, _, _ := strings.Cut(id, "/")
	switch prefix {
	case "framework", "frameworks":
		return CategoryFramework
	case "connector", "connectors", "integration", "integrations":
		return CategoryConnector
	case "feature", "features":
		return CategoryFeature
	}
	return CategoryAdapter
}

// Module is one unit of generation as declared in the genome. It is immutable
// during planning; parameters are merged with manifest defaults immediately
// before execution.
type Module struct {
	// ID is the globally unique, slash-segmented module identifier.
	// Example: "adapters/ui/shadcn".
	ID string
	// Category places the module in the execution hierarchy.
	Category Category
	// Requires lists explicit prerequisite module ids. Entries may be
	// short aliases that are normalized during graph construction.
	Requires []string
	// Capability names the layout capability this module provides; the
	// resolver maps it to a monorepo package when the layout declares one.
	Capability string
	// Params is the opaque parameter bag from the genome. The reserved
	// keys target_package and target_app_types act as resolution hints.
	Params map[string]cty.Value
}

// Application is one application target inside a multi-app project layout.
type Application struct {
	Name string
	// Path is the application directory, relative to the project root.
	Path string
	// Type declares what kind of application this is (e.g. "frontend").
	// Modules match against it when resolving their execution context.
	Type string
}

// Layout describes the topology of the generated project.
type Layout struct {
	// Packages maps a capability name to a package path relative to the
	// project root (monorepo mode).
	Packages map[string]string
	// Apps lists the applications of a multi-app project.
	Apps []*Application
}

// Genome is the resolved project template: the ordered list of modules to
// apply, plus the target project's layout.
type Genome struct {
	Name    string
	Layout  *Layout
	Modules []*Module
}

// ConflictStrategy governs what happens when a create action targets a path
// that already exists, either staged earlier or committed by a prior module.
type ConflictStrategy int

const (
	// StrategySkip leaves the existing content untouched.
	StrategySkip ConflictStrategy = iota
	// StrategyMerge combines existing and new content. Structured formats
	// (JSON, YAML, TOML) merge structurally; anything else appends.
	StrategyMerge
	// StrategyReplace overwrites the existing content, subject to priority.
	StrategyReplace
)

// String returns the canonical lower-case name of the strategy.
func (s ConflictStrategy) String() string {
	switch s {
	case StrategySkip:
		return "skip"
	case StrategyMerge:
		return "merge"
	case StrategyReplace:
		return "replace"
	}
	return fmt.Sprintf("ConflictStrategy(%d)", int(s))
}

// ParseStrategy converts a manifest strategy string into a ConflictStrategy.
func ParseStrategy(s string) (ConflictStrategy, error) {
	switch strings.ToLower(s) {
	case "skip":
		return StrategySkip, nil
	case "merge":
		return StrategyMerge, nil
	case "replace":
		return StrategyReplace, nil
	}
	return StrategySkip, fmt.Errorf("unknown conflict strategy %q", s)
}

// ConflictResolution is the declared policy for writes to pre-existing paths.
// Priority breaks ties between two modules that legitimately target the same
// path: the higher priority wins. At equal priority, declaration order wins
// and the earlier writer's content is kept.
type ConflictResolution struct {
	Strategy ConflictStrategy
	Priority int
}

// Action kinds understood by the executor. ActionCreate is handled natively;
// every other kind dispatches to a registered handler.
const (
	ActionCreate  = "create"
	ActionAppend  = "append"
	ActionRun     = "run"
	ActionInstall = "install"
)

// Action is a single step in a module's blueprint. Actions execute strictly
// in declared order against the module's staging filesystem.
type Action struct {
	// Kind selects the handler. See the Action* constants.
	Kind string
	// Name is the label of a run/install action, for logging.
	Name string
	// Path is the target path for create/append actions, relative to the
	// module's resolved execution context.
	Path string
	// Content produces the file content for create/append actions. It is
	// evaluated against the merged-parameter context during preprocessing.
	Content hcl.Expression
	// RenderedContent is the evaluated Content, filled by preprocessing.
	RenderedContent []byte
	// Conflict is the mandatory policy for create actions.
	Conflict *ConflictResolution
	// When optionally guards the action. Preprocessing prunes the action
	// when the expression evaluates to false.
	When hcl.Expression
	// Args carries opaque arguments for run/install handlers.
	Args map[string]hcl.Expression
}

// Blueprint is the ordered list of actions one module contributes.
type Blueprint struct {
	ModuleID string
	Actions  []*Action
}

// ModuleConfig is a module's manifest as served by the module store.
type ModuleConfig struct {
	ID          string
	Category    Category
	Description string
	// Defaults holds manifest default parameter values. Genome parameters
	// win over them during the merge step.
	Defaults map[string]cty.Value
}
