package dag

import (
	"context"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
)

// Build constructs a complete, validated dependency graph from a module list.
// Edges come from each module's declared prerequisites, normalized through
// the optional alias resolver. Framework ordering is deliberately not encoded
// as graph edges; the scheduler's hierarchy pass enforces it, so a module may
// declare zero dependencies and still be ordered correctly.
//
// Any cycle or unresolved dependency aborts construction with a *BuildError
// carrying the full problem list.
func Build(ctx context.Context, modules []*config.Module, resolver AliasResolver) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "module_count", len(modules))

	graph := &Graph{Nodes: make(map[string]*Node)}

	// First pass: create all nodes.
	for _, m := range modules {
		if _, exists := graph.Nodes[m.ID]; exists {
			logger.Warn("Duplicate module declaration found, later entry ignored.", "id", m.ID)
			continue
		}
		graph.addNode(m)
	}
	logger.Debug("Build: Node creation complete.", "node_count", len(graph.Nodes))

	// Second pass: link explicit dependencies.
	var missing []MissingDependency
	known := graph.Order()
	for _, id := range known {
		m := graph.Nodes[id].Module
		for _, raw := range m.Requires {
			depID, ok := normalizeDependency(raw, resolver, known)
			if !ok {
				logger.Debug("Dependency reference did not normalize.", "module", id, "requires", raw)
				missing = append(missing, MissingDependency{ModuleID: id, DependencyID: raw})
				continue
			}
			if _, present := graph.Nodes[depID]; !present {
				missing = append(missing, MissingDependency{ModuleID: id, DependencyID: depID})
				continue
			}
			if err := graph.addEdge(depID, id); err != nil {
				return nil, err
			}
		}
	}
	logger.Debug("Build: Node linking complete.")

	// Final validation: cycles and unresolved ids abort together.
	cycles := graph.findCycles()
	if len(cycles) > 0 || len(missing) > 0 {
		err := &BuildError{Cycles: cycles, Missing: missing}
		logger.Debug("Build: Graph validation failed.", "cycles", len(cycles), "missing", len(missing))
		return nil, err
	}

	logger.Debug("Build: Graph construction successful.")
	return graph, nil
}
