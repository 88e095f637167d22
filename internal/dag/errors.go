package dag

import (
	"fmt"
	"strings"
)

// MissingDependency records a dependency id that could not be resolved to a
// module present in the input list.
type MissingDependency struct {
	// ModuleID is the dependent module.
	ModuleID string
	// DependencyID is the declared dependency as it failed to resolve.
	DependencyID string
}

func (m MissingDependency) String() string {
	return fmt.Sprintf("module %q depends on unknown module %q", m.ModuleID, m.DependencyID)
}

// BuildError is the aggregate validation failure of graph construction. The
// planner must never run on a graph that produced one; Build returns the full
// error list rather than stopping at the first problem.
type BuildError struct {
	Cycles  [][]string
	Missing []MissingDependency
}

// Error implements the error interface, naming every cycle member and every
// unresolved dependency.
func (e *BuildError) Error() string {
	var parts []string
	for _, cycle := range e.Cycles {
		parts = append(parts, fmt.Sprintf("dependency cycle: %s", strings.Join(cycle, " -> ")))
	}
	for _, m := range e.Missing {
		parts = append(parts, m.String())
	}
	return "invalid dependency graph:\n- " + strings.Join(parts, "\n- ")
}
