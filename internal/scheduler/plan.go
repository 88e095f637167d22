package scheduler

import (
	"github.com/vk/scaffgo/internal/config"
)

// Batch is an ordered set of modules with no dependency edges between them.
// Members execute sequentially in declaration order; the batch structure
// records what the graph would permit to run together, not what actually
// runs concurrently.
type Batch struct {
	Modules []*config.Module
}

// Plan is the complete execution order for one run. The framework pre-phase
// executes first, once, outside batch mechanics; batches then execute in
// index order, with earlier batches strictly preceding later ones for any
// cross-batch dependency.
type Plan struct {
	// Prephase holds the framework modules, in topological order.
	Prephase []*config.Module
	// Batches holds the remaining modules. Indices are contiguous from
	// zero and every non-framework module appears in exactly one batch.
	Batches []*Batch
	// Warnings accumulates non-fatal observations made while planning.
	Warnings []string
}

// BatchIndex returns the batch index of a module id, or -1 if the module is
// in the pre-phase or absent from the plan.
func (p *Plan) BatchIndex(id string) int {
	for i, b := range p.Batches {
		for _, m := range b.Modules {
			if m.ID == id {
				return i
			}
		}
	}
	return -1
}

// ModuleCount returns the total number of modules in the plan.
func (p *Plan) ModuleCount() int {
	n := len(p.Prephase)
	for _, b := range p.Batches {
		n += len(b.Modules)
	}
	return n
}
