package scheduler

import (
	"context"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
)

// categoryOrder is the batched execution order. Framework modules never
// appear here: they are extracted into the pre-phase.
var categoryOrder = []config.Category{
	config.CategoryAdapter,
	config.CategoryConnector,
	config.CategoryFeature,
}

// enforceHierarchy re-linearizes topological batches so category order holds
// even where the graph does not encode it. Framework modules become a
// one-time pre-phase executed before any batch loop. The remaining modules
// are re-batched so that no adapter batch is scheduled at or after any
// connector or feature batch, and no connector batch at or after any feature
// batch, while preserving each category's internal topological order.
//
// This pass must run again whenever the underlying module set changes.
func enforceHierarchy(ctx context.Context, batches [][]*config.Module) *Plan {
	logger := ctxlog.FromContext(ctx)
	plan := &Plan{}

	// Pull frameworks out in topological order.
	stripped := make([][]*config.Module, 0, len(batches))
	for _, batch := range batches {
		var rest []*config.Module
		for _, m := range batch {
			if m.Category == config.CategoryFramework {
				plan.Prephase = append(plan.Prephase, m)
			} else {
				rest = append(rest, m)
			}
		}
		if len(rest) > 0 {
			stripped = append(stripped, rest)
		}
	}

	// Walk the surviving batches once per category. Within one category the
	// original batch sequence is kept, so its topological order survives.
	for _, cat := range categoryOrder {
		for _, batch := range stripped {
			var members []*config.Module
			for _, m := range batch {
				if m.Category == cat {
					members = append(members, m)
				}
			}
			if len(members) > 0 {
				plan.Batches = append(plan.Batches, &Batch{Modules: members})
			}
		}
	}

	logger.Debug("Hierarchy enforcement complete.",
		"prephase", len(plan.Prephase), "batches", len(plan.Batches))
	return plan
}
