package scheduler

import (
	"context"
	"fmt"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/dag"
)

// Schedule computes the execution plan for a validated, acyclic graph. It
// batches modules with iterative Kahn's-algorithm rounds, applies the
// category hierarchy, and validates the result before returning it.
func Schedule(ctx context.Context, g *dag.Graph) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Schedule: Starting plan construction.", "node_count", len(g.Nodes))

	batches, err := kahnBatches(g)
	if err != nil {
		return nil, err
	}
	logger.Debug("Schedule: Topological batching complete.", "batch_count", len(batches))

	plan := enforceHierarchy(ctx, batches)
	if err := validatePlan(g, plan); err != nil {
		return nil, err
	}

	if plan.ModuleCount() == 0 {
		plan.Warnings = append(plan.Warnings, "plan contains no modules")
	}

	logger.Debug("Schedule: Plan construction successful.",
		"prephase", len(plan.Prephase), "batches", len(plan.Batches))
	return plan, nil
}

// kahnBatches repeatedly collects every node all of whose dependencies
// already belong to an earlier batch, places them together as the next
// batch, and repeats until no nodes remain. Termination is guaranteed by
// acyclicity; a stalled round is an internal error, not a user one.
func kahnBatches(g *dag.Graph) ([][]*config.Module, error) {
	placed := make(map[string]bool, len(g.Nodes))
	var batches [][]*config.Module

	for len(placed) < len(g.Nodes) {
		var round []*config.Module
		for _, id := range g.Order() {
			if placed[id] {
				continue
			}
			node := g.Nodes[id]
			ready := true
			for depID := range node.Deps {
				if !placed[depID] {
					ready = false
					break
				}
			}
			if ready {
				round = append(round, node.Module)
			}
		}

		if len(round) == 0 {
			return nil, fmt.Errorf("internal error: batching made no progress with %d modules unplaced (cycle not caught by graph validation?)", len(g.Nodes)-len(placed))
		}

		// Mark after the sweep so same-round nodes cannot satisfy
		// each other's dependencies.
		for _, m := range round {
			placed[m.ID] = true
		}
		batches = append(batches, round)
	}

	return batches, nil
}

// validatePlan checks the invariants of a finished plan: every module appears
// exactly once, and for every dependency edge D -> M among batched modules,
// D's batch index is strictly less than M's. The second check catches
// declared dependencies that contradict the category hierarchy (for example
// an adapter requiring a feature).
func validatePlan(g *dag.Graph, plan *Plan) error {
	seen := make(map[string]int, len(g.Nodes))
	for _, m := range plan.Prephase {
		seen[m.ID]++
	}
	for _, b := range plan.Batches {
		for _, m := range b.Modules {
			seen[m.ID]++
		}
	}
	for _, id := range g.Order() {
		switch seen[id] {
		case 1:
		case 0:
			return fmt.Errorf("internal error: module %q missing from plan", id)
		default:
			return fmt.Errorf("internal error: module %q appears %d times in plan", id, seen[id])
		}
	}
	if len(seen) != len(g.Nodes) {
		return fmt.Errorf("internal error: plan contains %d modules, graph has %d", len(seen), len(g.Nodes))
	}

	for _, id := range g.Order() {
		node := g.Nodes[id]
		for depID := range node.Deps {
			dep := g.Nodes[depID]
			if dep.Module.Category == config.CategoryFramework {
				// Frameworks precede everything via the pre-phase.
				continue
			}
			if node.Module.Category == config.CategoryFramework {
				return fmt.Errorf("framework module %q cannot depend on non-framework module %q", id, depID)
			}
			if plan.BatchIndex(depID) >= plan.BatchIndex(id) {
				return fmt.Errorf("dependency of %q on %q contradicts category ordering (%s cannot run before %s)",
					id, depID, dep.Module.Category, node.Module.Category)
			}
		}
	}
	return nil
}
