package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/dag"
	"github.com/vk/scaffgo/internal/executor"
	"github.com/vk/scaffgo/internal/scheduler"
)

// Engine coordinates a single generation run.
type Engine struct {
	genome  *config.Genome
	exec    *executor.Executor
	aliases dag.AliasResolver
}

// New creates an engine for one genome. aliases may be nil when the genome
// declares only fully-qualified dependency ids.
func New(genome *config.Genome, exec *executor.Executor, aliases dag.AliasResolver) *Engine {
	return &Engine{genome: genome, exec: exec, aliases: aliases}
}

// RunResult summarizes a finished run.
type RunResult struct {
	// RunID uniquely identifies the run across logs and results.
	RunID string
	// Success is true when every planned module succeeded or was skipped.
	Success bool
	// Executed counts modules that ran to a terminal state, including the
	// failed one on an aborted run.
	Executed int
	// Skipped counts modules with no valid target in the project topology.
	Skipped int
	// Warnings carries non-fatal planning observations.
	Warnings []string
	// Results holds per-module outcomes in execution order.
	Results []*executor.Result
}

// Run plans and executes the genome. Planning failures return before any
// module runs; during execution the first module failure aborts the run and
// is returned as the error, with the partial results preserved in RunResult.
func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("run_id", runID, "genome", e.genome.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	res := &RunResult{RunID: runID}

	graph, err := dag.Build(ctx, e.genome.Modules, e.aliases)
	if err != nil {
		return res, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	logger.Debug("Dependency graph built.", "node_count", len(graph.Nodes))

	plan, err := scheduler.Schedule(ctx, graph)
	if err != nil {
		return res, fmt.Errorf("failed to schedule execution plan: %w", err)
	}
	res.Warnings = plan.Warnings
	logger.Info("Execution plan ready.",
		"prephase", len(plan.Prephase), "batches", len(plan.Batches), "modules", plan.ModuleCount())

	if err := e.runModules(ctx, plan.Prephase, res); err != nil {
		return res, err
	}
	for _, batch := range plan.Batches {
		if err := e.runModules(ctx, batch.Modules, res); err != nil {
			return res, err
		}
	}

	res.Success = true
	logger.Info("Run finished.", "executed", res.Executed, "skipped", res.Skipped)
	return res, nil
}

// runModules executes one ordered slice of modules, aborting on the first
// failure.
func (e *Engine) runModules(ctx context.Context, modules []*config.Module, res *RunResult) error {
	for _, m := range modules {
		r := e.exec.ExecuteModule(ctx, m)
		res.Results = append(res.Results, r)
		res.Executed++
		if r.Skipped {
			res.Skipped++
		}
		if r.Err != nil {
			return fmt.Errorf("run aborted at module %q: %w", m.ID, r.Err)
		}
	}
	return nil
}
