package app

import (
	"context"
	"fmt"

	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/engine"
	"github.com/vk/scaffgo/internal/executor"
	"github.com/vk/scaffgo/internal/params"
	"github.com/vk/scaffgo/internal/resolver"
)

// Run executes the generation run described by the loaded genome.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	res := resolver.New(a.genome)
	exec := executor.New(a.store, params.New(), res, a.registry, a.genome, a.config.OutputDir)
	eng := engine.New(a.genome, exec, nil)

	a.logger.Info("Starting generation run.",
		"genome", a.genome.Name, "output", a.config.OutputDir)
	result, err := eng.Run(ctx)
	for _, w := range result.Warnings {
		a.logger.Warn(w)
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	a.logger.Info("Generation finished.",
		"run_id", result.RunID, "executed", result.Executed, "skipped", result.Skipped)
	return nil
}
