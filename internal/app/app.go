package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/modstore"
	"github.com/vk/scaffgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	genome   *config.Genome
	store    *modstore.FileStore
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, appConfig *Config, loader config.GenomeLoader, actionSets ...registry.ActionSet) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the genome into the format-agnostic model first.
	genome, err := loader.LoadGenome(ctx, appConfig.GenomePath)
	if err != nil {
		// A failure to load the genome is a fatal startup error.
		panic(fmt.Errorf("failed to load genome: %w", err))
	}
	logger.Debug("Genome loaded and translated into unified model.",
		"name", genome.Name, "modules", len(genome.Modules))

	store, err := modstore.NewFileStore(appConfig.ModulesPath)
	if err != nil {
		panic(fmt.Errorf("failed to open module store: %w", err))
	}
	logger.Debug("Module store opened.", "path", appConfig.ModulesPath)

	// Create and populate the registry with action handlers.
	reg := registry.New()
	if len(actionSets) == 0 {
		actionSets = coreActions
	}
	for _, set := range actionSets {
		set.Register(reg)
	}
	logger.Debug("All action sets registered.", "count", len(actionSets))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		genome:   genome,
		store:    store,
		config:   appConfig,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Genome returns the loaded genome. This is primarily for testing.
func (a *App) Genome() *config.Genome {
	return a.genome
}
