package executor

import (
	"context"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/registry"
	"github.com/vk/scaffgo/internal/resolver"
	"github.com/vk/scaffgo/internal/vfs"
)

// Executor runs module blueprints for one generation run. It is not safe
// for concurrent use; the engine executes modules sequentially.
type Executor struct {
	store    config.Store
	merger   config.Merger
	resolver *resolver.Resolver
	registry *registry.Registry
	genome   *config.Genome
	root     string
	ledger   *Ledger
}

// New wires an executor for a run rooted at the given output directory.
func New(store config.Store, merger config.Merger, res *resolver.Resolver, reg *registry.Registry, genome *config.Genome, root string) *Executor {
	return &Executor{
		store:    store,
		merger:   merger,
		resolver: res,
		registry: reg,
		genome:   genome,
		root:     root,
		ledger:   NewLedger(),
	}
}

// AppResult records one flushed execution context.
type AppResult struct {
	// Subpath is the context-relative directory, empty for the project root.
	Subpath string
	// Files lists the committed paths, relative to the context.
	Files []string
}

// Result is the outcome of one module execution.
type Result struct {
	ModuleID string
	State    ModuleState
	// Skipped is set when the module had no valid target in the project
	// topology. A skipped module still counts as succeeded.
	Skipped bool
	// Err is the first failure encountered, nil on success.
	Err error
	// Apps holds one entry per flushed execution context. On a multi-app
	// failure it retains the contexts that committed before the failure.
	Apps []AppResult
}

// ExecuteModule drives one module through its lifecycle: resolve the
// execution context, load the manifest, preprocess the blueprint, then stage
// and flush each context in turn. The returned result is terminal.
func (e *Executor) ExecuteModule(ctx context.Context, m *config.Module) *Result {
	logger := ctxlog.FromContext(ctx).With("module", m.ID)
	res := &Result{ModuleID: m.ID, State: StateReady}

	fail := func(err error) *Result {
		res.State = StateFailed
		res.Err = err
		logger.Error("Module execution failed.", "state", res.State, "error", err)
		return res
	}

	target, err := e.resolver.Resolve(ctx, m)
	if err != nil {
		return fail(err)
	}
	res.State = StateContextResolved
	if target.Kind == resolver.TargetNone {
		res.Skipped = true
		res.State = StateSucceeded
		logger.Info("Module skipped, no valid target in project topology.")
		return res
	}

	cfg, bp, err := e.store.Load(ctx, m.ID)
	if err != nil {
		return fail(&LoadError{ModuleID: m.ID, Err: err})
	}
	if err := e.registry.ValidateBlueprint(bp); err != nil {
		return fail(&LoadError{ModuleID: m.ID, Err: err})
	}
	res.State = StateLoaded

	params, err := e.merger.Merge(ctx, m, cfg, e.genome)
	if err != nil {
		return fail(&PreprocessError{ModuleID: m.ID, Err: err})
	}
	actions, err := e.merger.Preprocess(ctx, bp, params)
	if err != nil {
		return fail(&PreprocessError{ModuleID: m.ID, Err: err})
	}
	res.State = StatePreprocessed

	for _, subpath := range target.Subpaths() {
		app, err := e.executeContext(ctx, m, actions, params, subpath, res)
		if err != nil {
			// Contexts flushed before the failure stay committed; the
			// failed context was discarded by its VFS.
			return fail(err)
		}
		res.Apps = append(res.Apps, app)
	}

	res.State = StateSucceeded
	logger.Info("Module execution succeeded.", "contexts", len(res.Apps))
	return res
}

// executeContext stages and commits the action list against one execution
// context. The VFS is cleared on every exit path, so a failure leaves no
// partial files behind.
func (e *Executor) executeContext(ctx context.Context, m *config.Module, actions []*config.Action, params *config.MergedParams, subpath string, res *Result) (AppResult, error) {
	logger := ctxlog.FromContext(ctx).With("module", m.ID, "context", contextName(subpath))

	fs := vfs.New(m.ID+"@"+contextName(subpath), e.root, subpath)
	defer fs.Clear()
	res.State = StateVFSOpen

	staged := make(map[string]int)
	res.State = StateExecuting
	for i, action := range actions {
		if err := e.applyAction(ctx, fs, staged, action, params); err != nil {
			return AppResult{}, &ActionError{
				ModuleID: m.ID,
				Index:    i,
				Kind:     action.Kind,
				Target:   actionTarget(action),
				Err:      err,
			}
		}
	}

	if err := fs.Flush(ctx); err != nil {
		return AppResult{}, err
	}

	files := fs.StagedPaths()
	e.ledger.Commit(fs.WorkingDir(), staged)
	logger.Debug("Execution context committed.", "files", len(files))
	return AppResult{Subpath: subpath, Files: files}, nil
}

// applyAction dispatches one action: file actions are built in, everything
// else goes through the handler registry.
func (e *Executor) applyAction(ctx context.Context, fs *vfs.VFS, staged map[string]int, action *config.Action, params *config.MergedParams) error {
	switch action.Kind {
	case config.ActionCreate:
		return e.applyCreate(ctx, fs, staged, action)
	case config.ActionAppend:
		return e.applyAppend(fs, staged, action)
	}

	fn, ok := e.registry.Lookup(action.Kind)
	if !ok {
		// ValidateBlueprint runs before execution, so this is unreachable
		// unless a handler set mutated mid-run.
		panic("no handler registered for action kind '" + action.Kind + "'")
	}
	return fn(ctx, fs, action, params)
}

func actionTarget(action *config.Action) string {
	if action.Path != "" {
		return action.Path
	}
	return action.Name
}

func contextName(subpath string) string {
	if subpath == "" {
		return "root"
	}
	return subpath
}
