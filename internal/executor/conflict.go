package executor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/ctxlog"
	"github.com/vk/scaffgo/internal/vfs"
)

// Ledger records the write priority of every path committed during the run.
// Files that predate the run have no entry: they were written by no module,
// so priority gating does not protect them. The ledger is what makes
// conflict resolution independent of module ordering: a later low-priority
// replace cannot undo an earlier high-priority write.
type Ledger struct {
	committed map[string]int
}

// NewLedger creates an empty run-scoped ledger.
func NewLedger() *Ledger {
	return &Ledger{committed: make(map[string]int)}
}

// Committed returns the recorded priority for an absolute path. Unknown
// paths default to zero.
func (l *Ledger) Committed(path string) int {
	return l.committed[path]
}

// Lookup returns the recorded priority for an absolute path and whether a
// module wrote it during this run.
func (l *Ledger) Lookup(path string) (int, bool) {
	pri, ok := l.committed[path]
	return pri, ok
}

// Commit records the priorities of flushed paths. dir is the working
// directory the relative paths resolve against.
func (l *Ledger) Commit(dir string, priorities map[string]int) {
	for rel, pri := range priorities {
		l.committed[filepath.Join(dir, filepath.FromSlash(rel))] = pri
	}
}

// applyCreate stages a create action, resolving conflicts against both
// earlier staged writes of this execution and files committed by previous
// modules. staged tracks the priority of every path this execution has
// staged so far and is updated in place.
func (e *Executor) applyCreate(ctx context.Context, fs *vfs.VFS, staged map[string]int, action *config.Action) error {
	logger := ctxlog.FromContext(ctx)
	rel := action.Path
	pol := action.Conflict

	existing, exists, err := fs.Read(rel)
	if err != nil {
		return err
	}
	if !exists {
		if err := fs.Stage(rel, action.RenderedContent); err != nil {
			return err
		}
		staged[rel] = pol.Priority
		return nil
	}

	// Priority gating only protects content a module wrote during this run.
	// A pre-run file has no writer and is always replaceable.
	prev, tracked := staged[rel]
	if !tracked {
		prev, tracked = e.ledger.Lookup(filepath.Join(fs.WorkingDir(), filepath.FromSlash(rel)))
	}

	switch pol.Strategy {
	case config.StrategySkip:
		logger.Debug("Create skipped, path already exists.", "path", rel)
		return nil

	case config.StrategyReplace:
		if tracked && pol.Priority <= prev {
			logger.Debug("Replace yielded to existing content.",
				"path", rel, "priority", pol.Priority, "existing_priority", prev)
			return nil
		}
		if err := fs.Stage(rel, action.RenderedContent); err != nil {
			return err
		}
		staged[rel] = pol.Priority
		logger.Debug("Replaced existing content.", "path", rel, "priority", pol.Priority)
		return nil

	case config.StrategyMerge:
		merged, err := mergeContent(rel, existing, action.RenderedContent)
		if err != nil {
			return fmt.Errorf("failed to merge %q: %w", rel, err)
		}
		if err := fs.Stage(rel, merged); err != nil {
			return err
		}
		staged[rel] = max(prev, pol.Priority)
		logger.Debug("Merged into existing content.", "path", rel)
		return nil
	}
	return fmt.Errorf("create %q carries unknown conflict strategy %v", rel, pol.Strategy)
}

// applyAppend stages an append action. A missing target behaves like a
// create; an existing one gains the new content at the end, separated by a
// newline when the existing content lacks one.
func (e *Executor) applyAppend(fs *vfs.VFS, staged map[string]int, action *config.Action) error {
	rel := action.Path

	existing, exists, err := fs.Read(rel)
	if err != nil {
		return err
	}
	if !exists {
		if err := fs.Stage(rel, action.RenderedContent); err != nil {
			return err
		}
		staged[rel] = 0
		return nil
	}

	content := existing
	if len(content) > 0 && content[len(content)-1] != '\n' {
		content = append(content, '\n')
	}
	content = append(content, action.RenderedContent...)
	if err := fs.Stage(rel, content); err != nil {
		return err
	}
	if _, ok := staged[rel]; !ok {
		staged[rel] = e.ledger.Committed(filepath.Join(fs.WorkingDir(), filepath.FromSlash(rel)))
	}
	return nil
}
