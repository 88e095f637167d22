package vfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/scaffgo/internal/ctxlog"
)

// State tracks the lifecycle of a VFS.
type State int

const (
	// StateOpen accepts staged writes.
	StateOpen State = iota
	// StateFlushed has committed every staged entry to disk.
	StateFlushed
	// StateCleared has released all staged content. Terminal.
	StateCleared
)

// String returns the lifecycle state name.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateFlushed:
		return "flushed"
	case StateCleared:
		return "cleared"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// DeferredOp is an opaque side effect registered by an action handler. It
// runs only after a successful flush, which keeps non-file actions inside
// the module's all-or-nothing contract: a cleared VFS discards them.
type DeferredOp struct {
	Name string
	Fn   func(ctx context.Context) error
}

// VFS is a per-execution staging area scoped to a working root. It is never
// shared between two module executions.
type VFS struct {
	id      string
	root    string
	subpath string

	staged   map[string][]byte
	order    []string
	deferred []DeferredOp
	state    State
}

// New constructs an open VFS for one execution, identified for logging and
// scoped to root plus the context-relative subpath.
func New(id, root, subpath string) *VFS {
	return &VFS{
		id:      id,
		root:    root,
		subpath: subpath,
		staged:  make(map[string][]byte),
	}
}

// ID returns the VFS identity.
func (v *VFS) ID() string { return v.id }

// State returns the current lifecycle state.
func (v *VFS) State() State { return v.state }

// WorkingDir returns the absolute directory all relative paths resolve
// against. The working root is carried here explicitly instead of in
// process-wide state, so two executions can never observe each other's
// location.
func (v *VFS) WorkingDir() string {
	return filepath.Join(v.root, filepath.FromSlash(v.subpath))
}

// abs resolves a context-relative path to its on-disk location.
func (v *VFS) abs(rel string) string {
	return filepath.Join(v.WorkingDir(), filepath.FromSlash(rel))
}

// Stage records content for a context-relative path. Staging over an
// existing entry replaces it in place without changing its position.
func (v *VFS) Stage(rel string, content []byte) error {
	if v.state != StateOpen {
		return fmt.Errorf("vfs %s: cannot stage %q in state %s", v.id, rel, v.state)
	}
	if _, exists := v.staged[rel]; !exists {
		v.order = append(v.order, rel)
	}
	v.staged[rel] = content
	return nil
}

// Staged returns the staged content for a path, if any.
func (v *VFS) Staged(rel string) ([]byte, bool) {
	content, ok := v.staged[rel]
	return content, ok
}

// StagedPaths returns every staged path in first-staged order.
func (v *VFS) StagedPaths() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// Read returns the current content of a path as this execution observes it:
// staged content shadows the disk, and the disk holds whatever earlier,
// already-flushed modules committed.
func (v *VFS) Read(rel string) ([]byte, bool, error) {
	if content, ok := v.staged[rel]; ok {
		return content, true, nil
	}
	content, err := os.ReadFile(v.abs(rel))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("vfs %s: failed to read %q: %w", v.id, rel, err)
	}
	return content, true, nil
}

// Exists reports whether a path exists, staged or on disk.
func (v *VFS) Exists(rel string) (bool, error) {
	_, ok, err := v.Read(rel)
	return ok, err
}

// Defer registers a side effect to run after a successful flush.
func (v *VFS) Defer(name string, fn func(ctx context.Context) error) error {
	if v.state != StateOpen {
		return fmt.Errorf("vfs %s: cannot defer %q in state %s", v.id, name, v.state)
	}
	v.deferred = append(v.deferred, DeferredOp{Name: name, Fn: fn})
	return nil
}

// Flush commits every staged entry to the real filesystem, creating parent
// directories as needed, then runs deferred operations in registration
// order. On any error the VFS stays open and nothing further is written;
// the caller's unconditional Clear discards the remainder.
func (v *VFS) Flush(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("vfs", v.id)
	if v.state != StateOpen {
		return fmt.Errorf("vfs %s: cannot flush in state %s", v.id, v.state)
	}

	for _, rel := range v.order {
		target := v.abs(rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("vfs %s: failed to create directory for %q: %w", v.id, rel, err)
		}
		if err := os.WriteFile(target, v.staged[rel], 0o644); err != nil {
			return fmt.Errorf("vfs %s: failed to write %q: %w", v.id, rel, err)
		}
		logger.Debug("Flushed staged file.", "path", rel)
	}

	for _, op := range v.deferred {
		logger.Debug("Running deferred operation.", "name", op.Name)
		if err := op.Fn(ctx); err != nil {
			return fmt.Errorf("vfs %s: deferred operation %q failed: %w", v.id, op.Name, err)
		}
	}

	v.state = StateFlushed
	logger.Debug("VFS flushed.", "files", len(v.order), "deferred", len(v.deferred))
	return nil
}

// Clear releases all staged content and deferred operations. It is safe to
// call in any state and on every exit path; callers defer it unconditionally
// so a failed module never leaves partial files behind.
func (v *VFS) Clear() {
	v.staged = make(map[string][]byte)
	v.order = nil
	v.deferred = nil
	v.state = StateCleared
}
