// Package executor runs one module's blueprint against a freshly staged
// virtual filesystem. It owns the module execution state machine, the
// conflict-resolution policy for writes to pre-existing paths, and the
// per-module all-or-nothing commit: flush on success, discard on failure.
package executor
