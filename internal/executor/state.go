package executor

import "fmt"

// ModuleState tracks a module's progress through its execution lifecycle.
// Transitions are strictly forward; SUCCEEDED and FAILED are terminal.
type ModuleState int

const (
	// StateReady is the initial state of a scheduled module.
	StateReady ModuleState = iota
	// StateContextResolved means the module knows where it will execute.
	StateContextResolved
	// StateLoaded means the manifest and blueprint have been fetched.
	StateLoaded
	// StatePreprocessed means parameters are merged and conditional
	// actions are pruned.
	StatePreprocessed
	// StateVFSOpen means a staging filesystem has been opened.
	StateVFSOpen
	// StateExecuting means blueprint actions are running.
	StateExecuting
	// StateSucceeded means every execution context flushed cleanly.
	StateSucceeded
	// StateFailed means an execution context failed and was discarded.
	StateFailed
)

// String returns the canonical upper-case state name.
func (s ModuleState) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateContextResolved:
		return "CONTEXT_RESOLVED"
	case StateLoaded:
		return "LOADED"
	case StatePreprocessed:
		return "PREPROCESSED"
	case StateVFSOpen:
		return "VFS_OPEN"
	case StateExecuting:
		return "EXECUTING"
	case StateSucceeded:
		return "SUCCEEDED"
	case StateFailed:
		return "FAILED"
	}
	return fmt.Sprintf("ModuleState(%d)", int(s))
}

// Terminal reports whether the state admits no further transitions.
func (s ModuleState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}
