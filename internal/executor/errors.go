package executor

import "fmt"

// LoadError reports a failure to fetch or validate a module's manifest.
type LoadError struct {
	ModuleID string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("module %q failed to load: %s", e.ModuleID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// PreprocessError reports a failure while merging parameters or evaluating
// blueprint expressions, before any action ran.
type PreprocessError struct {
	ModuleID string
	Err      error
}

func (e *PreprocessError) Error() string {
	return fmt.Sprintf("module %q failed preprocessing: %s", e.ModuleID, e.Err)
}

func (e *PreprocessError) Unwrap() error { return e.Err }

// ActionError reports a failure of one blueprint action. Index is the
// position within the preprocessed action list.
type ActionError struct {
	ModuleID string
	Index    int
	Kind     string
	Target   string
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("module %q: action %d (%s %q) failed: %s",
		e.ModuleID, e.Index, e.Kind, e.Target, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }
