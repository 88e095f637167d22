package registry

import (
	"fmt"
	"strings"

	"github.com/vk/scaffgo/internal/config"
)

// ValidateBlueprint performs a structural check of a blueprint before any
// action executes. A create action without a conflict policy, a file action
// without content, or an unregistered action kind are all defects of the
// blueprint itself, not runtime failures.
func (r *Registry) ValidateBlueprint(bp *config.Blueprint) error {
	var errs []string

	for i, action := range bp.Actions {
		switch action.Kind {
		case config.ActionCreate:
			if action.Path == "" {
				errs = append(errs, fmt.Sprintf("action %d: create action has no target path", i))
			}
			if action.Content == nil {
				errs = append(errs, fmt.Sprintf("action %d: create %q has no content", i, action.Path))
			}
			if action.Conflict == nil {
				errs = append(errs, fmt.Sprintf("action %d: create %q declares no conflict policy", i, action.Path))
			}
		case config.ActionAppend:
			if action.Path == "" {
				errs = append(errs, fmt.Sprintf("action %d: append action has no target path", i))
			}
			if action.Content == nil {
				errs = append(errs, fmt.Sprintf("action %d: append %q has no content", i, action.Path))
			}
		default:
			if _, ok := r.handlers[action.Kind]; !ok {
				errs = append(errs, fmt.Sprintf("action %d: no handler registered for action kind %q", i, action.Kind))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("blueprint for module '%s' failed validation:\n- %s", bp.ModuleID, strings.Join(errs, "\n- "))
	}
	return nil
}
