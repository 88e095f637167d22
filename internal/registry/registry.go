package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/scaffgo/internal/config"
	"github.com/vk/scaffgo/internal/vfs"
)

// HandlerFunc executes one opaque action. Handlers read and write exclusively
// through the module's VFS; side effects that cannot be staged as files must
// be registered with fs.Defer so they stay inside the all-or-nothing
// contract.
type HandlerFunc func(ctx context.Context, fs *vfs.VFS, action *config.Action, params *config.MergedParams) error

// ActionSet is the interface a bundle of handlers implements to be
// registered at application start.
type ActionSet interface {
	Register(r *Registry)
}

// Registry maps action kinds to their handlers for a single application
// instance.
type Registry struct {
	handlers map[string]HandlerFunc
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// RegisterAction registers a handler for an action kind. Registering the
// same kind twice is a programmer error.
func (r *Registry) RegisterAction(kind string, fn HandlerFunc) {
	if _, exists := r.handlers[kind]; exists {
		panic(fmt.Sprintf("action handler for kind '%s' already registered", kind))
	}
	if kind == config.ActionCreate || kind == config.ActionAppend {
		panic(fmt.Sprintf("action kind '%s' is built into the executor and cannot be overridden", kind))
	}
	slog.Debug("Registering action handler.", "kind", kind)
	r.handlers[kind] = fn
}

// Lookup returns the handler for an action kind.
func (r *Registry) Lookup(kind string) (HandlerFunc, bool) {
	fn, ok := r.handlers[kind]
	return fn, ok
}
