// Package app wires the application together: configuration, logging, the
// genome loader, the module store, the action registry, and the engine. It
// owns the process lifecycle between CLI parsing and run completion.
package app
