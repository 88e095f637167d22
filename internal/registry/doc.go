// Package registry holds the action handlers available to blueprint
// execution. File-producing actions (create, append) are built into the
// executor; every other action kind dispatches to a handler registered here.
// The registry also performs structural blueprint validation so that defects
// like a create action without a conflict policy are caught before any
// execution begins.
package registry
