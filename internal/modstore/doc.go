// Package modstore serves module manifests to the engine. The file-backed
// store resolves a module id to a manifest directory, decodes its
// configuration and blueprint once, and caches the result for the lifetime
// of the run.
package modstore
