// Package dag builds and validates the module dependency graph. It turns the
// flat module list of a genome into a directed acyclic graph with forward and
// reverse adjacency, normalizes short dependency aliases, and rejects cycles
// and unresolved dependencies before any planning takes place.
package dag
