// Package resolver maps each module to the concrete location its blueprint
// executes against: the project root, a single monorepo package, or one or
// more applications. A module that fits nowhere in the project's topology
// resolves to no target and is skipped by the engine as a successful no-op.
package resolver
