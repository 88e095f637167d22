// Package engine is the run orchestrator. It turns a genome into a
// dependency graph, schedules it into a hierarchical plan, and drives the
// executor through the plan with fail-fast semantics: the first module
// failure aborts the run, while everything committed before it stays on disk.
package engine
