// Package scheduler turns a validated dependency graph into an ordered
// execution plan. It batches modules with Kahn's algorithm, then re-linearizes
// the batches so the category hierarchy (framework, adapter, connector,
// feature) holds even where the graph does not encode it.
package scheduler
