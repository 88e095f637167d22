package dag

import (
	"fmt"
	"sort"

	"github.com/vk/scaffgo/internal/config"
)

// Node is a single vertex in the dependency graph, wrapping one module.
type Node struct {
	// ID is the module's unique identifier.
	ID string
	// Module is the wrapped module declaration.
	Module *config.Module
	// Deps holds the set of nodes this node depends on (predecessors).
	Deps map[string]*Node
	// Dependents holds the set of nodes that depend on this node (successors).
	Dependents map[string]*Node
}

// InDegree returns the number of direct dependencies.
func (n *Node) InDegree() int {
	return len(n.Deps)
}

// OutDegree returns the number of direct dependents.
func (n *Node) OutDegree() int {
	return len(n.Dependents)
}

// DepIDs returns the node's dependency ids in sorted order.
func (n *Node) DepIDs() []string {
	ids := make([]string, 0, len(n.Deps))
	for id := range n.Deps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Graph is the validated dependency graph over a genome's module list.
type Graph struct {
	// Nodes provides ID-based lookup for every node.
	Nodes map[string]*Node

	// order preserves the genome's declaration order. It is the
	// deterministic iteration order for planning and traversal.
	order []string
}

// Order returns module ids in genome declaration order.
func (g *Graph) Order() []string {
	return g.order
}

// addNode registers a node for the given module. Adding an existing id again
// is a no-op, mirroring the first-wins declaration semantics.
func (g *Graph) addNode(m *config.Module) {
	if _, ok := g.Nodes[m.ID]; ok {
		return
	}
	g.Nodes[m.ID] = &Node{
		ID:         m.ID,
		Module:     m,
		Deps:       make(map[string]*Node),
		Dependents: make(map[string]*Node),
	}
	g.order = append(g.order, m.ID)
}

// addEdge records that `toID` depends on `fromID`.
func (g *Graph) addEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential dependency not allowed: %s -> %s", fromID, fromID)
	}

	fromNode, ok := g.Nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.Nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.Deps[fromID] = fromNode
	fromNode.Dependents[toID] = toNode
	return nil
}

// findCycles checks for circular dependencies using depth-first search with
// an explicit recursion stack. Revisiting a node still on the stack records
// the cycle as the path slice from that node's first occurrence through the
// current node.
func (g *Graph) findCycles() [][]string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)

		for _, depID := range g.Nodes[id].DepIDs() {
			if onStack[depID] {
				start := 0
				for i, sid := range stack {
					if sid == depID {
						start = i
						break
					}
				}
				cycle := make([]string, len(stack)-start)
				copy(cycle, stack[start:])
				cycles = append(cycles, cycle)
				continue
			}
			if !visited[depID] {
				visit(depID)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[id] = false
	}

	for _, id := range g.order {
		if !visited[id] {
			visit(id)
		}
	}
	return cycles
}
