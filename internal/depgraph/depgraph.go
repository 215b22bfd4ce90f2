// Package depgraph models the dependency relation between placeholder
// expressions (placeholder A references placeholder B) and detects cycles in
// it. Graphs are built transiently during validation and discarded.
package depgraph

import (
	"fmt"
	"sort"
	"strings"
)

// Graph is a directed graph of placeholder names. It is not safe for
// concurrent use; validation builds and queries one on a single goroutine.
type Graph struct {
	edges map[string][]string
	order []string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{edges: make(map[string][]string)}
}

// AddNode registers a node. Adding an existing node does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.edges[id]; ok {
		return
	}
	g.edges[id] = nil
	g.order = append(g.order, id)
}

// AddEdge records that from references to. Both nodes must already exist.
// Self-referential edges are legal; they are exactly the one-node cycles
// DetectCycle must report.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.edges[from]; !ok {
		return fmt.Errorf("source node not found: %s", from)
	}
	if _, ok := g.edges[to]; !ok {
		return fmt.Errorf("destination node not found: %s", to)
	}
	g.edges[from] = append(g.edges[from], to)
	return nil
}

// CycleError reports one dependency cycle by its member chain, first node
// repeated at the end.
type CycleError struct {
	Members []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected in placeholders: %s",
		strings.Join(e.Members, " -> "))
}

// frame is one node being explored plus the index of its next outgoing edge.
type frame struct {
	id   string
	next int
}

// DetectCycle runs a depth-first search over the whole graph and returns the
// first cycle found, or nil if the graph is acyclic. The search is iterative
// with an explicit frame stack, so pathologically deep dependency chains
// cannot overflow the goroutine stack. One cycle per exploration is enough;
// exhaustive enumeration is not attempted.
func (g *Graph) DetectCycle() *CycleError {
	visited := make(map[string]bool)
	onPath := make(map[string]bool)

	for _, root := range g.roots() {
		if visited[root] {
			continue
		}

		stack := []frame{{id: root}}
		onPath[root] = true
		visited[root] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := g.edges[top.id]

			if top.next >= len(deps) {
				onPath[top.id] = false
				stack = stack[:len(stack)-1]
				continue
			}

			dep := deps[top.next]
			top.next++

			if onPath[dep] {
				// Back-edge: the cycle is the path from dep up to the top
				// of the stack, closed by dep itself.
				return &CycleError{Members: cycleMembers(stack, dep)}
			}
			if visited[dep] {
				continue
			}

			visited[dep] = true
			onPath[dep] = true
			stack = append(stack, frame{id: dep})
		}
	}
	return nil
}

// roots returns all node IDs in insertion order with sorted edge lists, so
// detection output is deterministic.
func (g *Graph) roots() []string {
	for _, deps := range g.edges {
		sort.Strings(deps)
	}
	return g.order
}

// cycleMembers extracts the cycle chain from the current DFS stack: every
// frame from the first occurrence of start onward, then start again.
func cycleMembers(stack []frame, start string) []string {
	var members []string
	for i, f := range stack {
		if f.id == start {
			for _, m := range stack[i:] {
				members = append(members, m.id)
			}
			break
		}
	}
	return append(members, start)
}
