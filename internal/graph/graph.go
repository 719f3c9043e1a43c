package graph

import "sync"

// Graph is a dependency graph keyed by node id. Node order is insertion order so
// every traversal is deterministic.
type Graph struct {
	mu    sync.RWMutex
	order []string
	edges map[string][]string
}

func New() *Graph {
	return &Graph{
		edges: make(map[string][]string),
	}
}

// AddNode adds id with dependencies. Adding an existing id unions the edges, so
// a multi token declared by several providers depends on all of their inputs.
func (g *Graph) AddNode(id string, dependencies []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	existing, ok := g.edges[id]
	if !ok {
		g.order = append(g.order, id)
	}
	for _, dep := range dependencies {
		if !contains(existing, dep) {
			existing = append(existing, dep)
		}
	}
	g.edges[id] = existing
}

func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, exists := g.edges[id]
	return exists
}

func (g *Graph) Dependencies(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	deps := g.edges[id]
	result := make([]string, len(deps))
	copy(result, deps)
	return result
}

func (g *Graph) Dependents(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var dependents []string
	for _, nodeID := range g.order {
		if contains(g.edges[nodeID], id) {
			dependents = append(dependents, nodeID)
		}
	}
	return dependents
}

func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make([]string, len(g.order))
	copy(nodes, g.order)
	return nodes
}

func (g *Graph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.order)
}

// Missing returns every dependency that is not itself a node, paired with the
// first node that needs it.
func (g *Graph) Missing() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var missing []Edge
	seen := make(map[string]bool)

	for _, id := range g.order {
		for _, dep := range g.edges[id] {
			if _, exists := g.edges[dep]; !exists && !seen[dep] {
				missing = append(missing, Edge{From: id, To: dep})
				seen[dep] = true
			}
		}
	}

	return missing
}

type Edge struct {
	From string
	To   string
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
