package inverter

import (
	"errors"

	"github.com/danpasecinic/inverter/internal/binding"
	"github.com/danpasecinic/inverter/internal/container"
	"github.com/danpasecinic/inverter/internal/graph"
	"github.com/danpasecinic/inverter/internal/token"
)

// Validate checks the declared wiring visible from c without running any
// factory: every required injected token must be provided somewhere in the
// hierarchy or carry a default, and injected dependencies must not form a
// cycle. Dependencies a factory resolves without declaring them are not seen.
func (c *Container) Validate() error {
	g, keys := dependencyGraph(c.internal.Providers())
	return validateGraph(g, keys)
}

// validateFrom is Validate restricted to the tokens root reaches.
func validateFrom(providers []*binding.Provider, root *token.Key) error {
	g, keys := dependencyGraph(providers)
	if !g.HasNode(root.String()) {
		if root.HasDefault() {
			return nil
		}
		return errValidationFailed(errNotProvided(&container.NotProvidedError{Stack: []*token.Key{root}}))
	}
	return validateGraph(reachable(g, root.String()), keys)
}

func validateGraph(g *graph.Graph, keys map[string]*token.Key) error {
	var errs []error
	for _, edge := range g.Missing() {
		from, to := keys[edge.From], keys[edge.To]
		if to.Multi() || to.HasDefault() {
			continue
		}
		errs = append(errs, errNotProvided(&container.NotProvidedError{Stack: []*token.Key{from, to}}))
	}

	reported := make(map[string]bool, g.Size())
	for _, scc := range g.DetectCycles() {
		path := g.FindCyclePath(scc[len(scc)-1])
		if len(path) == 0 || reported[path[0]] {
			continue
		}
		for _, id := range path {
			reported[id] = true
		}
		stack := make([]*token.Key, len(path))
		for i, id := range path {
			stack[i] = keys[id]
		}
		errs = append(errs, errCyclic(&container.CyclicError{Stack: stack}))
	}

	if len(errs) > 0 {
		return errValidationFailed(errors.Join(errs...))
	}
	return nil
}

// reachable is the part of g that root depends on, directly or not.
func reachable(g *graph.Graph, root string) *graph.Graph {
	sub := graph.New()
	queue := []string{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if sub.HasNode(id) || !g.HasNode(id) {
			continue
		}
		deps := g.Dependencies(id)
		sub.AddNode(id, deps)
		queue = append(queue, deps...)
	}
	return sub
}

// dependencyGraph builds the graph of declared dependencies, one node per
// token. Optional dependencies take part in cycle detection only when bound.
func dependencyGraph(providers []*binding.Provider) (*graph.Graph, map[string]*token.Key) {
	g := graph.New()
	keys := make(map[string]*token.Key)
	bound := make(map[*token.Key]bool, len(providers))
	for _, p := range providers {
		bound[p.Key] = true
	}

	for _, p := range providers {
		id := p.Key.String()
		keys[id] = p.Key

		deps := make([]string, 0, len(p.Inject))
		for _, decl := range p.Inject {
			if decl.Optional && !bound[decl.Key] {
				continue
			}
			depID := decl.Key.String()
			keys[depID] = decl.Key
			deps = append(deps, depID)
		}
		g.AddNode(id, deps)
	}
	return g, keys
}
