package module

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/danpasecinic/inverter/internal/binding"
)

// Node is a compiled view of a module: its own providers and its imports.
// Key identifies the module; nodes with equal keys are the same module.
type Node interface {
	Key() any
	Name() string
	Providers() []*binding.Provider
	Imports() []Node
}

// VisitFunc is called once per import edge. Edges are reported in the order a
// depth-first walk last reaches them, imported modules before importers.
type VisitFunc func(name, parent string)

// RootName is the parent name reported for modules imported by a container.
const RootName = "Container"

type edge struct {
	module, parent any
}

// Compile flattens root into a provider list. Imports come before the importing
// module; a provider reached more than once keeps only its last position. The
// root itself is not reported to visit.
//
// The graph is walked backwards, own providers before imports and imports in
// reverse, so the first time a module is reached is the last time a forward walk
// would reach it. Every module is expanded once.
func Compile(root Node, visit VisitFunc) []*binding.Provider {
	set := orderedmap.New[string, *binding.Provider]()
	seen := map[any]bool{root.Key(): true}
	edges := make(map[edge]bool)

	type report struct{ name, parent string }
	var reports []report

	var traverse func(n Node)
	traverse = func(n Node) {
		providers := n.Providers()
		for i := len(providers) - 1; i >= 0; i-- {
			p := providers[i]
			if _, ok := set.Get(p.ID); !ok {
				set.Set(p.ID, p)
			}
		}

		imports := n.Imports()
		for i := len(imports) - 1; i >= 0; i-- {
			imp := imports[i]
			if imp == nil {
				continue
			}
			e := edge{module: imp.Key(), parent: n.Key()}
			if !edges[e] {
				edges[e] = true
				reports = append(reports, report{imp.Name(), n.Name()})
			}
			if seen[imp.Key()] {
				continue
			}
			seen[imp.Key()] = true
			traverse(imp)
		}
	}
	traverse(root)

	if visit != nil {
		for i := len(reports) - 1; i >= 0; i-- {
			visit(reports[i].name, reports[i].parent)
		}
	}

	out := make([]*binding.Provider, 0, set.Len())
	for pair := set.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	slices.Reverse(out)
	return out
}
