package inverter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/danpasecinic/inverter/internal/binding"
	"github.com/danpasecinic/inverter/internal/container"
)

// BindingInfo describes one token bound in a container of the hierarchy.
// Level is 0 for the container itself, 1 for its parent, and so on.
type BindingInfo struct {
	Token        string
	Kind         string
	Scope        string
	Multi        bool
	Providers    int
	Dependencies []string
	Dependents   []string
	Cached       bool
	Level        int
}

// Bindings lists every binding visible from c, c's own first. Dependents are
// the tokens whose providers, as seen from c, inject the binding.
func (c *Container) Bindings() []BindingInfo {
	g, keys := dependencyGraph(c.internal.Providers())

	var out []BindingInfo
	level := 0
	for n := c.internal; n != nil; n = n.Parent() {
		for _, e := range n.Entries() {
			info := bindingInfo(e, level)
			for _, id := range g.Dependents(e.Key.String()) {
				info.Dependents = append(info.Dependents, keys[id].Description())
			}
			out = append(out, info)
		}
		level++
	}
	return out
}

func bindingInfo(e container.Entry, level int) BindingInfo {
	info := BindingInfo{
		Token:     e.Key.Description(),
		Multi:     e.Key.Multi(),
		Providers: len(e.Providers),
		Cached:    e.Cached,
		Level:     level,
	}

	seen := make(map[string]bool)
	for _, p := range e.Providers {
		for _, decl := range p.Inject {
			d := decl.Key.Description()
			if decl.Optional {
				d += "?"
			}
			if !seen[d] {
				seen[d] = true
				info.Dependencies = append(info.Dependencies, d)
			}
		}
	}

	last := e.Providers[len(e.Providers)-1]
	info.Kind = last.Kind.String()
	if last.Kind == binding.KindFactory {
		info.Scope = last.Scope.String()
	}
	if info.Multi {
		info.Kind = "multi"
		info.Scope = ""
	}
	return info
}

func (c *Container) PrintBindings() {
	c.FprintBindings(os.Stdout)
}

// FprintBindings renders Bindings as a table. A filled dot marks a token whose
// value is already cached.
func (c *Container) FprintBindings(w io.Writer) {
	bindings := c.Bindings()
	if len(bindings) == 0 {
		_, _ = fmt.Fprintln(w, "(empty container)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"", "Token", "Kind", "Scope", "Providers", "Depends on", "Used by", "Level"})

	for _, b := range bindings {
		status := "○"
		if b.Cached {
			status = "●"
		}
		t.AppendRow(table.Row{
			status, b.Token, b.Kind, b.Scope, b.Providers, strings.Join(b.Dependencies, ", "), strings.Join(b.Dependents, ", "), b.Level,
		})
	}
	t.Render()
}

func (c *Container) SprintBindings() string {
	var sb strings.Builder
	c.FprintBindings(&sb)
	return sb.String()
}

// FprintGraphDOT renders the declared dependencies visible from c in Graphviz
// DOT format, dependencies before dependents unless the graph has a cycle.
func (c *Container) FprintGraphDOT(w io.Writer) {
	g, keys := dependencyGraph(c.internal.Providers())
	nodes := g.Nodes()
	if !g.HasCycle() {
		nodes, _ = g.TopologicalSort()
	}

	_, _ = fmt.Fprintln(w, "digraph dependencies {")
	_, _ = fmt.Fprintln(w, "  rankdir=LR;")
	_, _ = fmt.Fprintln(w, "  node [shape=box];")

	for _, id := range nodes {
		key := keys[id]
		style := ""
		if key.Multi() {
			style = ", shape=box3d"
		}
		_, _ = fmt.Fprintf(w, "  %q [label=%q%s];\n", id, key.Description(), style)
	}

	_, _ = fmt.Fprintln(w)

	for _, id := range nodes {
		for _, dep := range g.Dependencies(id) {
			_, _ = fmt.Fprintf(w, "  %q -> %q;\n", id, dep)
		}
	}

	_, _ = fmt.Fprintln(w, "}")
}

func (c *Container) SprintGraphDOT() string {
	var sb strings.Builder
	c.FprintGraphDOT(&sb)
	return sb.String()
}
