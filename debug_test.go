package inverter_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/danpasecinic/inverter"
)

func TestPrintBindingsEmpty(t *testing.T) {
	t.Parallel()

	c := inverter.MustNew(inverter.Config{})

	var buf bytes.Buffer
	c.FprintBindings(&buf)

	if !strings.Contains(buf.String(), "empty container") {
		t.Errorf("expected empty container message, got: %s", buf.String())
	}
}

func debugContainer() (*inverter.Container, inverter.Token[*Config], inverter.Token[*Database]) {
	configToken := inverter.NewToken[*Config]("Config")
	dbToken := inverter.NewToken[*Database]("Database")

	c := inverter.MustNew(inverter.Config{Providers: []inverter.Provider{
		inverter.Value(configToken, &Config{Port: 8080}),
		inverter.Factory(dbToken, func(ctx context.Context, r inverter.Resolver) (*Database, error) {
			return &Database{}, nil
		}, inverter.Inject(configToken), inverter.WithScope(inverter.Singleton)),
	}})
	return c, configToken, dbToken
}

func TestPrintBindings(t *testing.T) {
	t.Parallel()

	c, _, _ := debugContainer()

	output := c.SprintBindings()
	for _, want := range []string{"Token", "Depends on", "Used by", "Config", "Database", "singleton", "factory", "value"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestPrintBindingsCachedMarker(t *testing.T) {
	t.Parallel()

	c, _, dbToken := debugContainer()

	if strings.Count(c.SprintBindings(), "●") != 1 {
		t.Errorf("expected only the value to be marked, got: %s", c.SprintBindings())
	}

	_ = inverter.MustGet(context.Background(), c, dbToken)

	if strings.Count(c.SprintBindings(), "●") != 2 {
		t.Errorf("expected both bindings to be marked, got: %s", c.SprintBindings())
	}
}

func TestBindingsHierarchy(t *testing.T) {
	t.Parallel()

	c, configToken, _ := debugContainer()
	plugins := inverter.MustMulti(inverter.NewToken[string]("Plugins"))
	child := c.MustChild(inverter.Config{Providers: []inverter.Provider{
		inverter.Value(plugins, "a"),
		inverter.Value(plugins, "b"),
		inverter.Value(configToken, &Config{Port: 9090}),
	}})

	bindings := child.Bindings()
	if len(bindings) != 4 {
		t.Fatalf("expected 4 bindings, got %d", len(bindings))
	}

	first := bindings[0]
	if first.Token != "Plugins" || first.Kind != "multi" || first.Providers != 2 || first.Level != 0 {
		t.Errorf("unexpected multi binding: %+v", first)
	}
	last := bindings[3]
	if last.Token != "Database" || last.Level != 1 || len(last.Dependencies) != 1 || last.Dependencies[0] != "Config" {
		t.Errorf("unexpected parent binding: %+v", last)
	}
}

func TestBindingsDependents(t *testing.T) {
	t.Parallel()

	c, _, _ := debugContainer()

	bindings := c.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(bindings))
	}
	for _, b := range bindings {
		switch b.Token {
		case "Config":
			if len(b.Dependents) != 1 || b.Dependents[0] != "Database" {
				t.Errorf("expected Config to be used by Database, got %v", b.Dependents)
			}
		case "Database":
			if len(b.Dependents) != 0 {
				t.Errorf("expected Database to have no dependents, got %v", b.Dependents)
			}
		}
	}
}

func TestPrintGraphDOT(t *testing.T) {
	t.Parallel()

	c, _, _ := debugContainer()

	var buf bytes.Buffer
	c.FprintGraphDOT(&buf)

	output := buf.String()
	if !strings.Contains(output, "digraph dependencies") {
		t.Errorf("expected digraph header, got: %s", output)
	}
	if !strings.Contains(output, "rankdir=LR") {
		t.Errorf("expected rankdir, got: %s", output)
	}
	if !strings.Contains(output, "->") {
		t.Errorf("expected edge, got: %s", output)
	}
	if strings.Index(output, `label="Config"`) > strings.Index(output, `label="Database"`) {
		t.Errorf("expected dependencies before dependents, got: %s", output)
	}
}

func TestPrintGraphDOTWithCycle(t *testing.T) {
	t.Parallel()

	a := inverter.NewToken[int]("A")
	b := inverter.NewToken[int]("B")
	c := inverter.MustNew(inverter.Config{Providers: []inverter.Provider{
		inverter.Factory(a, noop[int], inverter.Inject(b)),
		inverter.Factory(b, noop[int], inverter.Inject(a)),
	}})

	output := c.SprintGraphDOT()
	for _, want := range []string{`label="A"`, `label="B"`, "->"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if strings.Index(output, `label="A"`) > strings.Index(output, `label="B"`) {
		t.Errorf("expected insertion order for a cyclic graph, got: %s", output)
	}
}
