package inverter

import (
	"maps"

	"github.com/danpasecinic/inverter/internal/binding"
	imodule "github.com/danpasecinic/inverter/internal/module"
)

// Extension produces extra providers for a module from caller arguments.
type Extension func(args ...any) ([]Provider, error)

type ModuleConfig struct {
	Name      string
	Providers []Provider
	Imports   []*Module
	Exports   map[string]Dependency
	Extend    map[string]Extension
}

// Module groups providers and the modules they depend on. Modules are
// immutable: Extend returns a new module.
type Module struct {
	name       string
	providers  []Provider
	imports    []*Module
	exports    map[string]Dependency
	extensions map[string]Extension
}

func NewModule(cfg ModuleConfig) *Module {
	return &Module{
		name:       cfg.Name,
		providers:  append([]Provider(nil), cfg.Providers...),
		imports:    append([]*Module(nil), cfg.Imports...),
		exports:    maps.Clone(cfg.Exports),
		extensions: maps.Clone(cfg.Extend),
	}
}

func (m *Module) Name() string {
	return m.name
}

// Exports returns a copy of the module's named tokens.
func (m *Module) Exports() map[string]Dependency {
	return maps.Clone(m.exports)
}

// Extend runs the named extension and returns a new module with its providers
// appended. Every call creates new providers, so extending twice binds twice.
func (m *Module) Extend(name string, args ...any) (*Module, error) {
	ext, ok := m.extensions[name]
	if !ok {
		return nil, errUnknownExtension(m.name, name)
	}

	extra, err := ext(args...)
	if err != nil {
		return nil, err
	}

	next := *m
	next.providers = append(append([]Provider(nil), m.providers...), extra...)
	return &next, nil
}

func (m *Module) MustExtend(name string, args ...any) *Module {
	next, err := m.Extend(name, args...)
	if err != nil {
		panic(err)
	}
	return next
}

// ExportedToken returns the token m exports under name.
func ExportedToken[T any](m *Module, name string) (Token[T], error) {
	dep, ok := m.exports[name]
	if !ok {
		return Token[T]{}, errInvalidToken("module " + `"` + m.name + `"` + " does not export " + `"` + name + `"`)
	}
	tok, ok := dep.(Token[T])
	if !ok {
		return Token[T]{}, errInvalidToken("module " + `"` + m.name + `"` + " export " + `"` + name + `"` + " has a different type")
	}
	return tok, nil
}

// moduleNode exposes a module to the compiler.
type moduleNode struct {
	key       any
	name      string
	providers []Provider
	imports   []*Module
}

func (n moduleNode) Key() any {
	return n.key
}

func (n moduleNode) Name() string {
	return n.name
}

func (n moduleNode) Providers() []*binding.Provider {
	out := make([]*binding.Provider, 0, len(n.providers))
	for _, p := range n.providers {
		if p.binding != nil {
			out = append(out, p.binding)
		}
	}
	return out
}

func (n moduleNode) Imports() []imodule.Node {
	out := make([]imodule.Node, 0, len(n.imports))
	for _, m := range n.imports {
		if m == nil {
			continue
		}
		out = append(out, moduleNode{key: m, name: m.name, providers: m.providers, imports: m.imports})
	}
	return out
}

// compile flattens modules and then explicit providers into binding order.
func compile(cfg Config, onModule func(name, parent string)) ([]*binding.Provider, error) {
	for _, p := range cfg.Providers {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	if err := validateModules(cfg.Modules, make(map[*Module]bool)); err != nil {
		return nil, err
	}

	root := moduleNode{key: imodule.RootName, name: imodule.RootName, providers: cfg.Providers, imports: cfg.Modules}
	return imodule.Compile(root, onModule), nil
}

func validateModules(modules []*Module, seen map[*Module]bool) error {
	for _, m := range modules {
		if m == nil || seen[m] {
			continue
		}
		seen[m] = true
		for _, p := range m.providers {
			if err := p.validate(); err != nil {
				return err
			}
		}
		if err := validateModules(m.imports, seen); err != nil {
			return err
		}
	}
	return nil
}
