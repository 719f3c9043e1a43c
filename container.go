package inverter

import (
	"context"
	"time"

	"github.com/danpasecinic/inverter/internal/binding"
	"github.com/danpasecinic/inverter/internal/container"
	"github.com/danpasecinic/inverter/internal/token"
)

// Config lists what a container binds. Modules are compiled first, imports
// before importers; Providers are bound after them and shadow module bindings.
type Config struct {
	Providers []Provider
	Modules   []*Module
}

// Container resolves tokens from its own bindings and, failing that, from its
// ancestors. It is safe for concurrent use.
type Container struct {
	internal *container.Container
	config   *containerConfig
	parent   *Container
}

// New builds a root container.
func New(cfg Config, opts ...Option) (*Container, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return build(cfg, config, nil)
}

func MustNew(cfg Config, opts ...Option) *Container {
	c, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Child builds a container whose lookups fall back to c. The child inherits c's
// logger and observers; opts are applied on top.
func (c *Container) Child(cfg Config, opts ...Option) (*Container, error) {
	config := c.config.inherit()
	for _, opt := range opts {
		opt(config)
	}
	return build(cfg, config, c)
}

func (c *Container) MustChild(cfg Config, opts ...Option) *Container {
	child, err := c.Child(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return child
}

func build(cfg Config, config *containerConfig, parent *Container) (*Container, error) {
	start := time.Now()
	hooks := config.hooks()

	internalCfg := &container.Config{
		Logger:     config.logger,
		OnResolve:  resolveHooks(hooks.onResolve),
		OnRegister: registerHooks(hooks.onRegister),
	}
	if parent != nil {
		internalCfg.Parent = parent.internal
	}

	c := &Container{
		config: config,
		parent: parent,
	}
	internalCfg.Owner = c
	c.internal = container.New(internalCfg)

	providers, err := compile(cfg, func(name, parent string) {
		for _, hook := range hooks.onModule {
			hook(name, parent)
		}
	})
	if err != nil {
		return nil, err
	}

	for _, p := range providers {
		if err := c.internal.Bind(p); err != nil {
			return nil, errInvalidProvider(p.Key.Description(), err)
		}
	}

	d := time.Since(start)
	config.logger.Debug("container ready", "size", c.internal.Size(), "child", parent != nil)
	for _, hook := range hooks.onReady {
		hook(c.internal.Size(), d)
	}
	return c, nil
}

func resolveHooks(hooks []ResolveHook) []container.ResolveHook {
	out := make([]container.ResolveHook, len(hooks))
	for i, hook := range hooks {
		out[i] = func(key *token.Key, d time.Duration, err error) {
			hook(key.Description(), d, wrapError(err))
		}
	}
	return out
}

func registerHooks(hooks []RegisterHook) []container.RegisterHook {
	out := make([]container.RegisterHook, len(hooks))
	for i, hook := range hooks {
		out[i] = func(p *binding.Provider) {
			hook(p.Key.Description(), p.Kind.String(), p.Scope)
		}
	}
	return out
}

func (c *Container) Parent() *Container {
	return c.parent
}

// Bind binds providers into c after construction. A provider that was already
// bound here replaces its earlier binding; for multi tokens it keeps its slot.
// Values cached from a replaced binding, here or in a descendant, are rebuilt
// on their next resolution.
func (c *Container) Bind(providers ...Provider) error {
	for _, p := range providers {
		if err := p.validate(); err != nil {
			return err
		}
	}
	for _, p := range providers {
		if err := c.internal.Bind(p.binding); err != nil {
			return errInvalidProvider(p.Token(), err)
		}
	}
	return nil
}

// Has reports whether dep is bound in c or any ancestor. Defaults do not count.
func (c *Container) Has(dep Dependency) bool {
	if dep == nil {
		return false
	}
	key := dep.declaration().Key
	return key != nil && c.internal.Has(key)
}

// Size is the number of tokens bound in c itself.
func (c *Container) Size() int {
	return c.internal.Size()
}

// Tokens returns the descriptions of the tokens bound in c, in binding order.
func (c *Container) Tokens() []string {
	return container.Descriptions(c.internal.Keys())
}

func (c *Container) resolve(ctx context.Context, decl token.Declaration) (any, error) {
	return c.internal.Resolve(ctx, decl, nil)
}
