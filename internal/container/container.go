package container

import (
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/danpasecinic/inverter/internal/binding"
	"github.com/danpasecinic/inverter/internal/token"
)

type ResolveHook func(key *token.Key, duration time.Duration, err error)

type RegisterHook func(p *binding.Provider)

type Container struct {
	store  *Store
	parent *Container
	flight singleflight.Group
	logger *slog.Logger
	owner  any

	onResolve  []ResolveHook
	onRegister []RegisterHook
}

// Config configures a container. Owner is an opaque handle returned by Owner,
// used to find the public container a running factory belongs to.
type Config struct {
	Logger     *slog.Logger
	Parent     *Container
	Owner      any
	OnResolve  []ResolveHook
	OnRegister []RegisterHook
}

func New(cfg *Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Container{
		store:      NewStore(),
		parent:     cfg.Parent,
		logger:     logger,
		owner:      cfg.Owner,
		onResolve:  cfg.OnResolve,
		onRegister: cfg.OnRegister,
	}
}

func (c *Container) Parent() *Container {
	return c.parent
}

func (c *Container) Owner() any {
	return c.owner
}

// Bind registers p in this container only. Values are stored as is, factories
// stay pending until a resolution needs them. Replacing a single binding makes
// every value cached from it stale, in this container and in its descendants.
func (c *Container) Bind(p *binding.Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.Kind == binding.KindValue {
		c.store.BindValue(p)
	} else {
		c.store.BindFactory(p)
	}

	c.logger.Debug("provider registered",
		"token", p.Key.Description(),
		"kind", p.Kind.String(),
		"scope", p.Scope.String(),
	)
	for _, hook := range c.onRegister {
		hook(p)
	}
	return nil
}

// Has reports whether key is bound here or in any ancestor.
func (c *Container) Has(key *token.Key) bool {
	for n := c; n != nil; n = n.parent {
		if n.store.Has(key) {
			return true
		}
	}
	return false
}

// stamp is the newest binding stamp for key from c up to the nearest container
// that binds it. A cached value is reused only while this is unchanged.
func (c *Container) stamp(key *token.Key) uint64 {
	var newest uint64
	for n := c; n != nil; n = n.parent {
		newest = max(newest, n.store.Stamp(key))
		if n.store.Has(key) {
			break
		}
	}
	return newest
}

func (c *Container) cached(key *token.Key) (any, bool) {
	return c.store.Fresh(key, c.stamp(key))
}

func (c *Container) HasLocal(key *token.Key) bool {
	return c.store.Has(key)
}

func (c *Container) Size() int {
	return c.store.Size()
}

func (c *Container) Keys() []*token.Key {
	return c.store.Keys()
}

func (c *Container) Entries() []Entry {
	return c.store.Entries()
}

// Providers returns every provider visible from c, ancestors first.
func (c *Container) Providers() []*binding.Provider {
	var chain []*Container
	for n := c; n != nil; n = n.parent {
		chain = append(chain, n)
	}

	var out []*binding.Provider
	for i := len(chain) - 1; i >= 0; i-- {
		for _, e := range chain[i].store.Entries() {
			out = append(out, e.Providers...)
		}
	}
	return out
}

func (c *Container) callResolveHooks(key *token.Key, duration time.Duration, err error) {
	for _, hook := range c.onResolve {
		hook(key, duration, err)
	}
}
