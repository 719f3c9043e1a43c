package inverter

import (
	"context"
	"errors"

	"github.com/danpasecinic/inverter/internal/binding"
	"github.com/danpasecinic/inverter/internal/token"
)

// FactoryFunc produces a value for a token. r resolves further dependencies on
// behalf of the container the factory runs against.
type FactoryFunc[T any] func(ctx context.Context, r Resolver) (T, error)

// Provider declares how one token is produced. Its identity is fixed when it is
// created: binding the same Provider twice replaces its earlier binding instead
// of adding a second one.
type Provider struct {
	binding *binding.Provider
	err     error
}

func (p Provider) Token() string {
	if p.binding == nil || p.binding.Key == nil {
		return ""
	}
	return p.binding.Key.Description()
}

func (p Provider) ID() string {
	if p.binding == nil {
		return ""
	}
	return p.binding.ID
}

func (p Provider) Scope() Scope {
	if p.binding == nil {
		return Scoped
	}
	return p.binding.Scope
}

func (p Provider) validate() error {
	if p.err != nil {
		return p.err
	}
	if p.binding == nil {
		return errInvalidProvider("", errors.New("empty provider"))
	}
	if err := p.binding.Validate(); err != nil {
		return errInvalidProvider(p.Token(), err)
	}
	return nil
}

type ProviderOption func(*providerConfig)

type providerConfig struct {
	inject []Dependency
	scope  Scope
}

// Inject declares dependencies that are resolved, in order, before the factory
// runs. The factory reads the same values back through Get.
func Inject(deps ...Dependency) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.inject = append(cfg.inject, deps...)
	}
}

func WithScope(s Scope) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.scope = s
	}
}

// Value binds tok to a fixed value.
func Value[T any](tok Token[T], value T) Provider {
	return Provider{binding: binding.NewValue(tok.key, value)}
}

// Factory binds tok to fn. The factory runs lazily, on first resolution, and its
// result is cached according to the scope (Scoped by default).
func Factory[T any](tok Token[T], fn FactoryFunc[T], opts ...ProviderOption) Provider {
	cfg := &providerConfig{scope: Scoped}
	for _, opt := range opts {
		opt(cfg)
	}

	inject, err := declarations(tok.Description(), cfg.inject)
	if err != nil {
		return Provider{err: err}
	}

	var wrapped binding.FactoryFunc
	if fn != nil {
		wrapped = func(ctx context.Context, r binding.Resolver) (any, error) {
			return fn(ctx, &resolverAdapter{frame: r})
		}
	}

	return Provider{binding: binding.NewFactory(tok.key, wrapped, inject, cfg.scope)}
}

func declarations(desc string, deps []Dependency) ([]token.Declaration, error) {
	out := make([]token.Declaration, 0, len(deps))
	for _, dep := range deps {
		if dep == nil {
			return nil, errInvalidProvider(desc, errors.New("nil dependency"))
		}
		decl := dep.declaration()
		if decl.Key == nil {
			return nil, errInvalidProvider(desc, errors.New("zero token in inject list"))
		}
		out = append(out, decl)
	}
	return out, nil
}
