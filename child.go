package inverter

import (
	"context"

	"github.com/danpasecinic/inverter/internal/container"
)

// ChildFactory builds a fresh child container on every call and resolves its
// root token there. Scoped values are therefore built once per call.
type ChildFactory[T any] func(ctx context.Context) (T, error)

// NewChildFactory returns a ChildFactory for children of the container r
// resolves against: the container itself, or, inside a factory, the container
// the factory runs in. Each child binds cfg and resolves tok.
//
// The wiring tok reaches through cfg and the existing hierarchy is validated
// once, here, so a broken child configuration fails at startup rather than on
// the first call.
func NewChildFactory[T any](r Resolver, tok Token[T], cfg Config, opts ...Option) (ChildFactory[T], error) {
	if err := checkToken(tok, false); err != nil {
		return nil, err
	}
	parent, ok := owner(r)
	if !ok {
		return nil, errInvalidToken("cannot create child containers from this resolver")
	}

	providers, err := compile(cfg, nil)
	if err != nil {
		return nil, err
	}
	if err := validateFrom(append(parent.internal.Providers(), providers...), tok.key); err != nil {
		return nil, err
	}
	parent.config.logger.Debug("child factory ready", "token", tok.Description(), "providers", len(providers))

	return func(ctx context.Context) (T, error) {
		child, err := parent.Child(cfg, opts...)
		if err != nil {
			var zero T
			return zero, err
		}
		return Get(ctx, child, tok)
	}, nil
}

// owner is the public container r resolves against.
func owner(r Resolver) (*Container, bool) {
	switch v := r.(type) {
	case *Container:
		return v, v != nil
	case *resolverAdapter:
		if f, ok := v.frame.(interface{ Container() *container.Container }); ok {
			c, ok := f.Container().Owner().(*Container)
			return c, ok
		}
	}
	return nil, false
}
