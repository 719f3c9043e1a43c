package binding

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/danpasecinic/inverter/internal/scope"
	"github.com/danpasecinic/inverter/internal/token"
)

// Resolver resolves declarations on behalf of a running factory. It is bound to
// the container the factory runs against and to the current resolution stack.
type Resolver interface {
	Resolve(ctx context.Context, decl token.Declaration) (any, error)
}

type FactoryFunc func(ctx context.Context, r Resolver) (any, error)

type Kind int

const (
	KindValue Kind = iota
	KindFactory
)

func (k Kind) String() string {
	if k == KindFactory {
		return "factory"
	}
	return "value"
}

// Provider is one declaration of how to produce a key. ID is fixed at declaration
// time so that binding the same provider twice targets the same slot.
type Provider struct {
	ID      string
	Key     *token.Key
	Kind    Kind
	Value   any
	Factory FactoryFunc
	Inject  []token.Declaration
	Scope   scope.Scope
}

var (
	ErrNoToken   = errors.New("provider has no token")
	ErrNoFactory = errors.New("factory provider has no function")
)

func NewValue(key *token.Key, value any) *Provider {
	return &Provider{
		ID:    uuid.NewString(),
		Key:   key,
		Kind:  KindValue,
		Value: value,
	}
}

func NewFactory(key *token.Key, fn FactoryFunc, inject []token.Declaration, s scope.Scope) *Provider {
	return &Provider{
		ID:      uuid.NewString(),
		Key:     key,
		Kind:    KindFactory,
		Factory: fn,
		Inject:  inject,
		Scope:   s,
	}
}

func (p *Provider) Validate() error {
	if p.Key == nil {
		return ErrNoToken
	}
	if p.Kind == KindFactory && p.Factory == nil {
		return ErrNoFactory
	}
	return nil
}
