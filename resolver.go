package inverter

import (
	"context"

	"github.com/danpasecinic/inverter/internal/binding"
	"github.com/danpasecinic/inverter/internal/reflect"
	"github.com/danpasecinic/inverter/internal/token"
)

// Resolver resolves tokens. It is implemented by *Container and by the resolver
// handed to a running factory, which also carries the resolution stack used for
// cycle detection.
type Resolver interface {
	resolve(ctx context.Context, decl token.Declaration) (any, error)
}

type resolverAdapter struct {
	frame binding.Resolver
}

func (r *resolverAdapter) resolve(ctx context.Context, decl token.Declaration) (any, error) {
	return r.frame.Resolve(ctx, decl)
}

// Get resolves a single-valued token.
func Get[T any](ctx context.Context, r Resolver, tok Token[T]) (T, error) {
	var zero T
	if err := checkToken(tok, false); err != nil {
		return zero, err
	}

	v, err := r.resolve(ctx, token.Required(tok.key))
	if err != nil {
		return zero, wrapError(err)
	}
	return cast[T](tok, v)
}

// GetAll resolves a multi token into the values of every provider, the
// resolving container's own first, then each ancestor's.
func GetAll[T any](ctx context.Context, r Resolver, tok Token[T]) ([]T, error) {
	if err := checkToken(tok, true); err != nil {
		return nil, err
	}

	v, err := r.resolve(ctx, token.Required(tok.key))
	if err != nil {
		return nil, wrapError(err)
	}

	list, _ := v.([]any)
	out := make([]T, 0, len(list))
	for _, item := range list {
		typed, err := cast[T](tok, item)
		if err != nil {
			return nil, err
		}
		out = append(out, typed)
	}
	return out, nil
}

// GetOptional resolves tok, or returns an absent Optional when nothing
// provides it. Other failures, such as a cycle or a failing factory, are still
// returned.
func GetOptional[T any](ctx context.Context, r Resolver, tok Token[T]) (Optional[T], error) {
	if err := checkToken(tok, false); err != nil {
		return None[T](), err
	}

	v, err := r.resolve(ctx, token.Optional(tok.key))
	if err != nil {
		return None[T](), wrapError(err)
	}
	if v == nil {
		if _, ok := tok.key.Default(); !ok && !has(r, tok.key) {
			return None[T](), nil
		}
	}

	typed, err := cast[T](tok, v)
	if err != nil {
		return None[T](), err
	}
	return Some(typed), nil
}

func MustGet[T any](ctx context.Context, r Resolver, tok Token[T]) T {
	v, err := Get(ctx, r, tok)
	if err != nil {
		panic(err)
	}
	return v
}

func MustGetAll[T any](ctx context.Context, r Resolver, tok Token[T]) []T {
	v, err := GetAll(ctx, r, tok)
	if err != nil {
		panic(err)
	}
	return v
}

func checkToken[T any](tok Token[T], multi bool) error {
	switch {
	case tok.key == nil:
		return errInvalidToken("cannot resolve a zero token")
	case multi && !tok.key.Multi():
		return errInvalidToken("Token " + quote(tok) + " is not multi, use Get")
	case !multi && tok.key.Multi():
		return errInvalidToken("Token " + quote(tok) + " is multi, use GetAll")
	}
	return nil
}

func cast[T any](tok Token[T], v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, errTypeMismatch(tok.Description(), reflect.TypeName[T](), reflect.TypeNameOf(v))
	}
	return typed, nil
}

func quote[T any](tok Token[T]) string {
	return `"` + tok.Description() + `"`
}

func has(r Resolver, key *token.Key) bool {
	switch v := r.(type) {
	case *Container:
		return v.internal.Has(key)
	case *resolverAdapter:
		if h, ok := v.frame.(interface{ Has(*token.Key) bool }); ok {
			return h.Has(key)
		}
	}
	return false
}

// Optional holds a value that may be absent.
type Optional[T any] struct {
	value   T
	present bool
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Optional[T]) Value() T {
	return o.value
}

func (o Optional[T]) Present() bool {
	return o.present
}

func (o Optional[T]) OrElse(defaultValue T) T {
	if o.present {
		return o.value
	}
	return defaultValue
}

func (o Optional[T]) OrElseFunc(fn func() T) T {
	if o.present {
		return o.value
	}
	return fn()
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}
