package inverter

import (
	"github.com/danpasecinic/inverter/internal/token"
)

// Dependency is anything that can appear in an inject list: a Token, or the
// optional form of one.
type Dependency interface {
	declaration() token.Declaration
}

// Token identifies a dependency whose values have type T. Tokens are compared
// by identity, never by description: two NewToken calls with the same
// description are unrelated. The zero Token is invalid.
type Token[T any] struct {
	key *token.Key
}

func NewToken[T any](description string) Token[T] {
	return Token[T]{key: token.New(description)}
}

func (t Token[T]) Description() string {
	if t.key == nil {
		return ""
	}
	return t.key.Description()
}

func (t Token[T]) String() string {
	return t.Description()
}

// Multi reports whether the token aggregates every provider in the hierarchy
// instead of resolving to one value.
func (t Token[T]) Multi() bool {
	return t.key != nil && t.key.Multi()
}

func (t Token[T]) IsZero() bool {
	return t.key == nil
}

// Optional returns a declaration that resolves to the zero value instead of
// failing when nothing provides the token.
func (t Token[T]) Optional() Dependency {
	return optional{key: t.key}
}

func (t Token[T]) declaration() token.Declaration {
	return token.Required(t.key)
}

type optional struct {
	key *token.Key
}

func (o optional) declaration() token.Declaration {
	return token.Optional(o.key)
}

// WithDefault returns a new token that resolves to value when nothing in the
// hierarchy provides it. A token can carry a default only once.
func WithDefault[T any](tok Token[T], value T) (Token[T], error) {
	if tok.key == nil {
		return Token[T]{}, errInvalidToken("cannot set a default on a zero token")
	}
	key, err := tok.key.WithDefault(value)
	if err != nil {
		return Token[T]{}, wrapError(err)
	}
	return Token[T]{key: key}, nil
}

// WithMulti returns a new multi token. Resolving it collects every provider in
// the container and its ancestors; with no providers it resolves to an empty
// list, or to a one-element list holding the default set before WithMulti.
func WithMulti[T any](tok Token[T]) (Token[T], error) {
	if tok.key == nil {
		return Token[T]{}, errInvalidToken("cannot make a zero token multi")
	}
	key, err := tok.key.WithMulti()
	if err != nil {
		return Token[T]{}, wrapError(err)
	}
	return Token[T]{key: key}, nil
}

func MustDefault[T any](tok Token[T], value T) Token[T] {
	t, err := WithDefault(tok, value)
	if err != nil {
		panic(err)
	}
	return t
}

func MustMulti[T any](tok Token[T]) Token[T] {
	t, err := WithMulti(tok)
	if err != nil {
		panic(err)
	}
	return t
}
