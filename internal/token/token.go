package token

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

var counter atomic.Uint64

// Key is the identity of a dependency. Two keys are the same dependency only if
// they are the same pointer; the description is for diagnostics.
type Key struct {
	id          uint64
	description string
	def         any
	hasDefault  bool
	multi       bool
}

func New(description string) *Key {
	return &Key{
		id:          counter.Add(1),
		description: description,
	}
}

func (k *Key) ID() uint64 {
	return k.id
}

func (k *Key) Description() string {
	return k.description
}

func (k *Key) Multi() bool {
	return k.multi
}

// Default returns the fallback value used when nothing in the hierarchy provides
// the key. Multi keys always have one: the empty list unless a default was set
// before the multi modifier.
func (k *Key) Default() (any, bool) {
	if k.multi {
		if k.hasDefault {
			return []any{k.def}, true
		}
		return []any{}, true
	}
	return k.def, k.hasDefault
}

func (k *Key) HasDefault() bool {
	return k.hasDefault
}

// String is unique per key and is used where a string identity is needed.
func (k *Key) String() string {
	return k.description + "#" + strconv.FormatUint(k.id, 10)
}

func (k *Key) WithDefault(value any) (*Key, error) {
	if k.hasDefault {
		return nil, &ModifierError{
			Key:    k,
			Reason: fmt.Sprintf("Token %q already has default value", k.description),
		}
	}

	next := k.clone()
	next.def = value
	next.hasDefault = true
	return next, nil
}

func (k *Key) WithMulti() (*Key, error) {
	if k.multi {
		return nil, &ModifierError{
			Key:    k,
			Reason: fmt.Sprintf("Token %q is already multi", k.description),
		}
	}

	next := k.clone()
	next.multi = true
	return next, nil
}

func (k *Key) clone() *Key {
	return &Key{
		id:          counter.Add(1),
		description: k.description,
		def:         k.def,
		hasDefault:  k.hasDefault,
		multi:       k.multi,
	}
}

type ModifierError struct {
	Key    *Key
	Reason string
}

func (e *ModifierError) Error() string {
	return e.Reason
}

// Declaration is a key as it appears in an inject list.
type Declaration struct {
	Key      *Key
	Optional bool
}

func Required(k *Key) Declaration {
	return Declaration{Key: k}
}

func Optional(k *Key) Declaration {
	return Declaration{Key: k, Optional: true}
}
