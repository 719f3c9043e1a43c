package container

import "github.com/danpasecinic/inverter/internal/token"

// Stack is the chain of keys being resolved by one call tree. It is immutable:
// Push returns a new stack sharing the old one as its tail, so concurrent
// branches of the same resolution never see each other's keys.
type Stack struct {
	key    *token.Key
	parent *Stack
	depth  int
}

func (s *Stack) Push(key *token.Key) *Stack {
	return &Stack{key: key, parent: s, depth: s.Depth() + 1}
}

func (s *Stack) Contains(key *token.Key) bool {
	for n := s; n != nil; n = n.parent {
		if n.key == key {
			return true
		}
	}
	return false
}

func (s *Stack) Depth() int {
	if s == nil {
		return 0
	}
	return s.depth
}

// Keys returns the stack from the first resolved key to the most recent one.
func (s *Stack) Keys() []*token.Key {
	keys := make([]*token.Key, s.Depth())
	i := len(keys) - 1
	for n := s; n != nil; n = n.parent {
		keys[i] = n.key
		i--
	}
	return keys
}
