package container

import (
	"strings"

	"github.com/danpasecinic/inverter/internal/token"
)

type NotProvidedError struct {
	Stack []*token.Key
}

func (e *NotProvidedError) Error() string {
	return "Token " + quote(last(e.Stack)) + " was not provided, stack: " + FormatStack(e.Stack)
}

type CyclicError struct {
	Stack []*token.Key
}

func (e *CyclicError) Error() string {
	return "Cyclic dependency detected for token: " + quote(last(e.Stack)) + ", stack: " + FormatStack(e.Stack)
}

// FormatStack renders keys as "a" -> "b" -> "c".
func FormatStack(keys []*token.Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = quote(k)
	}
	return strings.Join(parts, " -> ")
}

func Descriptions(keys []*token.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Description()
	}
	return out
}

func quote(k *token.Key) string {
	if k == nil {
		return `""`
	}
	return `"` + k.Description() + `"`
}

func last(keys []*token.Key) *token.Key {
	if len(keys) == 0 {
		return nil
	}
	return keys[len(keys)-1]
}
