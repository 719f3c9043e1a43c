package inverter

import "github.com/danpasecinic/inverter/internal/scope"

// Scope controls how long a factory's result is reused.
type Scope = scope.Scope

const (
	// Scoped caches one value per resolving container. It is the default.
	Scoped = scope.Scoped
	// Singleton caches one value in the container that defines the provider.
	Singleton = scope.Singleton
	// Transient runs the factory on every resolution.
	Transient = scope.Transient
)

// ParseScope accepts "singleton", "scoped" or "transient". The empty string is
// Scoped.
func ParseScope(s string) (Scope, error) {
	return scope.Parse(s)
}
