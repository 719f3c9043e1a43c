package inverter

import (
	"time"
)

// ResolveHook observes every resolution of a token: its description, how long
// it took and the error, if any.
type ResolveHook func(token string, duration time.Duration, err error)

// RegisterHook observes every provider bound into a container.
type RegisterHook func(token string, kind string, scope Scope)

// ModuleHook observes every module visited while compiling a container. parent
// is the importing module, or "Container" for top-level modules.
type ModuleHook func(module, parent string)

// ReadyHook observes a container once all its providers are bound.
type ReadyHook func(size int, duration time.Duration)
