package scope

import "fmt"

type Scope int

const (
	Scoped Scope = iota
	Singleton
	Transient
)

func (s Scope) String() string {
	switch s {
	case Singleton:
		return "singleton"
	case Scoped:
		return "scoped"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

func Parse(s string) (Scope, error) {
	switch s {
	case "singleton":
		return Singleton, nil
	case "scoped", "":
		return Scoped, nil
	case "transient":
		return Transient, nil
	default:
		return Scoped, fmt.Errorf("unknown scope %q", s)
	}
}
