// Package invertertest builds containers for tests and fails the test instead of
// returning errors.
package invertertest

import (
	"context"

	"github.com/danpasecinic/inverter"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
}

type TestContainer struct {
	*inverter.Container
	tb TB
}

// New builds a container from cfg or fails tb.
func New(tb TB, cfg inverter.Config, opts ...inverter.Option) *TestContainer {
	tb.Helper()

	c, err := inverter.New(cfg, opts...)
	if err != nil {
		tb.Fatalf("failed to build container: %v", err)
		return nil
	}
	return &TestContainer{Container: c, tb: tb}
}

// Child builds a child of tc or fails the test.
func (tc *TestContainer) Child(cfg inverter.Config, opts ...inverter.Option) *TestContainer {
	tc.tb.Helper()

	c, err := tc.Container.Child(cfg, opts...)
	if err != nil {
		tc.tb.Fatalf("failed to build child container: %v", err)
		return nil
	}
	return &TestContainer{Container: c, tb: tc.tb}
}

func (tc *TestContainer) RequireValidate() {
	tc.tb.Helper()

	if err := tc.Validate(); err != nil {
		tc.tb.Fatalf("container validation failed: %v", err)
	}
}

// Builder describes a test container: the configuration under test plus
// overriding providers. Builders are immutable; every method returns a new one.
type Builder struct {
	cfg       inverter.Config
	overrides []inverter.Provider
	opts      []inverter.Option
}

func Module(cfg inverter.Config) *Builder {
	return &Builder{cfg: cfg}
}

// Override adds providers bound after everything in the configuration, so they
// shadow single-valued tokens. For multi tokens they are added to the list.
func (b *Builder) Override(providers ...inverter.Provider) *Builder {
	next := *b
	next.overrides = append(append([]inverter.Provider(nil), b.overrides...), providers...)
	return &next
}

func (b *Builder) With(opts ...inverter.Option) *Builder {
	next := *b
	next.opts = append(append([]inverter.Option(nil), b.opts...), opts...)
	return &next
}

// Compile builds the container or fails tb.
func (b *Builder) Compile(tb TB) *TestContainer {
	tb.Helper()

	cfg := inverter.Config{
		Modules:   b.cfg.Modules,
		Providers: append(append([]inverter.Provider(nil), b.cfg.Providers...), b.overrides...),
	}
	return New(tb, cfg, b.opts...)
}

func MustGet[T any](tc *TestContainer, tok inverter.Token[T]) T {
	tc.tb.Helper()

	v, err := inverter.Get(context.Background(), tc.Container, tok)
	if err != nil {
		tc.tb.Fatalf("failed to get %q: %v", tok.Description(), err)
	}
	return v
}

func MustGetAll[T any](tc *TestContainer, tok inverter.Token[T]) []T {
	tc.tb.Helper()

	v, err := inverter.GetAll(context.Background(), tc.Container, tok)
	if err != nil {
		tc.tb.Fatalf("failed to get all %q: %v", tok.Description(), err)
	}
	return v
}

func AssertProvided[T any](tc *TestContainer, tok inverter.Token[T]) {
	tc.tb.Helper()

	if !tc.Has(tok) {
		tc.tb.Fatalf("expected container to provide %q", tok.Description())
	}
}

func AssertNotProvided[T any](tc *TestContainer, tok inverter.Token[T]) {
	tc.tb.Helper()

	if tc.Has(tok) {
		tc.tb.Fatalf("expected container not to provide %q", tok.Description())
	}
}
