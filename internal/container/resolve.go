package container

import (
	"context"
	"sync"
	"time"

	"github.com/danpasecinic/inverter/internal/binding"
	"github.com/danpasecinic/inverter/internal/scope"
	"github.com/danpasecinic/inverter/internal/token"
)

// Resolve resolves decl with c as the origin container. stack is the chain of the
// enclosing resolution, nil for a top-level call.
func (c *Container) Resolve(ctx context.Context, decl token.Declaration, stack *Stack) (any, error) {
	start := time.Now()
	result, err := c.resolve(ctx, decl, stack)
	c.callResolveHooks(decl.Key, time.Since(start), err)
	return result, err
}

func (c *Container) resolve(ctx context.Context, decl token.Declaration, stack *Stack) (any, error) {
	key := decl.Key
	if stack.Contains(key) {
		return nil, &CyclicError{Stack: stack.Push(key).Keys()}
	}
	stack = stack.Push(key)

	if key.Multi() {
		values, err := c.resolveMulti(ctx, key, c, stack)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			def, _ := key.Default()
			return def, nil
		}
		return values, nil
	}

	result, found, err := c.resolveSingle(ctx, key, c, stack)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	if def, ok := key.Default(); ok {
		return def, nil
	}
	if decl.Optional {
		return nil, nil
	}
	return nil, &NotProvidedError{Stack: stack.Keys()}
}

func (c *Container) resolveSingle(
	ctx context.Context, key *token.Key, origin *Container, stack *Stack,
) (any, bool, error) {
	if c == origin {
		if cached, ok := c.cached(key); ok {
			return cached, true, nil
		}
	}

	p, ok := c.store.Lookup(key)
	if !ok {
		if c.parent != nil {
			return c.parent.resolveSingle(ctx, key, origin, stack)
		}
		return nil, false, nil
	}

	if p.Kind == binding.KindValue {
		return p.Value, true, nil
	}

	var (
		result any
		err    error
	)
	switch p.Scope {
	case scope.Singleton:
		if cached, ok := c.cached(key); ok {
			return cached, true, nil
		}
		if c.parent != nil && c.parent.Has(key) {
			return c.parent.resolveSingle(ctx, key, origin, stack)
		}
		result, err = c.fill(ctx, p, stack)
	case scope.Transient:
		result, err = origin.invoke(ctx, p, stack)
	default:
		result, err = origin.fill(ctx, p, stack)
	}
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// fill runs p against c and caches the result in c. Concurrent fills of the same
// key in the same container share one factory run.
func (c *Container) fill(ctx context.Context, p *binding.Provider, stack *Stack) (any, error) {
	result, err, _ := c.flight.Do(p.Key.String(), func() (any, error) {
		stamp := c.stamp(p.Key)
		if cached, ok := c.store.Fresh(p.Key, stamp); ok {
			return cached, nil
		}
		v, err := c.invoke(ctx, p, stack)
		if err != nil {
			return nil, err
		}
		c.store.Cache(p.Key, v, stamp)
		return v, nil
	})
	return result, err
}

func (c *Container) resolveMulti(
	ctx context.Context, key *token.Key, origin *Container, stack *Stack,
) ([]any, error) {
	records := c.store.Records(key)
	values := make([]any, 0, len(records))

	for _, r := range records {
		if r.Settled {
			values = append(values, r.Value)
			continue
		}

		var (
			v   any
			err error
		)
		if r.Provider.Scope == scope.Singleton {
			v, err = c.settle(ctx, r.Provider, stack)
		} else {
			v, err = origin.invoke(ctx, r.Provider, stack)
		}
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	if c.parent != nil {
		inherited, err := c.parent.resolveMulti(ctx, key, origin, stack)
		if err != nil {
			return nil, err
		}
		values = append(values, inherited...)
	}

	return values, nil
}

func (c *Container) settle(ctx context.Context, p *binding.Provider, stack *Stack) (any, error) {
	result, err, _ := c.flight.Do(p.Key.String()+"/"+p.ID, func() (any, error) {
		if v, ok := c.store.Settled(p.Key, p.ID); ok {
			return v, nil
		}
		v, err := c.invoke(ctx, p, stack)
		if err != nil {
			return nil, err
		}
		c.store.Settle(p.Key, p.ID, v)
		return v, nil
	})
	return result, err
}

// invoke runs the factory of p against c: declared dependencies first, in order,
// then the factory itself. Factory errors are returned unchanged.
func (c *Container) invoke(ctx context.Context, p *binding.Provider, stack *Stack) (any, error) {
	f := &frame{container: c, stack: stack}

	for _, decl := range p.Inject {
		v, err := c.Resolve(ctx, decl, stack)
		if err != nil {
			return nil, err
		}
		found := v != nil || !decl.Optional || decl.Key.Multi() || decl.Key.HasDefault() || c.Has(decl.Key)
		f.remember(decl.Key, injection{value: v, found: found})
	}

	result, err := p.Factory(ctx, f)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("provider resolved",
		"token", p.Key.Description(),
		"scope", p.Scope.String(),
		"depth", stack.Depth(),
	)
	return result, nil
}

// frame is the Resolver handed to a running factory.
type frame struct {
	container *Container
	stack     *Stack

	mu       sync.Mutex
	injected map[*token.Key]injection
}

// injection is a resolved Inject dependency. found is false for an optional
// dependency that nothing provided.
type injection struct {
	value any
	found bool
}

func (f *frame) remember(key *token.Key, in injection) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.injected == nil {
		f.injected = make(map[*token.Key]injection)
	}
	f.injected[key] = in
}

// Resolve answers from the injected dependencies first. An optional miss is not
// reused for a required lookup, which has to fail with its own stack.
func (f *frame) Resolve(ctx context.Context, decl token.Declaration) (any, error) {
	f.mu.Lock()
	in, ok := f.injected[decl.Key]
	f.mu.Unlock()
	if ok && (in.found || decl.Optional) {
		return in.value, nil
	}

	return f.container.Resolve(ctx, decl, f.stack)
}

// Container is the container the factory runs against.
func (f *frame) Container() *Container {
	return f.container
}

func (f *frame) Has(key *token.Key) bool {
	return f.container.Has(key)
}

var _ binding.Resolver = (*frame)(nil)
