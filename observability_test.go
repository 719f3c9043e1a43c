package inverter_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danpasecinic/inverter"
)

func TestResolveObserver(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	var lastKey string
	var lastErr error

	configToken := inverter.NewToken[*Config]("Config")
	c := inverter.MustNew(
		inverter.Config{Providers: []inverter.Provider{inverter.Value(configToken, &Config{Port: 8080})}},
		inverter.WithResolveObserver(func(key string, duration time.Duration, err error) {
			callCount.Add(1)
			lastKey = key
			lastErr = err
		}),
	)

	if _, err := inverter.Get(context.Background(), c, configToken); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if callCount.Load() != 1 {
		t.Errorf("expected 1 resolve hook call, got %d", callCount.Load())
	}
	if lastKey != "Config" {
		t.Errorf("expected key Config, got %q", lastKey)
	}
	if lastErr != nil {
		t.Errorf("expected no error, got %v", lastErr)
	}
}

func TestResolveObserverOnError(t *testing.T) {
	t.Parallel()

	var lastErr error

	c := inverter.MustNew(
		inverter.Config{},
		inverter.WithResolveObserver(func(key string, duration time.Duration, err error) {
			lastErr = err
		}),
	)

	_, _ = inverter.Get(context.Background(), c, inverter.NewToken[int]("Missing"))

	if !inverter.IsNotProvided(lastErr) {
		t.Errorf("expected not provided error in observer, got %v", lastErr)
	}
}

func TestResolveObserverSeesNestedResolutions(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var keys []string

	configToken := inverter.NewToken[*Config]("Config")
	dbToken := inverter.NewToken[*Database]("Database")

	c := inverter.MustNew(
		inverter.Config{Providers: []inverter.Provider{
			inverter.Value(configToken, &Config{}),
			inverter.Factory(dbToken, func(ctx context.Context, r inverter.Resolver) (*Database, error) {
				return &Database{}, nil
			}, inverter.Inject(configToken)),
		}},
		inverter.WithResolveObserver(func(key string, duration time.Duration, err error) {
			mu.Lock()
			defer mu.Unlock()
			keys = append(keys, key)
		}),
	)

	_ = inverter.MustGet(context.Background(), c, dbToken)

	if strings.Join(keys, ",") != "Config,Database" {
		t.Errorf("expected Config then Database, got %v", keys)
	}
}

func TestRegisterAndReadyObservers(t *testing.T) {
	t.Parallel()

	var registered []string
	var readySize int

	tok := inverter.NewToken[int]("Workers")
	_, err := inverter.New(
		inverter.Config{Providers: []inverter.Provider{
			inverter.Factory(tok, func(ctx context.Context, r inverter.Resolver) (int, error) {
				return 4, nil
			}, inverter.WithScope(inverter.Transient)),
		}},
		inverter.WithRegisterObserver(func(token, kind string, scope inverter.Scope) {
			registered = append(registered, token+":"+kind+":"+scope.String())
		}),
		inverter.WithReadyObserver(func(size int, d time.Duration) {
			readySize = size
		}),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if len(registered) != 1 || registered[0] != "Workers:factory:transient" {
		t.Errorf("unexpected registrations %v", registered)
	}
	if readySize != 1 {
		t.Errorf("expected ready size 1, got %d", readySize)
	}
}

func TestChildInheritsObservers(t *testing.T) {
	t.Parallel()

	var parentCalls, childCalls atomic.Int32
	tok := inverter.NewToken[int]("Value")

	parent := inverter.MustNew(
		inverter.Config{Providers: []inverter.Provider{inverter.Value(tok, 1)}},
		inverter.WithResolveObserver(func(string, time.Duration, error) { parentCalls.Add(1) }),
	)
	child := parent.MustChild(
		inverter.Config{},
		inverter.WithResolveObserver(func(string, time.Duration, error) { childCalls.Add(1) }),
	)

	_ = inverter.MustGet(context.Background(), child, tok)
	_ = inverter.MustGet(context.Background(), parent, tok)

	if parentCalls.Load() != 2 {
		t.Errorf("expected inherited observer to fire twice, got %d", parentCalls.Load())
	}
	if childCalls.Load() != 1 {
		t.Errorf("expected child observer to fire once, got %d", childCalls.Load())
	}
}

func TestWithDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	tok := inverter.NewToken[int]("Traced")
	module := inverter.NewModule(inverter.ModuleConfig{
		Name:      "tracing",
		Providers: []inverter.Provider{inverter.Value(tok, 1)},
	})
	c := inverter.MustNew(
		inverter.Config{Modules: []*inverter.Module{module}},
		inverter.WithLogger(logger),
		inverter.WithDebug(),
	)
	_ = inverter.MustGet(context.Background(), c, tok)

	output := buf.String()
	for _, want := range []string{"token registered", "module registered", "container ready", "token resolved", "token=Traced"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in debug output, got: %s", want, output)
		}
	}
}
