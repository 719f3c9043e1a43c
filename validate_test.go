package inverter_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/inverter"
)

func noop[T any](ctx context.Context, r inverter.Resolver) (T, error) {
	var zero T
	return zero, nil
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	a := inverter.NewToken[int]("A")
	b := inverter.NewToken[int]("B")
	port := inverter.MustDefault(inverter.NewToken[int]("Port"), 80)
	plugins := inverter.MustMulti(inverter.NewToken[int]("Plugins"))
	cache := inverter.NewToken[int]("Cache")

	root := inverter.MustNew(inverter.Config{Providers: []inverter.Provider{inverter.Value(a, 1)}})
	child := root.MustChild(inverter.Config{Providers: []inverter.Provider{
		inverter.Factory(b, noop[int], inverter.Inject(a, port, plugins, cache.Optional())),
	}})

	assert.NoError(t, child.Validate())
}

func TestValidate_Missing(t *testing.T) {
	t.Parallel()

	a := inverter.NewToken[int]("A")
	missing := inverter.NewToken[int]("Missing")

	c := inverter.MustNew(inverter.Config{Providers: []inverter.Provider{
		inverter.Factory(a, noop[int], inverter.Inject(missing)),
	}})

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, inverter.IsValidationFailed(err))
	assert.Contains(t, err.Error(), `Token "Missing" was not provided, stack: "A" -> "Missing"`)
}

func TestValidate_Cycle(t *testing.T) {
	t.Parallel()

	a := inverter.NewToken[int]("A")
	b := inverter.NewToken[int]("B")
	cTok := inverter.NewToken[int]("C")

	c := inverter.MustNew(inverter.Config{Providers: []inverter.Provider{
		inverter.Factory(a, noop[int], inverter.Inject(b)),
		inverter.Factory(b, noop[int], inverter.Inject(cTok)),
		inverter.Factory(cTok, noop[int], inverter.Inject(a)),
	}})

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "container validation failed: "))
	assert.Contains(t, err.Error(), `Cyclic dependency detected for token: "A", stack: "A" -> "B" -> "C" -> "A"`)
	assert.Equal(t, 1, strings.Count(err.Error(), "Cyclic dependency"))
}
