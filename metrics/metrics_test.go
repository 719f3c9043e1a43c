package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/inverter"
)

func TestCollector_Resolutions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	collector := NewCollector("inverter")

	port := inverter.NewToken[int]("Port")
	host := inverter.NewToken[string]("Host")

	c, err := inverter.New(inverter.Config{
		Providers: []inverter.Provider{inverter.Value(port, 8080)},
	}, collector.Options()...)
	require.NoError(t, err)

	_, err = inverter.Get(ctx, c, port)
	require.NoError(t, err)
	_, err = inverter.Get(ctx, c, port)
	require.NoError(t, err)
	_, err = inverter.Get(ctx, c, host)
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.resolutions.WithLabelValues("Port")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.resolutions.WithLabelValues("Host")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.failures.WithLabelValues("Host", "TOKEN_NOT_PROVIDED")))
	assert.Equal(t, 1, testutil.CollectAndCount(collector.failures))
}

func TestCollector_FactoryFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	collector := NewCollector("inverter")

	db := inverter.NewToken[string]("DB")
	c, err := inverter.New(inverter.Config{
		Providers: []inverter.Provider{
			inverter.Factory(db, func(ctx context.Context, r inverter.Resolver) (string, error) {
				return "", errors.New("connection refused")
			}),
		},
	}, collector.Options()...)
	require.NoError(t, err)

	_, err = inverter.Get(ctx, c, db)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.failures.WithLabelValues("DB", "FACTORY")))
}

func TestCollector_Registrations(t *testing.T) {
	t.Parallel()

	collector := NewCollector("inverter")

	port := inverter.NewToken[int]("Port")
	name := inverter.NewToken[string]("Name")

	base := inverter.NewModule(inverter.ModuleConfig{
		Name:      "Base",
		Providers: []inverter.Provider{inverter.Value(port, 8080)},
	})
	app := inverter.NewModule(inverter.ModuleConfig{
		Name: "App",
		Providers: []inverter.Provider{
			inverter.Factory(name, func(ctx context.Context, r inverter.Resolver) (string, error) {
				return "app", nil
			}, inverter.WithScope(inverter.Singleton)),
		},
		Imports: []*inverter.Module{base},
	})

	c, err := inverter.New(inverter.Config{Modules: []*inverter.Module{app}}, collector.Options()...)
	require.NoError(t, err)

	_, err = c.Child(inverter.Config{})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.providers.WithLabelValues("value", "scoped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.providers.WithLabelValues("factory", "singleton")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.modules.WithLabelValues("Base")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.modules.WithLabelValues("App")))
	assert.Equal(t, 1, testutil.CollectAndCount(collector.ready))
}

func TestCollector_Register(t *testing.T) {
	t.Parallel()

	collector := NewCollector("inverter")
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(collector))

	tok := inverter.NewToken[int]("Answer")
	c := inverter.MustNew(inverter.Config{
		Providers: []inverter.Provider{inverter.Value(tok, 42)},
	}, collector.Options()...)
	inverter.MustGet(context.Background(), c, tok)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "inverter_resolutions_total")
	assert.Contains(t, names, "inverter_providers_registered_total")
	assert.Contains(t, names, "inverter_container_build_seconds")
}
