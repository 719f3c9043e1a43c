package inverter

import (
	"context"
	"fmt"
	reflectPkg "reflect"

	"github.com/danpasecinic/inverter/internal/binding"
	"github.com/danpasecinic/inverter/internal/reflect"
	"github.com/danpasecinic/inverter/internal/token"
)

// Construct binds tok to a plain constructor function. The dependencies given
// with Inject are resolved in order and passed as positional arguments, so
//
//	inverter.Construct(serverToken, NewServer, inverter.Inject(configToken, dbToken.Optional()))
//
// calls NewServer(config, db). An absent optional dependency is passed as the
// zero value; a multi token is passed as a typed slice. fn may return a second
// error result.
func Construct[T any](tok Token[T], fn any, opts ...ProviderOption) Provider {
	cfg := &providerConfig{scope: Scoped}
	for _, opt := range opts {
		opt(cfg)
	}

	desc := tok.Description()
	info, err := reflect.Inspect(fn)
	if err != nil {
		return Provider{err: errInvalidProvider(desc, err)}
	}

	want := reflect.TypeOf[T]()
	if !info.Result.AssignableTo(want) {
		return Provider{err: errInvalidProvider(desc, fmt.Errorf("constructor returns %s, expected %s", info.Result, want))}
	}

	inject, err := declarations(desc, cfg.inject)
	if err != nil {
		return Provider{err: err}
	}
	if len(inject) != len(info.Params) {
		return Provider{err: errInvalidProvider(desc, fmt.Errorf(
			"constructor takes %d arguments, %d dependencies injected", len(info.Params), len(inject),
		))}
	}

	factory := func(ctx context.Context, r binding.Resolver) (any, error) {
		args, err := constructArgs(ctx, r, inject, info.Params)
		if err != nil {
			return nil, err
		}
		return info.Call(args)
	}

	return Provider{binding: binding.NewFactory(tok.key, factory, inject, cfg.scope)}
}

func constructArgs(
	ctx context.Context, r binding.Resolver, inject []token.Declaration, params []reflectPkg.Type,
) ([]reflectPkg.Value, error) {
	args := make([]reflectPkg.Value, len(params))
	for i, decl := range inject {
		v, err := r.Resolve(ctx, decl)
		if err != nil {
			return nil, err
		}
		arg, err := reflect.Arg(v, params[i])
		if err != nil {
			return nil, errTypeMismatch(decl.Key.Description(), params[i].String(), reflect.TypeNameOf(v))
		}
		args[i] = arg
	}
	return args, nil
}
