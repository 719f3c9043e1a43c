// Package inverter provides a hierarchical, token-based dependency injection
// container for Go 1.25+.
//
// Dependencies are identified by tokens, not by type. A token is created once and
// compared by identity; its description only shows up in error messages:
//
//	var (
//	    ConfigToken = inverter.NewToken[*Config]("Config")
//	    DBToken     = inverter.NewToken[*sql.DB]("DB")
//	)
//
// # Providers
//
// A provider binds a token to a value or to a factory:
//
//	inverter.Value(ConfigToken, &Config{DSN: "..."})
//	inverter.Factory(DBToken, func(ctx context.Context, r inverter.Resolver) (*sql.DB, error) {
//	    cfg, err := inverter.Get(ctx, r, ConfigToken)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return sql.Open("pgx", cfg.DSN)
//	}, inverter.WithScope(inverter.Singleton))
//
// Plain constructors can be bound with Construct; injected dependencies become
// positional arguments:
//
//	inverter.Construct(ServerToken, NewServer, inverter.Inject(ConfigToken, DBToken))
//
// # Containers
//
//	c, err := inverter.New(inverter.Config{
//	    Providers: []inverter.Provider{...},
//	    Modules:   []*inverter.Module{...},
//	})
//	db, err := inverter.Get(ctx, c, DBToken)
//
// A child container falls back to its parent for tokens it does not bind:
//
//	request, err := c.Child(inverter.Config{
//	    Providers: []inverter.Provider{inverter.Value(UserToken, user)},
//	})
//
// A factory that needs a fresh child per call, one per request for example,
// asks for a ChildFactory. Its wiring is validated when it is created:
//
//	spawn, err := inverter.NewChildFactory(r, HandlerToken, inverter.Config{...})
//	handler, err := spawn(ctx)
//
// # Scopes
//
//	Singleton  one value, cached in the container that defines the provider
//	Scoped     one value per resolving container (default)
//	Transient  a new value on every resolution
//
// A scoped or transient factory bound in a parent runs against the child that
// asked for it, so it sees the child's bindings.
//
// # Defaults, optional and multi tokens
//
//	Port := inverter.MustDefault(inverter.NewToken[int]("Port"), 8080)
//	Plugins := inverter.MustMulti(inverter.NewToken[Plugin]("Plugins"))
//
//	plugins, err := inverter.GetAll(ctx, c, Plugins)    // child's first, then parent's
//	cache, err := inverter.GetOptional(ctx, c, CacheToken)
//
// # Modules
//
//	var DBModule = inverter.NewModule(inverter.ModuleConfig{
//	    Name:      "DB",
//	    Providers: []inverter.Provider{...},
//	    Imports:   []*inverter.Module{ConfigModule},
//	})
//
// Imports are bound before the importing module. A provider reached through
// several imports is bound once, at its last position.
//
// # Errors
//
// Every failure except a failing factory is an *Error with a Code. A failing
// factory's error is returned unchanged.
//
//	Token "DB" was not provided, stack: "Server" -> "DB"
//	Cyclic dependency detected for token: "A", stack: "A" -> "B" -> "A"
//
// # Observers
//
//	c, err := inverter.New(cfg,
//	    inverter.WithLogger(logger),
//	    inverter.WithResolveObserver(func(token string, d time.Duration, err error) {...}),
//	    inverter.WithDebug(),
//	)
package inverter
