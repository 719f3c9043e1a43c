package benchmark

import (
	"context"

	"github.com/danpasecinic/inverter"
)

type Config struct {
	Host string
	Port int
}

type Logger struct {
	Level string
}

type Database struct {
	Config *Config
	Logger *Logger
}

type Cache struct {
	Logger *Logger
}

type Repository struct {
	DB    *Database
	Cache *Cache
}

type Service struct {
	Repo   *Repository
	Logger *Logger
}

var (
	configToken     = inverter.NewToken[*Config]("Config")
	loggerToken     = inverter.NewToken[*Logger]("Logger")
	databaseToken   = inverter.NewToken[*Database]("Database")
	cacheToken      = inverter.NewToken[*Cache]("Cache")
	repositoryToken = inverter.NewToken[*Repository]("Repository")
	serviceToken    = inverter.NewToken[*Service]("Service")
)

// chainProviders is the six-token graph every library is measured on.
func chainProviders(scope inverter.Scope) []inverter.Provider {
	return []inverter.Provider{
		inverter.Value(configToken, &Config{Host: "localhost", Port: 8080}),
		inverter.Value(loggerToken, &Logger{Level: "info"}),
		inverter.Construct(databaseToken, func(cfg *Config, log *Logger) *Database {
			return &Database{Config: cfg, Logger: log}
		}, inverter.Inject(configToken, loggerToken), inverter.WithScope(scope)),
		inverter.Factory(cacheToken, func(ctx context.Context, r inverter.Resolver) (*Cache, error) {
			log, err := inverter.Get(ctx, r, loggerToken)
			if err != nil {
				return nil, err
			}
			return &Cache{Logger: log}, nil
		}, inverter.WithScope(scope)),
		inverter.Construct(repositoryToken, func(db *Database, cache *Cache) *Repository {
			return &Repository{DB: db, Cache: cache}
		}, inverter.Inject(databaseToken, cacheToken), inverter.WithScope(scope)),
		inverter.Construct(serviceToken, func(repo *Repository, log *Logger) *Service {
			return &Service{Repo: repo, Logger: log}
		}, inverter.Inject(repositoryToken, loggerToken), inverter.WithScope(scope)),
	}
}
