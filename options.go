package inverter

import (
	"log/slog"
	"time"
)

type Option func(*containerConfig)

type containerConfig struct {
	logger     *slog.Logger
	debug      bool
	onResolve  []ResolveHook
	onRegister []RegisterHook
	onModule   []ModuleHook
	onReady    []ReadyHook
}

func defaultConfig() *containerConfig {
	return &containerConfig{
		logger: slog.Default(),
	}
}

// inherit copies cfg for a child container so that appending observers to the
// child never touches the parent.
func (cfg *containerConfig) inherit() *containerConfig {
	return &containerConfig{
		logger:     cfg.logger,
		debug:      cfg.debug,
		onResolve:  append([]ResolveHook(nil), cfg.onResolve...),
		onRegister: append([]RegisterHook(nil), cfg.onRegister...),
		onModule:   append([]ModuleHook(nil), cfg.onModule...),
		onReady:    append([]ReadyHook(nil), cfg.onReady...),
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *containerConfig) {
		cfg.logger = logger
	}
}

// WithDebug traces every container event at info level through the configured
// logger, so the trace shows up without lowering the handler level.
func WithDebug() Option {
	return func(cfg *containerConfig) {
		cfg.debug = true
	}
}

func WithResolveObserver(hook ResolveHook) Option {
	return func(cfg *containerConfig) {
		cfg.onResolve = append(cfg.onResolve, hook)
	}
}

func WithRegisterObserver(hook RegisterHook) Option {
	return func(cfg *containerConfig) {
		cfg.onRegister = append(cfg.onRegister, hook)
	}
}

func WithModuleObserver(hook ModuleHook) Option {
	return func(cfg *containerConfig) {
		cfg.onModule = append(cfg.onModule, hook)
	}
}

func WithReadyObserver(hook ReadyHook) Option {
	return func(cfg *containerConfig) {
		cfg.onReady = append(cfg.onReady, hook)
	}
}

// hooks returns the configured observers, with event tracing prepended when
// debug is enabled. Called once per container after all options are applied.
func (cfg *containerConfig) hooks() *containerConfig {
	if !cfg.debug {
		return cfg
	}

	logger := cfg.logger
	out := *cfg
	out.onResolve = append([]ResolveHook{func(token string, d time.Duration, err error) {
		if err != nil {
			logger.Info("token resolution failed", "token", token, "duration", d, "error", err)
			return
		}
		logger.Info("token resolved", "token", token, "duration", d)
	}}, cfg.onResolve...)
	out.onRegister = append([]RegisterHook{func(token, kind string, s Scope) {
		logger.Info("token registered", "token", token, "kind", kind, "scope", s.String())
	}}, cfg.onRegister...)
	out.onModule = append([]ModuleHook{func(module, parent string) {
		logger.Info("module registered", "module", module, "parent", parent)
	}}, cfg.onModule...)
	out.onReady = append([]ReadyHook{func(size int, d time.Duration) {
		logger.Info("container ready", "size", size, "duration", d)
	}}, cfg.onReady...)
	out.debug = false
	return &out
}
