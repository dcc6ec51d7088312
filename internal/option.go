package internal

import "github.com/starford/graflint/internal/archi"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	watch  bool
	serve  bool
	runner archi.Runner
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithWatch enables watch mode: re-validate on repository changes.
func WithWatch(watch bool) Option {
	return func(a *application) {
		a.watch = watch
	}
}

// WithServe enables the report HTTP endpoint (implies watch mode).
func WithServe(serve bool) Option {
	return func(a *application) {
		a.serve = serve
	}
}

// WithRunner overrides the process runner used for the Archi smoke test.
func WithRunner(r archi.Runner) Option {
	return func(a *application) {
		a.runner = r
	}
}
