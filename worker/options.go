package worker

import (
	"log/slog"

	"github.com/srozzo/simplesignals/signals"
)

// Option configures a Process.
type Option func(*Process)

// WithBinder sets where the shutdown handler is bound. The default binds
// through os/signal.
func WithBinder(b *signals.Binder) Option {
	return func(p *Process) { p.binder = b }
}

// WithLogger sets the process logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Process) { p.log = l }
}

// WithExit replaces os.Exit.
func WithExit(fn func(code int)) Option {
	return func(p *Process) { p.exit = fn }
}

// WithTitle overrides the process title.
func WithTitle(title string) Option {
	return func(p *Process) { p.title = title }
}

// WithConfig applies the title and interrupt settings from cfg.
func WithConfig(cfg Config) Option {
	return func(p *Process) {
		if cfg.Title != "" {
			p.title = cfg.Title
		}
		p.allowInterrupt = cfg.AllowInterrupt
	}
}
