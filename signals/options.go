package signals

import "log/slog"

// Option configures a Binder.
type Option func(*Binder)

// WithRegistry sets the registry used to resolve delivered signal numbers.
// The default is DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(b *Binder) { b.registry = r }
}

// WithTable sets the handler table. The default is a RuntimeTable.
func WithTable(t Table) Option {
	return func(b *Binder) { b.table = t }
}

// WithLogger sets the logger for attach/detach tracing.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binder) { b.log = l }
}

type bindConfig struct {
	allowInterrupt bool
	takesSignal    bool
	takesContext   bool
}

func defaultBindConfig() bindConfig {
	return bindConfig{allowInterrupt: true}
}

// BindOption configures a single Bind.
type BindOption func(*bindConfig)

// AllowInterrupt controls whether blocking system calls interrupted by the
// signal are restarted (true, the default) or fail with EINTR (false). It is
// honoured only by tables implementing InterruptConfigurer.
func AllowInterrupt(allow bool) BindOption {
	return func(c *bindConfig) { c.allowInterrupt = allow }
}

// TakesSignal passes the delivered Signal as the handler's first argument.
func TakesSignal() BindOption {
	return func(c *bindConfig) { c.takesSignal = true }
}

// TakesContext passes the delivery context as the handler's last argument.
func TakesContext() BindOption {
	return func(c *bindConfig) { c.takesContext = true }
}
