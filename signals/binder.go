package signals

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/srozzo/simplesignals/internal/logger"
)

// Binder installs handlers for signals in a Table.
type Binder struct {
	registry *Registry
	table    Table
	log      *slog.Logger
}

// NewBinder returns a Binder. Without options it resolves signals through
// DefaultRegistry and installs into a new RuntimeTable.
func NewBinder(opts ...Option) *Binder {
	b := &Binder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.Discard()
	}
	if b.registry == nil {
		b.registry = DefaultRegistry()
	}
	if b.table == nil {
		b.table = NewRuntimeTable(WithTableLogger(b.log))
	}
	return b
}

// Registry returns the registry the binder resolves signals with.
func (b *Binder) Registry() *Registry { return b.registry }

// Table returns the table the binder installs into.
func (b *Binder) Table() Table { return b.table }

// bind is the untyped core of Bind and Using.
func (b *Binder) bind(sig Signal, fn any, opts []BindOption) error {
	cfg := defaultBindConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	a, err := NewAdapter(b.registry, fn, cfg.takesSignal, cfg.takesContext)
	if err != nil {
		return errors.Wrapf(err, "bind %s", sig)
	}
	logger.Trace(b.log, "attaching handler", "signal", sig, "number", sig.number)
	if err := b.table.Install(sig.number, a); err != nil {
		return errors.Wrapf(err, "install handler for %s", sig)
	}

	if !cfg.allowInterrupt {
		ic, ok := b.table.(InterruptConfigurer)
		if !ok {
			logger.Trace(b.log, "interrupt configuration unsupported, skipping", "signal", sig)
			return nil
		}
		if err := ic.SetInterrupt(sig.number, false); err != nil {
			return errors.Wrapf(err, "configure interrupt for %s", sig)
		}
	}
	return nil
}

// Handler returns whatever the table reports for sig.
func (b *Binder) Handler(sig Signal) any {
	return b.table.Handler(sig.number)
}

// Unbind restores the default disposition for sig.
func (b *Binder) Unbind(sig Signal) error {
	logger.Trace(b.log, "detaching handler", "signal", sig)
	return b.table.Uninstall(sig.number)
}

// Bind installs fn as the handler for sig and returns fn unchanged. The
// shape fn must have depends on opts; see Adapter.
//
//	stop, err := signals.Bind(b, reg.Term(), func() { cancel() })
func Bind[F any](b *Binder, sig Signal, fn F, opts ...BindOption) (F, error) {
	if err := b.bind(sig, fn, opts); err != nil {
		return fn, err
	}
	return fn, nil
}

// Using fixes the options for sig and returns a function that binds whatever
// handler it is given, returning that handler unchanged.
//
//	onHup := signals.Using[func(signals.Signal)](b, reg.Hup(), signals.TakesSignal())
//	reload, err := onHup(func(s signals.Signal) { ... })
func Using[F any](b *Binder, sig Signal, opts ...BindOption) func(F) (F, error) {
	return func(fn F) (F, error) {
		return Bind(b, sig, fn, opts...)
	}
}
