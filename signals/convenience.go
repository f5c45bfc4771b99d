package signals

import "sync"

var (
	defaultBinderOnce sync.Once
	defaultBinder     *Binder
)

// Default returns the process-wide Binder: DefaultRegistry plus a
// RuntimeTable over os/signal.
func Default() *Binder {
	defaultBinderOnce.Do(func() {
		defaultBinder = NewBinder()
	})
	return defaultBinder
}

// Lookup resolves key against DefaultRegistry.
func Lookup(key any) (Signal, error) { return DefaultRegistry().Lookup(key) }

// MustLookup is like Lookup but panics on an unknown key.
func MustLookup(key any) Signal {
	s, err := Lookup(key)
	if err != nil {
		panic(err)
	}
	return s
}

// On binds fn for sig on the Default binder and returns fn unchanged.
func On[F any](sig Signal, fn F, opts ...BindOption) (F, error) {
	return Bind(Default(), sig, fn, opts...)
}

// Handler reports the handler installed for sig on the Default binder.
func Handler(sig Signal) any { return Default().Handler(sig) }

// Unbind restores the default disposition for sig on the Default binder.
func Unbind(sig Signal) error { return Default().Unbind(sig) }
