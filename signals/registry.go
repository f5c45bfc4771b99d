package signals

import (
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Registry maps signal numbers and names to descriptors. It is populated once
// at construction and read-only afterwards, so it is safe for concurrent use.
type Registry struct {
	byNumber map[int]Signal
	byName   map[string]Signal
}

// NewRegistry builds a registry from the signals the running platform
// exposes.
func NewRegistry() *Registry {
	return NewRegistryFrom(discover()...)
}

// NewRegistryFrom builds a registry from sigs. When several names share a
// number every name stays addressable and the last one given is the name
// returned for the number.
func NewRegistryFrom(sigs ...Signal) *Registry {
	r := &Registry{
		byNumber: make(map[int]Signal, len(sigs)),
		byName:   make(map[string]Signal, len(sigs)),
	}
	for _, s := range sigs {
		r.byNumber[s.number] = s
		r.byName[s.name] = s
	}
	return r
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the process-wide registry, built on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Lookup resolves key, a signal number of any integer type or a signal name,
// to its descriptor. Names are matched as given; use lowercase ("int").
func (r *Registry) Lookup(key any) (Signal, error) {
	if name, ok := key.(string); ok {
		if s, ok := r.byName[name]; ok {
			return s, nil
		}
		return Signal{}, &UnknownSignalError{Key: key}
	}
	if s, ok := key.(Signal); ok {
		key = s.number
	}
	n, ok := asNumber(key)
	if !ok {
		return Signal{}, &UnknownSignalError{Key: key}
	}
	if s, ok := r.byNumber[int(n)]; ok && int64(int(n)) == n {
		return s, nil
	}
	return Signal{}, &UnknownSignalError{Key: key}
}

// ByNumber returns the descriptor registered for n.
func (r *Registry) ByNumber(n int) (Signal, bool) {
	s, ok := r.byNumber[n]
	return s, ok
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (Signal, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// MustGet is like Get but panics if name is not registered. It is meant for
// package-level initialisation with well-known names.
func (r *Registry) MustGet(name string) Signal {
	s, ok := r.byName[name]
	if !ok {
		panic(&UnknownSignalError{Key: name})
	}
	return s
}

// Int, Quit, Term and Hup return the common signals. They panic if the
// platform does not define them.
func (r *Registry) Int() Signal  { return r.MustGet("int") }
func (r *Registry) Quit() Signal { return r.MustGet("quit") }
func (r *Registry) Term() Signal { return r.MustGet("term") }
func (r *Registry) Hup() Signal  { return r.MustGet("hup") }

// Names returns every registered name in lexical order.
func (r *Registry) Names() []string {
	names := lo.Keys(r.byName)
	sort.Strings(names)
	return names
}

// Signals returns one descriptor per registered number, ordered by number.
func (r *Registry) Signals() []Signal {
	sigs := lo.Values(r.byNumber)
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].number < sigs[j].number })
	return sigs
}

// Len returns the number of distinct signal numbers.
func (r *Registry) Len() int { return len(r.byNumber) }

// canonicalName strips the platform prefix from a constant name and
// lowercases the rest: "SIGINT" becomes "int".
func canonicalName(constant string) string {
	return strings.ToLower(strings.TrimPrefix(constant, "SIG"))
}
