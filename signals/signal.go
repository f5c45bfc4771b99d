// Package signals maps operating-system signal numbers to symbolic names and
// binds handler functions to them.
//
// A Registry discovers the signals the platform exposes and hands out Signal
// descriptors. A Binder installs handlers for those descriptors in a Table,
// which by default is the process signal table managed by os/signal. Handlers
// may declare whether they want the delivered Signal, the delivery context
// (a *Frame), both, or neither; an Adapter trims the call accordingly.
package signals

import (
	"fmt"
	"syscall"
)

// Signal identifies one OS signal by number and lowercase name, e.g.
// {2, "int"}. Descriptors are created by a Registry and never change.
type Signal struct {
	number int
	name   string
}

// NewSignal returns a descriptor for number and name. Neither is validated;
// a number the OS never raises is simply never delivered.
func NewSignal(number int, name string) Signal {
	return Signal{number: number, name: name}
}

// Number returns the OS signal number.
func (s Signal) Number() int { return s.number }

// String returns the signal name.
func (s Signal) String() string { return s.name }

// Signal marks Signal as an os.Signal.
func (s Signal) Signal() {}

// Sys returns the platform signal value for s.
func (s Signal) Sys() syscall.Signal { return syscall.Signal(s.number) }

// GoString renders s for %#v.
func (s Signal) GoString() string {
	return fmt.Sprintf("Signal(number=%d, name=%s)", s.number, s.name)
}

// Equal reports whether other denotes the same signal. Another Signal matches
// on number, any integer (including syscall.Signal) matches the number, and a
// string matches the name. Any other value is unequal.
func (s Signal) Equal(other any) bool {
	switch o := other.(type) {
	case Signal:
		return s.number == o.number
	case *Signal:
		return o != nil && s.number == o.number
	case string:
		return s.name == o
	}
	n, ok := asNumber(other)
	return ok && int64(s.number) == n
}

// asNumber widens every Go integer kind, and syscall.Signal, to int64.
func asNumber(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > 1<<62 {
			return 0, false
		}
		return int64(n), true
	case uintptr:
		return int64(n), true
	case syscall.Signal:
		return int64(n), true
	}
	return 0, false
}
