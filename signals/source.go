package signals

import (
	"os"
	"os/signal"
)

// SignalSource abstracts the os/signal calls a RuntimeTable makes. It is
// primarily useful for injecting fakes during testing.
type SignalSource interface {
	// Notify relays the given signals to c.
	Notify(c chan<- os.Signal, sig ...os.Signal)
	// Reset restores the default disposition of the given signals.
	Reset(sig ...os.Signal)
	// Ignored reports whether sig is currently ignored by the process.
	Ignored(sig os.Signal) bool
}

// osSignalSource delegates to the standard library's os/signal package.
type osSignalSource struct{}

func (osSignalSource) Notify(c chan<- os.Signal, sig ...os.Signal) { signal.Notify(c, sig...) }
func (osSignalSource) Reset(sig ...os.Signal)                      { signal.Reset(sig...) }
func (osSignalSource) Ignored(sig os.Signal) bool                  { return signal.Ignored(sig) }
