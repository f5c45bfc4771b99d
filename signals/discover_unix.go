//go:build unix

package signals

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// maxSignal bounds the probe; it covers the real-time range on Linux.
const maxSignal = 65

// discover asks x/sys/unix for the name of every signal number it knows.
func discover() []Signal {
	var sigs []Signal
	for n := 1; n < maxSignal; n++ {
		name := unix.SignalName(syscall.Signal(n))
		if name == "" {
			continue
		}
		sigs = append(sigs, NewSignal(n, canonicalName(name)))
	}
	return sigs
}
