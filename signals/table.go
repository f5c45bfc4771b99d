package signals

import (
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/srozzo/simplesignals/internal/logger"
)

// Table is the process signal-handler table: at most one handler per signal
// number, the latest install wins. The table is owned by the operating
// system; implementations only relay to it.
type Table interface {
	// Install makes a the handler for number, replacing any previous one.
	Install(number int, a *Adapter) error
	// Uninstall restores the default disposition for number.
	Uninstall(number int) error
	// Handler reports what is installed for number: an *Adapter, or a
	// Disposition when no handler is installed.
	Handler(number int) any
}

// InterruptConfigurer is implemented by tables that can choose whether system
// calls interrupted by a signal are restarted automatically.
type InterruptConfigurer interface {
	SetInterrupt(number int, allow bool) error
}

// Disposition describes a signal with no installed handler.
type Disposition string

const (
	DispositionDefault Disposition = "default"
	DispositionIgnored Disposition = "ignored"
)

// Frame is the delivery context a RuntimeTable passes to handlers that ask
// for it.
type Frame struct {
	Signal   os.Signal
	Seq      uint64
	Received time.Time
}

// ErrorFunc receives errors returned by a handler during delivery.
type ErrorFunc func(sig os.Signal, err error)

// RuntimeTable installs handlers through os/signal. Deliveries are processed
// one at a time, in arrival order, on a single dispatch goroutine; handlers
// must not assume they run on the goroutine that bound them.
//
// The Go runtime installs its own OS handlers with automatic restart of
// interrupted system calls and offers no way to change that, so RuntimeTable
// does not implement InterruptConfigurer.
type RuntimeTable struct {
	mu       sync.Mutex
	src      SignalSource
	log      *slog.Logger
	onError  ErrorFunc
	handlers map[int]*Adapter
	sigch    chan os.Signal
	seq      uint64
}

// TableOption configures a RuntimeTable.
type TableOption func(*RuntimeTable)

// WithSource replaces os/signal, e.g. with a test double.
func WithSource(src SignalSource) TableOption {
	return func(t *RuntimeTable) { t.src = src }
}

// WithTableLogger sets the logger used for delivery tracing.
func WithTableLogger(l *slog.Logger) TableOption {
	return func(t *RuntimeTable) { t.log = l }
}

// WithErrorFunc sets what happens when a handler returns an error. The
// default logs at FAIL and panics on the dispatch goroutine, which ends the
// process like any uncaught error.
func WithErrorFunc(fn ErrorFunc) TableOption {
	return func(t *RuntimeTable) { t.onError = fn }
}

// NewRuntimeTable returns a table backed by os/signal.
func NewRuntimeTable(opts ...TableOption) *RuntimeTable {
	t := &RuntimeTable{
		src:      osSignalSource{},
		log:      logger.Discard(),
		handlers: make(map[int]*Adapter),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.onError == nil {
		t.onError = func(sig os.Signal, err error) {
			logger.Fail(t.log, "signal handler failed", "signal", sig, "error", err)
			panic(err)
		}
	}
	return t
}

func (t *RuntimeTable) Install(number int, a *Adapter) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.handlers[number] = a
	if t.sigch == nil {
		t.sigch = make(chan os.Signal, 16)
		go t.loop(t.sigch)
	}
	t.src.Notify(t.sigch, syscall.Signal(number))
	return nil
}

func (t *RuntimeTable) Uninstall(number int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.handlers, number)
	t.src.Reset(syscall.Signal(number))
	return nil
}

func (t *RuntimeTable) Handler(number int) any {
	t.mu.Lock()
	a, ok := t.handlers[number]
	t.mu.Unlock()
	if ok {
		return a
	}
	if t.src.Ignored(syscall.Signal(number)) {
		return DispositionIgnored
	}
	return DispositionDefault
}

func (t *RuntimeTable) loop(sigch <-chan os.Signal) {
	for sig := range sigch {
		number, ok := sig.(syscall.Signal)
		if !ok {
			continue
		}
		t.mu.Lock()
		a := t.handlers[int(number)]
		t.seq++
		frame := &Frame{Signal: sig, Seq: t.seq, Received: time.Now()}
		t.mu.Unlock()

		// Reset raced with a delivery already queued.
		if a == nil {
			continue
		}
		logger.Trace(t.log, "handling signal", "signal", sig, "seq", frame.Seq)
		if _, err := a.Invoke(int(number), frame); err != nil {
			t.onError(sig, err)
		}
	}
}
