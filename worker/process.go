// Package worker provides a run loop for long-lived processes that do a unit
// of work repeatedly until asked to stop by SIGINT, SIGQUIT or SIGTERM, then
// clean up and exit.
//
//	type ticker struct{ worker.Base }
//
//	func (ticker) DoWork() error { time.Sleep(time.Second); return nil }
//
//	func main() {
//		if err := worker.New(ticker{}).Run(); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// Signal handlers run on the signals dispatch goroutine, not on the goroutine
// calling Run, so the stop flag is atomic. A signal that arrives while DoWork
// is running is observed when DoWork returns; the loop never interrupts it.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/srozzo/simplesignals/internal/logger"
	"github.com/srozzo/simplesignals/signals"
)

var ErrNotImplemented = errors.New("worker: DoWork not implemented")

// Worker does one unit of work per call. An error ends the loop.
type Worker interface {
	DoWork() error
}

// Starter is implemented by workers needing setup before the first DoWork.
type Starter interface {
	Startup() error
}

// Cleaner is implemented by workers needing teardown after the last DoWork.
type Cleaner interface {
	Cleanup() error
}

// Titled is implemented by workers choosing their own process title.
type Titled interface {
	ProcessTitle() string
}

// Base supplies no-op Startup and Cleanup. Embedders must override DoWork;
// the inherited one fails with ErrNotImplemented.
type Base struct{}

func (Base) DoWork() error  { return ErrNotImplemented }
func (Base) Startup() error { return nil }
func (Base) Cleanup() error { return nil }

// State is a Process lifecycle stage.
type State int32

const (
	Idle State = iota
	Running
	ShuttingDown
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting down"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Process drives a Worker.
type Process struct {
	worker         Worker
	binder         *signals.Binder
	log            *slog.Logger
	exit           func(code int)
	title          string
	allowInterrupt bool

	alive atomic.Bool
	state atomic.Int32
}

// New returns an idle Process for w and labels the OS process with its title.
// A title that cannot be set is logged and otherwise ignored.
func New(w Worker, opts ...Option) *Process {
	p := &Process{
		worker: w,
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Discard()
	}
	if p.binder == nil {
		p.binder = signals.NewBinder(signals.WithLogger(p.log))
	}
	if p.title == "" {
		p.title = defaultTitle(w)
	}
	p.alive.Store(true)
	p.state.Store(int32(Idle))

	p.setProcessTitle()
	return p
}

func defaultTitle(w Worker) string {
	if t, ok := w.(Titled); ok {
		if title := t.ProcessTitle(); title != "" {
			return title
		}
	}
	t := reflect.TypeOf(w)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "worker"
	}
	return strings.ToLower(t.Name())
}

func (p *Process) setProcessTitle() {
	logger.Trace(p.log, "setting process title", "title", p.title)
	if err := setTitle(p.title); err != nil {
		p.log.Debug("process title not set", "title", p.title, "error", err)
	}
}

// Title returns the process title chosen at construction.
func (p *Process) Title() string { return p.title }

// State returns the current lifecycle stage.
func (p *Process) State() State { return State(p.state.Load()) }

// Alive reports whether the loop will run another iteration.
func (p *Process) Alive() bool { return p.alive.Load() }

// Shutdown asks the loop to stop after the current iteration. It is the
// handler bound to the termination signals and may also be called directly.
func (p *Process) Shutdown() {
	if p.alive.CompareAndSwap(true, false) {
		p.log.Debug("shutting down process")
	}
}

func (p *Process) initSignals() error {
	logger.Trace(p.log, "initializing signal handlers")
	reg := p.binder.Registry()
	for _, name := range []string{"int", "quit", "term"} {
		sig, ok := reg.Get(name)
		if !ok {
			logger.Trace(p.log, "signal unavailable on this platform", "signal", name)
			continue
		}
		if _, err := signals.Bind(p.binder, sig, p.Shutdown, signals.AllowInterrupt(p.allowInterrupt)); err != nil {
			return err
		}
	}
	return nil
}

// Run binds the termination signals, calls Startup, calls DoWork until
// Shutdown, calls Cleanup and exits the process with status 0. Any error from
// the worker is returned as is and the process is left running; callers
// typically log it and exit non-zero.
func (p *Process) Run() error {
	if !p.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return fmt.Errorf("worker: Run called in state %s", p.State())
	}
	if err := p.initSignals(); err != nil {
		return err
	}

	p.log.Debug("starting process", "title", p.title)
	if s, ok := p.worker.(Starter); ok {
		if err := s.Startup(); err != nil {
			return err
		}
	}

	for p.alive.Load() {
		if err := p.worker.DoWork(); err != nil {
			return err
		}
	}

	p.state.Store(int32(ShuttingDown))
	if c, ok := p.worker.(Cleaner); ok {
		if err := c.Cleanup(); err != nil {
			return err
		}
	}

	p.state.Store(int32(Terminated))
	p.log.Debug("exiting process", "title", p.title)
	p.exit(0)
	return nil
}
