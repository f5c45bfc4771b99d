//go:build !unix

package signals

import "syscall"

// discover lists the signal constants the syscall package defines on
// platforms without a name table in x/sys.
func discover() []Signal {
	return []Signal{
		NewSignal(int(syscall.SIGHUP), "hup"),
		NewSignal(int(syscall.SIGINT), "int"),
		NewSignal(int(syscall.SIGQUIT), "quit"),
		NewSignal(int(syscall.SIGILL), "ill"),
		NewSignal(int(syscall.SIGTRAP), "trap"),
		NewSignal(int(syscall.SIGABRT), "abrt"),
		NewSignal(int(syscall.SIGBUS), "bus"),
		NewSignal(int(syscall.SIGFPE), "fpe"),
		NewSignal(int(syscall.SIGKILL), "kill"),
		NewSignal(int(syscall.SIGSEGV), "segv"),
		NewSignal(int(syscall.SIGPIPE), "pipe"),
		NewSignal(int(syscall.SIGALRM), "alrm"),
		NewSignal(int(syscall.SIGTERM), "term"),
	}
}
