//go:build linux

package worker

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// maxTitle is the kernel's comm length less the terminating NUL.
const maxTitle = 15

// setTitle renames the calling thread. ps and top only show the new name when
// that thread is the main one, which is where New usually runs.
func setTitle(title string) error {
	if len(title) > maxTitle {
		title = title[:maxTitle]
	}
	p, err := unix.BytePtrFromString(title)
	if err != nil {
		return errors.Wrapf(err, "process title %q", title)
	}
	if err := unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(p)), 0, 0, 0); err != nil {
		return errors.Wrap(err, "prctl PR_SET_NAME")
	}
	return nil
}
