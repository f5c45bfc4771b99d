package signals

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSignal = errors.New("signals: unknown signal")
	ErrBadHandler    = errors.New("signals: handler signature does not match options")
)

// UnknownSignalError is returned when a lookup key matches no registered
// signal. It matches ErrUnknownSignal under errors.Is.
type UnknownSignalError struct {
	Key any
}

func (e *UnknownSignalError) Error() string {
	return fmt.Sprintf("signals: unknown signal %v", e.Key)
}

func (e *UnknownSignalError) Is(target error) bool {
	return target == ErrUnknownSignal
}
