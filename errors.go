package grago

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrNoMemory is returned when an allocation request could not be
	// satisfied, either by the allocator itself or by a memory budget.
	ErrNoMemory = errors.New("out of memory")

	// ErrInvalidArgument is returned for out-of-bounds indices and
	// malformed ranges. The container is unchanged.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOverflow is returned when a container has reached the platform
	// integer maximum and cannot grow further. The container is unchanged.
	ErrOverflow = errors.New("overflow")
)

// RaiseHook observes raised errors.
//
// code is one of the sentinel errors above; msg is the human-readable message
// passed to Raise. Hooks must be safe for concurrent use and must not panic.
type RaiseHook func(code error, msg string)

var raiseHook atomic.Pointer[RaiseHook]

// SetRaiseHook installs a process-wide hook that observes every error raised
// through Raise. Passing nil removes the hook.
func SetRaiseHook(h RaiseHook) {
	if h == nil {
		raiseHook.Store(nil)
		return
	}
	raiseHook.Store(&h)
}

// Raise records msg against the given error code and returns an error that
// wraps code, so errors.Is(err, code) holds for the caller.
func Raise(code error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if h := raiseHook.Load(); h != nil {
		(*h)(code, msg)
	}
	return fmt.Errorf("%s: %w", msg, code)
}
