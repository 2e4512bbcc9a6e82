package pty

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Resource exhaustion opening the master. All of these are fatal before
// any child has been spawned.
var (
	ErrFileDescriptorsExhausted = errors.New("all process file descriptors are in use")
	ErrFilesExhausted           = errors.New("all system files are in use")
	ErrPtysExhausted            = errors.New("no free pseudoterminals")
	ErrStreamsExhausted         = errors.New("no free STREAMS resources")
)

// Master misuse errors.
var (
	ErrNotAFileDescriptor = errors.New("not a valid file descriptor")
	ErrNotAPty            = errors.New("descriptor is not a pseudoterminal master")
)

// openMasterError maps errno from posix_openpt-equivalent opens. The
// mapping is intentionally non-exhaustive: unrecognized codes are
// wrapped with their raw value so callers can log them.
func openMasterError(err error) error {
	switch err {
	case unix.EMFILE:
		return ErrFileDescriptorsExhausted
	case unix.ENFILE:
		return ErrFilesExhausted
	case unix.EAGAIN:
		return ErrPtysExhausted
	case unix.ENOSR:
		return ErrStreamsExhausted
	}
	return fmt.Errorf("unexpected error opening pseudoterminal master: %w", err)
}

// masterIoctlError maps errno from ioctls against the master (unlock,
// subordinate path resolution).
func masterIoctlError(op string, err error) error {
	switch err {
	case unix.EBADF:
		return fmt.Errorf("%s: %w", op, ErrNotAFileDescriptor)
	case unix.EINVAL, unix.ENOTTY:
		return fmt.Errorf("%s: %w", op, ErrNotAPty)
	}
	return fmt.Errorf("unexpected error while %s: %w", op, err)
}
