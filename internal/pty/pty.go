package pty

import (
	"fmt"
	"os"
	"strconv"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// Master owns the pseudoterminal master descriptor. The descriptor is
// kept as a raw fd (not an *os.File) because the event loop does
// nonblocking reads on it and os.File would hand the descriptor to the
// runtime poller.
type Master struct {
	fd int
}

// OpenMaster allocates a pseudoterminal master, read/write, explicitly
// not becoming this process's controlling terminal, and sets it
// nonblocking for the event loop.
func OpenMaster() (*Master, error) {
	fd, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, openMasterError(err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("setting master nonblocking: %w", err)
	}
	return &Master{fd: fd}, nil
}

// Unlock releases the lock on the paired subordinate device so it can
// be opened.
func (m *Master) Unlock() error {
	if err := unix.IoctlSetPointerInt(m.fd, unix.TIOCSPTLCK, 0); err != nil {
		return masterIoctlError("unlocking the subordinate device", err)
	}
	return nil
}

// SubordinatePath resolves the filesystem path of the paired
// subordinate device.
func (m *Master) SubordinatePath() (string, error) {
	n, err := unix.IoctlGetUint32(m.fd, unix.TIOCGPTN)
	if err != nil {
		return "", masterIoctlError("resolving the subordinate device", err)
	}
	return "/dev/pts/" + strconv.FormatUint(uint64(n), 10), nil
}

// Fd returns the raw master descriptor for readiness multiplexing.
func (m *Master) Fd() int {
	return m.fd
}

// Setsize propagates terminal geometry onto the pseudoterminal pair.
func (m *Master) Setsize(ws *pty.Winsize) error {
	uws := unix.Winsize{
		Row:    ws.Rows,
		Col:    ws.Cols,
		Xpixel: ws.X,
		Ypixel: ws.Y,
	}
	if err := unix.IoctlSetWinsize(m.fd, unix.TIOCSWINSZ, &uws); err != nil {
		return fmt.Errorf("setting pseudoterminal size: %w", err)
	}
	return nil
}

// Close releases the master descriptor. Safe to call once on every
// exit path.
func (m *Master) Close() error {
	if m.fd < 0 {
		return nil
	}
	err := unix.Close(m.fd)
	m.fd = -1
	return err
}

// OpenSubordinate opens the subordinate device read/write without
// becoming a controlling terminal at open time. The caller owns the
// returned file and closes it after the child has been spawned.
func OpenSubordinate(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening subordinate device %s: %w", path, err)
	}
	return f, nil
}
