// Package sigbridge converts process signals into pollable, readable
// file descriptors.
//
// This lets asynchronous signal delivery participate in the same
// readiness-multiplexing model as ordinary I/O, avoiding the
// reentrancy hazards of handler-based designs. A Bridge routes a
// signal away from its default disposition and writes one byte into a
// nonblocking pipe per delivered instance; the read end becomes
// readable whenever instances are pending and each consumed byte is
// one instance. The Go runtime already intercepts signal delivery on a
// dedicated thread, so this is the runtime's equivalent of blocking
// the signal and reading a signalfd.
package sigbridge

import (
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// Bridge exposes one signal set as a readable descriptor.
type Bridge struct {
	ch   chan os.Signal
	done chan struct{}
	r, w int
}

// New blocks the default handling of the given signals and returns a
// bridge whose descriptor becomes readable on each delivery.
func New(signals ...os.Signal) (*Bridge, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, fmt.Errorf("creating signal pipe: %w", err)
	}

	b := &Bridge{
		ch:   make(chan os.Signal, 64),
		done: make(chan struct{}),
		r:    p[0],
		w:    p[1],
	}
	signal.Notify(b.ch, signals...)
	go b.forward()
	return b, nil
}

// forward turns each delivered signal into one pipe byte. A full pipe
// drops the write, which coalesces bursts exactly like pending-signal
// semantics.
func (b *Bridge) forward() {
	defer close(b.done)
	token := []byte{0}
	for range b.ch {
		_, _ = unix.Write(b.w, token)
	}
}

// Fd returns the readable descriptor for readiness multiplexing.
func (b *Bridge) Fd() int {
	return b.r
}

// Drain consumes every pending instance, returning how many were
// pending. "Would block" is the designed terminator, not an error.
func (b *Bridge) Drain() int {
	consumed := 0
	buf := make([]byte, 16)
	for {
		n, err := unix.Read(b.r, buf)
		if n > 0 {
			consumed += n
		}
		if err != nil || n <= 0 {
			return consumed
		}
	}
}

// Close stops signal routing and releases both pipe ends.
func (b *Bridge) Close() error {
	signal.Stop(b.ch)
	close(b.ch)
	<-b.done

	werr := unix.Close(b.w)
	rerr := unix.Close(b.r)
	if werr != nil {
		return fmt.Errorf("closing signal pipe write end: %w", werr)
	}
	if rerr != nil {
		return fmt.Errorf("closing signal pipe read end: %w", rerr)
	}
	return nil
}
