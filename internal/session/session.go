package session

import (
	"fmt"
	"io"
	"os"
	"syscall"

	cpty "github.com/creack/pty"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/termflow/termflow/internal/config"
	"github.com/termflow/termflow/internal/history"
	"github.com/termflow/termflow/internal/pty"
	"github.com/termflow/termflow/internal/reflow"
	"github.com/termflow/termflow/internal/sigbridge"
)

// State tracks the session lifecycle.
type State int

const (
	// Created means no child has been spawned yet.
	Created State = iota
	// Running means the child is alive and the loop is multiplexing.
	Running
	// ChildExited means the termination event has been observed.
	ChildExited
)

// Options wires a session to its collaborators. Every handle is an
// explicit dependency; the session owns nothing it did not open.
type Options struct {
	// Path is the resolved program to run; Args is its full argument
	// vector including Args[0].
	Path string
	Args []string
	// Stdout is the invoking terminal's output, shared verbatim with
	// the child's forwarded bytes and the redraw protocol.
	Stdout io.Writer
	// Terminal is queried for geometry (normally stdin).
	Terminal *os.File
	// Report receives informational child-status notices (stderr).
	Report io.Writer

	Config *config.Config
	Logger *zap.Logger
}

// Session runs one child on one pseudoterminal.
type Session struct {
	opts   Options
	master *pty.Master
	hist   *history.Buffer
	engine *reflow.Engine
	state  State
	buf    []byte
}

// New creates a session in the Created state.
func New(opts Options) *Session {
	return &Session{
		opts:   opts,
		hist:   history.New(opts.Logger),
		engine: reflow.NewEngine(opts.Config.Reflow.CompactThreshold, opts.Logger),
		state:  Created,
		buf:    make([]byte, opts.Config.IO.ChunkSize),
	}
}

// State reports the session lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Run allocates the pseudoterminal, spawns the child, multiplexes
// events until the child terminates, then reaps and reports. The
// returned error reflects only termflow's own failures; child failures
// are reported on the Report writer instead.
func (s *Session) Run() error {
	log := s.opts.Logger

	master, err := pty.OpenMaster()
	if err != nil {
		return err
	}
	defer master.Close()
	s.master = master

	if err := master.Unlock(); err != nil {
		return err
	}
	subPath, err := master.SubordinatePath()
	if err != nil {
		return err
	}
	log.Info("allocated pseudoterminal", zap.String("subordinate", subPath))

	sub, err := pty.OpenSubordinate(subPath)
	if err != nil {
		return err
	}

	// The child inherits the invoking terminal's dimensions at start.
	// A resize between this copy and loop startup is dropped until the
	// next actual resize; that race is accepted rather than polled
	// around.
	if term.IsTerminal(int(s.opts.Terminal.Fd())) {
		if ws, gerr := cpty.GetsizeFull(s.opts.Terminal); gerr == nil {
			if serr := master.Setsize(ws); serr != nil {
				log.Warn("could not copy initial geometry", zap.Error(serr))
			}
		}
	}

	// Bridges precede the spawn so an instantly-exiting child cannot
	// outrun SIGCHLD routing.
	winch, err := sigbridge.New(syscall.SIGWINCH)
	if err != nil {
		sub.Close()
		return err
	}
	defer winch.Close()
	chld, err := sigbridge.New(syscall.SIGCHLD)
	if err != nil {
		sub.Close()
		return err
	}
	defer chld.Close()

	child, err := pty.Spawn(s.opts.Path, s.opts.Args, sub)
	sub.Close()
	if err != nil {
		return err
	}
	log.Info("child started",
		zap.Int("pid", child.Pid()),
		zap.String("program", s.opts.Path))

	s.state = Running
	loopErr := s.loop(winch, chld)

	status, waitErr := Reap(child.Pid())
	if waitErr != nil {
		if loopErr != nil {
			return loopErr
		}
		return waitErr
	}
	log.Info("child reaped", zap.String("status", status.String()))
	status.Report(s.opts.Report)

	return loopErr
}

// loop multiplexes the three sources until child termination has been
// observed and the batch that carried it is fully handled.
func (s *Session) loop(winch, chld *sigbridge.Bridge) error {
	fds := []unix.PollFd{
		{Fd: int32(s.master.Fd()), Events: unix.POLLIN},
		{Fd: int32(winch.Fd()), Events: unix.POLLIN},
		{Fd: int32(chld.Fd()), Events: unix.POLLIN},
	}

	for s.state != ChildExited {
		for i := range fds {
			fds[i].Revents = 0
		}
		if _, err := unix.Poll(fds, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("waiting for events: %w", err)
		}

		// Ready sources within a batch carry no ordering; termination
		// only stops iteration once the whole batch is handled, so
		// output racing the exit still gets forwarded.
		for i := range fds {
			if fds[i].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
				continue
			}
			var err error
			switch int(fds[i].Fd) {
			case s.master.Fd():
				err = s.drainMaster()
			case winch.Fd():
				err = s.handleResize(winch)
			case chld.Fd():
				chld.Drain()
				s.state = ChildExited
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// drainMaster forwards child output until the read would block. Each
// chunk goes verbatim to the invoking terminal and, decoded, into
// history.
func (s *Session) drainMaster() error {
	for {
		n, err := unix.Read(s.master.Fd(), s.buf)
		if n > 0 {
			if _, werr := s.opts.Stdout.Write(s.buf[:n]); werr != nil {
				return fmt.Errorf("forwarding child output: %w", werr)
			}
			s.hist.Append(s.buf[:n])
		}
		switch {
		case err == unix.EAGAIN:
			return nil
		case err == unix.EIO:
			// The master reads EIO once the subordinate side is gone;
			// the termination event carries the shutdown.
			return nil
		case err != nil:
			return fmt.Errorf("reading child output: %w", err)
		case n == 0:
			return nil
		}
	}
}

// handleResize propagates the invoking terminal's new geometry onto
// the pseudoterminal and redraws the whole history at the new width.
func (s *Session) handleResize(winch *sigbridge.Bridge) error {
	winch.Drain()

	if !term.IsTerminal(int(s.opts.Terminal.Fd())) {
		s.opts.Logger.Debug("resize ignored, not attached to a terminal")
		return nil
	}
	ws, err := cpty.GetsizeFull(s.opts.Terminal)
	if err != nil {
		return fmt.Errorf("querying terminal size: %w", err)
	}
	if err := s.master.Setsize(ws); err != nil {
		return err
	}
	s.opts.Logger.Info("terminal resized",
		zap.Uint16("rows", ws.Rows),
		zap.Uint16("cols", ws.Cols))

	return s.engine.Redraw(s.opts.Stdout, s.hist.Runes(), int(ws.Cols))
}
