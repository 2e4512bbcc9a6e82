package session

import (
	"fmt"
	"io"
	"syscall"

	"golang.org/x/sys/unix"
)

// ExitKind classifies how the child left.
type ExitKind int

const (
	// ExitedNormally means the child returned an exit code.
	ExitedNormally ExitKind = iota
	// Signaled means the child was killed by a signal.
	Signaled
	// Stopped means the child was stopped by a signal.
	Stopped
	// Unknown means the wait status had an unrecognized shape.
	Unknown
)

// Status is the child's classified wait status.
type Status struct {
	Kind   ExitKind
	Code   int
	Signal syscall.Signal
}

// Reap blocks until the child's status is available and classifies it.
// WUNTRACED makes stops observable alongside exits.
func Reap(pid int) (Status, error) {
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &ws, unix.WUNTRACED, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return Status{}, fmt.Errorf("waiting for child %d: %w", pid, err)
		}
		return classify(ws), nil
	}
}

// classify maps a raw wait status onto the exit taxonomy.
func classify(ws unix.WaitStatus) Status {
	switch {
	case ws.Exited():
		return Status{Kind: ExitedNormally, Code: ws.ExitStatus()}
	case ws.Signaled():
		return Status{Kind: Signaled, Signal: ws.Signal()}
	case ws.Stopped():
		return Status{Kind: Stopped, Signal: ws.StopSignal()}
	}
	return Status{Kind: Unknown}
}

// String renders the status for log fields.
func (st Status) String() string {
	switch st.Kind {
	case ExitedNormally:
		return fmt.Sprintf("exited(%d)", st.Code)
	case Signaled:
		return fmt.Sprintf("killed(%s)", unix.SignalName(st.Signal))
	case Stopped:
		return fmt.Sprintf("stopped(%s)", unix.SignalName(st.Signal))
	}
	return "unknown"
}

// Report writes the informational child-status notice. A clean exit is
// silent; everything else names the outcome without adopting it as
// termflow's own failure. Signal names come from the static table in
// x/sys/unix.
func (st Status) Report(w io.Writer) {
	switch st.Kind {
	case ExitedNormally:
		if st.Code != 0 {
			fmt.Fprintf(w, "termflow: child exited with non-zero exit code %d\n", st.Code)
		}
	case Signaled:
		fmt.Fprintf(w, "termflow: child killed by %s (signal %d)\n",
			unix.SignalName(st.Signal), int(st.Signal))
	case Stopped:
		fmt.Fprintf(w, "termflow: child stopped by %s (signal %d)\n",
			unix.SignalName(st.Signal), int(st.Signal))
	default:
		fmt.Fprintln(w, "termflow: unknown child status (termflow bug)")
	}
}
