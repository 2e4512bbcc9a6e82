package pty

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Child is a process attached to the subordinate side of a
// pseudoterminal. The parent keeps only the pid for reaping.
type Child struct {
	cmd *exec.Cmd
}

// Spawn starts prog with argv attached to the subordinate device: the
// child becomes a new session leader, takes the subordinate as its
// controlling terminal, has it duplicated onto stdin/stdout/stderr, and
// execs with the parent's environment verbatim. Setup failures after
// the fork surface through the child's own exit path.
func Spawn(prog string, argv []string, subordinate *os.File) (*Child, error) {
	cmd := &exec.Cmd{
		Path:   prog,
		Args:   argv,
		Stdin:  subordinate,
		Stdout: subordinate,
		Stderr: subordinate,
		Env:    os.Environ(),
		SysProcAttr: &syscall.SysProcAttr{
			Setsid:  true,
			Setctty: true, // Ctty 0: stdin, which is the subordinate
		},
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawning %s: %w", prog, err)
	}
	return &Child{cmd: cmd}, nil
}

// Pid returns the child's process id for reaping.
func (c *Child) Pid() int {
	return c.cmd.Process.Pid
}
