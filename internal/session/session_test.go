package session

import (
	"bytes"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/termflow/termflow/internal/config"
)

func runSession(t *testing.T, script string) (string, string, error) {
	t.Helper()
	var out, report bytes.Buffer
	s := New(Options{
		Path:     "/bin/sh",
		Args:     []string{"sh", "-c", script},
		Stdout:   &out,
		Terminal: os.Stdin,
		Report:   &report,
		Config:   config.Default(),
		Logger:   zap.NewNop(),
	})
	err := s.Run()
	assert.Equal(t, ChildExited, s.State())
	return out.String(), report.String(), err
}

func TestRunForwardsChildOutput(t *testing.T) {
	out, report, err := runSession(t, "printf hello")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.Empty(t, report)
}

func TestRunForwardsOutputRacingExit(t *testing.T) {
	// The final write and the exit land in the same readiness batch;
	// the data must still be forwarded before the loop stops.
	out, _, err := runSession(t, "printf last-words; exit 0")
	require.NoError(t, err)
	assert.Contains(t, out, "last-words")
}

func TestRunReportsNonZeroExit(t *testing.T) {
	_, report, err := runSession(t, "exit 3")
	require.NoError(t, err, "child failure is not the tool's failure")
	assert.Contains(t, report, "non-zero exit code 3")
}

func TestRunReportsSignalKill(t *testing.T) {
	_, report, err := runSession(t, "kill -KILL $$")
	require.NoError(t, err)
	assert.Contains(t, report, "killed by SIGKILL (signal 9)")
}

func TestRunSurvivesResizeWithoutTerminal(t *testing.T) {
	// SIGWINCH with no real terminal attached must not end the loop.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = unix.Kill(os.Getpid(), syscall.SIGWINCH)
	}()

	out, _, err := runSession(t, "sleep 0.2; printf after-resize")
	<-done
	require.NoError(t, err)
	assert.Contains(t, out, "after-resize")
}

func TestRunMultilineOutput(t *testing.T) {
	out, _, err := runSession(t, "printf 'one\\ntwo\\nthree\\n'")
	require.NoError(t, err)
	// The PTY line discipline turns \n into \r\n on the wire.
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")
	assert.Contains(t, out, "three")
}
