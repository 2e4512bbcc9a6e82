package session

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

// Linux wait status encodings: exit code in bits 8-15, killing signal
// in bits 0-6, 0x7f in bits 0-6 plus the signal in bits 8-15 for stops.
func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		ws   unix.WaitStatus
		want Status
	}{
		{"clean exit", unix.WaitStatus(0), Status{Kind: ExitedNormally, Code: 0}},
		{"non-zero exit", unix.WaitStatus(3 << 8), Status{Kind: ExitedNormally, Code: 3}},
		{"killed by SIGKILL", unix.WaitStatus(9), Status{Kind: Signaled, Signal: unix.SIGKILL}},
		{"killed by SIGTERM", unix.WaitStatus(15), Status{Kind: Signaled, Signal: unix.SIGTERM}},
		{"stopped by SIGSTOP", unix.WaitStatus(0x7f | (19 << 8)), Status{Kind: Stopped, Signal: unix.SIGSTOP}},
		{"stopped by SIGTSTP", unix.WaitStatus(0x7f | (20 << 8)), Status{Kind: Stopped, Signal: unix.SIGTSTP}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.ws))
		})
	}
}

func TestReportCleanExitIsSilent(t *testing.T) {
	var out bytes.Buffer
	Status{Kind: ExitedNormally, Code: 0}.Report(&out)
	assert.Empty(t, out.String())
}

func TestReportNonZeroExit(t *testing.T) {
	var out bytes.Buffer
	Status{Kind: ExitedNormally, Code: 3}.Report(&out)
	assert.Equal(t, "termflow: child exited with non-zero exit code 3\n", out.String())
}

func TestReportKilledNamesSignal(t *testing.T) {
	var out bytes.Buffer
	Status{Kind: Signaled, Signal: unix.SIGKILL}.Report(&out)
	assert.Equal(t, "termflow: child killed by SIGKILL (signal 9)\n", out.String())
}

func TestReportStoppedNamesSignal(t *testing.T) {
	var out bytes.Buffer
	Status{Kind: Stopped, Signal: unix.SIGTSTP}.Report(&out)
	assert.Equal(t, "termflow: child stopped by SIGTSTP (signal 20)\n", out.String())
}

func TestReportDistinguishesKinds(t *testing.T) {
	var exited, killed, stopped bytes.Buffer
	Status{Kind: ExitedNormally, Code: 1}.Report(&exited)
	Status{Kind: Signaled, Signal: unix.SIGKILL}.Report(&killed)
	Status{Kind: Stopped, Signal: unix.SIGSTOP}.Report(&stopped)

	assert.NotEqual(t, exited.String(), killed.String())
	assert.NotEqual(t, killed.String(), stopped.String())
	assert.NotEqual(t, exited.String(), stopped.String())
}
