package cli

import (
	"io"
	"os/exec"

	"github.com/spf13/cobra"
)

// Version is reported by --version.
const Version = "0.1.0"

// UsageErrorCode is the exit code for invocation errors, matching the
// convention of reserving high codes for the wrapper itself so they are
// distinguishable from child exit codes.
const UsageErrorCode = 255

// Action is the outcome of argument handling: either Exit or Launch.
type Action interface {
	isAction()
}

// Exit means the invocation was fully handled (help, version, or a
// usage error whose message has already been printed).
type Exit struct {
	Code int
}

func (Exit) isAction() {}

// Launch means a child program should be run under a pseudoterminal.
type Launch struct {
	// Path is the resolved program path.
	Path string
	// Args is the full argument vector, Args[0] included.
	Args []string
}

func (Launch) isAction() {}

// Parse interprets termflow's arguments (without the leading program
// name). Help, version and usage errors are written to the given
// writers.
func Parse(args []string, stdout, stderr io.Writer) Action {
	var launch *Launch

	root := &cobra.Command{
		Use:     "termflow <program> [args...]",
		Short:   "Run a command on a fresh pseudoterminal and reflow its output on resize",
		Version: Version,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			launch = &Launch{Path: Resolve(argv[0]), Args: argv}
			return nil
		},
	}
	// Options after the first positional belong to the child program.
	root.Flags().SetInterspersed(false)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		return Exit{Code: UsageErrorCode}
	}
	if launch == nil {
		// --help or --version ran.
		return Exit{Code: 0}
	}
	return *launch
}

// Resolve looks the program up on PATH, falling back to the literal
// argument; if that is not executable either, the child's exec failure
// reports it.
func Resolve(prog string) string {
	if path, err := exec.LookPath(prog); err == nil {
		return path
	}
	return prog
}
