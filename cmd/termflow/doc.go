// Package main is the entry point for termflow.
//
// termflow runs a child command on a freshly allocated pseudoterminal,
// forwards its output to the invoking terminal, propagates window
// resizes to the child, and redraws the already-printed output in
// place when the window is resized instead of letting it shear.
//
// Pipeline:
//
//	invoking terminal ← redraw protocol ← reflow engine ← history
//	                  ← verbatim bytes  ← PTY master    ← child
//
// Usage:
//
//	termflow <program> [args...]
//
//	# everything after the program belongs to the program
//	termflow cargo build --release
//
// Exit status reflects only termflow's own success; a child killed or
// failing is reported on stderr but does not fail the wrapper.
//
// Diagnostics go to ~/.termflow/termflow.log, configured via
// ~/.termflow/config.toml and TERMFLOW_* environment variables.
package main
