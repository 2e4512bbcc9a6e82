// Package session drives one child command attached to a
// pseudoterminal from start to reaping.
//
// Concurrency model: a single thread of control multiplexing three
// readable sources with poll(2) and no timeout — the PTY master, the
// window-resize signal bridge, and the child-termination signal
// bridge. A poll batch is an unordered set of ready sources and is
// always handled in full: observing child termination mid-batch does
// not discard output that raced the exit. All reads are nonblocking
// and drained until "would block".
//
// On loop exit the child is reaped and its status classified as a
// normal exit, a signal kill, or a signal stop; the report is
// informational and never becomes termflow's own failure.
package session
