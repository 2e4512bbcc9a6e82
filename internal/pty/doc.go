// Package pty allocates pseudoterminal pairs and attaches child
// processes to them.
//
// The master side is opened on /dev/ptmx without becoming this
// process's controlling terminal and is kept nonblocking; it is the
// parent's read channel for child output and write channel for
// geometry changes. The subordinate side is unlocked, resolved to its
// /dev/pts/N path, opened once for the child's standard streams, and
// closed by the parent right after spawn.
//
// Spawn attaches the child: the forked process becomes a session
// leader, takes the subordinate as its controlling terminal, gets the
// subordinate duplicated onto stdin/stdout/stderr, and execs with the
// parent's environment. Failures in that sequence surface through the
// child's own exit; the parent is never affected.
package pty
