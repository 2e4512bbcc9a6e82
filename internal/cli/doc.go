// Package cli handles termflow's own command line.
//
// The surface is deliberately tiny: the first positional argument is the
// program to run and everything after it belongs to that program, so
// "termflow ls --help" passes --help to ls rather than printing
// termflow's help. Only --help and --version are recognized, and only
// before the first positional argument.
//
// Parsing produces an Action: either Exit (termflow already handled the
// invocation, e.g. help output or a usage error) or Launch (a resolved
// program path plus its argument vector to run under a pseudoterminal).
// Callers switch over the two variants exhaustively.
package cli
