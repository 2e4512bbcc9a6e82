// Package logging provides structured diagnostic logging using uber/zap.
//
// termflow shares its standard output with the wrapped child process, so
// diagnostics can never go to the terminal. Instead they are appended to
// a single per-user log file under the home directory
// (~/.termflow/termflow.log).
//
// Log Levels:
//   - Debug: Verbose event-loop tracing
//   - Info: Session lifecycle messages
//   - Warn: Recoverable oddities (malformed output bytes, dropped events)
//   - Error: Failures that end the session
//
// The logger is opened once per session and passed explicitly to every
// component that needs it; there is no process-global logger.
//
// Example Usage:
//
//	logger, closeLog, err := logging.Open(cfg)
//	defer closeLog()
//	logger.Info("session starting", zap.String("program", path))
package logging
