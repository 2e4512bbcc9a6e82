// Package config provides configuration management for termflow.
//
// Configuration is resolved in three layers, later layers winning:
//   - Built-in defaults
//   - An optional per-user TOML file (~/.termflow/config.toml)
//   - TERMFLOW_* environment variables
//
// Configuration Sections:
//   - Logging: log level and output format
//   - Reflow: repeated-run compaction threshold
//   - IO: PTY read chunk size
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	engine := reflow.NewEngine(cfg.Reflow.CompactThreshold, logger)
//
// Environment Variables:
//   - TERMFLOW_LOG_LEVEL, TERMFLOW_LOG_DEV
//   - TERMFLOW_COMPACT_THRESHOLD
//   - TERMFLOW_CHUNK_SIZE
package config
