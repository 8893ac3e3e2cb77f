// Package logging provides a simple leveled logging interface for the
// ingestion service, backed by zerolog.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable (or
// DEBUG=true). LOG_FORMAT=console switches from JSON lines to a human
// readable console format.
//
// Per-run loggers carry fixed fields:
//
//	log := logging.With("run", runID)
//	log.Info("copied %s", path)
package logging
