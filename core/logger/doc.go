// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a human-friendly console
// encoding for interactive runs and a JSON encoding for scheduled jobs whose output
// is shipped to a log collector.
//
// # Run Correlation
//
// Every reconciliation run gets a unique run id. WithRun attaches it to the logger
// so that all lines emitted by one run (remote calls, pagination, output writes)
// can be correlated. Requests served by the mock API are tagged the same way
// with WithRayID, which reads the id set by the rayid middleware.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	l := logger.WithRun(log, runID)
//	l.Info("Run started")
package logger
