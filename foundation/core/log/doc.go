// Package log provides structured logging for the Mini-PL toolchain.
//
// Package: log
// Title: Mini-PL Structured Logging
// Description: Leveled, structured logging with JSON, text, console and
// logfmt output. Loggers are immutable values; components derive their own
// logger with WithField("component", ...) and runs are tagged WithRunID.
// Logs go to stderr unless configured otherwise because program output
// owns stdout.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-10-17 v0.2.0: Run IDs, lipgloss console format, synchronous writes
//
// Usage:
//
//	import mdwlog "github.com/msto63/minipl/foundation/core/log"
//
//	logger := mdwlog.GetDefault().WithField("component", "minipl-parser")
//	logger.Debug("Parsing started", mdwlog.Fields{"source_bytes": 120})
//
//	timer := logger.StartTimer("analyze")
//	err := analyze()
//	timer.StopWithError(err)
package log
