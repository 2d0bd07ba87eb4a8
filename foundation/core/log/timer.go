// File: timer.go
// Title: Stage Timer
// Description: Times one pipeline stage (lex, parse, analyze, interpret)
//              and writes a single entry when the stage ends.
// Author: msto63
// Version: v0.2.1
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2025-10-17 v0.2.0: Duration travels on the entry instead of in fields
// - 2026-10-17 v0.2.1: Stage entries are fixed to debug, failures to warn

package log

import (
	"time"
)

// Timer is started by Logger.StartTimer at the beginning of a stage.
// Only the first Stop or StopWithError writes an entry.
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	stopped   bool
}

func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
	}
}

// WithField attaches a value known before the stage ends, e.g. a token count.
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Stop writes "<operation> completed" at debug level.
func (t *Timer) Stop() time.Duration {
	return t.finish(nil)
}

// StopWithError writes "<operation> failed" at warn level with err on the
// entry. A nil err is the same as Stop.
func (t *Timer) StopWithError(err error) time.Duration {
	return t.finish(err)
}

func (t *Timer) finish(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := time.Since(t.startTime)

	if t.logger == nil {
		return elapsed
	}

	t.fields["operation"] = t.operation
	if err != nil {
		t.logger.logEntry(LevelWarn, t.operation+" failed", err, elapsed, t.fields)
		return elapsed
	}
	t.logger.logEntry(LevelDebug, t.operation+" completed", nil, elapsed, t.fields)
	return elapsed
}
