// File: entry.go
// Title: Log Entry Structure
// Description: One log record as the formatters see it: the message, the
//              run it was written for, its fields and, for failed stages,
//              the Mini-PL error and how long the stage ran.
// Author: msto63
// Version: v0.2.1
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive log entry structure
// - 2025-10-17 v0.2.0: Run ID replaces request/user/correlation IDs
// - 2026-10-17 v0.2.1: Removed the unused Field, Err and Merge helpers

package log

import (
	"sort"
	"time"
)

// Entry is a single record handed to a Formatter.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string

	// Logger is the component name, e.g. "minipl-parser"
	Logger string

	// RunID ties the entry to one run of the CLI or the playground
	RunID string

	Fields Fields

	// Error and Duration are set by stage timers
	Error    error
	Duration time.Duration
}

// Fields are the key/value pairs attached to an entry.
type Fields map[string]interface{}

// Clone copies f so a derived logger can add keys without touching its parent.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	result := make(Fields, len(f))
	for k, v := range f {
		result[k] = v
	}
	return result
}

// Keys returns the field names sorted, so formatted lines are stable.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
