// File: level.go
// Title: Log Level Definitions
// Description: Severity levels for toolchain log output. Token traces sit
//              at the bottom, stage transitions at debug, failed program
//              runs at warn and faults of the toolchain itself at error.
// Author: msto63
// Version: v0.2.1
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2025-10-17 v0.2.0: Dropped the audit level, colors moved to the console formatter
// - 2026-10-17 v0.2.1: Level names follow the log_level config key

package log

import (
	"strings"
)

// Level orders log output from the lexer's token trace up to toolchain faults.
type Level int

const (
	// LevelTrace logs every token the lexer hands to the parser
	LevelTrace Level = iota

	// LevelDebug logs stage start and end for lex, parse, analyze and run
	LevelDebug

	LevelInfo

	// LevelWarn marks a program that failed with a Mini-PL error
	LevelWarn

	// LevelError marks a fault in the toolchain, not in the program
	LevelError

	// LevelOff silences the logger
	LevelOff
)

// String is the name accepted by log_level and --log-level.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelOff:
		return "off"
	default:
		return "unknown"
	}
}

// ShortString is the three letter tag printed in the console and text formats.
func (l Level) ShortString() string {
	switch l {
	case LevelTrace:
		return "TRC"
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	default:
		return "???"
	}
}

// ShouldLog reports whether an entry at l passes a logger set to minLevel.
// LevelOff never passes.
func (l Level) ShouldLog(minLevel Level) bool {
	return l < LevelOff && l >= minLevel
}

// ParseLevel reads a log_level value. Case and surrounding blanks are
// ignored, an empty value means info and the short tags are accepted too.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "trc":
		return LevelTrace, nil
	case "debug", "dbg":
		return LevelDebug, nil
	case "info", "inf", "":
		return LevelInfo, nil
	case "warn", "wrn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	case "off", "none":
		return LevelOff, nil
	default:
		return LevelInfo, &ParseError{
			Input: level,
			Type:  "level",
		}
	}
}

// ParseError is returned for an unknown log_level or log_format value.
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}
