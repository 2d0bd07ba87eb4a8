// ============================================================================
// Mini-PL - Interpreter Toolchain
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
//              strings
// Author:      Mike Stoffels
// Created:     2025-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	mdwlog "github.com/msto63/minipl/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Name of the logging application
	Name string

	// Log level (trace, debug, info, warn, error, off)
	Level string

	// Output format (text, json, console, logfmt)
	Format string

	// Output is "stderr", "stdout" or a file path (default: stderr).
	// Program output owns stdout, so stdout is only useful for tooling.
	Output string

	// Additional outputs (besides the main output)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}
}

// NewLogger creates a foundation logger. The returned closer releases a
// log file opened for Output and is never nil.
func NewLogger(cfg LoggerConfig) (*mdwlog.Logger, io.Closer, error) {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nopCloser{}, err
	}
	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nopCloser{}, err
	}

	output, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nopCloser{}, err
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})
	return logger, closer, nil
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(name string) *mdwlog.Logger {
	logger, _, err := NewLogger(DefaultLoggerConfig(name))
	if err != nil {
		return mdwlog.New()
	}
	return logger
}

func openOutput(target string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "", "stderr":
		return os.Stderr, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
