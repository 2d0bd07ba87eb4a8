// File: io.go
// Title: Program Input
// Description: The line source consumed by read statements.
// Author: msto63
// Version: v0.1.1
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial line reader
// - 2025-10-17 v0.1.1: Input lines up to 1 MiB

package interpreter

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// LineReader supplies one line of input per call, without its terminator.
// It returns io.EOF when no further line is available.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// MaxLineBytes is the longest input line a ScannerReader accepts
const MaxLineBytes = 1 << 20

// ScannerReader reads lines from an io.Reader
type ScannerReader struct {
	scanner *bufio.Scanner
}

// NewLineReader wraps r in a LineReader. Lines longer than MaxLineBytes
// fail with bufio.ErrTooLong.
func NewLineReader(r io.Reader) *ScannerReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	return &ScannerReader{scanner: scanner}
}

// ReadLine returns the next line. The context is checked before reading;
// a read that already started cannot be interrupted.
func (s *ScannerReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(s.scanner.Text(), "\r"), nil
}

// LinesReader serves a fixed list of lines, used for batch input
type LinesReader struct {
	lines []string
}

// NewLinesReader returns a reader over lines
func NewLinesReader(lines ...string) *LinesReader {
	return &LinesReader{lines: lines}
}

// ReadLine returns the next line or io.EOF
func (l *LinesReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(l.lines) == 0 {
		return "", io.EOF
	}
	line := l.lines[0]
	l.lines = l.lines[1:]
	return line, nil
}
