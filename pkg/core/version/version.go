// ============================================================================
// Mini-PL - Interpreter Toolchain
// ============================================================================
//
// Package:     version
// Description: Central version management for the minipl binary and its
//              components
// Author:      Mike Stoffels
// Created:     2025-10-17
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the toolchain
const (
	// Toolchain version
	Toolchain = "0.1.0"

	// Language revision implemented by the interpreter
	Language = "mini-pl-2015"

	// Component versions
	Interpreter = "0.1.0"
	Playground  = "0.1.0"
	RunStore    = "0.1.0"
)

// Set at build time with -ldflags "-X github.com/msto63/minipl/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "interpreter":
		return Interpreter
	case "playground":
		return Playground
	case "runstore":
		return RunStore
	default:
		return Toolchain
	}
}

// String returns the one-line version banner
func String() string {
	return fmt.Sprintf("minipl %s (%s) commit %s built %s %s/%s",
		Toolchain, Language, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
}
