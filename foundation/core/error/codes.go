// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures of the
//              Mini-PL pipeline and of the surfaces around it (CLI, run
//              history, playground server).
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-10-17 v0.2.0: Replaced TCOL codes with the Mini-PL stage codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Mini-PL pipeline stages
	CodeLexical  Code = "LEXICAL_ERROR"
	CodeSyntax   Code = "SYNTAX_ERROR"
	CodeSemantic Code = "SEMANTIC_ERROR"
	CodeRuntime  Code = "RUNTIME_ERROR"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid reports whether the code is one of the known codes
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeLexical, CodeSyntax, CodeSemantic, CodeRuntime,
		CodeDatabaseError, CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// IsPipeline reports whether the code belongs to one of the four pipeline stages
func (c Code) IsPipeline() bool {
	switch c {
	case CodeLexical, CodeSyntax, CodeSemantic, CodeRuntime:
		return true
	default:
		return false
	}
}

// Category returns the broad category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeSyntax, CodeSemantic, CodeRuntime:
		return "program"
	case CodeDatabaseError:
		return "storage"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeInvalidInput, CodeNotFound:
		return "request"
	default:
		return "system"
	}
}
