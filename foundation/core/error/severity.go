// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. Program errors raised by
//              the Mini-PL pipeline are low severity because they describe
//              faulty input, not a faulty system.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2025-10-17 v0.2.0: Severity mapping for the Mini-PL codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates an error caused by the program or request being processed
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error such as an unusable run history
	SeverityHigh

	// SeverityCritical indicates a critical error that makes the system unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeDatabaseError, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh

	case CodeTimeout:
		return SeverityMedium

	case CodeLexical, CodeSyntax, CodeSemantic, CodeRuntime,
		CodeInvalidInput, CodeNotFound:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
