// File: utils.go
// Title: Shared Error Handling Utilities
// Description: Helpers for errors raised outside the program pipeline:
//              configuration, run history and the playground server.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of shared error utilities
// - 2025-10-17 v0.2.0: Trimmed to the helpers used by the Mini-PL surfaces

package errors

import (
	"fmt"

	mdwerror "github.com/msto63/minipl/foundation/core/error"
)

// InvalidInput creates a standardized invalid input error
func InvalidInput(module, operation string, input interface{}, expected string) *mdwerror.Error {
	return mdwerror.Newf("invalid input: expected %s", expected).
		WithCode(mdwerror.CodeInvalidInput).
		WithDetails(map[string]interface{}{
			"module":    module,
			"operation": operation,
			"input":     input,
		}).
		WithOperation(operation)
}

// NotFound creates a standardized not found error
func NotFound(module, operation string, identifier interface{}) *mdwerror.Error {
	return mdwerror.Newf("%v not found", identifier).
		WithCode(mdwerror.CodeNotFound).
		WithDetails(map[string]interface{}{
			"module":     module,
			"operation":  operation,
			"identifier": identifier,
		}).
		WithOperation(operation)
}

// OperationFailed wraps cause with module and operation context
func OperationFailed(module, operation string, code mdwerror.Code, cause error) *mdwerror.Error {
	return mdwerror.Wrap(cause, fmt.Sprintf("%s.%s failed", module, operation)).
		WithCode(code).
		WithDetails(map[string]interface{}{
			"module":    module,
			"operation": operation,
		}).
		WithOperation(operation)
}

// ExtractModule returns the module detail of err, or "" if it has none
func ExtractModule(err error) string {
	return extractString(err, "module")
}

// ExtractOperation returns the operation detail of err, or "" if it has none
func ExtractOperation(err error) string {
	return extractString(err, "operation")
}

func extractString(err error, key string) string {
	me, ok := asError(err)
	if !ok {
		return ""
	}
	if v, ok := me.Details()[key].(string); ok {
		return v
	}
	return ""
}

func asError(err error) (*mdwerror.Error, bool) {
	for e := err; e != nil; {
		if me, ok := e.(*mdwerror.Error); ok {
			return me, true
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		e = u.Unwrap()
	}
	return nil, false
}
