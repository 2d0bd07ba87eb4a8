// Package error provides structured error handling for the Mini-PL toolchain.
//
// Package: error
// Title: Mini-PL Error Handling Framework
// Description: Structured errors with a classification code, a severity and
// contextual details. The pipeline stages (lexer, parser, semantic analyzer,
// interpreter) report failures through this type so that callers can tell
// them apart with HasCode.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-10-17 v0.2.0: Pipeline stage codes, dropped stack traces and i18n
//
// Usage:
//
//	import mdwerror "github.com/msto63/minipl/foundation/core/error"
//
//	err := mdwerror.New("Unexpected token").
//		WithCode(mdwerror.CodeSyntax).
//		WithDetail("line", 3)
//
//	if mdwerror.HasCode(err, mdwerror.CodeSyntax) {
//		// report syntax error
//	}
package error
