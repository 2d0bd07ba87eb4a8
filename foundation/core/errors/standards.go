// File: standards.go
// Title: Mini-PL Error Taxonomy
// Description: Constructors and predicates for the four program error kinds
//              (lexical, syntax, semantic, runtime). Every stage of the
//              pipeline reports failures through these functions so that the
//              message format and the error code stay consistent.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for error standardization
// - 2025-10-17 v0.2.0: Replaced module codes with the Mini-PL error taxonomy

package errors

import (
	"errors"
	"fmt"

	mdwerror "github.com/msto63/minipl/foundation/core/error"
)

// Module identifiers used in error details
const (
	ModuleLexer       = "lexer"
	ModuleParser      = "parser"
	ModuleAnalyzer    = "analyzer"
	ModuleInterpreter = "interpreter"
	ModuleEngine      = "engine"
	ModuleConfig      = "config"
	ModuleRunStore    = "runstore"
	ModulePlayground  = "playground"
)

// Category names reported for program errors
const (
	CategoryLexical  = "lexical"
	CategorySyntax   = "syntax"
	CategorySemantic = "semantic"
	CategoryRuntime  = "runtime"
	CategoryInternal = "internal"
)

// TokenRef is the view of a token needed to build a positioned message.
// The parser's Token satisfies it.
type TokenRef interface {
	fmt.Stringer
	Pos() (line, column int)
}

// Lexical creates a lexical error. The message names the offending position
// because no token exists yet when the lexer fails.
func Lexical(message string, line, column int) *mdwerror.Error {
	return mdwerror.New(fmt.Sprintf("%s, position=%d:%d", message, line, column)).
		WithCode(mdwerror.CodeLexical).
		WithDetails(map[string]interface{}{
			"module": ModuleLexer,
			"line":   line,
			"column": column,
		})
}

// Syntax creates a syntax error referencing the token the parser stopped at
func Syntax(message string, tok TokenRef) *mdwerror.Error {
	return tokenError(message, tok, mdwerror.CodeSyntax, ModuleParser)
}

// Semantic creates a semantic error referencing the offending token.
// A nil token produces a plain message (used for a missing tree).
func Semantic(message string, tok TokenRef) *mdwerror.Error {
	return tokenError(message, tok, mdwerror.CodeSemantic, ModuleAnalyzer)
}

// Runtime creates a runtime error with a plain message
func Runtime(message string) *mdwerror.Error {
	return mdwerror.New(message).
		WithCode(mdwerror.CodeRuntime).
		WithDetail("module", ModuleInterpreter)
}

// Runtimef creates a runtime error with a formatted message
func Runtimef(format string, args ...interface{}) *mdwerror.Error {
	return mdwerror.Newf(format, args...).
		WithCode(mdwerror.CodeRuntime).
		WithDetail("module", ModuleInterpreter)
}

func tokenError(message string, tok TokenRef, code mdwerror.Code, module string) *mdwerror.Error {
	if tok == nil {
		return mdwerror.New(message).WithCode(code).WithDetail("module", module)
	}
	line, column := tok.Pos()
	return mdwerror.New(fmt.Sprintf("%s -> %s", message, tok.String())).
		WithCode(code).
		WithDetails(map[string]interface{}{
			"module": module,
			"line":   line,
			"column": column,
		})
}

// IsLexical reports whether err is a lexical error
func IsLexical(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeLexical)
}

// IsSyntax reports whether err is a syntax error
func IsSyntax(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeSyntax)
}

// IsSemantic reports whether err is a semantic error
func IsSemantic(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeSemantic)
}

// IsRuntime reports whether err is a runtime error
func IsRuntime(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeRuntime)
}

// IsProgramError reports whether err belongs to one of the four taxonomy kinds
func IsProgramError(err error) bool {
	return mdwerror.GetCode(err).IsPipeline()
}

// Category maps an error to its taxonomy category. Errors outside the
// taxonomy are reported as internal. A nil error has no category.
func Category(err error) string {
	if err == nil {
		return ""
	}
	switch mdwerror.GetCode(err) {
	case mdwerror.CodeLexical:
		return CategoryLexical
	case mdwerror.CodeSyntax:
		return CategorySyntax
	case mdwerror.CodeSemantic:
		return CategorySemantic
	case mdwerror.CodeRuntime:
		return CategoryRuntime
	default:
		return CategoryInternal
	}
}

// Message returns the innermost structured message of err, without any
// context that outer layers added while wrapping it
func Message(err error) string {
	if err == nil {
		return ""
	}
	var last *mdwerror.Error
	for e := err; e != nil; e = errors.Unwrap(e) {
		if me, ok := e.(*mdwerror.Error); ok {
			last = me
		}
	}
	if last == nil {
		return err.Error()
	}
	return last.Error()
}
