// Package errors provides the standard error constructors of the Mini-PL
// toolchain.
//
// Package: errors
// Title: Mini-PL Error Taxonomy
// Description: Builds on the core error package. Program failures are
// classified into exactly four kinds, one per pipeline stage, and every
// kind carries its own error code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for cross-module error standardization
// - 2025-10-17 v0.2.0: Mini-PL taxonomy
//
// Kinds:
//
//	Lexical   LEXICAL_ERROR   invalid character, bad escape, unterminated literal or comment
//	Syntax    SYNTAX_ERROR    unexpected token, trailing input after the program
//	Semantic  SEMANTIC_ERROR  duplicate declaration, undeclared identifier, missing tree
//	Runtime   RUNTIME_ERROR   bad operand types, invalid input, division by zero
//
// Syntax and semantic messages end with the token the failure refers to:
//
//	Unexpected token -> Token(SEMI, ;, position=1:9)
package errors
