// File: token.go
// Title: Mini-PL Tokens
// Description: Token types and the Token value produced by the lexer.
//              Token kinds print with their upper-case names so that error
//              messages read Token(SEMI, ;, position=1:9).
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial token model

package token

import (
	"fmt"
	"strconv"
)

// Type represents the kind of a lexical token
type Type int

const (
	// Operators
	Minus Type = iota // -
	Plus              // +
	Mul               // *
	Div               // /
	Equal             // =
	Less              // <
	And               // &
	Not               // !

	// Keywords
	Var
	For
	End
	In
	Do
	Read
	Print
	Int
	String // keyword "string" and string literals
	Bool   // keyword "bool" and the literals true/false
	Assert

	// Marks
	LeftBracket  // (
	RightBracket // )
	Assign       // :=
	Semi         // ;
	Colon        // :
	Dot          // .

	// Terminals
	Integer
	ID
	EOF
)

var typeNames = [...]string{
	Minus:        "MINUS",
	Plus:         "PLUS",
	Mul:          "MUL",
	Div:          "DIV",
	Equal:        "EQUAL",
	Less:         "LESS",
	And:          "AND",
	Not:          "NOT",
	Var:          "VAR",
	For:          "FOR",
	End:          "END",
	In:           "IN",
	Do:           "DO",
	Read:         "READ",
	Print:        "PRINT",
	Int:          "INT",
	String:       "STRING",
	Bool:         "BOOL",
	Assert:       "ASSERT",
	LeftBracket:  "LEFTBRACKET",
	RightBracket: "RIGHTBRACKET",
	Assign:       "ASSIGN",
	Semi:         "SEMI",
	Colon:        "COLON",
	Dot:          "DOT",
	Integer:      "INTEGER",
	ID:           "ID",
	EOF:          "EOF",
}

// String returns the upper-case name of the token type
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// IsOperator reports whether the token type is one of the operators
func (t Type) IsOperator() bool {
	return t >= Minus && t <= Not
}

// Reserved words. The literals true and false are kept apart because they
// share the BOOL kind with the type keyword.
var keywords = map[string]Type{
	"var":    Var,
	"for":    For,
	"end":    End,
	"in":     In,
	"do":     Do,
	"read":   Read,
	"print":  Print,
	"int":    Int,
	"string": String,
	"bool":   Bool,
	"assert": Assert,
}

var boolLiterals = map[string]bool{
	"true":  true,
	"false": false,
}

var punctuation = map[rune]Type{
	'-': Minus,
	'+': Plus,
	'*': Mul,
	'/': Div,
	'=': Equal,
	'<': Less,
	'&': And,
	'!': Not,
	'(': LeftBracket,
	')': RightBracket,
	';': Semi,
	':': Colon,
	'.': Dot,
}

// Lookup returns the token type for an identifier-shaped word
func Lookup(word string) Type {
	if t, ok := keywords[word]; ok {
		return t
	}
	if _, ok := boolLiterals[word]; ok {
		return Bool
	}
	return ID
}

// BoolLiteral returns the value of the literal true or false
func BoolLiteral(word string) (value, ok bool) {
	value, ok = boolLiterals[word]
	return value, ok
}

// Punctuation returns the token type of a single-character token
func Punctuation(r rune) (Type, bool) {
	t, ok := punctuation[r]
	return t, ok
}

// IsReserved reports whether word cannot be used as an identifier
func IsReserved(word string) bool {
	return Lookup(word) != ID
}

// Token is a lexical token with its source position.
//
// Value holds an int64 for INTEGER, a bool for the literals true and false,
// a string for identifiers, keywords and string literals (already
// unescaped), a rune for punctuation and nil for EOF. Lexeme is the exact
// source text the token was scanned from.
type Token struct {
	Type   Type
	Value  interface{}
	Lexeme string
	Offset int // byte offset of the token start
	Line   int // 1-based
	Column int // 1-based
}

// String renders the token as Token(KIND, value, position=line:column)
func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %s, position=%d:%d)", t.Type, t.ValueString(), t.Line, t.Column)
}

// ValueString returns the textual form of the token value
func (t Token) ValueString() string {
	switch v := t.Value.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case rune:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Pos returns the line and column of the token start
func (t Token) Pos() (line, column int) {
	return t.Line, t.Column
}

// IsKeyword reports whether the token was scanned from a reserved word.
// The string literal "int" has the STRING kind but is not a keyword.
func (t Token) IsKeyword() bool {
	kind, ok := keywords[t.Lexeme]
	return ok && kind == t.Type
}

// IsBoolLiteral reports whether the token is one of the literals true or false
func (t Token) IsBoolLiteral() bool {
	_, ok := t.Value.(bool)
	return ok && t.Type == Bool
}

// IsStringLiteral reports whether the token is a quoted string literal
func (t Token) IsStringLiteral() bool {
	return t.Type == String && !t.IsKeyword()
}
