// File: nodes.go
// Title: Mini-PL AST Node Definitions
// Description: The closed set of syntax tree nodes produced by the parser.
//              Expressions and statements are separate interfaces sealed by
//              unexported marker methods, so the analyzer and interpreter
//              can switch over them exhaustively.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/minipl/foundation/minipl/token"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns Mini-PL source text for the node
	String() string

	// Position returns the source position of the node
	Position() Position

	node()
}

// Expr is a node that evaluates to a value
type Expr interface {
	Node
	exprNode()
}

// Statement is a node that is executed for its effect
type Statement interface {
	Node
	stmtNode()
}

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // byte offset, 0-based
}

// String returns line:column
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func positionOf(tok token.Token) Position {
	return Position{Line: tok.Line, Column: tok.Column, Offset: tok.Offset}
}

// Expressions

// Numeric is an integer literal
type Numeric struct {
	Token token.Token
	Value int64
}

// StringLiteral is a string literal with escapes already decoded
type StringLiteral struct {
	Token token.Token
	Value string
}

// BooleanLiteral is one of the literals true or false
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

// Variable is a reference to a named variable
type Variable struct {
	Token token.Token
	Name  string
}

// BinaryOperation applies an infix operator to two operands
type BinaryOperation struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// UnaryOperation applies a prefix + or - to an operand
type UnaryOperation struct {
	Operator token.Token
	Operand  Expr
}

// Statements

// TypeSpec names one of the builtin types in a declaration
type TypeSpec struct {
	Token token.Token
	Name  string
}

// VariableDeclaration declares a variable with an optional initializer
type VariableDeclaration struct {
	Token       token.Token // the var keyword
	Variable    *Variable
	Type        *TypeSpec
	Initializer Expr // nil when absent
}

// Assignment stores the value of an expression in a declared variable
type Assignment struct {
	Target   *Variable
	Operator token.Token
	Value    Expr
}

// For executes Body once for every value of Variable in Start..End inclusive
type For struct {
	Token    token.Token // the for keyword
	Variable *Variable
	Start    Expr
	End      Expr
	Body     *StatementList
}

// Read reads one input line into Target
type Read struct {
	Token  token.Token
	Target *Variable
}

// Print writes the value of Expr without a trailing newline
type Print struct {
	Token token.Token
	Expr  Expr
}

// Assert writes TRUE or FALSE for the value of Expr
type Assert struct {
	Token token.Token
	Expr  Expr
}

// NoOperation is the empty statement
type NoOperation struct {
	Pos Position
}

// StatementList is an ordered sequence of statements. It is both the root
// of a program and the body of a for loop.
type StatementList struct {
	Pos        Position
	Statements []Statement
}

// Marker methods

func (*Numeric) node()             {}
func (*StringLiteral) node()       {}
func (*BooleanLiteral) node()      {}
func (*Variable) node()            {}
func (*BinaryOperation) node()     {}
func (*UnaryOperation) node()      {}
func (*TypeSpec) node()            {}
func (*VariableDeclaration) node() {}
func (*Assignment) node()          {}
func (*For) node()                 {}
func (*Read) node()                {}
func (*Print) node()               {}
func (*Assert) node()              {}
func (*NoOperation) node()         {}
func (*StatementList) node()       {}

func (*Numeric) exprNode()         {}
func (*StringLiteral) exprNode()   {}
func (*BooleanLiteral) exprNode()  {}
func (*Variable) exprNode()        {}
func (*BinaryOperation) exprNode() {}
func (*UnaryOperation) exprNode()  {}

func (*VariableDeclaration) stmtNode() {}
func (*Assignment) stmtNode()          {}
func (*For) stmtNode()                 {}
func (*Read) stmtNode()                {}
func (*Print) stmtNode()               {}
func (*Assert) stmtNode()              {}
func (*NoOperation) stmtNode()         {}

// Positions

func (n *Numeric) Position() Position             { return positionOf(n.Token) }
func (n *StringLiteral) Position() Position       { return positionOf(n.Token) }
func (n *BooleanLiteral) Position() Position      { return positionOf(n.Token) }
func (n *Variable) Position() Position            { return positionOf(n.Token) }
func (n *BinaryOperation) Position() Position     { return n.Left.Position() }
func (n *UnaryOperation) Position() Position      { return positionOf(n.Operator) }
func (n *TypeSpec) Position() Position            { return positionOf(n.Token) }
func (n *VariableDeclaration) Position() Position { return positionOf(n.Token) }
func (n *Assignment) Position() Position          { return n.Target.Position() }
func (n *For) Position() Position                 { return positionOf(n.Token) }
func (n *Read) Position() Position                { return positionOf(n.Token) }
func (n *Print) Position() Position               { return positionOf(n.Token) }
func (n *Assert) Position() Position              { return positionOf(n.Token) }
func (n *NoOperation) Position() Position         { return n.Pos }
func (n *StatementList) Position() Position       { return n.Pos }

// Source rendering. Binary operations are fully parenthesized because the
// grammar gives all expression operators the same precedence.

func (n *Numeric) String() string {
	return strconv.FormatInt(n.Value, 10)
}

func (n *StringLiteral) String() string {
	return quote(n.Value)
}

func (n *BooleanLiteral) String() string {
	return strconv.FormatBool(n.Value)
}

func (n *Variable) String() string {
	return n.Name
}

func (n *BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Operator.Lexeme, n.Right)
}

func (n *UnaryOperation) String() string {
	return n.Operator.Lexeme + n.Operand.String()
}

func (n *TypeSpec) String() string {
	return n.Name
}

func (n *VariableDeclaration) String() string {
	s := fmt.Sprintf("var %s : %s", n.Variable, n.Type)
	if n.Initializer != nil {
		s += " := " + n.Initializer.String()
	}
	return s
}

func (n *Assignment) String() string {
	return fmt.Sprintf("%s := %s", n.Target, n.Value)
}

func (n *For) String() string {
	return fmt.Sprintf("for %s in %s..%s do %s end for", n.Variable, n.Start, n.End, n.Body)
}

func (n *Read) String() string {
	return "read " + n.Target.String()
}

func (n *Print) String() string {
	return "print " + n.Expr.String()
}

func (n *Assert) String() string {
	return "assert (" + n.Expr.String() + ")"
}

func (n *NoOperation) String() string {
	return ""
}

func (n *StatementList) String() string {
	parts := make([]string, 0, len(n.Statements))
	for _, stmt := range n.Statements {
		parts = append(parts, stmt.String())
	}
	return strings.Join(parts, "; ")
}

var quoteReplacer = strings.NewReplacer(
	"\\", `\\`,
	"\a", `\a`,
	"\b", `\b`,
	"\f", `\f`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\v", `\v`,
)

// quote renders s as a Mini-PL string literal
func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

// Inspect traverses the tree in pre-order, calling fn for every node.
// Children of a node are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *BinaryOperation:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *UnaryOperation:
		Inspect(n.Operand, fn)
	case *VariableDeclaration:
		Inspect(n.Variable, fn)
		Inspect(n.Type, fn)
		if n.Initializer != nil {
			Inspect(n.Initializer, fn)
		}
	case *Assignment:
		Inspect(n.Target, fn)
		Inspect(n.Value, fn)
	case *For:
		Inspect(n.Variable, fn)
		Inspect(n.Start, fn)
		Inspect(n.End, fn)
		Inspect(n.Body, fn)
	case *Read:
		Inspect(n.Target, fn)
	case *Print:
		Inspect(n.Expr, fn)
	case *Assert:
		Inspect(n.Expr, fn)
	case *StatementList:
		for _, stmt := range n.Statements {
			Inspect(stmt, fn)
		}
	}
}

// Count returns the number of nodes in the tree rooted at n
func Count(n Node) int {
	count := 0
	Inspect(n, func(Node) bool {
		count++
		return true
	})
	return count
}
