// Package ast defines the syntax tree of Mini-PL programs.
//
// The node set is closed: Expr is implemented by Numeric, StringLiteral,
// BooleanLiteral, Variable, BinaryOperation and UnaryOperation, Statement
// by VariableDeclaration, Assignment, For, Read, Print, Assert and
// NoOperation. A program is a *StatementList. Every node keeps the token it
// was parsed from so later passes can report positioned errors.
package ast
