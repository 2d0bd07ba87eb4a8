// File: dump.go
// Title: AST Tree Printer
// Description: Renders a syntax tree as an indented outline, one node per
//              line, used by the CLI ast command and in tests.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial tree printer

package ast

import (
	"fmt"
	"strings"
)

type dumper struct {
	buffer strings.Builder
	indent int
}

// Dump returns an indented outline of the tree rooted at n
func Dump(n Node) string {
	d := &dumper{}
	d.node(n)
	return d.buffer.String()
}

func (d *dumper) line(format string, args ...interface{}) {
	d.buffer.WriteString(strings.Repeat("  ", d.indent))
	fmt.Fprintf(&d.buffer, format, args...)
	d.buffer.WriteByte('\n')
}

func (d *dumper) child(label string, n Node) {
	d.line("%s:", label)
	d.indent++
	d.node(n)
	d.indent--
}

func (d *dumper) node(n Node) {
	switch n := n.(type) {
	case nil:
		d.line("<nil>")
	case *Numeric:
		d.line("Numeric %d", n.Value)
	case *StringLiteral:
		d.line("StringLiteral %s", quote(n.Value))
	case *BooleanLiteral:
		d.line("BooleanLiteral %t", n.Value)
	case *Variable:
		d.line("Variable %s", n.Name)
	case *TypeSpec:
		d.line("Type %s", n.Name)
	case *BinaryOperation:
		d.line("BinaryOperation %s", n.Operator.Type)
		d.indent++
		d.node(n.Left)
		d.node(n.Right)
		d.indent--
	case *UnaryOperation:
		d.line("UnaryOperation %s", n.Operator.Type)
		d.indent++
		d.node(n.Operand)
		d.indent--
	case *VariableDeclaration:
		d.line("VariableDeclaration %s : %s", n.Variable.Name, n.Type.Name)
		if n.Initializer != nil {
			d.indent++
			d.child("Initializer", n.Initializer)
			d.indent--
		}
	case *Assignment:
		d.line("Assignment %s", n.Target.Name)
		d.indent++
		d.node(n.Value)
		d.indent--
	case *For:
		d.line("For %s", n.Variable.Name)
		d.indent++
		d.child("Start", n.Start)
		d.child("End", n.End)
		d.child("Body", n.Body)
		d.indent--
	case *Read:
		d.line("Read %s", n.Target.Name)
	case *Print:
		d.line("Print")
		d.indent++
		d.node(n.Expr)
		d.indent--
	case *Assert:
		d.line("Assert")
		d.indent++
		d.node(n.Expr)
		d.indent--
	case *NoOperation:
		d.line("NoOperation")
	case *StatementList:
		d.line("StatementList (%d)", len(n.Statements))
		d.indent++
		for _, stmt := range n.Statements {
			d.node(stmt)
		}
		d.indent--
	default:
		d.line("%T", n)
	}
}
