// File: analyzer.go
// Title: Mini-PL Semantic Analyzer
// Description: First pass over the syntax tree. Resolves every variable
//              reference against the symbol table, rejects duplicate
//              declarations and records the declared type of each
//              variable. Operand types are not checked here; the
//              interpreter does that at runtime.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial analyzer

package semantic

import (
	"fmt"

	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	mdwlog "github.com/msto63/minipl/foundation/core/log"
	"github.com/msto63/minipl/foundation/minipl/ast"
	"github.com/msto63/minipl/foundation/minipl/parser"
	"github.com/msto63/minipl/foundation/minipl/symbols"
)

// Analyzer drives the parser and checks the resulting tree
type Analyzer struct {
	parser *parser.Parser
	tree   *ast.StatementList
	table  *symbols.Table
	logger *mdwlog.Logger

	analyzed bool
	err      error
}

// Options configures the analyzer
type Options struct {
	Logger *mdwlog.Logger
}

// New creates an analyzer for the program produced by p
func New(p *parser.Parser, opts Options) *Analyzer {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	return &Analyzer{
		parser: p,
		table:  symbols.NewTable(),
		logger: opts.Logger.WithField("component", "minipl-analyzer"),
	}
}

// Analyze parses the program and checks it. Parse errors are returned
// unchanged; the first semantic violation stops the walk.
// The result is computed once.
func (a *Analyzer) Analyze() error {
	if a.analyzed {
		return a.err
	}
	a.analyzed = true
	a.err = a.analyze()
	return a.err
}

func (a *Analyzer) analyze() error {
	if a.parser == nil {
		return mdwerrors.Semantic("Parser is null!", nil)
	}

	tree, err := a.parser.Parse()
	if err != nil {
		return err
	}
	if tree == nil {
		return mdwerrors.Semantic("Parser tree is null!", nil)
	}
	a.tree = tree

	a.logger.Debug("Starting semantic analysis", mdwlog.Fields{
		"statements": len(tree.Statements),
	})

	if err := a.visitStatementList(tree); err != nil {
		a.logger.Warn("Semantic analysis failed", mdwlog.Fields{"error": err.Error()})
		return err
	}

	a.logger.Debug("Semantic analysis completed", mdwlog.Fields{
		"variables": len(a.table.Variables()),
	})
	return nil
}

// Tree returns the analyzed program, nil before a successful parse
func (a *Analyzer) Tree() *ast.StatementList {
	return a.tree
}

// Symbols returns the symbol table built during analysis
func (a *Analyzer) Symbols() *symbols.Table {
	return a.table
}

// Analyzed reports whether Analyze completed without error
func (a *Analyzer) Analyzed() bool {
	return a.analyzed && a.err == nil
}

func (a *Analyzer) visitStatementList(list *ast.StatementList) error {
	for _, stmt := range list.Statements {
		if err := a.visitStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visitStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		return a.visitDeclaration(s)

	case *ast.Assignment:
		if _, ok := a.table.Lookup(s.Target.Name); !ok {
			return mdwerrors.Semantic("Variable name not found", s.Target.Token)
		}
		return a.visitExpr(s.Value)

	case *ast.For:
		if err := a.visitVariable(s.Variable); err != nil {
			return err
		}
		if err := a.visitExpr(s.Start); err != nil {
			return err
		}
		if err := a.visitExpr(s.End); err != nil {
			return err
		}
		return a.visitStatementList(s.Body)

	case *ast.Read:
		return a.visitVariable(s.Target)

	case *ast.Print:
		return a.visitExpr(s.Expr)

	case *ast.Assert:
		return a.visitExpr(s.Expr)

	case *ast.NoOperation:
		return nil

	default:
		return mdwerrors.Semantic(fmt.Sprintf("Unsupported statement %T", stmt), nil)
	}
}

func (a *Analyzer) visitDeclaration(decl *ast.VariableDeclaration) error {
	typ, ok := a.table.LookupType(decl.Type.Name)
	if !ok {
		return mdwerrors.Semantic("Type not found", decl.Type.Token)
	}

	if decl.Initializer != nil {
		if err := a.visitExpr(decl.Initializer); err != nil {
			return err
		}
	}

	if _, exists := a.table.Lookup(decl.Variable.Name); exists {
		return mdwerrors.Semantic("Duplicate identifier found", decl.Variable.Token)
	}

	a.table.Define(symbols.NewVariable(decl.Variable.Name, typ))
	a.logger.Trace("Variable declared", mdwlog.Fields{
		"name": decl.Variable.Name,
		"type": typ.Name(),
	})
	return nil
}

func (a *Analyzer) visitVariable(v *ast.Variable) error {
	if _, ok := a.table.Lookup(v.Name); !ok {
		return mdwerrors.Semantic("Identifier not found", v.Token)
	}
	return nil
}

func (a *Analyzer) visitExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.Numeric, *ast.StringLiteral, *ast.BooleanLiteral:
		return nil
	case *ast.Variable:
		return a.visitVariable(e)
	case *ast.BinaryOperation:
		if err := a.visitExpr(e.Left); err != nil {
			return err
		}
		return a.visitExpr(e.Right)
	case *ast.UnaryOperation:
		return a.visitExpr(e.Operand)
	default:
		return mdwerrors.Semantic(fmt.Sprintf("Unsupported expression %T", expr), nil)
	}
}
