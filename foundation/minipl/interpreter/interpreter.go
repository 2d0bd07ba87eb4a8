// File: interpreter.go
// Title: Mini-PL Tree-Walking Interpreter
// Description: Second pass over an analyzed program. Evaluates expressions,
//              maintains the global value store and performs all program
//              input and output.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial interpreter

package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	mdwlog "github.com/msto63/minipl/foundation/core/log"
	"github.com/msto63/minipl/foundation/minipl/ast"
	"github.com/msto63/minipl/foundation/minipl/semantic"
	"github.com/msto63/minipl/foundation/minipl/symbols"
)

// Interpreter executes the tree held by a semantic analyzer
type Interpreter struct {
	analyzer *semantic.Analyzer
	store    map[string]Value
	output   io.Writer
	input    LineReader
	logger   *mdwlog.Logger

	maxIterations int64
	iterations    int64
}

// Options configures an interpreter
type Options struct {
	Logger *mdwlog.Logger

	// Output receives print and assert text. Defaults to io.Discard.
	Output io.Writer

	// Input supplies lines to read statements. A nil Input makes every
	// read fail with end of input.
	Input LineReader

	// MaxIterations bounds the total number of loop iterations of one run.
	// Zero means unlimited.
	MaxIterations int64
}

// New creates an interpreter for the program checked by a
func New(a *semantic.Analyzer, opts Options) *Interpreter {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	if opts.Input == nil {
		opts.Input = NewLinesReader()
	}
	return &Interpreter{
		analyzer:      a,
		store:         make(map[string]Value),
		output:        opts.Output,
		input:         opts.Input,
		logger:        opts.Logger.WithField("component", "minipl-interpreter"),
		maxIterations: opts.MaxIterations,
	}
}

// Interpret runs the program. The analyzer is run first if that has not
// happened yet; its error is returned unchanged.
func (in *Interpreter) Interpret(ctx context.Context) error {
	if in.analyzer == nil {
		return mdwerrors.Runtime("Can not interpret because the tree is null")
	}
	if err := in.analyzer.Analyze(); err != nil {
		return err
	}

	tree := in.analyzer.Tree()
	if tree == nil {
		return mdwerrors.Runtime("Can not interpret because the tree is null")
	}

	in.logger.Debug("Starting interpretation", mdwlog.Fields{
		"statements": len(tree.Statements),
	})

	if err := in.execList(ctx, tree); err != nil {
		in.logger.Warn("Interpretation failed", mdwlog.Fields{"error": err.Error()})
		return err
	}

	in.logger.Debug("Interpretation completed", mdwlog.Fields{
		"variables":  len(in.store),
		"iterations": in.iterations,
	})
	return nil
}

// Store returns a copy of the global value store
func (in *Interpreter) Store() map[string]Value {
	result := make(map[string]Value, len(in.store))
	for k, v := range in.store {
		result[k] = v
	}
	return result
}

// Lookup returns the current value of a variable
func (in *Interpreter) Lookup(name string) (Value, bool) {
	v, ok := in.store[name]
	return v, ok
}

func (in *Interpreter) execList(ctx context.Context, list *ast.StatementList) error {
	for _, stmt := range list.Statements {
		if err := in.exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(ctx context.Context, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		if s.Initializer == nil {
			in.store[s.Variable.Name] = ZeroValue(s.Type.Name)
			return nil
		}
		v, err := in.eval(s.Initializer)
		if err != nil {
			return err
		}
		in.store[s.Variable.Name] = v
		return nil

	case *ast.Assignment:
		v, err := in.eval(s.Value)
		if err != nil {
			return err
		}
		in.store[s.Target.Name] = v
		return nil

	case *ast.For:
		return in.execFor(ctx, s)

	case *ast.Read:
		return in.execRead(ctx, s)

	case *ast.Print:
		v, err := in.eval(s.Expr)
		if err != nil {
			return err
		}
		return in.write(v.String())

	case *ast.Assert:
		v, err := in.eval(s.Expr)
		if err != nil {
			return err
		}
		if v.Kind != KindBool {
			return mdwerrors.Runtimef("Assert expects a bool expression, got %s", v.Kind)
		}
		if !v.Bool {
			in.logger.Debug("Assertion failed", mdwlog.Fields{"expr": s.Expr.String()})
		}
		return in.write(strings.ToUpper(v.String()))

	case *ast.NoOperation:
		return nil

	default:
		return mdwerrors.Runtimef("Unsupported statement %T", stmt)
	}
}

func (in *Interpreter) execFor(ctx context.Context, s *ast.For) error {
	start, err := in.eval(s.Start)
	if err != nil {
		return err
	}
	end, err := in.eval(s.End)
	if err != nil {
		return err
	}
	if start.Kind != KindInt || end.Kind != KindInt {
		return mdwerrors.Runtimef("For range bounds must be int, got %s..%s", start.Kind, end.Kind)
	}

	name := s.Variable.Name
	for i := start.Int; i <= end.Int; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		in.iterations++
		if in.maxIterations > 0 && in.iterations > in.maxIterations {
			return mdwerrors.Runtimef("Iteration limit of %d exceeded", in.maxIterations)
		}

		in.store[name] = IntValue(i)
		if err := in.execList(ctx, s.Body); err != nil {
			return err
		}
		if i == end.Int {
			break
		}
	}
	return nil
}

func (in *Interpreter) execRead(ctx context.Context, s *ast.Read) error {
	line, err := in.input.ReadLine(ctx)
	if err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return mdwerrors.Runtime("Invalid input. End of input reached.")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			return mdwerrors.Runtimef("Invalid input. %v", err)
		}
	}

	typeName := symbols.TypeString
	if sym, ok := in.analyzer.Symbols().LookupVariable(s.Target.Name); ok {
		typeName = sym.TypeName()
	}

	if typeName == symbols.TypeInt {
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return mdwerrors.Runtime("Invalid input. Expected input value is a number.")
		}
		in.store[s.Target.Name] = IntValue(n)
		return nil
	}

	in.store[s.Target.Name] = StringValue(line)
	return nil
}

func (in *Interpreter) eval(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Numeric:
		return IntValue(e.Value), nil
	case *ast.StringLiteral:
		return StringValue(e.Value), nil
	case *ast.BooleanLiteral:
		return BoolValue(e.Value), nil

	case *ast.Variable:
		v, ok := in.store[e.Name]
		if !ok {
			return Value{}, mdwerrors.Runtimef("Variable %s has no value", e.Name)
		}
		return v, nil

	case *ast.BinaryOperation:
		left, err := in.eval(e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := in.eval(e.Right)
		if err != nil {
			return Value{}, err
		}
		return binary(e.Operator, left, right)

	case *ast.UnaryOperation:
		operand, err := in.eval(e.Operand)
		if err != nil {
			return Value{}, err
		}
		return unary(e.Operator, operand)

	default:
		return Value{}, mdwerrors.Runtimef("Unsupported expression %T", expr)
	}
}

func (in *Interpreter) write(text string) error {
	if _, err := io.WriteString(in.output, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
