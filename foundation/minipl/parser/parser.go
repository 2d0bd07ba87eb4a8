// File: parser.go
// Title: Mini-PL Recursive Descent Parser
// Description: Builds the syntax tree of a Mini-PL program from the token
//              stream of a Lexer. Predictive with one token of lookahead;
//              the first unexpected token aborts parsing with a syntax
//              error that names the offending token.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"

	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	mdwlog "github.com/msto63/minipl/foundation/core/log"
	"github.com/msto63/minipl/foundation/minipl/ast"
	"github.com/msto63/minipl/foundation/minipl/token"
)

// DefaultMaxDepth bounds the nesting of expressions and loops
const DefaultMaxDepth = 1000

// Parser implements recursive descent parsing for Mini-PL
type Parser struct {
	lexer    *Lexer
	current  token.Token
	previous token.Token
	logger   *mdwlog.Logger
	options  Options

	depth  int
	tokens int

	parsed bool
	tree   *ast.StatementList
	err    error
}

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger

	// MaxDepth limits nesting of parenthesized expressions, unary prefixes
	// and for loops. Zero selects DefaultMaxDepth.
	MaxDepth int
}

// New creates a parser reading tokens from lexer
func New(lexer *Lexer, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return &Parser{
		lexer:   lexer,
		logger:  opts.Logger.WithField("component", "minipl-parser"),
		options: opts,
	}
}

// Parse consumes the whole token stream and returns the program.
// The result is computed once; later calls return the same tree or error.
func (p *Parser) Parse() (*ast.StatementList, error) {
	if p.parsed {
		return p.tree, p.err
	}
	p.parsed = true
	p.tree, p.err = p.parseProgram()
	return p.tree, p.err
}

func (p *Parser) parseProgram() (*ast.StatementList, error) {
	if p.lexer == nil {
		return nil, mdwerrors.Syntax("No lexer to read tokens from", nil)
	}

	p.logger.Debug("Starting Mini-PL parsing")

	if err := p.advance(); err != nil {
		return nil, p.fail(err)
	}

	program, err := p.parseStatementList()
	if err != nil {
		return nil, p.fail(err)
	}

	if p.current.Type != token.EOF {
		return nil, p.fail(p.parseError("Expected EOF token type but token type is " + p.current.Type.String()))
	}

	p.logger.Debug("Mini-PL parsing completed", mdwlog.Fields{
		"statements": len(program.Statements),
		"tokens":     p.tokens,
	})
	return program, nil
}

func (p *Parser) fail(err error) error {
	p.logger.Warn("Mini-PL parsing failed", mdwlog.Fields{
		"error":  err.Error(),
		"tokens": p.tokens,
	})
	return err
}

// statement_list := statement (SEMI statement)*
func (p *Parser) parseStatementList() (*ast.StatementList, error) {
	list := &ast.StatementList{Pos: p.currentPosition()}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	list.Statements = append(list.Statements, stmt)

	for p.current.Type == token.Semi {
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		list.Statements = append(list.Statements, stmt)
	}

	if p.current.Type == token.ID {
		return nil, p.parseError("Token type can not be ID")
	}
	return list, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Type {
	case token.Var:
		return p.parseVariableDeclaration()
	case token.ID:
		return p.parseAssignment()
	case token.For:
		return p.parseFor()
	case token.Read:
		return p.parseRead()
	case token.Print:
		return p.parsePrint()
	case token.Assert:
		return p.parseAssert()
	default:
		return &ast.NoOperation{Pos: p.currentPosition()}, nil
	}
}

// var_decl := VAR ID COLON type_spec [ASSIGN expr]
func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	decl := &ast.VariableDeclaration{Token: p.current}
	if err := p.eat(token.Var); err != nil {
		return nil, err
	}

	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	decl.Variable = variable

	if err := p.eat(token.Colon); err != nil {
		return nil, err
	}

	typeSpec, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	decl.Type = typeSpec

	if p.current.Type == token.Assign {
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Initializer = init
	}
	return decl, nil
}

// type_spec := INT | STRING | BOOL
func (p *Parser) parseTypeSpec() (*ast.TypeSpec, error) {
	tok := p.current
	switch tok.Type {
	case token.Int, token.String, token.Bool:
		if !tok.IsKeyword() {
			return nil, p.parseError("Invalid token type")
		}
	default:
		return nil, p.parseError("Invalid token type")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.TypeSpec{Token: tok, Name: tok.Lexeme}, nil
}

// assignment := ID ASSIGN expr
func (p *Parser) parseAssignment() (ast.Statement, error) {
	target, err := p.parseVariable()
	if err != nil {
		return nil, err
	}

	op := p.current
	if err := p.eat(token.Assign); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Target: target, Operator: op, Value: value}, nil
}

// for_stmt := FOR ID IN expr DOT DOT expr DO statement_list END FOR
func (p *Parser) parseFor() (ast.Statement, error) {
	loop := &ast.For{Token: p.current}
	if err := p.eat(token.For); err != nil {
		return nil, err
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	loop.Variable = variable

	if err := p.eat(token.In); err != nil {
		return nil, err
	}
	if loop.Start, err = p.parseExpr(); err != nil {
		return nil, err
	}
	if err := p.eat(token.Dot); err != nil {
		return nil, err
	}
	if err := p.eat(token.Dot); err != nil {
		return nil, err
	}
	if loop.End, err = p.parseExpr(); err != nil {
		return nil, err
	}
	if err := p.eat(token.Do); err != nil {
		return nil, err
	}
	if loop.Body, err = p.parseStatementList(); err != nil {
		return nil, err
	}
	if err := p.eat(token.End); err != nil {
		return nil, err
	}
	if err := p.eat(token.For); err != nil {
		return nil, err
	}
	return loop, nil
}

// read_stmt := READ ID
func (p *Parser) parseRead() (ast.Statement, error) {
	stmt := &ast.Read{Token: p.current}
	if err := p.eat(token.Read); err != nil {
		return nil, err
	}
	target, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	stmt.Target = target
	return stmt, nil
}

// print_stmt := PRINT expr
func (p *Parser) parsePrint() (ast.Statement, error) {
	stmt := &ast.Print{Token: p.current}
	if err := p.eat(token.Print); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt.Expr = expr
	return stmt, nil
}

// assert_stmt := ASSERT LEFTBRACKET expr RIGHTBRACKET
func (p *Parser) parseAssert() (ast.Statement, error) {
	stmt := &ast.Assert{Token: p.current}
	if err := p.eat(token.Assert); err != nil {
		return nil, err
	}
	if err := p.eat(token.LeftBracket); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.RightBracket); err != nil {
		return nil, err
	}
	stmt.Expr = expr
	return stmt, nil
}

func (p *Parser) parseVariable() (*ast.Variable, error) {
	tok := p.current
	if err := p.eat(token.ID); err != nil {
		return nil, err
	}
	return &ast.Variable{Token: tok, Name: tok.Lexeme}, nil
}

// Binary operators of the two expression tiers
var (
	exprOperators = map[token.Type]bool{
		token.Plus:  true,
		token.Minus: true,
		token.Equal: true,
		token.Less:  true,
		token.And:   true,
		token.Not:   true,
	}
	termOperators = map[token.Type]bool{
		token.Mul: true,
		token.Div: true,
	}
)

// expr := term ((PLUS|MINUS|EQUAL|LESS|AND|NOT) term)*
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinary(exprOperators, p.parseTerm)
}

// term := factor ((MUL|DIV) factor)*
func (p *Parser) parseTerm() (ast.Expr, error) {
	return p.parseBinary(termOperators, p.parseFactor)
}

// parseBinary parses a left-associative chain of operands joined by ops
func (p *Parser) parseBinary(ops map[token.Type]bool, operand func() (ast.Expr, error)) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for ops[p.current.Type] {
		op := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

// factor := (PLUS|MINUS) factor | INTEGER | STRING | BOOL | LEFTBRACKET expr RIGHTBRACKET | ID
func (p *Parser) parseFactor() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.current
	switch {
	case tok.Type == token.Plus || tok.Type == token.Minus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperation{Operator: tok, Operand: operand}, nil

	case tok.Type == token.Integer:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Numeric{Token: tok, Value: tok.Value.(int64)}, nil

	case tok.IsStringLiteral():
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Token: tok, Value: tok.Value.(string)}, nil

	case tok.IsBoolLiteral():
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.BooleanLiteral{Token: tok, Value: tok.Value.(bool)}, nil

	case tok.Type == token.LeftBracket:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.eat(token.RightBracket); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return p.parseVariable()
	}
}

// Utility methods

// advance moves to the next token
func (p *Parser) advance() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.previous = p.current
	p.current = tok
	p.tokens++
	p.logger.Trace("Token", mdwlog.Fields{"token": tok.String()})
	return nil
}

// eat consumes the current token if it has the expected type
func (p *Parser) eat(expected token.Type) error {
	if p.current.Type != expected {
		return p.parseError(fmt.Sprintf("Unexpected token, expected %s", expected))
	}
	return p.advance()
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.options.MaxDepth {
		return p.parseError(fmt.Sprintf("Nesting exceeds maximum depth of %d", p.options.MaxDepth))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// currentPosition returns the AST position of the current token
func (p *Parser) currentPosition() ast.Position {
	return ast.Position{
		Line:   p.current.Line,
		Column: p.current.Column,
		Offset: p.current.Offset,
	}
}

// parseError creates a syntax error at the current token
func (p *Parser) parseError(message string) error {
	return mdwerrors.Syntax(message, p.current)
}
