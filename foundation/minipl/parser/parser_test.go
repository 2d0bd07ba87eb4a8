// File: parser_test.go
// Title: Mini-PL Parser Tests
// Description: Tests for tree shape, operator associativity, unary
//              prefixes and syntax errors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial parser tests

package parser

import (
	"strings"
	"testing"

	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	"github.com/msto63/minipl/foundation/minipl/ast"
)

func parse(t *testing.T, src string) *ast.StatementList {
	t.Helper()
	tree, err := New(NewLexer(src), Options{}).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return tree
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"declaration", "var x : int", "var x : int"},
		{"declaration with initializer", "var s : string := \"a\\n\"", `var s : string := "a\n"`},
		{"assignment", "x := 1", "x := 1"},
		{"read", "read n", "read n"},
		{"print", "print x", "print x"},
		{"assert", "assert (x = 1)", "assert ((x = 1))"},
		{"for", "for i in 1..3 do print i; end for", "for i in 1..3 do print i;  end for"},
		{"empty program", "", ""},
		{"trailing semicolon", "print 1;", "print 1; "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parse(t, tt.src).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		// One precedence tier for + - = < & !, left associative
		{"print 1 + 2 = 3", "print ((1 + 2) = 3)"},
		{"print 1 < 2 & 3 < 4", "print (((1 < 2) & 3) < 4)"},
		{"print true ! false", "print (true ! false)"},
		// * and / bind tighter
		{"print 1 + 2 * 3", "print (1 + (2 * 3))"},
		{"print 8 / 2 / 2", "print ((8 / 2) / 2)"},
		{"print (1 + 2) * 3", "print ((1 + 2) * 3)"},
		// Unary prefixes nest
		{"print --5", "print --5"},
		{"print -7 / 2", "print (-7 / 2)"},
		{"print +x", "print +x"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := parse(t, tt.src).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTreeShape(t *testing.T) {
	tree := parse(t, "var x : int := --5; for i in 1..x do print i; end for")

	if len(tree.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(tree.Statements))
	}

	decl, ok := tree.Statements[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("statement 0 is %T", tree.Statements[0])
	}
	outer, ok := decl.Initializer.(*ast.UnaryOperation)
	if !ok {
		t.Fatalf("initializer is %T", decl.Initializer)
	}
	inner, ok := outer.Operand.(*ast.UnaryOperation)
	if !ok {
		t.Fatalf("operand is %T", outer.Operand)
	}
	if n, ok := inner.Operand.(*ast.Numeric); !ok || n.Value != 5 {
		t.Errorf("innermost operand = %v", inner.Operand)
	}

	loop, ok := tree.Statements[1].(*ast.For)
	if !ok {
		t.Fatalf("statement 1 is %T", tree.Statements[1])
	}
	if loop.Variable.Name != "i" {
		t.Errorf("loop variable = %s", loop.Variable.Name)
	}
	if len(loop.Body.Statements) != 2 {
		t.Errorf("body has %d statements, want print and empty", len(loop.Body.Statements))
	}
	if _, ok := loop.Body.Statements[1].(*ast.NoOperation); !ok {
		t.Errorf("body statement 1 is %T", loop.Body.Statements[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "missing assign",
			src:     "x 1",
			wantMsg: "Unexpected token, expected ASSIGN -> Token(INTEGER, 1, position=1:3)",
		},
		{
			name:    "ID after statement list",
			src:     "print 1 x := 2",
			wantMsg: "Token type can not be ID -> Token(ID, x, position=1:9)",
		},
		{
			name:    "trailing tokens",
			src:     "print 1 )",
			wantMsg: "Expected EOF token type but token type is RIGHTBRACKET -> Token(RIGHTBRACKET, ), position=1:9)",
		},
		{
			name:    "bad type",
			src:     "var x : float",
			wantMsg: "Invalid token type -> Token(ID, float, position=1:9)",
		},
		{
			name:    "string literal as type",
			src:     `var x : "int"`,
			wantMsg: "Invalid token type -> Token(STRING, int, position=1:9)",
		},
		{
			name:    "keyword as expression",
			src:     "print string",
			wantMsg: "Unexpected token, expected ID -> Token(STRING, string, position=1:7)",
		},
		{
			name:    "missing end for",
			src:     "for i in 1..2 do print i; end",
			wantMsg: "Unexpected token, expected FOR -> Token(EOF, , position=1:30)",
		},
		{
			name:    "single dot range",
			src:     "for i in 1.2 do end for",
			wantMsg: "Unexpected token, expected DOT -> Token(INTEGER, 2, position=1:12)",
		},
		{
			name:    "assert without brackets",
			src:     "assert x",
			wantMsg: "Unexpected token, expected LEFTBRACKET -> Token(ID, x, position=1:8)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(NewLexer(tt.src), Options{}).Parse()
			if err == nil {
				t.Fatal("expected a syntax error")
			}
			if !mdwerrors.IsSyntax(err) {
				t.Errorf("error %v is not a syntax error", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseLexicalErrorPassesThrough(t *testing.T) {
	_, err := New(NewLexer("print 1 + @"), Options{}).Parse()
	if !mdwerrors.IsLexical(err) {
		t.Fatalf("error = %v, want lexical", err)
	}
}

func TestParseMaxDepth(t *testing.T) {
	src := "print " + strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20)

	if _, err := New(NewLexer(src), Options{MaxDepth: 50}).Parse(); err != nil {
		t.Fatalf("depth 20 should parse: %v", err)
	}

	_, err := New(NewLexer(src), Options{MaxDepth: 10}).Parse()
	if !mdwerrors.IsSyntax(err) || !strings.Contains(err.Error(), "maximum depth of 10") {
		t.Errorf("error = %v, want depth error", err)
	}
}

func TestParseIsComputedOnce(t *testing.T) {
	p := New(NewLexer("print 1"), Options{})
	first, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Parse()
	if err != nil || first != second {
		t.Errorf("second Parse() = %p, %v; want %p", second, err, first)
	}
}
