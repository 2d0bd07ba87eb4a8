// File: lexer_test.go
// Title: Mini-PL Lexer Tests
// Description: Tests for token kinds, values, positions, comments, string
//              escapes and lexical errors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial lexer tests

package parser

import (
	"strings"
	"testing"

	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	"github.com/msto63/minipl/foundation/minipl/token"
)

func kinds(tokens []token.Token) []token.Type {
	out := make([]token.Type, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func equalKinds(a, b []token.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Type
	}{
		{
			name:  "declaration with initializer",
			input: "var x : int := 5;",
			want:  []token.Type{token.Var, token.ID, token.Colon, token.Int, token.Assign, token.Integer, token.Semi, token.EOF},
		},
		{
			name:  "for loop",
			input: "for i in 1..n do end for",
			want: []token.Type{token.For, token.ID, token.In, token.Integer, token.Dot, token.Dot, token.ID,
				token.Do, token.End, token.For, token.EOF},
		},
		{
			name:  "all operators",
			input: "- + * / = < & ! ( )",
			want: []token.Type{token.Minus, token.Plus, token.Mul, token.Div, token.Equal, token.Less,
				token.And, token.Not, token.LeftBracket, token.RightBracket, token.EOF},
		},
		{
			name:  "bool literals and type keyword",
			input: "true false bool",
			want:  []token.Type{token.Bool, token.Bool, token.Bool, token.EOF},
		},
		{
			name:  "colon without equals",
			input: "x : = y",
			want:  []token.Type{token.ID, token.Colon, token.Equal, token.ID, token.EOF},
		},
		{
			name:  "keywords are case sensitive",
			input: "VAR Print",
			want:  []token.Type{token.ID, token.ID, token.EOF},
		},
		{
			name:  "empty input",
			input: "",
			want:  []token.Type{token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if got := kinds(tokens); !equalKinds(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLexerValues(t *testing.T) {
	tokens, err := Tokenize(`x 42 "hi" true ; :=`)
	if err != nil {
		t.Fatal(err)
	}

	if tokens[0].Value != "x" {
		t.Errorf("ID value = %#v", tokens[0].Value)
	}
	if tokens[1].Value != int64(42) {
		t.Errorf("INTEGER value = %#v", tokens[1].Value)
	}
	if tokens[2].Value != "hi" || tokens[2].Lexeme != `"hi"` {
		t.Errorf("STRING value = %#v, lexeme = %q", tokens[2].Value, tokens[2].Lexeme)
	}
	if tokens[3].Value != true {
		t.Errorf("BOOL value = %#v", tokens[3].Value)
	}
	if tokens[4].Value != ';' {
		t.Errorf("SEMI value = %#v", tokens[4].Value)
	}
	if tokens[5].Value != ":=" {
		t.Errorf("ASSIGN value = %#v", tokens[5].Value)
	}
}

func TestLexerPositions(t *testing.T) {
	src := "var x : int;\n  print x"
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		kind         token.Type
		line, column int
	}{
		{token.Var, 1, 1},
		{token.ID, 1, 5},
		{token.Colon, 1, 7},
		{token.Int, 1, 9},
		{token.Semi, 1, 12},
		{token.Print, 2, 3},
		{token.ID, 2, 9},
		{token.EOF, 2, 10},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Type != w.kind || tok.Line != w.line || tok.Column != w.column {
			t.Errorf("token %d = %s, want %s at %d:%d", i, tok, w.kind, w.line, w.column)
		}
	}
}

func TestLexerTokenString(t *testing.T) {
	tokens, err := Tokenize("print ;")
	if err != nil {
		t.Fatal(err)
	}
	if got := tokens[1].String(); got != "Token(SEMI, ;, position=1:7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestLexerComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Type
	}{
		{
			name:  "nested block comment",
			input: "/* a /* b */ c */ var x : int;",
			want:  []token.Type{token.Var, token.ID, token.Colon, token.Int, token.Semi, token.EOF},
		},
		{
			name:  "line comment",
			input: "print 1 // ignored ; var\nprint 2",
			want:  []token.Type{token.Print, token.Integer, token.Print, token.Integer, token.EOF},
		},
		{
			name:  "line comment at end of input",
			input: "print 1 // trailing",
			want:  []token.Type{token.Print, token.Integer, token.EOF},
		},
		{
			name:  "comment between tokens",
			input: "x/**/:=/* y */1",
			want:  []token.Type{token.ID, token.Assign, token.Integer, token.EOF},
		},
		{
			name:  "division is not a comment",
			input: "6 / 2",
			want:  []token.Type{token.Integer, token.Div, token.Integer, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if got := kinds(tokens); !equalKinds(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"back\\slash"`, `back\slash`},
		{`"\a\b\f\r\v"`, "\a\b\f\r\v"},
		{`""`, ""},
		{`"äöü"`, "äöü"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if tokens[0].Value != tt.want {
				t.Errorf("value = %q, want %q", tokens[0].Value, tt.want)
			}
		})
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"invalid character", "var x$", "Invalid character: $, position=1:6"},
		{"unterminated string", `print "abc`, "End of input while scanning a string literal, position=1:7"},
		{"unknown escape", `"a\qb"`, `Invalid escape sequence: \q, position=1:3`},
		{"unterminated comment", "/* open /* nested */", "Missing comment closure, position=1:1"},
		{"integer overflow", "99999999999999999999", "Integer literal out of range: 99999999999999999999, position=1:1"},
		{"underscore", "my_var", "Invalid character: _, position=1:3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !mdwerrors.IsLexical(err) {
				t.Errorf("error %v is not lexical", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLexerStickyStates(t *testing.T) {
	l := NewLexer("x")
	for i := 0; i < 2; i++ {
		if _, err := l.NextToken(); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 3; i++ {
		tok, err := l.NextToken()
		if err != nil || tok.Type != token.EOF {
			t.Fatalf("call %d after EOF = %v, %v", i, tok, err)
		}
	}

	bad := NewLexer("#")
	_, first := bad.NextToken()
	_, second := bad.NextToken()
	if first == nil || first != second {
		t.Errorf("errors are not sticky: %v, %v", first, second)
	}
}

func TestLexerRoundTrip(t *testing.T) {
	inputs := []string{
		"x := 1 + 2 * (y - 3) / 4",
		"var total : int := -5;print total<10&ok!done",
		"for i in 1..10 do x := x + i; end for",
		"a=b ; c:=(d)",
	}

	strip := func(s string) string {
		return strings.Join(strings.Fields(s), "")
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens, err := Tokenize(input)
			if err != nil {
				t.Fatal(err)
			}
			var sb strings.Builder
			for _, tok := range tokens {
				sb.WriteString(tok.Lexeme)
			}
			if got, want := sb.String(), strip(input); got != want {
				t.Errorf("reconstructed %q, want %q", got, want)
			}
			for _, tok := range tokens {
				if tok.Type == token.EOF {
					continue
				}
				if input[tok.Offset:tok.Offset+len(tok.Lexeme)] != tok.Lexeme {
					t.Errorf("offset %d does not point at %q", tok.Offset, tok.Lexeme)
				}
			}
		})
	}
}
