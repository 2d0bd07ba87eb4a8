// File: standards_test.go
// Title: Error Taxonomy Tests
// Description: Tests for the taxonomy constructors, predicates and helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial tests
// - 2025-10-17 v0.2.0: Taxonomy cases

package errors

import (
	"errors"
	"fmt"
	"testing"

	mdwerror "github.com/msto63/minipl/foundation/core/error"
)

type fakeToken struct {
	text         string
	line, column int
}

func (f fakeToken) String() string  { return f.text }
func (f fakeToken) Pos() (int, int) { return f.line, f.column }

func TestTaxonomyMessages(t *testing.T) {
	tok := fakeToken{text: "Token(SEMI, ;, position=1:9)", line: 1, column: 9}

	tests := []struct {
		name     string
		err      error
		wantMsg  string
		category string
	}{
		{
			name:     "lexical",
			err:      Lexical("Invalid character: $", 2, 4),
			wantMsg:  "Invalid character: $, position=2:4",
			category: CategoryLexical,
		},
		{
			name:     "syntax",
			err:      Syntax("Unexpected token", tok),
			wantMsg:  "Unexpected token -> Token(SEMI, ;, position=1:9)",
			category: CategorySyntax,
		},
		{
			name:     "semantic",
			err:      Semantic("Duplicate identifier found", tok),
			wantMsg:  "Duplicate identifier found -> Token(SEMI, ;, position=1:9)",
			category: CategorySemantic,
		},
		{
			name:     "semantic without token",
			err:      Semantic("Parser tree is null!", nil),
			wantMsg:  "Parser tree is null!",
			category: CategorySemantic,
		},
		{
			name:     "runtime",
			err:      Runtimef("Division by zero at %d", 3),
			wantMsg:  "Division by zero at 3",
			category: CategoryRuntime,
		},
		{
			name:     "foreign error",
			err:      errors.New("boom"),
			wantMsg:  "boom",
			category: CategoryInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := Category(tt.err); got != tt.category {
				t.Errorf("Category() = %q, want %q", got, tt.category)
			}
		})
	}
}

func TestPredicatesAreExclusive(t *testing.T) {
	tok := fakeToken{text: "Token(ID, x, position=1:1)", line: 1, column: 1}
	all := []error{
		Lexical("x", 1, 1),
		Syntax("x", tok),
		Semantic("x", tok),
		Runtime("x"),
	}
	preds := []func(error) bool{IsLexical, IsSyntax, IsSemantic, IsRuntime}

	for i, err := range all {
		for j, pred := range preds {
			if got := pred(err); got != (i == j) {
				t.Errorf("predicate %d on error %d = %v", j, i, got)
			}
		}
		if !IsProgramError(err) {
			t.Errorf("error %d should be a program error", i)
		}
	}
}

func TestCategorySurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("run main.mpl: %w", Runtime("Invalid input. Expected input value is a number."))

	if !IsRuntime(err) {
		t.Fatal("IsRuntime() should see through wrapping")
	}
	if got := Message(err); got != "Invalid input. Expected input value is a number." {
		t.Errorf("Message() = %q", got)
	}
	if got := Category(nil); got != "" {
		t.Errorf("Category(nil) = %q, want empty", got)
	}
}

func TestSurfaceHelpers(t *testing.T) {
	nf := NotFound(ModuleRunStore, "get", "run-1")
	if !mdwerror.HasCode(nf, mdwerror.CodeNotFound) {
		t.Error("NotFound() should carry NOT_FOUND")
	}
	if ExtractModule(nf) != ModuleRunStore {
		t.Errorf("ExtractModule() = %q", ExtractModule(nf))
	}

	failed := OperationFailed(ModuleConfig, "load", mdwerror.CodeConfigError, errors.New("bad toml"))
	if failed.Error() != "config.load failed: bad toml" {
		t.Errorf("Error() = %q", failed.Error())
	}
	if ExtractOperation(fmt.Errorf("outer: %w", failed)) != "load" {
		t.Error("ExtractOperation() should see through wrapping")
	}

	in := InvalidInput(ModulePlayground, "run", 70000, "source of at most 65536 bytes")
	if !mdwerror.HasCode(in, mdwerror.CodeInvalidInput) {
		t.Error("InvalidInput() should carry INVALID_INPUT")
	}
	if ExtractModule(errors.New("plain")) != "" {
		t.Error("ExtractModule() of a plain error should be empty")
	}
}
