package minipl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	"github.com/msto63/minipl/foundation/minipl/interpreter"
	"github.com/msto63/minipl/foundation/minipl/semantic"
	"github.com/msto63/minipl/foundation/minipl/token"
)

func newEngine(t *testing.T, input string, out *bytes.Buffer) *Engine {
	t.Helper()
	e, err := New(Options{Input: strings.NewReader(input), Output: out})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestRunStatus(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantStatus string
		wantOutput string
	}{
		{"success", `print "hi"`, StatusOK, "hi"},
		{"lexical", "print 1 $ 2", mdwerrors.CategoryLexical, ""},
		{"syntax", "print 1 +", mdwerrors.CategorySyntax, ""},
		{"semantic", "print x", mdwerrors.CategorySemantic, ""},
		{"runtime", `print "a"; print 1 / 0`, mdwerrors.CategoryRuntime, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			result, err := newEngine(t, "", &out).Run(context.Background(), tt.src)
			if result == nil {
				t.Fatal("Run() returned no result")
			}
			if result.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (err = %v)", result.Status, tt.wantStatus, err)
			}
			if (err != nil) != result.Failed() {
				t.Errorf("err = %v but Failed() = %v", err, result.Failed())
			}
			if out.String() != tt.wantOutput {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOutput)
			}
			if result.OutputBytes != int64(len(tt.wantOutput)) {
				t.Errorf("OutputBytes = %d, want %d", result.OutputBytes, len(tt.wantOutput))
			}
			if _, err := uuid.Parse(result.RunID); err != nil {
				t.Errorf("RunID %q is not a UUID: %v", result.RunID, err)
			}
		})
	}
}

func TestRunResult(t *testing.T) {
	var out bytes.Buffer
	e := newEngine(t, "6\n", &out)

	result, err := e.Run(context.Background(), "var n : int; read n; var s : string := \"x\"; n := n * 7")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := result.Store["n"]; !got.Equal(interpreter.IntValue(42)) {
		t.Errorf("n = %v, want 42", got)
	}
	if result.Symbols == nil {
		t.Fatal("Symbols is nil")
	}
	sym, ok := result.Symbols.LookupVariable("s")
	if !ok || sym.TypeName() != "string" {
		t.Errorf("symbol s = %v, want <s:string>", sym)
	}
}

func TestRunsAreIndependent(t *testing.T) {
	var out bytes.Buffer
	e := newEngine(t, "first\nsecond\n", &out)
	ctx := context.Background()

	src := "var s : string; read s; print s"
	first, err := e.Run(ctx, src)
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	second, err := e.Run(ctx, src)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if out.String() != "firstsecond" {
		t.Errorf("output = %q, want %q", out.String(), "firstsecond")
	}
	if first.RunID == second.RunID {
		t.Error("runs share a run ID")
	}
}

func TestRunWith(t *testing.T) {
	e, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var out bytes.Buffer
	_, err = e.RunWith(context.Background(), "var a : int; read a; print a + 1",
		interpreter.NewLinesReader("41"), &out)
	if err != nil {
		t.Fatalf("RunWith() error = %v", err)
	}
	if out.String() != "42" {
		t.Errorf("output = %q, want 42", out.String())
	}
}

func TestDeterminism(t *testing.T) {
	src := `var i : int; var s : string; read s;
for i in 1..5 do print s; print i * i; end for; assert (i = 5)`

	outputs := make([]string, 2)
	for k := range outputs {
		var out bytes.Buffer
		if _, err := newEngine(t, "x\n", &out).Run(context.Background(), src); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		outputs[k] = out.String()
	}
	if outputs[0] != outputs[1] {
		t.Errorf("outputs differ: %q vs %q", outputs[0], outputs[1])
	}
	if outputs[0] != "x1x4x9x16x25TRUE" {
		t.Errorf("output = %q", outputs[0])
	}
}

func TestCheck(t *testing.T) {
	e, _ := New(Options{})

	a, err := e.Check("var x : int; var x : string;")
	if !mdwerrors.IsSemantic(err) {
		t.Fatalf("Check() error = %v, want semantic error", err)
	}
	if a == nil {
		t.Fatal("Check() returned no analyzer")
	}

	a, err = e.Check("var x : int := 1; print x")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if _, ok := a.Symbols().LookupVariable("x"); !ok {
		t.Error("x is missing from the symbol table")
	}
}

func TestTokensAndParse(t *testing.T) {
	e, _ := New(Options{})

	tokens, err := e.Tokens("/* a /* b */ c */ var x : int;")
	if err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}
	want := []token.Type{token.Var, token.ID, token.Colon, token.Int, token.Semi, token.EOF}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Type != want[i] {
			t.Errorf("token %d = %s, want %s", i, tok.Type, want[i])
		}
	}

	tree, err := e.Parse("/* a /* b */ c */ var x : int;")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := tree.String(); got != "var x : int; " {
		t.Errorf("tree = %q", got)
	}
}

func TestNewRejectsNegativeLimits(t *testing.T) {
	if _, err := New(Options{MaxIterations: -1}); err == nil {
		t.Error("New() accepted negative MaxIterations")
	}
	if _, err := New(Options{MaxDepth: -1}); err == nil {
		t.Error("New() accepted negative MaxDepth")
	}
}

func TestMaxIterationsOption(t *testing.T) {
	e, _ := New(Options{MaxIterations: 10})
	result, err := e.Run(context.Background(), "var i : int; for i in 1..100 do i := i; end for")
	if !mdwerrors.IsRuntime(err) {
		t.Fatalf("Run() error = %v, want runtime error", err)
	}
	if result.Status != mdwerrors.CategoryRuntime {
		t.Errorf("Status = %q", result.Status)
	}
}

type mapCache map[string]*semantic.Analyzer

func (m mapCache) Get(key string) (*semantic.Analyzer, bool) {
	a, ok := m[key]
	return a, ok
}

func (m mapCache) Set(key string, a *semantic.Analyzer) {
	m[key] = a
}

func TestProgramCache(t *testing.T) {
	programs := mapCache{}
	var out bytes.Buffer
	e, err := New(Options{Output: &out, Cache: programs})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	src := "var i : int; for i in 1..3 do print i; end for"
	first, err := e.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := e.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.Cached || !second.Cached {
		t.Errorf("cached = %v, %v; want false, true", first.Cached, second.Cached)
	}
	if out.String() != "123123" {
		t.Errorf("output = %q", out.String())
	}
	if second.Store["i"].Int != 3 {
		t.Errorf("cached run store = %v", second.Store)
	}

	// failed analysis is not cached
	if _, err := e.Run(context.Background(), "print x"); err == nil {
		t.Fatal("expected semantic error")
	}
	if len(programs) != 1 {
		t.Errorf("cache holds %d programs, want 1", len(programs))
	}
}
