// File: minipl.go
// Title: Mini-PL Engine
// Description: High-level entry point that runs source text through the
//              four pipeline stages and collects the outcome of a run.
// Author: msto63
// Version: v0.1.1
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial engine
// - 2025-10-17 v0.1.1: Optional cache of analyzed programs

package minipl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"time"

	"github.com/google/uuid"

	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	mdwlog "github.com/msto63/minipl/foundation/core/log"
	"github.com/msto63/minipl/foundation/minipl/ast"
	"github.com/msto63/minipl/foundation/minipl/interpreter"
	"github.com/msto63/minipl/foundation/minipl/parser"
	"github.com/msto63/minipl/foundation/minipl/semantic"
	"github.com/msto63/minipl/foundation/minipl/symbols"
	"github.com/msto63/minipl/foundation/minipl/token"
)

// StatusOK is the status of a run that completed without error
const StatusOK = "ok"

// Engine runs Mini-PL programs
type Engine struct {
	input   interpreter.LineReader
	output  io.Writer
	logger  *mdwlog.Logger
	options Options
}

// Options configures the engine
type Options struct {
	// Logger for pipeline diagnostics (optional, defaults to default logger)
	Logger *mdwlog.Logger

	// Input feeds read statements. Lines are consumed across runs.
	Input io.Reader

	// Output receives print and assert text (default: discarded)
	Output io.Writer

	// MaxIterations bounds loop iterations per run (default: 0, unlimited)
	MaxIterations int64

	// MaxDepth bounds expression nesting in the parser (default: parser.DefaultMaxDepth)
	MaxDepth int

	// Cache keeps analyzed programs between runs (optional)
	Cache ProgramCache
}

// ProgramCache stores analyzed programs keyed by the hash of their source.
// Only programs that passed analysis are stored; their trees and symbol
// tables are read-only afterwards and safe to share between runs.
type ProgramCache interface {
	Get(key string) (*semantic.Analyzer, bool)
	Set(key string, a *semantic.Analyzer)
}

// Result describes one run
type Result struct {
	RunID       string
	Status      string
	StartedAt   time.Time
	Duration    time.Duration
	OutputBytes int64

	// Cached is true when the analyzed program came from the cache
	Cached bool

	// Symbols is the analyzer's table, nil when parsing failed
	Symbols *symbols.Table

	// Store holds the final variable values, nil when interpretation never started
	Store map[string]interpreter.Value
}

// Failed reports whether the run ended with an error
func (r *Result) Failed() bool {
	return r.Status != StatusOK
}

// New creates an engine
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxIterations < 0 {
		return nil, mdwerrors.InvalidInput(mdwerrors.ModuleEngine, "New", opts.MaxIterations, "max iterations >= 0")
	}
	if opts.MaxDepth < 0 {
		return nil, mdwerrors.InvalidInput(mdwerrors.ModuleEngine, "New", opts.MaxDepth, "max depth >= 0")
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = parser.DefaultMaxDepth
	}

	var input interpreter.LineReader = interpreter.NewLinesReader()
	if opts.Input != nil {
		input = interpreter.NewLineReader(opts.Input)
	}
	output := opts.Output
	if output == nil {
		output = io.Discard
	}

	return &Engine{
		input:   input,
		output:  output,
		logger:  opts.Logger.WithField("component", "minipl-engine"),
		options: opts,
	}, nil
}

// Run executes source with the engine's input and output
func (e *Engine) Run(ctx context.Context, source string) (*Result, error) {
	return e.RunWith(ctx, source, e.input, e.output)
}

// RunWith executes source reading lines from input and writing to output.
// The result is returned even when the run fails; its Status names the
// failing stage's error category.
func (e *Engine) RunWith(ctx context.Context, source string, input interpreter.LineReader, output io.Writer) (*Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
	logger := e.logger.WithRunID(result.RunID)
	logger.Debug("Run started", mdwlog.Fields{"source_bytes": len(source)})

	if input == nil {
		input = interpreter.NewLinesReader()
	}
	if output == nil {
		output = io.Discard
	}
	counter := &countingWriter{w: output}
	err := e.run(ctx, logger, source, input, counter, result)

	result.Duration = time.Since(result.StartedAt)
	result.OutputBytes = counter.n
	result.Status = StatusOK
	if err != nil {
		result.Status = mdwerrors.Category(err)
		logger.Info("Run failed", mdwlog.Fields{
			"status":      result.Status,
			"error":       err.Error(),
			"duration_ms": result.Duration.Milliseconds(),
		})
		return result, err
	}

	logger.Info("Run completed", mdwlog.Fields{
		"output_bytes": result.OutputBytes,
		"duration_ms":  result.Duration.Milliseconds(),
	})
	return result, nil
}

func (e *Engine) run(ctx context.Context, logger *mdwlog.Logger, source string, input interpreter.LineReader, output io.Writer, result *Result) error {
	analyzer, err := e.analyze(logger, source, result)
	if analyzer.Tree() != nil {
		result.Symbols = analyzer.Symbols()
	}
	if err != nil {
		return err
	}

	interp := interpreter.New(analyzer, interpreter.Options{
		Logger:        logger,
		Output:        output,
		Input:         input,
		MaxIterations: e.options.MaxIterations,
	})
	timer := logger.StartTimer("interpret")
	err = interp.Interpret(ctx)
	timer.StopWithError(err)
	result.Store = interp.Store()
	return err
}

// analyze returns the analyzed program, from the cache when possible
func (e *Engine) analyze(logger *mdwlog.Logger, source string, result *Result) (*semantic.Analyzer, error) {
	var key string
	if e.options.Cache != nil {
		sum := sha256.Sum256([]byte(source))
		key = hex.EncodeToString(sum[:])
		if analyzer, ok := e.options.Cache.Get(key); ok {
			result.Cached = true
			logger.Debug("Program cache hit", mdwlog.Fields{"source_hash": key})
			return analyzer, nil
		}
	}

	analyzer := e.analyzer(logger, source)
	timer := logger.StartTimer("analyze")
	err := analyzer.Analyze()
	timer.StopWithError(err)
	if err == nil && e.options.Cache != nil {
		e.options.Cache.Set(key, analyzer)
	}
	return analyzer, err
}

// Check lexes, parses and analyzes source without running it
func (e *Engine) Check(source string) (*semantic.Analyzer, error) {
	analyzer := e.analyzer(e.logger, source)
	return analyzer, analyzer.Analyze()
}

// Parse returns the syntax tree of source
func (e *Engine) Parse(source string) (*ast.StatementList, error) {
	return e.parser(e.logger, source).Parse()
}

// Tokens returns every token of source, ending with EOF
func (e *Engine) Tokens(source string) ([]token.Token, error) {
	return parser.NewLexer(source).Tokenize()
}

func (e *Engine) parser(logger *mdwlog.Logger, source string) *parser.Parser {
	return parser.New(parser.NewLexer(source), parser.Options{
		Logger:   logger,
		MaxDepth: e.options.MaxDepth,
	})
}

func (e *Engine) analyzer(logger *mdwlog.Logger, source string) *semantic.Analyzer {
	return semantic.New(e.parser(logger, source), semantic.Options{Logger: logger})
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
