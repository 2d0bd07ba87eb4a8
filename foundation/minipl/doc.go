// Package minipl runs Mini-PL programs.
//
// Package: minipl
// Title: Mini-PL Engine
// Description: Wires the lexer, parser, semantic analyzer and interpreter
// into one pipeline. Every run builds fresh stages, gets its own run ID and
// reports which stage failed.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial engine
//
// Usage:
//
//	engine, err := minipl.New(minipl.Options{
//		Input:  os.Stdin,
//		Output: os.Stdout,
//	})
//	if err != nil {
//		return err
//	}
//
//	result, err := engine.Run(ctx, source)
//	if err != nil {
//		fmt.Fprintf(os.Stderr, "%s error: %v\n", result.Status, err)
//	}
package minipl
