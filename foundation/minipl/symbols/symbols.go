// File: symbols.go
// Title: Mini-PL Symbols and Symbol Table
// Description: Symbols known to semantic analysis and the flat table that
//              holds them. Mini-PL has a single global namespace, so the
//              table has no scopes: it is seeded with the three builtin
//              types and grows by one entry per variable declaration.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial symbol table

package symbols

import (
	"fmt"
	"strings"
)

// Names of the builtin types
const (
	TypeInt    = "int"
	TypeString = "string"
	TypeBool   = "bool"
)

// Symbol is a named entity: a builtin type or a variable
type Symbol interface {
	Name() string

	// Type returns the type of the symbol, nil for builtin types
	Type() Symbol

	String() string

	symbol()
}

// BuiltinTypeSymbol is one of int, string and bool
type BuiltinTypeSymbol struct {
	name string
}

// NewBuiltinType creates a builtin type symbol
func NewBuiltinType(name string) *BuiltinTypeSymbol {
	return &BuiltinTypeSymbol{name: name}
}

func (s *BuiltinTypeSymbol) Name() string   { return s.name }
func (s *BuiltinTypeSymbol) Type() Symbol   { return nil }
func (s *BuiltinTypeSymbol) String() string { return s.name }
func (s *BuiltinTypeSymbol) symbol()        {}

// VariableSymbol is a declared variable and its declared type
type VariableSymbol struct {
	name string
	typ  *BuiltinTypeSymbol
}

// NewVariable creates a variable symbol of the given type
func NewVariable(name string, typ *BuiltinTypeSymbol) *VariableSymbol {
	return &VariableSymbol{name: name, typ: typ}
}

func (s *VariableSymbol) Name() string { return s.name }

// Type returns the declared type
func (s *VariableSymbol) Type() Symbol { return s.typ }

// TypeName returns the name of the declared type
func (s *VariableSymbol) TypeName() string {
	if s.typ == nil {
		return ""
	}
	return s.typ.name
}

// String renders the symbol as <name:type>
func (s *VariableSymbol) String() string {
	return fmt.Sprintf("<%s:%s>", s.name, s.TypeName())
}

func (s *VariableSymbol) symbol() {}

// Table maps names to symbols and remembers definition order
type Table struct {
	symbols map[string]Symbol
	order   []string
}

// NewTable creates a table seeded with the builtin types
func NewTable() *Table {
	t := &Table{symbols: make(map[string]Symbol)}
	for _, name := range []string{TypeInt, TypeString, TypeBool} {
		t.Define(NewBuiltinType(name))
	}
	return t
}

// Define adds or replaces a symbol
func (t *Table) Define(sym Symbol) {
	if _, exists := t.symbols[sym.Name()]; !exists {
		t.order = append(t.order, sym.Name())
	}
	t.symbols[sym.Name()] = sym
}

// Lookup returns the symbol registered under name
func (t *Table) Lookup(name string) (Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

// LookupType returns the builtin type registered under name
func (t *Table) LookupType(name string) (*BuiltinTypeSymbol, bool) {
	sym, ok := t.symbols[name].(*BuiltinTypeSymbol)
	return sym, ok
}

// LookupVariable returns the variable registered under name
func (t *Table) LookupVariable(name string) (*VariableSymbol, bool) {
	sym, ok := t.symbols[name].(*VariableSymbol)
	return sym, ok
}

// Variables returns the declared variables in declaration order
func (t *Table) Variables() []*VariableSymbol {
	var vars []*VariableSymbol
	for _, name := range t.order {
		if v, ok := t.symbols[name].(*VariableSymbol); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// Len returns the number of symbols including the builtin types
func (t *Table) Len() int {
	return len(t.symbols)
}

// String lists all symbols in definition order, one per line
func (t *Table) String() string {
	lines := make([]string, 0, len(t.order))
	for _, name := range t.order {
		lines = append(lines, t.symbols[name].String())
	}
	return strings.Join(lines, "\n")
}
