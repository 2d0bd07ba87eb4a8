// File: value.go
// Title: Mini-PL Runtime Values
// Description: Tagged runtime value with one variant per builtin type and
//              the operator semantics for each variant.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial value model

package interpreter

import (
	"encoding/json"
	"strconv"

	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	"github.com/msto63/minipl/foundation/minipl/symbols"
	"github.com/msto63/minipl/foundation/minipl/token"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindBool
)

// String returns the Mini-PL type name of the kind
func (k Kind) String() string {
	switch k {
	case KindInt:
		return symbols.TypeInt
	case KindString:
		return symbols.TypeString
	case KindBool:
		return symbols.TypeBool
	default:
		return "unknown"
	}
}

// Value is a runtime value. Only the field selected by Kind is meaningful.
type Value struct {
	Kind Kind
	Int  int64
	Str  string
	Bool bool
}

// IntValue returns an int value
func IntValue(n int64) Value { return Value{Kind: KindInt, Int: n} }

// StringValue returns a string value
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolValue returns a bool value
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// ZeroValue returns the initial value of a variable declared without an
// initializer. Types other than int and string start out as false.
func ZeroValue(typeName string) Value {
	switch typeName {
	case symbols.TypeInt:
		return IntValue(0)
	case symbols.TypeString:
		return StringValue("")
	default:
		return BoolValue(false)
	}
}

// String returns the text written by print
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindString:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// Interface returns the value as a plain Go value
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindString:
		return v.Str
	case KindBool:
		return v.Bool
	default:
		return nil
	}
}

// MarshalJSON encodes the value as the matching JSON scalar
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Equal reports whether two values have the same kind and content
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == other.Int
	case KindString:
		return v.Str == other.Str
	default:
		return v.Bool == other.Bool
	}
}

// binary applies op to two operands of the same kind
func binary(op token.Token, left, right Value) (Value, error) {
	if left.Kind != right.Kind {
		return Value{}, mdwerrors.Runtimef("Operator %s is not defined for %s and %s",
			op.Lexeme, left.Kind, right.Kind)
	}

	switch left.Kind {
	case KindInt:
		return intBinary(op, left.Int, right.Int)
	case KindString:
		return stringBinary(op, left.Str, right.Str)
	default:
		return boolBinary(op, left.Bool, right.Bool)
	}
}

// Integer arithmetic wraps on overflow; division truncates toward zero
func intBinary(op token.Token, l, r int64) (Value, error) {
	switch op.Type {
	case token.Plus:
		return IntValue(l + r), nil
	case token.Minus:
		return IntValue(l - r), nil
	case token.Mul:
		return IntValue(l * r), nil
	case token.Div:
		if r == 0 {
			return Value{}, mdwerrors.Runtime("Division by zero")
		}
		return IntValue(l / r), nil
	case token.Equal:
		return BoolValue(l == r), nil
	case token.Less:
		return BoolValue(l < r), nil
	}
	return Value{}, unsupported(op, KindInt)
}

func stringBinary(op token.Token, l, r string) (Value, error) {
	switch op.Type {
	case token.Plus:
		return StringValue(l + r), nil
	case token.Equal:
		return BoolValue(l == r), nil
	case token.Less:
		return BoolValue(l < r), nil
	}
	return Value{}, unsupported(op, KindString)
}

// The binary ! is inequality, not negation
func boolBinary(op token.Token, l, r bool) (Value, error) {
	switch op.Type {
	case token.And:
		return BoolValue(l && r), nil
	case token.Not:
		return BoolValue(l != r), nil
	case token.Equal:
		return BoolValue(l == r), nil
	case token.Less:
		return BoolValue(!l && r), nil
	}
	return Value{}, unsupported(op, KindBool)
}

func unary(op token.Token, operand Value) (Value, error) {
	if operand.Kind != KindInt {
		return Value{}, mdwerrors.Runtimef("Unary operator %s is not defined for %s", op.Lexeme, operand.Kind)
	}
	switch op.Type {
	case token.Plus:
		return operand, nil
	case token.Minus:
		return IntValue(-operand.Int), nil
	}
	return Value{}, mdwerrors.Runtimef("Unary operator %s is not defined for %s", op.Lexeme, operand.Kind)
}

func unsupported(op token.Token, kind Kind) error {
	return mdwerrors.Runtimef("Operator %s is not defined for %s", op.Lexeme, kind)
}
