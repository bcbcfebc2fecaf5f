package analyzer

import (
	"fmt"
	"strconv"
)

// Type is the evaluated type of an expression. int and float are never
// interoperable; bool only ever comes out of an if condition.
type Type int

const (
	TypeInt Type = iota
	TypeFloat
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	}
	return "UNKNOWN"
}

// Value is a concrete analysis-time value. Exactly one of Int, Float,
// Bool is meaningful, selected by Type.
type Value struct {
	Type  Type
	Int   int64
	Float float64
	Bool  bool
}

func intValue(n int64) Value {
	return Value{Type: TypeInt, Int: n}
}

func floatValue(f float64) Value {
	return Value{Type: TypeFloat, Float: f}
}

func boolValue(b bool) Value {
	return Value{Type: TypeBool, Bool: b}
}

func (v Value) String() string {
	switch v.Type {
	case TypeInt:
		return fmt.Sprint(v.Int)
	case TypeFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case TypeBool:
		return fmt.Sprint(v.Bool)
	}
	return "UNKNOWN"
}

// map a type keyword lexeme (int, float) to its Type.
func typeFromKeyword(kw string) Type {
	if kw == "float" {
		return TypeFloat
	}
	return TypeInt
}
