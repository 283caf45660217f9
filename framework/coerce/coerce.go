// Package coerce converts property literals into typed scalar values.
//
// The table is fixed: every Kind maps to exactly one Go type.
//
//	int     -> int
//	boolean -> bool
//	byte    -> byte
//	double  -> float64
//	float   -> float32
//	long    -> int64
//	short   -> int16
//	string  -> string (passed through unmodified)
package coerce

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedKind is returned for a kind outside the table.
	ErrUnsupportedKind = errors.New("unsupported scalar kind")

	// ErrMalformed is returned when a literal cannot be parsed as its kind.
	ErrMalformed = errors.New("malformed scalar literal")
)

// Kind tags the target type of a coercion.
type Kind string

const (
	Int     Kind = "int"
	Boolean Kind = "boolean"
	Byte    Kind = "byte"
	Double  Kind = "double"
	Float   Kind = "float"
	Long    Kind = "long"
	Short   Kind = "short"
	String  Kind = "string"
)

// Scalar lists the Go types a literal can be coerced into.
type Scalar interface {
	int | bool | byte | float64 | float32 | int64 | int16 | string
}

// Coerce parses literal as kind.
func Coerce(literal string, kind Kind) (any, error) {
	if kind == String {
		return literal, nil
	}

	s := strings.TrimSpace(literal)
	var (
		v   any
		err error
	)
	switch kind {
	case Int:
		v, err = strconv.Atoi(s)
	case Boolean:
		v, err = strconv.ParseBool(s)
	case Byte:
		var n uint64
		n, err = strconv.ParseUint(s, 10, 8)
		v = byte(n)
	case Double:
		v, err = strconv.ParseFloat(s, 64)
	case Float:
		var f float64
		f, err = strconv.ParseFloat(s, 32)
		v = float32(f)
	case Long:
		v, err = strconv.ParseInt(s, 10, 64)
	case Short:
		var n int64
		n, err = strconv.ParseInt(s, 10, 16)
		v = int16(n)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, string(kind))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q as %s: %w", ErrMalformed, literal, kind, err)
	}
	return v, nil
}

// To coerces literal into V.
//
//	n, err := coerce.To[int]("100") // 100
func To[V Scalar](literal string) (V, error) {
	var zero V
	v, err := Coerce(literal, KindFor[V]())
	if err != nil {
		return zero, err
	}
	return v.(V), nil
}

// KindFor returns the Kind that coerces into V.
func KindFor[V Scalar]() Kind {
	var zero V
	switch any(zero).(type) {
	case int:
		return Int
	case bool:
		return Boolean
	case byte:
		return Byte
	case float64:
		return Double
	case float32:
		return Float
	case int64:
		return Long
	case int16:
		return Short
	default:
		return String
	}
}

// ParseKind maps a kind name to its Kind. "integer" and "bool" are accepted
// as aliases.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case Int, Boolean, Byte, Double, Float, Long, Short, String:
		return k, nil
	case "integer":
		return Int, nil
	case "bool":
		return Boolean, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, name)
	}
}
