package field

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// A Kind is the scalar kind of a schema property, as declared by its "type" keyword.
type Kind uint8

// List of kinds.
const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindInteger
	KindObject
	KindArray
	KindBoolean
	endKinds
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindString:  "string",
	KindNumber:  "number",
	KindInteger: "integer",
	KindObject:  "object",
	KindArray:   "array",
	KindBoolean: "boolean",
}

// String returns the schema keyword of the kind.
func (k Kind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// Valid reports if the given kind is one of the known kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < endKinds
}

// Scalar reports if values of this kind map to a single column value.
func (k Kind) Scalar() bool {
	return k.Valid() && k != KindObject
}

// ParseKind returns the Kind for the given "type" literal.
func ParseKind(s string) (Kind, error) {
	for k := KindString; k < endKinds; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown type %q", s)
}

// A Format refines a string or number kind, as declared by the "format" keyword.
type Format uint8

// List of formats.
const (
	FormatNone Format = iota
	FormatDate
	FormatDateTime
	FormatTime
	FormatDouble
	FormatFloat
	FormatDecimal
	FormatUUID
	FormatIPv4
	FormatIPv6
	FormatMAC
	FormatJSON
	FormatByte
	endFormats
)

var formatNames = [...]string{
	FormatNone:     "",
	FormatDate:     "date",
	FormatDateTime: "date-time",
	FormatTime:     "time",
	FormatDouble:   "double",
	FormatFloat:    "float",
	FormatDecimal:  "decimal",
	FormatUUID:     "uuid",
	FormatIPv4:     "ipv4",
	FormatIPv6:     "ipv6",
	FormatMAC:      "mac",
	FormatJSON:     "json",
	FormatByte:     "byte",
}

// String returns the schema keyword of the format.
func (f Format) String() string {
	if f < endFormats {
		return formatNames[f]
	}
	return "invalid"
}

// ParseFormat returns the Format for the given "format" literal.
// An empty literal yields FormatNone.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatNone, nil
	}
	for f := FormatDate; f < endFormats; f++ {
		if formatNames[f] == s {
			return f, nil
		}
	}
	return FormatNone, fmt.Errorf("unknown format %q", s)
}

// Length is the value of a "maxLength" keyword. Max is set when the
// schema declares the literal "max", meaning no upper bound.
type Length struct {
	N   int64
	Max bool
}

// Bounded reports if the length carries a concrete limit.
func (l *Length) Bounded() bool {
	return l != nil && !l.Max && l.N > 0
}

// String returns the length as written in the schema.
func (l *Length) String() string {
	switch {
	case l == nil:
		return ""
	case l.Max:
		return "max"
	default:
		return strconv.FormatInt(l.N, 10)
	}
}

// ParseLength converts a decoded "maxLength" value.
func ParseLength(v any) (*Length, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.EqualFold(v, "max") {
			return &Length{Max: true}, nil
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid maxLength %q", v)
		}
		return &Length{N: n}, nil
	default:
		b, err := ParseBound(v)
		if err != nil {
			return nil, fmt.Errorf("invalid maxLength: %w", err)
		}
		if !b.IsInt() || b.Sign() < 0 {
			return nil, fmt.Errorf("invalid maxLength %s", b.Text('g', -1))
		}
		n, _ := b.Int64()
		return &Length{N: n}, nil
	}
}

// ParseBound converts a decoded "minimum" or "maximum" value into an
// arbitrary-precision number, so range checks never lose precision.
func ParseBound(v any) (*big.Float, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case int:
		return new(big.Float).SetInt64(int64(v)), nil
	case int64:
		return new(big.Float).SetInt64(v), nil
	case uint64:
		return new(big.Float).SetUint64(v), nil
	case float64:
		return big.NewFloat(v), nil
	case fmt.Stringer:
		return parseBoundString(v.String())
	case string:
		return parseBoundString(v)
	default:
		return nil, fmt.Errorf("unexpected numeric value %v (%T)", v, v)
	}
}

func parseBoundString(s string) (*big.Float, error) {
	f, _, err := big.ParseFloat(s, 10, 128, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}
