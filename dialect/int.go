package dialect

import (
	"math"
	"math/big"
)

// IntWidth is a step of the integer ladder used to narrow integer fields.
type IntWidth uint8

// Integer widths, narrowest first. IntBig holds values outside the 64-bit ranges.
const (
	Int8 IntWidth = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	IntBig
)

var widthNames = [...]string{
	Int8:   "int8",
	Uint8:  "uint8",
	Int16:  "int16",
	Uint16: "uint16",
	Int32:  "int32",
	Uint32: "uint32",
	Int64:  "int64",
	Uint64: "uint64",
	IntBig: "big",
}

func (w IntWidth) String() string {
	if int(w) < len(widthNames) {
		return widthNames[w]
	}
	return "invalid"
}

// Unsigned reports if the width holds only non-negative values.
func (w IntWidth) Unsigned() bool {
	return w == Uint8 || w == Uint16 || w == Uint32 || w == Uint64
}

type intRange struct {
	width    IntWidth
	min, max *big.Float
}

func newRange(w IntWidth, lo int64, hi uint64) intRange {
	return intRange{width: w, min: new(big.Float).SetInt64(lo), max: new(big.Float).SetUint64(hi)}
}

var (
	signedLadder = []intRange{
		newRange(Int8, math.MinInt8, math.MaxInt8),
		newRange(Int16, math.MinInt16, math.MaxInt16),
		newRange(Int32, math.MinInt32, math.MaxInt32),
		newRange(Int64, math.MinInt64, math.MaxInt64),
	}
	unsignedLadder = []intRange{
		newRange(Uint8, 0, math.MaxUint8),
		newRange(Uint16, 0, math.MaxUint16),
		newRange(Uint32, 0, math.MaxUint32),
		newRange(Uint64, 0, math.MaxUint64),
	}
)

// NarrowInt returns the narrowest integer width holding every value in
// [minimum, maximum]. Either bound may be nil:
//
//   - no bounds: Int32
//   - both bounds: the narrowest fitting width, unsigned when minimum >= 0
//   - one bound: the narrowest signed width of at least 16 bits that
//     holds the bound
func NarrowInt(minimum, maximum *big.Float) IntWidth {
	switch {
	case minimum == nil && maximum == nil:
		return Int32
	case minimum != nil && maximum != nil:
		ladder := signedLadder
		if minimum.Sign() >= 0 {
			ladder = unsignedLadder
		}
		for _, r := range ladder {
			if minimum.Cmp(r.min) >= 0 && maximum.Cmp(r.max) <= 0 {
				return r.width
			}
		}
		return IntBig
	default:
		bound := minimum
		if bound == nil {
			bound = maximum
		}
		for _, r := range signedLadder[1:] {
			if bound.Cmp(r.min) >= 0 && bound.Cmp(r.max) <= 0 {
				return r.width
			}
		}
		return IntBig
	}
}
